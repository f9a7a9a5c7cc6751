package entity

// CheckIn marks a calendar day, in the user's timezone at the time of the
// check-in, as attended. Day uses the YYYY-MM-DD layout so it sorts lexically.
type CheckIn struct {
	ID        int64  `gorm:"primaryKey;autoIncrement:false"`
	UserID    int64  `gorm:"not null;uniqueIndex:idx_checkin_user_day"` // References: users(id)
	Day       string `gorm:"not null;size:10;uniqueIndex:idx_checkin_user_day"`
	CreatedAt int64  `gorm:"not null;autoCreateTime:false"`
}
