package entity

type Note struct {
	ID        int64  `gorm:"primaryKey;autoIncrement:false"`
	UserID    int64  `gorm:"not null;index"` // References: users(id)
	Title     string `gorm:"not null"`
	Content   string `gorm:"not null"`
	Tags      string `gorm:"not null;default:''"` // lower-case, space separated
	CreatedAt int64  `gorm:"not null;autoCreateTime:false"`
	UpdatedAt int64  `gorm:"not null;autoUpdateTime:false"`
}
