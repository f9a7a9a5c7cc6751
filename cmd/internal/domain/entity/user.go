package entity

// User is created lazily the first time a valid identity provider token is seen.
type User struct {
	ID                 int64  `gorm:"primaryKey;autoIncrement:false"`
	SubUUID            string `gorm:"not null;uniqueIndex"`
	Email              string `gorm:"not null;uniqueIndex"`
	Name               string `gorm:"not null;default:''"`
	Image              string `gorm:"not null;default:''"`
	EmailVerified      bool   `gorm:"not null;default:false"`
	GoogleAccessToken  string `gorm:"not null;default:''"`
	GoogleRefreshToken string `gorm:"not null;default:''"`
	GoogleTokenExpiry  int64  `gorm:"not null;default:0"`
	CreatedAt          int64  `gorm:"not null;autoCreateTime:false"`
	UpdatedAt          int64  `gorm:"not null;autoUpdateTime:false"`
}

func (u *User) HasGoogleTokens() bool {
	return u.GoogleAccessToken != "" && u.GoogleRefreshToken != ""
}

// ClearGoogleTokens forgets the OAuth grant, it does not persist anything.
func (u *User) ClearGoogleTokens() {
	u.GoogleAccessToken = ""
	u.GoogleRefreshToken = ""
	u.GoogleTokenExpiry = 0
}
