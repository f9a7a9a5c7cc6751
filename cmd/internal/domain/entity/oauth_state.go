package entity

import "time"

const OAuthStateTTL = 10 * time.Minute

// OAuthState binds a one-time OAuth "state" value to the user that started the flow.
type OAuthState struct {
	State     string `gorm:"primaryKey"`
	UserID    int64  `gorm:"not null"`
	ExpiresAt int64  `gorm:"not null;index"`
}

func (s *OAuthState) Expired(now int64) bool {
	return now >= s.ExpiresAt
}
