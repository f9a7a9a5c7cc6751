package entity

import "time"

// SocketGrace is how long a dashboard tab may stay silent before the
// cleaner drops its socket: one heartbeat period plus some slack.
const SocketGrace = 70 * time.Second

// Connection is a live API Gateway websocket bound to a user session.
// ExpiresAt mirrors the session token expiry.
type Connection struct {
	ConnectionID    string `gorm:"primaryKey;autoIncrement:false;size:128"`
	UserID          int64  `gorm:"not null;index"`
	ExpiresAt       int64  `gorm:"not null"`
	LastHeartbeatAt int64  `gorm:"not null;index"`
	CreatedAt       int64  `gorm:"not null"`
}

func (Connection) TableName() string {
	return "socket_connections"
}

// HeartbeatCutoff is the oldest heartbeat still considered alive at now.
func HeartbeatCutoff(now int64) int64 {
	return now - SocketGrace.Milliseconds()
}
