package entity

type EventType string

const (
	EventTypePersonal       EventType = "PERSONAL"
	EventTypeWork           EventType = "WORK"
	EventTypeMeeting        EventType = "MEETING"
	EventTypeDeadline       EventType = "DEADLINE"
	EventTypeBirthday       EventType = "BIRTHDAY"
	EventTypeHoliday        EventType = "HOLIDAY"
	EventTypeF1Race         EventType = "F1_RACE"
	EventTypeGoogleCalendar EventType = "GOOGLE_CALENDAR"
)

const DefaultEventColor = "#3B82F6"

type Event struct {
	ID               int64  `gorm:"primaryKey;autoIncrement:false"`
	UserID           int64  `gorm:"not null;index;uniqueIndex:idx_event_user_google"` // References: users(id)
	Title            string `gorm:"not null"`
	Description      string `gorm:"not null;default:''"`
	StartDate        int64  `gorm:"not null;index"`
	EndDate          *int64
	AllDay           bool      `gorm:"not null;default:false"`
	Location         string    `gorm:"not null;default:''"`
	Color            string    `gorm:"not null;default:'#3B82F6'"`
	Type             EventType `gorm:"not null;default:PERSONAL"`
	GoogleEventID    *string   `gorm:"uniqueIndex:idx_event_user_google"` // NULL for local events
	GoogleCalendarID string    `gorm:"not null;default:''"`
	CreatedAt        int64     `gorm:"not null;autoCreateTime:false"`
	UpdatedAt        int64     `gorm:"not null;autoUpdateTime:false"`
}
