package contract

type EventType string

const (
	EventPing EventType = "ping"

	EventConnectionKill EventType = "CONNECTION_KILL"
	EventSessionExpired EventType = "SESSION_EXPIRED"
	EventAck            EventType = "ACK"

	EventTaskCreated EventType = "TASK_CREATED"
	EventTaskUpdated EventType = "TASK_UPDATED"
	EventTaskDeleted EventType = "TASK_DELETED"

	EventNoteCreated EventType = "NOTE_CREATED"
	EventNoteUpdated EventType = "NOTE_UPDATED"
	EventNoteDeleted EventType = "NOTE_DELETED"

	EventExpenseCreated EventType = "EXPENSE_CREATED"
	EventExpenseUpdated EventType = "EXPENSE_UPDATED"
	EventExpenseDeleted EventType = "EXPENSE_DELETED"

	EventEventCreated EventType = "EVENT_CREATED"
	EventEventUpdated EventType = "EVENT_UPDATED"
	EventEventDeleted EventType = "EVENT_DELETED"

	EventCalendarSynced       EventType = "CALENDAR_SYNCED"
	EventCalendarDisconnected EventType = "CALENDAR_DISCONNECTED"

	EventCheckInCreated     EventType = "CHECKIN_CREATED"
	EventPreferencesUpdated EventType = "PREFERENCES_UPDATED"
	EventProfileUpdated     EventType = "PROFILE_UPDATED"
)

type KillCode int

const (
	KillCodeAccountDeleted KillCode = 4001
	KillCodeSessionExpired KillCode = 4002
)

// IncomingSocketMessage is used for messages we receive from the users.
type IncomingSocketMessage struct {
	Type EventType `json:"type"`
}

// OutgoingSocketMessage is what we send to the Client
type OutgoingSocketMessage struct {
	Type EventType   `json:"type"`
	Data interface{} `json:"data,omitempty"`
}
