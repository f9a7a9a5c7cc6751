package events

import "orbit/cmd/internal/contract"

type SocketEvent interface {
	GetType() contract.EventType
}

type Ack struct{}

func (*Ack) GetType() contract.EventType {
	return contract.EventAck
}

type ConnectionKill struct {
	Code   contract.KillCode `json:"code"`
	Reason *string           `json:"reason,omitempty"`
}

func (e *ConnectionKill) GetType() contract.EventType {
	return contract.EventConnectionKill
}

type SessionExpired struct{}

func (*SessionExpired) GetType() contract.EventType {
	return contract.EventSessionExpired
}

// ResourceChanged carries a created/updated resource body, or only its ID
// once the resource is gone.
type ResourceChanged struct {
	Type     contract.EventType `json:"-"`
	ID       int64              `json:"id,string,omitempty"`
	Resource any                `json:"resource,omitempty"`
}

func (e *ResourceChanged) GetType() contract.EventType {
	return e.Type
}

func Changed(kind contract.EventType, resource any) *ResourceChanged {
	return &ResourceChanged{Type: kind, Resource: resource}
}

func Deleted(kind contract.EventType, id int64) *ResourceChanged {
	return &ResourceChanged{Type: kind, ID: id}
}

type CalendarSynced struct {
	SyncedEvents int `json:"synced_events"`
}

func (e *CalendarSynced) GetType() contract.EventType {
	return contract.EventCalendarSynced
}
