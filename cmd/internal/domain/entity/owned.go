package entity

// Owned is implemented by every row that belongs to a single user.
type Owned interface {
	OwnerID() int64
}

func (t *Task) OwnerID() int64    { return t.UserID }
func (n *Note) OwnerID() int64    { return n.UserID }
func (e *Expense) OwnerID() int64 { return e.UserID }
func (e *Event) OwnerID() int64   { return e.UserID }
