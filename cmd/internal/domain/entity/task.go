package entity

type TaskPriority string

const (
	PriorityLow    TaskPriority = "LOW"
	PriorityMedium TaskPriority = "MEDIUM"
	PriorityHigh   TaskPriority = "HIGH"
	PriorityUrgent TaskPriority = "URGENT"
)

type Task struct {
	ID          int64        `gorm:"primaryKey;autoIncrement:false"`
	UserID      int64        `gorm:"not null;index"` // References: users(id)
	Title       string       `gorm:"not null"`
	Description string       `gorm:"not null;default:''"`
	Completed   bool         `gorm:"not null;default:false"`
	Priority    TaskPriority `gorm:"not null;default:MEDIUM"`
	DueDate     *int64
	CompletedAt *int64
	CreatedAt   int64 `gorm:"not null;autoCreateTime:false"`
	UpdatedAt   int64 `gorm:"not null;autoUpdateTime:false"`
}

// SetCompleted keeps CompletedAt in sync with the completion flag.
func (t *Task) SetCompleted(completed bool, now int64) {
	if completed && !t.Completed {
		t.CompletedAt = &now
	}
	if !completed {
		t.CompletedAt = nil
	}
	t.Completed = completed
}
