package contract

type TaskResponse struct {
	ID          int64   `json:"id,string"`
	Title       string  `json:"title"`
	Description string  `json:"description"`
	Completed   bool    `json:"completed"`
	Priority    string  `json:"priority"`
	DueDate     *string `json:"due_date"`
	CompletedAt *string `json:"completed_at"`
	CreatedAt   string  `json:"created_at"`
	UpdatedAt   string  `json:"updated_at"`
}

type TaskRequest struct {
	Title       string  `json:"title" validate:"required,min=1,max=200"`
	Description string  `json:"description" validate:"max=2000"`
	Priority    string  `json:"priority" validate:"omitempty,oneof=LOW MEDIUM HIGH URGENT"`
	DueDate     *string `json:"due_date" validate:"omitnil,timestamp_or_empty"`
}

// UpdateTaskRequest only changes the provided fields. An empty due_date clears it.
type UpdateTaskRequest struct {
	Title       *string `json:"title" validate:"omitnil,min=1,max=200"`
	Description *string `json:"description" validate:"omitnil,max=2000"`
	Completed   *bool   `json:"completed"`
	Priority    *string `json:"priority" validate:"omitnil,oneof=LOW MEDIUM HIGH URGENT"`
	DueDate     *string `json:"due_date" validate:"omitnil,timestamp_or_empty"`
}
