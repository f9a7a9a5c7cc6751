package contract

type EventResponse struct {
	ID               int64   `json:"id,string"`
	Title            string  `json:"title"`
	Description      string  `json:"description"`
	StartDate        string  `json:"start_date"`
	EndDate          *string `json:"end_date"`
	AllDay           bool    `json:"all_day"`
	Location         string  `json:"location"`
	Color            string  `json:"color"`
	Type             string  `json:"type"`
	GoogleEventID    *string `json:"google_event_id,omitempty"`
	GoogleCalendarID string  `json:"google_calendar_id,omitempty"`
	CreatedAt        string  `json:"created_at"`
	UpdatedAt        string  `json:"updated_at"`
}

// EventRequest checks for title and start_date by hand, so both are reported
// together with a single message.
type EventRequest struct {
	Title       string  `json:"title" validate:"max=200"`
	Description string  `json:"description" validate:"max=2000"`
	StartDate   string  `json:"start_date" validate:"omitempty,timestamp"`
	EndDate     *string `json:"end_date" validate:"omitnil,timestamp_or_empty"`
	AllDay      bool    `json:"all_day"`
	Location    string  `json:"location" validate:"max=200"`
	Color       string  `json:"color" validate:"omitempty,hexcolor"`
	Type        string  `json:"type" validate:"omitempty,oneof=PERSONAL WORK MEETING DEADLINE BIRTHDAY HOLIDAY F1_RACE GOOGLE_CALENDAR"`
}

type UpdateEventRequest struct {
	Title       *string `json:"title" validate:"omitnil,min=1,max=200"`
	Description *string `json:"description" validate:"omitnil,max=2000"`
	StartDate   *string `json:"start_date" validate:"omitnil,timestamp"`
	EndDate     *string `json:"end_date" validate:"omitnil,timestamp_or_empty"`
	AllDay      *bool   `json:"all_day"`
	Location    *string `json:"location" validate:"omitnil,max=200"`
	Color       *string `json:"color" validate:"omitnil,hexcolor"`
	Type        *string `json:"type" validate:"omitnil,oneof=PERSONAL WORK MEETING DEADLINE BIRTHDAY HOLIDAY F1_RACE GOOGLE_CALENDAR"`
}

type EventFilter struct {
	StartDate string
	EndDate   string
	Type      string
}
