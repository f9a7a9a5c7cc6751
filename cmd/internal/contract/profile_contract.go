package contract

type ProfileResponse struct {
	ID                      int64  `json:"id,string"`
	Name                    string `json:"name"`
	Email                   string `json:"email"`
	Image                   string `json:"image"`
	EmailVerified           bool   `json:"email_verified"`
	GoogleCalendarConnected bool   `json:"google_calendar_connected"`
	CreatedAt               string `json:"created_at"`
	UpdatedAt               string `json:"updated_at"`
}

type UpdateProfileRequest struct {
	Name  string  `json:"name" validate:"max=100"`
	Email string  `json:"email" validate:"omitempty,email,max=254"`
	Image *string `json:"image" validate:"omitnil,max=2048"`
}

type DeleteAccountRequest struct {
	ConfirmEmail string `json:"confirm_email"`
}

// ExportResponse is the downloadable copy of everything a user owns.
type ExportResponse struct {
	User        *ProfileResponse     `json:"user"`
	Preferences *PreferencesResponse `json:"preferences"`
	Tasks       []*TaskResponse      `json:"tasks"`
	Notes       []*NoteResponse      `json:"notes"`
	Expenses    []*ExpenseResponse   `json:"expenses"`
	Events      []*EventResponse     `json:"events"`
	CheckIns    []*CheckInResponse   `json:"check_ins"`
	ExportedAt  string               `json:"exported_at"`
}
