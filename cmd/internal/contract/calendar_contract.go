package contract

const CalendarActionDisconnect = "disconnect"

type CalendarAuthResponse struct {
	AuthURL string `json:"auth_url"`
}

type CalendarSyncResponse struct {
	Success           bool             `json:"success"`
	SyncedEvents      int              `json:"synced_events"`
	TotalGoogleEvents int              `json:"total_google_events"`
	Events            []*EventResponse `json:"events"`
}

type CalendarActionRequest struct {
	Action string `json:"action"`
}

type CalendarDisconnectResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
}
