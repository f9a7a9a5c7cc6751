package contract

type CheckInResponse struct {
	ID        int64  `json:"id,string"`
	Date      string `json:"date"`
	CreatedAt string `json:"created_at"`
}

type CheckInStatusResponse struct {
	CheckIns       []*CheckInResponse `json:"check_ins"`
	CurrentStreak  int                `json:"current_streak"`
	CheckedInToday bool               `json:"checked_in_today"`
	TotalCheckIns  int                `json:"total_check_ins"`
}

type CheckInCreatedResponse struct {
	Message        string           `json:"message"`
	CheckIn        *CheckInResponse `json:"check_in"`
	CurrentStreak  int              `json:"current_streak"`
	CheckedInToday bool             `json:"checked_in_today"`
	TotalCheckIns  int              `json:"total_check_ins"`
}
