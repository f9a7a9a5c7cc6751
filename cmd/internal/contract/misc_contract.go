package contract

type MessageResponse struct {
	Message string `json:"message"`
}
