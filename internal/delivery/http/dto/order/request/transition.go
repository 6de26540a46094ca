package request

type TransitionStatusRequest struct {
	Status string `json:"status"`
}
