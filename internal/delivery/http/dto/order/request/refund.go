package request

type RefundOrderRequest struct {
	Reason string   `json:"reason"`
	Amount *float64 `json:"amount,omitempty"`
}
