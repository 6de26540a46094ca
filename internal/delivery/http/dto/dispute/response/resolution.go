package response

type RaiseDisputeResponse struct {
	DisputeID        string `json:"dispute_id"`
	ResolutionStatus string `json:"resolution_status"`
	Notes            string `json:"notes"`
	OrderStatus      string `json:"order_status"`
}
