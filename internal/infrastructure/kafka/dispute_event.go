package kafka

type DisputeEvent struct {
	DisputeID  string `json:"dispute_id"`
	OrderID    string `json:"order_id"`
	RaisedBy   string `json:"raised_by"`
	Reason     string `json:"reason"`
	Resolution string `json:"resolution"`
	Notes      string `json:"notes"`
}
