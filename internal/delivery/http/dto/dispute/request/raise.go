package request

type RaiseDisputeRequest struct {
	OrderID      string   `json:"order_id"`
	Reason       string   `json:"reason"`
	EvidenceURLs []string `json:"evidence_urls,omitempty"`
}
