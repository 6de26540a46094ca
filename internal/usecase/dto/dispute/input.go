package dispute

type RaiseDisputeInput struct {
	OrderID      string
	RaisedBy     string
	Reason       string
	EvidenceURLs []string
}
