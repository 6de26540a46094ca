package dispute

type RaiseDisputeOutput struct {
	DisputeID        string
	ResolutionStatus string
	Notes            string
	OrderStatus      string
}
