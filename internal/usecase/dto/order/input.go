package order

type CreateOrderInput struct {
	BuyerID   string
	SellerID  string
	ProductID string
	Quantity  int64
	UnitPrice float64
}

type RefundOrderInput struct {
	OrderID string
	Reason  string
	// Amount is an optional partial refund amount in rupees; nil means the
	// full original amount.
	Amount *float64
}

type ListOrdersInput struct {
	BuyerID  string
	SellerID string
	Statuses []string
	Page     int64
	Limit    int64
}
