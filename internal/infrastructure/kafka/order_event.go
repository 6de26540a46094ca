package kafka

type OrderEvent struct {
	OrderID     string  `json:"order_id"`
	BuyerID     string  `json:"buyer_id"`
	SellerID    string  `json:"seller_id"`
	Status      string  `json:"status"`
	TotalAmount float64 `json:"total_amount"`
}
