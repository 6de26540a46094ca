package request

type CreateOrderRequest struct {
	BuyerID   string  `json:"buyer_id"`
	SellerID  string  `json:"seller_id"`
	ProductID string  `json:"product_id"`
	Quantity  int64   `json:"quantity"`
	UnitPrice float64 `json:"unit_price"`
}
