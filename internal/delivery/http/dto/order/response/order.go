package response

import (
	"time"

	"github.com/mandiflow/escrow-order-service/internal/domain"
)

type OrderResponse struct {
	ID                 string     `json:"id"`
	BuyerID            string     `json:"buyer_id"`
	SellerID           string     `json:"seller_id"`
	ProductID          string     `json:"product_id"`
	Quantity           int64      `json:"quantity"`
	UnitPrice          float64    `json:"unit_price"`
	TotalAmount        float64    `json:"total_amount"`
	Status             string     `json:"status"`
	InspectionDeadline *time.Time `json:"inspection_deadline,omitempty"`
	DisputeReason      string     `json:"dispute_reason,omitempty"`
	ResolutionStatus   string     `json:"resolution_status,omitempty"`
	CreatedAt          time.Time  `json:"created_at"`
	UpdatedAt          time.Time  `json:"updated_at"`
}

// FromDomainOrder deliberately omits OTP fields; codes never leave the
// service through a response.
func FromDomainOrder(order *domain.Order) OrderResponse {
	return OrderResponse{
		ID:                 order.ID,
		BuyerID:            order.BuyerID,
		SellerID:           order.SellerID,
		ProductID:          order.ProductID,
		Quantity:           order.Quantity,
		UnitPrice:          order.UnitPrice,
		TotalAmount:        order.TotalAmount,
		Status:             string(order.Status),
		InspectionDeadline: order.InspectionDeadline,
		DisputeReason:      order.DisputeReason,
		ResolutionStatus:   string(order.ResolutionStatus),
		CreatedAt:          order.CreatedAt,
		UpdatedAt:          order.UpdatedAt,
	}
}

type ListOrdersResponse struct {
	Orders []OrderResponse `json:"orders"`
	Total  int64           `json:"total"`
}

type ErrorResponse struct {
	Error string `json:"error"`
}
