package mappers

import (
	"encoding/json"

	"github.com/mandiflow/escrow-order-service/internal/domain"
	"github.com/mandiflow/escrow-order-service/internal/infrastructure/postgres/models"
)

func ToDomainOrder(model *models.OrderModel) *domain.Order {
	var evidence []string
	if model.DisputeEvidence != "" {
		// stored as a jsonb array; a decode failure leaves evidence empty
		_ = json.Unmarshal([]byte(model.DisputeEvidence), &evidence)
	}
	return &domain.Order{
		ID:                 model.ID,
		BuyerID:            model.BuyerID,
		SellerID:           model.SellerID,
		ProductID:          model.ProductID,
		Quantity:           model.Quantity,
		UnitPrice:          model.UnitPrice,
		TotalAmount:        model.TotalAmount,
		Status:             model.Status,
		OTPCode:            model.OTPCode,
		OTPExpiry:          model.OTPExpiry,
		InspectionDeadline: model.InspectionDeadline,
		DisputeReason:      model.DisputeReason,
		DisputeEvidence:    evidence,
		ResolutionStatus:   domain.ResolutionStatus(model.ResolutionStatus),
		ProviderOrderID:    model.ProviderOrderID,
		PaymentReference:   model.PaymentReference,
		CreatedAt:          model.CreatedAt,
		UpdatedAt:          model.UpdatedAt,
	}
}

func ToGORMOrder(order *domain.Order) *models.OrderModel {
	evidence := "[]"
	if len(order.DisputeEvidence) > 0 {
		if b, err := json.Marshal(order.DisputeEvidence); err == nil {
			evidence = string(b)
		}
	}
	return &models.OrderModel{
		ID:                 order.ID,
		BuyerID:            order.BuyerID,
		SellerID:           order.SellerID,
		ProductID:          order.ProductID,
		Quantity:           order.Quantity,
		UnitPrice:          order.UnitPrice,
		TotalAmount:        order.TotalAmount,
		Status:             order.Status,
		OTPCode:            order.OTPCode,
		OTPExpiry:          order.OTPExpiry,
		InspectionDeadline: order.InspectionDeadline,
		DisputeReason:      order.DisputeReason,
		DisputeEvidence:    evidence,
		ResolutionStatus:   string(order.ResolutionStatus),
		ProviderOrderID:    order.ProviderOrderID,
		PaymentReference:   order.PaymentReference,
		CreatedAt:          order.CreatedAt,
		UpdatedAt:          order.UpdatedAt,
	}
}
