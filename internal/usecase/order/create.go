package usecase

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/mandiflow/escrow-order-service/internal/domain"
	publisher "github.com/mandiflow/escrow-order-service/internal/infrastructure/kafka"
	orderdto "github.com/mandiflow/escrow-order-service/internal/usecase/dto/order"
)

// CreateOrder persists a new order and registers the matching provider order
// with manual capture. TotalAmount is fixed at creation and never recomputed.
func (uc *DefaultOrderUsecase) CreateOrder(ctx context.Context, input *orderdto.CreateOrderInput) (*domain.Order, error) {
	if input.BuyerID == "" || input.SellerID == "" || input.ProductID == "" {
		return nil, fmt.Errorf("%w: buyer, seller and product are required", domain.ErrValidation)
	}
	if input.Quantity <= 0 {
		return nil, fmt.Errorf("%w: quantity must be positive", domain.ErrValidation)
	}
	if input.UnitPrice < 0 {
		return nil, fmt.Errorf("%w: unit price must be non-negative", domain.ErrValidation)
	}

	now := time.Now()
	order := &domain.Order{
		ID:          uuid.New().String(),
		BuyerID:     input.BuyerID,
		SellerID:    input.SellerID,
		ProductID:   input.ProductID,
		Quantity:    input.Quantity,
		UnitPrice:   input.UnitPrice,
		TotalAmount: float64(input.Quantity) * input.UnitPrice,
		Status:      domain.StatusCreated,
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	providerOrderID, err := uc.Provider.CreateProviderOrder(ctx, order.ID, toPaise(order.TotalAmount))
	if err != nil {
		// the order is still created; payment can be retried against it later
		slog.Warn("provider order registration failed", "order_id", order.ID, "error", err.Error())
		uc.Metrics.RecordError("provider_order_create")
	} else {
		order.ProviderOrderID = providerOrderID
		order.Status = domain.StatusPaymentPending
	}

	if err := uc.OrderRepo.CreateOrder(ctx, order); err != nil {
		return nil, err
	}

	uc.Metrics.RecordOrderCreated(order.SellerID, order.TotalAmount)

	go func(event publisher.OrderEvent) {
		if err := uc.Publisher.PublishOrder(event); err != nil {
			slog.Error("failed to publish kafka OrderEvent", "stage", "creating", "error", err.Error())
		}
	}(publisher.OrderEvent{
		OrderID:     order.ID,
		BuyerID:     order.BuyerID,
		SellerID:    order.SellerID,
		Status:      string(order.Status),
		TotalAmount: order.TotalAmount,
	})

	return order, nil
}
