package usecase

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/mandiflow/escrow-order-service/internal/domain"
	publisher "github.com/mandiflow/escrow-order-service/internal/infrastructure/kafka"
)

// TransitionStatus applies a caller-requested transition after validating it
// against the state machine. Money-moving paths (capture, refund) have their
// own operations; this one only rewrites status.
func (uc *DefaultOrderUsecase) TransitionStatus(ctx context.Context, orderID string, target domain.OrderStatus) (*domain.Order, error) {
	order, err := uc.OrderRepo.GetOrderByID(ctx, orderID)
	if err != nil {
		return nil, err
	}

	if !domain.ValidateTransition(order.Status, target) {
		return nil, fmt.Errorf("%w: %s -> %s", domain.ErrInvalidTransition, order.Status, target)
	}

	upd := domain.StatusUpdate{From: order.Status, To: target}
	if target == domain.StatusInspection {
		deadline := time.Now().Add(uc.InspectionWindow)
		upd.SetInspectionDeadline = &deadline
		upd.ClearOTP = true
	}

	if err := uc.OrderRepo.UpdateOrderStatus(ctx, orderID, upd); err != nil {
		return nil, err
	}

	updated, err := uc.OrderRepo.GetOrderByID(ctx, orderID)
	if err != nil {
		return nil, err
	}

	go func(event publisher.OrderEvent) {
		if err := uc.Publisher.PublishOrder(event); err != nil {
			slog.Error("failed to publish kafka OrderEvent", "stage", "transition", "error", err.Error())
		}
	}(publisher.OrderEvent{
		OrderID:     updated.ID,
		BuyerID:     updated.BuyerID,
		SellerID:    updated.SellerID,
		Status:      string(updated.Status),
		TotalAmount: updated.TotalAmount,
	})

	return updated, nil
}
