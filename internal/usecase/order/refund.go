package usecase

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/mandiflow/escrow-order-service/internal/domain"
	publisher "github.com/mandiflow/escrow-order-service/internal/infrastructure/kafka"
	orderdto "github.com/mandiflow/escrow-order-service/internal/usecase/dto/order"
)

// RefundOrder returns escrowed funds to the buyer, optionally partially.
// Legal while funds are in escrow, under inspection, or disputed.
func (uc *DefaultOrderUsecase) RefundOrder(ctx context.Context, input *orderdto.RefundOrderInput) error {
	order, err := uc.OrderRepo.GetOrderByID(ctx, input.OrderID)
	if err != nil {
		return err
	}

	switch order.Status {
	case domain.StatusPaymentInEscrow, domain.StatusInspection, domain.StatusDisputed:
	default:
		return fmt.Errorf("%w: order cannot be refunded in status %s", domain.ErrInvalidOrderState, order.Status)
	}
	if order.PaymentReference == "" {
		return domain.ErrNoPaymentReference
	}

	amount := order.TotalAmount
	if input.Amount != nil {
		if *input.Amount <= 0 || *input.Amount > order.TotalAmount {
			return fmt.Errorf("%w: refund amount must be positive and at most the order total", domain.ErrValidation)
		}
		amount = *input.Amount
	}

	if err := uc.Provider.RefundPayment(ctx, order.PaymentReference, toPaise(amount)); err != nil {
		uc.Metrics.RecordError("refund")
		return err
	}

	upd := domain.StatusUpdate{
		From:             order.Status,
		To:               domain.StatusRefunded,
		SetDisputeReason: input.Reason,
	}
	if err := uc.OrderRepo.UpdateOrderStatus(ctx, input.OrderID, upd); err != nil {
		slog.Error("reconciliation required: refunded at provider but local update failed",
			"order_id", input.OrderID, "payment_reference", order.PaymentReference, "error", err.Error())
		uc.Metrics.RecordError("refund_reconciliation")
		return err
	}

	uc.Metrics.RecordOrderRefunded("manual")

	go func(event publisher.OrderEvent) {
		if err := uc.Publisher.PublishOrder(event); err != nil {
			slog.Error("failed to publish kafka OrderEvent", "stage", "refund", "error", err.Error())
		}
	}(publisher.OrderEvent{
		OrderID:     order.ID,
		BuyerID:     order.BuyerID,
		SellerID:    order.SellerID,
		Status:      string(domain.StatusRefunded),
		TotalAmount: order.TotalAmount,
	})

	return nil
}
