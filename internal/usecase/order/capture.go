package usecase

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/mandiflow/escrow-order-service/internal/domain"
	publisher "github.com/mandiflow/escrow-order-service/internal/infrastructure/kafka"
)

// CaptureOrder is the buyer's early release: the full authorized amount is
// captured at the provider and the order leaves the inspection window. The
// provider call happens first; local state only advances on its success.
func (uc *DefaultOrderUsecase) CaptureOrder(ctx context.Context, orderID string) error {
	order, err := uc.OrderRepo.GetOrderByID(ctx, orderID)
	if err != nil {
		return err
	}

	if order.Status != domain.StatusInspection {
		return fmt.Errorf("%w: order is not under inspection", domain.ErrInvalidOrderState)
	}
	if order.PaymentReference == "" {
		return domain.ErrNoPaymentReference
	}

	if err := uc.Provider.CapturePayment(ctx, order.PaymentReference, toPaise(order.TotalAmount)); err != nil {
		uc.Metrics.RecordError("capture")
		return err
	}

	upd := domain.StatusUpdate{From: domain.StatusInspection, To: domain.StatusReleased}
	if err := uc.OrderRepo.UpdateOrderStatus(ctx, orderID, upd); err != nil {
		// money moved at the provider but the local write failed; flag for
		// manual reconciliation, no compensating transaction exists
		slog.Error("reconciliation required: captured at provider but local update failed",
			"order_id", orderID, "payment_reference", order.PaymentReference, "error", err.Error())
		uc.Metrics.RecordError("capture_reconciliation")
		return err
	}

	uc.Metrics.RecordOrderReleased("buyer_confirm")

	go func(event publisher.OrderEvent) {
		if err := uc.Publisher.PublishOrder(event); err != nil {
			slog.Error("failed to publish kafka OrderEvent", "stage", "capture", "error", err.Error())
		}
	}(publisher.OrderEvent{
		OrderID:     order.ID,
		BuyerID:     order.BuyerID,
		SellerID:    order.SellerID,
		Status:      string(domain.StatusReleased),
		TotalAmount: order.TotalAmount,
	})

	return nil
}
