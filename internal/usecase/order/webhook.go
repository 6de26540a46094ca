package usecase

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"

	"github.com/mandiflow/escrow-order-service/internal/domain"
)

type paymentEntity struct {
	ID      string            `json:"id"`
	OrderID string            `json:"order_id"`
	Amount  int64             `json:"amount"`
	Notes   map[string]string `json:"notes"`
}

type refundEntity struct {
	ID        string `json:"id"`
	PaymentID string `json:"payment_id"`
	Amount    int64  `json:"amount"`
}

type paymentEventEnvelope struct {
	Event   string `json:"event"`
	Payload struct {
		Payment struct {
			Entity paymentEntity `json:"entity"`
		} `json:"payment"`
		Refund struct {
			Entity refundEntity `json:"entity"`
		} `json:"refund"`
	} `json:"payload"`
}

// HandlePaymentEvent mirrors provider-side truth into local order state.
// Signature failures are rejected before any processing. Replayed events for
// an order already in the resulting status are no-ops. Unknown event types
// are logged and ignored.
func (uc *DefaultOrderUsecase) HandlePaymentEvent(ctx context.Context, body []byte, signature string) error {
	if !uc.Provider.VerifyWebhookSignature(body, signature) {
		uc.Metrics.RecordWebhookEvent("unknown", "bad_signature")
		return domain.ErrInvalidSignature
	}

	var envelope paymentEventEnvelope
	if err := json.Unmarshal(body, &envelope); err != nil {
		return fmt.Errorf("%w: malformed webhook payload", domain.ErrValidation)
	}

	switch envelope.Event {
	case "payment.authorized":
		return uc.applyPaymentEvent(ctx, envelope.Event, envelope.Payload.Payment.Entity, domain.StatusPaymentInEscrow)
	case "payment.captured":
		return uc.applyPaymentEvent(ctx, envelope.Event, envelope.Payload.Payment.Entity, domain.StatusReleased)
	case "payment.failed":
		return uc.applyPaymentEvent(ctx, envelope.Event, envelope.Payload.Payment.Entity, domain.StatusCanceled)
	case "refund.created":
		return uc.applyRefundCreated(ctx, envelope.Payload.Refund.Entity)
	default:
		slog.Info("ignoring unhandled webhook event", "event", envelope.Event)
		uc.Metrics.RecordWebhookEvent(envelope.Event, "ignored")
		return nil
	}
}

// applyPaymentEvent resolves the order through notes.order_id, planted at
// provider-order creation, and applies the target status idempotently.
func (uc *DefaultOrderUsecase) applyPaymentEvent(ctx context.Context, event string, payment paymentEntity, target domain.OrderStatus) error {
	orderID := payment.Notes["order_id"]
	if orderID == "" {
		slog.Error("webhook payment entity has no order_id note", "event", event, "payment_id", payment.ID)
		uc.Metrics.RecordWebhookEvent(event, "missing_order_id")
		return nil
	}

	order, err := uc.OrderRepo.GetOrderByID(ctx, orderID)
	if err != nil {
		if errors.Is(err, domain.ErrOrderNotFound) {
			slog.Error("webhook references unknown order", "event", event, "order_id", orderID)
			uc.Metrics.RecordWebhookEvent(event, "order_not_found")
			return nil
		}
		return err
	}

	if order.Status == target {
		uc.Metrics.RecordWebhookEvent(event, "replay")
		return nil
	}

	if !domain.ValidateTransition(order.Status, target) {
		// provider truth disagrees with local state; surface loudly but do
		// not fail the webhook, the provider would retry forever
		slog.Error("webhook transition not legal for local state",
			"event", event, "order_id", orderID, "current", order.Status, "target", target)
		uc.Metrics.RecordWebhookEvent(event, "illegal_transition")
		return nil
	}

	upd := domain.StatusUpdate{From: order.Status, To: target}
	if event == "payment.authorized" {
		upd.SetPaymentReference = payment.ID
	}
	if err := uc.OrderRepo.UpdateOrderStatus(ctx, orderID, upd); err != nil {
		if errors.Is(err, domain.ErrConflict) {
			// another writer moved the order; the retry will see fresh state
			uc.Metrics.RecordWebhookEvent(event, "conflict")
			return nil
		}
		return err
	}

	uc.Metrics.RecordWebhookEvent(event, "applied")
	if target == domain.StatusReleased {
		uc.Metrics.RecordOrderReleased("webhook")
	}

	return nil
}

// applyRefundCreated resolves the order by the stored provider payment id;
// refund entities carry no notes.
func (uc *DefaultOrderUsecase) applyRefundCreated(ctx context.Context, refund refundEntity) error {
	order, err := uc.OrderRepo.GetOrderByPaymentReference(ctx, refund.PaymentID)
	if err != nil {
		if errors.Is(err, domain.ErrOrderNotFound) {
			slog.Error("refund webhook references unknown payment", "payment_id", refund.PaymentID)
			uc.Metrics.RecordWebhookEvent("refund.created", "order_not_found")
			return nil
		}
		return err
	}

	if order.Status == domain.StatusRefunded {
		uc.Metrics.RecordWebhookEvent("refund.created", "replay")
		return nil
	}

	if !domain.ValidateTransition(order.Status, domain.StatusRefunded) {
		slog.Error("refund webhook not legal for local state",
			"order_id", order.ID, "current", order.Status)
		uc.Metrics.RecordWebhookEvent("refund.created", "illegal_transition")
		return nil
	}

	upd := domain.StatusUpdate{From: order.Status, To: domain.StatusRefunded}
	if err := uc.OrderRepo.UpdateOrderStatus(ctx, order.ID, upd); err != nil {
		if errors.Is(err, domain.ErrConflict) {
			uc.Metrics.RecordWebhookEvent("refund.created", "conflict")
			return nil
		}
		return err
	}

	uc.Metrics.RecordWebhookEvent("refund.created", "applied")
	uc.Metrics.RecordOrderRefunded("webhook")

	return nil
}
