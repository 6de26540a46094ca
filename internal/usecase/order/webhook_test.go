package usecase

import (
	"context"
	"fmt"
	"testing"

	"github.com/mandiflow/escrow-order-service/internal/domain"
	"github.com/stretchr/testify/assert"
)

func paymentEventBody(event, paymentID, orderID string, amountPaise int64) []byte {
	return []byte(fmt.Sprintf(
		`{"event":%q,"payload":{"payment":{"entity":{"id":%q,"amount":%d,"notes":{"order_id":%q}}}}}`,
		event, paymentID, amountPaise, orderID))
}

func refundEventBody(refundID, paymentID string, amountPaise int64) []byte {
	return []byte(fmt.Sprintf(
		`{"event":"refund.created","payload":{"refund":{"entity":{"id":%q,"payment_id":%q,"amount":%d}}}}`,
		refundID, paymentID, amountPaise))
}

func TestHandlePaymentEvent_BadSignature(t *testing.T) {
	uc, repo, provider, _ := newTestUsecase()
	provider.signatureValid = false
	seedOrder(repo, "ord-1", domain.StatusPaymentPending)

	body := paymentEventBody("payment.authorized", "pay_abc", "ord-1", 20000)
	err := uc.HandlePaymentEvent(context.Background(), body, "forged")
	assert.ErrorIs(t, err, domain.ErrInvalidSignature)

	stored, _ := repo.GetOrderByID(context.Background(), "ord-1")
	assert.Equal(t, domain.StatusPaymentPending, stored.Status)
	assert.Empty(t, stored.PaymentReference)
}

func TestHandlePaymentEvent_MalformedBody(t *testing.T) {
	uc, _, _, _ := newTestUsecase()
	err := uc.HandlePaymentEvent(context.Background(), []byte("{not json"), "sig")
	assert.ErrorIs(t, err, domain.ErrValidation)
}

func TestHandlePaymentEvent_Authorized(t *testing.T) {
	uc, repo, _, _ := newTestUsecase()
	ctx := context.Background()
	seedOrder(repo, "ord-1", domain.StatusPaymentPending)

	body := paymentEventBody("payment.authorized", "pay_abc", "ord-1", 20000)
	err := uc.HandlePaymentEvent(ctx, body, "sig")
	if err != nil {
		t.Fatalf("Expected no error, got: %v", err)
	}

	stored, _ := repo.GetOrderByID(ctx, "ord-1")
	assert.Equal(t, domain.StatusPaymentInEscrow, stored.Status)
	assert.Equal(t, "pay_abc", stored.PaymentReference)
}

func TestHandlePaymentEvent_AuthorizedFromCreated(t *testing.T) {
	uc, repo, _, _ := newTestUsecase()
	ctx := context.Background()
	seedOrder(repo, "ord-1", domain.StatusCreated)

	body := paymentEventBody("payment.authorized", "pay_abc", "ord-1", 20000)
	assert.NoError(t, uc.HandlePaymentEvent(ctx, body, "sig"))

	stored, _ := repo.GetOrderByID(ctx, "ord-1")
	assert.Equal(t, domain.StatusPaymentInEscrow, stored.Status)
}

func TestHandlePaymentEvent_Captured(t *testing.T) {
	uc, repo, _, _ := newTestUsecase()
	ctx := context.Background()
	seedInspectionOrder(repo, "ord-1", "pay_abc")

	body := paymentEventBody("payment.captured", "pay_abc", "ord-1", 20000)
	assert.NoError(t, uc.HandlePaymentEvent(ctx, body, "sig"))

	stored, _ := repo.GetOrderByID(ctx, "ord-1")
	assert.Equal(t, domain.StatusReleased, stored.Status)
}

func TestHandlePaymentEvent_Failed(t *testing.T) {
	uc, repo, _, _ := newTestUsecase()
	ctx := context.Background()
	seedOrder(repo, "ord-1", domain.StatusPaymentPending)

	body := paymentEventBody("payment.failed", "pay_abc", "ord-1", 20000)
	assert.NoError(t, uc.HandlePaymentEvent(ctx, body, "sig"))

	stored, _ := repo.GetOrderByID(ctx, "ord-1")
	assert.Equal(t, domain.StatusCanceled, stored.Status)
}

// Replayed deliveries of the same event must be harmless.
func TestHandlePaymentEvent_ReplayIsNoop(t *testing.T) {
	uc, repo, _, _ := newTestUsecase()
	ctx := context.Background()
	seedInspectionOrder(repo, "ord-1", "pay_abc")

	body := paymentEventBody("payment.captured", "pay_abc", "ord-1", 20000)
	assert.NoError(t, uc.HandlePaymentEvent(ctx, body, "sig"))
	assert.NoError(t, uc.HandlePaymentEvent(ctx, body, "sig"))

	stored, _ := repo.GetOrderByID(ctx, "ord-1")
	assert.Equal(t, domain.StatusReleased, stored.Status)
}

// Provider truth that disagrees with local state is logged, not retried.
func TestHandlePaymentEvent_IllegalTransitionAcknowledged(t *testing.T) {
	uc, repo, _, _ := newTestUsecase()
	ctx := context.Background()
	order := seedOrder(repo, "ord-1", domain.StatusRefunded)
	order.PaymentReference = "pay_abc"
	repo.seed(order)

	body := paymentEventBody("payment.captured", "pay_abc", "ord-1", 20000)
	assert.NoError(t, uc.HandlePaymentEvent(ctx, body, "sig"))

	stored, _ := repo.GetOrderByID(ctx, "ord-1")
	assert.Equal(t, domain.StatusRefunded, stored.Status)
}

func TestHandlePaymentEvent_MissingOrderIDNote(t *testing.T) {
	uc, _, _, _ := newTestUsecase()
	body := []byte(`{"event":"payment.authorized","payload":{"payment":{"entity":{"id":"pay_abc","amount":100,"notes":{}}}}}`)
	assert.NoError(t, uc.HandlePaymentEvent(context.Background(), body, "sig"))
}

func TestHandlePaymentEvent_UnknownOrderAcknowledged(t *testing.T) {
	uc, _, _, _ := newTestUsecase()
	body := paymentEventBody("payment.authorized", "pay_abc", "nope", 100)
	assert.NoError(t, uc.HandlePaymentEvent(context.Background(), body, "sig"))
}

func TestHandlePaymentEvent_UnknownEventIgnored(t *testing.T) {
	uc, repo, _, _ := newTestUsecase()
	seedOrder(repo, "ord-1", domain.StatusPaymentPending)

	body := paymentEventBody("payment.downtime.started", "pay_abc", "ord-1", 100)
	assert.NoError(t, uc.HandlePaymentEvent(context.Background(), body, "sig"))

	stored, _ := repo.GetOrderByID(context.Background(), "ord-1")
	assert.Equal(t, domain.StatusPaymentPending, stored.Status)
}

func TestHandlePaymentEvent_RefundCreated(t *testing.T) {
	uc, repo, _, _ := newTestUsecase()
	ctx := context.Background()
	seedInspectionOrder(repo, "ord-1", "pay_abc")

	body := refundEventBody("rfnd_1", "pay_abc", 20000)
	assert.NoError(t, uc.HandlePaymentEvent(ctx, body, "sig"))

	stored, _ := repo.GetOrderByID(ctx, "ord-1")
	assert.Equal(t, domain.StatusRefunded, stored.Status)
}

func TestHandlePaymentEvent_RefundCreatedReplay(t *testing.T) {
	uc, repo, _, _ := newTestUsecase()
	ctx := context.Background()
	seedInspectionOrder(repo, "ord-1", "pay_abc")

	body := refundEventBody("rfnd_1", "pay_abc", 20000)
	assert.NoError(t, uc.HandlePaymentEvent(ctx, body, "sig"))
	assert.NoError(t, uc.HandlePaymentEvent(ctx, body, "sig"))

	stored, _ := repo.GetOrderByID(ctx, "ord-1")
	assert.Equal(t, domain.StatusRefunded, stored.Status)
}

func TestHandlePaymentEvent_RefundForUnknownPayment(t *testing.T) {
	uc, _, _, _ := newTestUsecase()
	body := refundEventBody("rfnd_1", "pay_nope", 100)
	assert.NoError(t, uc.HandlePaymentEvent(context.Background(), body, "sig"))
}
