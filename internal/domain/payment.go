package domain

import "context"

// PaymentProvider wraps the escrow-capable gateway. Amounts are in minor
// units (paise). Calls are blocking network operations; a timeout means
// failed, never succeeded.
type PaymentProvider interface {
	// CreateProviderOrder registers an order on the provider side with manual
	// capture (escrow). The local order id travels in the provider notes and
	// is the key webhooks resolve against.
	CreateProviderOrder(ctx context.Context, localOrderID string, amountPaise int64) (providerOrderID string, err error)
	CapturePayment(ctx context.Context, paymentRef string, amountPaise int64) error
	RefundPayment(ctx context.Context, paymentRef string, amountPaise int64) error
	VerifyWebhookSignature(body []byte, signature string) bool
}

// SMSSender dispatches the delivery OTP out-of-band. The gateway resolves
// the recipient's registered mobile from the party id.
type SMSSender interface {
	SendOTP(ctx context.Context, partyID, code string) error
}
