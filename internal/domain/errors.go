package domain

import "errors"

var (
	ErrValidation         = errors.New("invalid input")
	ErrOrderNotFound      = errors.New("order not found")
	ErrInvalidTransition  = errors.New("illegal status transition")
	ErrConflict           = errors.New("order was modified concurrently")
	ErrInvalidOrderState  = errors.New("invalid order state for operation")
	ErrInvalidOTP         = errors.New("invalid otp code")
	ErrOTPExpired         = errors.New("otp code expired")
	ErrNoPaymentReference = errors.New("no payment reference recorded")
	ErrProviderFailed     = errors.New("payment provider request failed")
	ErrInvalidSignature   = errors.New("invalid webhook signature")
)
