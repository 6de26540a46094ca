package usecase

import (
	"context"
	"crypto/rand"
	"fmt"
	"log/slog"
	"math/big"
	"time"

	"github.com/mandiflow/escrow-order-service/internal/domain"
	publisher "github.com/mandiflow/escrow-order-service/internal/infrastructure/kafka"
)

var otpStatuses = []domain.OrderStatus{domain.StatusShipped, domain.StatusDelivered}

// GenerateOTP issues a fresh 6-digit delivery confirmation code and sends it
// to the buyer out-of-band. A prior unexpired code is overwritten; the code
// never appears in any response.
func (uc *DefaultOrderUsecase) GenerateOTP(ctx context.Context, orderID string) error {
	order, err := uc.OrderRepo.GetOrderByID(ctx, orderID)
	if err != nil {
		return err
	}

	if order.Status != domain.StatusShipped && order.Status != domain.StatusDelivered {
		return fmt.Errorf("%w: order not in transit", domain.ErrInvalidOrderState)
	}

	code, err := generateCode()
	if err != nil {
		return err
	}
	expiry := time.Now().Add(uc.OTPTTL)

	if err := uc.OrderRepo.SetOTP(ctx, orderID, code, expiry, otpStatuses); err != nil {
		return err
	}

	if err := uc.SMS.SendOTP(ctx, order.BuyerID, code); err != nil {
		return fmt.Errorf("failed to dispatch otp: %w", err)
	}

	return nil
}

// VerifyOTP checks the submitted code and, on success, moves the order into
// the inspection window via the state machine.
func (uc *DefaultOrderUsecase) VerifyOTP(ctx context.Context, orderID, code string) (*domain.Order, error) {
	order, err := uc.OrderRepo.GetOrderByID(ctx, orderID)
	if err != nil {
		return nil, err
	}

	if order.OTPCode == "" || order.OTPExpiry == nil {
		return nil, domain.ErrInvalidOTP
	}
	if code != order.OTPCode {
		return nil, domain.ErrInvalidOTP
	}
	if time.Now().After(*order.OTPExpiry) {
		return nil, domain.ErrOTPExpired
	}

	if !domain.ValidateTransition(order.Status, domain.StatusInspection) {
		return nil, fmt.Errorf("%w: %s -> %s", domain.ErrInvalidTransition, order.Status, domain.StatusInspection)
	}

	deadline := time.Now().Add(uc.InspectionWindow)
	upd := domain.StatusUpdate{
		From:                  order.Status,
		To:                    domain.StatusInspection,
		ClearOTP:              true,
		SetInspectionDeadline: &deadline,
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
			slog.Error("failed to publish kafka OrderEvent", "stage", "otp_verified", "error", err.Error())
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

// generateCode draws a uniform 6-digit code from crypto/rand.
func generateCode() (string, error) {
	n, err := rand.Int(rand.Reader, big.NewInt(900000))
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("%06d", n.Int64()+100000), nil
}
