package domain

import (
	"context"
	"time"
)

type OrderFilters struct {
	Statuses []OrderStatus
	BuyerID  string
	SellerID string
}

// StatusUpdate describes a conditional status write. The repository must
// apply it as a compare-and-swap on From and report ErrConflict when the
// row no longer holds that status.
type StatusUpdate struct {
	From OrderStatus
	To   OrderStatus

	// Optional field writes applied together with the status change.
	ClearOTP              bool
	SetInspectionDeadline *time.Time
	SetPaymentReference   string
	SetDisputeReason      string
	SetResolutionStatus   ResolutionStatus
}

type OrderRepository interface {
	CreateOrder(ctx context.Context, order *Order) error
	GetOrderByID(ctx context.Context, orderID string) (*Order, error)
	GetOrderByPaymentReference(ctx context.Context, paymentRef string) (*Order, error)
	ListOrders(ctx context.Context, page, limit int64, filters OrderFilters) ([]*Order, int64, error)

	// UpdateOrderStatus performs the conditional transition write. Leaving
	// INSPECTION_PENDING always clears the inspection deadline so the
	// deadline/status invariant holds regardless of caller.
	UpdateOrderStatus(ctx context.Context, orderID string, upd StatusUpdate) error

	// SetOTP stores a fresh code, overwriting any prior one, conditional on
	// the order still being in one of the allowed statuses.
	SetOTP(ctx context.Context, orderID string, code string, expiry time.Time, allowed []OrderStatus) error

	FindExpiredInspections(ctx context.Context, now time.Time) ([]*Order, error)
}
