package domain

import "time"

type OrderStatus string

const (
	StatusCreated         OrderStatus = "ORDER_CREATED"
	StatusPaymentPending  OrderStatus = "PAYMENT_PENDING"
	StatusPaymentInEscrow OrderStatus = "PAYMENT_IN_ESCROW"
	StatusShipped         OrderStatus = "SHIPPED"
	StatusDelivered       OrderStatus = "DELIVERED"
	StatusInspection      OrderStatus = "INSPECTION_PENDING"
	StatusDisputed        OrderStatus = "DISPUTED"
	StatusRefunded        OrderStatus = "REFUNDED"
	StatusReleased        OrderStatus = "PAYMENT_RELEASED"
	StatusCanceled        OrderStatus = "CANCELLED"
)

// AllStatuses is the full enum, used by the transition table and tests.
var AllStatuses = []OrderStatus{
	StatusCreated,
	StatusPaymentPending,
	StatusPaymentInEscrow,
	StatusShipped,
	StatusDelivered,
	StatusInspection,
	StatusDisputed,
	StatusRefunded,
	StatusReleased,
	StatusCanceled,
}

func (s OrderStatus) IsTerminal() bool {
	switch s {
	case StatusRefunded, StatusReleased, StatusCanceled:
		return true
	}
	return false
}

type ResolutionStatus string

const (
	ResolutionNone            ResolutionStatus = ""
	ResolutionPending         ResolutionStatus = "pending"
	ResolutionLogisticsFault  ResolutionStatus = "logistics_fault"
	ResolutionWholesalerFault ResolutionStatus = "wholesaler_fault"
)

type Order struct {
	ID          string
	BuyerID     string
	SellerID    string
	ProductID   string
	Quantity    int64
	UnitPrice   float64
	TotalAmount float64
	Status      OrderStatus

	// OTP fields are set only between generation and verification/expiry.
	OTPCode   string
	OTPExpiry *time.Time

	// InspectionDeadline is set iff Status == INSPECTION_PENDING.
	InspectionDeadline *time.Time

	DisputeReason    string
	DisputeEvidence  []string
	ResolutionStatus ResolutionStatus

	// ProviderOrderID is the payment provider's order id, kept for audit.
	// PaymentReference is the provider payment id; required for capture/refund.
	ProviderOrderID  string
	PaymentReference string

	CreatedAt time.Time
	UpdatedAt time.Time
}
