package models

import (
	"time"

	"github.com/mandiflow/escrow-order-service/internal/domain"
)

type OrderModel struct {
	ID                 string             `gorm:"primaryKey;type:uuid"`
	BuyerID            string             `gorm:"index:idx_buyer"`
	SellerID           string             `gorm:"index:idx_seller"`
	ProductID          string
	Quantity           int64
	UnitPrice          float64
	TotalAmount        float64
	Status             domain.OrderStatus `gorm:"index:idx_status_deadline"`
	OTPCode            string             `gorm:"column:otp_code"`
	OTPExpiry          *time.Time         `gorm:"column:otp_expiry"`
	InspectionDeadline *time.Time         `gorm:"index:idx_status_deadline"`
	DisputeReason      string
	DisputeEvidence    string             `gorm:"type:jsonb"`
	ResolutionStatus   string
	ProviderOrderID    string
	PaymentReference   string             `gorm:"index:idx_payment_ref"`
	CreatedAt          time.Time          `gorm:"index:idx_created_at"`
	UpdatedAt          time.Time
}
