package usecase

import (
	"context"
	"math"
	"time"

	"github.com/mandiflow/escrow-order-service/internal/domain"
	publisher "github.com/mandiflow/escrow-order-service/internal/infrastructure/kafka"
	"github.com/mandiflow/escrow-order-service/internal/infrastructure/metrics"
	orderdto "github.com/mandiflow/escrow-order-service/internal/usecase/dto/order"
)

type OrderUsecase interface {
	CreateOrder(ctx context.Context, input *orderdto.CreateOrderInput) (*domain.Order, error)
	GetOrderByID(ctx context.Context, orderID string) (*domain.Order, error)
	ListOrders(ctx context.Context, input *orderdto.ListOrdersInput) ([]*domain.Order, int64, error)
	TransitionStatus(ctx context.Context, orderID string, target domain.OrderStatus) (*domain.Order, error)
	GenerateOTP(ctx context.Context, orderID string) error
	VerifyOTP(ctx context.Context, orderID, code string) (*domain.Order, error)
	CaptureOrder(ctx context.Context, orderID string) error
	RefundOrder(ctx context.Context, input *orderdto.RefundOrderInput) error
	SweepExpiredInspections(ctx context.Context) (*SweepResult, error)
	HandlePaymentEvent(ctx context.Context, body []byte, signature string) error
}

// EventPublisher is the slice of the kafka publisher the order usecase needs.
type EventPublisher interface {
	PublishOrder(event publisher.OrderEvent) error
}

type DefaultOrderUsecase struct {
	OrderRepo domain.OrderRepository
	Provider  domain.PaymentProvider
	SMS       domain.SMSSender
	Publisher EventPublisher
	Metrics   *metrics.OrderMetrics

	OTPTTL           time.Duration
	InspectionWindow time.Duration
}

func NewDefaultOrderUsecase(
	orderRepo domain.OrderRepository,
	provider domain.PaymentProvider,
	sms domain.SMSSender,
	pub EventPublisher,
	orderMetrics *metrics.OrderMetrics,
	otpTTL time.Duration,
	inspectionWindow time.Duration,
) *DefaultOrderUsecase {
	return &DefaultOrderUsecase{
		OrderRepo:        orderRepo,
		Provider:         provider,
		SMS:              sms,
		Publisher:        pub,
		Metrics:          orderMetrics,
		OTPTTL:           otpTTL,
		InspectionWindow: inspectionWindow,
	}
}

// toPaise converts rupees to the provider's minor unit contract.
func toPaise(amount float64) int64 {
	return int64(math.Round(amount * 100))
}
