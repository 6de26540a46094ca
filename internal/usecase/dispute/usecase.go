package usecase

import (
	"context"

	"github.com/mandiflow/escrow-order-service/internal/domain"
	publisher "github.com/mandiflow/escrow-order-service/internal/infrastructure/kafka"
	"github.com/mandiflow/escrow-order-service/internal/infrastructure/metrics"
	disputedto "github.com/mandiflow/escrow-order-service/internal/usecase/dto/dispute"
)

type DisputeUsecase interface {
	RaiseDispute(ctx context.Context, input *disputedto.RaiseDisputeInput) (*disputedto.RaiseDisputeOutput, error)
	GetDisputeByOrderID(ctx context.Context, orderID string) (*domain.Dispute, error)
}

// DisputePublisher is the slice of the kafka publisher the dispute usecase needs.
type DisputePublisher interface {
	PublishDispute(event publisher.DisputeEvent) error
}

type DefaultDisputeUsecase struct {
	disputeRepo domain.DisputeRepository
	orderRepo   domain.OrderRepository
	provider    domain.PaymentProvider
	publisher   DisputePublisher
	metrics     *metrics.OrderMetrics
}

func NewDefaultDisputeUsecase(
	disputeRepo domain.DisputeRepository,
	orderRepo domain.OrderRepository,
	provider domain.PaymentProvider,
	pub DisputePublisher,
	orderMetrics *metrics.OrderMetrics,
) *DefaultDisputeUsecase {
	return &DefaultDisputeUsecase{
		disputeRepo: disputeRepo,
		orderRepo:   orderRepo,
		provider:    provider,
		publisher:   pub,
		metrics:     orderMetrics,
	}
}

func (disputeUc *DefaultDisputeUsecase) GetDisputeByOrderID(ctx context.Context, orderID string) (*domain.Dispute, error) {
	return disputeUc.disputeRepo.GetDisputeByOrderID(ctx, orderID)
}
