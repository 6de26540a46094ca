package usecase

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/mandiflow/escrow-order-service/internal/domain"
	publisher "github.com/mandiflow/escrow-order-service/internal/infrastructure/kafka"
)

type SweepFailure struct {
	OrderID string `json:"order_id"`
	Error   string `json:"error"`
}

type SweepResult struct {
	ReleasedCount int            `json:"released_count"`
	ReleasedIDs   []string       `json:"released_ids"`
	Failures      []SweepFailure `json:"failures,omitempty"`
}

// SweepExpiredInspections force-releases every order whose inspection
// deadline has lapsed. Each order is handled independently: a lost race
// means a user action (confirm or dispute) won and is not a failure; any
// other error is collected and the sweep continues.
func (uc *DefaultOrderUsecase) SweepExpiredInspections(ctx context.Context) (*SweepResult, error) {
	start := time.Now()

	expired, err := uc.OrderRepo.FindExpiredInspections(ctx, start)
	if err != nil {
		return nil, err
	}

	result := &SweepResult{ReleasedIDs: []string{}}
	for _, order := range expired {
		upd := domain.StatusUpdate{From: domain.StatusInspection, To: domain.StatusReleased}
		if err := uc.OrderRepo.UpdateOrderStatus(ctx, order.ID, upd); err != nil {
			if errors.Is(err, domain.ErrConflict) {
				// a concurrent confirm or dispute landed first
				slog.Info("sweep skipped order, concurrent transition won", "order_id", order.ID)
				continue
			}
			result.Failures = append(result.Failures, SweepFailure{OrderID: order.ID, Error: err.Error()})
			continue
		}

		result.ReleasedCount++
		result.ReleasedIDs = append(result.ReleasedIDs, order.ID)

		go func(event publisher.OrderEvent) {
			if err := uc.Publisher.PublishOrder(event); err != nil {
				slog.Error("failed to publish kafka OrderEvent", "stage", "auto_release", "error", err.Error())
			}
		}(publisher.OrderEvent{
			OrderID:     order.ID,
			BuyerID:     order.BuyerID,
			SellerID:    order.SellerID,
			Status:      string(domain.StatusReleased),
			TotalAmount: order.TotalAmount,
		})
		uc.Metrics.RecordOrderReleased("auto_release")
	}

	uc.Metrics.RecordSweep(result.ReleasedCount, len(result.Failures), time.Since(start).Seconds())

	return result, nil
}
