package background

import (
	"context"
	"log"
	"time"

	usecase "github.com/mandiflow/escrow-order-service/internal/usecase/order"
)

type BackgroundTasks struct {
	OrderUsecase  usecase.OrderUsecase
	SweepInterval time.Duration
}

func NewBackgroundTasks(orderUC usecase.OrderUsecase, sweepInterval time.Duration) *BackgroundTasks {
	return &BackgroundTasks{
		OrderUsecase:  orderUC,
		SweepInterval: sweepInterval,
	}
}

func (bt *BackgroundTasks) StartAll(ctx context.Context) {
	go bt.startInspectionSweep(ctx)
}

func (bt *BackgroundTasks) startInspectionSweep(ctx context.Context) {
	ticker := time.NewTicker(bt.SweepInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			result, err := bt.OrderUsecase.SweepExpiredInspections(ctx)
			if err != nil {
				log.Printf("Auto-release sweep error: %v\n", err)
				continue
			}
			if result.ReleasedCount > 0 || len(result.Failures) > 0 {
				log.Printf("Auto-release sweep: released=%d failed=%d\n", result.ReleasedCount, len(result.Failures))
			}
		}
	}
}
