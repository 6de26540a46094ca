package usecase

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/mandiflow/escrow-order-service/internal/domain"
	"github.com/stretchr/testify/assert"
)

func seedInspectionWithDeadline(repo *fakeOrderRepo, id string, deadline time.Time) {
	order := seedOrder(repo, id, domain.StatusInspection)
	order.InspectionDeadline = &deadline
	repo.seed(order)
}

func TestSweepExpiredInspections(t *testing.T) {
	uc, repo, _, _ := newTestUsecase()
	ctx := context.Background()

	seedInspectionWithDeadline(repo, "expired-1", time.Now().Add(-1*time.Second))
	seedInspectionWithDeadline(repo, "expired-2", time.Now().Add(-1*time.Hour))
	seedInspectionWithDeadline(repo, "fresh-1", time.Now().Add(1*time.Second))
	seedOrder(repo, "shipped-1", domain.StatusShipped)

	result, err := uc.SweepExpiredInspections(ctx)
	if err != nil {
		t.Fatalf("Expected no error, got: %v", err)
	}

	assert.Equal(t, 2, result.ReleasedCount)
	assert.ElementsMatch(t, []string{"expired-1", "expired-2"}, result.ReleasedIDs)
	assert.Empty(t, result.Failures)

	for _, id := range []string{"expired-1", "expired-2"} {
		stored, _ := repo.GetOrderByID(ctx, id)
		assert.Equal(t, domain.StatusReleased, stored.Status)
		assert.Nil(t, stored.InspectionDeadline)
	}

	fresh, _ := repo.GetOrderByID(ctx, "fresh-1")
	assert.Equal(t, domain.StatusInspection, fresh.Status)

	shipped, _ := repo.GetOrderByID(ctx, "shipped-1")
	assert.Equal(t, domain.StatusShipped, shipped.Status)
}

func TestSweepExpiredInspections_EmptySet(t *testing.T) {
	uc, _, _, _ := newTestUsecase()

	result, err := uc.SweepExpiredInspections(context.Background())
	assert.NoError(t, err)
	assert.Equal(t, 0, result.ReleasedCount)
	assert.Empty(t, result.ReleasedIDs)
	assert.Empty(t, result.Failures)
}

// A concurrent confirm or dispute between the scan and the write is not a
// sweep failure; the user action simply won.
func TestSweepExpiredInspections_LostRaceIsNotFailure(t *testing.T) {
	uc, repo, _, _ := newTestUsecase()
	ctx := context.Background()

	seedInspectionWithDeadline(repo, "raced-1", time.Now().Add(-1*time.Minute))
	repo.failUpdateFor["raced-1"] = domain.ErrConflict
	seedInspectionWithDeadline(repo, "expired-1", time.Now().Add(-1*time.Minute))

	result, err := uc.SweepExpiredInspections(ctx)
	assert.NoError(t, err)
	assert.Equal(t, 1, result.ReleasedCount)
	assert.Equal(t, []string{"expired-1"}, result.ReleasedIDs)
	assert.Empty(t, result.Failures)
}

// One broken order must not stall the rest of the sweep.
func TestSweepExpiredInspections_FailureIsolation(t *testing.T) {
	uc, repo, _, _ := newTestUsecase()
	ctx := context.Background()

	seedInspectionWithDeadline(repo, "broken-1", time.Now().Add(-1*time.Minute))
	repo.failUpdateFor["broken-1"] = errors.New("connection reset")
	seedInspectionWithDeadline(repo, "expired-1", time.Now().Add(-1*time.Minute))

	result, err := uc.SweepExpiredInspections(ctx)
	assert.NoError(t, err)
	assert.Equal(t, 1, result.ReleasedCount)
	assert.Equal(t, []string{"expired-1"}, result.ReleasedIDs)
	if assert.Len(t, result.Failures, 1) {
		assert.Equal(t, "broken-1", result.Failures[0].OrderID)
		assert.Equal(t, "connection reset", result.Failures[0].Error)
	}
}

func TestSweepExpiredInspections_Rerun(t *testing.T) {
	uc, repo, _, _ := newTestUsecase()
	ctx := context.Background()
	seedInspectionWithDeadline(repo, "expired-1", time.Now().Add(-1*time.Minute))

	first, err := uc.SweepExpiredInspections(ctx)
	assert.NoError(t, err)
	assert.Equal(t, 1, first.ReleasedCount)

	// the released order no longer matches the scan
	second, err := uc.SweepExpiredInspections(ctx)
	assert.NoError(t, err)
	assert.Equal(t, 0, second.ReleasedCount)
}
