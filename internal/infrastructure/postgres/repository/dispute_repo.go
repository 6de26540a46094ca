package repository

import (
	"context"
	"errors"
	"time"

	"github.com/mandiflow/escrow-order-service/internal/domain"
	"github.com/mandiflow/escrow-order-service/internal/infrastructure/postgres/mappers"
	"github.com/mandiflow/escrow-order-service/internal/infrastructure/postgres/models"
	"gorm.io/gorm"
)

type DefaultDisputeRepository struct {
	db *gorm.DB
}

func NewDefaultDisputeRepository(db *gorm.DB) *DefaultDisputeRepository {
	return &DefaultDisputeRepository{db: db}
}

// CreateDisputeWithOrderUpdate writes the dispute record and the conditional
// order update in one transaction. When the order status CAS loses, the whole
// transaction rolls back and ErrConflict is returned.
func (r *DefaultDisputeRepository) CreateDisputeWithOrderUpdate(ctx context.Context, dispute *domain.Dispute, upd domain.StatusUpdate) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		disputeModel := mappers.ToGORMDispute(dispute)
		if err := tx.Create(&disputeModel).Error; err != nil {
			return err
		}

		cols := map[string]interface{}{
			"status":              upd.To,
			"dispute_reason":      upd.SetDisputeReason,
			"resolution_status":   string(upd.SetResolutionStatus),
			"inspection_deadline": nil,
			"updated_at":          time.Now(),
		}
		result := tx.Model(&models.OrderModel{}).
			Where("id = ? AND status = ?", dispute.OrderID, upd.From).
			Updates(cols)
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return domain.ErrConflict
		}

		return nil
	})
}

func (r *DefaultDisputeRepository) GetDisputeByOrderID(ctx context.Context, orderID string) (*domain.Dispute, error) {
	var disputeModel models.DisputeModel
	if err := r.db.WithContext(ctx).Model(&models.DisputeModel{}).Where("order_id = ?", orderID).First(&disputeModel).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrOrderNotFound
		}
		return nil, err
	}

	return mappers.ToDomainDispute(&disputeModel), nil
}
