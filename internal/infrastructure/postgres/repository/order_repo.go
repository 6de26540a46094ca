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

type DefaultOrderRepository struct {
	DB *gorm.DB
}

func NewDefaultOrderRepository(db *gorm.DB) *DefaultOrderRepository {
	return &DefaultOrderRepository{DB: db}
}

func (r *DefaultOrderRepository) CreateOrder(ctx context.Context, order *domain.Order) error {
	orderModel := mappers.ToGORMOrder(order)
	if err := r.DB.WithContext(ctx).Create(orderModel).Error; err != nil {
		return err
	}
	return nil
}

func (r *DefaultOrderRepository) GetOrderByID(ctx context.Context, orderID string) (*domain.Order, error) {
	var order models.OrderModel
	if err := r.DB.WithContext(ctx).First(&order, "id = ?", orderID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrOrderNotFound
		}
		return nil, err
	}

	return mappers.ToDomainOrder(&order), nil
}

func (r *DefaultOrderRepository) GetOrderByPaymentReference(ctx context.Context, paymentRef string) (*domain.Order, error) {
	var order models.OrderModel
	if err := r.DB.WithContext(ctx).First(&order, "payment_reference = ?", paymentRef).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrOrderNotFound
		}
		return nil, err
	}

	return mappers.ToDomainOrder(&order), nil
}

func (r *DefaultOrderRepository) ListOrders(ctx context.Context, page, limit int64, filters domain.OrderFilters) ([]*domain.Order, int64, error) {
	var orderModels []models.OrderModel
	var total int64

	baseQuery := r.DB.WithContext(ctx).Model(&models.OrderModel{})

	if filters.BuyerID != "" {
		baseQuery = baseQuery.Where("buyer_id = ?", filters.BuyerID)
	}
	if filters.SellerID != "" {
		baseQuery = baseQuery.Where("seller_id = ?", filters.SellerID)
	}
	if len(filters.Statuses) > 0 {
		baseQuery = baseQuery.Where("status IN (?)", filters.Statuses)
	}

	if err := baseQuery.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	offset := (page - 1) * limit
	if err := baseQuery.
		Order("created_at DESC").
		Offset(int(offset)).
		Limit(int(limit)).
		Find(&orderModels).Error; err != nil {
		return nil, 0, err
	}

	orders := make([]*domain.Order, len(orderModels))
	for i, orderModel := range orderModels {
		orders[i] = mappers.ToDomainOrder(&orderModel)
	}

	return orders, total, nil
}

// UpdateOrderStatus is the compare-and-swap write every transition goes
// through. The WHERE clause pins the expected current status; zero rows
// affected means another writer won the race.
func (r *DefaultOrderRepository) UpdateOrderStatus(ctx context.Context, orderID string, upd domain.StatusUpdate) error {
	cols := map[string]interface{}{
		"status":     upd.To,
		"updated_at": time.Now(),
	}
	if upd.ClearOTP {
		cols["otp_code"] = ""
		cols["otp_expiry"] = nil
	}
	if upd.To == domain.StatusInspection {
		cols["inspection_deadline"] = upd.SetInspectionDeadline
	} else {
		// deadline is set iff the order sits in the inspection window
		cols["inspection_deadline"] = nil
	}
	if upd.SetPaymentReference != "" {
		cols["payment_reference"] = upd.SetPaymentReference
	}
	if upd.SetDisputeReason != "" {
		cols["dispute_reason"] = upd.SetDisputeReason
	}
	if upd.SetResolutionStatus != domain.ResolutionNone {
		cols["resolution_status"] = string(upd.SetResolutionStatus)
	}

	result := r.DB.WithContext(ctx).Model(&models.OrderModel{}).
		Where("id = ? AND status = ?", orderID, upd.From).
		Updates(cols)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return domain.ErrConflict
	}

	return nil
}

func (r *DefaultOrderRepository) SetOTP(ctx context.Context, orderID string, code string, expiry time.Time, allowed []domain.OrderStatus) error {
	result := r.DB.WithContext(ctx).Model(&models.OrderModel{}).
		Where("id = ? AND status IN (?)", orderID, allowed).
		Updates(map[string]interface{}{
			"otp_code":   code,
			"otp_expiry": expiry,
			"updated_at": time.Now(),
		})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return domain.ErrConflict
	}

	return nil
}

func (r *DefaultOrderRepository) FindExpiredInspections(ctx context.Context, now time.Time) ([]*domain.Order, error) {
	var orderModels []models.OrderModel
	if err := r.DB.WithContext(ctx).
		Where("status = ?", domain.StatusInspection).
		Where("inspection_deadline < ?", now).
		Find(&orderModels).Error; err != nil {
		return nil, err
	}

	orders := make([]*domain.Order, len(orderModels))
	for i, orderModel := range orderModels {
		orders[i] = mappers.ToDomainOrder(&orderModel)
	}

	return orders, nil
}
