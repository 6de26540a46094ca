package usecase

import (
	"context"

	"github.com/mandiflow/escrow-order-service/internal/domain"
	orderdto "github.com/mandiflow/escrow-order-service/internal/usecase/dto/order"
)

func (uc *DefaultOrderUsecase) GetOrderByID(ctx context.Context, orderID string) (*domain.Order, error) {
	return uc.OrderRepo.GetOrderByID(ctx, orderID)
}

func (uc *DefaultOrderUsecase) ListOrders(ctx context.Context, input *orderdto.ListOrdersInput) ([]*domain.Order, int64, error) {
	page := input.Page
	if page < 1 {
		page = 1
	}
	limit := input.Limit
	if limit < 1 || limit > 100 {
		limit = 20
	}

	statuses := make([]domain.OrderStatus, 0, len(input.Statuses))
	for _, s := range input.Statuses {
		statuses = append(statuses, domain.OrderStatus(s))
	}

	return uc.OrderRepo.ListOrders(ctx, page, limit, domain.OrderFilters{
		BuyerID:  input.BuyerID,
		SellerID: input.SellerID,
		Statuses: statuses,
	})
}
