package usecase

import (
	"context"
	"sync"
	"time"

	"github.com/mandiflow/escrow-order-service/internal/domain"
	publisher "github.com/mandiflow/escrow-order-service/internal/infrastructure/kafka"
)

// fakeOrderRepo is an in-memory OrderRepository with the same conditional
// write semantics as the postgres implementation.
type fakeOrderRepo struct {
	mu     sync.Mutex
	orders map[string]*domain.Order

	// failUpdateFor injects an error on UpdateOrderStatus for specific ids.
	failUpdateFor map[string]error
}

func newFakeOrderRepo() *fakeOrderRepo {
	return &fakeOrderRepo{
		orders:        make(map[string]*domain.Order),
		failUpdateFor: make(map[string]error),
	}
}

func copyOrder(o *domain.Order) *domain.Order {
	cp := *o
	if o.OTPExpiry != nil {
		e := *o.OTPExpiry
		cp.OTPExpiry = &e
	}
	if o.InspectionDeadline != nil {
		d := *o.InspectionDeadline
		cp.InspectionDeadline = &d
	}
	return &cp
}

func (r *fakeOrderRepo) CreateOrder(ctx context.Context, order *domain.Order) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.orders[order.ID] = copyOrder(order)
	return nil
}

func (r *fakeOrderRepo) GetOrderByID(ctx context.Context, orderID string) (*domain.Order, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	order, ok := r.orders[orderID]
	if !ok {
		return nil, domain.ErrOrderNotFound
	}
	return copyOrder(order), nil
}

func (r *fakeOrderRepo) GetOrderByPaymentReference(ctx context.Context, paymentRef string) (*domain.Order, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, order := range r.orders {
		if order.PaymentReference == paymentRef && paymentRef != "" {
			return copyOrder(order), nil
		}
	}
	return nil, domain.ErrOrderNotFound
}

func (r *fakeOrderRepo) ListOrders(ctx context.Context, page, limit int64, filters domain.OrderFilters) ([]*domain.Order, int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var matched []*domain.Order
	for _, order := range r.orders {
		if filters.BuyerID != "" && order.BuyerID != filters.BuyerID {
			continue
		}
		if filters.SellerID != "" && order.SellerID != filters.SellerID {
			continue
		}
		if len(filters.Statuses) > 0 {
			found := false
			for _, s := range filters.Statuses {
				if order.Status == s {
					found = true
					break
				}
			}
			if !found {
				continue
			}
		}
		matched = append(matched, copyOrder(order))
	}

	total := int64(len(matched))
	start := (page - 1) * limit
	if start >= total {
		return []*domain.Order{}, total, nil
	}
	end := start + limit
	if end > total {
		end = total
	}
	return matched[start:end], total, nil
}

func (r *fakeOrderRepo) UpdateOrderStatus(ctx context.Context, orderID string, upd domain.StatusUpdate) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if err, ok := r.failUpdateFor[orderID]; ok {
		return err
	}

	order, ok := r.orders[orderID]
	if !ok {
		return domain.ErrOrderNotFound
	}
	if order.Status != upd.From {
		return domain.ErrConflict
	}

	order.Status = upd.To
	order.UpdatedAt = time.Now()
	if upd.ClearOTP {
		order.OTPCode = ""
		order.OTPExpiry = nil
	}
	if upd.To == domain.StatusInspection {
		order.InspectionDeadline = upd.SetInspectionDeadline
	} else {
		order.InspectionDeadline = nil
	}
	if upd.SetPaymentReference != "" {
		order.PaymentReference = upd.SetPaymentReference
	}
	if upd.SetDisputeReason != "" {
		order.DisputeReason = upd.SetDisputeReason
	}
	if upd.SetResolutionStatus != domain.ResolutionNone {
		order.ResolutionStatus = upd.SetResolutionStatus
	}
	return nil
}

func (r *fakeOrderRepo) SetOTP(ctx context.Context, orderID string, code string, expiry time.Time, allowed []domain.OrderStatus) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	order, ok := r.orders[orderID]
	if !ok {
		return domain.ErrConflict
	}
	legal := false
	for _, s := range allowed {
		if order.Status == s {
			legal = true
			break
		}
	}
	if !legal {
		return domain.ErrConflict
	}

	order.OTPCode = code
	order.OTPExpiry = &expiry
	order.UpdatedAt = time.Now()
	return nil
}

func (r *fakeOrderRepo) FindExpiredInspections(ctx context.Context, now time.Time) ([]*domain.Order, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var expired []*domain.Order
	for _, order := range r.orders {
		if order.Status == domain.StatusInspection &&
			order.InspectionDeadline != nil &&
			order.InspectionDeadline.Before(now) {
			expired = append(expired, copyOrder(order))
		}
	}
	return expired, nil
}

// seed puts an order directly into the repo, bypassing the usecase.
func (r *fakeOrderRepo) seed(order *domain.Order) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.orders[order.ID] = copyOrder(order)
}

type providerCall struct {
	paymentRef  string
	amountPaise int64
}

type fakeProvider struct {
	mu sync.Mutex

	createErr  error
	captureErr error
	refundErr  error

	createdOrders []providerCall
	captures      []providerCall
	refunds       []providerCall

	signatureValid bool
}

func (p *fakeProvider) CreateProviderOrder(ctx context.Context, localOrderID string, amountPaise int64) (string, error) {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.createErr != nil {
		return "", p.createErr
	}
	p.createdOrders = append(p.createdOrders, providerCall{paymentRef: localOrderID, amountPaise: amountPaise})
	return "order_prov_" + localOrderID, nil
}

func (p *fakeProvider) CapturePayment(ctx context.Context, paymentRef string, amountPaise int64) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.captureErr != nil {
		return p.captureErr
	}
	p.captures = append(p.captures, providerCall{paymentRef: paymentRef, amountPaise: amountPaise})
	return nil
}

func (p *fakeProvider) RefundPayment(ctx context.Context, paymentRef string, amountPaise int64) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.refundErr != nil {
		return p.refundErr
	}
	p.refunds = append(p.refunds, providerCall{paymentRef: paymentRef, amountPaise: amountPaise})
	return nil
}

func (p *fakeProvider) VerifyWebhookSignature(body []byte, signature string) bool {
	return p.signatureValid
}

type fakeSMS struct {
	mu      sync.Mutex
	sendErr error
	sent    []struct{ partyID, code string }
}

func (s *fakeSMS) SendOTP(ctx context.Context, partyID, code string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.sendErr != nil {
		return s.sendErr
	}
	s.sent = append(s.sent, struct{ partyID, code string }{partyID, code})
	return nil
}

type fakePublisher struct {
	mu     sync.Mutex
	events []publisher.OrderEvent
}

func (p *fakePublisher) PublishOrder(event publisher.OrderEvent) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.events = append(p.events, event)
	return nil
}

func newTestUsecase() (*DefaultOrderUsecase, *fakeOrderRepo, *fakeProvider, *fakeSMS) {
	repo := newFakeOrderRepo()
	provider := &fakeProvider{signatureValid: true}
	sms := &fakeSMS{}
	uc := NewDefaultOrderUsecase(repo, provider, sms, &fakePublisher{}, nil, 15*time.Minute, 24*time.Hour)
	return uc, repo, provider, sms
}
