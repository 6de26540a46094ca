package handlers

import (
	"encoding/json"
	"net/http"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/mandiflow/escrow-order-service/internal/delivery/http/dto/order/request"
	"github.com/mandiflow/escrow-order-service/internal/delivery/http/dto/order/response"
	"github.com/mandiflow/escrow-order-service/internal/domain"
	orderdto "github.com/mandiflow/escrow-order-service/internal/usecase/dto/order"
	usecase "github.com/mandiflow/escrow-order-service/internal/usecase/order"
)

type OrderHandler struct {
	orderUsecase usecase.OrderUsecase
}

func NewOrderHandler(orderUsecase usecase.OrderUsecase) *OrderHandler {
	return &OrderHandler{orderUsecase: orderUsecase}
}

func (h *OrderHandler) CreateOrder(w http.ResponseWriter, r *http.Request) {
	var req request.CreateOrderRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, response.ErrorResponse{Error: "invalid request body"})
		return
	}

	order, err := h.orderUsecase.CreateOrder(r.Context(), &orderdto.CreateOrderInput{
		BuyerID:   req.BuyerID,
		SellerID:  req.SellerID,
		ProductID: req.ProductID,
		Quantity:  req.Quantity,
		UnitPrice: req.UnitPrice,
	})
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusCreated, response.FromDomainOrder(order))
}

func (h *OrderHandler) GetOrder(w http.ResponseWriter, r *http.Request) {
	orderID := chi.URLParam(r, "id")

	order, err := h.orderUsecase.GetOrderByID(r.Context(), orderID)
	if err != nil {
		writeError(w, err)
		return
	}

	// orders outside the caller's scope are indistinguishable from missing
	if caller := callerID(r); caller != "" && caller != order.BuyerID && caller != order.SellerID {
		writeError(w, domain.ErrOrderNotFound)
		return
	}

	writeJSON(w, http.StatusOK, response.FromDomainOrder(order))
}

func (h *OrderHandler) ListOrders(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	page, _ := strconv.ParseInt(q.Get("page"), 10, 64)
	limit, _ := strconv.ParseInt(q.Get("limit"), 10, 64)

	var statuses []string
	if s := q.Get("status"); s != "" {
		statuses = strings.Split(s, ",")
	}

	orders, total, err := h.orderUsecase.ListOrders(r.Context(), &orderdto.ListOrdersInput{
		BuyerID:  q.Get("buyer_id"),
		SellerID: q.Get("seller_id"),
		Statuses: statuses,
		Page:     page,
		Limit:    limit,
	})
	if err != nil {
		writeError(w, err)
		return
	}

	resp := response.ListOrdersResponse{Total: total, Orders: make([]response.OrderResponse, len(orders))}
	for i, order := range orders {
		resp.Orders[i] = response.FromDomainOrder(order)
	}

	writeJSON(w, http.StatusOK, resp)
}

func (h *OrderHandler) TransitionStatus(w http.ResponseWriter, r *http.Request) {
	orderID := chi.URLParam(r, "id")

	var req request.TransitionStatusRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, response.ErrorResponse{Error: "invalid request body"})
		return
	}

	order, err := h.orderUsecase.TransitionStatus(r.Context(), orderID, domain.OrderStatus(req.Status))
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, response.FromDomainOrder(order))
}

func (h *OrderHandler) GenerateOTP(w http.ResponseWriter, r *http.Request) {
	orderID := chi.URLParam(r, "id")

	if err := h.orderUsecase.GenerateOTP(r.Context(), orderID); err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]string{"message": "OTP sent to registered mobile"})
}

func (h *OrderHandler) VerifyOTP(w http.ResponseWriter, r *http.Request) {
	orderID := chi.URLParam(r, "id")

	var req request.VerifyOTPRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.Code == "" {
		writeJSON(w, http.StatusBadRequest, response.ErrorResponse{Error: "code required"})
		return
	}

	order, err := h.orderUsecase.VerifyOTP(r.Context(), orderID, req.Code)
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, response.FromDomainOrder(order))
}

func (h *OrderHandler) CaptureOrder(w http.ResponseWriter, r *http.Request) {
	orderID := chi.URLParam(r, "id")

	if err := h.orderUsecase.CaptureOrder(r.Context(), orderID); err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]string{"message": "payment captured"})
}

func (h *OrderHandler) RefundOrder(w http.ResponseWriter, r *http.Request) {
	orderID := chi.URLParam(r, "id")

	var req request.RefundOrderRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, response.ErrorResponse{Error: "invalid request body"})
		return
	}

	err := h.orderUsecase.RefundOrder(r.Context(), &orderdto.RefundOrderInput{
		OrderID: orderID,
		Reason:  req.Reason,
		Amount:  req.Amount,
	})
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]string{"message": "refund initiated"})
}

// SweepExpiredInspections is the scheduler entry point; the in-process
// ticker and an external cron can both call it safely.
func (h *OrderHandler) SweepExpiredInspections(w http.ResponseWriter, r *http.Request) {
	result, err := h.orderUsecase.SweepExpiredInspections(r.Context())
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, result)
}
