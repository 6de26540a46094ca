package handlers

import (
	"io"
	"net/http"

	"github.com/mandiflow/escrow-order-service/internal/delivery/http/dto/order/response"
	usecase "github.com/mandiflow/escrow-order-service/internal/usecase/order"
)

type WebhookHandler struct {
	orderUsecase usecase.OrderUsecase
}

func NewWebhookHandler(orderUsecase usecase.OrderUsecase) *WebhookHandler {
	return &WebhookHandler{orderUsecase: orderUsecase}
}

// HandlePaymentEvent verifies the raw-body signature before any parsing.
func (h *WebhookHandler) HandlePaymentEvent(w http.ResponseWriter, r *http.Request) {
	body, err := io.ReadAll(r.Body)
	if err != nil {
		writeJSON(w, http.StatusBadRequest, response.ErrorResponse{Error: "unreadable body"})
		return
	}

	signature := r.Header.Get("X-Razorpay-Signature")
	if signature == "" {
		writeJSON(w, http.StatusBadRequest, response.ErrorResponse{Error: "missing signature"})
		return
	}

	if err := h.orderUsecase.HandlePaymentEvent(r.Context(), body, signature); err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]bool{"success": true})
}
