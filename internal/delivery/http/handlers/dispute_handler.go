package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"
	disputerequest "github.com/mandiflow/escrow-order-service/internal/delivery/http/dto/dispute/request"
	disputeresponse "github.com/mandiflow/escrow-order-service/internal/delivery/http/dto/dispute/response"
	orderresponse "github.com/mandiflow/escrow-order-service/internal/delivery/http/dto/order/response"
	disputedto "github.com/mandiflow/escrow-order-service/internal/usecase/dto/dispute"
	usecase "github.com/mandiflow/escrow-order-service/internal/usecase/dispute"
)

type DisputeHandler struct {
	disputeUsecase usecase.DisputeUsecase
}

func NewDisputeHandler(disputeUsecase usecase.DisputeUsecase) *DisputeHandler {
	return &DisputeHandler{disputeUsecase: disputeUsecase}
}

func (h *DisputeHandler) RaiseDispute(w http.ResponseWriter, r *http.Request) {
	var req disputerequest.RaiseDisputeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, orderresponse.ErrorResponse{Error: "invalid request body"})
		return
	}

	output, err := h.disputeUsecase.RaiseDispute(r.Context(), &disputedto.RaiseDisputeInput{
		OrderID:      req.OrderID,
		RaisedBy:     callerID(r),
		Reason:       req.Reason,
		EvidenceURLs: req.EvidenceURLs,
	})
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, disputeresponse.RaiseDisputeResponse{
		DisputeID:        output.DisputeID,
		ResolutionStatus: output.ResolutionStatus,
		Notes:            output.Notes,
		OrderStatus:      output.OrderStatus,
	})
}

func (h *DisputeHandler) GetDisputeByOrder(w http.ResponseWriter, r *http.Request) {
	orderID := chi.URLParam(r, "id")

	dispute, err := h.disputeUsecase.GetDisputeByOrderID(r.Context(), orderID)
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, dispute)
}
