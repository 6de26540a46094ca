package handlers

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/mandiflow/escrow-order-service/internal/delivery/http/dto/order/response"
	"github.com/mandiflow/escrow-order-service/internal/domain"
)

func writeJSON(w http.ResponseWriter, status int, payload interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(payload)
}

// writeError maps the domain error taxonomy onto HTTP codes. Conflicts get
// their own status so callers can re-fetch and retry instead of failing hard.
func writeError(w http.ResponseWriter, err error) {
	status := http.StatusInternalServerError
	switch {
	case errors.Is(err, domain.ErrValidation),
		errors.Is(err, domain.ErrInvalidTransition),
		errors.Is(err, domain.ErrInvalidOrderState),
		errors.Is(err, domain.ErrInvalidOTP),
		errors.Is(err, domain.ErrOTPExpired),
		errors.Is(err, domain.ErrNoPaymentReference),
		errors.Is(err, domain.ErrInvalidSignature):
		status = http.StatusBadRequest
	case errors.Is(err, domain.ErrOrderNotFound):
		status = http.StatusNotFound
	case errors.Is(err, domain.ErrConflict):
		status = http.StatusConflict
	case errors.Is(err, domain.ErrProviderFailed):
		status = http.StatusBadGateway
	}
	writeJSON(w, status, response.ErrorResponse{Error: err.Error()})
}

// callerID identifies the authenticated party. Authentication itself happens
// upstream; the gateway forwards the verified identity in this header.
func callerID(r *http.Request) string {
	return r.Header.Get("X-User-ID")
}
