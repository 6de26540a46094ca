package http

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/mandiflow/escrow-order-service/internal/delivery/http/handlers"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

func NewRouter(orderHandler *handlers.OrderHandler, disputeHandler *handlers.DisputeHandler, webhookHandler *handlers.WebhookHandler) *chi.Mux {
	r := chi.NewRouter()
	r.Use(middleware.RequestID, middleware.RealIP, middleware.Logger, middleware.Recoverer)
	r.Use(middleware.Timeout(30 * time.Second))

	r.Get("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})
	r.Handle("/metrics", promhttp.Handler())

	r.Route("/orders", func(r chi.Router) {
		r.Post("/", orderHandler.CreateOrder)
		r.Get("/", orderHandler.ListOrders)
		r.Get("/{id}", orderHandler.GetOrder)
		r.Patch("/{id}/status", orderHandler.TransitionStatus)
		r.Post("/{id}/otp/generate", orderHandler.GenerateOTP)
		r.Post("/{id}/otp/verify", orderHandler.VerifyOTP)
		r.Post("/{id}/capture", orderHandler.CaptureOrder)
		r.Post("/{id}/refund", orderHandler.RefundOrder)
		r.Get("/{id}/dispute", disputeHandler.GetDisputeByOrder)
	})

	r.Post("/disputes/raise", disputeHandler.RaiseDispute)
	r.Post("/internal/release-payments", orderHandler.SweepExpiredInspections)
	r.Post("/payments/webhook", webhookHandler.HandlePaymentEvent)

	return r
}
