package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// OrderMetrics collects counters over the escrow order lifecycle.
type OrderMetrics struct {
	OrdersCreatedTotal       prometheus.CounterVec
	OrdersCreatedAmountTotal prometheus.CounterVec

	OrdersReleasedTotal prometheus.CounterVec
	OrdersRefundedTotal prometheus.CounterVec

	DisputesRaisedTotal prometheus.CounterVec

	SweepReleasedTotal prometheus.Counter
	SweepFailedTotal   prometheus.Counter
	SweepDuration      prometheus.Histogram

	WebhookEventsTotal prometheus.CounterVec

	OrderErrorsTotal prometheus.CounterVec
}

func NewOrderMetrics() *OrderMetrics {
	return &OrderMetrics{
		OrdersCreatedTotal: *promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "orders_created_total",
				Help: "Total count of created orders",
			},
			[]string{"seller_id"},
		),

		OrdersCreatedAmountTotal: *promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "orders_created_amount_total",
				Help: "Total amount of created orders",
			},
			[]string{"seller_id"},
		),

		OrdersReleasedTotal: *promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "orders_released_total",
				Help: "Orders released to the seller, by trigger (buyer_confirm/auto_release/webhook)",
			},
			[]string{"trigger"},
		),

		OrdersRefundedTotal: *promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "orders_refunded_total",
				Help: "Orders refunded to the buyer, by trigger (dispute/manual/webhook)",
			},
			[]string{"trigger"},
		),

		DisputesRaisedTotal: *promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "disputes_raised_total",
				Help: "Disputes raised, by resolution outcome",
			},
			[]string{"resolution"},
		),

		SweepReleasedTotal: promauto.NewCounter(
			prometheus.CounterOpts{
				Name: "inspection_sweep_released_total",
				Help: "Orders force-released by the inspection sweep",
			},
		),

		SweepFailedTotal: promauto.NewCounter(
			prometheus.CounterOpts{
				Name: "inspection_sweep_failed_total",
				Help: "Per-order failures during the inspection sweep",
			},
		),

		SweepDuration: promauto.NewHistogram(
			prometheus.HistogramOpts{
				Name:    "inspection_sweep_duration_seconds",
				Help:    "Duration of one inspection sweep",
				Buckets: prometheus.ExponentialBuckets(0.01, 2, 10),
			},
		),

		WebhookEventsTotal: *promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "payment_webhook_events_total",
				Help: "Payment provider webhook events, by type and outcome",
			},
			[]string{"event", "outcome"},
		),

		OrderErrorsTotal: *promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "order_errors_total",
				Help: "Errors during order processing, by type",
			},
			[]string{"error_type"},
		),
	}
}

func (m *OrderMetrics) RecordOrderCreated(sellerID string, amount float64) {
	if m == nil {
		return
	}
	m.OrdersCreatedTotal.WithLabelValues(sellerID).Inc()
	m.OrdersCreatedAmountTotal.WithLabelValues(sellerID).Add(amount)
}

func (m *OrderMetrics) RecordOrderReleased(trigger string) {
	if m == nil {
		return
	}
	m.OrdersReleasedTotal.WithLabelValues(trigger).Inc()
}

func (m *OrderMetrics) RecordOrderRefunded(trigger string) {
	if m == nil {
		return
	}
	m.OrdersRefundedTotal.WithLabelValues(trigger).Inc()
}

func (m *OrderMetrics) RecordDisputeRaised(resolution string) {
	if m == nil {
		return
	}
	m.DisputesRaisedTotal.WithLabelValues(resolution).Inc()
}

func (m *OrderMetrics) RecordSweep(released, failed int, durationSeconds float64) {
	if m == nil {
		return
	}
	m.SweepReleasedTotal.Add(float64(released))
	m.SweepFailedTotal.Add(float64(failed))
	m.SweepDuration.Observe(durationSeconds)
}

func (m *OrderMetrics) RecordWebhookEvent(event, outcome string) {
	if m == nil {
		return
	}
	m.WebhookEventsTotal.WithLabelValues(event, outcome).Inc()
}

func (m *OrderMetrics) RecordError(errorType string) {
	if m == nil {
		return
	}
	m.OrderErrorsTotal.WithLabelValues(errorType).Inc()
}
