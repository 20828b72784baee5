package observability

import (
	"github.com/prometheus/client_golang/prometheus"
)

// Metrics holds all application metrics.
type Metrics struct {
	// Payment metrics
	PaymentsSubmitted *prometheus.CounterVec
	PaymentDecisions  *prometheus.CounterVec
	PendingPayments   prometheus.Gauge
	ValidationErrors  *prometheus.CounterVec

	// Auth metrics
	AuthAttempts  *prometheus.CounterVec
	TokensRevoked prometheus.Counter

	// HTTP metrics
	HTTPRequestsTotal   *prometheus.CounterVec
	HTTPRequestDuration *prometheus.HistogramVec
}

// NewMetrics creates and registers all metrics against the given registry.
// If reg is nil, prometheus.DefaultRegisterer is used.
func NewMetrics(namespace string, reg prometheus.Registerer) *Metrics {
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}

	m := &Metrics{
		PaymentsSubmitted: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "payments_submitted_total",
				Help:      "Total number of payment submissions by currency and outcome",
			},
			[]string{"currency", "outcome"},
		),
		PaymentDecisions: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "payment_decisions_total",
				Help:      "Total number of review decisions by outcome",
			},
			[]string{"decision"},
		),
		PendingPayments: prometheus.NewGauge(
			prometheus.GaugeOpts{
				Namespace: namespace,
				Name:      "pending_payments",
				Help:      "Number of payments currently awaiting review",
			},
		),
		ValidationErrors: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "validation_errors_total",
				Help:      "Total number of rejected requests by field",
			},
			[]string{"field"},
		),
		AuthAttempts: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "auth_attempts_total",
				Help:      "Total number of register/login attempts by operation and outcome",
			},
			[]string{"operation", "outcome"},
		),
		TokensRevoked: prometheus.NewCounter(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "tokens_revoked_total",
				Help:      "Total number of tokens revoked by logout",
			},
		),
		HTTPRequestsTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "http_requests_total",
				Help:      "Total number of HTTP requests",
			},
			[]string{"method", "path", "status"},
		),
		HTTPRequestDuration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: namespace,
				Name:      "http_request_duration_seconds",
				Help:      "HTTP request duration in seconds",
				Buckets:   prometheus.DefBuckets,
			},
			[]string{"method", "path"},
		),
	}

	reg.MustRegister(
		m.PaymentsSubmitted,
		m.PaymentDecisions,
		m.PendingPayments,
		m.ValidationErrors,
		m.AuthAttempts,
		m.TokensRevoked,
		m.HTTPRequestsTotal,
		m.HTTPRequestDuration,
	)

	return m
}
