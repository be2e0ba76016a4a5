package telemetry

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// PaymentsProcessed counts completed orchestration runs by terminal status.
	PaymentsProcessed = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "payments_processed_total",
		Help: "Number of processed payments by terminal status.",
	}, []string{"status"})

	// BankRequestDuration tracks acquiring bank round-trip latency by outcome.
	BankRequestDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "bank_request_duration_seconds",
		Help:    "Duration of acquiring bank authorization calls.",
		Buckets: prometheus.DefBuckets,
	}, []string{"outcome"})

	// ValidationFailures counts rejected requests by failing field.
	ValidationFailures = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "payment_validation_failures_total",
		Help: "Number of field validation failures on payment requests.",
	}, []string{"field"})
)
