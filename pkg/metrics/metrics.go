package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// AuthAttempts records login attempts by result (success|failure).
	AuthAttempts = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "bookhaven_auth_attempts_total",
			Help: "Total number of login attempts",
		},
		[]string{"result"},
	)

	// TokensIssued counts signed tokens by purpose (access|refresh|verify|reset).
	TokensIssued = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "bookhaven_tokens_issued_total",
			Help: "Total number of tokens issued",
		},
		[]string{"purpose"},
	)

	// Registrations counts account registrations by result (created|conflict|error).
	Registrations = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "bookhaven_registrations_total",
			Help: "Total number of registration attempts",
		},
		[]string{"result"},
	)

	// APILatency measures HTTP request latencies.
	APILatency = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "bookhaven_api_latency_seconds",
			Help:    "API endpoint latency",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "path", "status"},
	)
)
