package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	PasswordsGenerated = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "passgen_passwords_generated_total",
		Help: "Total number of passwords generated",
	}, []string{"source"})

	GenerationFailures = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "passgen_generation_failures_total",
		Help: "Total number of rejected or failed generation requests",
	}, []string{"reason"})

	RateLimitedRequests = promauto.NewCounter(prometheus.CounterOpts{
		Name: "passgen_rate_limited_requests_total",
		Help: "Total number of requests rejected by the rate limiter",
	})

	PasswordLength = promauto.NewHistogram(prometheus.HistogramOpts{
		Name:    "passgen_password_length",
		Help:    "Requested password length",
		Buckets: []float64{4, 8, 12, 16, 24, 32, 48},
	})

	HTTPRequestDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "passgen_http_request_duration_seconds",
		Help:    "HTTP request latency",
		Buckets: prometheus.DefBuckets,
	}, []string{"method", "route", "status"})
)
