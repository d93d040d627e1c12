// Package observability provides Prometheus metrics and HTTP middleware
// for monitoring the schliff gateway.
package observability

import "github.com/prometheus/client_golang/prometheus"

// LLMBuckets defines histogram buckets suited for LLM inference latencies,
// ranging from 100ms to 120s.
var LLMBuckets = []float64{0.1, 0.5, 1, 2, 5, 10, 30, 60, 120}

var (
	// RequestsTotal counts all HTTP requests by method, status class, and path.
	RequestsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "schliff_requests_total",
			Help: "Total requests",
		},
		[]string{"method", "status", "path"},
	)

	// RequestDuration records HTTP request duration in seconds by method and path.
	RequestDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "schliff_request_duration_seconds",
			Help:    "Request duration",
			Buckets: LLMBuckets,
		},
		[]string{"method", "path"},
	)

	// StreamingConnections tracks the number of active SSE streaming connections.
	StreamingConnections = prometheus.NewGauge(
		prometheus.GaugeOpts{
			Name: "schliff_streaming_connections_active",
			Help: "Active streaming connections",
		},
	)

	// TranslationsTotal counts translation calls by provider family, language
	// pair, and outcome (completed, failed, cancelled).
	TranslationsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "schliff_translations_total",
			Help: "Translation calls",
		},
		[]string{"provider", "target_lang", "status"},
	)

	// TranslationErrorsTotal counts failed translations by classified kind.
	TranslationErrorsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "schliff_translation_errors_total",
			Help: "Translation failures by error kind",
		},
		[]string{"kind"},
	)

	// ProviderRequestsTotal counts requests sent to backend providers.
	ProviderRequestsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "schliff_provider_requests_total",
			Help: "Provider requests",
		},
		[]string{"provider", "model", "status"},
	)

	// ProviderLatency records backend provider latency in seconds.
	ProviderLatency = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "schliff_provider_latency_seconds",
			Help:    "Provider latency",
			Buckets: LLMBuckets,
		},
		[]string{"provider", "model"},
	)

	// ValidationsTotal counts validation probes by provider family and outcome.
	ValidationsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "schliff_validations_total",
			Help: "Validation probes",
		},
		[]string{"provider", "status"},
	)

	// RateLimitRejectedTotal counts requests rejected by the rate limiter.
	RateLimitRejectedTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "schliff_ratelimit_rejected_total",
			Help: "Rate limit rejections",
		},
		[]string{"tier"},
	)
)

func init() {
	prometheus.MustRegister(
		RequestsTotal,
		RequestDuration,
		StreamingConnections,
		TranslationsTotal,
		TranslationErrorsTotal,
		ProviderRequestsTotal,
		ProviderLatency,
		ValidationsTotal,
		RateLimitRejectedTotal,
	)
}
