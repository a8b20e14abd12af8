package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// Request counters
	RequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "kawan",
			Subsystem: "server",
			Name:      "requests_total",
			Help:      "Total number of HTTP requests",
		},
		[]string{"method", "endpoint", "status"},
	)

	// Token counters
	TokensPromptTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "kawan",
			Subsystem: "server",
			Name:      "tokens_prompt_total",
			Help:      "Total estimated prompt tokens consumed",
		},
		[]string{"model", "persona"},
	)

	TokensCompletionTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "kawan",
			Subsystem: "server",
			Name:      "tokens_completion_total",
			Help:      "Total estimated completion tokens generated",
		},
		[]string{"model", "persona"},
	)

	// Usage store writes
	UsageRecordsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "kawan",
			Subsystem: "server",
			Name:      "usage_records_total",
			Help:      "Usage events handed to the store, by backend and outcome",
		},
		[]string{"backend", "status"},
	)

	// Provider errors
	ProviderErrorsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "kawan",
			Subsystem: "server",
			Name:      "provider_errors_total",
			Help:      "Total provider call failures",
		},
		[]string{"model", "error_type"},
	)

	// Request duration histogram
	RequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: "kawan",
			Subsystem: "server",
			Name:      "request_duration_seconds",
			Help:      "HTTP request duration in seconds",
			Buckets:   []float64{0.1, 0.5, 1, 2, 5, 10, 30, 60},
		},
		[]string{"method", "endpoint", "status"},
	)

	// LLM inference duration
	LLMDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: "kawan",
			Subsystem: "server",
			Name:      "llm_duration_seconds",
			Help:      "LLM inference duration in seconds",
			Buckets:   []float64{0.5, 1, 2, 5, 10, 30, 60, 120},
		},
		[]string{"model"},
	)

	// Time to first token (streaming)
	FirstTokenDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: "kawan",
			Subsystem: "server",
			Name:      "first_token_seconds",
			Help:      "Time to first token for streaming requests",
			Buckets:   []float64{0.1, 0.25, 0.5, 1, 2, 5},
		},
		[]string{"model"},
	)

	// Active streaming connections gauge
	ActiveStreams = promauto.NewGaugeVec(
		prometheus.GaugeOpts{
			Namespace: "kawan",
			Subsystem: "server",
			Name:      "active_streams",
			Help:      "Currently active streaming connections",
		},
		[]string{"model"},
	)

	// Provider health gauge
	ProviderHealth = promauto.NewGauge(
		prometheus.GaugeOpts{
			Namespace: "kawan",
			Subsystem: "server",
			Name:      "provider_health",
			Help:      "Provider health status (1=healthy, 0=unhealthy)",
		},
	)
)

// RecordRequest records an HTTP request with all relevant labels
func RecordRequest(method, endpoint, status string, durationSec float64) {
	RequestsTotal.WithLabelValues(method, endpoint, status).Inc()
	RequestDuration.WithLabelValues(method, endpoint, status).Observe(durationSec)
}

// RecordTokens records estimated token usage for a completed exchange
func RecordTokens(model, persona string, promptTokens, completionTokens int) {
	TokensPromptTotal.WithLabelValues(model, persona).Add(float64(promptTokens))
	TokensCompletionTotal.WithLabelValues(model, persona).Add(float64(completionTokens))
}

// RecordUsageWrite records the outcome of handing an event to the store
func RecordUsageWrite(backend string, ok bool) {
	status := "ok"
	if !ok {
		status = "error"
	}
	UsageRecordsTotal.WithLabelValues(backend, status).Inc()
}

// RecordProviderError records a provider error
func RecordProviderError(model, errorType string) {
	ProviderErrorsTotal.WithLabelValues(model, errorType).Inc()
}

// RecordLLMDuration records the duration of an LLM inference call
func RecordLLMDuration(model string, durationSec float64) {
	LLMDuration.WithLabelValues(model).Observe(durationSec)
}

// RecordFirstToken records time to first token for streaming
func RecordFirstToken(model string, durationSec float64) {
	FirstTokenDuration.WithLabelValues(model).Observe(durationSec)
}

// SetProviderHealth sets the provider health gauge
func SetProviderHealth(healthy bool) {
	val := 0.0
	if healthy {
		val = 1.0
	}
	ProviderHealth.Set(val)
}

// IncrementActiveStreams increments the active streams gauge
func IncrementActiveStreams(model string) {
	ActiveStreams.WithLabelValues(model).Inc()
}

// DecrementActiveStreams decrements the active streams gauge
func DecrementActiveStreams(model string) {
	ActiveStreams.WithLabelValues(model).Dec()
}
