package metrics

import (
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// Outcome labels for generation requests
const (
	OutcomeSuccess         = "success"
	OutcomeInvalidArgument = "invalid_argument"
	OutcomeFailed          = "failed"
)

var (
	generationRequestsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "text2sql_generation_requests_total",
			Help: "Total number of SQL generation requests by outcome.",
		},
		[]string{"outcome"},
	)
	generationAttemptsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "text2sql_generation_attempts_total",
			Help: "Total number of model attempts by result kind.",
		},
		[]string{"kind"},
	)
	generationDurationSeconds = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "text2sql_generation_duration_seconds",
			Help:    "End-to-end SQL generation latency including retries.",
			Buckets: []float64{0.1, 0.25, 0.5, 1, 2, 5, 10, 20, 30, 60},
		},
		[]string{"outcome"},
	)
	catalogTables = prometheus.NewGauge(
		prometheus.GaugeOpts{
			Name: "text2sql_catalog_tables",
			Help: "Number of tables currently held in the schema catalog.",
		},
	)

	httpRequestsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "text2sql_http_requests_total",
			Help: "Total number of HTTP requests.",
		},
		[]string{"method", "path", "status"},
	)
	httpRequestDurationSeconds = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "text2sql_http_request_duration_seconds",
			Help:    "HTTP request latency by route.",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "path", "status"},
	)
)

func init() {
	prometheus.MustRegister(
		generationRequestsTotal,
		generationAttemptsTotal,
		generationDurationSeconds,
		catalogTables,
		httpRequestsTotal,
		httpRequestDurationSeconds,
	)
}

// ObserveGeneration records one finished Generate call
func ObserveGeneration(outcome string, elapsed time.Duration) {
	generationRequestsTotal.WithLabelValues(outcome).Inc()
	generationDurationSeconds.WithLabelValues(outcome).Observe(elapsed.Seconds())
}

// RecordAttempt counts one model attempt; kind is "success" or an error kind
func RecordAttempt(kind string) {
	generationAttemptsTotal.WithLabelValues(kind).Inc()
}

// SetCatalogTables publishes the current catalog size
func SetCatalogTables(n int) {
	if n < 0 {
		n = 0
	}
	catalogTables.Set(float64(n))
}

// ObserveHTTPRequest records one served HTTP request
func ObserveHTTPRequest(method, path string, status int, elapsed time.Duration) {
	code := statusLabel(status)
	httpRequestsTotal.WithLabelValues(method, path, code).Inc()
	httpRequestDurationSeconds.WithLabelValues(method, path, code).Observe(elapsed.Seconds())
}

func statusLabel(status int) string {
	if status <= 0 {
		return "unknown"
	}
	return strconv.Itoa(status)
}
