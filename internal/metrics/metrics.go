// ================================
// internal/metrics/metrics.go - Self-monitoring for shift-suite core
// ================================

package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// HTTP Request metrics
	HTTPRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "shift_suite_http_requests_total",
			Help: "Total number of HTTP requests processed",
		},
		[]string{"method", "endpoint", "status_code"},
	)

	HTTPRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "shift_suite_http_request_duration_seconds",
			Help:    "HTTP request duration in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "endpoint"},
	)

	// Session cache metrics
	CacheRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "shift_suite_cache_requests_total",
			Help: "Total number of session cache requests",
		},
		[]string{"operation", "result"}, // get/set/delete, hit/miss/success/error
	)

	ActiveSessions = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "shift_suite_sessions_active",
			Help: "Number of active session partitions",
		},
	)

	SessionEvictionsTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "shift_suite_session_evictions_total",
			Help: "Total number of session partitions evicted at capacity",
		},
	)

	// Shortage computation metrics
	ShortageComputeDuration = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "shift_suite_shortage_compute_duration_seconds",
			Help:    "Shortage report computation duration in seconds",
			Buckets: []float64{0.001, 0.005, 0.01, 0.05, 0.1, 0.5, 1.0, 5.0},
		},
	)

	ShortageComputationsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "shift_suite_shortage_computations_total",
			Help: "Total number of shortage report computations",
		},
		[]string{"status"}, // success/error
	)

	// Shared report cache (Valkey) metrics
	ReportCacheRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "shift_suite_report_cache_requests_total",
			Help: "Total number of shared report cache requests",
		},
		[]string{"operation", "result"},
	)
)

// RecordCacheOperation records one session cache operation outcome.
func RecordCacheOperation(operation, result string) {
	CacheRequestsTotal.WithLabelValues(operation, result).Inc()
}

// RecordReportCacheOperation records one shared report cache operation outcome.
func RecordReportCacheOperation(operation, result string) {
	ReportCacheRequestsTotal.WithLabelValues(operation, result).Inc()
}
