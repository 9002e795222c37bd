package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// Engine Prometheus metrics.
var (
	EngineRequestsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "articles",
			Name:      "engine_requests_total",
			Help:      "Total number of search engine requests",
		},
		[]string{"status"}, // "ok" / "error"
	)

	EngineRequestDuration = prometheus.NewHistogram(
		prometheus.HistogramOpts{
			Namespace: "articles",
			Name:      "engine_request_duration_seconds",
			Help:      "Search engine request duration in seconds",
			Buckets:   []float64{0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10},
		},
	)
)

var engineMetricsRegistered bool

// RegisterEngineMetrics registers Prometheus engine metrics. Must be called once from main.
func RegisterEngineMetrics() {
	if engineMetricsRegistered {
		return
	}
	prometheus.MustRegister(EngineRequestsTotal)
	prometheus.MustRegister(EngineRequestDuration)
	engineMetricsRegistered = true
}

// ObserveEngineRequest records one engine call.
func ObserveEngineRequest(d time.Duration, ok bool) {
	status := "ok"
	if !ok {
		status = "error"
	}
	EngineRequestsTotal.WithLabelValues(status).Inc()
	EngineRequestDuration.Observe(d.Seconds())
}
