package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// Query outcomes.
const (
	OutcomeOK      = "ok"
	OutcomeError   = "error"
	OutcomeTimeout = "timeout"
)

var (
	catalogQueryDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: "catalog",
			Name:      "query_duration_seconds",
			Help:      "Catalog store read duration in seconds",
			Buckets:   []float64{0.001, 0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2.5, 5},
		},
		[]string{"backend", "op", "outcome"},
	)

	catalogResultRows = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: "catalog",
			Name:      "query_result_rows",
			Help:      "Rows returned per catalog page read",
			Buckets:   prometheus.ExponentialBuckets(1, 2, 8),
		},
		[]string{"backend"},
	)
)

func init() {
	prometheus.MustRegister(catalogQueryDuration)
	prometheus.MustRegister(catalogResultRows)
}

// ObserveQuery records one store read.
func ObserveQuery(backend, op, outcome string, elapsed time.Duration) {
	catalogQueryDuration.WithLabelValues(backend, op, outcome).Observe(elapsed.Seconds())
}

// ObserveRows records the size of a returned page.
func ObserveRows(backend string, n int) {
	catalogResultRows.WithLabelValues(backend).Observe(float64(n))
}
