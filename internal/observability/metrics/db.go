package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Pool gauges are only published by the postgres store backend.
var (
	DBPoolAcquiredConnections = promauto.NewGauge(
		prometheus.GaugeOpts{
			Namespace: Namespace,
			Subsystem: "store",
			Name:      "pool_acquired_connections",
			Help:      "Postgres connections currently checked out by intention and user queries",
		},
	)

	DBPoolIdleConnections = promauto.NewGauge(
		prometheus.GaugeOpts{
			Namespace: Namespace,
			Subsystem: "store",
			Name:      "pool_idle_connections",
			Help:      "Postgres connections idle in the store pool",
		},
	)

	DBPoolMaxConnections = promauto.NewGauge(
		prometheus.GaugeOpts{
			Namespace: Namespace,
			Subsystem: "store",
			Name:      "pool_max_connections",
			Help:      "Configured size limit of the store pool",
		},
	)

	DBPoolTotalConnections = promauto.NewGauge(
		prometheus.GaugeOpts{
			Namespace: Namespace,
			Subsystem: "store",
			Name:      "pool_total_connections",
			Help:      "Postgres connections open in the store pool",
		},
	)

	// Prayer intention writes sit well under 50ms on a healthy database;
	// the upper buckets catch a stalled connection.
	DBQueryDurationSeconds = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: Namespace,
			Subsystem: "store",
			Name:      "query_duration_seconds",
			Help:      "Duration of store statements by operation and table",
			Buckets:   []float64{0.002, 0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 1, 5},
		},
		[]string{"operation", "table"},
	)

	DBQueryErrors = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: Namespace,
			Subsystem: "store",
			Name:      "query_errors_total",
			Help:      "Failed store statements by operation, table and driver error type",
		},
		[]string{"operation", "table", "error_type"},
	)
)
