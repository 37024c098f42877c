package db

import (
	"time"

	"github.com/jackc/pgx/v4/pgxpool"

	"github.com/kariua-parish/parish-site/internal/common/constants"
	"github.com/kariua-parish/parish-site/internal/observability/metrics"
)

// StartPoolMetrics publishes pool statistics every interval until stop is closed.
func StartPoolMetrics(pool *pgxpool.Pool, interval time.Duration, stop <-chan struct{}) {
	if interval <= 0 {
		interval = constants.DBPoolMetricsInterval
	}

	ticker := time.NewTicker(interval)
	go func() {
		defer ticker.Stop()
		for {
			select {
			case <-ticker.C:
				stats := pool.Stat()
				metrics.DBPoolAcquiredConnections.Set(float64(stats.AcquiredConns()))
				metrics.DBPoolIdleConnections.Set(float64(stats.IdleConns()))
				metrics.DBPoolMaxConnections.Set(float64(stats.MaxConns()))
				metrics.DBPoolTotalConnections.Set(float64(stats.TotalConns()))
			case <-stop:
				return
			}
		}
	}()
}
