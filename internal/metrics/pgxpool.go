package metrics

import (
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/prometheus/client_golang/prometheus"
)

// RegisterPgxPoolMetrics publishes gauges over pool.Stat() so connection
// saturation shows up on /metrics.
func RegisterPgxPoolMetrics(pool *pgxpool.Pool) {
	prometheus.MustRegister(
		prometheus.NewGaugeFunc(prometheus.GaugeOpts{
			Name: "pgxpool_acquired_conns",
			Help: "Connections currently checked out of the pool",
		}, func() float64 {
			return float64(pool.Stat().AcquiredConns())
		}),
		prometheus.NewGaugeFunc(prometheus.GaugeOpts{
			Name: "pgxpool_max_conns",
			Help: "Upper bound on pool size",
		}, func() float64 {
			return float64(pool.Stat().MaxConns())
		}),
		prometheus.NewGaugeFunc(prometheus.GaugeOpts{
			Name: "pgxpool_total_conns",
			Help: "Open connections, acquired plus idle",
		}, func() float64 {
			return float64(pool.Stat().TotalConns())
		}),
		prometheus.NewGaugeFunc(prometheus.GaugeOpts{
			Name: "pgxpool_idle_conns",
			Help: "Open connections waiting to be acquired",
		}, func() float64 {
			return float64(pool.Stat().IdleConns())
		}),
	)
}
