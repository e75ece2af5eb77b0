// Package metrics provides Prometheus instrumentation for goSessions. It
// exposes counters for store operations and reap sweeps and a histogram for
// sweep duration.
package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	// OperationsTotal counts facade operations, labeled by operation
	// ("get", "set", "destroy", "touch", "clear", "reap") and result
	// ("ok", "miss", "error"). A "miss" is a get or touch against an absent
	// or expired session.
	OperationsTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "gosessions_operations_total",
		Help: "Total number of session store operations",
	}, []string{"op", "result"})

	// ReapRunsTotal counts completed reap sweeps, including empty ones.
	ReapRunsTotal = prometheus.NewCounter(prometheus.CounterOpts{
		Name: "gosessions_reap_runs_total",
		Help: "Total number of completed reap sweeps",
	})

	// ReapedSessionsTotal counts records deleted by reap sweeps.
	ReapedSessionsTotal = prometheus.NewCounter(prometheus.CounterOpts{
		Name: "gosessions_reaped_sessions_total",
		Help: "Total number of expired session records deleted by the reaper",
	})

	// ReapDuration records sweep duration in seconds.
	ReapDuration = prometheus.NewHistogram(prometheus.HistogramOpts{
		Name:    "gosessions_reap_duration_seconds",
		Help:    "Reap sweep duration in seconds",
		Buckets: []float64{.001, .005, .01, .05, .1, .5, 1, 5, 10},
	})
)

func init() {
	prometheus.MustRegister(
		OperationsTotal,
		ReapRunsTotal,
		ReapedSessionsTotal,
		ReapDuration,
	)
}

// Handler returns an HTTP handler serving the metrics endpoint.
func Handler() http.Handler {
	return promhttp.Handler()
}
