// Package metrics registers the prometheus collectors exposed on /metrics.
package metrics

import "github.com/prometheus/client_golang/prometheus"

var (
	// SessionsCreated counts game sessions created since start.
	SessionsCreated = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "rps_sessions_created_total",
			Help: "Total number of game sessions created",
		},
	)

	// RoundsResolved counts finished rounds by game mode and outcome.
	RoundsResolved = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "rps_rounds_resolved_total",
			Help: "Total number of resolved rounds",
		},
		[]string{"mode", "outcome"},
	)

	// PendingResolutions tracks bot vs bot rounds waiting on the think delay.
	PendingResolutions = prometheus.NewGauge(
		prometheus.GaugeOpts{
			Name: "rps_pending_resolutions",
			Help: "Number of bot vs bot rounds scheduled but not yet resolved",
		},
	)
)

func init() {
	prometheus.MustRegister(SessionsCreated)
	prometheus.MustRegister(RoundsResolved)
	prometheus.MustRegister(PendingResolutions)
}
