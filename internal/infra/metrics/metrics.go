// Package metrics provides Prometheus metrics for Exhale — counters and
// histograms for event logging, progress refreshes, and achievement
// unlocks.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// ─── Events ─────────────────────────────────────────────────────────────────

// EventsLogged tracks logged craving/slip events by type.
var EventsLogged = promauto.NewCounterVec(prometheus.CounterOpts{
	Namespace: "exhale",
	Name:      "events_logged_total",
	Help:      "Total craving/slip events logged.",
}, []string{"type"})

// ─── Progress Refresh ───────────────────────────────────────────────────────

// RefreshTotal tracks progress recalculations.
var RefreshTotal = promauto.NewCounter(prometheus.CounterOpts{
	Namespace: "exhale",
	Name:      "progress_refresh_total",
	Help:      "Total progress recalculations.",
})

// RefreshFailures tracks recalculations degraded by a store failure.
var RefreshFailures = promauto.NewCounter(prometheus.CounterOpts{
	Namespace: "exhale",
	Name:      "progress_refresh_failures_total",
	Help:      "Progress recalculations that degraded to a default value.",
})

// RefreshLatency tracks recalculation duration in seconds.
var RefreshLatency = promauto.NewHistogram(prometheus.HistogramOpts{
	Namespace: "exhale",
	Name:      "progress_refresh_latency_seconds",
	Help:      "Progress recalculation duration in seconds.",
	Buckets:   []float64{0.001, 0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1},
})

// ─── Achievements ───────────────────────────────────────────────────────────

// AchievementsUnlocked tracks achievement unlocks.
var AchievementsUnlocked = promauto.NewCounter(prometheus.CounterOpts{
	Namespace: "exhale",
	Name:      "achievements_unlocked_total",
	Help:      "Total achievements unlocked.",
})
