package observability

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics definitions
var (
	AnalysesTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "fanc_analyses_total",
		Help: "Total number of source files checked, by result.",
	}, []string{"result"})

	DiagnosticsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "fanc_diagnostics_total",
		Help: "Total number of diagnostics reported, by kind.",
	}, []string{"kind"})

	PhaseDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "fanc_analysis_seconds",
		Help:    "Time spent in each compiler phase.",
		Buckets: prometheus.DefBuckets,
	}, []string{"phase"})

	WatcherEventsTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "fanc_watcher_events_total",
		Help: "Total number of file system events received by the watcher.",
	})

	WatcherThrottledTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "fanc_watcher_throttled_total",
		Help: "Total number of re-checks delayed by the watch rate limiter.",
	})
)
