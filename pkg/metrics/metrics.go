package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// RatingComputations counts team rating evaluations by result (ok|inconsistent|error).
	RatingComputations = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "pitwall_rating_computations_total",
			Help: "Total number of team rating computations",
		},
		[]string{"result"},
	)

	// PerformanceUpdates counts persisted team_performance changes by trigger (write|refresh).
	PerformanceUpdates = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "pitwall_performance_updates_total",
			Help: "Total number of persisted team performance updates",
		},
		[]string{"trigger"},
	)

	// CascadeDeletes counts team deletions by result (success|rollback).
	CascadeDeletes = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "pitwall_team_cascade_deletes_total",
			Help: "Total number of cascading team deletions",
		},
		[]string{"result"},
	)

	// ViewCache counts serialized team view lookups by outcome (hit|miss|error).
	ViewCache = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "pitwall_team_view_cache_total",
			Help: "Team view cache lookups",
		},
		[]string{"outcome"},
	)

	// RefreshDuration measures how long a full performance refresh takes.
	RefreshDuration = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "pitwall_performance_refresh_seconds",
			Help:    "Duration of performance refresh runs",
			Buckets: prometheus.DefBuckets,
		},
	)

	// APILatency measures HTTP request latencies on the ops server.
	APILatency = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "pitwall_http_latency_seconds",
			Help:    "HTTP endpoint latency",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "path", "status"},
	)
)
