// Package metrics exposes Prometheus instrumentation for the growth
// pipeline. Registration uses promauto against the default registry; the
// /metrics endpoint serves it via promhttp.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// StatSubmissions counts stat-line submissions, labeled by outcome.
	StatSubmissions = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "evolv11",
		Subsystem: "growth",
		Name:      "stat_submissions_total",
		Help:      "Stat line submissions processed, by outcome.",
	}, []string{"outcome"})

	// SnapshotsReplayed counts snapshots rewritten during chain
	// recalculations, excluding the edited match's own snapshot.
	SnapshotsReplayed = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: "evolv11",
		Subsystem: "growth",
		Name:      "snapshots_replayed_total",
		Help:      "Snapshots recomputed while replaying later matches.",
	})

	// PipelineDuration observes end-to-end recalculation latency.
	PipelineDuration = promauto.NewHistogram(prometheus.HistogramOpts{
		Namespace: "evolv11",
		Subsystem: "growth",
		Name:      "pipeline_duration_seconds",
		Help:      "Duration of the submit-and-recalculate pipeline.",
		Buckets:   prometheus.DefBuckets,
	})

	// EnrichmentFailures counts AI enrichment attempts that were dropped.
	EnrichmentFailures = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: "evolv11",
		Subsystem: "ai",
		Name:      "enrichment_failures_total",
		Help:      "AI enrichment calls that failed and were skipped.",
	})
)

const (
	OutcomeOK       = "ok"
	OutcomeRejected = "rejected"
	OutcomeError    = "error"
)
