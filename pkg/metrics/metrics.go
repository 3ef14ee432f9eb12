// Package metrics provides Prometheus metrics for the preprocessing
// pipeline: rows in and out of each stage and per-stage wall time. The
// pipeline records them on every run; exposing them is left to whatever
// process embeds the pipeline.
package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// RecordsLoaded counts raw records materialized per source type.
	RecordsLoaded = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "carprep_records_loaded_total",
			Help: "Raw records loaded, labeled by source",
		},
		[]string{"source"},
	)

	// RecordsDropped counts rows removed, labeled by the stage that
	// removed them.
	RecordsDropped = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "carprep_records_dropped_total",
			Help: "Rows dropped, labeled by pipeline stage",
		},
		[]string{"stage"},
	)

	// RecordsExported counts rows written to the final output.
	RecordsExported = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "carprep_records_exported_total",
			Help: "Rows written to the train-ready output file",
		},
	)

	// StageDuration tracks wall time per pipeline stage.
	StageDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "carprep_stage_duration_seconds",
			Help:    "Wall time per pipeline stage",
			Buckets: prometheus.ExponentialBuckets(0.01, 4, 8),
		},
		[]string{"stage"},
	)
)

// Timer measures a single stage execution.
type Timer struct {
	stage string
	start time.Time
}

// NewTimer starts timing a stage.
func NewTimer(stage string) *Timer {
	return &Timer{stage: stage, start: time.Now()}
}

// Stop records the elapsed time and returns it.
func (t *Timer) Stop() time.Duration {
	elapsed := time.Since(t.start)
	StageDuration.WithLabelValues(t.stage).Observe(elapsed.Seconds())
	return elapsed
}
