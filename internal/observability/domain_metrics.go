package observability

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

var (
	pipelineRunsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "sqlpilot_pipeline_runs_total",
			Help: "Total pipeline runs by outcome (success or failing stage).",
		},
		[]string{"outcome"},
	)
	pipelineStageDurationMs = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "sqlpilot_pipeline_stage_duration_ms",
			Help:    "Pipeline stage latency in milliseconds.",
			Buckets: []float64{1, 5, 10, 25, 50, 100, 250, 500, 1000, 2500, 5000, 10000},
		},
		[]string{"stage"},
	)
	validationRejectionsTotal = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "sqlpilot_validation_rejections_total",
			Help: "Total candidate queries rejected by the read-only gate.",
		},
	)
)

func init() {
	prometheus.MustRegister(pipelineRunsTotal, pipelineStageDurationMs, validationRejectionsTotal)
}

func ObservePipelineRun(outcome string) {
	pipelineRunsTotal.WithLabelValues(outcome).Inc()
}

func ObservePipelineStage(stage string, duration time.Duration) {
	pipelineStageDurationMs.WithLabelValues(stage).Observe(float64(duration.Milliseconds()))
}

func IncrementValidationRejection() {
	validationRejectionsTotal.Inc()
}
