// Package metrics defines the Prometheus instrumentation for the processing pipeline.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics holds all Prometheus collectors for the service.
type Metrics struct {
	DocumentsProcessed *prometheus.CounterVec
	OracleCalls        *prometheus.CounterVec
	ActionsExecuted    *prometheus.CounterVec
	PipelineSeconds    prometheus.Histogram
}

// Default creates metrics registered against the default registerer.
func Default() *Metrics {
	return New(prometheus.DefaultRegisterer)
}

// New creates the metric set registered against reg.
func New(reg prometheus.Registerer) *Metrics {
	factory := promauto.With(reg)

	return &Metrics{
		DocumentsProcessed: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "intake_documents_processed_total",
				Help: "Documents processed through the pipeline",
			},
			[]string{"format", "status"},
		),
		OracleCalls: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "intake_oracle_calls_total",
				Help: "Oracle-backed operations by resolution source",
			},
			[]string{"operation", "source"},
		),
		ActionsExecuted: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "intake_actions_executed_total",
				Help: "Downstream actions executed by outcome",
			},
			[]string{"action_type", "outcome"},
		),
		PipelineSeconds: factory.NewHistogram(
			prometheus.HistogramOpts{
				Name:    "intake_pipeline_seconds",
				Help:    "End-to-end pipeline latency",
				Buckets: []float64{0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10, 30},
			},
		),
	}
}
