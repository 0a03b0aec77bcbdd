package observability

import (
	"github.com/prometheus/client_golang/prometheus"
)

// Metrics holds the Prometheus counters and histograms for the ETL runs.
type Metrics struct {
	DocumentsProcessed *prometheus.CounterVec // label: outcome={persisted,rejected_duplicate,rejected_invalid,rejected_parse_error,store_error}
	DocumentDuration   prometheus.Histogram
	RunDuration        prometheus.Histogram
	RowsExported       prometheus.Counter
}

// NewMetrics creates and registers all pipeline metrics with the default
// Prometheus registry.
func NewMetrics() *Metrics {
	m := &Metrics{
		DocumentsProcessed: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "incident_etl",
			Name:      "documents_processed_total",
			Help:      "Documents processed, by final outcome.",
		}, []string{"outcome"}),
		DocumentDuration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: "incident_etl",
			Name:      "document_processing_duration_seconds",
			Help:      "Time spent detecting, extracting, and persisting one document.",
			Buckets:   []float64{0.001, 0.005, 0.01, 0.05, 0.1, 0.5, 1, 2.5},
		}),
		RunDuration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: "incident_etl",
			Name:      "run_duration_seconds",
			Help:      "Duration of a complete directory processing run.",
			Buckets:   []float64{0.01, 0.1, 0.5, 1, 5, 15, 60, 300},
		}),
		RowsExported: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "incident_etl",
			Name:      "rows_exported_total",
			Help:      "Incident rows written to export files.",
		}),
	}

	prometheus.MustRegister(
		m.DocumentsProcessed,
		m.DocumentDuration,
		m.RunDuration,
		m.RowsExported,
	)

	return m
}

// NewMetricsForTesting creates Metrics with a fresh registry to avoid
// "already registered" panics when called from multiple tests.
func NewMetricsForTesting() *Metrics {
	return &Metrics{
		DocumentsProcessed: prometheus.NewCounterVec(prometheus.CounterOpts{Namespace: "incident_etl", Name: "documents_processed_total"}, []string{"outcome"}),
		DocumentDuration:   prometheus.NewHistogram(prometheus.HistogramOpts{Namespace: "incident_etl", Name: "document_processing_duration_seconds"}),
		RunDuration:        prometheus.NewHistogram(prometheus.HistogramOpts{Namespace: "incident_etl", Name: "run_duration_seconds"}),
		RowsExported:       prometheus.NewCounter(prometheus.CounterOpts{Namespace: "incident_etl", Name: "rows_exported_total"}),
	}
}
