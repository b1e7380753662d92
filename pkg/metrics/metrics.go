// Package metrics holds Prometheus instrumentation for the pipeline stages.
package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Registry holds all metrics for the application
type Registry struct {
	registry *prometheus.Registry

	// Ingestion metrics
	RowsIngestedTotal   prometheus.Counter
	InvalidWeightsTotal prometheus.Counter
	MalformedRowsTotal  prometheus.Counter
	BuildDuration       prometheus.Histogram
	GraphNodesTotal     prometheus.Gauge
	GraphEdgesTotal     prometheus.Gauge

	// Labeling metrics
	LabelDuration        prometheus.Histogram
	CommunitiesTotal     prometheus.Gauge
	SingletonCommunities prometheus.Gauge
}

// NewRegistry creates a registry with all pipeline metrics registered.
func NewRegistry() *Registry {
	reg := prometheus.NewRegistry()

	r := &Registry{registry: reg}

	r.RowsIngestedTotal = promauto.With(reg).NewCounter(
		prometheus.CounterOpts{
			Name: "cohort_rows_ingested_total",
			Help: "Total number of interaction rows accepted during construction",
		},
	)

	r.InvalidWeightsTotal = promauto.With(reg).NewCounter(
		prometheus.CounterOpts{
			Name: "cohort_invalid_weights_total",
			Help: "Rows whose weight field failed to parse and fell back to the default",
		},
	)

	r.MalformedRowsTotal = promauto.With(reg).NewCounter(
		prometheus.CounterOpts{
			Name: "cohort_malformed_rows_total",
			Help: "Rows missing identifier fields, each of which aborts a build",
		},
	)

	r.BuildDuration = promauto.With(reg).NewHistogram(
		prometheus.HistogramOpts{
			Name:    "cohort_build_duration_seconds",
			Help:    "Duration of graph construction in seconds",
			Buckets: []float64{0.01, 0.05, 0.1, 0.5, 1.0, 5.0, 30.0},
		},
	)

	r.GraphNodesTotal = promauto.With(reg).NewGauge(
		prometheus.GaugeOpts{
			Name: "cohort_graph_nodes_total",
			Help: "Number of nodes in the most recently built graph",
		},
	)

	r.GraphEdgesTotal = promauto.With(reg).NewGauge(
		prometheus.GaugeOpts{
			Name: "cohort_graph_edges_total",
			Help: "Number of distinct directed edges in the most recently built graph",
		},
	)

	r.LabelDuration = promauto.With(reg).NewHistogram(
		prometheus.HistogramOpts{
			Name:    "cohort_label_duration_seconds",
			Help:    "Duration of community labeling in seconds",
			Buckets: []float64{0.001, 0.01, 0.05, 0.1, 0.5, 1.0, 5.0},
		},
	)

	r.CommunitiesTotal = promauto.With(reg).NewGauge(
		prometheus.GaugeOpts{
			Name: "cohort_communities_total",
			Help: "Number of communities in the most recent labeling",
		},
	)

	r.SingletonCommunities = promauto.With(reg).NewGauge(
		prometheus.GaugeOpts{
			Name: "cohort_singleton_communities",
			Help: "Number of single-node communities in the most recent labeling",
		},
	)

	return r
}

// GetPrometheusRegistry returns the underlying Prometheus registry for
// exposition or test gathering.
func (r *Registry) GetPrometheusRegistry() *prometheus.Registry {
	return r.registry
}

// RecordBuild records the outcome of one graph construction.
func (r *Registry) RecordBuild(duration time.Duration, nodes, edges int) {
	r.BuildDuration.Observe(duration.Seconds())
	r.GraphNodesTotal.Set(float64(nodes))
	r.GraphEdgesTotal.Set(float64(edges))
}

// RecordLabeling records the outcome of one community labeling pass.
func (r *Registry) RecordLabeling(duration time.Duration, communities, singletons int) {
	r.LabelDuration.Observe(duration.Seconds())
	r.CommunitiesTotal.Set(float64(communities))
	r.SingletonCommunities.Set(float64(singletons))
}
