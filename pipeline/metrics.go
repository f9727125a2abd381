// SPDX-License-Identifier: MIT

package pipeline

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics are the pipeline's Prometheus collectors.
type Metrics struct {
	// Records counts records by result. The derived label counts issue_opened
	// records built from comments; the other labels count input records.
	Records *prometheus.CounterVec

	// SelfLoops counts dropped self-interactions by kind.
	SelfLoops *prometheus.CounterVec

	// Nodes and Edges hold the size of the last built graph per category.
	Nodes *prometheus.GaugeVec
	Edges *prometheus.GaugeVec

	// Runs counts Run calls by status: ok, config_error or error.
	Runs *prometheus.CounterVec

	// ExportDuration tracks per-graph export latency.
	ExportDuration *prometheus.HistogramVec
}

// Record results.
const (
	resultAccepted = "accepted"
	resultInvalid  = "invalid"
	resultSelfLoop = "self_loop"
	resultDerived  = "derived"
)

// NewMetrics registers the pipeline collectors with reg.
// Use a fresh prometheus.NewRegistry() per pipeline in tests.
func NewMetrics(reg prometheus.Registerer) *Metrics {
	f := promauto.With(reg)

	return &Metrics{
		Records: f.NewCounterVec(prometheus.CounterOpts{
			Name: "collabgraph_records_total",
			Help: "Interaction records processed, by result",
		}, []string{"result"}),
		SelfLoops: f.NewCounterVec(prometheus.CounterOpts{
			Name: "collabgraph_dropped_self_loops_total",
			Help: "Self-interactions dropped during aggregation, by kind",
		}, []string{"kind"}),
		Nodes: f.NewGaugeVec(prometheus.GaugeOpts{
			Name: "collabgraph_graph_nodes",
			Help: "Node count of the last built graph, by category",
		}, []string{"category"}),
		Edges: f.NewGaugeVec(prometheus.GaugeOpts{
			Name: "collabgraph_graph_edges",
			Help: "Edge count of the last built graph, by category",
		}, []string{"category"}),
		Runs: f.NewCounterVec(prometheus.CounterOpts{
			Name: "collabgraph_runs_total",
			Help: "Pipeline runs, by status",
		}, []string{"status"}),
		ExportDuration: f.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "collabgraph_export_duration_seconds",
			Help:    "Export duration per graph in seconds",
			Buckets: prometheus.ExponentialBuckets(0.001, 2, 12), // 1ms to ~4s
		}, []string{"category"}),
	}
}
