package observe

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics counts search activity per graph name.
type Metrics struct {
	nodesSettled    *prometheus.CounterVec
	edgesConsidered *prometheus.CounterVec
	settledCost     *prometheus.HistogramVec
}

// NewMetrics registers the search metrics with reg.
func NewMetrics(reg prometheus.Registerer) *Metrics {
	factory := promauto.With(reg)
	return &Metrics{
		nodesSettled: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "astar_nodes_settled_total",
			Help: "Nodes popped from the frontier.",
		}, []string{"graph"}),
		edgesConsidered: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "astar_edges_considered_total",
			Help: "Edges relaxed while expanding settled nodes.",
		}, []string{"graph"}),
		settledCost: factory.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "astar_settled_cost",
			Help:    "Accumulated cost of settled nodes.",
			Buckets: prometheus.ExponentialBuckets(1, 4, 10),
		}, []string{"graph"}),
	}
}
