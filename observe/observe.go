// Package observe attaches structured logging and prometheus metrics to a
// search through the engine's visitor hooks.
package observe

import (
	"context"
	"log/slog"

	"github.com/pdrpinto/astar/v2"
	"github.com/pdrpinto/astar/v2/internal/logging"
)

// Options selects the sinks of an instrumented graph.
type Options struct {
	Logger  *slog.Logger
	Metrics *Metrics
}

// Option is a function that modifies Options.
type Option func(*Options)

// WithLogger logs settled nodes at debug level and edges at trace level.
func WithLogger(logger *slog.Logger) Option {
	return func(options *Options) { options.Logger = logger }
}

// WithMetrics counts settled nodes and considered edges.
func WithMetrics(metrics *Metrics) Option {
	return func(options *Options) { options.Metrics = metrics }
}

// Graph wraps a graph and observes it. Hooks of the wrapped graph still run.
type Graph[NodeType astar.Node[KeyType], KeyType comparable, EdgeType any, CostType astar.Cost] struct {
	astar.Graph[NodeType, KeyType, EdgeType, CostType]
	name    string
	logger  *slog.Logger
	metrics *Metrics
}

// Instrument wraps graph under name, the label used in logs and metrics.
func Instrument[NodeType astar.Node[KeyType], KeyType comparable, EdgeType any, CostType astar.Cost](
	graph astar.Graph[NodeType, KeyType, EdgeType, CostType],
	name string,
	options ...Option,
) *Graph[NodeType, KeyType, EdgeType, CostType] {
	opts := Options{Logger: logging.NewNop()}
	for _, o := range options {
		o(&opts)
	}
	return &Graph[NodeType, KeyType, EdgeType, CostType]{
		Graph:   graph,
		name:    name,
		logger:  opts.Logger.With("graph", name),
		metrics: opts.Metrics,
	}
}

func (g *Graph[NodeType, KeyType, EdgeType, CostType]) OnVisitNode(node NodeType, cost CostType) {
	if inner, ok := g.Graph.(astar.NodeVisitor[NodeType, CostType]); ok {
		inner.OnVisitNode(node, cost)
	}
	g.logger.Debug("node settled", "node", node.Key(), "cost", cost)
	if g.metrics != nil {
		g.metrics.nodesSettled.WithLabelValues(g.name).Inc()
		g.metrics.settledCost.WithLabelValues(g.name).Observe(float64(cost))
	}
}

func (g *Graph[NodeType, KeyType, EdgeType, CostType]) OnVisitEdge(from NodeType, to NodeType, edge EdgeType, cost CostType) {
	if inner, ok := g.Graph.(astar.EdgeVisitor[NodeType, EdgeType, CostType]); ok {
		inner.OnVisitEdge(from, to, edge, cost)
	}
	if g.logger.Enabled(context.Background(), logging.LevelTrace) {
		g.logger.Log(context.Background(), logging.LevelTrace, "edge considered",
			"from", from.Key(), "to", to.Key(), "edge", edge, "cost", cost)
	}
	if g.metrics != nil {
		g.metrics.edgesConsidered.WithLabelValues(g.name).Inc()
	}
}
