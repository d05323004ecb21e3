package astar

import (
	"context"
	"errors"
	"iter"

	"golang.org/x/exp/constraints"
)

// Cost is the numeric type of edge weights and accumulated path costs.
// Costs are never negative; overflow is the graph's responsibility.
type Cost interface {
	constraints.Integer | constraints.Float
}

// Node is a search state reducible to a comparable identity key.
// Two nodes representing the same logical state must return equal keys.
type Node[KeyType comparable] interface {
	Key() KeyType
}

// Cloner is implemented by nodes that share memory with the graph.
// The engine stores Clone() instead of the node itself.
type Cloner[NodeType any] interface {
	Clone() NodeType
}

// Neighbor represents a reachable node, the edge taken to reach it and its cost.
type Neighbor[NodeType any, EdgeType any, CostType Cost] struct {
	Node NodeType
	Edge EdgeType
	Cost CostType
}

// Graph is generic over node, key, edge and cost types.
// Neighbors is consumed lazily and never materialised by the engine.
type Graph[NodeType Node[KeyType], KeyType comparable, EdgeType any, CostType Cost] interface {
	Start() NodeType
	Neighbors(node NodeType) iter.Seq[Neighbor[NodeType, EdgeType, CostType]]
	// Estimate must never overstate the remaining cost to a goal.
	Estimate(node NodeType) CostType
	IsGoal(node NodeType) bool
}

// NodeVisitor is optionally implemented by a Graph to observe settled nodes.
type NodeVisitor[NodeType any, CostType Cost] interface {
	OnVisitNode(node NodeType, cost CostType)
}

// EdgeVisitor is optionally implemented by a Graph to observe every edge
// considered during relaxation.
type EdgeVisitor[NodeType any, EdgeType any, CostType Cost] interface {
	OnVisitEdge(from NodeType, to NodeType, edge EdgeType, cost CostType)
}

// ErrInconsistentHeuristic reports that a settled node was later reached with
// a strictly lower cost, which only happens with an inconsistent Estimate.
var ErrInconsistentHeuristic = errors.New("astar: settled node improved, heuristic is inconsistent")

// Result contains the outcome of a search
type Result[NodeType any, EdgeType any, CostType Cost] struct {
	Path          []Hop[NodeType, EdgeType]
	Goal          NodeType
	TotalCost     CostType
	ExpandedNodes int
	Found         bool
}

// Options defines parameters for the search.
type Options struct {
	SizeHint int
}

// Option is a function that modifies Options.
type Option func(*Options)

// WithSizeHint preallocates the path table and frontier for about n nodes.
func WithSizeHint(n int) Option {
	return func(options *Options) { options.SizeHint = n }
}

// Search runs the stepper until it reaches a terminal state.
// Not finding a goal is not an error: Result.Found is false.
func Search[NodeType Node[KeyType], KeyType comparable, EdgeType any, CostType Cost](
	contextObject context.Context,
	graph Graph[NodeType, KeyType, EdgeType, CostType],
	options ...Option,
) (Result[NodeType, EdgeType, CostType], error) {
	stepper := NewStepper(graph, options...)
	for {
		if err := contextObject.Err(); err != nil {
			return Result[NodeType, EdgeType, CostType]{ExpandedNodes: stepper.Steps()}, err
		}
		if stepper.Step() {
			break
		}
	}

	result := Result[NodeType, EdgeType, CostType]{ExpandedNodes: stepper.Steps()}
	if goal, cost, found := stepper.FoundGoal(); found {
		result.Goal = goal
		result.TotalCost = cost
		result.Found = true
		result.Path = stepper.Path(goal.Key())
	}
	return result, stepper.Err()
}
