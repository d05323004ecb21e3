package astar

import (
	"fmt"
	"iter"
)

// State is the phase of a Stepper.
type State int

const (
	// Open: the frontier is non-empty and no goal has been settled.
	Open State = iota
	// GoalFound: a goal node was settled. Terminal.
	GoalFound
	// Exhausted: the frontier emptied without settling a goal. Terminal.
	Exhausted
)

func (state State) String() string {
	switch state {
	case Open:
		return "open"
	case GoalFound:
		return "goal-found"
	case Exhausted:
		return "exhausted"
	default:
		return fmt.Sprintf("State(%d)", int(state))
	}
}

// Terminal reports whether further steps are no-ops.
func (state State) Terminal() bool { return state != Open }

// StepSnapshot exposes the per-iteration state of the search
type StepSnapshot[KeyType comparable] struct {
	Current   KeyType
	Open      map[KeyType]bool
	Closed    map[KeyType]bool
	State     State
	StepIndex int
}

// Stepper drives the search one node expansion at a time. It owns its path
// table and frontier; the graph is only read.
type Stepper[NodeType Node[KeyType], KeyType comparable, EdgeType any, CostType Cost] struct {
	graph       Graph[NodeType, KeyType, EdgeType, CostType]
	nodeVisitor NodeVisitor[NodeType, CostType]
	edgeVisitor EdgeVisitor[NodeType, EdgeType, CostType]

	table    *PathTable[NodeType, KeyType, EdgeType, CostType]
	frontier *Frontier[KeyType, CostType]
	startKey KeyType

	current   KeyType
	goalKey   KeyType
	state     State
	stepCount int
	err       error
}

// NewStepper creates a stepper with the graph's start node open.
func NewStepper[NodeType Node[KeyType], KeyType comparable, EdgeType any, CostType Cost](
	graph Graph[NodeType, KeyType, EdgeType, CostType],
	options ...Option,
) *Stepper[NodeType, KeyType, EdgeType, CostType] {
	var opts Options
	for _, o := range options {
		o(&opts)
	}

	s := &Stepper[NodeType, KeyType, EdgeType, CostType]{
		graph:    graph,
		table:    newPathTable[NodeType, KeyType, EdgeType, CostType](opts.SizeHint),
		frontier: NewFrontier[KeyType, CostType](opts.SizeHint),
	}
	s.nodeVisitor, _ = graph.(NodeVisitor[NodeType, CostType])
	s.edgeVisitor, _ = graph.(EdgeVisitor[NodeType, EdgeType, CostType])

	start := cloneNode(graph.Start())
	s.startKey = start.Key()
	s.current = s.startKey
	s.table.insertStart(s.startKey, start)
	s.frontier.Push(s.startKey, graph.Estimate(start))
	return s
}

// Step settles the best open node and relaxes its neighbors. It returns true
// once the search is terminal; calling it again changes nothing.
func (s *Stepper[NodeType, KeyType, EdgeType, CostType]) Step() bool {
	if s.state.Terminal() {
		return true
	}

	key, _, ok := s.frontier.PopMin()
	if !ok {
		s.state = Exhausted
		return true
	}
	s.stepCount++
	s.current = key
	entry := s.table.get(key)
	entry.Settled = true
	if s.nodeVisitor != nil {
		s.nodeVisitor.OnVisitNode(entry.Node, entry.Cost)
	}

	if s.graph.IsGoal(entry.Node) {
		s.goalKey = key
		s.state = GoalFound
		return true
	}

	for neighbor := range s.graph.Neighbors(entry.Node) {
		if s.edgeVisitor != nil {
			s.edgeVisitor.OnVisitEdge(entry.Node, neighbor.Node, neighbor.Edge, neighbor.Cost)
		}
		s.expand(key, entry.Cost, neighbor)
	}

	if s.frontier.Len() == 0 {
		s.state = Exhausted
		return true
	}
	return false
}

// Run steps until the search is terminal and returns the final state.
func (s *Stepper[NodeType, KeyType, EdgeType, CostType]) Run() State {
	for !s.Step() {
	}
	return s.state
}

func (s *Stepper[NodeType, KeyType, EdgeType, CostType]) expand(
	fromKey KeyType,
	fromCost CostType,
	neighbor Neighbor[NodeType, EdgeType, CostType],
) Outcome {
	proposal := RelaxProposal[NodeType, KeyType, EdgeType, CostType]{
		FromKey: fromKey,
		ToKey:   neighbor.Node.Key(),
		ToNode:  neighbor.Node,
		Edge:    neighbor.Edge,
		GScore:  fromCost + neighbor.Cost,
	}
	outcome := s.table.relax(proposal)
	switch outcome {
	case Discovered:
		s.frontier.Push(proposal.ToKey, proposal.GScore+s.graph.Estimate(neighbor.Node))
	case Improved:
		s.frontier.Decrease(proposal.ToKey, proposal.GScore+s.graph.Estimate(neighbor.Node))
	case Stale:
		if s.err == nil {
			s.err = fmt.Errorf("%w: key %v reached at cost %v after settling at %v",
				ErrInconsistentHeuristic, proposal.ToKey, proposal.GScore, s.table.get(proposal.ToKey).Cost)
		}
	}
	return outcome
}

func (s *Stepper[NodeType, KeyType, EdgeType, CostType]) State() State { return s.state }

// Err returns the first heuristic inconsistency observed, if any.
func (s *Stepper[NodeType, KeyType, EdgeType, CostType]) Err() error { return s.err }

// Steps returns the number of settled nodes.
func (s *Stepper[NodeType, KeyType, EdgeType, CostType]) Steps() int { return s.stepCount }

func (s *Stepper[NodeType, KeyType, EdgeType, CostType]) StartKey() KeyType { return s.startKey }

// FoundGoal returns the settled goal node and its cost.
func (s *Stepper[NodeType, KeyType, EdgeType, CostType]) FoundGoal() (NodeType, CostType, bool) {
	if s.state != GoalFound {
		var node NodeType
		var cost CostType
		return node, cost, false
	}
	entry := s.table.get(s.goalKey)
	return entry.Node, entry.Cost, true
}

// Cost returns the best accumulated cost known for an open or settled key.
func (s *Stepper[NodeType, KeyType, EdgeType, CostType]) Cost(key KeyType) (CostType, bool) {
	entry := s.table.get(key)
	if entry == nil {
		var cost CostType
		return cost, false
	}
	return entry.Cost, true
}

// Settled reports whether key was popped, meaning its cost is final.
func (s *Stepper[NodeType, KeyType, EdgeType, CostType]) Settled(key KeyType) bool {
	entry := s.table.get(key)
	return entry != nil && entry.Settled
}

// Lookup returns the path entry stored for key.
func (s *Stepper[NodeType, KeyType, EdgeType, CostType]) Lookup(key KeyType) (PathEntry[NodeType, KeyType, EdgeType, CostType], bool) {
	return s.table.Lookup(key)
}

// Predecessors yields every key tied for the best path into key.
func (s *Stepper[NodeType, KeyType, EdgeType, CostType]) Predecessors(key KeyType) iter.Seq[KeyType] {
	return func(yield func(KeyType) bool) {
		entry := s.table.get(key)
		if entry == nil {
			return
		}
		for _, origin := range entry.Origins {
			if !yield(origin.Key) {
				return
			}
		}
	}
}

// Snapshot copies the open and closed sets for visualisation.
func (s *Stepper[NodeType, KeyType, EdgeType, CostType]) Snapshot() StepSnapshot[KeyType] {
	open := make(map[KeyType]bool, s.frontier.Len())
	for key := range s.frontier.Keys() {
		open[key] = true
	}
	closed := make(map[KeyType]bool, s.stepCount)
	for key, entry := range s.table.entries {
		if entry.Settled {
			closed[key] = true
		}
	}
	return StepSnapshot[KeyType]{
		Current:   s.current,
		Open:      open,
		Closed:    closed,
		State:     s.state,
		StepIndex: s.stepCount,
	}
}

func cloneNode[NodeType any](node NodeType) NodeType {
	if cloner, ok := any(node).(Cloner[NodeType]); ok {
		return cloner.Clone()
	}
	return node
}
