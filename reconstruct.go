package astar

import (
	"iter"
	"slices"
)

// Hop is one node on a path with the edge used to enter it.
// Initial marks the start node, which has no incoming edge.
type Hop[NodeType any, EdgeType any] struct {
	Node    NodeType
	Edge    EdgeType
	Initial bool
}

// Trace is one key reached while walking the tie graph backward.
type Trace[NodeType any, KeyType comparable, EdgeType any] struct {
	Key     KeyType
	Node    NodeType
	Origins []Origin[KeyType, EdgeType]
}

// Reconstruct walks backward from key across every tied predecessor and
// yields each reachable key once, ending with the start. It only reads the
// path table, so several walks may run against the same stepper.
func (s *Stepper[NodeType, KeyType, EdgeType, CostType]) Reconstruct(key KeyType) iter.Seq[Trace[NodeType, KeyType, EdgeType]] {
	return func(yield func(Trace[NodeType, KeyType, EdgeType]) bool) {
		if s.table.get(key) == nil {
			return
		}
		seen := map[KeyType]bool{key: true}
		pending := []KeyType{key}
		for len(pending) > 0 {
			current := pending[len(pending)-1]
			pending = pending[:len(pending)-1]
			entry := s.table.get(current)
			trace := Trace[NodeType, KeyType, EdgeType]{
				Key:     current,
				Node:    entry.Node,
				Origins: slices.Clone(entry.Origins),
			}
			if !yield(trace) {
				return
			}
			for _, origin := range entry.Origins {
				if !seen[origin.Key] {
					seen[origin.Key] = true
					pending = append(pending, origin.Key)
				}
			}
		}
	}
}

// BackPath yields one minimal path from key back to the start, following the
// first recorded predecessor of every node.
func (s *Stepper[NodeType, KeyType, EdgeType, CostType]) BackPath(key KeyType) iter.Seq[Hop[NodeType, EdgeType]] {
	return func(yield func(Hop[NodeType, EdgeType]) bool) {
		entry := s.table.get(key)
		for entry != nil {
			if len(entry.Origins) == 0 {
				yield(Hop[NodeType, EdgeType]{Node: entry.Node, Initial: true})
				return
			}
			origin := entry.Origins[0]
			if !yield(Hop[NodeType, EdgeType]{Node: entry.Node, Edge: origin.Edge}) {
				return
			}
			entry = s.table.get(origin.Key)
		}
	}
}

// Path returns BackPath in start-to-key order, or nil for an unknown key.
func (s *Stepper[NodeType, KeyType, EdgeType, CostType]) Path(key KeyType) []Hop[NodeType, EdgeType] {
	path := slices.Collect(s.BackPath(key))
	slices.Reverse(path)
	return path
}

// Paths yields every minimal-cost path from the start to key, in
// start-to-key order. The number of paths can grow exponentially; callers
// that only need the count should use CountPaths.
func (s *Stepper[NodeType, KeyType, EdgeType, CostType]) Paths(key KeyType) iter.Seq[[]Hop[NodeType, EdgeType]] {
	return func(yield func([]Hop[NodeType, EdgeType]) bool) {
		if s.table.get(key) == nil {
			return
		}
		var backward []Hop[NodeType, EdgeType]
		// onPath cuts cycles formed by zero-cost ties.
		onPath := make(map[KeyType]bool)

		var walk func(current KeyType) bool
		walk = func(current KeyType) bool {
			entry := s.table.get(current)
			if len(entry.Origins) == 0 {
				path := make([]Hop[NodeType, EdgeType], 0, len(backward)+1)
				path = append(path, Hop[NodeType, EdgeType]{Node: entry.Node, Initial: true})
				for i := len(backward) - 1; i >= 0; i-- {
					path = append(path, backward[i])
				}
				return yield(path)
			}
			onPath[current] = true
			defer delete(onPath, current)
			for _, origin := range entry.Origins {
				if onPath[origin.Key] {
					continue
				}
				backward = append(backward, Hop[NodeType, EdgeType]{Node: entry.Node, Edge: origin.Edge})
				more := walk(origin.Key)
				backward = backward[:len(backward)-1]
				if !more {
					return false
				}
			}
			return true
		}
		walk(key)
	}
}

// CountPaths returns the number of minimal-cost paths from the start to key.
// It counts the same paths Paths yields.
func (s *Stepper[NodeType, KeyType, EdgeType, CostType]) CountPaths(key KeyType) int {
	counts := make(map[KeyType]int)
	onPath := make(map[KeyType]bool)

	// count also reports whether a cycle cut was taken below current. Such a
	// count depends on the walk that led to current and is not memoized.
	var count func(current KeyType) (int, bool)
	count = func(current KeyType) (int, bool) {
		if n, ok := counts[current]; ok {
			return n, false
		}
		entry := s.table.get(current)
		if entry == nil {
			return 0, false
		}
		if len(entry.Origins) == 0 {
			counts[current] = 1
			return 1, false
		}
		onPath[current] = true
		total, cut := 0, false
		for _, origin := range entry.Origins {
			if onPath[origin.Key] {
				cut = true
				continue
			}
			n, below := count(origin.Key)
			total += n
			cut = cut || below
		}
		delete(onPath, current)
		if !cut {
			counts[current] = total
		}
		return total, cut
	}
	total, _ := count(key)
	return total
}
