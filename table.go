package astar

import "slices"

// Origin is a predecessor achieving a node's best cost and the edge taken from it.
type Origin[KeyType comparable, EdgeType any] struct {
	Key  KeyType
	Edge EdgeType
}

// PathEntry is the best path information known for one key.
// Origins holds every predecessor tied at Cost; it is empty only for the start.
type PathEntry[NodeType any, KeyType comparable, EdgeType any, CostType Cost] struct {
	Node    NodeType
	Cost    CostType
	Origins []Origin[KeyType, EdgeType]
	Settled bool
}

func (entry *PathEntry[NodeType, KeyType, EdgeType, CostType]) hasOrigin(key KeyType) bool {
	return slices.ContainsFunc(entry.Origins, func(origin Origin[KeyType, EdgeType]) bool {
		return origin.Key == key
	})
}

// PathTable maps node keys to their best known path entry.
type PathTable[NodeType any, KeyType comparable, EdgeType any, CostType Cost] struct {
	entries map[KeyType]*PathEntry[NodeType, KeyType, EdgeType, CostType]
}

func newPathTable[NodeType any, KeyType comparable, EdgeType any, CostType Cost](
	sizeHint int,
) *PathTable[NodeType, KeyType, EdgeType, CostType] {
	return &PathTable[NodeType, KeyType, EdgeType, CostType]{
		entries: make(map[KeyType]*PathEntry[NodeType, KeyType, EdgeType, CostType], sizeHint),
	}
}

// Lookup returns a copy of the entry for key. The Origins slice is shared
// and must not be modified.
func (table *PathTable[NodeType, KeyType, EdgeType, CostType]) Lookup(key KeyType) (PathEntry[NodeType, KeyType, EdgeType, CostType], bool) {
	entry, ok := table.entries[key]
	if !ok {
		return PathEntry[NodeType, KeyType, EdgeType, CostType]{}, false
	}
	return *entry, true
}

func (table *PathTable[NodeType, KeyType, EdgeType, CostType]) Len() int { return len(table.entries) }

func (table *PathTable[NodeType, KeyType, EdgeType, CostType]) get(key KeyType) *PathEntry[NodeType, KeyType, EdgeType, CostType] {
	return table.entries[key]
}

func (table *PathTable[NodeType, KeyType, EdgeType, CostType]) insertStart(key KeyType, node NodeType) {
	table.entries[key] = &PathEntry[NodeType, KeyType, EdgeType, CostType]{Node: node}
}

// relax applies a relaxation proposal to the table. It never touches the
// frontier; the caller pushes or decreases according to the outcome.
func (table *PathTable[NodeType, KeyType, EdgeType, CostType]) relax(
	proposal RelaxProposal[NodeType, KeyType, EdgeType, CostType],
) Outcome {
	origin := Origin[KeyType, EdgeType]{Key: proposal.FromKey, Edge: proposal.Edge}

	entry, exists := table.entries[proposal.ToKey]
	switch {
	case !exists:
		table.entries[proposal.ToKey] = &PathEntry[NodeType, KeyType, EdgeType, CostType]{
			Node:    cloneNode(proposal.ToNode),
			Cost:    proposal.GScore,
			Origins: []Origin[KeyType, EdgeType]{origin},
		}
		return Discovered
	case proposal.GScore < entry.Cost:
		if entry.Settled {
			return Stale
		}
		entry.Node = cloneNode(proposal.ToNode)
		entry.Cost = proposal.GScore
		entry.Origins = []Origin[KeyType, EdgeType]{origin}
		return Improved
	case proposal.GScore == entry.Cost:
		// The start keeps no origins, even across zero-cost cycles.
		if len(entry.Origins) == 0 || proposal.FromKey == proposal.ToKey || entry.hasOrigin(proposal.FromKey) {
			return Ignored
		}
		entry.Origins = append(entry.Origins, origin)
		return Tied
	default:
		return Ignored
	}
}
