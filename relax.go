package astar

// RelaxProposal is a candidate path to a neighbor, produced while expanding
// a settled node.
type RelaxProposal[NodeType any, KeyType comparable, EdgeType any, CostType Cost] struct {
	FromKey KeyType
	ToKey   KeyType
	ToNode  NodeType
	Edge    EdgeType
	GScore  CostType
}

// Outcome classifies what a relaxation did to the path table.
type Outcome int

const (
	// Ignored: the candidate is worse than the known cost, or a repeated tie.
	Ignored Outcome = iota
	// Discovered: first path to the neighbor; it was pushed to the frontier.
	Discovered
	// Improved: strictly better path to an open neighbor; its priority was decreased.
	Improved
	// Tied: another predecessor reaching the neighbor at its best cost.
	Tied
	// Stale: strictly better path to an already settled neighbor. The entry is kept.
	Stale
)

func (outcome Outcome) String() string {
	switch outcome {
	case Ignored:
		return "ignored"
	case Discovered:
		return "discovered"
	case Improved:
		return "improved"
	case Tied:
		return "tied"
	case Stale:
		return "stale"
	default:
		return "unknown"
	}
}
