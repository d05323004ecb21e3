// Package reference holds brute-force algorithms used to check the search
// engine against known answers.
package reference

// Edge is a directed weighted edge.
type Edge[NodeType comparable] struct {
	From NodeType
	To   NodeType
	Cost int
}

// ShortestCosts returns the cost of the cheapest path from start to every
// reachable node, computed by Bellman-Ford relaxation of all edges.
func ShortestCosts[NodeType comparable](start NodeType, edges []Edge[NodeType]) map[NodeType]int {
	costs := map[NodeType]int{start: 0}
	for {
		changed := false
		for _, edge := range edges {
			fromCost, reached := costs[edge.From]
			if !reached {
				continue
			}
			candidate := fromCost + edge.Cost
			if current, known := costs[edge.To]; !known || candidate < current {
				costs[edge.To] = candidate
				changed = true
			}
		}
		if !changed {
			return costs
		}
	}
}

// CountShortestPaths returns, for every reachable node, how many distinct
// edge sequences from start reach it at its shortest cost. Edges must have
// positive costs.
func CountShortestPaths[NodeType comparable](start NodeType, edges []Edge[NodeType]) map[NodeType]int {
	costs := ShortestCosts(start, edges)
	counts := make(map[NodeType]int, len(costs))

	var count func(node NodeType) int
	count = func(node NodeType) int {
		if node == start {
			return 1
		}
		if n, ok := counts[node]; ok {
			return n
		}
		total := 0
		for _, edge := range edges {
			fromCost, reached := costs[edge.From]
			if edge.To == node && reached && fromCost+edge.Cost == costs[node] {
				total += count(edge.From)
			}
		}
		counts[node] = total
		return total
	}
	for node := range costs {
		counts[node] = count(node)
	}
	return counts
}
