package astar_test

import (
	"fmt"
	"iter"
	"math/rand/v2"
	"slices"

	"github.com/pdrpinto/astar/v2"
	"github.com/pdrpinto/astar/v2/internal/reference"
)

type vertex string

func (v vertex) Key() vertex { return v }

type settlement struct {
	node vertex
	cost int
}

// edgeGraph is an explicit weighted digraph that records the hooks it receives.
type edgeGraph struct {
	start     vertex
	goal      vertex
	adjacency map[vertex][]astar.Neighbor[vertex, string, int]
	estimate  map[vertex]int

	settled    []settlement
	considered int
}

type edgeStepper = astar.Stepper[vertex, vertex, string, int]

func newEdgeGraph(start vertex, edges []reference.Edge[vertex]) *edgeGraph {
	g := &edgeGraph{
		start:     start,
		adjacency: make(map[vertex][]astar.Neighbor[vertex, string, int]),
		estimate:  make(map[vertex]int),
	}
	for _, edge := range edges {
		g.adjacency[edge.From] = append(g.adjacency[edge.From], astar.Neighbor[vertex, string, int]{
			Node: edge.To,
			Edge: string(edge.From) + "->" + string(edge.To),
			Cost: edge.Cost,
		})
	}
	return g
}

func (g *edgeGraph) stepper() *edgeStepper {
	return astar.NewStepper[vertex, vertex, string, int](g)
}

func (g *edgeGraph) Start() vertex { return g.start }

func (g *edgeGraph) Neighbors(v vertex) iter.Seq[astar.Neighbor[vertex, string, int]] {
	return slices.Values(g.adjacency[v])
}

func (g *edgeGraph) Estimate(v vertex) int { return g.estimate[v] }

func (g *edgeGraph) IsGoal(v vertex) bool { return g.goal != "" && v == g.goal }

func (g *edgeGraph) OnVisitNode(v vertex, cost int) {
	g.settled = append(g.settled, settlement{node: v, cost: cost})
}

func (g *edgeGraph) OnVisitEdge(vertex, vertex, string, int) { g.considered++ }

// randomEdges builds a sparse digraph over n vertices named v0..v(n-1) with
// costs in [1, maxCost], without self loops or parallel edges.
func randomEdges(r *rand.Rand, n, m, maxCost int) []reference.Edge[vertex] {
	edges := make([]reference.Edge[vertex], 0, m)
	seen := make(map[[2]int]bool)
	for range m {
		from, to := r.IntN(n), r.IntN(n)
		if from == to || seen[[2]int{from, to}] {
			continue
		}
		seen[[2]int{from, to}] = true
		edges = append(edges, reference.Edge[vertex]{
			From: name(from),
			To:   name(to),
			Cost: 1 + r.IntN(maxCost),
		})
	}
	return edges
}

func name(i int) vertex { return vertex(fmt.Sprintf("v%d", i)) }

func drain(s *edgeStepper) {
	for !s.Step() {
	}
}
