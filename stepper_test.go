package astar_test

import (
	"iter"
	"math/rand/v2"
	"slices"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pdrpinto/astar/v2"
	"github.com/pdrpinto/astar/v2/grid"
	"github.com/pdrpinto/astar/v2/internal/reference"
	"github.com/pdrpinto/astar/v2/mazes"
)

func openGrid(t *testing.T, rows ...string) *grid.Grid[rune] {
	t.Helper()
	g, err := grid.FromLines(rows)
	require.NoError(t, err)
	return g
}

func TestStepper_OpenGridCornerToCorner(t *testing.T) {
	walk := mazes.NewWalk(openGrid(t, "...", "...", "..."), grid.Point{}, grid.Point{X: 2, Y: 2})
	stepper := walk.NewStepper()

	assert.Equal(t, astar.GoalFound, stepper.Run())
	goal, cost, found := stepper.FoundGoal()
	require.True(t, found)
	assert.Equal(t, grid.Point{X: 2, Y: 2}, goal.At)
	assert.Equal(t, 4, cost)
	assert.Equal(t, 6, stepper.CountPaths(goal.Key()))

	var paths [][]grid.Point
	for path := range stepper.Paths(goal.Key()) {
		require.Len(t, path, 5)
		assert.True(t, path[0].Initial)
		points := make([]grid.Point, 0, len(path))
		for _, hop := range path {
			points = append(points, hop.Node.At)
		}
		paths = append(paths, points)
	}
	assert.Len(t, paths, 6)
	for i := range paths {
		for j := i + 1; j < len(paths); j++ {
			assert.NotEqual(t, paths[i], paths[j])
		}
	}
}

func TestStepper_ObstacleForcesDetour(t *testing.T) {
	from, to := grid.Point{X: 0, Y: 1}, grid.Point{X: 2, Y: 1}

	open := mazes.NewWalk(openGrid(t, "...", "...", "..."), from, to).NewStepper()
	open.Run()
	_, openCost, found := open.FoundGoal()
	require.True(t, found)

	blocked := mazes.NewWalk(openGrid(t, "...", ".#.", "..."), from, to).NewStepper()
	blocked.Run()
	_, blockedCost, found := blocked.FoundGoal()
	require.True(t, found)

	assert.Equal(t, 2, openCost)
	assert.Equal(t, openCost+2, blockedCost)
	assert.Equal(t, 2, blocked.CountPaths(to), "around the top or the bottom")
}

func TestStepper_DisconnectedIsExhausted(t *testing.T) {
	walk := mazes.NewWalk(openGrid(t, "..#.."), grid.Point{}, grid.Point{X: 4})
	stepper := walk.NewStepper()

	steps := 0
	for !stepper.Step() {
		steps++
		require.Less(t, steps, 10)
	}
	assert.Equal(t, astar.Exhausted, stepper.State())
	_, _, found := stepper.FoundGoal()
	assert.False(t, found)
	assert.True(t, stepper.Settled(grid.Point{X: 1}))
	_, known := stepper.Cost(grid.Point{X: 4})
	assert.False(t, known)
	assert.NoError(t, stepper.Err())
}

func TestStepper_StartWithoutNeighborsExhaustsInOneStep(t *testing.T) {
	g := newEdgeGraph("a", nil)
	g.goal = "b"
	stepper := g.stepper()

	assert.True(t, stepper.Step())
	assert.Equal(t, astar.Exhausted, stepper.State())
	assert.Equal(t, 1, stepper.Steps())
}

func TestStepper_StartIsGoal(t *testing.T) {
	g := newEdgeGraph("a", []reference.Edge[vertex]{{From: "a", To: "b", Cost: 1}})
	g.goal = "a"
	stepper := g.stepper()

	assert.True(t, stepper.Step())
	node, cost, found := stepper.FoundGoal()
	require.True(t, found)
	assert.Equal(t, vertex("a"), node)
	assert.Zero(t, cost)
	assert.Empty(t, stepper.Path("a")[0].Edge)
	assert.True(t, stepper.Path("a")[0].Initial)
}

func TestStepper_TerminalStability(t *testing.T) {
	walk := mazes.NewWalk(openGrid(t, "....", ".##.", "...."), grid.Point{}, grid.Point{X: 3, Y: 2})
	stepper := walk.NewStepper()
	stepper.Run()

	goal, cost, found := stepper.FoundGoal()
	require.True(t, found)
	steps := stepper.Steps()
	snapshot := stepper.Snapshot()

	for range 5 {
		assert.True(t, stepper.Step())
	}
	again, againCost, againFound := stepper.FoundGoal()
	assert.Equal(t, goal, again)
	assert.Equal(t, cost, againCost)
	assert.Equal(t, found, againFound)
	assert.Equal(t, steps, stepper.Steps())
	assert.Equal(t, snapshot, stepper.Snapshot())
	goalCost, _ := stepper.Cost(goal.Key())
	assert.Equal(t, cost, goalCost)
}

// zeroEstimate hides a walk's heuristic, turning the search into Dijkstra.
type zeroEstimate struct {
	*mazes.Walk
	settled []int
}

func (z *zeroEstimate) Estimate(mazes.Cell) int { return 0 }

func (z *zeroEstimate) OnVisitNode(_ mazes.Cell, cost int) { z.settled = append(z.settled, cost) }

// recordedPriority keeps the walk's heuristic and records cost+estimate.
type recordedPriority struct {
	*mazes.Walk
	priorities []int
}

func (r *recordedPriority) OnVisitNode(c mazes.Cell, cost int) {
	r.priorities = append(r.priorities, cost+r.Estimate(c))
}

func randomMaze(r *rand.Rand, width, height int) *grid.Grid[rune] {
	g := grid.New(width, height, '.')
	for p := range g.All() {
		if p != (grid.Point{}) && r.IntN(4) == 0 {
			g.Set(p, mazes.Wall)
		}
	}
	return g
}

func TestStepper_MonotonicSettlement(t *testing.T) {
	r := rand.New(rand.NewPCG(7, 11))
	for range 20 {
		maze := randomMaze(r, 12, 9)
		goal := grid.Point{X: 11, Y: 8}
		maze.Set(goal, '.')

		dijkstra := &zeroEstimate{Walk: mazes.NewWalk(maze, grid.Point{}, goal)}
		astar.NewStepper[mazes.Cell, grid.Point, grid.Direction, int](dijkstra).Run()
		assert.IsNonDecreasing(t, dijkstra.settled)

		guided := &recordedPriority{Walk: mazes.NewWalk(maze, grid.Point{}, goal)}
		astar.NewStepper[mazes.Cell, grid.Point, grid.Direction, int](guided).Run()
		assert.IsNonDecreasing(t, guided.priorities)
	}
}

func TestStepper_MatchesBruteForceWithZeroHeuristic(t *testing.T) {
	r := rand.New(rand.NewPCG(3, 5))
	for round := range 50 {
		edges := randomEdges(r, 12, 30, 3)
		g := newEdgeGraph("v0", edges)
		stepper := g.stepper()
		drain(stepper)
		require.Equal(t, astar.Exhausted, stepper.State(), "round %d", round)

		want := reference.ShortestCosts[vertex]("v0", edges)
		wantCounts := reference.CountShortestPaths[vertex]("v0", edges)
		for i := range 12 {
			v := name(i)
			cost, known := stepper.Cost(v)
			wantCost, reachable := want[v]
			require.Equal(t, reachable, known, "round %d vertex %s", round, v)
			if !reachable {
				continue
			}
			assert.Equal(t, wantCost, cost, "round %d vertex %s", round, v)
			assert.True(t, stepper.Settled(v))
			assert.Equal(t, wantCounts[v], stepper.CountPaths(v), "round %d vertex %s", round, v)
		}
	}
}

func TestStepper_TieCompleteness(t *testing.T) {
	// Two routes of cost 3 into d, one of cost 4.
	g := newEdgeGraph("s", []reference.Edge[vertex]{
		{From: "s", To: "a", Cost: 1},
		{From: "s", To: "b", Cost: 2},
		{From: "s", To: "c", Cost: 1},
		{From: "a", To: "d", Cost: 2},
		{From: "b", To: "d", Cost: 1},
		{From: "c", To: "d", Cost: 3},
	})
	stepper := g.stepper()
	drain(stepper)

	cost, ok := stepper.Cost("d")
	require.True(t, ok)
	assert.Equal(t, 3, cost)
	assert.ElementsMatch(t, []vertex{"a", "b"}, slices.Collect(stepper.Predecessors("d")))

	paths := 0
	for path := range stepper.Paths("d") {
		paths++
		total := 0
		for i := 1; i < len(path); i++ {
			for _, n := range g.adjacency[path[i-1].Node] {
				if n.Node == path[i].Node && n.Edge == path[i].Edge {
					total += n.Cost
				}
			}
		}
		assert.Equal(t, cost, total)
	}
	assert.Equal(t, 2, paths)
	assert.Equal(t, 2, stepper.CountPaths("d"))
}

func TestStepper_ImprovementDiscardsOlderTies(t *testing.T) {
	// c is first reached through a at cost 5, then through b at cost 3.
	g := newEdgeGraph("s", []reference.Edge[vertex]{
		{From: "s", To: "a", Cost: 1},
		{From: "s", To: "b", Cost: 2},
		{From: "a", To: "c", Cost: 4},
		{From: "b", To: "c", Cost: 1},
	})
	stepper := g.stepper()
	drain(stepper)

	cost, _ := stepper.Cost("c")
	assert.Equal(t, 3, cost)
	assert.Equal(t, []vertex{"b"}, slices.Collect(stepper.Predecessors("c")))
	entry, ok := stepper.Lookup("c")
	require.True(t, ok)
	assert.Equal(t, "b->c", entry.Origins[0].Edge)
}

func TestStepper_InconsistentHeuristicIsReported(t *testing.T) {
	g := newEdgeGraph("s", []reference.Edge[vertex]{
		{From: "s", To: "a", Cost: 5},
		{From: "s", To: "b", Cost: 1},
		{From: "b", To: "a", Cost: 1},
	})
	g.estimate["b"] = 100
	stepper := g.stepper()
	drain(stepper)

	assert.ErrorIs(t, stepper.Err(), astar.ErrInconsistentHeuristic)
	cost, _ := stepper.Cost("a")
	assert.Equal(t, 5, cost, "settled entries are never rewritten")
	assert.Equal(t, []vertex{"s"}, slices.Collect(stepper.Predecessors("a")))
}

func TestStepper_HooksFirePerSettlementAndEdge(t *testing.T) {
	g := newEdgeGraph("s", []reference.Edge[vertex]{
		{From: "s", To: "a", Cost: 1},
		{From: "s", To: "b", Cost: 1},
		{From: "a", To: "b", Cost: 1},
		{From: "b", To: "s", Cost: 1},
	})
	stepper := g.stepper()
	drain(stepper)

	assert.Equal(t, stepper.Steps(), len(g.settled))
	assert.Equal(t, []settlement{{"s", 0}, {"a", 1}, {"b", 1}}, g.settled)
	assert.Equal(t, 4, g.considered)
}

func TestStepper_SnapshotTracksOpenAndClosed(t *testing.T) {
	walk := mazes.NewWalk(openGrid(t, "...", "...", "..."), grid.Point{}, grid.Point{X: 2, Y: 2})
	stepper := walk.NewStepper()

	initial := stepper.Snapshot()
	assert.Equal(t, map[grid.Point]bool{{}: true}, initial.Open)
	assert.Empty(t, initial.Closed)
	assert.Equal(t, astar.Open, initial.State)

	require.False(t, stepper.Step())
	snapshot := stepper.Snapshot()
	assert.Equal(t, grid.Point{}, snapshot.Current)
	assert.Equal(t, 1, snapshot.StepIndex)
	assert.Equal(t, map[grid.Point]bool{{}: true}, snapshot.Closed)
	assert.Equal(t, map[grid.Point]bool{{X: 1}: true, {Y: 1}: true}, snapshot.Open)
}

type sharedNode struct {
	name   string
	labels []string
}

func (n sharedNode) Key() string { return n.name }

func (n sharedNode) Clone() sharedNode {
	n.labels = append([]string(nil), n.labels...)
	return n
}

type sharedGraph struct {
	start sharedNode
}

func (g *sharedGraph) Start() sharedNode { return g.start }

func (g *sharedGraph) Neighbors(sharedNode) iter.Seq[astar.Neighbor[sharedNode, struct{}, int]] {
	return func(func(astar.Neighbor[sharedNode, struct{}, int]) bool) {}
}

func (g *sharedGraph) Estimate(sharedNode) int { return 0 }

func (g *sharedGraph) IsGoal(n sharedNode) bool { return true }

func TestStepper_ClonesStoredNodes(t *testing.T) {
	g := &sharedGraph{start: sharedNode{name: "s", labels: []string{"original"}}}
	stepper := astar.NewStepper[sharedNode, string, struct{}, int](g)
	g.start.labels[0] = "mutated"

	stepper.Run()
	goal, _, found := stepper.FoundGoal()
	require.True(t, found)
	assert.Equal(t, []string{"original"}, goal.labels)
}
