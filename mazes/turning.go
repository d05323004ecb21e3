package mazes

import (
	"errors"
	"iter"

	"github.com/pdrpinto/astar/v2"
	"github.com/pdrpinto/astar/v2/grid"
)

const (
	// StepCost is paid for moving one tile forward.
	StepCost = 1
	// TurnCost is paid for rotating 90 degrees in place.
	TurnCost = 1000
)

var (
	ErrNoStart = errors.New("mazes: maze has no start tile 'S'")
	ErrNoEnd   = errors.New("mazes: maze has no end tile 'E'")
)

// Move is the action taken between two poses.
type Move int

const (
	Forward Move = iota
	Clockwise
	Counterclockwise
)

func (m Move) String() string {
	switch m {
	case Forward:
		return "forward"
	case Clockwise:
		return "clockwise"
	default:
		return "counterclockwise"
	}
}

// Pose is a position plus the direction the walker faces.
type Pose struct {
	At     grid.Point
	Facing grid.Direction
}

func (p Pose) Key() Pose { return p }

// TurningStepper is the stepper type driving a Turning maze.
type TurningStepper = astar.Stepper[Pose, Pose, Move, int]

// Turning is a maze walked from S, initially facing east, to E. Moving
// forward costs StepCost and each quarter turn costs TurnCost.
type Turning struct {
	Maze *grid.Grid[rune]
	From grid.Point
	To   grid.Point
	// Exhaustive disables the goal test and heuristic so that a search
	// settles every reachable pose.
	Exhaustive bool
}

// NewTurning locates the S and E tiles of maze.
func NewTurning(maze *grid.Grid[rune]) (*Turning, error) {
	from, ok := maze.Find(grid.Is('S'))
	if !ok {
		return nil, ErrNoStart
	}
	to, ok := maze.Find(grid.Is('E'))
	if !ok {
		return nil, ErrNoEnd
	}
	return &Turning{Maze: maze, From: from, To: to}, nil
}

func (t *Turning) NewStepper(options ...astar.Option) *TurningStepper {
	return astar.NewStepper[Pose, Pose, Move, int](t, options...)
}

func (t *Turning) Start() Pose { return Pose{At: t.From, Facing: grid.East} }

func (t *Turning) Neighbors(p Pose) iter.Seq[astar.Neighbor[Pose, Move, int]] {
	return func(yield func(astar.Neighbor[Pose, Move, int]) bool) {
		ahead := p.At.Step(p.Facing)
		if v, ok := t.Maze.Get(ahead); ok && v != Wall {
			if !yield(astar.Neighbor[Pose, Move, int]{Node: Pose{At: ahead, Facing: p.Facing}, Edge: Forward, Cost: StepCost}) {
				return
			}
		}
		if !yield(astar.Neighbor[Pose, Move, int]{Node: Pose{At: p.At, Facing: p.Facing.TurnRight()}, Edge: Clockwise, Cost: TurnCost}) {
			return
		}
		yield(astar.Neighbor[Pose, Move, int]{Node: Pose{At: p.At, Facing: p.Facing.TurnLeft()}, Edge: Counterclockwise, Cost: TurnCost})
	}
}

// Estimate is the Manhattan distance plus one turn whenever the end is not
// straight ahead, since reaching it then needs at least one rotation.
func (t *Turning) Estimate(p Pose) int {
	if t.Exhaustive {
		return 0
	}
	distance := grid.Manhattan(p.At, t.To)
	if distance == 0 || straightAhead(p, t.To) {
		return distance
	}
	return distance + TurnCost
}

func (t *Turning) IsGoal(p Pose) bool { return !t.Exhaustive && p.At == t.To }

func straightAhead(p Pose, target grid.Point) bool {
	dx, dy := target.X-p.At.X, target.Y-p.At.Y
	switch p.Facing {
	case grid.North:
		return dx == 0 && dy < 0
	case grid.East:
		return dy == 0 && dx > 0
	case grid.South:
		return dx == 0 && dy > 0
	default:
		return dy == 0 && dx < 0
	}
}

// Solution is the cheapest way through a turning maze.
type Solution struct {
	Cost int
	Path []astar.Hop[Pose, Move]
}

// Solve returns the cheapest route from S to E. It reports false when E is
// unreachable.
func Solve(maze *grid.Grid[rune]) (Solution, bool, error) {
	turning, err := NewTurning(maze)
	if err != nil {
		return Solution{}, false, err
	}
	stepper := turning.NewStepper(astar.WithSizeHint(4 * maze.Width() * maze.Height()))
	stepper.Run()
	end, cost, found := stepper.FoundGoal()
	if !found {
		return Solution{}, false, stepper.Err()
	}
	return Solution{Cost: cost, Path: stepper.Path(end.Key())}, true, stepper.Err()
}

// BestTiles counts the tiles lying on at least one cheapest route from S to
// E, and returns a copy of maze with those tiles drawn as 'O'.
func BestTiles(maze *grid.Grid[rune]) (int, *grid.Grid[rune], error) {
	turning, err := NewTurning(maze)
	if err != nil {
		return 0, nil, err
	}
	turning.Exhaustive = true
	stepper := turning.NewStepper(astar.WithSizeHint(4 * maze.Width() * maze.Height()))
	stepper.Run()

	// E may be entered facing any direction; keep those reached at the best cost.
	var ends []Pose
	best := 0
	for _, facing := range grid.Directions {
		end := Pose{At: turning.To, Facing: facing}
		cost, reached := stepper.Cost(end)
		switch {
		case !reached:
		case len(ends) == 0 || cost < best:
			ends, best = []Pose{end}, cost
		case cost == best:
			ends = append(ends, end)
		}
	}

	marked := maze.Clone()
	tiles := make(map[grid.Point]bool)
	for _, end := range ends {
		for trace := range stepper.Reconstruct(end) {
			tiles[trace.Node.At] = true
			marked.Set(trace.Node.At, 'O')
		}
	}
	return len(tiles), marked, stepper.Err()
}

// Draw returns a copy of maze with an arrow on every tile the path moves
// forward from.
func Draw(maze *grid.Grid[rune], path []astar.Hop[Pose, Move]) *grid.Grid[rune] {
	drawn := maze.Clone()
	for i := 0; i+1 < len(path); i++ {
		if path[i+1].Edge == Forward {
			drawn.Set(path[i].Node.At, path[i].Node.Facing.Rune())
		}
	}
	return drawn
}
