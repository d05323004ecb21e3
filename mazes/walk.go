// Package mazes defines grid graphs searched with the astar engine: an
// open 4-directional walk, the falling-byte memory field and a maze whose
// walker pays for turning.
package mazes

import (
	"iter"

	"github.com/pdrpinto/astar/v2"
	"github.com/pdrpinto/astar/v2/grid"
)

// Wall is the rune of an impassable cell.
const Wall = '#'

// Cell is a walker position. Its key is the point itself.
type Cell struct {
	At grid.Point
}

func (c Cell) Key() grid.Point { return c.At }

// WalkStepper is the stepper type driving a Walk.
type WalkStepper = astar.Stepper[Cell, grid.Point, grid.Direction, int]

// Walk moves one cell north, east, south or west at unit cost, never onto a
// Wall, from From to To.
type Walk struct {
	Grid *grid.Grid[rune]
	From grid.Point
	To   grid.Point
}

func NewWalk(g *grid.Grid[rune], from, to grid.Point) *Walk {
	return &Walk{Grid: g, From: from, To: to}
}

// NewStepper starts a search over w.
func (w *Walk) NewStepper(options ...astar.Option) *WalkStepper {
	return astar.NewStepper[Cell, grid.Point, grid.Direction, int](w, options...)
}

func (w *Walk) Start() Cell { return Cell{At: w.From} }

func (w *Walk) Neighbors(c Cell) iter.Seq[astar.Neighbor[Cell, grid.Direction, int]] {
	return func(yield func(astar.Neighbor[Cell, grid.Direction, int]) bool) {
		for _, d := range grid.Directions {
			next := c.At.Step(d)
			if v, ok := w.Grid.Get(next); !ok || v == Wall {
				continue
			}
			if !yield(astar.Neighbor[Cell, grid.Direction, int]{Node: Cell{At: next}, Edge: d, Cost: 1}) {
				return
			}
		}
	}
}

func (w *Walk) Estimate(c Cell) int { return grid.Manhattan(c.At, w.To) }

func (w *Walk) IsGoal(c Cell) bool { return c.At == w.To }
