package keypad

import (
	"fmt"

	"github.com/pdrpinto/astar/v2/grid"
)

// Gap marks the empty corner of a pad that an arm must never point at.
const Gap = ' '

var (
	// NumericLayout is the door keypad.
	NumericLayout = []string{"789", "456", "123", " 0A"}
	// DirectionalLayout is the pad each robot is driven through.
	DirectionalLayout = []string{" ^A", "<v>"}
)

// Action is a button on a directional pad.
type Action int

const (
	Up Action = iota
	Down
	Left
	Right
	Push
)

// Actions is the order in which the chain tries buttons.
var Actions = [...]Action{Left, Down, Right, Up, Push}

func (a Action) Rune() rune {
	switch a {
	case Up:
		return '^'
	case Down:
		return 'v'
	case Left:
		return '<'
	case Right:
		return '>'
	default:
		return 'A'
	}
}

func (a Action) String() string { return string(a.Rune()) }

func actionOf(button rune) (Action, bool) {
	switch button {
	case '^':
		return Up, true
	case 'v':
		return Down, true
	case '<':
		return Left, true
	case '>':
		return Right, true
	case 'A':
		return Push, true
	default:
		return Push, false
	}
}

func (a Action) direction() grid.Direction {
	switch a {
	case Up:
		return grid.North
	case Down:
		return grid.South
	case Left:
		return grid.West
	default:
		return grid.East
	}
}

// Pad is a keypad layout with the position of each button.
type Pad struct {
	layout  *grid.Grid[rune]
	buttons map[rune]grid.Point
}

// NewPad builds a pad from its rows; Gap marks missing buttons.
func NewPad(rows []string) (*Pad, error) {
	layout, err := grid.FromLines(rows)
	if err != nil {
		return nil, fmt.Errorf("keypad: layout: %w", err)
	}
	pad := &Pad{layout: layout, buttons: make(map[rune]grid.Point)}
	for p, button := range layout.All() {
		if button != Gap {
			pad.buttons[button] = p
		}
	}
	return pad, nil
}

func (p *Pad) Has(button rune) bool {
	_, ok := p.buttons[button]
	return ok
}

// Step moves an arm resting on from one button in the direction of action.
// It reports false for Push, for leaving the pad and for the gap.
func (p *Pad) Step(from rune, action Action) (rune, bool) {
	at, ok := p.buttons[from]
	if !ok || action == Push {
		return 0, false
	}
	to, ok := p.layout.Get(at.Step(action.direction()))
	if !ok || to == Gap {
		return 0, false
	}
	return to, true
}
