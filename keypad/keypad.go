// Package keypad types a door code through a chain of robots, each driven by
// pressing buttons on a directional pad, and finds the shortest sequence of
// buttons the human has to press.
package keypad

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"iter"
	"strconv"
	"strings"

	"github.com/pdrpinto/astar/v2"
)

var (
	ErrUnknownButton = errors.New("keypad: unknown button")
	ErrUnreachable   = errors.New("keypad: button cannot be reached")
)

// Arms holds the button each arm points at. Index 0 is the arm over the
// numeric pad; the last index is the robot the human drives directly.
type Arms string

func (a Arms) Key() Arms { return a }

// Keypad is a numeric pad behind a number of directional robot pads.
type Keypad struct {
	numeric     *Pad
	directional *Pad
	robots      int
}

// New returns a keypad chain with the given number of directional robots
// between the human and the robot at the door.
func New(robots int) (*Keypad, error) {
	if robots < 0 {
		return nil, fmt.Errorf("keypad: negative robot count %d", robots)
	}
	numeric, err := NewPad(NumericLayout)
	if err != nil {
		return nil, err
	}
	directional, err := NewPad(DirectionalLayout)
	if err != nil {
		return nil, err
	}
	return &Keypad{numeric: numeric, directional: directional, robots: robots}, nil
}

func (k *Keypad) rest() Arms { return Arms(strings.Repeat("A", k.robots+1)) }

// Presses returns the shortest button sequence that types code.
func (k *Keypad) Presses(code string) (string, error) {
	var presses strings.Builder
	arms := k.rest()
	for _, button := range code {
		if !k.numeric.Has(button) {
			return "", fmt.Errorf("%w: %q in code %q", ErrUnknownButton, button, code)
		}
		chain := &Chain{keypad: k, from: arms, target: button}
		stepper := chain.NewStepper()
		stepper.Run()
		reached, _, found := stepper.FoundGoal()
		if !found {
			return "", fmt.Errorf("%w: %q", ErrUnreachable, button)
		}
		for _, hop := range stepper.Path(reached.Key()) {
			if !hop.Initial {
				presses.WriteRune(hop.Edge.Rune())
			}
		}
		presses.WriteRune(Push.Rune())
		arms = reached
	}
	return presses.String(), nil
}

// Complexity is the length of the shortest press sequence times the numeric
// part of the code.
func (k *Keypad) Complexity(code string) (int, error) {
	presses, err := k.Presses(code)
	if err != nil {
		return 0, err
	}
	value, err := NumericPart(code)
	if err != nil {
		return 0, err
	}
	return len(presses) * value, nil
}

// NumericPart is the value of code without its leading zeros and trailing A.
func NumericPart(code string) (int, error) {
	digits := strings.TrimLeft(strings.TrimRight(code, "A"), "0")
	if digits == "" {
		return 0, nil
	}
	value, err := strconv.Atoi(digits)
	if err != nil {
		return 0, fmt.Errorf("keypad: numeric part of %q: %w", code, err)
	}
	return value, nil
}

// TotalComplexity sums Complexity over codes.
func (k *Keypad) TotalComplexity(codes []string) (int, error) {
	total := 0
	for _, code := range codes {
		complexity, err := k.Complexity(code)
		if err != nil {
			return 0, err
		}
		total += complexity
	}
	return total, nil
}

// ParseCodes reads one door code per non-empty line.
func ParseCodes(r io.Reader) ([]string, error) {
	var codes []string
	scanner := bufio.NewScanner(r)
	for scanner.Scan() {
		if code := strings.TrimSpace(scanner.Text()); code != "" {
			codes = append(codes, code)
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("keypad: read codes: %w", err)
	}
	return codes, nil
}

// ChainStepper is the stepper type driving a Chain.
type ChainStepper = astar.Stepper[Arms, Arms, Action, int]

// Chain is the graph of arm positions while moving the door arm from one
// button to target. Every human press costs 1.
type Chain struct {
	keypad *Keypad
	from   Arms
	target rune
}

func (c *Chain) NewStepper(options ...astar.Option) *ChainStepper {
	return astar.NewStepper[Arms, Arms, Action, int](c, options...)
}

func (c *Chain) Start() Arms { return c.from }

func (c *Chain) Neighbors(arms Arms) iter.Seq[astar.Neighbor[Arms, Action, int]] {
	return func(yield func(astar.Neighbor[Arms, Action, int]) bool) {
		for _, action := range Actions {
			next, ok := c.press(arms, action)
			if !ok {
				continue
			}
			if !yield(astar.Neighbor[Arms, Action, int]{Node: next, Edge: action, Cost: 1}) {
				return
			}
		}
	}
}

// press applies a human button press. A Push makes the next robot in the
// chain press whatever its arm points at; pushing the door button itself is
// left to the caller once the goal is reached.
func (c *Chain) press(arms Arms, action Action) (Arms, bool) {
	positions := []rune(arms)
	current := action
	for i := len(positions) - 1; i >= 1; i-- {
		if current != Push {
			to, ok := c.keypad.directional.Step(positions[i], current)
			if !ok {
				return "", false
			}
			positions[i] = to
			return Arms(positions), true
		}
		next, ok := actionOf(positions[i])
		if !ok {
			return "", false
		}
		current = next
	}
	if current == Push {
		return "", false
	}
	to, ok := c.keypad.numeric.Step(positions[0], current)
	if !ok {
		return "", false
	}
	positions[0] = to
	return Arms(positions), true
}

func (c *Chain) Estimate(Arms) int { return 0 }

// IsGoal holds when the door arm is on target and every robot arm rests on
// A, so one more human Push types target.
func (c *Chain) IsGoal(arms Arms) bool {
	positions := []rune(arms)
	if positions[0] != c.target {
		return false
	}
	for _, arm := range positions[1:] {
		if arm != 'A' {
			return false
		}
	}
	return true
}
