package mazes

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"sort"
	"strconv"
	"strings"

	"github.com/pdrpinto/astar/v2"
	"github.com/pdrpinto/astar/v2/grid"
)

// ErrBadCoordinate is returned for a falling-byte line that is not "x,y".
var ErrBadCoordinate = errors.New("mazes: bad coordinate line")

// ParseBytes reads one "x,y" coordinate per non-empty line.
func ParseBytes(r io.Reader) ([]grid.Point, error) {
	var falling []grid.Point
	scanner := bufio.NewScanner(r)
	for line := 1; scanner.Scan(); line++ {
		text := strings.TrimSpace(scanner.Text())
		if text == "" {
			continue
		}
		xs, ys, found := strings.Cut(text, ",")
		if !found {
			return nil, fmt.Errorf("%w: line %d: %q", ErrBadCoordinate, line, text)
		}
		x, err := strconv.Atoi(strings.TrimSpace(xs))
		if err != nil {
			return nil, fmt.Errorf("%w: line %d: %w", ErrBadCoordinate, line, err)
		}
		y, err := strconv.Atoi(strings.TrimSpace(ys))
		if err != nil {
			return nil, fmt.Errorf("%w: line %d: %w", ErrBadCoordinate, line, err)
		}
		falling = append(falling, grid.Point{X: x, Y: y})
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("mazes: read bytes: %w", err)
	}
	return falling, nil
}

// Corrupt returns a size×size memory grid with the first n falling bytes
// marked as walls. Bytes outside the grid are ignored, and n is clamped to
// [0, len(falling)].
func Corrupt(size int, falling []grid.Point, n int) *grid.Grid[rune] {
	memory := grid.New(size, size, '.')
	for _, p := range falling[:max(0, min(n, len(falling)))] {
		memory.Set(p, Wall)
	}
	return memory
}

// Escape returns the fewest steps from the top-left to the bottom-right
// corner once n bytes have fallen.
func Escape(size int, falling []grid.Point, n int) (int, bool) {
	walk := NewWalk(Corrupt(size, falling, n), grid.Point{}, grid.Point{X: size - 1, Y: size - 1})
	stepper := walk.NewStepper(astar.WithSizeHint(size * size))
	stepper.Run()
	_, steps, found := stepper.FoundGoal()
	return steps, found
}

// FirstBlocking finds the first byte whose fall cuts every path to the exit,
// returning it and its index in falling.
func FirstBlocking(size int, falling []grid.Point) (grid.Point, int, bool) {
	n := sort.Search(len(falling)+1, func(n int) bool {
		_, found := Escape(size, falling, n)
		return !found
	})
	if n == 0 || n > len(falling) {
		return grid.Point{}, 0, false
	}
	return falling[n-1], n - 1, true
}
