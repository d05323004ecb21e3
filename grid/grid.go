// Package grid stores rectangular 2-D cell data addressed by Point.
package grid

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"iter"
	"slices"
	"strings"
)

var (
	// ErrEmpty is returned when parsing input without any non-empty line.
	ErrEmpty = errors.New("grid: no lines")
	// ErrRagged is returned when parsed lines differ in length.
	ErrRagged = errors.New("grid: inconsistent line length")
)

// Grid is a row-major rectangle of cells.
type Grid[T any] struct {
	cells  []T
	width  int
	height int
}

// New returns a width×height grid with every cell set to fill.
func New[T any](width, height int, fill T) *Grid[T] {
	cells := make([]T, width*height)
	for i := range cells {
		cells[i] = fill
	}
	return &Grid[T]{cells: cells, width: width, height: height}
}

// FromLines builds a rune grid, one line per row.
func FromLines(lines []string) (*Grid[rune], error) {
	if len(lines) == 0 {
		return nil, ErrEmpty
	}
	width := len([]rune(lines[0]))
	g := &Grid[rune]{cells: make([]rune, 0, width*len(lines)), width: width, height: len(lines)}
	for y, line := range lines {
		row := []rune(line)
		if len(row) != width {
			return nil, fmt.Errorf("%w: row %d has %d cells, want %d", ErrRagged, y, len(row), width)
		}
		g.cells = append(g.cells, row...)
	}
	return g, nil
}

// Parse reads a rune grid, skipping empty lines.
func Parse(r io.Reader) (*Grid[rune], error) {
	var lines []string
	scanner := bufio.NewScanner(r)
	for scanner.Scan() {
		if line := strings.TrimRight(scanner.Text(), "\r"); line != "" {
			lines = append(lines, line)
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("grid: read: %w", err)
	}
	return FromLines(lines)
}

func (g *Grid[T]) Width() int  { return g.width }
func (g *Grid[T]) Height() int { return g.height }

func (g *Grid[T]) InBounds(p Point) bool {
	return p.X >= 0 && p.X < g.width && p.Y >= 0 && p.Y < g.height
}

// Get returns the cell at p, or false when p is outside the grid.
func (g *Grid[T]) Get(p Point) (T, bool) {
	if !g.InBounds(p) {
		var zero T
		return zero, false
	}
	return g.cells[p.Y*g.width+p.X], true
}

// Set stores v at p. It reports false, leaving the grid unchanged, when p is
// outside the grid.
func (g *Grid[T]) Set(p Point, v T) bool {
	if !g.InBounds(p) {
		return false
	}
	g.cells[p.Y*g.width+p.X] = v
	return true
}

func (g *Grid[T]) Fill(v T) {
	for i := range g.cells {
		g.cells[i] = v
	}
}

func (g *Grid[T]) Clone() *Grid[T] {
	return &Grid[T]{cells: slices.Clone(g.cells), width: g.width, height: g.height}
}

// All yields every cell in row-major order.
func (g *Grid[T]) All() iter.Seq2[Point, T] {
	return func(yield func(Point, T) bool) {
		for i, v := range g.cells {
			if !yield(Point{X: i % g.width, Y: i / g.width}, v) {
				return
			}
		}
	}
}

// Find returns the first cell, in row-major order, accepted by match.
func (g *Grid[T]) Find(match func(T) bool) (Point, bool) {
	for p, v := range g.All() {
		if match(v) {
			return p, true
		}
	}
	return Point{}, false
}

func (g *Grid[T]) Count(match func(T) bool) int {
	n := 0
	for _, v := range g.cells {
		if match(v) {
			n++
		}
	}
	return n
}

// Is returns a matcher for Find and Count.
func Is[T comparable](want T) func(T) bool {
	return func(v T) bool { return v == want }
}

// Render draws a rune grid, one newline-terminated line per row.
func Render(g *Grid[rune]) string {
	var sb strings.Builder
	sb.Grow((g.width + 1) * g.height)
	for y := 0; y < g.height; y++ {
		sb.WriteString(string(g.cells[y*g.width : (y+1)*g.width]))
		sb.WriteByte('\n')
	}
	return sb.String()
}
