package grid

import "fmt"

// Point addresses a cell: X grows to the east, Y grows to the south.
type Point struct {
	X, Y int
}

func (p Point) Add(q Point) Point { return Point{X: p.X + q.X, Y: p.Y + q.Y} }

// Step returns the neighboring point in direction d.
func (p Point) Step(d Direction) Point { return p.Add(d.Offset()) }

func (p Point) String() string { return fmt.Sprintf("(%d,%d)", p.X, p.Y) }

// Manhattan returns the 4-directional distance between a and b.
func Manhattan(a, b Point) int {
	return abs(a.X-b.X) + abs(a.Y-b.Y)
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}

// Direction is one of the four compass directions.
type Direction int

const (
	North Direction = iota
	East
	South
	West
)

// Directions lists the compass directions clockwise from North.
var Directions = [...]Direction{North, East, South, West}

func (d Direction) Offset() Point {
	switch d {
	case North:
		return Point{Y: -1}
	case East:
		return Point{X: 1}
	case South:
		return Point{Y: 1}
	default:
		return Point{X: -1}
	}
}

func (d Direction) TurnRight() Direction { return (d + 1) % 4 }
func (d Direction) TurnLeft() Direction  { return (d + 3) % 4 }

// Rune returns the arrow drawn for d on a rendered grid.
func (d Direction) Rune() rune {
	switch d {
	case North:
		return '^'
	case East:
		return '>'
	case South:
		return 'v'
	default:
		return '<'
	}
}

func (d Direction) String() string {
	switch d {
	case North:
		return "north"
	case East:
		return "east"
	case South:
		return "south"
	default:
		return "west"
	}
}
