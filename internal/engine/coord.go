package engine

import "fmt"

// Coord is a cell position in level coordinates.
// X increases to the right, Y increases downward. Border cells have
// coordinates outside [0,W)x[0,H).
type Coord struct {
	X int
	Y int
}

// C is a convenience constructor for Coord.
func C(x, y int) Coord {
	return Coord{X: x, Y: y}
}

// String returns a string representation of the coordinate.
func (c Coord) String() string {
	return fmt.Sprintf("(%d,%d)", c.X, c.Y)
}

// Add returns a new Coord offset by (dx, dy).
func (c Coord) Add(dx, dy int) Coord {
	return Coord{X: c.X + dx, Y: c.Y + dy}
}

// Step returns the neighbouring Coord in the given direction.
func (c Coord) Step(d Dir) Coord {
	dx, dy := d.Delta()
	return c.Add(dx, dy)
}

// StepN returns the Coord n steps away in the given direction.
func (c Coord) StepN(d Dir, n int) Coord {
	dx, dy := d.Delta()
	return c.Add(dx*n, dy*n)
}

// Less orders coordinates row-major (Y first, then X).
func (c Coord) Less(other Coord) bool {
	if c.Y != other.Y {
		return c.Y < other.Y
	}
	return c.X < other.X
}

// axisDistance returns the distance between two cells sharing a row or
// column, and false when they share neither.
func axisDistance(a, b Coord) (int, bool) {
	switch {
	case a.X == b.X:
		return abs(a.Y - b.Y), true
	case a.Y == b.Y:
		return abs(a.X - b.X), true
	default:
		return 0, false
	}
}

func sign(x int) int {
	switch {
	case x > 0:
		return 1
	case x < 0:
		return -1
	default:
		return 0
	}
}

func abs(x int) int {
	if x < 0 {
		return -x
	}
	return x
}
