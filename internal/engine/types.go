// Package engine implements the tape-escape movement rules: a player tethered
// to a retractable tape whose end pushes and hooks blocks, and whose swing is
// obstructed by walls and blocks.
// This package is UI-agnostic and deterministic.
package engine

// Dir is one of the four compass directions the player can face.
type Dir uint8

const (
	DirUp Dir = iota
	DirRight
	DirDown
	DirLeft
)

// Dirs lists every direction in clockwise order starting at DirUp.
var Dirs = [4]Dir{DirUp, DirRight, DirDown, DirLeft}

// String returns the compass name of the direction.
func (d Dir) String() string {
	switch d {
	case DirUp:
		return "North"
	case DirRight:
		return "East"
	case DirDown:
		return "South"
	case DirLeft:
		return "West"
	default:
		return "Unknown"
	}
}

// Delta returns the (dx, dy) offset for one step in this direction.
// Up decreases Y, Down increases Y (screen coordinates).
func (d Dir) Delta() (dx, dy int) {
	switch d {
	case DirUp:
		return 0, -1
	case DirRight:
		return 1, 0
	case DirDown:
		return 0, 1
	case DirLeft:
		return -1, 0
	default:
		return 0, 0
	}
}

// Opposite returns the reverse direction.
func (d Dir) Opposite() Dir {
	return (d + 2) % 4
}

// RotateRight returns the direction 90 degrees clockwise.
func (d Dir) RotateRight() Dir {
	return (d + 1) % 4
}

// Perpendicular reports whether turning from d to other is a quarter turn.
func (d Dir) Perpendicular(other Dir) bool {
	return d != other && d.Opposite() != other
}

// Orientation selects which side of the tape the hook protrudes from.
type Orientation int8

const (
	OrientLeft  Orientation = -1
	OrientRight Orientation = 1
)

// Flip returns the opposite orientation.
func (o Orientation) Flip() Orientation {
	return -o
}

// String returns "left" or "right".
func (o Orientation) String() string {
	if o == OrientRight {
		return "right"
	}
	return "left"
}

// Tile is the static classification of a grid cell.
// The zero value is TilePit so a freshly allocated grid is all pit.
type Tile uint8

const (
	TilePit Tile = iota
	TileSpace
	TileWall
)

// String returns the tile name.
func (t Tile) String() string {
	switch t {
	case TilePit:
		return "Pit"
	case TileSpace:
		return "Space"
	case TileWall:
		return "Wall"
	default:
		return "Unknown"
	}
}

// Player is the tethered character.
type Player struct {
	Pos         Coord
	Dir         Dir
	Orientation Orientation
}
