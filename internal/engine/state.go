package engine

import (
	"fmt"
	"hash/fnv"
)

// State is the complete engine state of one level in play.
// It is mutated only by the tape operations and Paint; use Clone to take
// a snapshot.
type State struct {
	Grid     *Grid
	Blocks   []Block // Sorted by ID
	Player   Player
	TapeEnd  Coord
	Goal     Coord
	ForceWin bool // One-shot, consumed by GoalReached

	cfg Config
}

// NewBlank creates an all-pit level of the given playable size. The player
// starts at (0,0) facing north with the hook on its left. The goal sits in
// the far corner of the border, out of play, until it is painted.
func NewBlank(w, h int, cfg Config) (*State, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	if w < 1 || h < 1 {
		return nil, fmt.Errorf("level size %dx%d: %w", w, h, ErrEmptyLevel)
	}
	return newState(w, h, cfg), nil
}

func newState(w, h int, cfg Config) *State {
	start := C(0, 0)
	return &State{
		Grid: NewGrid(w, h, cfg.MaxTapeLength),
		Player: Player{
			Pos:         start,
			Dir:         DirUp,
			Orientation: OrientLeft,
		},
		TapeEnd: start,
		Goal:    C(w+cfg.MaxTapeLength-1, h+cfg.MaxTapeLength-1),
		cfg:     cfg,
	}
}

// Config returns the rules the state was built with.
func (s *State) Config() Config {
	return s.cfg
}

// TapeLength returns the distance between the player and the tape end.
// A misaligned tape reports -1.
func (s *State) TapeLength() int {
	n, ok := axisDistance(s.Player.Pos, s.TapeEnd)
	if !ok {
		return -1
	}
	return n
}

// TapeEdge returns the hook cell next to the tape end.
func (s *State) TapeEdge() Coord {
	return tapeEdge(s.TapeEnd, s.Player.Dir, s.Player.Orientation)
}

// tapeEdge derives the hook cell for a tape end, facing and orientation.
func tapeEdge(end Coord, d Dir, o Orientation) Coord {
	dx, dy := d.RotateRight().Delta()
	return end.Add(dx*int(o), dy*int(o))
}

// TapeCells returns the cells from the player to the tape end inclusive.
func (s *State) TapeCells() []Coord {
	n := s.TapeLength()
	if n < 0 {
		return nil
	}
	dx := sign(s.TapeEnd.X - s.Player.Pos.X)
	dy := sign(s.TapeEnd.Y - s.Player.Pos.Y)
	cells := make([]Coord, 0, n+1)
	for i := 0; i <= n; i++ {
		cells = append(cells, s.Player.Pos.Add(dx*i, dy*i))
	}
	return cells
}

// Extent returns the top-left and bottom-right cells worth drawing: the
// playable area grown to cover the player, tape, hook and blocks that have
// moved into the pit border. The result never leaves the bordered grid.
func (s *State) Extent() (lo, hi Coord) {
	lo, hi = C(0, 0), C(s.Grid.W-1, s.Grid.H-1)
	grow := func(c Coord) {
		lo.X, lo.Y = min(lo.X, c.X), min(lo.Y, c.Y)
		hi.X, hi.Y = max(hi.X, c.X), max(hi.Y, c.Y)
	}
	for _, c := range s.TapeCells() {
		grow(c)
	}
	grow(s.Player.Pos)
	grow(s.TapeEdge())
	for _, b := range s.Blocks {
		for _, c := range b.Cells {
			grow(c)
		}
	}

	b := s.Grid.Border
	lo.X, lo.Y = max(lo.X, -b), max(lo.Y, -b)
	hi.X, hi.Y = min(hi.X, s.Grid.W-1+b), min(hi.Y, s.Grid.H-1+b)
	return lo, hi
}

// Clone creates a deep copy of the state.
func (s *State) Clone() *State {
	blocks := make([]Block, len(s.Blocks))
	for i, b := range s.Blocks {
		blocks[i] = b.Clone()
	}
	return &State{
		Grid:     s.Grid.Clone(),
		Blocks:   blocks,
		Player:   s.Player,
		TapeEnd:  s.TapeEnd,
		Goal:     s.Goal,
		ForceWin: s.ForceWin,
		cfg:      s.cfg,
	}
}

// Equal reports structural equality of two states.
func (s *State) Equal(other *State) bool {
	if s.Player != other.Player || s.TapeEnd != other.TapeEnd || s.Goal != other.Goal {
		return false
	}
	if s.ForceWin != other.ForceWin || s.cfg != other.cfg {
		return false
	}
	if len(s.Blocks) != len(other.Blocks) {
		return false
	}
	for i := range s.Blocks {
		a, b := s.Blocks[i], other.Blocks[i]
		if a.ID != b.ID || len(a.Cells) != len(b.Cells) {
			return false
		}
		for _, c := range a.Cells {
			if !b.Contains(c) {
				return false
			}
		}
	}
	return s.Grid.Equal(other.Grid)
}

// Snapshot returns a hash of the dynamic state, suitable for cheap change
// detection between actions.
func (s *State) Snapshot() uint64 {
	h := fnv.New64a()

	fmt.Fprintf(h, "P:%d,%d:%d:%d;", s.Player.Pos.X, s.Player.Pos.Y, s.Player.Dir, s.Player.Orientation)
	fmt.Fprintf(h, "T:%d,%d;", s.TapeEnd.X, s.TapeEnd.Y)
	fmt.Fprintf(h, "G:%d,%d;", s.Goal.X, s.Goal.Y)

	fmt.Fprintf(h, "B:")
	for _, b := range s.Blocks {
		fmt.Fprintf(h, "%c", b.ID)
		for _, c := range b.Cells {
			fmt.Fprintf(h, "%d,%d,", c.X, c.Y)
		}
		fmt.Fprintf(h, ";")
	}

	fmt.Fprintf(h, "M:")
	for y := 0; y < s.Grid.H; y++ {
		for x := 0; x < s.Grid.W; x++ {
			fmt.Fprintf(h, "%d", s.Grid.TileAt(C(x, y)))
		}
	}

	return h.Sum64()
}
