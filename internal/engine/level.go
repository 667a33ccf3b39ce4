package engine

import (
	"errors"
	"fmt"
	"strings"
	"unicode"
)

var (
	// ErrEmptyLevel is returned for level text without any rows.
	ErrEmptyLevel = errors.New("empty level")

	// ErrNoPlayer is returned for level text without a player start.
	ErrNoPlayer = errors.New("level has no player start")

	// ErrUnknownSymbol is returned when a character has no meaning.
	ErrUnknownSymbol = errors.New("unknown level symbol")

	// ErrOutOfBounds is returned when painting outside the playable area.
	ErrOutOfBounds = errors.New("cell outside level")

	// ErrPlayerCell is returned when painting a wall or block under the player.
	ErrPlayerCell = errors.New("cell holds the player")
)

// ParseError reports an unrecognised character in level text.
// Line and Column are 1-based.
type ParseError struct {
	Line   int
	Column int
	Symbol rune
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("level line %d, column %d: unknown symbol %q", e.Line, e.Column, e.Symbol)
}

// Unwrap lets errors.Is match ErrUnknownSymbol.
func (e *ParseError) Unwrap() error {
	return ErrUnknownSymbol
}

// Parse builds a State from level text, one row per line. Short rows are
// padded with pit. A pit border of cfg.MaxTapeLength cells is added around
// the level. If the text names several player starts the last one wins.
func Parse(text string, cfg Config) (*State, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	rows := splitRows(text)
	if len(rows) == 0 {
		return nil, ErrEmptyLevel
	}

	w := 0
	for _, row := range rows {
		w = max(w, len(row))
	}
	s := newState(w, len(rows), cfg)

	// The player goes first so block and wall cells never land on it.
	found := false
	for y, row := range rows {
		for x, r := range row {
			if r == cfg.Symbols.Player {
				s.placePlayer(C(x, y))
				found = true
			}
		}
	}
	if !found {
		return nil, ErrNoPlayer
	}

	for y, row := range rows {
		for x, r := range row {
			c := C(x, y)
			if r == cfg.Symbols.Player {
				if c != s.Player.Pos {
					s.Grid.SetTile(c, TileSpace)
				}
				continue
			}
			if err := s.Paint(c, r); err != nil {
				if errors.Is(err, ErrUnknownSymbol) {
					return nil, &ParseError{Line: y + 1, Column: x + 1, Symbol: r}
				}
				return nil, fmt.Errorf("level line %d, column %d: %w", y+1, x+1, err)
			}
		}
	}

	return s, nil
}

// splitRows breaks level text into rows of runes, dropping carriage
// returns and blank leading or trailing lines.
func splitRows(text string) [][]rune {
	lines := strings.Split(strings.ReplaceAll(text, "\r", ""), "\n")
	for len(lines) > 0 && lines[0] == "" {
		lines = lines[1:]
	}
	for len(lines) > 0 && lines[len(lines)-1] == "" {
		lines = lines[:len(lines)-1]
	}
	rows := make([][]rune, len(lines))
	for i, line := range lines {
		rows[i] = []rune(line)
	}
	return rows
}

// Serialize renders the playable area back to level text, one row per line
// with a trailing newline. Blocks, the player and the goal are written over
// whatever tile lies beneath them.
func (s *State) Serialize() string {
	var sb strings.Builder
	sb.Grow((s.Grid.W + 1) * s.Grid.H)

	for y := 0; y < s.Grid.H; y++ {
		for x := 0; x < s.Grid.W; x++ {
			sb.WriteRune(s.SymbolAt(C(x, y)))
		}
		sb.WriteByte('\n')
	}
	return sb.String()
}

// SymbolAt returns the level-text character describing cell c.
func (s *State) SymbolAt(c Coord) rune {
	sym := s.cfg.Symbols
	tile := s.Grid.TileAt(c)

	if id, ok := s.Grid.BlockAt(c); ok {
		if tile == TileSpace {
			return id.Upper()
		}
		return rune(id)
	}
	switch {
	case c == s.Player.Pos:
		return sym.Player
	case c == s.Goal:
		return sym.Goal
	}
	return s.tileSymbol(tile)
}

func (s *State) tileSymbol(t Tile) rune {
	sym := s.cfg.Symbols
	switch t {
	case TileSpace:
		return sym.Space
	case TileWall:
		return sym.Wall
	default:
		return sym.Pit
	}
}

func (s *State) symbolTile(r rune) (Tile, bool) {
	sym := s.cfg.Symbols
	switch r {
	case sym.Space:
		return TileSpace, true
	case sym.Wall:
		return TileWall, true
	case sym.Pit:
		return TilePit, true
	default:
		return TilePit, false
	}
}

func (s *State) placePlayer(c Coord) {
	s.removeBlockCell(c)
	s.Grid.SetTile(c, TileSpace)
	s.Player.Pos = c
	s.TapeEnd = c
}

// Paint sets a single cell from a level-text character, the way a level
// editor brush does. Block letters add the cell to that block (uppercase
// over space, lowercase over pit); the player and goal symbols move those
// markers there with a retracted tape; tile symbols replace the tile.
// Any block cell previously at c is removed.
func (s *State) Paint(c Coord, r rune) error {
	if !s.Grid.InBounds(c) {
		return fmt.Errorf("paint %v: %w", c, ErrOutOfBounds)
	}

	sym := s.cfg.Symbols
	switch {
	case s.cfg.isBlockLetter(r):
		if c == s.Player.Pos {
			return fmt.Errorf("paint %v: %w", c, ErrPlayerCell)
		}
		s.removeBlockCell(c)
		if unicode.IsUpper(r) {
			s.Grid.SetTile(c, TileSpace)
		} else {
			s.Grid.SetTile(c, TilePit)
		}
		s.addBlockCell(BlockID(unicode.ToLower(r)), c)

	case r == sym.Player:
		s.placePlayer(c)

	case r == sym.Goal:
		s.removeBlockCell(c)
		s.Grid.SetTile(c, TileSpace)
		s.Goal = c

	default:
		t, ok := s.symbolTile(r)
		if !ok {
			return fmt.Errorf("paint %v with %q: %w", c, r, ErrUnknownSymbol)
		}
		if t == TileWall && c == s.Player.Pos {
			return fmt.Errorf("paint %v: %w", c, ErrPlayerCell)
		}
		s.removeBlockCell(c)
		s.Grid.SetTile(c, t)
	}
	return nil
}
