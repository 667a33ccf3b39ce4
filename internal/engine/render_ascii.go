package engine

import (
	"fmt"
	"strings"
)

// RenderASCII draws the playable area, widened by Extent when the player,
// tape or blocks are out in the pit border, with the tape on top of the
// level symbols. Used for debugging, golden tests and the CLI.
//
// Format:
//   - Level cells use the configured symbols
//   - Tape body is '|' or '-', the tape end 'o' and the hook 'x'
//   - Cells in obs are drawn as '#'
func RenderASCII(s *State, obs Obstruction) string {
	var sb strings.Builder

	sb.WriteString(fmt.Sprintf("Facing: %s | Hook: %s | Tape: %d/%d | Blocks: %d\n",
		s.Player.Dir, s.Player.Orientation, s.TapeLength(), s.cfg.MaxTapeLength, len(s.Blocks)))

	overlay := make(map[Coord]rune)
	body := '|'
	if s.Player.Dir == DirLeft || s.Player.Dir == DirRight {
		body = '-'
	}
	cells := s.TapeCells()
	for i, c := range cells {
		switch {
		case i == 0:
			continue
		case i == len(cells)-1:
			overlay[c] = 'o'
		default:
			overlay[c] = body
		}
	}
	overlay[s.TapeEdge()] = 'x'
	for _, c := range obs {
		overlay[c] = '#'
	}

	lo, hi := s.Extent()
	for y := lo.Y; y <= hi.Y; y++ {
		for x := lo.X; x <= hi.X; x++ {
			c := C(x, y)
			if r, ok := overlay[c]; ok && c != s.Player.Pos {
				sb.WriteRune(r)
				continue
			}
			sb.WriteRune(s.SymbolAt(c))
		}
		sb.WriteString("\n")
	}
	return sb.String()
}
