package game

import (
	"fmt"

	"github.com/vovakirdan/tape-escape/internal/core"
	"github.com/vovakirdan/tape-escape/internal/engine"
)

// CellWidth is the number of screen columns one level cell occupies.
// Terminal cells are about twice as tall as wide.
const CellWidth = 2

// Layout rows around the board.
const (
	headerRows = 2
	footerRows = 3
)

// MinScreenSize returns the smallest screen that fits the current level.
func (s *Session) MinScreenSize() (w, h int) {
	bw, bh := s.boardSize()
	w = core.Max(bw*CellWidth+2, 70)
	h = bh + 2 + headerRows + footerRows
	return w, h
}

// boardSize returns the number of cells drawn across and down. It grows
// when the player, tape or blocks leave the playable area.
func (s *Session) boardSize() (w, h int) {
	lo, hi := s.state.Extent()
	return hi.X - lo.X + 1, hi.Y - lo.Y + 1
}

// Render draws the header, the board and the status lines onto scr.
func (s *Session) Render(scr *core.Screen) {
	scr.Clear()

	minW, minH := s.MinScreenSize()
	if scr.Width() < minW || scr.Height() < minH {
		scr.DrawTextCentered(scr.Height()/2, "Terminal too small", core.ColorText)
		scr.DrawTextCentered(scr.Height()/2+1, fmt.Sprintf("need %dx%d", minW, minH), core.ColorDim)
		return
	}

	st := s.Status()
	title := fmt.Sprintf("%s (%d/%d)", st.LevelTitle, st.LevelIndex+1, st.LevelCount)
	if st.PackName != "" {
		title = st.PackName + ": " + title
	}
	scr.DrawTextCentered(0, title, core.ColorText)

	bw, bh := s.boardSize()
	body := core.NewRect(0, headerRows, scr.Width(), scr.Height()-headerRows-footerRows)
	box := body.CenterIn(bw*CellWidth+2, bh+2)
	scr.DrawBox(box, core.ColorDim)
	s.drawBoard(scr, box.X+1, box.Y+1)

	y := box.Bottom()
	scr.DrawTextCentered(y, statusLine(st), core.ColorDim)
	if st.Message != "" {
		scr.DrawTextCentered(y+1, st.Message, core.ColorText)
	}
}

// drawBoard draws the cells of the state's extent with its top-left cell
// at (ox, oy).
func (s *Session) drawBoard(scr *core.Screen, ox, oy int) {
	st := s.state
	lo, hi := st.Extent()

	overlay := make(map[engine.Coord]glyph)
	cells := st.TapeCells()
	for i, c := range cells {
		switch {
		case i == 0:
		case i == len(cells)-1:
			overlay[c] = glyph{"()", core.ColorTape}
		case st.Player.Dir == engine.DirUp || st.Player.Dir == engine.DirDown:
			overlay[c] = glyph{"||", core.ColorTape}
		default:
			overlay[c] = glyph{"==", core.ColorTape}
		}
	}
	overlay[st.TapeEdge()] = glyph{"<>", core.ColorHook}
	for _, c := range s.obs {
		overlay[c] = glyph{"##", core.ColorObstruction}
	}

	for y := lo.Y; y <= hi.Y; y++ {
		for x := lo.X; x <= hi.X; x++ {
			c := engine.C(x, y)
			gl := s.cellGlyph(c)
			if o, ok := overlay[c]; ok && c != st.Player.Pos {
				gl = o
			}
			scr.DrawTextColor(ox+(x-lo.X)*CellWidth, oy+(y-lo.Y), gl.text, gl.color)
		}
	}
}

type glyph struct {
	text  string
	color core.Color
}

func (s *Session) cellGlyph(c engine.Coord) glyph {
	st := s.state
	if c == st.Player.Pos {
		return glyph{playerGlyph(st.Player.Dir), core.ColorPlayer}
	}
	if id, ok := st.Grid.BlockAt(c); ok {
		r := rune(id)
		if st.Grid.TileAt(c) == engine.TileSpace {
			r = id.Upper()
		}
		return glyph{string([]rune{r, r}), core.ColorBlock}
	}
	if c == st.Goal {
		return glyph{"[]", core.ColorGoal}
	}
	switch st.Grid.TileAt(c) {
	case engine.TileWall:
		return glyph{"██", core.ColorWall}
	case engine.TileSpace:
		return glyph{"  ", core.ColorSpace}
	default:
		return glyph{"  ", core.ColorPit}
	}
}

func playerGlyph(d engine.Dir) string {
	switch d {
	case engine.DirRight:
		return ">>"
	case engine.DirDown:
		return "vv"
	case engine.DirLeft:
		return "<<"
	default:
		return "^^"
	}
}

func statusLine(st Status) string {
	line := fmt.Sprintf("Facing %s | Hook %s | Tape %d/%d | Moves %d | Falls %d",
		st.Facing, st.Hook, st.TapeLength, st.MaxTape, st.Moves, st.Falls)
	if st.Par > 0 {
		line += fmt.Sprintf(" | Par %d", st.Par)
	}
	return line
}
