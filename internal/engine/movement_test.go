package engine_test

import (
	"testing"

	"github.com/vovakirdan/tape-escape/internal/engine"
)

const corridorLevel = "00000\n0@**0\n0***0\n00000\n"

func TestExtendAgainstWallPushesPlayerBack(t *testing.T) {
	s := mustParse(t, corridorLevel)

	// North of the player is wall, so the player is shoved south until the
	// next wall.
	if !s.ExtendTape() {
		t.Fatal("expected the player to move")
	}
	if s.Player.Pos != engine.C(1, 2) {
		t.Errorf("expected player at (1,2), got %v", s.Player.Pos)
	}
	if s.TapeEnd != engine.C(1, 1) {
		t.Errorf("expected tape end to stay at (1,1), got %v", s.TapeEnd)
	}
	if n := s.TapeLength(); n != 1 {
		t.Errorf("expected tape length 1, got %d", n)
	}
}

func TestExtendFullyEnclosedIsNoOp(t *testing.T) {
	s := mustParse(t, "000\n0@0\n000\n")
	before := s.Clone()

	if s.ExtendTape() {
		t.Error("expected no movement")
	}
	if !s.Equal(before) {
		t.Error("expected state unchanged")
	}
	if n := s.TapeLength(); n != 0 {
		t.Errorf("expected tape length 0, got %d", n)
	}
}

func TestExtendThenRetract(t *testing.T) {
	s := mustParse(t, corridorLevel)

	if obs := s.ChangeDirection(engine.DirRight); obs != nil {
		t.Fatalf("expected turn east to succeed, got obstruction %v", obs)
	}
	if s.Player.Dir != engine.DirRight {
		t.Fatalf("expected facing east, got %v", s.Player.Dir)
	}

	s.ExtendTape()
	if s.TapeEnd != engine.C(3, 1) {
		t.Errorf("expected tape end at (3,1), got %v", s.TapeEnd)
	}
	if n := s.TapeLength(); n != 2 {
		t.Errorf("expected tape length 2, got %d", n)
	}

	s.RetractTape()
	if s.TapeEnd != engine.C(1, 1) {
		t.Errorf("expected tape end back at (1,1), got %v", s.TapeEnd)
	}
	if n := s.TapeLength(); n != 0 {
		t.Errorf("expected tape length 0, got %d", n)
	}
	if s.Player.Pos != engine.C(1, 1) {
		t.Errorf("expected player to stay at (1,1), got %v", s.Player.Pos)
	}
}

func TestExtendIdempotentAgainstWall(t *testing.T) {
	s := mustParse(t, corridorLevel)
	s.ChangeDirection(engine.DirRight)
	s.ExtendTape()

	first := s.Clone()
	s.ExtendTape()
	second := s.Clone()
	s.ExtendTape()

	if !second.Equal(first) {
		t.Errorf("second extend changed state:\n%s", engine.RenderASCII(second, nil))
	}
	if !s.Equal(second) {
		t.Errorf("third extend changed state:\n%s", engine.RenderASCII(s, nil))
	}
}

func TestExtendStopsAtMaxLength(t *testing.T) {
	cfg := engine.DefaultConfig()
	cfg.MaxTapeLength = 2

	s, err := engine.Parse("@*****\n", cfg)
	if err != nil {
		t.Fatalf("Parse failed: %v", err)
	}
	s.Player.Dir = engine.DirRight

	s.ExtendTape()
	if s.TapeEnd != engine.C(2, 0) {
		t.Errorf("expected tape end at (2,0), got %v", s.TapeEnd)
	}
	if s.ExtendTape() {
		t.Error("expected no movement at max length")
	}
}

func TestExtendPushesBlock(t *testing.T) {
	s := mustParse(t, "@A*0\n")
	s.Player.Dir = engine.DirRight

	s.ExtendTape()

	if s.TapeEnd != engine.C(1, 0) {
		t.Errorf("expected tape end at (1,0), got %v", s.TapeEnd)
	}
	b, ok := s.Block('a')
	if !ok || len(b.Cells) != 1 || b.Cells[0] != engine.C(2, 0) {
		t.Errorf("expected block a at (2,0), got %+v", b)
	}
}

func TestExtendPushesBlockChain(t *testing.T) {
	s := mustParse(t, "@AB*0\n")
	s.Player.Dir = engine.DirRight

	s.ExtendTape()

	if s.TapeEnd != engine.C(1, 0) {
		t.Errorf("expected tape end at (1,0), got %v", s.TapeEnd)
	}
	if got := s.Serialize(); got != "@*AB0\n" {
		t.Errorf("expected both blocks pushed, got %q", got)
	}
}

func TestExtendBlockTracksTileBeneath(t *testing.T) {
	s := mustParse(t, "@aA*0\n")
	s.Player.Dir = engine.DirRight

	s.ExtendTape()

	// The pit the block left behind shows again; both new cells are over space.
	if got := s.Serialize(); got != "@.AA0\n" {
		t.Errorf("expected %q, got %q", "@.AA0\n", got)
	}
}

func TestExtendDropsBlockIntoPit(t *testing.T) {
	s := mustParse(t, "@A..\n")
	s.Player.Dir = engine.DirRight

	s.ExtendTape()

	if len(s.Blocks) != 0 {
		t.Errorf("expected block to fall, got %+v", s.Blocks)
	}
	if n := s.TapeLength(); n != 6 {
		t.Errorf("expected tape to run out to 6, got %d", n)
	}
	if _, ok := s.Grid.BlockAt(engine.C(2, 0)); ok {
		t.Error("expected block index cleared")
	}
}

func TestExtendPushBackShovesBlock(t *testing.T) {
	s := mustParse(t, "0\n@\nA\n*\n*\n0\n")

	s.ExtendTape()

	if s.Player.Pos != engine.C(0, 3) {
		t.Errorf("expected player at (0,3), got %v", s.Player.Pos)
	}
	b, _ := s.Block('a')
	if len(b.Cells) != 1 || b.Cells[0] != engine.C(0, 4) {
		t.Errorf("expected block a at (0,4), got %+v", b)
	}
}

func TestRetractDragsHookedBlock(t *testing.T) {
	s := mustParse(t, "*A**\n****\n****\n@***\n")
	s.Player.Orientation = engine.OrientRight
	s.TapeEnd = engine.C(0, 0)

	s.RetractTape()

	if s.TapeEnd != engine.C(0, 3) {
		t.Errorf("expected fully retracted tape, end at %v", s.TapeEnd)
	}
	b, _ := s.Block('a')
	if len(b.Cells) != 1 || b.Cells[0] != engine.C(1, 3) {
		t.Errorf("expected block a dragged to (1,3), got %+v", b)
	}
}

func TestRetractPullsPlayerToHook(t *testing.T) {
	s := mustParse(t, "**0*\n****\n****\n*@**\n")
	s.Player.Orientation = engine.OrientRight
	s.TapeEnd = engine.C(1, 0)

	if !s.RetractTape() {
		t.Fatal("expected the player to move")
	}
	if s.Player.Pos != engine.C(1, 0) {
		t.Errorf("expected player pulled to (1,0), got %v", s.Player.Pos)
	}
	if n := s.TapeLength(); n != 0 {
		t.Errorf("expected tape length 0, got %d", n)
	}
}

func TestRetractPullStopsBeforeSolidCell(t *testing.T) {
	s := mustParse(t, "**0*\n*A**\n****\n*@**\n")
	s.Player.Orientation = engine.OrientRight
	s.TapeEnd = engine.C(1, 0)

	s.RetractTape()

	if s.Player.Pos != engine.C(1, 2) {
		t.Errorf("expected player stopped at (1,2), got %v", s.Player.Pos)
	}
	if s.TapeEnd != engine.C(1, 0) {
		t.Errorf("expected tape end to stay at (1,0), got %v", s.TapeEnd)
	}
}

func TestRetractWithoutTapeIsNoOp(t *testing.T) {
	s := mustParse(t, corridorLevel)
	before := s.Clone()

	if s.RetractTape() {
		t.Error("expected no movement")
	}
	if !s.Equal(before) {
		t.Error("expected state unchanged")
	}
}

func TestExtendHookBlockCarriedByEndBlock(t *testing.T) {
	// Pushing c north carries a along; a then sits under the hook, but the
	// hook cell was empty when the step began, so the tape still advances.
	s := mustParse(t, "0A*\n*C*\nA@*\n***\n")

	if !s.ExtendTape() {
		t.Fatal("expected the tape to move")
	}
	if s.TapeEnd != engine.C(1, 1) {
		t.Errorf("expected tape end at (1,1), got %v", s.TapeEnd)
	}
	c, _ := s.Block('c')
	if len(c.Cells) != 1 || c.Cells[0] != engine.C(1, 0) {
		t.Errorf("expected block c at (1,0), got %+v", c)
	}
	a, _ := s.Block('a')
	if !a.Contains(engine.C(1, -1)) || !a.Contains(engine.C(0, 1)) {
		t.Errorf("expected block a moved one cell north, got %+v", a)
	}
}

func TestExtendStepIsAllOrNothing(t *testing.T) {
	// The end block b can move, the hook block a cannot: neither moves and
	// the player is pushed back instead.
	s := mustParse(t, "0**\nAB*\n*@*\n***\n000\n")
	before := s.Clone()

	s.ExtendTape()

	for _, id := range []engine.BlockID{'a', 'b'} {
		got, _ := s.Block(id)
		want, _ := before.Block(id)
		if len(got.Cells) != 1 || got.Cells[0] != want.Cells[0] {
			t.Errorf("expected block %v unmoved, got %+v", id, got)
		}
	}
	if s.TapeEnd != before.TapeEnd {
		t.Errorf("expected tape end to stay at %v, got %v", before.TapeEnd, s.TapeEnd)
	}
	if s.Player.Pos != engine.C(1, 3) {
		t.Errorf("expected player pushed back to (1,3), got %v", s.Player.Pos)
	}
}

func TestExtendBlockedOnlyAtHook(t *testing.T) {
	// The cell ahead of the tape end is free but the hook would enter a wall.
	s := mustParse(t, "0**\n*@*\n***\n***\n000\n")

	if !s.ExtendTape() {
		t.Fatal("expected the player to move")
	}
	if s.Player.Pos != engine.C(1, 3) {
		t.Errorf("expected player pushed back to (1,3), got %v", s.Player.Pos)
	}
	if s.TapeEnd != engine.C(1, 1) {
		t.Errorf("expected tape end to stay at (1,1), got %v", s.TapeEnd)
	}
}

func TestPushBackCannotShovePressedBlockIntoTape(t *testing.T) {
	// Shoving b south would drag c into the player's starting cell, which
	// the tape end still holds.
	s := mustParse(t, "B0*\nCC*\n*@*\n***\n*B*\n***\n000\n")
	before := s.Clone()

	if !s.ExtendTape() {
		t.Fatal("expected the player to move")
	}
	if s.Player.Pos != engine.C(1, 3) {
		t.Errorf("expected player stopped at (1,3), got %v", s.Player.Pos)
	}
	if s.TapeEnd != engine.C(1, 2) {
		t.Errorf("expected tape end at (1,2), got %v", s.TapeEnd)
	}
	if id, ok := s.Grid.BlockAt(s.TapeEnd); ok {
		t.Errorf("expected tape end clear, found block %v", id)
	}
	for _, id := range []engine.BlockID{'b', 'c'} {
		got, _ := s.Block(id)
		want, _ := before.Block(id)
		for _, c := range want.Cells {
			if !got.Contains(c) {
				t.Errorf("expected block %v unmoved, got %+v", id, got)
				break
			}
		}
	}
}

func TestRetractDragStopsMidway(t *testing.T) {
	s := mustParse(t, "*A**\n****\n*0**\n@***\n")
	s.Player.Orientation = engine.OrientRight
	s.TapeEnd = engine.C(0, 0)

	if !s.RetractTape() {
		t.Fatal("expected the tape to move")
	}
	if s.TapeEnd != engine.C(0, 1) {
		t.Errorf("expected tape end stopped at (0,1), got %v", s.TapeEnd)
	}
	if s.Player.Pos != engine.C(0, 3) {
		t.Errorf("expected player to stay at (0,3), got %v", s.Player.Pos)
	}
	b, _ := s.Block('a')
	if len(b.Cells) != 1 || b.Cells[0] != engine.C(1, 1) {
		t.Errorf("expected block a dragged to (1,1), got %+v", b)
	}
}
