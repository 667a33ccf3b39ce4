package engine_test

import (
	"testing"

	"github.com/vovakirdan/tape-escape/internal/engine"
)

func TestChangeDirectionEmbeddedBothSides(t *testing.T) {
	s := mustParse(t, ".....\n.*00.\n.*@*.\n.*00.\n.....\n")
	before := s.Clone()

	obs := s.ChangeDirection(engine.DirRight)

	want := []engine.Coord{engine.C(2, 1), engine.C(3, 1)}
	if len(obs) != len(want) {
		t.Fatalf("expected obstruction %v, got %v", want, obs)
	}
	for i, c := range want {
		if obs[i] != c {
			t.Errorf("obstruction[%d]: expected %v, got %v", i, c, obs[i])
		}
	}
	if !s.Equal(before) {
		t.Error("rejected turn changed the state")
	}
}

func TestChangeDirectionFlipsHookWhenEmbedded(t *testing.T) {
	s := mustParse(t, "000\n0@*\n***\n")

	if obs := s.ChangeDirection(engine.DirRight); obs != nil {
		t.Fatalf("expected turn to succeed, got %v", obs)
	}
	if s.Player.Dir != engine.DirRight {
		t.Errorf("expected facing east, got %v", s.Player.Dir)
	}
	if s.Player.Orientation != engine.OrientRight {
		t.Errorf("expected hook flipped to the right, got %v", s.Player.Orientation)
	}
}

func TestChangeDirectionArc(t *testing.T) {
	s := mustParse(t, "00000\n*****\n***0*\n**@**\n*****\n")

	s.ExtendTape()
	if s.TapeEnd != engine.C(2, 1) {
		t.Fatalf("expected tape end at (2,1), got %v", s.TapeEnd)
	}

	t.Run("blocked east", func(t *testing.T) {
		probe := s.Clone()
		obs := probe.ChangeDirection(engine.DirRight)
		if len(obs) != 1 || obs[0] != engine.C(3, 2) {
			t.Errorf("expected obstruction at (3,2), got %v", obs)
		}
		if !probe.Equal(s) {
			t.Error("rejected turn changed the state")
		}
	})

	t.Run("clear west", func(t *testing.T) {
		probe := s.Clone()
		if obs := probe.ChangeDirection(engine.DirLeft); obs != nil {
			t.Fatalf("expected turn to succeed, got %v", obs)
		}
		if probe.Player.Dir != engine.DirLeft {
			t.Errorf("expected facing west, got %v", probe.Player.Dir)
		}
		if probe.TapeEnd != engine.C(0, 3) {
			t.Errorf("expected tape end swung to (0,3), got %v", probe.TapeEnd)
		}
		if n := probe.TapeLength(); n != 2 {
			t.Errorf("expected tape length to stay 2, got %d", n)
		}
	})
}

func TestChangeDirectionIgnoresNonQuarterTurns(t *testing.T) {
	testCases := []struct {
		name string
		dir  engine.Dir
	}{
		{"same", engine.DirUp},
		{"reverse", engine.DirDown},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			s := mustParse(t, "*****\n*****\n**@**\n*****\n")
			before := s.Clone()

			if obs := s.ChangeDirection(tc.dir); obs != nil {
				t.Errorf("expected no obstruction, got %v", obs)
			}
			if !s.Equal(before) {
				t.Error("expected state unchanged")
			}
		})
	}
}

func TestSwitchOrientation(t *testing.T) {
	t.Run("clear", func(t *testing.T) {
		s := mustParse(t, "000\n*@*\n***\n")
		if obs := s.SwitchOrientation(); obs != nil {
			t.Fatalf("expected switch to succeed, got %v", obs)
		}
		if s.Player.Orientation != engine.OrientRight {
			t.Errorf("expected hook on the right, got %v", s.Player.Orientation)
		}
		if s.TapeEdge() != engine.C(2, 1) {
			t.Errorf("expected hook at (2,1), got %v", s.TapeEdge())
		}
	})

	t.Run("embedded", func(t *testing.T) {
		s := mustParse(t, "000\n*@0\n***\n")
		before := s.Clone()

		obs := s.SwitchOrientation()
		if len(obs) != 2 || obs[0] != engine.C(2, 0) || obs[1] != engine.C(2, 1) {
			t.Errorf("expected obstruction [(2,0) (2,1)], got %v", obs)
		}
		if !s.Equal(before) {
			t.Error("rejected switch changed the state")
		}
	})

	t.Run("inside one block", func(t *testing.T) {
		s := mustParse(t, "*AA\n*@A\n***\n")

		obs := s.SwitchOrientation()
		if len(obs) != 2 {
			t.Errorf("expected two obstruction cells, got %v", obs)
		}
		if s.Player.Orientation != engine.OrientLeft {
			t.Error("expected orientation unchanged")
		}
	})
}
