package levels_test

import (
	"errors"
	"path/filepath"
	"runtime"
	"testing"

	"github.com/vovakirdan/tape-escape/internal/engine"
	"github.com/vovakirdan/tape-escape/internal/levels"
)

// getTestdataPath returns path to testdata/pack.
func getTestdataPath() string {
	_, filename, _, _ := runtime.Caller(0)
	return filepath.Join(filepath.Dir(filename), "testdata", "pack")
}

func TestLoaderLoadAll(t *testing.T) {
	loader := levels.NewLoader(getTestdataPath(), engine.DefaultConfig(), nil)

	lvls, err := loader.LoadAll()
	if err != nil {
		t.Fatalf("LoadAll failed: %v", err)
	}

	want := []string{"archive/1", "basics/one", "basics/two", "corner/corner"}
	if len(lvls) != len(want) {
		t.Fatalf("expected %d levels, got %d: %+v", len(want), len(lvls), lvls)
	}
	for i, id := range want {
		if lvls[i].ID != id {
			t.Errorf("level %d: expected %s, got %s", i, id, lvls[i].ID)
		}
	}
}

func TestLoaderLoadByID(t *testing.T) {
	loader := levels.NewLoader(getTestdataPath(), engine.DefaultConfig(), nil)

	lvl, err := loader.LoadByID("basics/one")
	if err != nil {
		t.Fatalf("LoadByID failed: %v", err)
	}

	if lvl.Pack != "basics" || lvl.PackName != "Basics" {
		t.Errorf("expected pack basics/Basics, got %s/%s", lvl.Pack, lvl.PackName)
	}
	if lvl.Title() != "One" || lvl.Par != 2 {
		t.Errorf("expected One with par 2, got %q par %d", lvl.Title(), lvl.Par)
	}
	if lvl.FilePath != "basics.yaml" {
		t.Errorf("expected file basics.yaml, got %s", lvl.FilePath)
	}

	s, err := lvl.NewState(engine.DefaultConfig())
	if err != nil {
		t.Fatalf("NewState failed: %v", err)
	}
	if s.Player.Pos != engine.C(1, 1) || s.Goal != engine.C(1, 2) {
		t.Errorf("unexpected player %v or goal %v", s.Player.Pos, s.Goal)
	}

	untitled, err := loader.LoadByID("basics/two")
	if err != nil {
		t.Fatalf("LoadByID failed: %v", err)
	}
	if untitled.Title() != "basics/two" {
		t.Errorf("expected title to fall back to id, got %q", untitled.Title())
	}
}

func TestLoaderLoadByIDNotFound(t *testing.T) {
	loader := levels.NewLoader(getTestdataPath(), engine.DefaultConfig(), nil)

	_, err := loader.LoadByID("broken/bad")
	if !errors.Is(err, levels.ErrLevelNotFound) {
		t.Errorf("expected ErrLevelNotFound, got %v", err)
	}
}

func TestLoaderLoadFileReportsInvalidLevel(t *testing.T) {
	loader := levels.NewLoader(getTestdataPath(), engine.DefaultConfig(), nil)

	testCases := []struct {
		path  string
		isErr error
	}{
		{"broken.yaml", engine.ErrUnknownSymbol},
		{"noplayer.txt", engine.ErrNoPlayer},
	}

	for _, tc := range testCases {
		t.Run(tc.path, func(t *testing.T) {
			_, err := loader.LoadFile(tc.path)
			if !errors.Is(err, tc.isErr) {
				t.Errorf("expected %v, got %v", tc.isErr, err)
			}
		})
	}
}

func TestLoaderRespectsEngineConfig(t *testing.T) {
	cfg := engine.DefaultConfig()
	cfg.Symbols.Wall = '#'

	loader := levels.NewLoader(getTestdataPath(), cfg, nil)
	count, err := loader.Count()
	if err != nil {
		t.Fatalf("Count failed: %v", err)
	}
	if count != 0 {
		t.Errorf("expected every level rejected under a different wall symbol, got %d", count)
	}
}

func TestLoaderMissingDirectory(t *testing.T) {
	loader := levels.NewLoader(filepath.Join(t.TempDir(), "missing"), engine.DefaultConfig(), nil)

	if _, err := loader.LoadAll(); err == nil {
		t.Error("expected error for missing directory")
	}
}

func TestDefaultPack(t *testing.T) {
	loader := levels.NewLoader("", engine.DefaultConfig(), nil)

	ids, err := loader.ListIDs()
	if err != nil {
		t.Fatalf("ListIDs failed: %v", err)
	}

	want := []string{
		"classic/01", "classic/02", "classic/03", "classic/04", "classic/05",
		"originals/1", "originals/2",
	}
	if len(ids) != len(want) {
		t.Fatalf("expected %v, got %v", want, ids)
	}
	for i := range want {
		if ids[i] != want[i] {
			t.Errorf("level %d: expected %s, got %s", i, want[i], ids[i])
		}
	}

	lvls, _ := loader.LoadAll()
	if i := levels.Index(lvls, "originals/1"); i != 5 {
		t.Errorf("expected originals/1 at index 5, got %d", i)
	}
	if lvls[5].Title() != "Up the Chimney" || lvls[5].PackName != "Originals" {
		t.Errorf("unexpected ini metadata %+v", lvls[5])
	}
	if levels.Index(lvls, "nope") != -1 {
		t.Error("expected -1 for unknown id")
	}
}

func TestLoaderCheck(t *testing.T) {
	loader := levels.NewLoader(getTestdataPath(), engine.DefaultConfig(), nil)

	results, err := loader.Check()
	if err != nil {
		t.Fatalf("Check failed: %v", err)
	}

	want := []struct {
		path   string
		levels int
		ok     bool
	}{
		{"basics.yaml", 2, true},
		{"broken.yaml", 0, false},
		{"corner.txt", 1, true},
		{"nested/archive.ini", 1, true},
		{"noplayer.txt", 0, false},
	}
	if len(results) != len(want) {
		t.Fatalf("expected %d results, got %d: %+v", len(want), len(results), results)
	}
	for i, w := range want {
		r := results[i]
		if r.Path != w.path || r.Levels != w.levels || (r.Err == nil) != w.ok {
			t.Errorf("result %d: expected %+v, got %+v", i, w, r)
		}
	}
}
