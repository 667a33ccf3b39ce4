package formats

import (
	"errors"
	"strings"
	"testing"
)

func TestExtensionsRegistered(t *testing.T) {
	for _, ext := range []string{".yaml", ".yml", ".ini", ".txt"} {
		if _, ok := Lookup(ext); !ok {
			t.Errorf("expected parser for %s", ext)
		}
	}
	if _, ok := Lookup(".YAML"); !ok {
		t.Error("expected lookup to ignore case")
	}
	if _, ok := Lookup(".json"); ok {
		t.Error("expected no parser for .json")
	}

	exts := Extensions()
	for i := 1; i < len(exts); i++ {
		if exts[i-1] >= exts[i] {
			t.Errorf("extensions not sorted: %v", exts)
		}
	}
}

func TestRegisterDuplicatePanics(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Error("expected panic on duplicate registration")
		}
	}()
	Register(".txt", ParseText)
}

func TestParseYAML(t *testing.T) {
	data := []byte(`id: intro
name: Introduction
levels:
  - id: "01"
    name: Flip
    par: 3
    grid: |
      000
      0@*
      0+*
      000
  - name: Unnumbered
    grid: |
      0@+0
`)

	pack, err := Parse(".yaml", "file", data)
	if err != nil {
		t.Fatalf("Parse failed: %v", err)
	}

	if pack.ID != "intro" || pack.Name != "Introduction" {
		t.Errorf("expected intro/Introduction, got %s/%s", pack.ID, pack.Name)
	}
	if len(pack.Levels) != 2 {
		t.Fatalf("expected 2 levels, got %d", len(pack.Levels))
	}

	first := pack.Levels[0]
	if first.ID != "01" || first.Name != "Flip" || first.Par != 3 {
		t.Errorf("unexpected first level %+v", first)
	}
	if first.Grid != "000\n0@*\n0+*\n000\n" {
		t.Errorf("unexpected grid %q", first.Grid)
	}
	if pack.Levels[1].ID != "2" {
		t.Errorf("expected generated id 2, got %q", pack.Levels[1].ID)
	}
}

func TestParseYAMLDefaultsFromFileName(t *testing.T) {
	pack, err := Parse(".yml", "extras", []byte("levels:\n  - grid: \"@+\"\n"))
	if err != nil {
		t.Fatalf("Parse failed: %v", err)
	}
	if pack.ID != "extras" || pack.Name != "extras" {
		t.Errorf("expected pack named after file, got %s/%s", pack.ID, pack.Name)
	}
}

func TestParseINI(t *testing.T) {
	data := []byte(`[Pack]
name = Originals

[Levels]
1 =
    0000
    0@+0
    0000
2 =
    00000
    0@*+0
    00000

[Names]
1 = Short hop

[Par]
2 = 4
`)

	pack, err := Parse(".ini", "originals", data)
	if err != nil {
		t.Fatalf("Parse failed: %v", err)
	}

	if pack.ID != "originals" || pack.Name != "Originals" {
		t.Errorf("expected originals/Originals, got %s/%s", pack.ID, pack.Name)
	}
	if len(pack.Levels) != 2 {
		t.Fatalf("expected 2 levels, got %d", len(pack.Levels))
	}

	testCases := []struct {
		id   string
		name string
		par  int
		grid string
	}{
		{"1", "Short hop", 0, "0000\n0@+0\n0000\n"},
		{"2", "", 4, "00000\n0@*+0\n00000\n"},
	}
	for i, tc := range testCases {
		t.Run(tc.id, func(t *testing.T) {
			lvl := pack.Levels[i]
			if lvl.ID != tc.id || lvl.Name != tc.name || lvl.Par != tc.par {
				t.Errorf("expected %s/%q/%d, got %s/%q/%d", tc.id, tc.name, tc.par, lvl.ID, lvl.Name, lvl.Par)
			}
			if lvl.Grid != tc.grid {
				t.Errorf("expected grid %q, got %q", tc.grid, lvl.Grid)
			}
		})
	}
}

func TestParseText(t *testing.T) {
	pack, err := Parse(".txt", "corner", []byte("0@0\r\n0+0\r\n"))
	if err != nil {
		t.Fatalf("Parse failed: %v", err)
	}
	if len(pack.Levels) != 1 || pack.Levels[0].ID != "corner" {
		t.Fatalf("expected one level named corner, got %+v", pack.Levels)
	}
	if strings.Contains(pack.Levels[0].Grid, "\r") {
		t.Error("expected carriage returns stripped")
	}
}

func TestParseRejects(t *testing.T) {
	testCases := []struct {
		name string
		ext  string
		data string
	}{
		{"unsupported", ".json", "{}"},
		{"bad yaml", ".yaml", "levels: [:"},
		{"no levels", ".yaml", "id: empty\n"},
		{"duplicate ids", ".yaml", "levels:\n  - {id: a, grid: \"@\"}\n  - {id: a, grid: \"@\"}\n"},
		{"empty grid", ".yaml", "levels:\n  - {id: a, grid: \"\"}\n"},
		{"ini without levels", ".ini", "[Pack]\nname = x\n"},
		{"blank text", ".txt", "\n\n"},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			if _, err := Parse(tc.ext, "f", []byte(tc.data)); err == nil {
				t.Error("expected error")
			}
		})
	}

	if _, err := Parse(".yaml", "f", []byte("id: empty\n")); !errors.Is(err, ErrEmptyPack) {
		t.Errorf("expected ErrEmptyPack, got %v", err)
	}
}
