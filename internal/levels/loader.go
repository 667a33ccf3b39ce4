// Package levels loads level packs from a directory or from the built-in
// default pack. This package depends on engine but engine does not depend
// on levels.
package levels

import (
	"embed"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path"
	"sort"
	"strings"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/tape-escape/internal/engine"
	"github.com/vovakirdan/tape-escape/internal/levels/formats"
)

//go:embed default
var defaultFS embed.FS

// ErrLevelNotFound is returned by LoadByID for an unknown id.
var ErrLevelNotFound = errors.New("level not found")

// Level is a validated level ready to play.
type Level struct {
	ID       string // "<pack>/<level>"
	Pack     string
	PackName string
	Name     string
	Par      int
	Text     string
	FilePath string
}

// Title returns the level name, falling back to its id.
func (l Level) Title() string {
	if l.Name != "" {
		return l.Name
	}
	return l.ID
}

// NewState parses the level into a fresh engine state.
func (l Level) NewState(cfg engine.Config) (*engine.State, error) {
	s, err := engine.Parse(l.Text, cfg)
	if err != nil {
		return nil, fmt.Errorf("level %s: %w", l.ID, err)
	}
	return s, nil
}

// Loader handles loading level packs from a file system.
type Loader struct {
	FS     fs.FS
	Root   string // Where FS came from, for messages
	Config engine.Config
	Logger *log.Logger
}

// NewLoader creates a loader for the directory root. An empty root selects
// the built-in default pack.
func NewLoader(root string, cfg engine.Config, logger *log.Logger) *Loader {
	if logger == nil {
		logger = log.New(io.Discard)
	}
	if root == "" {
		sub, _ := fs.Sub(defaultFS, "default")
		return &Loader{FS: sub, Root: "<built-in>", Config: cfg, Logger: logger}
	}
	return &Loader{FS: os.DirFS(root), Root: root, Config: cfg, Logger: logger}
}

// LoadAll recursively scans and loads every pack file. Files that fail to
// parse, or that hold a level the engine rejects, are skipped with a
// warning. Packs are ordered by pack id; levels keep their pack order.
func (l *Loader) LoadAll() ([]Level, error) {
	paths, err := l.packFiles()
	if err != nil {
		return nil, err
	}

	var packs [][]Level
	for _, p := range paths {
		lvls, err := l.LoadFile(p)
		if err != nil {
			l.Logger.Warn("skipping level file", "path", p, "err", err)
			continue
		}
		packs = append(packs, lvls)
	}

	sort.SliceStable(packs, func(i, j int) bool {
		return packs[i][0].Pack < packs[j][0].Pack
	})

	var levels []Level
	seen := make(map[string]string)
	for _, pack := range packs {
		for _, lvl := range pack {
			if first, dup := seen[lvl.ID]; dup {
				l.Logger.Warn("duplicate level id", "id", lvl.ID, "path", lvl.FilePath, "first", first)
				continue
			}
			seen[lvl.ID] = lvl.FilePath
			levels = append(levels, lvl)
		}
	}

	return levels, nil
}

// FileResult is the outcome of loading one pack file.
type FileResult struct {
	Path   string
	Levels int
	Err    error
}

// Check loads every pack file and reports each outcome, failures included.
func (l *Loader) Check() ([]FileResult, error) {
	paths, err := l.packFiles()
	if err != nil {
		return nil, err
	}

	results := make([]FileResult, len(paths))
	for i, p := range paths {
		lvls, err := l.LoadFile(p)
		results[i] = FileResult{Path: p, Levels: len(lvls), Err: err}
	}
	return results, nil
}

// packFiles returns every file with a registered pack extension, in walk
// order.
func (l *Loader) packFiles() ([]string, error) {
	var paths []string
	err := fs.WalkDir(l.FS, ".", func(p string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			return nil
		}
		if _, ok := formats.Lookup(path.Ext(p)); ok {
			paths = append(paths, p)
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("walking directory %s: %w", l.Root, err)
	}
	return paths, nil
}

// LoadFile loads and validates every level of a single pack file. p is a
// slash-separated path inside the loader's file system.
func (l *Loader) LoadFile(p string) ([]Level, error) {
	data, err := fs.ReadFile(l.FS, p)
	if err != nil {
		return nil, fmt.Errorf("reading file %s: %w", p, err)
	}

	ext := path.Ext(p)
	name := strings.TrimSuffix(path.Base(p), ext)
	pack, err := formats.Parse(ext, name, data)
	if err != nil {
		return nil, fmt.Errorf("parsing file %s: %w", p, err)
	}

	levels := make([]Level, 0, len(pack.Levels))
	for _, pl := range pack.Levels {
		lvl := Level{
			ID:       pack.ID + "/" + pl.ID,
			Pack:     pack.ID,
			PackName: pack.Name,
			Name:     pl.Name,
			Par:      pl.Par,
			Text:     pl.Grid,
			FilePath: p,
		}
		if _, err := lvl.NewState(l.Config); err != nil {
			return nil, fmt.Errorf("parsing file %s: %w", p, err)
		}
		levels = append(levels, lvl)
	}

	return levels, nil
}

// LoadByID loads a specific level by its full id.
func (l *Loader) LoadByID(id string) (Level, error) {
	levels, err := l.LoadAll()
	if err != nil {
		return Level{}, err
	}

	for _, lvl := range levels {
		if lvl.ID == id {
			return lvl, nil
		}
	}

	return Level{}, fmt.Errorf("%w: %s", ErrLevelNotFound, id)
}

// ListIDs returns all level ids in play order.
func (l *Loader) ListIDs() ([]string, error) {
	levels, err := l.LoadAll()
	if err != nil {
		return nil, err
	}

	ids := make([]string, len(levels))
	for i, lvl := range levels {
		ids[i] = lvl.ID
	}
	return ids, nil
}

// Count returns the number of loadable levels.
func (l *Loader) Count() (int, error) {
	levels, err := l.LoadAll()
	if err != nil {
		return 0, err
	}
	return len(levels), nil
}

// Index returns the position of id in levels, or -1.
func Index(levels []Level, id string) int {
	for i, lvl := range levels {
		if lvl.ID == id {
			return i
		}
	}
	return -1
}
