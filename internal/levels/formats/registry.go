// Package formats provides pluggable level pack file parsers.
// Each format registers itself by file extension in an init() function,
// so the loader can discover parsers without a hardcoded switch.
package formats

import (
	"errors"
	"fmt"
	"sort"
	"strings"
	"sync"
)

// ErrEmptyPack is returned for a pack file that defines no levels.
var ErrEmptyPack = errors.New("pack has no levels")

// Level is one level as read from a pack file. Grid holds the raw level
// text; it is not validated here.
type Level struct {
	ID   string
	Name string
	Par  int // Suggested move count, 0 if unknown
	Grid string
}

// Pack is the parsed content of one file.
type Pack struct {
	ID     string
	Name   string
	Levels []Level
}

// Parser decodes a pack file. name is the file name without its
// extension and serves as the default pack ID.
type Parser func(name string, data []byte) (Pack, error)

var (
	parsers = make(map[string]Parser)
	mu      sync.RWMutex
)

// Register adds a parser for a file extension such as ".yaml".
// Panics if the extension is already registered.
func Register(ext string, p Parser) {
	mu.Lock()
	defer mu.Unlock()

	ext = strings.ToLower(ext)
	if _, exists := parsers[ext]; exists {
		panic(fmt.Sprintf("formats: extension %q already registered", ext))
	}
	parsers[ext] = p
}

// Lookup returns the parser registered for ext.
func Lookup(ext string) (Parser, bool) {
	mu.RLock()
	defer mu.RUnlock()

	p, ok := parsers[strings.ToLower(ext)]
	return p, ok
}

// Extensions returns every registered extension, sorted.
func Extensions() []string {
	mu.RLock()
	defer mu.RUnlock()

	exts := make([]string, 0, len(parsers))
	for ext := range parsers {
		exts = append(exts, ext)
	}
	sort.Strings(exts)
	return exts
}

// Parse decodes data with the parser registered for ext and checks the
// pack for missing or duplicate level IDs.
func Parse(ext, name string, data []byte) (Pack, error) {
	p, ok := Lookup(ext)
	if !ok {
		return Pack{}, fmt.Errorf("unsupported extension: %s", ext)
	}
	pack, err := p(name, data)
	if err != nil {
		return Pack{}, err
	}
	if err := pack.validate(); err != nil {
		return Pack{}, err
	}
	return pack, nil
}

func (p *Pack) validate() error {
	if p.ID == "" {
		return errors.New("pack has no id")
	}
	if len(p.Levels) == 0 {
		return ErrEmptyPack
	}
	seen := make(map[string]bool, len(p.Levels))
	for i, lvl := range p.Levels {
		if lvl.ID == "" {
			return fmt.Errorf("level %d has no id", i+1)
		}
		if seen[lvl.ID] {
			return fmt.Errorf("duplicate level id %q", lvl.ID)
		}
		seen[lvl.ID] = true
		if strings.TrimSpace(lvl.Grid) == "" {
			return fmt.Errorf("level %q has an empty grid", lvl.ID)
		}
	}
	return nil
}
