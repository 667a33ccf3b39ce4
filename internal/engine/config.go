package engine

import (
	"errors"
	"fmt"
	"unicode"
)

// ErrInvalidConfig is returned when a Config fails validation.
var ErrInvalidConfig = errors.New("invalid engine config")

// Symbols maps level-text characters to tiles and markers.
type Symbols struct {
	Space  rune
	Wall   rune
	Player rune
	Pit    rune
	Goal   rune
}

// DefaultSymbols returns the standard level alphabet.
func DefaultSymbols() Symbols {
	return Symbols{
		Space:  '*',
		Wall:   '0',
		Player: '@',
		Pit:    '.',
		Goal:   '+',
	}
}

// Config is the immutable rule set a State is built with.
type Config struct {
	// MaxTapeLength bounds the tape and sets the width of the pit border.
	MaxTapeLength int

	// BlockLetters lists the lowercase letters that name blocks.
	// The uppercase form marks a block cell over Space, the lowercase
	// form a block cell over Pit.
	BlockLetters string

	Symbols Symbols
}

// DefaultConfig returns the standard rules: tape length 6, blocks a-f.
func DefaultConfig() Config {
	return Config{
		MaxTapeLength: 6,
		BlockLetters:  "abcdef",
		Symbols:       DefaultSymbols(),
	}
}

// Validate checks that the config is usable.
func (c Config) Validate() error {
	if c.MaxTapeLength < 1 {
		return fmt.Errorf("%w: max tape length %d < 1", ErrInvalidConfig, c.MaxTapeLength)
	}

	seen := make(map[rune]bool)
	for _, r := range c.BlockLetters {
		if r > unicode.MaxASCII || !unicode.IsLower(r) {
			return fmt.Errorf("%w: block letter %q is not a lowercase ASCII letter", ErrInvalidConfig, r)
		}
		if seen[r] {
			return fmt.Errorf("%w: duplicate block letter %q", ErrInvalidConfig, r)
		}
		seen[r] = true
	}
	if len(seen) == 0 {
		return fmt.Errorf("%w: no block letters", ErrInvalidConfig)
	}

	for _, r := range []rune{c.Symbols.Space, c.Symbols.Wall, c.Symbols.Player, c.Symbols.Pit, c.Symbols.Goal} {
		if unicode.IsLetter(r) || unicode.IsSpace(r) || r == 0 {
			return fmt.Errorf("%w: symbol %q must be a printable non-letter", ErrInvalidConfig, r)
		}
		if seen[r] {
			return fmt.Errorf("%w: symbol %q used twice", ErrInvalidConfig, r)
		}
		seen[r] = true
	}
	return nil
}

// isBlockLetter reports whether r (either case) names a block.
func (c Config) isBlockLetter(r rune) bool {
	if r > unicode.MaxASCII {
		return false
	}
	lower := unicode.ToLower(r)
	for _, l := range c.BlockLetters {
		if l == lower {
			return true
		}
	}
	return false
}
