// Package config provides YAML-based configuration loading for tape-escape.
package config

import (
	"errors"
	"fmt"
	"time"
	"unicode/utf8"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/tape-escape/internal/engine"
)

// Config contains all configuration for tape-escape.
type Config struct {
	Engine  EngineConfig  `yaml:"engine"`
	History HistoryConfig `yaml:"history"`
	Levels  LevelsConfig  `yaml:"levels"`
	Storage StorageConfig `yaml:"storage"`
	Log     LogConfig     `yaml:"log"`
	SSH     SSHConfig     `yaml:"ssh"`
	Theme   ThemeConfig   `yaml:"theme"`
}

// EngineConfig defines the puzzle rules.
type EngineConfig struct {
	MaxTapeLength int           `yaml:"max_tape_length"`
	BlockLetters  string        `yaml:"block_letters"`
	Symbols       SymbolsConfig `yaml:"symbols"`
}

// SymbolsConfig defines the level-text alphabet. Each value is one character.
type SymbolsConfig struct {
	Space  string `yaml:"space"`
	Wall   string `yaml:"wall"`
	Player string `yaml:"player"`
	Pit    string `yaml:"pit"`
	Goal   string `yaml:"goal"`
}

// HistoryConfig defines undo/redo parameters.
type HistoryConfig struct {
	Depth int `yaml:"depth"`
}

// LevelsConfig defines where levels come from.
type LevelsConfig struct {
	Dir   string `yaml:"dir"`
	Start string `yaml:"start"`
}

// StorageConfig defines the progress database.
type StorageConfig struct {
	Path string `yaml:"path"`
}

// LogConfig defines logging parameters.
type LogConfig struct {
	Level string `yaml:"level"`
}

// SSHConfig defines the remote play server.
type SSHConfig struct {
	Address     string        `yaml:"address"`
	HostKey     string        `yaml:"host_key"`
	IdleTimeout time.Duration `yaml:"idle_timeout"`
}

// ThemeConfig defines cell colors as lipgloss color strings.
type ThemeConfig struct {
	Wall        string `yaml:"wall"`
	Space       string `yaml:"space"`
	Pit         string `yaml:"pit"`
	Player      string `yaml:"player"`
	Tape        string `yaml:"tape"`
	Hook        string `yaml:"hook"`
	Goal        string `yaml:"goal"`
	Block       string `yaml:"block"`
	Obstruction string `yaml:"obstruction"`
}

// EngineRules converts the engine section into validated engine rules.
func (c Config) EngineRules() (engine.Config, error) {
	cfg := engine.Config{
		MaxTapeLength: c.Engine.MaxTapeLength,
		BlockLetters:  c.Engine.BlockLetters,
	}

	fields := []struct {
		name string
		src  string
		dst  *rune
	}{
		{"space", c.Engine.Symbols.Space, &cfg.Symbols.Space},
		{"wall", c.Engine.Symbols.Wall, &cfg.Symbols.Wall},
		{"player", c.Engine.Symbols.Player, &cfg.Symbols.Player},
		{"pit", c.Engine.Symbols.Pit, &cfg.Symbols.Pit},
		{"goal", c.Engine.Symbols.Goal, &cfg.Symbols.Goal},
	}
	for _, f := range fields {
		if utf8.RuneCountInString(f.src) != 1 {
			return engine.Config{}, fmt.Errorf("config: symbol %s must be one character, got %q", f.name, f.src)
		}
		*f.dst, _ = utf8.DecodeRuneInString(f.src)
	}

	if err := cfg.Validate(); err != nil {
		return engine.Config{}, fmt.Errorf("config: %w", err)
	}
	return cfg, nil
}

// LogLevel parses the configured log level.
func (c Config) LogLevel() (log.Level, error) {
	if c.Log.Level == "" {
		return log.InfoLevel, nil
	}
	lvl, err := log.ParseLevel(c.Log.Level)
	if err != nil {
		return log.InfoLevel, fmt.Errorf("config: %w", err)
	}
	return lvl, nil
}

// Validate checks every section that can be checked without I/O.
func (c Config) Validate() error {
	var errs []error
	if _, err := c.EngineRules(); err != nil {
		errs = append(errs, err)
	}
	if _, err := c.LogLevel(); err != nil {
		errs = append(errs, err)
	}
	if c.History.Depth < 1 {
		errs = append(errs, fmt.Errorf("config: history depth %d < 1", c.History.Depth))
	}
	if c.SSH.IdleTimeout < 0 {
		errs = append(errs, fmt.Errorf("config: negative ssh idle timeout %s", c.SSH.IdleTimeout))
	}
	return errors.Join(errs...)
}
