package config

import (
	_ "embed"
	"time"
)

//go:embed defaults/tape-escape.yaml
var defaultYAML []byte

// Default returns the built-in configuration.
func Default() Config {
	return Config{
		Engine: EngineConfig{
			MaxTapeLength: 6,
			BlockLetters:  "abcdef",
			Symbols: SymbolsConfig{
				Space:  "*",
				Wall:   "0",
				Player: "@",
				Pit:    ".",
				Goal:   "+",
			},
		},
		History: HistoryConfig{
			Depth: 256,
		},
		Storage: StorageConfig{
			Path: "~/.tape-escape/progress.db",
		},
		Log: LogConfig{
			Level: "info",
		},
		SSH: SSHConfig{
			Address:     ":23235",
			IdleTimeout: 30 * time.Minute,
		},
		Theme: ThemeConfig{
			Wall:        "#6c6c6c",
			Space:       "#3a3a3a",
			Pit:         "#000000",
			Player:      "#ffd75f",
			Tape:        "#d7d7d7",
			Hook:        "#ff8700",
			Goal:        "#5fd75f",
			Block:       "#5f87ff",
			Obstruction: "#ff5f5f",
		},
	}
}
