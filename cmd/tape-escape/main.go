// tape-escape is a terminal puzzle game about a player tethered to a
// retractable measuring tape.
//
// Usage:
//
//	tape-escape play [level]      - Play, starting from the level picker or a level
//	tape-escape levels            - List available levels
//	tape-escape show <level>      - Print a level as text
//	tape-escape check [dir]       - Validate level pack files
//	tape-escape progress [level]  - Show recorded progress
//	tape-escape serve             - Start SSH server for remote play
//
// Global flags:
//
//	--config <path>     - Config file (default: search the usual locations)
//	--db <path>         - Progress database (default: ~/.tape-escape/progress.db)
//	--levels <dir>      - Level pack directory (default: built-in pack)
//	--log-level <lvl>   - debug, info, warn or error
//	--player <name>     - Player name for progress (default: $USER)
package main

import (
	"fmt"
	"os"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/vovakirdan/tape-escape/internal/config"
	"github.com/vovakirdan/tape-escape/internal/engine"
	"github.com/vovakirdan/tape-escape/internal/levels"
	"github.com/vovakirdan/tape-escape/internal/storage"
)

var (
	// Global flags
	flagConfig   string
	flagDBPath   string
	flagLevels   string
	flagLogLevel string
	flagPlayer   string
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "tape-escape",
	Short: "Tape Escape - a tethered puzzle game for your terminal",
	Long: `Tape Escape is a grid puzzle. You are tied to a measuring tape: extend it
to push blocks, hook walls and blocks with its end, and pull yourself
across pits to reach the goal.

Available commands:
  play      - Play levels in the terminal
  levels    - List available levels
  show      - Print a level as text
  check     - Validate level pack files
  progress  - Show recorded progress
  serve     - Start SSH server for remote play

Examples:
  tape-escape play
  tape-escape play classic/03
  tape-escape levels --levels ./my-packs
  tape-escape check ./my-packs
  tape-escape serve --ssh :2222`,
}

func init() {
	rootCmd.PersistentFlags().StringVar(&flagConfig, "config", "", "Path to config YAML")
	rootCmd.PersistentFlags().StringVar(&flagDBPath, "db", "", "Path to progress database (overrides config)")
	rootCmd.PersistentFlags().StringVar(&flagLevels, "levels", "", "Level pack directory (overrides config)")
	rootCmd.PersistentFlags().StringVar(&flagLogLevel, "log-level", "", "Log level: debug, info, warn, error")
	rootCmd.PersistentFlags().StringVar(&flagPlayer, "player", "", "Player name for progress (default: $USER)")

	rootCmd.AddCommand(playCmd)
	rootCmd.AddCommand(levelsCmd)
	rootCmd.AddCommand(showCmd)
	rootCmd.AddCommand(checkCmd)
	rootCmd.AddCommand(progressCmd)
	rootCmd.AddCommand(serveCmd)
}

// env is the configuration shared by the subcommands.
type env struct {
	cfg    config.Config
	rules  engine.Config
	logger *log.Logger
	loader *levels.Loader
}

// loadEnv reads the config file and applies the global flags.
// Errors end the program.
func loadEnv() env {
	cfg, err := config.Load(flagConfig)
	if err != nil {
		fatalf("Error loading config: %v", err)
	}
	if flagDBPath != "" {
		cfg.Storage.Path = flagDBPath
	}
	if flagLevels != "" {
		cfg.Levels.Dir = flagLevels
	}
	if flagLogLevel != "" {
		cfg.Log.Level = flagLogLevel
	}
	if err := cfg.Validate(); err != nil {
		fatalf("Invalid config:\n%v", err)
	}

	rules, _ := cfg.EngineRules()
	level, _ := cfg.LogLevel()
	logger := log.NewWithOptions(os.Stderr, log.Options{
		ReportTimestamp: true,
		Prefix:          "tape-escape",
		Level:           level,
	})

	dir, err := config.ExpandHome(cfg.Levels.Dir)
	if err != nil {
		fatalf("Error: %v", err)
	}

	return env{
		cfg:    cfg,
		rules:  rules,
		logger: logger,
		loader: levels.NewLoader(dir, rules, logger),
	}
}

// loadLevels returns every playable level or ends the program.
func (e env) loadLevels() []levels.Level {
	lvls, err := e.loader.LoadAll()
	if err != nil {
		fatalf("Error loading levels: %v", err)
	}
	if len(lvls) == 0 {
		fatalf("Error: no playable levels in %s", e.loader.Root)
	}
	return lvls
}

// openStore opens the progress database. With required unset a failure
// only warns and nil is returned.
func (e env) openStore(required bool) *storage.Store {
	store, err := storage.Open(e.cfg.Storage.Path)
	if err != nil {
		if required {
			fatalf("Error opening progress database: %v", err)
		}
		fmt.Fprintf(os.Stderr, "Warning: could not open progress database: %v\n", err)
		return nil
	}
	return store
}

// player returns the player name from the flag or the environment.
func player() string {
	if flagPlayer != "" {
		return flagPlayer
	}
	if u := os.Getenv("USER"); u != "" {
		return u
	}
	return "player"
}

func fatalf(format string, args ...any) {
	fmt.Fprintf(os.Stderr, format+"\n", args...)
	os.Exit(1)
}
