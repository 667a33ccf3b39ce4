package main

import (
	"fmt"
	"io"
	"os"

	"github.com/google/uuid"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/vovakirdan/tape-escape/internal/core"
	"github.com/vovakirdan/tape-escape/internal/levels"
	"github.com/vovakirdan/tape-escape/internal/platform/tui"
	"github.com/vovakirdan/tape-escape/internal/storage"
)

var flagLogFile string

var playCmd = &cobra.Command{
	Use:   "play [level]",
	Short: "Play levels in the terminal",
	Long: `Open the level picker, or start directly at the given level.

Controls:
  Arrows/WASD  - Turn; press again to extend, opposite to retract
  Space/F      - Flip the hook to the other side of the tape
  U/Z          - Undo
  Y/Ctrl+R     - Redo
  R            - Restart the level
  N            - Skip the level
  Esc/B        - Back to the level picker
  Q/Ctrl+C     - Quit

Examples:
  tape-escape play
  tape-escape play classic/02
  tape-escape play --levels ./my-packs --player ann`,
	Args: cobra.MaximumNArgs(1),
	Run:  runPlay,
}

func init() {
	playCmd.Flags().StringVar(&flagLogFile, "log-file", "", "Write logs to this file while playing")
}

func runPlay(_ *cobra.Command, args []string) {
	e := loadEnv()
	lvls := e.loadLevels()

	startID := e.cfg.Levels.Start
	if len(args) == 1 {
		startID = args[0]
	}
	if startID != "" && levels.Index(lvls, startID) < 0 {
		fmt.Fprintf(os.Stderr, "Error: unknown level %q\n", startID)
		fmt.Fprintln(os.Stderr, "Run 'tape-escape levels' to see available levels.")
		os.Exit(1)
	}

	// The terminal belongs to the game; logs go to a file or nowhere.
	if flagLogFile != "" {
		f, err := os.OpenFile(flagLogFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o600)
		if err != nil {
			fatalf("Error opening log file: %v", err)
		}
		defer f.Close()
		e.logger.SetOutput(f)
	} else {
		e.logger.SetOutput(io.Discard)
	}

	size := core.DefaultRuntimeConfig()
	if w, h, termErr := term.GetSize(int(os.Stdout.Fd())); termErr == nil {
		size.ScreenW = w
		size.ScreenH = h
	}

	name := player()
	sessionID := uuid.NewString()
	store := e.openStore(false)
	if store != nil {
		rec := storage.SessionRecord{ID: sessionID, Player: name, Source: "local"}
		if err := store.StartSession(rec); err != nil {
			e.logger.Warn("cannot record session", "err", err)
		}
	}

	runErr := tui.Run(tui.AppOptions{
		Levels:       lvls,
		Rules:        e.rules,
		HistoryDepth: e.cfg.History.Depth,
		Store:        store,
		Player:       name,
		SessionID:    sessionID,
		StartID:      startID,
		Theme:        tui.NewTheme(e.cfg.Theme),
		Logger:       e.logger,
		Width:        size.ScreenW,
		Height:       size.ScreenH,
	})

	// Close store before potential exit
	if store != nil {
		store.Close()
	}

	if runErr != nil {
		fmt.Fprintf(os.Stderr, "Error running game: %v\n", runErr)
		os.Exit(1)
	}
}
