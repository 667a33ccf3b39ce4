package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

var levelsCmd = &cobra.Command{
	Use:   "levels",
	Short: "List available levels",
	Long: `Shows every playable level in play order. Levels solved by the current
player are marked when the progress database is available.`,
	Run: runLevels,
}

func runLevels(_ *cobra.Command, _ []string) {
	e := loadEnv()
	lvls := e.loadLevels()

	solved := map[string]bool{}
	if store := e.openStore(false); store != nil {
		if s, err := store.SolvedLevels(player()); err == nil {
			solved = s
		}
		store.Close()
	}

	fmt.Printf("Levels in %s:\n", e.loader.Root)
	fmt.Println()

	// Calculate column widths
	maxIDLen := 2 // "ID" header
	for _, l := range lvls {
		maxIDLen = max(maxIDLen, len(l.ID))
	}

	fmt.Printf("    %-*s  %-3s  %s\n", maxIDLen, "ID", "Par", "Name")
	fmt.Printf("    %-*s  %-3s  %s\n", maxIDLen, "--", "---", "----")

	for _, l := range lvls {
		mark := " "
		if solved[l.ID] {
			mark = "✓"
		}
		par := "-"
		if l.Par > 0 {
			par = fmt.Sprintf("%d", l.Par)
		}
		fmt.Printf("  %s %-*s  %-3s  %s\n", mark, maxIDLen, l.ID, par, l.Title())
	}

	fmt.Println()
	fmt.Printf("%d levels, %d solved. Run 'tape-escape play <id>' to play a level.\n", len(lvls), len(solved))
}
