package main

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/tape-escape/internal/storage"
)

var (
	flagAllPlayers bool
	flagLimit      int
	flagReset      bool
)

var progressCmd = &cobra.Command{
	Use:   "progress [level]",
	Short: "Show recorded progress",
	Long: `Without arguments, show the current player's results for every level
played. With a level id, show the best solves of that level by anyone.

Examples:
  tape-escape progress
  tape-escape progress --all
  tape-escape progress classic/03 --limit 5
  tape-escape progress --reset --player ann`,
	Args: cobra.MaximumNArgs(1),
	Run:  runProgress,
}

func init() {
	progressCmd.Flags().BoolVar(&flagAllPlayers, "all", false, "Include every player")
	progressCmd.Flags().IntVar(&flagLimit, "limit", 10, "Number of solves to show for a level")
	progressCmd.Flags().BoolVar(&flagReset, "reset", false, "Delete the player's recorded progress")
}

func runProgress(_ *cobra.Command, args []string) {
	e := loadEnv()
	store := e.openStore(true)
	defer store.Close()

	name := player()

	if flagReset {
		if err := store.ClearProgress(name); err != nil {
			store.Close()
			fatalf("Error clearing progress: %v", err)
		}
		fmt.Printf("Progress of %s cleared.\n", name)
		return
	}

	if len(args) == 1 {
		showLevelSolves(store, args[0])
		return
	}

	who := name
	if flagAllPlayers {
		who = ""
	}
	list, err := store.Progress(who)
	if err != nil {
		store.Close()
		fatalf("Error retrieving progress: %v", err)
	}

	if who == "" {
		fmt.Println("Progress - all players")
	} else {
		fmt.Printf("Progress - %s\n", who)
	}
	fmt.Println()

	if len(list) == 0 {
		fmt.Println("No levels played yet.")
		fmt.Println()
		fmt.Println("Run 'tape-escape play' to start!")
		return
	}

	maxIDLen := len("Level")
	for _, p := range list {
		maxIDLen = max(maxIDLen, len(p.LevelID))
	}

	fmt.Printf("  %-*s  %-6s  %-4s  %-5s  %-5s  %s\n", maxIDLen, "Level", "Solved", "Best", "Plays", "Falls", "Last played")
	fmt.Printf("  %-*s  %-6s  %-4s  %-5s  %-5s  %s\n", maxIDLen, "-----", "------", "----", "-----", "-----", "-----------")

	solved := 0
	for _, p := range list {
		mark, best := "no", "-"
		if p.Solved {
			solved++
			mark, best = "yes", fmt.Sprintf("%d", p.BestMoves)
		}
		fmt.Printf("  %-*s  %-6s  %-4s  %-5d  %-5d  %s\n", maxIDLen, p.LevelID, mark, best,
			p.Completed, p.TotalFalls, p.LastPlayed.Local().Format("2006-01-02 15:04"))
	}

	fmt.Println()
	fmt.Printf("Solved: %d of %d levels played\n", solved, len(list))
}

// showLevelSolves prints the fewest-move solves of one level.
func showLevelSolves(store *storage.Store, levelID string) {
	solves, err := store.Completions(levelID, flagLimit)
	if err != nil {
		store.Close()
		fatalf("Error retrieving solves: %v", err)
	}

	fmt.Printf("Best solves - %s\n", levelID)
	fmt.Println()

	if len(solves) == 0 {
		fmt.Println("Nobody has solved this level yet.")
		fmt.Println()
		fmt.Printf("Play 'tape-escape play %s' to be the first!\n", levelID)
		return
	}

	fmt.Printf("  %-4s  %-16s  %-5s  %-5s  %-5s  %-8s  %s\n", "Rank", "Player", "Moves", "Undos", "Falls", "Time", "Date")
	fmt.Printf("  %-4s  %-16s  %-5s  %-5s  %-5s  %-8s  %s\n", "----", "------", "-----", "-----", "-----", "----", "----")

	for i, c := range solves {
		fmt.Printf("  %-4d  %-16s  %-5d  %-5d  %-5d  %-8s  %s\n", i+1, c.Player, c.Moves, c.Undos, c.Falls,
			c.Duration.Round(100*time.Millisecond), c.CreatedAt.Local().Format("2006-01-02 15:04"))
	}
}
