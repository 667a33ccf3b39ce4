package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/tape-escape/internal/config"
	"github.com/vovakirdan/tape-escape/internal/levels"
)

var checkCmd = &cobra.Command{
	Use:   "check [dir]",
	Short: "Validate level pack files",
	Long: `Load every pack file under dir (default: the configured level
directory) and report which files fail and why. Exits with status 1 when
any file is invalid.

Examples:
  tape-escape check
  tape-escape check ./my-packs`,
	Args: cobra.MaximumNArgs(1),
	Run:  runCheck,
}

func runCheck(_ *cobra.Command, args []string) {
	e := loadEnv()

	loader := e.loader
	if len(args) == 1 {
		dir, err := config.ExpandHome(args[0])
		if err != nil {
			fatalf("Error: %v", err)
		}
		loader = levels.NewLoader(dir, e.rules, e.logger)
	}

	results, err := loader.Check()
	if err != nil {
		fatalf("Error: %v", err)
	}
	if len(results) == 0 {
		fatalf("No level pack files found in %s", loader.Root)
	}

	failed, total := 0, 0
	for _, r := range results {
		if r.Err != nil {
			failed++
			fmt.Printf("FAIL  %s: %v\n", r.Path, r.Err)
			continue
		}
		total += r.Levels
		fmt.Printf("ok    %s (%d levels)\n", r.Path, r.Levels)
	}

	fmt.Println()
	fmt.Printf("%d files, %d failed, %d valid levels\n", len(results), failed, total)
	if failed > 0 {
		os.Exit(1)
	}
}
