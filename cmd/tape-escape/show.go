package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/tape-escape/internal/engine"
)

var flagRaw bool

var showCmd = &cobra.Command{
	Use:   "show <level>",
	Short: "Print a level as text",
	Long: `Print the starting position of a level with the tape drawn in.

With --raw the level is printed in the level text format instead, ready to
paste into a pack file.

Examples:
  tape-escape show classic/01
  tape-escape show classic/01 --raw`,
	Args: cobra.ExactArgs(1),
	Run:  runShow,
}

func init() {
	showCmd.Flags().BoolVar(&flagRaw, "raw", false, "Print the level text format")
}

func runShow(_ *cobra.Command, args []string) {
	e := loadEnv()

	lvl, err := e.loader.LoadByID(args[0])
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		fmt.Fprintln(os.Stderr, "Run 'tape-escape levels' to see available levels.")
		os.Exit(1)
	}

	st, err := lvl.NewState(e.rules)
	if err != nil {
		fatalf("Error: %v", err)
	}

	if flagRaw {
		fmt.Print(st.Serialize())
		return
	}

	fmt.Printf("%s (%s)\n", lvl.Title(), lvl.ID)
	if lvl.Par > 0 {
		fmt.Printf("Par: %d\n", lvl.Par)
	}
	fmt.Println()
	fmt.Print(engine.RenderASCII(st, nil))
}
