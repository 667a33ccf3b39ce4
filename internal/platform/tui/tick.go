// Package tui provides the Bubble Tea integration for tape-escape: the game
// view, the level picker, the progress board and the SSH server that runs
// one program per connection.
package tui

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"
)

// flashDuration is how long an obstruction stays highlighted.
const flashDuration = 800 * time.Millisecond

// flashDoneMsg ends the obstruction highlight started with the same seq.
type flashDoneMsg struct {
	seq int
}

// flashCmd returns a command that ends highlight seq after d.
func flashCmd(d time.Duration, seq int) tea.Cmd {
	return tea.Tick(d, func(time.Time) tea.Msg {
		return flashDoneMsg{seq: seq}
	})
}
