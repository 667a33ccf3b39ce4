package tui

import (
	"github.com/charmbracelet/lipgloss"

	"github.com/vovakirdan/tape-escape/internal/config"
	"github.com/vovakirdan/tape-escape/internal/core"
)

// Theme contains the visual styles of the game board and the menus.
type Theme struct {
	// Board cell styles, indexed by color role
	Cells map[core.Color]lipgloss.Style

	// Menu styles
	Title      lipgloss.Style
	ItemNormal lipgloss.Style
	ItemActive lipgloss.Style
	Solved     lipgloss.Style
	Help       lipgloss.Style
	Border     lipgloss.Color
}

// DefaultTheme returns the theme of the built-in configuration.
func DefaultTheme() Theme {
	return NewTheme(config.Default().Theme)
}

// NewTheme builds a theme from configured colors. Floor colors are used as
// backgrounds so the tape and blocks stand out on them.
func NewTheme(tc config.ThemeConfig) Theme {
	space := lipgloss.Color(tc.Space)
	fg := func(c string) lipgloss.Style {
		return lipgloss.NewStyle().Foreground(lipgloss.Color(c)).Background(space)
	}

	return Theme{
		Cells: map[core.Color]lipgloss.Style{
			core.ColorDefault:     lipgloss.NewStyle(),
			core.ColorWall:        lipgloss.NewStyle().Foreground(lipgloss.Color(tc.Wall)),
			core.ColorSpace:       lipgloss.NewStyle().Background(space),
			core.ColorPit:         lipgloss.NewStyle().Background(lipgloss.Color(tc.Pit)),
			core.ColorPlayer:      fg(tc.Player).Bold(true),
			core.ColorTape:        fg(tc.Tape),
			core.ColorHook:        fg(tc.Hook).Bold(true),
			core.ColorGoal:        fg(tc.Goal).Bold(true),
			core.ColorBlock:       fg(tc.Block).Bold(true),
			core.ColorObstruction: lipgloss.NewStyle().Foreground(lipgloss.Color(tc.Obstruction)).Bold(true).Blink(true),
			core.ColorText:        lipgloss.NewStyle().Bold(true),
			core.ColorDim:         lipgloss.NewStyle().Foreground(lipgloss.Color("245")),
		},

		Title:      lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("229")),
		ItemNormal: lipgloss.NewStyle().Foreground(lipgloss.Color("252")),
		ItemActive: lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("229")).Background(lipgloss.Color("57")),
		Solved:     lipgloss.NewStyle().Foreground(lipgloss.Color(tc.Goal)),
		Help:       lipgloss.NewStyle().Foreground(lipgloss.Color("241")),
		Border:     lipgloss.Color("240"),
	}
}

// Style returns the style for a color role.
func (t Theme) Style(c core.Color) lipgloss.Style {
	if s, ok := t.Cells[c]; ok {
		return s
	}
	return t.Cells[core.ColorDefault]
}
