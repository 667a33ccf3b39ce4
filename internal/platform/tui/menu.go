package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/vovakirdan/tape-escape/internal/levels"
)

// menuChrome is the number of rows around the level list.
const menuChrome = 8

// MenuModel is the Bubble Tea model for the level picker.
type MenuModel struct {
	levels       []levels.Level
	solved       map[string]bool
	cursor       int
	offset       int
	width        int
	height       int
	theme        Theme
	keys         MenuKeyMap
	help         help.Model
	quitting     bool
	selected     int // -1 until the user picks a level
	openProgress bool
}

// NewMenuModel creates a level picker. The cursor starts on cursor, or on
// the first unsolved level when cursor is negative.
func NewMenuModel(lvls []levels.Level, solved map[string]bool, cursor int, theme Theme, width, height int) MenuModel {
	if cursor < 0 || cursor >= len(lvls) {
		cursor = FirstUnsolved(lvls, solved)
	}
	h := help.New()
	h.Width = width

	m := MenuModel{
		levels:   lvls,
		solved:   solved,
		cursor:   cursor,
		width:    width,
		height:   height,
		theme:    theme,
		keys:     DefaultMenuKeyMap(),
		help:     h,
		selected: -1,
	}
	m.keepVisible()
	return m
}

// FirstUnsolved returns the index of the first level not in solved, or 0
// when every level is solved.
func FirstUnsolved(lvls []levels.Level, solved map[string]bool) int {
	for i, l := range lvls {
		if !solved[l.ID] {
			return i
		}
	}
	return 0
}

// Init initializes the menu model.
func (m MenuModel) Init() tea.Cmd {
	return nil
}

// Update handles messages for the menu.
func (m MenuModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.help.Width = msg.Width
		m.keepVisible()
		return m, nil
	}

	return m, nil
}

// handleKey processes keyboard input for menu navigation.
func (m MenuModel) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Quit):
		m.quitting = true

	case key.Matches(msg, m.keys.Up):
		if m.cursor > 0 {
			m.cursor--
		}

	case key.Matches(msg, m.keys.Down):
		if m.cursor < len(m.levels)-1 {
			m.cursor++
		}

	case key.Matches(msg, m.keys.Select):
		if len(m.levels) > 0 {
			m.selected = m.cursor
		}

	case key.Matches(msg, m.keys.Progress):
		m.openProgress = true
	}

	m.keepVisible()
	return m, nil
}

// visibleRows returns how many levels fit on screen.
func (m MenuModel) visibleRows() int {
	return max(m.height-menuChrome, 3)
}

// keepVisible scrolls the list so the cursor is on screen.
func (m *MenuModel) keepVisible() {
	rows := m.visibleRows()
	if m.cursor < m.offset {
		m.offset = m.cursor
	}
	if m.cursor >= m.offset+rows {
		m.offset = m.cursor - rows + 1
	}
}

// View renders the menu.
func (m MenuModel) View() string {
	if m.quitting {
		return ""
	}

	var b strings.Builder

	b.WriteString("\n")
	b.WriteString(centerText(m.theme.Title.Render("T A P E   E S C A P E"), m.width))
	b.WriteString("\n\n")

	solved := 0
	for _, l := range m.levels {
		if m.solved[l.ID] {
			solved++
		}
	}
	b.WriteString(centerText(fmt.Sprintf("Select a level  (%d/%d solved)", solved, len(m.levels)), m.width))
	b.WriteString("\n\n")

	end := min(m.offset+m.visibleRows(), len(m.levels))
	for i := m.offset; i < end; i++ {
		b.WriteString(centerText(m.renderItem(i), m.width))
		b.WriteString("\n")
	}

	b.WriteString("\n")
	b.WriteString(centerText(m.theme.Help.Render(m.help.View(m.keys)), m.width))
	b.WriteString("\n")

	return b.String()
}

func (m MenuModel) renderItem(i int) string {
	l := m.levels[i]

	mark := "  "
	if m.solved[l.ID] {
		mark = m.theme.Solved.Render("✓ ")
	}

	line := fmt.Sprintf(" %-16s %-24s ", l.ID, truncate(l.Title(), 24))
	if i == m.cursor {
		return mark + m.theme.ItemActive.Render(line)
	}
	return mark + m.theme.ItemNormal.Render(line)
}

// Selected returns the index of the selected level.
func (m MenuModel) Selected() (int, bool) {
	return m.selected, m.selected >= 0
}

// IsQuitting returns true if user requested to quit.
func (m MenuModel) IsQuitting() bool {
	return m.quitting
}

// WantsProgress returns true if user requested the progress board.
func (m MenuModel) WantsProgress() bool {
	return m.openProgress
}

// Cursor returns the highlighted level index.
func (m MenuModel) Cursor() int {
	return m.cursor
}

// centerText centers text within given width.
func centerText(text string, width int) string {
	w := lipgloss.Width(text)
	if w >= width {
		return text
	}
	return strings.Repeat(" ", (width-w)/2) + text
}

// truncate shortens s to n runes, marking the cut with a dot.
func truncate(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n-1]) + "."
}
