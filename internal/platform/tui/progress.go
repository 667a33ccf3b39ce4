package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/table"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/log"

	"github.com/vovakirdan/tape-escape/internal/levels"
	"github.com/vovakirdan/tape-escape/internal/storage"
)

// Progress board layout constants
const (
	minWidthForSidebar = 90 // Minimum width to show the pack sidebar
	sidebarWidth       = 20 // Width of pack sidebar
)

// packInfo is one pack of the progress board.
type packInfo struct {
	ID     string
	Name   string
	Levels []levels.Level
}

// groupPacks splits levels into packs, keeping their order.
func groupPacks(lvls []levels.Level) []packInfo {
	var packs []packInfo
	index := make(map[string]int)
	for _, l := range lvls {
		i, ok := index[l.Pack]
		if !ok {
			name := l.PackName
			if name == "" {
				name = l.Pack
			}
			i = len(packs)
			index[l.Pack] = i
			packs = append(packs, packInfo{ID: l.Pack, Name: name})
		}
		packs[i].Levels = append(packs[i].Levels, l)
	}
	return packs
}

// ProgressModel is the Bubble Tea model for the progress board.
type ProgressModel struct {
	packs       []packInfo
	packCursor  int
	progress    map[string]storage.LevelProgress
	hasStore    bool
	table       table.Model
	help        help.Model
	keys        ProgressKeyMap
	theme       Theme
	width       int
	height      int
	quitting    bool
	goingBack   bool
	showSidebar bool
}

// NewProgressModel creates a progress board for player's results.
// A nil store shows an empty board.
func NewProgressModel(store *storage.Store, player string, lvls []levels.Level, theme Theme, width, height int, logger *log.Logger) ProgressModel {
	h := help.New()
	h.ShowAll = false
	h.Width = width

	m := ProgressModel{
		packs:       groupPacks(lvls),
		progress:    make(map[string]storage.LevelProgress),
		hasStore:    store != nil,
		help:        h,
		keys:        DefaultProgressKeyMap(),
		theme:       theme,
		width:       width,
		height:      height,
		showSidebar: width >= minWidthForSidebar,
	}

	if store != nil {
		list, err := store.Progress(player)
		if err != nil && logger != nil {
			logger.Warn("cannot load progress", "player", player, "err", err)
		}
		for _, p := range list {
			m.progress[p.LevelID] = p
		}
	}

	m.table = m.createTable()
	m.updateTableRows()
	return m
}

// createTable creates a new table with appropriate columns.
func (m *ProgressModel) createTable() table.Model {
	columns := []table.Column{
		{Title: "Level", Width: 14},
		{Title: "Name", Width: 18},
		{Title: "Best", Width: 5},
		{Title: "Par", Width: 4},
		{Title: "Plays", Width: 6},
		{Title: "Falls", Width: 6},
		{Title: "Last played", Width: 13},
	}

	// Give spare width to the name column
	tableWidth := m.width - 8
	if m.showSidebar {
		tableWidth -= sidebarWidth + 3
	}
	used := 0
	for _, c := range columns {
		used += c.Width + 2
	}
	if extra := tableWidth - used; extra > 0 {
		columns[1].Width += min(extra, 16)
	}

	t := table.New(
		table.WithColumns(columns),
		table.WithFocused(true),
		table.WithHeight(max(m.height-9, 3)),
	)

	s := table.DefaultStyles()
	s.Header = s.Header.
		BorderStyle(lipgloss.NormalBorder()).
		BorderForeground(m.theme.Border).
		BorderBottom(true).
		Bold(true)
	s.Selected = s.Selected.
		Foreground(lipgloss.Color("229")).
		Background(lipgloss.Color("57")).
		Bold(false)
	t.SetStyles(s)

	return t
}

// updateTableRows fills the table with the current pack.
func (m *ProgressModel) updateTableRows() {
	if len(m.packs) == 0 {
		m.table.SetRows(nil)
		return
	}

	pack := m.packs[m.packCursor]
	rows := make([]table.Row, len(pack.Levels))
	for i, l := range pack.Levels {
		row := table.Row{l.ID, l.Title(), "-", "-", "0", "0", "-"}
		if l.Par > 0 {
			row[3] = fmt.Sprintf("%d", l.Par)
		}
		if p, ok := m.progress[l.ID]; ok {
			if p.Solved {
				row[2] = fmt.Sprintf("%d", p.BestMoves)
			}
			row[4] = fmt.Sprintf("%d", p.Completed)
			row[5] = fmt.Sprintf("%d", p.TotalFalls)
			if !p.LastPlayed.IsZero() {
				row[6] = p.LastPlayed.Local().Format("Jan 02 15:04")
			}
		}
		rows[i] = row
	}
	m.table.SetRows(rows)
	m.table.GotoTop()
}

// Init initializes the progress model.
func (m ProgressModel) Init() tea.Cmd {
	return nil
}

// Update handles messages for the progress board.
func (m ProgressModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd

	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch {
		case key.Matches(msg, m.keys.Quit):
			m.quitting = true
			return m, nil

		case key.Matches(msg, m.keys.Back):
			m.goingBack = true
			return m, nil

		case key.Matches(msg, m.keys.NextPack):
			if len(m.packs) > 0 {
				m.packCursor = (m.packCursor + 1) % len(m.packs)
				m.updateTableRows()
			}
			return m, nil

		case key.Matches(msg, m.keys.PrevPack):
			if len(m.packs) > 0 {
				m.packCursor--
				if m.packCursor < 0 {
					m.packCursor = len(m.packs) - 1
				}
				m.updateTableRows()
			}
			return m, nil
		}

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.showSidebar = m.width >= minWidthForSidebar
		m.table = m.createTable()
		m.updateTableRows()
		m.help.Width = msg.Width
		return m, nil
	}

	// Scrolling is handled by the table
	m.table, cmd = m.table.Update(msg)
	return m, cmd
}

// View renders the progress board.
func (m ProgressModel) View() string {
	if m.quitting || m.goingBack {
		return ""
	}

	var b strings.Builder

	title := "PROGRESS"
	if len(m.packs) > 0 {
		pack := m.packs[m.packCursor]
		title = fmt.Sprintf("PROGRESS - %s (%d/%d solved)", pack.Name, m.solvedIn(pack), len(pack.Levels))
	}
	b.WriteString(centerText(m.theme.Title.Render(title), m.width))
	b.WriteString("\n\n")

	if m.showSidebar {
		b.WriteString(m.renderWideLayout())
	} else {
		b.WriteString(m.renderNarrowLayout())
	}

	b.WriteString("\n")
	b.WriteString(m.theme.Help.Render(m.help.View(m.keys)))

	return b.String()
}

func (m ProgressModel) solvedIn(p packInfo) int {
	n := 0
	for _, l := range p.Levels {
		if m.progress[l.ID].Solved {
			n++
		}
	}
	return n
}

// renderWideLayout renders the board with a sidebar for pack selection.
func (m ProgressModel) renderWideLayout() string {
	sidebarStyle := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(m.theme.Border).
		Width(sidebarWidth).
		Padding(0, 1)

	var sidebar strings.Builder
	sidebar.WriteString("Packs\n")
	sidebar.WriteString(strings.Repeat("-", sidebarWidth-4))
	sidebar.WriteString("\n")

	for i, p := range m.packs {
		cursor := "  "
		style := lipgloss.NewStyle()
		if i == m.packCursor {
			cursor = "> "
			style = m.theme.Title
		}
		sidebar.WriteString(style.Render(cursor + truncate(p.Name, sidebarWidth-6)))
		sidebar.WriteString("\n")
	}

	tableStyle := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(m.theme.Border).
		Padding(0, 1)

	return lipgloss.JoinHorizontal(lipgloss.Top,
		sidebarStyle.Render(sidebar.String()), "  ", tableStyle.Render(m.renderTableContent()))
}

// renderNarrowLayout renders the board with pack tabs above the table.
func (m ProgressModel) renderNarrowLayout() string {
	var b strings.Builder

	tabStyle := m.theme.Help
	activeTabStyle := m.theme.ItemActive.Padding(0, 1)

	tabs := make([]string, len(m.packs))
	for i, p := range m.packs {
		name := truncate(p.Name, 10)
		if i == m.packCursor {
			tabs[i] = activeTabStyle.Render(name)
		} else {
			tabs[i] = tabStyle.Render(" " + name + " ")
		}
	}

	tabLine := strings.Join(tabs, " ")
	if lipgloss.Width(tabLine) > m.width-4 && len(m.packs) > 0 {
		tabLine = fmt.Sprintf("< %s >", m.packs[m.packCursor].Name)
	}
	b.WriteString(centerText(tabLine, m.width))
	b.WriteString("\n\n")

	tableStyle := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(m.theme.Border).
		Padding(0, 1)

	b.WriteString(tableStyle.Render(m.renderTableContent()))
	return b.String()
}

// renderTableContent renders the table or an empty message.
func (m ProgressModel) renderTableContent() string {
	if !m.hasStore || len(m.packs) == 0 {
		emptyStyle := m.theme.Help.
			Italic(true).
			Padding(2, 4)
		return emptyStyle.Render("No progress recorded.\nStart the game with a database to keep results.")
	}
	return m.table.View()
}

// IsGoingBack returns true if user wants to go back to the level list.
func (m ProgressModel) IsGoingBack() bool {
	return m.goingBack
}

// IsQuitting returns true if user wants to quit entirely.
func (m ProgressModel) IsQuitting() bool {
	return m.quitting
}
