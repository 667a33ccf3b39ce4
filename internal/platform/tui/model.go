package tui

import (
	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/vovakirdan/tape-escape/internal/core"
	"github.com/vovakirdan/tape-escape/internal/game"
)

// GameModel is the Bubble Tea model for playing levels of a session.
type GameModel struct {
	session    *game.Session
	screen     *core.Screen
	theme      Theme
	keys       GameKeyMap
	help       help.Model
	width      int
	height     int
	flashSeq   int
	quitting   bool
	backToMenu bool
}

// NewGameModel creates a game view over session.
func NewGameModel(session *game.Session, theme Theme, width, height int) GameModel {
	h := help.New()
	h.Width = width

	return GameModel{
		session: session,
		screen:  core.NewScreen(width, height),
		theme:   theme,
		keys:    DefaultGameKeyMap(),
		help:    h,
		width:   width,
		height:  height,
	}
}

// Init initializes the model.
func (m GameModel) Init() tea.Cmd {
	return nil
}

// Update handles messages and updates the model state.
func (m GameModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.help.Width = msg.Width
		return m, nil

	case flashDoneMsg:
		if msg.seq == m.flashSeq {
			m.session.ClearHighlight()
		}
		return m, nil
	}

	return m, nil
}

// handleKey maps a key press to a session action and applies it.
func (m GameModel) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if key.Matches(msg, m.keys.Help) {
		m.help.ShowAll = !m.help.ShowAll
		return m, nil
	}

	action := m.keys.Action(msg)
	if action == core.ActionNone {
		return m, nil
	}

	// After the last level any key other than quit leaves the game.
	if m.session.Finished() && action != core.ActionQuit {
		m.backToMenu = true
		return m, nil
	}

	switch m.session.Apply(action) {
	case game.EventQuit:
		m.quitting = true
	case game.EventBack:
		m.backToMenu = true
	case game.EventBlocked:
		m.flashSeq++
		return m, flashCmd(flashDuration, m.flashSeq)
	}
	return m, nil
}

// View renders the board above the help footer.
func (m GameModel) View() string {
	if m.quitting {
		return ""
	}

	footer := m.theme.Help.Render(m.help.View(m.keys))
	if m.session.Finished() {
		footer = m.theme.Help.Render("Press any key to return to the level list")
	}

	boardH := m.height - lipgloss.Height(footer)
	if boardH < 1 {
		boardH = 1
	}
	m.screen.Resize(m.width, boardH)
	m.session.Render(m.screen)

	return RenderScreen(m.screen, m.theme) + "\n" + footer
}

// Session returns the session being played.
func (m GameModel) Session() *game.Session {
	return m.session
}

// IsQuitting returns true if user requested to quit entirely.
func (m GameModel) IsQuitting() bool {
	return m.quitting
}

// BackToMenu returns true if user requested to go back to the level list.
func (m GameModel) BackToMenu() bool {
	return m.backToMenu
}
