package tui

import (
	"io"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/log"

	"github.com/vovakirdan/tape-escape/internal/core"
	"github.com/vovakirdan/tape-escape/internal/engine"
	"github.com/vovakirdan/tape-escape/internal/game"
	"github.com/vovakirdan/tape-escape/internal/levels"
	"github.com/vovakirdan/tape-escape/internal/storage"
)

// AppOptions configures an AppModel.
type AppOptions struct {
	Levels       []levels.Level
	Rules        engine.Config
	HistoryDepth int
	Store        *storage.Store // Optional
	Player       string
	SessionID    string // Generated when empty
	StartID      string // Open this level directly instead of the menu
	Theme        Theme
	Logger       *log.Logger
	Width        int
	Height       int
}

type view int

const (
	viewMenu view = iota
	viewGame
	viewProgress
)

// AppModel manages the full flow of one player: level picker, game and
// progress board. It owns a single game session.
type AppModel struct {
	opts     AppOptions
	session  *game.Session
	solved   map[string]bool
	view     view
	menu     MenuModel
	game     GameModel
	progress ProgressModel
	width    int
	height   int
	quitting bool
}

// NewAppModel creates the model and its game session.
func NewAppModel(opts AppOptions) (AppModel, error) {
	if opts.Logger == nil {
		opts.Logger = log.New(io.Discard)
	}
	if opts.Theme.Cells == nil {
		opts.Theme = DefaultTheme()
	}
	if opts.Width <= 0 || opts.Height <= 0 {
		def := core.DefaultRuntimeConfig()
		opts.Width, opts.Height = def.ScreenW, def.ScreenH
	}

	sessOpts := game.Options{
		Levels:       opts.Levels,
		Rules:        opts.Rules,
		HistoryDepth: opts.HistoryDepth,
		SessionID:    opts.SessionID,
		Player:       opts.Player,
		Logger:       opts.Logger,
	}
	if opts.Store != nil {
		sessOpts.Recorder = opts.Store
	}
	session, err := game.NewSession(sessOpts)
	if err != nil {
		return AppModel{}, err
	}

	m := AppModel{
		opts:    opts,
		session: session,
		width:   opts.Width,
		height:  opts.Height,
	}
	m.solved = m.loadSolved()
	m.menu = NewMenuModel(opts.Levels, m.solved, -1, opts.Theme, m.width, m.height)

	if opts.StartID != "" {
		if err := session.StartID(opts.StartID); err != nil {
			return AppModel{}, err
		}
		m.openGame()
	}
	return m, nil
}

// loadSolved reads the player's solved levels from the store.
func (m AppModel) loadSolved() map[string]bool {
	solved := make(map[string]bool)
	if m.opts.Store == nil {
		return solved
	}
	fromStore, err := m.opts.Store.SolvedLevels(m.opts.Player)
	if err != nil {
		m.opts.Logger.Warn("cannot load solved levels", "player", m.opts.Player, "err", err)
		return solved
	}
	for id := range fromStore {
		solved[id] = true
	}
	return solved
}

func (m *AppModel) openGame() {
	m.game = NewGameModel(m.session, m.opts.Theme, m.width, m.height)
	m.view = viewGame
}

func (m *AppModel) openMenu(cursor int) {
	m.menu = NewMenuModel(m.opts.Levels, m.solved, cursor, m.opts.Theme, m.width, m.height)
	m.view = viewMenu
}

// Init initializes the app.
func (m AppModel) Init() tea.Cmd {
	return nil
}

// Update routes messages to the active view.
func (m AppModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if wsm, ok := msg.(tea.WindowSizeMsg); ok {
		m.width = wsm.Width
		m.height = wsm.Height
	}

	switch m.view {
	case viewGame:
		return m.updateGame(msg)
	case viewProgress:
		return m.updateProgress(msg)
	default:
		return m.updateMenu(msg)
	}
}

// updateMenu handles updates when in menu mode.
func (m AppModel) updateMenu(msg tea.Msg) (tea.Model, tea.Cmd) {
	newMenu, cmd := m.menu.Update(msg)
	if menuModel, ok := newMenu.(MenuModel); ok {
		m.menu = menuModel
	}

	if m.menu.IsQuitting() {
		m.quitting = true
		return m, tea.Quit
	}

	if m.menu.WantsProgress() {
		m.progress = NewProgressModel(m.opts.Store, m.opts.Player, m.opts.Levels,
			m.opts.Theme, m.width, m.height, m.opts.Logger)
		m.view = viewProgress
		return m, nil
	}

	if i, ok := m.menu.Selected(); ok {
		if err := m.session.Start(i); err != nil {
			m.opts.Logger.Error("cannot start level", "index", i, "err", err)
			m.openMenu(i)
			return m, nil
		}
		m.openGame()
		return m, m.game.Init()
	}

	return m, cmd
}

// updateGame handles updates when in game mode.
func (m AppModel) updateGame(msg tea.Msg) (tea.Model, tea.Cmd) {
	newModel, cmd := m.game.Update(msg)
	if gameModel, ok := newModel.(GameModel); ok {
		m.game = gameModel
	}

	if c, ok := m.session.LastCompletion(); ok && !c.Skipped {
		m.solved[c.LevelID] = true
	}

	if m.game.IsQuitting() {
		m.quitting = true
		return m, tea.Quit
	}

	if m.game.BackToMenu() {
		m.openMenu(m.session.Status().LevelIndex)
		return m, nil
	}

	return m, cmd
}

// updateProgress handles updates when the progress board is open.
func (m AppModel) updateProgress(msg tea.Msg) (tea.Model, tea.Cmd) {
	newModel, cmd := m.progress.Update(msg)
	if progressModel, ok := newModel.(ProgressModel); ok {
		m.progress = progressModel
	}

	if m.progress.IsQuitting() {
		m.quitting = true
		return m, tea.Quit
	}
	if m.progress.IsGoingBack() {
		m.openMenu(m.menu.Cursor())
		return m, nil
	}

	return m, cmd
}

// View renders the active view.
func (m AppModel) View() string {
	if m.quitting {
		return ""
	}

	switch m.view {
	case viewGame:
		return m.game.View()
	case viewProgress:
		return m.progress.View()
	default:
		return m.menu.View()
	}
}

// Session returns the game session of the app.
func (m AppModel) Session() *game.Session {
	return m.session
}

// Run starts a local Bubble Tea program with the app.
func Run(opts AppOptions) error {
	model, err := NewAppModel(opts)
	if err != nil {
		return err
	}

	p := tea.NewProgram(
		model,
		tea.WithAltScreen(), // Use alternate screen buffer
	)

	_, err = p.Run()
	return err
}
