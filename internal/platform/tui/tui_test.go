package tui

import (
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/log"

	"github.com/vovakirdan/tape-escape/internal/core"
	"github.com/vovakirdan/tape-escape/internal/engine"
	"github.com/vovakirdan/tape-escape/internal/game"
	"github.com/vovakirdan/tape-escape/internal/levels"
	"github.com/vovakirdan/tape-escape/internal/storage"
)

func runeKey(r rune) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{r}}
}

func testLevels() []levels.Level {
	return []levels.Level{
		{ID: "pack/one", Pack: "pack", PackName: "Pack", Name: "Step Back", Par: 3, Text: "000\n0@*\n0**\n0+0\n000\n"},
		{ID: "pack/two", Pack: "pack", PackName: "Pack", Text: "00000\n0@**0\n0***0\n00000\n"},
	}
}

func newTestApp(t *testing.T, store *storage.Store) AppModel {
	t.Helper()
	m, err := NewAppModel(AppOptions{
		Levels: testLevels(),
		Rules:  engine.DefaultConfig(),
		Store:  store,
		Player: "ann",
		Width:  80,
		Height: 24,
	})
	if err != nil {
		t.Fatalf("NewAppModel() failed: %v", err)
	}
	return m
}

func send(t *testing.T, m AppModel, msgs ...tea.Msg) AppModel {
	t.Helper()
	for _, msg := range msgs {
		next, _ := m.Update(msg)
		app, ok := next.(AppModel)
		if !ok {
			t.Fatalf("expected AppModel, got %T", next)
		}
		m = app
	}
	return m
}

func TestGameKeyMapAction(t *testing.T) {
	keys := DefaultGameKeyMap()

	testCases := []struct {
		msg  tea.KeyMsg
		want core.Action
	}{
		{tea.KeyMsg{Type: tea.KeyUp}, core.ActionUp},
		{runeKey('d'), core.ActionRight},
		{tea.KeyMsg{Type: tea.KeyDown}, core.ActionDown},
		{runeKey('a'), core.ActionLeft},
		{tea.KeyMsg{Type: tea.KeySpace, Runes: []rune{' '}}, core.ActionFlip},
		{runeKey('u'), core.ActionUndo},
		{tea.KeyMsg{Type: tea.KeyCtrlR}, core.ActionRedo},
		{runeKey('r'), core.ActionRestart},
		{runeKey('n'), core.ActionSkip},
		{tea.KeyMsg{Type: tea.KeyEsc}, core.ActionBack},
		{tea.KeyMsg{Type: tea.KeyCtrlC}, core.ActionQuit},
		{runeKey('x'), core.ActionNone},
	}

	for _, tc := range testCases {
		t.Run(tc.msg.String(), func(t *testing.T) {
			if got := keys.Action(tc.msg); got != tc.want {
				t.Errorf("Action(%q) = %v, expected %v", tc.msg.String(), got, tc.want)
			}
		})
	}
}

func TestRenderScreenKeepsText(t *testing.T) {
	scr := core.NewScreen(6, 2)
	scr.DrawTextColor(0, 0, "ab", core.ColorWall)
	scr.DrawText(2, 0, "cd")
	scr.DrawTextColor(0, 1, "ef", core.ColorGoal)

	out := RenderScreen(scr, DefaultTheme())
	if !strings.Contains(out, "cd") || !strings.Contains(out, "ef") {
		t.Errorf("expected cell text in output, got %q", out)
	}
	if strings.Count(out, "\n") != 1 {
		t.Errorf("expected two rows, got %q", out)
	}
}

func TestMenuStartsOnFirstUnsolved(t *testing.T) {
	lvls := testLevels()
	m := NewMenuModel(lvls, map[string]bool{"pack/one": true}, -1, DefaultTheme(), 80, 24)
	if m.Cursor() != 1 {
		t.Errorf("expected cursor on first unsolved level, got %d", m.Cursor())
	}
	if !strings.Contains(m.View(), "1/2 solved") {
		t.Errorf("expected solved count in view:\n%s", m.View())
	}

	all := map[string]bool{"pack/one": true, "pack/two": true}
	if got := FirstUnsolved(lvls, all); got != 0 {
		t.Errorf("expected 0 when all solved, got %d", got)
	}
}

func TestMenuScrollsToCursor(t *testing.T) {
	lvls := make([]levels.Level, 20)
	for i := range lvls {
		lvls[i] = levels.Level{ID: "p/" + string(rune('a'+i)), Pack: "p"}
	}
	m := NewMenuModel(lvls, nil, 19, DefaultTheme(), 80, 12)

	view := m.View()
	if !strings.Contains(view, "p/t") {
		t.Errorf("expected last level visible:\n%s", view)
	}
	if strings.Contains(view, "p/a ") {
		t.Errorf("expected first level scrolled away:\n%s", view)
	}
}

func TestAppPlayAndReturnToMenu(t *testing.T) {
	m := newTestApp(t, nil)

	if m.view != viewMenu {
		t.Fatal("expected to start in the menu")
	}

	m = send(t, m, tea.KeyMsg{Type: tea.KeyEnter})
	if m.view != viewGame {
		t.Fatal("expected enter to open the game")
	}
	if !strings.Contains(m.View(), "Step Back") {
		t.Errorf("expected level title in game view:\n%s", m.View())
	}

	// Up, flip, down solves the first level.
	m = send(t, m, tea.KeyMsg{Type: tea.KeyUp}, runeKey('f'), tea.KeyMsg{Type: tea.KeyDown})
	if !m.solved["pack/one"] {
		t.Error("expected pack/one marked solved")
	}
	if got := m.Session().Level().ID; got != "pack/two" {
		t.Errorf("expected second level loaded, got %s", got)
	}

	m = send(t, m, tea.KeyMsg{Type: tea.KeyEsc})
	if m.view != viewMenu {
		t.Fatal("expected esc to return to the menu")
	}
	if m.menu.Cursor() != 1 {
		t.Errorf("expected menu cursor on the current level, got %d", m.menu.Cursor())
	}

	next, cmd := m.Update(runeKey('q'))
	if cmd == nil {
		t.Error("expected quit command")
	}
	if next.(AppModel).View() != "" {
		t.Error("expected empty view after quit")
	}
}

func TestAppStartID(t *testing.T) {
	m, err := NewAppModel(AppOptions{
		Levels:  testLevels(),
		Rules:   engine.DefaultConfig(),
		StartID: "pack/two",
	})
	if err != nil {
		t.Fatalf("NewAppModel() failed: %v", err)
	}
	if m.view != viewGame || m.Session().Level().ID != "pack/two" {
		t.Errorf("expected to open pack/two directly")
	}

	if _, err := NewAppModel(AppOptions{Levels: testLevels(), Rules: engine.DefaultConfig(), StartID: "nope"}); err == nil {
		t.Error("expected error for unknown start level")
	}
}

func TestGameModelFlashClearsObstruction(t *testing.T) {
	lvls := []levels.Level{{ID: "t/1", Text: "000\n*@0\n***\n"}}
	s, err := game.NewSession(game.Options{Levels: lvls, Rules: engine.DefaultConfig()})
	if err != nil {
		t.Fatalf("NewSession() failed: %v", err)
	}
	m := NewGameModel(s, DefaultTheme(), 80, 24)

	next, cmd := m.Update(runeKey('f'))
	m = next.(GameModel)
	if cmd == nil {
		t.Fatal("expected a flash command for a blocked flip")
	}
	if s.Obstruction() == nil {
		t.Fatal("expected obstruction highlighted")
	}

	// A stale flash does not clear a newer highlight.
	next, _ = m.Update(flashDoneMsg{seq: m.flashSeq - 1})
	m = next.(GameModel)
	if s.Obstruction() == nil {
		t.Error("stale flash cleared the highlight")
	}

	next, _ = m.Update(flashDoneMsg{seq: m.flashSeq})
	_ = next.(GameModel)
	if s.Obstruction() != nil {
		t.Error("expected highlight cleared")
	}
}

func TestProgressBoard(t *testing.T) {
	store, err := storage.Open(filepath.Join(t.TempDir(), "progress.db"))
	if err != nil {
		t.Fatalf("Open() failed: %v", err)
	}
	defer store.Close()

	if _, err := store.SaveCompletion(storage.Completion{SessionID: "s", Player: "ann", LevelID: "pack/one", Moves: 3, Falls: 2}); err != nil {
		t.Fatalf("SaveCompletion() failed: %v", err)
	}

	m := newTestApp(t, store)
	if !m.solved["pack/one"] {
		t.Error("expected solved levels loaded from the store")
	}

	m = send(t, m, tea.KeyMsg{Type: tea.KeyTab})
	if m.view != viewProgress {
		t.Fatal("expected tab to open the progress board")
	}
	view := m.View()
	for _, want := range []string{"PROGRESS - Pack (1/2 solved)", "pack/one", "Step Back"} {
		if !strings.Contains(view, want) {
			t.Errorf("expected %q in progress view:\n%s", want, view)
		}
	}

	m = send(t, m, tea.KeyMsg{Type: tea.KeyEsc})
	if m.view != viewMenu {
		t.Error("expected esc to return to the menu")
	}
}

func TestGroupPacks(t *testing.T) {
	lvls := []levels.Level{
		{ID: "a/1", Pack: "a", PackName: "Alpha"},
		{ID: "b/1", Pack: "b"},
		{ID: "a/2", Pack: "a", PackName: "Alpha"},
	}
	packs := groupPacks(lvls)
	if len(packs) != 2 {
		t.Fatalf("expected 2 packs, got %d", len(packs))
	}
	if packs[0].Name != "Alpha" || len(packs[0].Levels) != 2 {
		t.Errorf("unexpected first pack %+v", packs[0])
	}
	if packs[1].Name != "b" {
		t.Errorf("expected pack id as fallback name, got %q", packs[1].Name)
	}
}

func testServerConfig(t *testing.T) SSHServerConfig {
	t.Helper()
	dir := t.TempDir()
	cfg := DefaultSSHServerConfig()
	cfg.Address = "127.0.0.1:0"
	cfg.Levels = testLevels()
	cfg.HostKeyPath = filepath.Join(dir, "host_key")
	cfg.DBPath = filepath.Join(dir, "progress.db")
	return cfg
}

func TestSSHServerHostKeyErrorOpensNoDatabase(t *testing.T) {
	cfg := testServerConfig(t)
	blocker := filepath.Join(t.TempDir(), "file")
	if err := os.WriteFile(blocker, []byte("x"), 0o600); err != nil {
		t.Fatal(err)
	}
	cfg.HostKeyPath = filepath.Join(blocker, "keys", "host_key")

	if _, err := NewSSHServer(cfg, log.New(io.Discard)); err == nil {
		t.Fatal("expected error for an unusable host key directory")
	}
	if _, err := os.Stat(cfg.DBPath); !os.IsNotExist(err) {
		t.Errorf("expected no database to be opened, stat returned %v", err)
	}
}

func TestSSHServerShutdownClosesStore(t *testing.T) {
	srv, err := NewSSHServer(testServerConfig(t), log.New(io.Discard))
	if err != nil {
		t.Fatalf("NewSSHServer() failed: %v", err)
	}
	if srv.store == nil {
		t.Fatal("expected a progress store")
	}
	if _, err := srv.store.SolvedLevels("ann"); err != nil {
		t.Fatalf("store unusable before shutdown: %v", err)
	}

	if err := srv.Shutdown(); err != nil {
		t.Fatalf("Shutdown() failed: %v", err)
	}
	if _, err := srv.store.SolvedLevels("ann"); err == nil {
		t.Error("expected store closed after shutdown")
	}
}

func TestNewSSHServerRequiresLevels(t *testing.T) {
	cfg := testServerConfig(t)
	cfg.Levels = nil
	if _, err := NewSSHServer(cfg, log.New(io.Discard)); err == nil {
		t.Error("expected error without levels")
	}
}
