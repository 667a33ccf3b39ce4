// Package game runs a play session over a list of levels: it maps semantic
// actions onto the engine, keeps undo history, detects wins and falls,
// records completions and renders the current level onto a core.Screen.
// It has no terminal dependencies.
package game

import (
	"errors"
	"fmt"
	"io"
	"time"

	"github.com/charmbracelet/log"
	"github.com/google/uuid"

	"github.com/vovakirdan/tape-escape/internal/core"
	"github.com/vovakirdan/tape-escape/internal/engine"
	"github.com/vovakirdan/tape-escape/internal/history"
	"github.com/vovakirdan/tape-escape/internal/levels"
	"github.com/vovakirdan/tape-escape/internal/storage"
)

// ErrNoLevels is returned when a session is created without levels.
var ErrNoLevels = errors.New("game: no levels to play")

// Recorder stores level completions. *storage.Store implements it.
type Recorder interface {
	SaveCompletion(c storage.Completion) (int64, error)
}

// Event reports what an action did.
type Event int

const (
	EventNone      Event = iota // Nothing changed
	EventMoved                  // The state changed
	EventBlocked                // A turn or flip was obstructed
	EventUndo                   // Stepped back in history
	EventRedo                   // Stepped forward in history
	EventRestart                // The level was reset
	EventFell                   // The player fell off and the level was reset
	EventSolved                 // The level was won; the next level is loaded
	EventSkipped                // The level was skipped; the next level is loaded
	EventCompleted              // The last level was won or skipped
	EventBack                   // The player asked to leave the level
	EventQuit                   // The player asked to quit
)

// String returns the event name.
func (e Event) String() string {
	switch e {
	case EventNone:
		return "none"
	case EventMoved:
		return "moved"
	case EventBlocked:
		return "blocked"
	case EventUndo:
		return "undo"
	case EventRedo:
		return "redo"
	case EventRestart:
		return "restart"
	case EventFell:
		return "fell"
	case EventSolved:
		return "solved"
	case EventSkipped:
		return "skipped"
	case EventCompleted:
		return "completed"
	case EventBack:
		return "back"
	case EventQuit:
		return "quit"
	default:
		return "unknown"
	}
}

// Options configures a Session.
type Options struct {
	Levels       []levels.Level
	Rules        engine.Config
	HistoryDepth int
	Recorder     Recorder // Optional
	SessionID    string   // Generated when empty
	Player       string
	Logger       *log.Logger
	Now          func() time.Time
}

// Session is one player's run through a list of levels.
// It is not safe for concurrent use.
type Session struct {
	opts    Options
	id      string
	index   int
	level   levels.Level
	start   *engine.State
	state   *engine.State
	history *history.History
	obs     engine.Obstruction

	moves   int
	falls   int
	undos   int
	started time.Time

	message  string
	finished bool

	last    storage.Completion
	hasLast bool
}

// NewSession creates a session positioned on the first level.
func NewSession(opts Options) (*Session, error) {
	if len(opts.Levels) == 0 {
		return nil, ErrNoLevels
	}
	if err := opts.Rules.Validate(); err != nil {
		return nil, err
	}
	if opts.Logger == nil {
		opts.Logger = log.New(io.Discard)
	}
	if opts.Now == nil {
		opts.Now = time.Now
	}

	id := opts.SessionID
	if id == "" {
		id = uuid.NewString()
	}

	s := &Session{
		opts:    opts,
		id:      id,
		history: history.New(opts.HistoryDepth),
	}
	if err := s.Start(0); err != nil {
		return nil, err
	}
	return s, nil
}

// ID returns the session identifier recorded with completions.
func (s *Session) ID() string {
	return s.id
}

// Levels returns the levels of the session in play order.
func (s *Session) Levels() []levels.Level {
	return s.opts.Levels
}

// Start loads the level at index and resets the per-level counters.
func (s *Session) Start(index int) error {
	if index < 0 || index >= len(s.opts.Levels) {
		return fmt.Errorf("game: level index %d out of range [0,%d)", index, len(s.opts.Levels))
	}

	lvl := s.opts.Levels[index]
	st, err := lvl.NewState(s.opts.Rules)
	if err != nil {
		return fmt.Errorf("game: %w", err)
	}

	s.index = index
	s.level = lvl
	s.start = st
	s.state = st.Clone()
	s.history.Reset()
	s.history.Push(s.state)
	s.obs = nil
	s.moves, s.falls, s.undos = 0, 0, 0
	s.started = s.opts.Now()
	s.message = ""
	s.finished = false

	s.opts.Logger.Debug("level started", "session", s.id, "level", lvl.ID)
	return nil
}

// StartID loads the level with the given id.
func (s *Session) StartID(id string) error {
	i := levels.Index(s.opts.Levels, id)
	if i < 0 {
		return fmt.Errorf("game: %w: %s", levels.ErrLevelNotFound, id)
	}
	return s.Start(i)
}

// Apply performs one action and reports what happened.
func (s *Session) Apply(a core.Action) Event {
	s.obs = nil
	s.message = ""

	if a.IsMove() {
		return s.move(actionDir(a))
	}

	switch a {
	case core.ActionFlip:
		before := s.state.Snapshot()
		if obs := s.state.SwitchOrientation(); obs != nil {
			s.obs = obs
			s.message = "The hook is stuck."
			return EventBlocked
		}
		return s.afterChange(before)

	case core.ActionUndo:
		prev, ok := s.history.Back()
		if !ok {
			return EventNone
		}
		s.state = prev
		s.undos++
		return EventUndo

	case core.ActionRedo:
		next, ok := s.history.Forward()
		if !ok {
			return EventNone
		}
		s.state = next
		return EventRedo

	case core.ActionRestart:
		s.restart()
		return EventRestart

	case core.ActionSkip:
		s.state.ForceWin = true
		return s.checkOutcome()

	case core.ActionBack:
		return EventBack

	case core.ActionQuit:
		return EventQuit
	}

	return EventNone
}

// move applies a direction key: extend when already facing d, retract when
// facing away from d, otherwise turn to face d.
func (s *Session) move(d engine.Dir) Event {
	before := s.state.Snapshot()
	p := s.state.Player

	switch {
	case p.Dir == d:
		s.state.ExtendTape()
	case p.Dir.Opposite() == d:
		s.state.RetractTape()
	default:
		if obs := s.state.ChangeDirection(d); obs != nil {
			s.obs = obs
			s.message = "Something is in the way."
			return EventBlocked
		}
	}
	return s.afterChange(before)
}

// afterChange records a changed state and checks for a win or fall.
func (s *Session) afterChange(before uint64) Event {
	if s.state.Snapshot() == before {
		return EventNone
	}
	s.moves++
	s.history.Push(s.state)
	return s.checkOutcome()
}

// checkOutcome runs the win check before the fall check, so a player who
// lands on the goal over a pit still wins.
func (s *Session) checkOutcome() Event {
	if s.state.GoalReached() {
		return s.complete(!s.onGoal())
	}
	if s.state.PlayerFallenOff() {
		falls := s.falls + 1
		s.restart()
		s.falls = falls
		s.message = "You fell! The level has been reset."
		s.opts.Logger.Debug("player fell", "session", s.id, "level", s.level.ID, "falls", falls)
		return EventFell
	}
	return EventMoved
}

func (s *Session) onGoal() bool {
	st := s.state
	return st.Player.Pos == st.TapeEnd && st.TapeEnd == st.Goal
}

// complete records the finished level and loads the next one.
func (s *Session) complete(skipped bool) Event {
	c := storage.Completion{
		SessionID: s.id,
		Player:    s.opts.Player,
		LevelID:   s.level.ID,
		Moves:     s.moves,
		Falls:     s.falls,
		Undos:     s.undos,
		Duration:  s.opts.Now().Sub(s.started),
		Skipped:   skipped,
	}
	s.last, s.hasLast = c, true
	if s.opts.Recorder != nil {
		if _, err := s.opts.Recorder.SaveCompletion(c); err != nil {
			s.opts.Logger.Warn("cannot record completion", "level", c.LevelID, "err", err)
		}
	}
	s.opts.Logger.Info("level finished", "session", s.id, "level", c.LevelID,
		"moves", c.Moves, "falls", c.Falls, "skipped", skipped)

	var msg string
	if skipped {
		msg = fmt.Sprintf("Skipped %s.", s.level.Title())
	} else {
		msg = fmt.Sprintf("Solved %s in %d moves!", s.level.Title(), c.Moves)
	}

	if s.index+1 >= len(s.opts.Levels) {
		s.finished = true
		s.message = msg + " That was the last level."
		return EventCompleted
	}

	if err := s.Start(s.index + 1); err != nil {
		// Levels are validated on load, so this only happens if the rules
		// changed between loading and playing.
		s.opts.Logger.Error("cannot start next level", "err", err)
		s.finished = true
		s.message = msg
		return EventCompleted
	}
	s.message = msg
	if skipped {
		return EventSkipped
	}
	return EventSolved
}

func (s *Session) restart() {
	s.state = s.start.Clone()
	s.history.Reset()
	s.history.Push(s.state)
	s.obs = nil
}

// State returns a copy of the current engine state.
func (s *Session) State() *engine.State {
	return s.state.Clone()
}

// Level returns the level being played.
func (s *Session) Level() levels.Level {
	return s.level
}

// Obstruction returns the cells that blocked the last action, if any.
func (s *Session) Obstruction() engine.Obstruction {
	return s.obs
}

// LastCompletion returns the most recently finished level of the session.
func (s *Session) LastCompletion() (storage.Completion, bool) {
	return s.last, s.hasLast
}

// ClearHighlight drops the obstruction overlay without taking an action.
func (s *Session) ClearHighlight() {
	s.obs = nil
}

// Finished reports whether the last level has been completed.
func (s *Session) Finished() bool {
	return s.finished
}

// Status summarises the session for display.
type Status struct {
	LevelID    string
	LevelTitle string
	PackName   string
	LevelIndex int
	LevelCount int
	Par        int
	Moves      int
	Falls      int
	Undos      int
	TapeLength int
	MaxTape    int
	Facing     engine.Dir
	Hook       engine.Orientation
	CanUndo    bool
	CanRedo    bool
	Message    string
	Finished   bool
}

// Status returns the current status.
func (s *Session) Status() Status {
	return Status{
		LevelID:    s.level.ID,
		LevelTitle: s.level.Title(),
		PackName:   s.level.PackName,
		LevelIndex: s.index,
		LevelCount: len(s.opts.Levels),
		Par:        s.level.Par,
		Moves:      s.moves,
		Falls:      s.falls,
		Undos:      s.undos,
		TapeLength: s.state.TapeLength(),
		MaxTape:    s.opts.Rules.MaxTapeLength,
		Facing:     s.state.Player.Dir,
		Hook:       s.state.Player.Orientation,
		CanUndo:    s.history.CanUndo(),
		CanRedo:    s.history.CanRedo(),
		Message:    s.message,
		Finished:   s.finished,
	}
}

func actionDir(a core.Action) engine.Dir {
	switch a {
	case core.ActionRight:
		return engine.DirRight
	case core.ActionDown:
		return engine.DirDown
	case core.ActionLeft:
		return engine.DirLeft
	default:
		return engine.DirUp
	}
}
