// Package history keeps a bounded undo/redo list of engine states.
package history

import "github.com/vovakirdan/tape-escape/internal/engine"

// DefaultDepth is the number of states kept when New is given a depth < 1.
const DefaultDepth = 256

// History is a linear undo/redo list. Pushing after an undo discards the
// states that could have been redone. All states are stored and returned
// as clones, so callers never share memory with the history.
type History struct {
	states []*engine.State
	active int // Index of the current state, -1 when empty
	depth  int
}

// New creates an empty history that keeps at most depth states.
func New(depth int) *History {
	if depth < 1 {
		depth = DefaultDepth
	}
	return &History{active: -1, depth: depth}
}

// Push records s as the new current state. Redo entries past the current
// state are dropped and the oldest entry is evicted once depth is exceeded.
func (h *History) Push(s *engine.State) {
	h.states = h.states[:h.active+1]
	h.states = append(h.states, s.Clone())
	if len(h.states) > h.depth {
		drop := len(h.states) - h.depth
		h.states = append(h.states[:0], h.states[drop:]...)
	}
	h.active = len(h.states) - 1
}

// Back steps to the previous state and returns a copy of it.
// ok is false when there is nothing to undo.
func (h *History) Back() (*engine.State, bool) {
	if h.active <= 0 {
		return nil, false
	}
	h.active--
	return h.states[h.active].Clone(), true
}

// Forward steps to the next state and returns a copy of it.
// ok is false when there is nothing to redo.
func (h *History) Forward() (*engine.State, bool) {
	if h.active < 0 || h.active >= len(h.states)-1 {
		return nil, false
	}
	h.active++
	return h.states[h.active].Clone(), true
}

// Current returns a copy of the current state.
func (h *History) Current() (*engine.State, bool) {
	if h.active < 0 {
		return nil, false
	}
	return h.states[h.active].Clone(), true
}

// Len returns the number of stored states.
func (h *History) Len() int {
	return len(h.states)
}

// Position returns the index of the current state, or -1 when empty.
func (h *History) Position() int {
	return h.active
}

// CanUndo reports whether Back would succeed.
func (h *History) CanUndo() bool {
	return h.active > 0
}

// CanRedo reports whether Forward would succeed.
func (h *History) CanRedo() bool {
	return h.active >= 0 && h.active < len(h.states)-1
}

// Reset empties the history.
func (h *History) Reset() {
	h.states = nil
	h.active = -1
}
