package core

// Action represents a semantic game action, abstracted from physical key presses.
// This allows the session to work with high-level intents rather than raw input.
type Action int

const (
	ActionNone    Action = iota
	ActionUp             // W, Up arrow - face, extend or retract northwards
	ActionRight          // D, Right arrow
	ActionDown           // S, Down arrow
	ActionLeft           // A, Left arrow
	ActionFlip           // Space, F - move the hook to the other side
	ActionUndo           // U, Z
	ActionRedo           // Ctrl+R, Y
	ActionRestart        // R - restart the level
	ActionSkip           // N - give up on the level and move on
	ActionBack           // Escape, B - back to the level picker
	ActionQuit           // Q, Ctrl+C - exit game/session
)

// String returns a human-readable name for the action.
func (a Action) String() string {
	switch a {
	case ActionNone:
		return "None"
	case ActionUp:
		return "Up"
	case ActionRight:
		return "Right"
	case ActionDown:
		return "Down"
	case ActionLeft:
		return "Left"
	case ActionFlip:
		return "Flip"
	case ActionUndo:
		return "Undo"
	case ActionRedo:
		return "Redo"
	case ActionRestart:
		return "Restart"
	case ActionSkip:
		return "Skip"
	case ActionBack:
		return "Back"
	case ActionQuit:
		return "Quit"
	default:
		return "Unknown"
	}
}

// IsMove reports whether a is one of the four direction actions.
func (a Action) IsMove() bool {
	return a >= ActionUp && a <= ActionLeft
}
