package core

// Color is the role of a screen cell. The platform maps roles to terminal
// colors through its theme, so game rendering never names a concrete color.
type Color uint8

// Cell roles.
const (
	ColorDefault Color = iota
	ColorWall
	ColorSpace
	ColorPit
	ColorPlayer
	ColorTape
	ColorHook
	ColorGoal
	ColorBlock
	ColorObstruction
	ColorText
	ColorDim
)

// String returns the role name.
func (c Color) String() string {
	switch c {
	case ColorDefault:
		return "default"
	case ColorWall:
		return "wall"
	case ColorSpace:
		return "space"
	case ColorPit:
		return "pit"
	case ColorPlayer:
		return "player"
	case ColorTape:
		return "tape"
	case ColorHook:
		return "hook"
	case ColorGoal:
		return "goal"
	case ColorBlock:
		return "block"
	case ColorObstruction:
		return "obstruction"
	case ColorText:
		return "text"
	case ColorDim:
		return "dim"
	default:
		return "unknown"
	}
}
