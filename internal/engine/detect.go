package engine

// GoalReached reports whether the level is won: the force-win flag was set,
// or the player and tape end both rest on the goal. The flag is cleared.
func (s *State) GoalReached() bool {
	forced := s.ForceWin
	s.ForceWin = false
	return forced || (s.Player.Pos == s.TapeEnd && s.TapeEnd == s.Goal)
}

// PlayerFallenOff reports whether every cell from the player to the tape
// end inclusive is a pit. A tape that does not share a row or column with
// the player counts as fallen.
func (s *State) PlayerFallenOff() bool {
	cells := s.TapeCells()
	if cells == nil {
		return true
	}
	for _, c := range cells {
		if s.Grid.TileAt(c) != TilePit {
			return false
		}
	}
	return true
}
