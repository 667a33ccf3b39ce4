package engine

// obstructed reports whether the tape cannot enter c while moving in d:
// c is a wall, or holds a block whose push chain cannot move in d.
func (s *State) obstructed(c Coord, d Dir) bool {
	if s.Grid.IsWall(c) {
		return true
	}
	if id, ok := s.Grid.BlockAt(c); ok {
		return !s.CanMove(id, d)
	}
	return false
}

// ExtendTape pushes the tape out in the facing direction as far as it goes.
//
// When the first cell ahead of the tape end or hook is obstructed the
// player is pushed backwards instead, shoving any movable blocks behind
// them, until a wall, an immovable block, the block being pressed against
// or the maximum tape length stops them. Otherwise the tape end walks
// forward, pushing blocks met by the end and then the hook, and stops on
// the last free cell before an obstruction or at the maximum length.
//
// Returns true if the player or the tape end moved.
func (s *State) ExtendTape() bool {
	dir := s.Player.Dir
	back := dir.Opposite()
	limit := s.cfg.MaxTapeLength

	length := s.TapeLength()
	if length < 0 || length >= limit {
		return false
	}

	nextEnd := s.TapeEnd.Step(dir)
	nextEdge := tapeEdge(nextEnd, dir, s.Player.Orientation)

	if s.obstructed(nextEnd, dir) || s.obstructed(nextEdge, dir) {
		return s.pushPlayerBack(back, nextEnd, nextEdge, length)
	}

	end := s.TapeEnd
	for length < limit {
		nextEnd := end.Step(dir)
		nextEdge := tapeEdge(nextEnd, dir, s.Player.Orientation)
		if s.obstructed(nextEnd, dir) || s.obstructed(nextEdge, dir) {
			break
		}
		if !s.pushAhead(nextEnd, nextEdge, dir) {
			break
		}
		end = nextEnd
		length++
	}

	moved := end != s.TapeEnd
	s.TapeEnd = end
	return moved
}

// pushAhead moves the blocks under the next tape end and hook one cell in
// d. Occupants are read before anything moves; a hook block already carried
// by the end block's chain is not pushed twice. Either every block moves or
// the state is left as it was.
func (s *State) pushAhead(nextEnd, nextEdge Coord, d Dir) bool {
	endID, endHasBlock := s.Grid.BlockAt(nextEnd)
	edgeID, edgeHasBlock := s.Grid.BlockAt(nextEdge)
	if !endHasBlock && !edgeHasBlock {
		return true
	}

	saved := make([]Block, len(s.Blocks))
	for i, b := range s.Blocks {
		saved[i] = b.Clone()
	}

	var carried []BlockID
	if endHasBlock {
		chain, ok := s.pushChain(endID, d)
		if !ok || !s.MoveBlock(endID, d) {
			return false
		}
		carried = chain
	}
	if edgeHasBlock && !containsID(carried, edgeID) {
		if !s.MoveBlock(edgeID, d) {
			s.Blocks = saved
			s.RebuildBlockIndex()
			return false
		}
	}
	return true
}

// pushPlayerBack moves the player away from an obstruction in front of the
// tape. pressed holds the cells the tape end and hook are pressing on.
//
// The player's starting cell stays occupied for the whole push, so no block
// shoved along the way can slide into it behind the player.
func (s *State) pushPlayerBack(back Dir, pressedEnd, pressedEdge Coord, length int) bool {
	endID, _ := s.Grid.BlockAt(pressedEnd)
	edgeID, _ := s.Grid.BlockAt(pressedEdge)

	start := s.Player.Pos
	pos := start
	for length < s.cfg.MaxTapeLength {
		next := pos.Step(back)
		if s.Grid.IsWall(next) {
			break
		}
		if id, ok := s.Grid.BlockAt(next); ok {
			if id == endID || id == edgeID {
				break
			}
			if !s.MoveBlock(id, back) {
				break
			}
		}
		pos = next
		length++
	}
	s.Player.Pos = pos
	return pos != start
}

// RetractTape pulls the tape back toward the player.
//
// When the tape end sits on a wall, or its hook is caught on a wall or an
// immovable block, the player is pulled along the tape to the tape end.
// Otherwise the tape end walks back toward the player, dragging a movable
// block caught on the hook, until a wall, an immovable block or zero length
// stops it.
//
// Returns true if the player or the tape end moved.
func (s *State) RetractTape() bool {
	dir := s.Player.Dir
	back := dir.Opposite()

	length := s.TapeLength()
	if length < 0 {
		return false
	}

	end := s.TapeEnd
	edge := s.TapeEdge()
	if s.Grid.IsWall(end) || s.obstructed(edge, back) {
		return s.pullPlayer(dir, length)
	}

	for length > 0 {
		if s.Grid.IsWall(end) || s.obstructed(edge, back) {
			break
		}
		if id, ok := s.Grid.BlockAt(edge); ok {
			s.MoveBlock(id, back)
		}
		end = end.Step(back)
		edge = tapeEdge(end, dir, s.Player.Orientation)
		length--
	}

	moved := end != s.TapeEnd
	s.TapeEnd = end
	return moved
}

// pullPlayer walks the player along the tape toward the tape end. The
// player never steps onto a wall or block cell.
func (s *State) pullPlayer(dir Dir, length int) bool {
	start, startEnd := s.Player.Pos, s.TapeEnd
	for i := 0; i < length; i++ {
		next := s.Player.Pos.Step(dir)
		if s.Grid.IsSolid(next) {
			break
		}
		s.Player.Pos = next
	}
	// A tape end resting on a solid cell collapses onto the player.
	if s.Player.Pos != s.TapeEnd && s.Grid.IsSolid(s.TapeEnd) {
		s.TapeEnd = s.Player.Pos
	}
	return s.Player.Pos != start || s.TapeEnd != startEnd
}
