package engine

import (
	"sort"
	"unicode"
)

// BlockID names a block by its lowercase letter.
type BlockID byte

// NoBlock marks an empty cell in the block index.
const NoBlock BlockID = 0

// String returns the block letter.
func (id BlockID) String() string {
	if id == NoBlock {
		return "-"
	}
	return string(rune(id))
}

// Upper returns the letter used for a cell of this block over Space.
func (id BlockID) Upper() rune {
	return unicode.ToUpper(rune(id))
}

// Block is a rigid group of cells that move together.
type Block struct {
	ID    BlockID
	Cells []Coord
}

// Clone creates a deep copy of the block.
func (b Block) Clone() Block {
	cells := make([]Coord, len(b.Cells))
	copy(cells, b.Cells)
	return Block{ID: b.ID, Cells: cells}
}

// Contains reports whether c is one of the block's cells.
func (b Block) Contains(c Coord) bool {
	for _, bc := range b.Cells {
		if bc == c {
			return true
		}
	}
	return false
}

// Block returns the block with the given id.
func (s *State) Block(id BlockID) (Block, bool) {
	i := s.blockIndex(id)
	if i < 0 {
		return Block{}, false
	}
	return s.Blocks[i], true
}

func (s *State) blockIndex(id BlockID) int {
	for i := range s.Blocks {
		if s.Blocks[i].ID == id {
			return i
		}
	}
	return -1
}

// RebuildBlockIndex refreshes the grid's block index from s.Blocks.
// Call it after changing block cells directly.
func (s *State) RebuildBlockIndex() {
	sort.Slice(s.Blocks, func(i, j int) bool {
		return s.Blocks[i].ID < s.Blocks[j].ID
	})
	s.Grid.rebuildIndex(s.Blocks)
}

// hasFallen reports whether every cell of b lies over a pit.
func (s *State) hasFallen(b Block) bool {
	for _, c := range b.Cells {
		if s.Grid.TileAt(c) != TilePit {
			return false
		}
	}
	return true
}

// blockersOf returns the other blocks standing in the way of id moving one
// cell in d. ok is false when a wall or the player is in the way.
func (s *State) blockersOf(id BlockID, d Dir) (deps []BlockID, ok bool) {
	b, found := s.Block(id)
	if !found {
		return nil, false
	}
	for _, c := range b.Cells {
		dst := c.Step(d)
		if s.Grid.IsWall(dst) || dst == s.Player.Pos {
			return nil, false
		}
		other, hit := s.Grid.BlockAt(dst)
		if !hit || other == id {
			continue
		}
		dup := false
		for _, dep := range deps {
			if dep == other {
				dup = true
				break
			}
		}
		if !dup {
			deps = append(deps, other)
		}
	}
	return deps, true
}

type chainMark uint8

const (
	markUnseen chainMark = iota
	markActive
	markDone
)

type chainFrame struct {
	id   BlockID
	deps []BlockID
	next int
}

// pushChain resolves every block that must move for root to move one cell
// in d, using an explicit depth-first walk over the "is blocked by"
// relation. A block reached again while still on the walk path closes a
// cycle and the whole chain is immovable.
func (s *State) pushChain(root BlockID, d Dir) ([]BlockID, bool) {
	marks := make(map[BlockID]chainMark)
	var order []BlockID
	var stack []chainFrame

	enter := func(id BlockID) bool {
		deps, ok := s.blockersOf(id, d)
		if !ok {
			return false
		}
		marks[id] = markActive
		stack = append(stack, chainFrame{id: id, deps: deps})
		return true
	}

	if !enter(root) {
		return nil, false
	}

	for len(stack) > 0 {
		top := &stack[len(stack)-1]
		if top.next == len(top.deps) {
			marks[top.id] = markDone
			order = append(order, top.id)
			stack = stack[:len(stack)-1]
			continue
		}

		dep := top.deps[top.next]
		top.next++

		switch marks[dep] {
		case markActive:
			return nil, false
		case markDone:
			continue
		}
		if !enter(dep) {
			return nil, false
		}
	}

	return order, true
}

// CanMove reports whether block id, together with every block it would
// push, can move one cell in d.
func (s *State) CanMove(id BlockID, d Dir) bool {
	_, ok := s.pushChain(id, d)
	return ok
}

// MoveBlock moves block id and its whole push chain one cell in d. Each
// block in the chain moves exactly once. Blocks left entirely over pits
// are removed. Returns false, leaving the state untouched, when the chain
// is obstructed.
func (s *State) MoveBlock(id BlockID, d Dir) bool {
	chain, ok := s.pushChain(id, d)
	if !ok {
		return false
	}

	dx, dy := d.Delta()
	for _, moved := range chain {
		b := &s.Blocks[s.blockIndex(moved)]
		for i := range b.Cells {
			b.Cells[i] = b.Cells[i].Add(dx, dy)
		}
	}

	kept := s.Blocks[:0]
	for _, b := range s.Blocks {
		if containsID(chain, b.ID) && s.hasFallen(b) {
			continue
		}
		kept = append(kept, b)
	}
	s.Blocks = kept

	s.RebuildBlockIndex()
	return true
}

func containsID(ids []BlockID, id BlockID) bool {
	for _, x := range ids {
		if x == id {
			return true
		}
	}
	return false
}

// addBlockCell attaches c to block id, creating the block if needed.
func (s *State) addBlockCell(id BlockID, c Coord) {
	if i := s.blockIndex(id); i >= 0 {
		s.Blocks[i].Cells = append(s.Blocks[i].Cells, c)
	} else {
		s.Blocks = append(s.Blocks, Block{ID: id, Cells: []Coord{c}})
	}
	s.RebuildBlockIndex()
}

// removeBlockCell detaches c from whichever block holds it. Blocks left
// without cells are dropped.
func (s *State) removeBlockCell(c Coord) {
	id, ok := s.Grid.BlockAt(c)
	if !ok {
		return
	}
	i := s.blockIndex(id)
	cells := s.Blocks[i].Cells[:0]
	for _, bc := range s.Blocks[i].Cells {
		if bc != c {
			cells = append(cells, bc)
		}
	}
	s.Blocks[i].Cells = cells
	if len(cells) == 0 {
		s.Blocks = append(s.Blocks[:i], s.Blocks[i+1:]...)
	}
	s.RebuildBlockIndex()
}
