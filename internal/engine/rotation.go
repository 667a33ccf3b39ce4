package engine

import "sort"

// Obstruction is the set of cells that stopped a rotation, sorted
// row-major. A nil Obstruction means nothing was in the way.
type Obstruction []Coord

// newObstruction builds a sorted, duplicate-free obstruction set.
func newObstruction(cells ...Coord) Obstruction {
	if len(cells) == 0 {
		return nil
	}
	out := make(Obstruction, 0, len(cells))
	for _, c := range cells {
		if !out.Contains(c) {
			out = append(out, c)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Less(out[j]) })
	return out
}

// Contains reports whether c is part of the obstruction.
func (o Obstruction) Contains(c Coord) bool {
	for _, oc := range o {
		if oc == c {
			return true
		}
	}
	return false
}

// quadrant is a quarter of the square swept by the tape around the player.
type quadrant uint8

const (
	quadNone quadrant = iota
	quadNW
	quadNE
	quadSE
	quadSW
)

// turnQuadrant maps (current facing, requested facing) to the quadrant the
// tape sweeps through. Same-direction and reverse turns map to quadNone.
var turnQuadrant = [4][4]quadrant{
	DirUp:    {DirRight: quadNE, DirLeft: quadNW},
	DirRight: {DirUp: quadNE, DirDown: quadSE},
	DirDown:  {DirRight: quadSE, DirLeft: quadSW},
	DirLeft:  {DirUp: quadNW, DirDown: quadSW},
}

// span returns the x and y offset ranges of the quadrant for radius r.
// Cells on an axis belong to both neighbouring quadrants.
func (q quadrant) span(r int) (x0, x1, y0, y1 int) {
	switch q {
	case quadNW:
		return -r, 0, -r, 0
	case quadNE:
		return 0, r, -r, 0
	case quadSE:
		return 0, r, 0, r
	case quadSW:
		return -r, 0, 0, r
	default:
		return 0, -1, 0, -1
	}
}

// edgeEmbedded reports whether a hook at edge, facing d, would sit between
// two wall cells or two cells of the same block.
func (s *State) edgeEmbedded(edge Coord, d Dir) bool {
	ahead := edge.Step(d)
	if s.Grid.IsWall(edge) && s.Grid.IsWall(ahead) {
		return true
	}
	a, okA := s.Grid.BlockAt(edge)
	b, okB := s.Grid.BlockAt(ahead)
	return okA && okB && a == b
}

// arcObstruction scans the quadrant swept when turning from one facing to
// another and returns every wall or block cell strictly inside the circle
// of radius r around the player.
func (s *State) arcObstruction(from, to Dir, r int) Obstruction {
	q := turnQuadrant[from][to]
	x0, x1, y0, y1 := q.span(r)
	p := s.Player.Pos

	var cells []Coord
	for dy := y0; dy <= y1; dy++ {
		for dx := x0; dx <= x1; dx++ {
			if dx*dx+dy*dy >= r*r {
				continue
			}
			c := p.Add(dx, dy)
			if s.Grid.IsSolid(c) {
				cells = append(cells, c)
			}
		}
	}
	return newObstruction(cells...)
}

// ChangeDirection turns the player a quarter turn to face d, swinging the
// tape with it.
//
// Same-direction and reverse requests are ignored. If the hook would end
// up embedded in a wall pair or a single block, the opposite orientation
// is tried; if that is embedded too the two cells straddling the hook are
// returned. Otherwise every wall or block cell inside the swept arc of
// radius length+1 obstructs the turn. A rejected turn changes nothing.
func (s *State) ChangeDirection(d Dir) Obstruction {
	cur := s.Player.Dir
	if !cur.Perpendicular(d) {
		return nil
	}

	length := s.TapeLength()
	if length < 0 {
		return nil
	}

	end := s.Player.Pos.StepN(d, length)
	orient := s.Player.Orientation
	edge := tapeEdge(end, d, orient)

	if s.edgeEmbedded(edge, d) {
		alt := tapeEdge(end, d, orient.Flip())
		if s.edgeEmbedded(alt, d) {
			return newObstruction(edge, edge.Step(d))
		}
		orient = orient.Flip()
	}

	if obs := s.arcObstruction(cur, d, length+1); len(obs) > 0 {
		return obs
	}

	s.Player.Dir = d
	s.Player.Orientation = orient
	s.TapeEnd = end
	return nil
}

// SwitchOrientation moves the hook to the other side of the tape unless it
// would end up embedded, in which case the two straddling cells are
// returned and nothing changes.
func (s *State) SwitchOrientation() Obstruction {
	d := s.Player.Dir
	flipped := s.Player.Orientation.Flip()
	edge := tapeEdge(s.TapeEnd, d, flipped)
	if s.edgeEmbedded(edge, d) {
		return newObstruction(edge, edge.Step(d))
	}
	s.Player.Orientation = flipped
	return nil
}
