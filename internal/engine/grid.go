package engine

// Grid stores the static tile of every cell plus the block-occupancy index.
// The playable area is W x H; a border of Border pit cells surrounds it so
// the tape end never addresses a cell outside the backing arrays. Reads
// beyond the border answer TilePit and no block.
type Grid struct {
	W, H   int
	Border int

	stride int
	tiles  []Tile    // Row-major, border included
	owner  []BlockID // Block index, NoBlock where empty
}

// NewGrid creates an all-pit grid with the given playable size and border.
func NewGrid(w, h, border int) *Grid {
	stride := w + 2*border
	rows := h + 2*border
	return &Grid{
		W:      w,
		H:      h,
		Border: border,
		stride: stride,
		tiles:  make([]Tile, stride*rows),
		owner:  make([]BlockID, stride*rows),
	}
}

// index converts a level coordinate to a backing-array index.
func (g *Grid) index(c Coord) (int, bool) {
	x := c.X + g.Border
	y := c.Y + g.Border
	if x < 0 || x >= g.stride || y < 0 || y >= g.H+2*g.Border {
		return 0, false
	}
	return y*g.stride + x, true
}

// InBounds reports whether c lies in the playable area.
func (g *Grid) InBounds(c Coord) bool {
	return c.X >= 0 && c.X < g.W && c.Y >= 0 && c.Y < g.H
}

// TileAt returns the tile at c.
func (g *Grid) TileAt(c Coord) Tile {
	i, ok := g.index(c)
	if !ok {
		return TilePit
	}
	return g.tiles[i]
}

// SetTile changes the tile at c. Cells outside the playable area are
// left untouched so the border stays pit.
func (g *Grid) SetTile(c Coord, t Tile) bool {
	if !g.InBounds(c) {
		return false
	}
	i, _ := g.index(c)
	g.tiles[i] = t
	return true
}

// BlockAt returns the block occupying c.
func (g *Grid) BlockAt(c Coord) (BlockID, bool) {
	i, ok := g.index(c)
	if !ok || g.owner[i] == NoBlock {
		return NoBlock, false
	}
	return g.owner[i], true
}

// IsWall reports whether c is a wall tile.
func (g *Grid) IsWall(c Coord) bool {
	return g.TileAt(c) == TileWall
}

// IsSolid reports whether c is a wall or holds a block.
func (g *Grid) IsSolid(c Coord) bool {
	if g.IsWall(c) {
		return true
	}
	_, ok := g.BlockAt(c)
	return ok
}

// rebuildIndex clears and repopulates the block index.
func (g *Grid) rebuildIndex(blocks []Block) {
	for i := range g.owner {
		g.owner[i] = NoBlock
	}
	for _, b := range blocks {
		for _, c := range b.Cells {
			if i, ok := g.index(c); ok {
				g.owner[i] = b.ID
			}
		}
	}
}

// Clone creates a deep copy of the grid.
func (g *Grid) Clone() *Grid {
	clone := &Grid{
		W:      g.W,
		H:      g.H,
		Border: g.Border,
		stride: g.stride,
		tiles:  make([]Tile, len(g.tiles)),
		owner:  make([]BlockID, len(g.owner)),
	}
	copy(clone.tiles, g.tiles)
	copy(clone.owner, g.owner)
	return clone
}

// Equal reports whether two grids have the same size, tiles and index.
func (g *Grid) Equal(other *Grid) bool {
	if g.W != other.W || g.H != other.H || g.Border != other.Border {
		return false
	}
	for i := range g.tiles {
		if g.tiles[i] != other.tiles[i] || g.owner[i] != other.owner[i] {
			return false
		}
	}
	return true
}
