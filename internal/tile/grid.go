package tile

// Grid is the live, sparse world. A nil entry is air or an unloaded cell.
// It is the only long-lived mutable structure of a session; everything
// else rereads it per query because streaming adds and removes entries.
type Grid struct {
	width, height int
	cells         []*Tile
	count         int
}

func NewGrid(width, height int) *Grid {
	return &Grid{width: width, height: height, cells: make([]*Tile, width*height)}
}

func (g *Grid) Width() int  { return g.width }
func (g *Grid) Height() int { return g.height }

// Count returns the number of materialized tiles.
func (g *Grid) Count() int { return g.count }

func (g *Grid) InBounds(x, y int) bool {
	return x >= 0 && y >= 0 && x < g.width && y < g.height
}

// At returns the tile at (x, y), or nil for empty and out-of-range cells.
func (g *Grid) At(x, y int) *Tile {
	if !g.InBounds(x, y) {
		return nil
	}
	return g.cells[y*g.width+x]
}

// AtCell is At for a Cell.
func (g *Grid) AtCell(c Cell) *Tile { return g.At(c.X, c.Y) }

// Occupied reports whether (x, y) holds any tile.
func (g *Grid) Occupied(x, y int) bool { return g.At(x, y) != nil }

// SolidAt reports whether (x, y) holds a tile entities collide with.
func (g *Grid) SolidAt(x, y int) bool {
	t := g.At(x, y)
	return t != nil && t.Type.Solid()
}

// Put stores t at its own coordinates, replacing any previous tile.
// Tiles outside the grid are dropped.
func (g *Grid) Put(t *Tile) {
	if t == nil || !g.InBounds(t.X, t.Y) {
		return
	}
	i := t.Y*g.width + t.X
	if g.cells[i] == nil {
		g.count++
	}
	g.cells[i] = t
}

// Remove clears (x, y) and returns the tile that was there.
func (g *Grid) Remove(x, y int) *Tile {
	if !g.InBounds(x, y) {
		return nil
	}
	i := y*g.width + x
	t := g.cells[i]
	if t != nil {
		g.cells[i] = nil
		g.count--
	}
	return t
}

// ClearColumns empties every cell in columns [x0, x1).
func (g *Grid) ClearColumns(x0, x1 int) {
	x0, x1 = max(x0, 0), min(x1, g.width)
	for y := 0; y < g.height; y++ {
		for x := x0; x < x1; x++ {
			g.Remove(x, y)
		}
	}
}

// Each calls fn for every tile inside w (clamped to the grid), row by row.
func (g *Grid) Each(w Window, fn func(*Tile)) {
	w = w.Clamp(g.width, g.height)
	for y := w.Y0; y < w.Y1; y++ {
		row := g.cells[y*g.width : (y+1)*g.width]
		for x := w.X0; x < w.X1; x++ {
			if t := row[x]; t != nil {
				fn(t)
			}
		}
	}
}

// Flatten writes the grid back to persisted rows. Columns for which live
// returns false are taken from raw instead (unloaded terrain). Grass
// flattens to Dirt and empty cells to Air.
func (g *Grid) Flatten(raw *RawMap, live func(x int) bool) [][]int {
	rows := make([][]int, g.height)
	for y := range rows {
		row := make([]int, g.width)
		for x := range row {
			var t Type
			if live(x) {
				if c := g.cells[y*g.width+x]; c != nil {
					t = c.Type
				}
			} else {
				t = raw.At(x, y)
			}
			row[x] = int(t.Persisted())
		}
		rows[y] = row
	}
	return rows
}

// Window is a half-open rectangle of grid cells [X0,X1) × [Y0,Y1).
type Window struct {
	X0, Y0, X1, Y1 int
}

// Clamp restricts w to a width × height grid.
func (w Window) Clamp(width, height int) Window {
	w.X0, w.Y0 = max(w.X0, 0), max(w.Y0, 0)
	w.X1, w.Y1 = min(w.X1, width), min(w.Y1, height)
	if w.X1 < w.X0 {
		w.X1 = w.X0
	}
	if w.Y1 < w.Y0 {
		w.Y1 = w.Y0
	}
	return w
}

// Contains reports whether c lies inside w.
func (w Window) Contains(c Cell) bool {
	return c.X >= w.X0 && c.X < w.X1 && c.Y >= w.Y0 && c.Y < w.Y1
}

// ViewWindow returns the cells visible through a viewport of vw × vh pixels
// whose top-left corner is at camera (cx, cy). The far edge is padded by
// one tile past the partly visible column and row.
func ViewWindow(cx, cy, vw, vh float64) Window {
	return Window{
		X0: floorDiv(cx),
		Y0: floorDiv(cy),
		X1: floorDiv(cx+vw) + 2,
		Y1: floorDiv(cy+vh) + 2,
	}
}
