package tile

import (
	"fmt"
	"math"
)

// Size is the edge length of one tile in pixels.
const Size = 40

// Type is the terrain code stored in raw maps and save files.
type Type uint8

const (
	Air   Type = 0
	Dirt  Type = 1
	Grass Type = 2
	Stone Type = 3
	Wood  Type = 4
	Leaf  Type = 5
)

var typeNames = [...]string{"air", "dirt", "grass", "stone", "wood", "leaf"}

func (t Type) String() string {
	if int(t) < len(typeNames) {
		return typeNames[t]
	}
	return fmt.Sprintf("type(%d)", uint8(t))
}

// ParseType resolves a lower-case tile name.
func ParseType(name string) (Type, bool) {
	for i, n := range typeNames {
		if n == name {
			return Type(i), true
		}
	}
	return Air, false
}

// Valid reports whether t is one of the known terrain codes.
func (t Type) Valid() bool { return t <= Leaf }

// Solid reports whether entities collide with tiles of this type.
// Wood and Leaf are walk-through decoration.
func (t Type) Solid() bool {
	switch t {
	case Air, Wood, Leaf:
		return false
	}
	return true
}

// Persisted is the code written to save files. Grass is a render-time
// promotion of exposed dirt and always flattens back to Dirt.
func (t Type) Persisted() Type {
	if t == Grass {
		return Dirt
	}
	return t
}

// MaxHealthFor returns the full health of a freshly created tile.
func MaxHealthFor(t Type) int {
	if t == Stone {
		return 200
	}
	return 100
}

// Tile is one materialized grid cell. Accessed only from the game loop
// goroutine; no locks needed.
type Tile struct {
	X, Y      int // grid coordinates
	Type      Type
	Health    int
	MaxHealth int
	Covered   int // consecutive ticks with a solid tile directly above (grass only)

	crack []Segment // nil until first damage
}

// New creates a pristine tile at grid position (x, y).
func New(x, y int, t Type) *Tile {
	hp := MaxHealthFor(t)
	return &Tile{X: x, Y: y, Type: t, Health: hp, MaxHealth: hp}
}

// Cell returns the tile's grid coordinates.
func (t *Tile) Cell() Cell { return Cell{X: t.X, Y: t.Y} }

// Retype changes the tile's terrain in place (grass spread/decay).
// Health is rescaled so damage progress is kept proportionally.
func (t *Tile) Retype(nt Type) {
	if t.Type == nt {
		return
	}
	full := MaxHealthFor(nt)
	t.Health = t.Health * full / t.MaxHealth
	t.MaxHealth = full
	t.Type = nt
	t.Covered = 0
}

// PixelBounds returns the tile's top-left pixel corner.
func (t *Tile) PixelBounds() (x, y, w, h float64) {
	return float64(t.X * Size), float64(t.Y * Size), Size, Size
}

// Cell is an integer grid coordinate.
type Cell struct {
	X, Y int
}

// CellAt converts a pixel position to the grid cell containing it.
func CellAt(px, py float64) Cell {
	return Cell{X: floorDiv(px), Y: floorDiv(py)}
}

// Center returns the pixel centre of the cell.
func (c Cell) Center() (float64, float64) {
	return float64(c.X*Size) + Size/2, float64(c.Y*Size) + Size/2
}

func (c Cell) Add(dx, dy int) Cell { return Cell{X: c.X + dx, Y: c.Y + dy} }

func floorDiv(p float64) int {
	return int(math.Floor(p / Size))
}
