package world

import (
	"math"
	"slices"

	"github.com/blockyworld/blocky/internal/core/ecs"
	"github.com/blockyworld/blocky/internal/tile"
	"github.com/go-gl/mathgl/mgl64"
)

// AOIGrid buckets loose items by position so an item only tests the
// drops in the 3x3 buckets around it. A bucket is wider than any item, so
// two overlapping items are always neighbours.
// Accessed only from the game loop goroutine; no locks.

const cellSize = 2 * tile.Size

type cellKey struct {
	cx, cy int
}

func toCellCoord(v float64) int {
	return int(math.Floor(v / cellSize))
}

func keyAt(p mgl64.Vec2) cellKey {
	return cellKey{cx: toCellCoord(p[0]), cy: toCellCoord(p[1])}
}

// AOIGrid tracks which items are in which bucket.
type AOIGrid struct {
	cells map[cellKey]map[ecs.EntityID]struct{}
	where map[ecs.EntityID]cellKey
}

func NewAOIGrid() *AOIGrid {
	return &AOIGrid{
		cells: make(map[cellKey]map[ecs.EntityID]struct{}),
		where: make(map[ecs.EntityID]cellKey),
	}
}

// Add places an item at p. Adding a known item moves it.
func (g *AOIGrid) Add(id ecs.EntityID, p mgl64.Vec2) {
	if _, ok := g.where[id]; ok {
		g.Move(id, p)
		return
	}
	k := keyAt(p)
	cell := g.cells[k]
	if cell == nil {
		cell = make(map[ecs.EntityID]struct{})
		g.cells[k] = cell
	}
	cell[id] = struct{}{}
	g.where[id] = k
}

// Remove takes an item out of the grid.
func (g *AOIGrid) Remove(id ecs.EntityID) {
	k, ok := g.where[id]
	if !ok {
		return
	}
	delete(g.where, id)
	if cell := g.cells[k]; cell != nil {
		delete(cell, id)
		if len(cell) == 0 {
			delete(g.cells, k)
		}
	}
}

// Move updates an item's bucket when its position changes.
func (g *AOIGrid) Move(id ecs.EntityID, p mgl64.Vec2) {
	if old, ok := g.where[id]; ok && old == keyAt(p) {
		return
	}
	g.Remove(id)
	g.Add(id, p)
}

// GetNearby returns the items in the 3x3 buckets around p in ascending
// id order. Caller does the exact overlap test.
func (g *AOIGrid) GetNearby(p mgl64.Vec2) []ecs.EntityID {
	c := keyAt(p)
	var result []ecs.EntityID
	for dx := -1; dx <= 1; dx++ {
		for dy := -1; dy <= 1; dy++ {
			for id := range g.cells[cellKey{cx: c.cx + dx, cy: c.cy + dy}] {
				result = append(result, id)
			}
		}
	}
	slices.Sort(result)
	return result
}

func (g *AOIGrid) Len() int { return len(g.where) }
