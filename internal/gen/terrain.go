// Package gen builds the raw terrain of a new world.
package gen

import (
	"math"
	"math/rand"
	"time"

	"github.com/blockyworld/blocky/internal/tile"
)

const (
	surfaceOctaves = 2
	minDirtDepth   = 8
	maxDirtDepth   = 12
	caveClearance  = 8 // cave carving starts this far below the surface
	edgeMargin     = 5
	leafRadius     = 2
	minTrunk       = 4
	maxTrunk       = 7
)

// Params controls world generation. Surface, dirt depth and caves depend
// only on Seed; trees draw from TreeRand.
type Params struct {
	Width, Height int
	Seed          int64
	Frequency     float64
	Octaves       int     // cave noise octaves
	CaveThreshold float64 // |noise| above this carves air
	TreeChance    float64 // per column

	// TreeRand drives the forest pass. Nil uses a time-seeded source, so
	// two worlds from the same seed differ only in their trees.
	TreeRand *rand.Rand
}

// DefaultParams matches the stock 10000×80 world.
func DefaultParams(seed int64) Params {
	return Params{
		Width:         10000,
		Height:        80,
		Seed:          seed,
		Frequency:     0.05,
		Octaves:       4,
		CaveThreshold: 0.3,
		TreeChance:    0.1,
	}
}

// Generate runs the terrain, cave and forest passes once and returns the
// frozen map.
func Generate(p Params) *tile.RawMap {
	b := tile.NewBuilder(p.Width, p.Height)
	surface := fillColumns(b, p)
	carveCaves(b, p, surface)

	rng := p.TreeRand
	if rng == nil {
		rng = rand.New(rand.NewSource(time.Now().UnixNano()))
	}
	plantTrees(b, p.TreeChance, rng)
	return b.Freeze()
}

// fillColumns lays dirt over stone below a noise-shaped surface and
// returns the surface row of every column.
func fillColumns(b *tile.Builder, p Params) []int {
	field := NewField(p.Seed, surfaceOctaves)
	depth := rand.New(rand.NewSource(p.Seed))
	h := float64(p.Height)

	surface := make([]int, p.Width)
	for x := 0; x < p.Width; x++ {
		n := field.At1(float64(x) * p.Frequency)
		top := int(h/2 + n*h/4)
		top = max(edgeMargin, min(p.Height-edgeMargin, top))
		surface[x] = top

		stoneFrom := top + minDirtDepth + depth.Intn(maxDirtDepth-minDirtDepth+1)
		for y := top; y < p.Height; y++ {
			if y >= stoneFrom {
				b.Set(x, y, tile.Stone)
			} else {
				b.Set(x, y, tile.Dirt)
			}
		}
	}
	return surface
}

// carveCaves hollows out cells well below each column's surface where the
// second noise field is strong.
func carveCaves(b *tile.Builder, p Params, surface []int) {
	field := NewField(p.Seed+1, p.Octaves)
	freq := p.Frequency * 2
	for x := 0; x < p.Width; x++ {
		for y := surface[x] + caveClearance + 1; y < p.Height; y++ {
			if math.Abs(field.At2(float64(x)*freq, float64(y)*freq)) > p.CaveThreshold {
				b.Set(x, y, tile.Air)
			}
		}
	}
}

// plantTrees grows a wood trunk and a round leaf crown on the topmost dirt
// of some columns. Leaves only fill air.
func plantTrees(b *tile.Builder, chance float64, rng *rand.Rand) {
	for x := 0; x < b.Width(); x++ {
		top := -1
		for y := 0; y < b.Height(); y++ {
			if b.At(x, y) == tile.Dirt {
				top = y
				break
			}
		}
		if top < 0 || rng.Float64() >= chance {
			continue
		}

		trunk := minTrunk + rng.Intn(maxTrunk-minTrunk+1)
		for i := 0; i < trunk; i++ {
			if y := top - 1 - i; y >= 0 {
				b.Set(x, y, tile.Wood)
			}
		}

		crown := top - trunk
		r2 := (leafRadius + 0.5) * (leafRadius + 0.5)
		for ly := -leafRadius; ly <= leafRadius; ly++ {
			for lx := -leafRadius; lx <= leafRadius; lx++ {
				if float64(lx*lx+ly*ly) >= r2 {
					continue
				}
				cx, cy := x+lx, crown+ly
				if cy >= 0 && cy < b.Height() && cx >= 0 && cx < b.Width() && b.At(cx, cy) == tile.Air {
					b.Set(cx, cy, tile.Leaf)
				}
			}
		}
	}
}

// FindSpawn returns the top-left pixel position for a player dropped three
// tiles above the first solid ground of column x. ok is false when the
// column is empty or outside the map.
func FindSpawn(raw *tile.RawMap, x int) (px, py float64, ok bool) {
	if x < 0 || x >= raw.Width() {
		return 0, 0, false
	}
	for y := 0; y < raw.Height(); y++ {
		if raw.At(x, y) != tile.Air {
			return float64(x * tile.Size), float64((y - 3) * tile.Size), true
		}
	}
	return 0, 0, false
}

// SpawnColumn picks a random column in the middle half of the map.
func SpawnColumn(width int, rng *rand.Rand) int {
	lo, hi := width/4, width*3/4
	if hi <= lo {
		return width / 2
	}
	return lo + rng.Intn(hi-lo)
}
