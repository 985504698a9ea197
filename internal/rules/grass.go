package rules

import (
	"math/rand"

	"github.com/blockyworld/blocky/internal/tile"
)

const (
	GrassSpreadCooldown = 30
	GrassSpreadChance   = 0.2
	GrassDecayTime      = 45
)

var neighbours = [4][2]int{{-1, 0}, {1, 0}, {0, -1}, {0, 1}}

// Grass runs grass spread and decay over the visible window.
type Grass struct {
	SpreadCooldown int
	SpreadChance   float64
	DecayTime      int

	timer   int
	sources []*tile.Tile // reused between spread passes
}

func NewGrass() *Grass {
	return &Grass{
		SpreadCooldown: GrassSpreadCooldown,
		SpreadChance:   GrassSpreadChance,
		DecayTime:      GrassDecayTime,
	}
}

// Tick advances the spread cooldown and applies decay. It returns how many
// tiles turned to grass and how many decayed to dirt.
func (r *Grass) Tick(g *tile.Grid, w tile.Window, rng *rand.Rand) (spread, decayed int) {
	r.timer++
	if r.timer >= r.SpreadCooldown {
		r.timer = 0
		spread = r.spread(g, w, rng)
	}
	decayed = r.decay(g, w)
	return spread, decayed
}

// spread converts at most one exposed dirt neighbour per grass tile.
// Sources are collected first so grass grown in this pass does not spread
// again until the next activation.
func (r *Grass) spread(g *tile.Grid, w tile.Window, rng *rand.Rand) int {
	r.sources = r.sources[:0]
	g.Each(w, func(t *tile.Tile) {
		if t.Type == tile.Grass {
			r.sources = append(r.sources, t)
		}
	})

	n := 0
	for _, src := range r.sources {
		for _, d := range neighbours {
			nb := g.At(src.X+d[0], src.Y+d[1])
			if nb == nil || nb.Type != tile.Dirt || !Exposed(g, nb.X, nb.Y) {
				continue
			}
			if rng.Float64() < r.SpreadChance {
				nb.Retype(tile.Grass)
				n++
				break
			}
		}
	}
	return n
}

func (r *Grass) decay(g *tile.Grid, w tile.Window) int {
	n := 0
	g.Each(w, func(t *tile.Tile) {
		if t.Type != tile.Grass {
			return
		}
		if !Covered(g, t.X, t.Y) {
			t.Covered = 0
			return
		}
		t.Covered++
		if t.Covered > r.DecayTime {
			t.Retype(tile.Dirt)
			n++
		}
	})
	return n
}

// Exposed reports whether the live cell above (x, y) is empty. Row 0 is
// always exposed.
func Exposed(g *tile.Grid, x, y int) bool {
	return y == 0 || !g.Occupied(x, y-1)
}

// Covered reports whether a solid tile sits directly above (x, y).
func Covered(g *tile.Grid, x, y int) bool {
	return g.SolidAt(x, y-1)
}
