package rules

import (
	"math/rand"
	"testing"

	"github.com/blockyworld/blocky/internal/physics"
	"github.com/blockyworld/blocky/internal/tile"
)

var everything = tile.Window{X0: -100, Y0: -100, X1: 100, Y1: 100}

func TestGrassDecayThreshold(t *testing.T) {
	tests := []struct {
		name    string
		ticks   int
		want    tile.Type
		decayed int
	}{
		{"covered for decay time", GrassDecayTime, tile.Grass, 0},
		{"covered one tick longer", GrassDecayTime + 1, tile.Dirt, 1},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			g := tile.NewGrid(3, 3)
			grass := tile.New(1, 1, tile.Grass)
			g.Put(grass)
			g.Put(tile.New(1, 0, tile.Stone))

			r := NewGrass()
			r.SpreadChance = 0
			rng := rand.New(rand.NewSource(1))
			total := 0
			for i := 0; i < tt.ticks; i++ {
				_, d := r.Tick(g, everything, rng)
				total += d
			}
			if grass.Type != tt.want || total != tt.decayed {
				t.Errorf("after %d covered ticks: %v (decayed %d), want %v (%d)", tt.ticks, grass.Type, total, tt.want, tt.decayed)
			}
		})
	}
}

func TestGrassDecayResetsWhenUncovered(t *testing.T) {
	g := tile.NewGrid(3, 3)
	grass := tile.New(1, 1, tile.Grass)
	g.Put(grass)
	g.Put(tile.New(1, 0, tile.Stone))

	r := NewGrass()
	r.SpreadChance = 0
	rng := rand.New(rand.NewSource(1))
	for i := 0; i < 40; i++ {
		r.Tick(g, everything, rng)
	}
	g.Remove(1, 0)
	r.Tick(g, everything, rng)
	if grass.Covered != 0 {
		t.Fatalf("covered = %d after uncovering, want 0", grass.Covered)
	}
	g.Put(tile.New(1, 0, tile.Stone))
	for i := 0; i < 40; i++ {
		r.Tick(g, everything, rng)
	}
	if grass.Type != tile.Grass {
		t.Error("decay accrued across an uncovered tick")
	}
}

func TestGrassSpread(t *testing.T) {
	// Row 1: dirt grass dirt, row 0 above the right dirt is covered by stone.
	g := tile.NewGrid(3, 3)
	g.Put(tile.New(0, 1, tile.Dirt))
	g.Put(tile.New(1, 1, tile.Grass))
	right := tile.New(2, 1, tile.Dirt)
	g.Put(right)
	g.Put(tile.New(2, 0, tile.Stone))
	below := tile.New(1, 2, tile.Dirt) // covered by the grass itself
	g.Put(below)

	r := NewGrass()
	r.SpreadChance = 1
	rng := rand.New(rand.NewSource(1))

	var spread int
	for i := 0; i < GrassSpreadCooldown; i++ {
		s, _ := r.Tick(g, everything, rng)
		spread += s
		if i < GrassSpreadCooldown-1 && s > 0 {
			t.Fatalf("spread before the cooldown elapsed (tick %d)", i+1)
		}
	}
	if spread != 1 {
		t.Fatalf("spread %d tiles, want exactly 1 per source", spread)
	}
	if g.At(0, 1).Type != tile.Grass {
		t.Error("exposed left neighbour did not turn to grass")
	}
	if right.Type != tile.Dirt || below.Type != tile.Dirt {
		t.Error("covered dirt turned to grass")
	}
}

func TestGrassIgnoresTilesOutsideWindow(t *testing.T) {
	g := tile.NewGrid(10, 3)
	grass := tile.New(8, 1, tile.Grass)
	g.Put(grass)
	g.Put(tile.New(8, 0, tile.Stone))

	r := NewGrass()
	rng := rand.New(rand.NewSource(1))
	for i := 0; i < 100; i++ {
		r.Tick(g, tile.Window{X0: 0, Y0: 0, X1: 5, Y1: 3}, rng)
	}
	if grass.Type != tile.Grass || grass.Covered != 0 {
		t.Error("grass outside the visible window was updated")
	}
}

// standing returns an actor whose body occupies cells (2..2, 3..4) of a
// 10x10 grid with stone on row 5.
func standing(g *tile.Grid) Actor {
	for x := 0; x < 10; x++ {
		g.Put(tile.New(x, 5, tile.Stone))
	}
	body := physics.NewRect(2*tile.Size+5, 5*tile.Size-63, 21, 63)
	return Actor{
		Body:  body,
		Eye:   tile.CellAt(body.CenterX(), body.Top()-8),
		Reach: DefaultReach,
	}
}

func TestCanPlace(t *testing.T) {
	tests := []struct {
		name   string
		setup  func(g *tile.Grid)
		target tile.Cell
		held   uint32
		want   Verdict
	}{
		{"on the floor", nil, tile.Cell{X: 4, Y: 4}, 1, Allowed},
		{"no item", nil, tile.Cell{X: 4, Y: 4}, 0, NoItem},
		{"occupied", nil, tile.Cell{X: 4, Y: 5}, 1, Occupied},
		{"out of bounds", nil, tile.Cell{X: -1, Y: 4}, 1, OutOfBounds},
		{"too far", nil, tile.Cell{X: 9, Y: 4}, 1, OutOfReach},
		{"inside player", nil, tile.Cell{X: 2, Y: 4}, 1, OverlapsPlayer},
		{"floating", nil, tile.Cell{X: 4, Y: 2}, 1, NoSupport},
		{"hanging from a ceiling", func(g *tile.Grid) { g.Put(tile.New(4, 1, tile.Stone)) }, tile.Cell{X: 4, Y: 2}, 1, Allowed},
		{"beside a wall", func(g *tile.Grid) { g.Put(tile.New(5, 2, tile.Dirt)) }, tile.Cell{X: 4, Y: 2}, 1, Allowed},
		{"against wood only", func(g *tile.Grid) { g.Put(tile.New(5, 2, tile.Wood)) }, tile.Cell{X: 4, Y: 2}, 1, NoSupport},
		{"behind a wall", func(g *tile.Grid) {
			for y := 0; y < 5; y++ {
				g.Put(tile.New(4, y, tile.Stone))
			}
		}, tile.Cell{X: 5, Y: 4}, 1, NoSight},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			g := tile.NewGrid(10, 10)
			a := standing(g)
			if tt.setup != nil {
				tt.setup(g)
			}
			if got := CanPlace(g, a, tt.target, tt.held); got != tt.want {
				t.Errorf("CanPlace(%v) = %v, want %v", tt.target, got, tt.want)
			}
		})
	}
}

func TestCanBreak(t *testing.T) {
	g := tile.NewGrid(10, 10)
	a := standing(g)

	if v := CanBreak(g, a, tile.Cell{X: 3, Y: 5}); v != Allowed {
		t.Errorf("floor next to player: %v", v)
	}
	if v := CanBreak(g, a, tile.Cell{X: 3, Y: 3}); v != Empty {
		t.Errorf("air: %v, want empty", v)
	}
	if v := CanBreak(g, a, tile.Cell{X: 9, Y: 5}); v != OutOfReach {
		t.Errorf("far tile: %v, want out of reach", v)
	}
}

func TestBreakTracker(t *testing.T) {
	b := NewBreakTracker(MaxBreakTime)
	a, c := tile.Cell{X: 1, Y: 1}, tile.Cell{X: 2, Y: 1}

	for i := 0; i < MaxBreakTime-10; i++ {
		if b.Hold(a) {
			t.Fatal("broke too early")
		}
	}
	// Switching target restarts the countdown.
	for i := 0; i < MaxBreakTime-1; i++ {
		if b.Hold(c) {
			t.Fatalf("broke after %d ticks on new target", i+1)
		}
	}
	if !b.Hold(c) {
		t.Fatal("did not break after MaxBreakTime ticks")
	}

	b.Hold(a)
	b.Release()
	if _, _, ok := b.Progress(); ok {
		t.Error("release left a break in progress")
	}
}

func TestBreakRemovesTile(t *testing.T) {
	g := tile.NewGrid(3, 3)
	g.Put(tile.New(1, 1, tile.Stone))
	got := Break(g, tile.Cell{X: 1, Y: 1}, rand.New(rand.NewSource(1)))
	if got == nil || got.State() != tile.Destroyed || g.At(1, 1) != nil {
		t.Errorf("Break left %v in grid, returned %+v", g.At(1, 1), got)
	}
	if Break(g, tile.Cell{X: 1, Y: 1}, nil) != nil {
		t.Error("breaking air returned a tile")
	}
}
