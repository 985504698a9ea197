package gen

import (
	"math/rand"
	"testing"

	"github.com/blockyworld/blocky/internal/tile"
)

func smallParams(seed int64) Params {
	p := DefaultParams(seed)
	p.Width, p.Height = 200, 60
	return p
}

func surfaceOf(raw *tile.RawMap, x int) int {
	for y := 0; y < raw.Height(); y++ {
		if t := raw.At(x, y); t == tile.Dirt || t == tile.Stone {
			return y
		}
	}
	return -1
}

func TestSurfaceClamped(t *testing.T) {
	for _, seed := range []int64{1, 7, 42, 1234} {
		p := smallParams(seed)
		p.TreeChance = 0
		raw := Generate(p)
		for x := 0; x < raw.Width(); x++ {
			s := surfaceOf(raw, x)
			if s < edgeMargin || s > raw.Height()-edgeMargin {
				t.Fatalf("seed %d column %d: surface %d outside [%d, %d]", seed, x, s, edgeMargin, raw.Height()-edgeMargin)
			}
		}
	}
}

func TestTerrainDeterministic(t *testing.T) {
	a := smallParams(99)
	a.TreeChance = 0
	b := a

	ra, rb := Generate(a), Generate(b)
	for x := 0; x < ra.Width(); x++ {
		for y := 0; y < ra.Height(); y++ {
			if ra.At(x, y) != rb.At(x, y) {
				t.Fatalf("cell (%d,%d) differs: %v vs %v", x, y, ra.At(x, y), rb.At(x, y))
			}
		}
	}
}

func TestSeededTreesReproducible(t *testing.T) {
	a := smallParams(5)
	a.TreeRand = rand.New(rand.NewSource(3))
	b := smallParams(5)
	b.TreeRand = rand.New(rand.NewSource(3))

	ra, rb := Generate(a), Generate(b)
	for x := 0; x < ra.Width(); x++ {
		for y := 0; y < ra.Height(); y++ {
			if ra.At(x, y) != rb.At(x, y) {
				t.Fatalf("cell (%d,%d) differs with identical tree sources", x, y)
			}
		}
	}
}

func TestDirtAboveStone(t *testing.T) {
	p := smallParams(11)
	p.TreeChance = 0
	p.CaveThreshold = 2 // no caves
	raw := Generate(p)
	for x := 0; x < raw.Width(); x++ {
		s := surfaceOf(raw, x)
		dirt := 0
		for y := s; y < raw.Height() && raw.At(x, y) == tile.Dirt; y++ {
			dirt++
		}
		if dirt < minDirtDepth || dirt > maxDirtDepth {
			t.Fatalf("column %d: %d dirt tiles", x, dirt)
		}
		for y := s + dirt; y < raw.Height(); y++ {
			if raw.At(x, y) != tile.Stone {
				t.Fatalf("column %d row %d: %v below the dirt layer", x, y, raw.At(x, y))
			}
		}
	}
}

func TestCavesStayBelowSurface(t *testing.T) {
	p := smallParams(21)
	p.TreeChance = 0
	p.CaveThreshold = 0 // carve everything eligible
	raw := Generate(p)
	for x := 0; x < raw.Width(); x++ {
		s := surfaceOf(raw, x)
		for y := s; y <= s+caveClearance; y++ {
			if raw.At(x, y) == tile.Air {
				t.Fatalf("column %d: air at row %d within %d rows of surface %d", x, y, caveClearance, s)
			}
		}
	}
}

func TestTreesGrowOnAir(t *testing.T) {
	p := smallParams(8)
	p.TreeChance = 1
	p.TreeRand = rand.New(rand.NewSource(8))
	raw := Generate(p)

	plain := smallParams(8)
	plain.TreeChance = 0
	base := Generate(plain)

	wood := 0
	for x := 0; x < raw.Width(); x++ {
		for y := 0; y < raw.Height(); y++ {
			got := raw.At(x, y)
			if got == tile.Wood {
				wood++
			}
			if (got == tile.Leaf || got == tile.Wood) && base.At(x, y) != tile.Air {
				t.Fatalf("(%d,%d): %v replaced %v", x, y, got, base.At(x, y))
			}
		}
	}
	if wood == 0 {
		t.Error("no trunks planted with chance 1")
	}
}

func TestFindSpawn(t *testing.T) {
	raw, err := tile.FromRows([][]int{
		{0, 0, 0},
		{0, 0, 0},
		{0, 0, 0},
		{0, 0, 0},
		{0, 2, 0},
	})
	if err != nil {
		t.Fatal(err)
	}
	x, y, ok := FindSpawn(raw, 1)
	if !ok || x != tile.Size || y != tile.Size {
		t.Errorf("FindSpawn(1) = %v, %v, %v", x, y, ok)
	}
	if _, _, ok := FindSpawn(raw, 0); ok {
		t.Error("empty column produced a spawn")
	}
	if _, _, ok := FindSpawn(raw, 5); ok {
		t.Error("column off the map produced a spawn")
	}
}
