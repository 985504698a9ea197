package tile

import (
	"math/rand"
	"reflect"
	"testing"
)

func TestMaxHealth(t *testing.T) {
	tests := []struct {
		typ  Type
		want int
	}{
		{Dirt, 100},
		{Grass, 100},
		{Stone, 200},
		{Wood, 100},
		{Leaf, 100},
	}
	for _, tt := range tests {
		t.Run(tt.typ.String(), func(t *testing.T) {
			tl := New(0, 0, tt.typ)
			if tl.MaxHealth != tt.want || tl.Health != tt.want {
				t.Errorf("New(%v) health %d/%d, want %d/%d", tt.typ, tl.Health, tl.MaxHealth, tt.want, tt.want)
			}
		})
	}
}

func TestRetypeKeepsStoneInvariant(t *testing.T) {
	tl := New(1, 1, Stone)
	tl.Retype(Dirt)
	if tl.MaxHealth != 100 || tl.Health != 100 {
		t.Errorf("stone->dirt health %d/%d, want 100/100", tl.Health, tl.MaxHealth)
	}
}

func TestDamageStates(t *testing.T) {
	rng := rand.New(rand.NewSource(1))
	tl := New(3, 4, Dirt)
	if tl.State() != Pristine || tl.Crack() != nil {
		t.Fatalf("fresh tile state %v crack %v", tl.State(), tl.Crack())
	}

	if tl.Damage(40, rng) {
		t.Fatal("40 damage should not destroy a dirt tile")
	}
	if tl.State() != Cracking {
		t.Errorf("state = %v, want cracking", tl.State())
	}
	pattern := tl.Crack()
	if len(pattern) != crackSegments {
		t.Fatalf("crack has %d segments, want %d", len(pattern), crackSegments)
	}
	// 1 - 60/100 = 0.4 of 15 segments
	if got := len(tl.VisibleCracks()); got != 6 {
		t.Errorf("visible cracks = %d, want 6", got)
	}

	tl.Damage(10, rng)
	if &tl.Crack()[0] != &pattern[0] {
		t.Error("crack pattern regenerated on second hit")
	}

	if !tl.Damage(500, rng) {
		t.Error("overkill should destroy")
	}
	if tl.Health != 0 || tl.State() != Destroyed {
		t.Errorf("health %d state %v, want 0 destroyed", tl.Health, tl.State())
	}
}

func TestCrackStaysInsideTile(t *testing.T) {
	rng := rand.New(rand.NewSource(7))
	for i := 0; i < 50; i++ {
		for _, s := range generateCrack(rng) {
			for _, v := range []float64{s.X1, s.Y1, s.X2, s.Y2} {
				if v < 0 || v > Size {
					t.Fatalf("segment %+v leaves the tile", s)
				}
			}
		}
	}
}

func TestCellAt(t *testing.T) {
	tests := []struct {
		x, y float64
		want Cell
	}{
		{0, 0, Cell{0, 0}},
		{39.9, 40, Cell{0, 1}},
		{-0.5, 81, Cell{-1, 2}},
		{-40, -41, Cell{-1, -2}},
	}
	for _, tt := range tests {
		if got := CellAt(tt.x, tt.y); got != tt.want {
			t.Errorf("CellAt(%v, %v) = %v, want %v", tt.x, tt.y, got, tt.want)
		}
	}
}

func TestFromRows(t *testing.T) {
	tests := []struct {
		name    string
		rows    [][]int
		wantErr bool
	}{
		{"ok", [][]int{{0, 1}, {3, 5}}, false},
		{"empty", nil, true},
		{"ragged", [][]int{{0, 1}, {3}}, true},
		{"unknown code", [][]int{{0, 9}}, true},
		{"negative", [][]int{{-1, 0}}, true},
		{"wraps to stone", [][]int{{0, 259}}, true},
		{"wraps to air", [][]int{{256, 1}}, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := FromRows(tt.rows)
			if (err != nil) != tt.wantErr {
				t.Errorf("FromRows() err = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestViewWindowStartsAtCamera(t *testing.T) {
	tests := []struct {
		name   string
		cx, cy float64
		want   Window
	}{
		{"origin", 0, 0, Window{X0: 0, Y0: 0, X1: 12, Y1: 8}},
		{"mid tile", Size * 3.5, Size * 2.25, Window{X0: 3, Y0: 2, X1: 15, Y1: 10}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ViewWindow(tt.cx, tt.cy, Size*10, Size*6)
			if got != tt.want {
				t.Errorf("ViewWindow() = %+v, want %+v", got, tt.want)
			}
		})
	}
}

func TestFlattenGrassAndUnloaded(t *testing.T) {
	raw, err := FromRows([][]int{
		{0, 0, 0},
		{1, 1, 1},
		{3, 3, 3},
	})
	if err != nil {
		t.Fatal(err)
	}
	g := NewGrid(3, 3)
	// Column 0 and 1 are live; column 2 stays unloaded.
	for x := 0; x < 2; x++ {
		g.Put(New(x, 1, Grass))
		g.Put(New(x, 2, Stone))
	}
	g.Remove(1, 2)
	g.Put(New(0, 0, Wood))

	got := g.Flatten(raw, func(x int) bool { return x < 2 })
	want := [][]int{
		{4, 0, 0},
		{1, 1, 1},
		{3, 0, 3},
	}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("Flatten() = %v, want %v", got, want)
	}
}

func TestGridOutOfRange(t *testing.T) {
	g := NewGrid(2, 2)
	g.Put(New(5, 5, Dirt))
	if g.Count() != 0 {
		t.Errorf("out-of-range Put stored a tile")
	}
	if g.At(-1, 0) != nil || g.Remove(9, 9) != nil || g.SolidAt(2, 0) {
		t.Error("out-of-range reads must be empty")
	}
}

func TestCrackPatternStablePerCell(t *testing.T) {
	a := CrackPattern(Cell{X: 3, Y: 9})
	if len(a) != crackSegments || !reflect.DeepEqual(a, CrackPattern(Cell{X: 3, Y: 9})) {
		t.Fatalf("pattern not stable: %d segments", len(a))
	}
	if reflect.DeepEqual(a, CrackPattern(Cell{X: 4, Y: 9})) {
		t.Error("neighbouring cells share a pattern")
	}
}
