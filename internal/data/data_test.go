package data

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/blockyworld/blocky/internal/tile"
)

func writeFile(t *testing.T, name, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(path, []byte(body), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestLoadSpawnList(t *testing.T) {
	path := writeFile(t, "spawn_list.yaml", `
spawns:
  - column: 10
    count: 2
  - column: 40
    count: 1
    spread: 3
  - column: -5
    count: 1
`)
	tbl, err := LoadSpawnList(path, 32)
	if err != nil {
		t.Fatal(err)
	}
	if tbl.Count() != 4 {
		t.Errorf("Count() = %d, want 4", tbl.Count())
	}
	tests := []struct {
		chunk int
		want  int
	}{
		{0, 1},
		{1, 1},
		{-1, 1},
		{2, 0},
	}
	for _, tt := range tests {
		if got := len(tbl.ForChunk(tt.chunk)); got != tt.want {
			t.Errorf("ForChunk(%d) has %d entries, want %d", tt.chunk, got, tt.want)
		}
	}
	if s := tbl.ForChunk(1)[0]; s.Column != 40 || s.Spread != 3 {
		t.Errorf("chunk 1 entry = %+v", s)
	}
}

func TestLoadSpawnListRejectsBadCount(t *testing.T) {
	path := writeFile(t, "spawn_list.yaml", "spawns:\n  - column: 1\n    count: 0\n")
	if _, err := LoadSpawnList(path, 32); err == nil || !strings.Contains(err.Error(), "count") {
		t.Errorf("err = %v", err)
	}
}

func TestLoadPalette(t *testing.T) {
	path := writeFile(t, "palette.yaml", `
tiles:
  - tile: stone
    rune: "#"
    fg: white
    bg: gray
`)
	p, err := LoadPalette(path)
	if err != nil {
		t.Fatal(err)
	}
	if g, _ := p.Glyph(tile.Stone); g.Rune != "#" || g.Fg != "white" {
		t.Errorf("stone glyph = %+v", g)
	}
	if g, ok := p.Glyph(tile.Dirt); !ok || g.Rune == "" {
		t.Error("dirt lost its default glyph")
	}
	if _, ok := p.Glyph(tile.Air); ok {
		t.Error("air has a glyph")
	}
}

func TestLoadPaletteErrors(t *testing.T) {
	tests := []struct {
		name, body, want string
	}{
		{"unknown tile", "tiles:\n  - tile: lava\n    rune: x\n", "unknown tile"},
		{"air", "tiles:\n  - tile: air\n    rune: x\n", "unknown tile"},
		{"long rune", "tiles:\n  - tile: dirt\n    rune: xy\n", "one rune"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := LoadPalette(writeFile(t, "palette.yaml", tt.body))
			if err == nil || !strings.Contains(err.Error(), tt.want) {
				t.Errorf("err = %v, want %q", err, tt.want)
			}
		})
	}
}
