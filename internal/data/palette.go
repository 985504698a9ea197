package data

import (
	"fmt"
	"os"
	"unicode/utf8"

	"github.com/blockyworld/blocky/internal/tile"
	"gopkg.in/yaml.v3"
)

// Glyph is how the terminal client draws one tile type. Colors are tcell
// color names ("green", "#8b5a2b").
type Glyph struct {
	Tile  string `yaml:"tile"`
	Rune  string `yaml:"rune"`
	Fg    string `yaml:"fg"`
	Bg    string `yaml:"bg"`
	Cover string `yaml:"cover"` // top-edge color, grass only
}

type paletteFile struct {
	Tiles []Glyph `yaml:"tiles"`
}

// Palette maps tile types to glyphs.
type Palette struct {
	glyphs map[tile.Type]Glyph
}

// LoadPalette loads tile glyphs from a YAML file. Types missing from the
// file keep their built-in glyph.
func LoadPalette(path string) (*Palette, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read palette: %w", err)
	}
	var f paletteFile
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("parse palette: %w", err)
	}
	p := DefaultPalette()
	for _, g := range f.Tiles {
		t, ok := tile.ParseType(g.Tile)
		if !ok || t == tile.Air {
			return nil, fmt.Errorf("palette: unknown tile %q", g.Tile)
		}
		if utf8.RuneCountInString(g.Rune) != 1 {
			return nil, fmt.Errorf("palette: tile %s needs exactly one rune, got %q", g.Tile, g.Rune)
		}
		p.glyphs[t] = g
	}
	return p, nil
}

// DefaultPalette returns the built-in glyphs.
func DefaultPalette() *Palette {
	return &Palette{glyphs: map[tile.Type]Glyph{
		tile.Dirt:  {Tile: "dirt", Rune: "▒", Fg: "#8b5a2b", Bg: "#5c3a1a"},
		tile.Grass: {Tile: "grass", Rune: "▒", Fg: "#8b5a2b", Bg: "#5c3a1a", Cover: "#22aa22"},
		tile.Stone: {Tile: "stone", Rune: "▓", Fg: "#a0a0a0", Bg: "#606060"},
		tile.Wood:  {Tile: "wood", Rune: "║", Fg: "#c08040", Bg: "#603010"},
		tile.Leaf:  {Tile: "leaf", Rune: "♣", Fg: "#30c030", Bg: "#105010"},
	}}
}

// Glyph returns the glyph for t; ok is false for air.
func (p *Palette) Glyph(t tile.Type) (Glyph, bool) {
	g, ok := p.glyphs[t]
	return g, ok
}

func (p *Palette) Count() int { return len(p.glyphs) }
