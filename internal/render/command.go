// Package render turns the world into a flat list of draw commands in
// screen space. It knows nothing about the output device; the terminal
// client maps each command onto cells and colours.
package render

import (
	"github.com/blockyworld/blocky/internal/entity"
	"github.com/blockyworld/blocky/internal/item"
	"github.com/blockyworld/blocky/internal/physics"
	"github.com/blockyworld/blocky/internal/tile"
)

// Kind says what a command draws.
type Kind uint8

const (
	KindTile     Kind = iota // Rect filled with Tile
	KindGrassCap             // grass strip along the top of a tile
	KindCrack                // line from (X1,Y1) to (X2,Y2)
	KindBreakBar             // Progress of the break in Rect
	KindPreview              // placement outline, Valid tells the verdict
	KindItem                 // loose Item, rotated by Angle
	KindPlayer               // one player body Part
	KindEnemy                // one enemy body Part
	KindClub                 // enemy club, rotated by Angle
	KindAlert                // Glyph above an enemy head
	KindDebris               // tumbling player Part
	KindReach                // interaction box outline
)

var kindNames = [...]string{
	"tile", "grass_cap", "crack", "break_bar", "preview", "item",
	"player", "enemy", "club", "alert", "debris", "reach",
}

func (k Kind) String() string {
	if int(k) < len(kindNames) {
		return kindNames[k]
	}
	return "unknown"
}

// Command is one draw primitive. Only the fields relevant to Kind are set.
// All coordinates are screen pixels (world minus camera).
type Command struct {
	Kind Kind
	Rect physics.Rect

	X1, Y1, X2, Y2 float64 // crack segment

	Tile     tile.Type
	Item     item.Kind
	Part     entity.Part
	Angle    float64 // degrees
	Progress float64 // 0..1
	Valid    bool
	Flash    bool // invincibility blink
	Glyph    rune
}
