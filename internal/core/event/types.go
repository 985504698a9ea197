package event

import (
	"github.com/blockyworld/blocky/internal/core/ecs"
	"github.com/blockyworld/blocky/internal/item"
	"github.com/blockyworld/blocky/internal/tile"
)

// TileBroken is emitted when a held break completes.
type TileBroken struct {
	Cell tile.Cell
	Type tile.Type
	Drop item.Kind // item.None when nothing dropped
	Item ecs.EntityID
}

type TilePlaced struct {
	Cell tile.Cell
	Type tile.Type
}

type ItemPickedUp struct {
	Kind  item.Kind
	Count uint32 // inventory count after pickup
}

// DamageSource tells hurt listeners where damage came from.
type DamageSource uint8

const (
	DamageFall DamageSource = iota
	DamageEnemy
)

type PlayerHurt struct {
	Source DamageSource
	Amount float64
	Health float64
}

type PlayerDied struct {
	X, Y float64
}

type EnemySpawned struct {
	Entity ecs.EntityID
	Chunk  int
}

// ChunksStreamed summarizes one streaming pass that changed the loaded set.
type ChunksStreamed struct {
	Loaded, Unloaded int
}
