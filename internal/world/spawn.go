package world

import (
	"math/rand"

	"github.com/blockyworld/blocky/internal/chunk"
	"github.com/blockyworld/blocky/internal/core/ecs"
	"github.com/blockyworld/blocky/internal/core/event"
	"github.com/blockyworld/blocky/internal/entity"
	"github.com/blockyworld/blocky/internal/gen"
	"github.com/blockyworld/blocky/internal/item"
	"github.com/blockyworld/blocky/internal/tile"
	"github.com/go-gl/mathgl/mgl64"
	"go.uber.org/zap"
)

// DefaultSpawn drops the player three tiles above the ground of a random
// column in the middle half of the map. An all-air column falls back to
// the centre of the map.
func DefaultSpawn(raw *tile.RawMap, rng *rand.Rand) mgl64.Vec2 {
	x := gen.SpawnColumn(raw.Width(), rng)
	if px, py, ok := gen.FindSpawn(raw, x); ok {
		return mgl64.Vec2{px, py}
	}
	return mgl64.Vec2{
		float64(raw.Width() * tile.Size / 2),
		float64(raw.Height() * tile.Size / 2),
	}
}

// SpawnItem puts a loose item of kind k centred on c.
func (s *State) SpawnItem(c mgl64.Vec2, k item.Kind) ecs.EntityID {
	id := s.Entities.CreateEntity()
	d := entity.NewItemDrop(c, k, s.Ctx.Rng)
	s.Items.Set(id, d)
	s.Nearby.Add(id, d.Rect.Center())
	return id
}

// SpawnEnemy stands an enemy on top of the first tile of column x.
// It returns false when the column holds no tile.
func (s *State) SpawnEnemy(x, home int, health float64) (ecs.EntityID, bool) {
	y, ok := s.surface(x)
	if !ok {
		return 0, false
	}
	e := entity.NewEnemy(float64(x*tile.Size)+tile.Size/2, float64(y*tile.Size))
	if health > 0 {
		e.Health, e.MaxHP = health, health
	}
	id := s.Entities.CreateEntity()
	s.Enemies.Set(id, e)
	s.Homes.Set(id, &Home{Chunk: home})
	event.Emit(s.Ctx.Bus, event.EnemySpawned{Entity: id, Chunk: home})
	return id, true
}

// surface returns the row of the topmost live tile in column x.
func (s *State) surface(x int) (int, bool) {
	for y := 0; y < s.Grid.Height(); y++ {
		if s.Grid.Occupied(x, y) {
			return y, true
		}
	}
	return 0, false
}

// spawnEnemies places the spawn list entries of chunk c. Spread offsets
// are kept inside the chunk so every enemy lands on loaded terrain.
func (s *State) spawnEnemies(c int) {
	entries := s.Ctx.Spawns.ForChunk(c)
	if len(entries) == 0 {
		return
	}
	x0, x1 := chunk.Span(c)
	x0, x1 = max(x0, 0), min(x1, s.Raw.Width())

	n := 0
	for _, e := range entries {
		for i := 0; i < e.Count; i++ {
			x := e.Column
			if e.Spread > 0 {
				x += s.Ctx.Rng.Intn(2*e.Spread+1) - e.Spread
			}
			x = min(max(x, x0), x1-1)
			if _, ok := s.SpawnEnemy(x, c, e.Health); ok {
				n++
			}
		}
	}
	s.Ctx.Log.Debug("enemies spawned", zap.Int("chunk", c), zap.Int("count", n))
}

// despawnChunk removes the enemies that belong to chunk c or stand in it.
// Loose items stay and are frozen until the chunk returns.
func (s *State) despawnChunk(c int) {
	ecs.Each2(s.Enemies, s.Homes, func(id ecs.EntityID, e *entity.Enemy, h *Home) {
		if h.Chunk == c || chunk.Index(e.Rect.CenterX()) == c {
			s.Entities.MarkForDestruction(id)
		}
	})
}
