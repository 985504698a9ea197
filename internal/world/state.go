package world

import (
	"math"

	"github.com/blockyworld/blocky/internal/chunk"
	"github.com/blockyworld/blocky/internal/core/ecs"
	"github.com/blockyworld/blocky/internal/core/event"
	"github.com/blockyworld/blocky/internal/entity"
	"github.com/blockyworld/blocky/internal/persist"
	"github.com/blockyworld/blocky/internal/physics"
	"github.com/blockyworld/blocky/internal/rules"
	"github.com/blockyworld/blocky/internal/tile"
	"github.com/go-gl/mathgl/mgl64"
	"go.uber.org/zap"
)

// Phase is the stage of a session's life.
type Phase uint8

const (
	Playing Phase = iota
	Dying         // debris animation running
	Over
)

func (p Phase) String() string {
	switch p {
	case Playing:
		return "playing"
	case Dying:
		return "dying"
	}
	return "over"
}

// Home is the chunk an enemy was spawned for. The enemy is removed when
// that chunk unloads.
type Home struct {
	Chunk int
}

// Input is the player's intent for one tick. Jump and Place are edge
// triggered, Break is held.
type Input struct {
	Left, Right bool
	Jump        bool
	Break       bool
	Place       bool
	Cursor      tile.Cell // target cell for break and place
	Slot        int       // 1..HotbarSize selects a slot, 0 keeps the current one
	Cycle       int       // hotbar scroll, -1 or +1
	ShowReach   bool      // draw the interaction box
}

// State holds the whole simulated world.
// Accessed only from the game loop goroutine; no locks.
type State struct {
	Ctx *EngineContext

	Raw      *tile.RawMap // terrain of unloaded columns
	Grid     *tile.Grid   // live tiles of loaded chunks
	Streamer *chunk.Streamer
	Player   *entity.Player

	Entities *ecs.World
	Enemies  *ecs.PtrComponentStore[entity.Enemy]
	Homes    *ecs.PtrComponentStore[Home]
	Items    *ecs.PtrComponentStore[entity.ItemDrop]
	Nearby   *AOIGrid // loose items by position
	Debris   []*entity.Debris

	Grass   *rules.Grass
	Breaker *rules.BreakTracker

	Input      Input
	Camera     mgl64.Vec2 // top-left of the viewport, in pixels
	Phase      Phase
	DeathTimer int

	Dirty bool // terrain changed since the last save
}

// NewState builds a world over raw with the player's top-left corner at
// spawn, or at a generated spawn point when spawn is nil. The chunks
// around the player are loaded before it returns.
func NewState(ctx *EngineContext, raw *tile.RawMap, spawn *mgl64.Vec2) *State {
	s := &State{
		Ctx:      ctx,
		Raw:      raw,
		Grid:     tile.NewGrid(raw.Width(), raw.Height()),
		Entities: ecs.NewWorld(),
		Enemies:  ecs.NewPtrComponentStore[entity.Enemy](),
		Homes:    ecs.NewPtrComponentStore[Home](),
		Items:    ecs.NewPtrComponentStore[entity.ItemDrop](),
		Nearby:   NewAOIGrid(),
		Grass:    rules.NewGrass(),
		Breaker:  rules.NewBreakTracker(ctx.Settings.BreakTime),
	}
	reg := s.Entities.Registry()
	reg.Register(s.Enemies)
	reg.Register(s.Homes)
	reg.Register(s.Items)

	if ctx.Settings.GrassCooldown > 0 {
		s.Grass.SpreadCooldown = ctx.Settings.GrassCooldown
	}

	pos := DefaultSpawn(raw, ctx.Rng)
	if spawn != nil {
		pos = *spawn
	}
	s.Player = entity.NewPlayer(pos[0], pos[1])

	s.Streamer = chunk.NewStreamer(raw, s.Grid, ctx.Settings.LoadRadius, ctx.Log)
	s.Streamer.OnLoad = s.spawnEnemies
	s.Streamer.OnUnload = s.despawnChunk
	s.Streamer.Update(s.Player.Rect.CenterX())
	s.UpdateCamera()

	ctx.Log.Info("world ready",
		zap.Int("width", raw.Width()),
		zap.Int("height", raw.Height()),
		zap.Float64("spawn_x", pos[0]),
		zap.Float64("spawn_y", pos[1]),
		zap.Int("tiles", s.Grid.Count()))
	return s
}

// TileRect returns the pixel rectangle of t.
func TileRect(t *tile.Tile) physics.Rect {
	return physics.NewRect(t.PixelBounds())
}

// Colliders returns the solid tile rectangles near r: two tiles beyond
// its left and top edges and three beyond its right and bottom edges.
func (s *State) Colliders(r physics.Rect) []physics.Rect {
	w := tile.Window{
		X0: int(math.Floor(r.Left()/tile.Size)) - 2,
		Y0: int(math.Floor(r.Top()/tile.Size)) - 2,
		X1: int(math.Floor(r.Right()/tile.Size)) + 3,
		Y1: int(math.Floor(r.Bottom()/tile.Size)) + 3,
	}
	var out []physics.Rect
	s.Grid.Each(w, func(t *tile.Tile) {
		if t.Type.Solid() {
			out = append(out, TileRect(t))
		}
	})
	return out
}

// ItemColliders returns what the item drop self collides with: the
// solid tiles around it and the loose items next to it.
func (s *State) ItemColliders(self ecs.EntityID, d *entity.ItemDrop) []physics.Rect {
	out := s.Colliders(d.Rect)
	for _, id := range s.Nearby.GetNearby(d.Rect.Center()) {
		if id == self {
			continue
		}
		if o, ok := s.Items.Get(id); ok {
			out = append(out, o.Rect)
		}
	}
	return out
}

// RemoveItem destroys a loose item at the end of the tick.
func (s *State) RemoveItem(id ecs.EntityID) {
	s.Nearby.Remove(id)
	s.Entities.MarkForDestruction(id)
}

// Live reports whether pixel column x lies in a loaded chunk. Entities
// outside loaded chunks are frozen.
func (s *State) Live(x float64) bool {
	return s.Streamer.IsLoaded(chunk.Index(x))
}

// Window returns the tile window visible through the viewport.
func (s *State) Window() tile.Window {
	st := s.Ctx.Settings
	return tile.ViewWindow(s.Camera[0], s.Camera[1], st.ViewW, st.ViewH)
}

// UpdateCamera centres the viewport on the player, clamped to the map.
func (s *State) UpdateCamera() {
	st := s.Ctx.Settings
	c := s.Player.Rect.Center()
	maxX := max(float64(s.Raw.Width()*tile.Size)-st.ViewW, 0)
	maxY := max(float64(s.Raw.Height()*tile.Size)-st.ViewH, 0)
	s.Camera = mgl64.Vec2{
		mgl64.Clamp(c[0]-st.ViewW/2, 0, maxX),
		mgl64.Clamp(c[1]-st.ViewH/2, 0, maxY),
	}
}

// Actor describes the player for the interaction rules.
func (s *State) Actor() rules.Actor {
	return rules.Actor{
		Body:  s.Player.Rect,
		Eye:   s.Player.HeadCell(),
		Reach: s.Ctx.Settings.Reach,
	}
}

// Flatten returns the persisted form of the terrain.
func (s *State) Flatten() [][]int {
	return s.Grid.Flatten(s.Raw, s.Streamer.ColumnLive)
}

// Snapshot returns the savable state: flattened terrain and the player's
// top-left corner in whole pixels.
func (s *State) Snapshot() *persist.SaveData {
	return &persist.SaveData{
		MapData:   s.Flatten(),
		PlayerPos: s.PlayerPos(),
	}
}

// PlayerPos is the player's top-left corner rounded down to whole pixels.
func (s *State) PlayerPos() [2]int {
	r := s.Player.Rect
	return [2]int{int(math.Floor(r.X)), int(math.Floor(r.Y))}
}

// BeginDeath shatters the player and starts the debris animation.
func (s *State) BeginDeath() {
	if s.Phase != Playing {
		return
	}
	s.ReleaseBreak()
	s.Phase = Dying
	s.DeathTimer = entity.DeathTicks
	s.Debris = s.Player.Shatter(s.Ctx.Rng)

	c := s.Player.Rect.Center()
	event.Emit(s.Ctx.Bus, event.PlayerDied{X: c[0], Y: c[1]})
	s.Ctx.Log.Info("player died", zap.Float64("x", c[0]), zap.Float64("y", c[1]))
}

// AdvanceDeath counts down the debris animation and ends the session
// when it runs out.
func (s *State) AdvanceDeath() {
	if s.Phase != Dying {
		return
	}
	s.DeathTimer--
	if s.DeathTimer <= 0 {
		s.Phase = Over
		s.Debris = nil
	}
}
