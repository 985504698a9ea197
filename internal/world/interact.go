package world

import (
	"github.com/blockyworld/blocky/internal/core/ecs"
	"github.com/blockyworld/blocky/internal/core/event"
	"github.com/blockyworld/blocky/internal/entity"
	"github.com/blockyworld/blocky/internal/item"
	"github.com/blockyworld/blocky/internal/rules"
	"github.com/blockyworld/blocky/internal/tile"
	"github.com/go-gl/mathgl/mgl64"
	"go.uber.org/zap"
)

// TryPlace puts one k from the inventory at cell c. Rejected requests
// leave the world untouched and report why.
func (s *State) TryPlace(c tile.Cell, k item.Kind) (*event.TilePlaced, rules.Verdict) {
	t, ok := k.Places()
	if !ok {
		return nil, rules.NoItem
	}
	v := rules.CanPlace(s.Grid, s.Actor(), c, s.Player.Inventory.Count(k))
	if !v.OK() {
		s.Ctx.Log.Debug("place rejected",
			zap.Int("x", c.X), zap.Int("y", c.Y),
			zap.Stringer("item", k), zap.Stringer("reason", v))
		return nil, v
	}

	s.Player.Inventory.Take(k)
	s.Grid.Put(tile.New(c.X, c.Y, t))
	s.Player.StartPlacing()
	s.Dirty = true

	ev := event.TilePlaced{Cell: c, Type: t}
	event.Emit(s.Ctx.Bus, ev)
	return &ev, rules.Allowed
}

// BreakTick advances a held break on c by one tick. When the countdown
// completes the tile is removed and its drop spawned at the tile centre.
// A rejected tick cancels any break in progress.
func (s *State) BreakTick(c tile.Cell) (*event.TileBroken, rules.Verdict) {
	if v := rules.CanBreak(s.Grid, s.Actor(), c); !v.OK() {
		s.ReleaseBreak()
		return nil, v
	}
	s.Player.StartBreaking()
	if !s.Breaker.Hold(c) {
		return nil, rules.Allowed
	}

	t := rules.Break(s.Grid, c, s.Ctx.Rng)
	s.Dirty = true
	ev := event.TileBroken{Cell: c, Type: t.Type, Drop: s.Ctx.Hooks.TileDrop(t.Type)}
	if ev.Drop != item.None {
		cx, cy := c.Center()
		ev.Item = s.SpawnItem(mgl64.Vec2{cx, cy}, ev.Drop)
	}
	event.Emit(s.Ctx.Bus, ev)
	s.Ctx.Log.Debug("tile broken",
		zap.Int("x", c.X), zap.Int("y", c.Y),
		zap.Stringer("type", t.Type), zap.Stringer("drop", ev.Drop))
	return &ev, rules.Allowed
}

// ReleaseBreak cancels the break countdown.
func (s *State) ReleaseBreak() {
	s.Breaker.Release()
	s.Player.StopBreaking()
}

// TryPickup moves d into the inventory when it touches the player and
// the player can see it.
func (s *State) TryPickup(id ecs.EntityID, d *entity.ItemDrop) bool {
	if !d.Rect.Overlaps(s.Player.Rect) {
		return false
	}
	cell := tile.CellAt(d.Rect.CenterX(), d.Rect.CenterY())
	if !s.Player.Target().VisibleFrom(s.Grid, cell) {
		return false
	}
	inv := s.Player.Inventory
	inv.Add(d.Kind, 1)
	s.RemoveItem(id)
	event.Emit(s.Ctx.Bus, event.ItemPickedUp{Kind: d.Kind, Count: inv.Count(d.Kind)})
	return true
}
