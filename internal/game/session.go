// Package game is the embedding surface of the simulation: one Session per
// open world, advanced one fixed tick at a time by the client loop.
package game

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/blockyworld/blocky/internal/core/event"
	coresys "github.com/blockyworld/blocky/internal/core/system"
	"github.com/blockyworld/blocky/internal/item"
	"github.com/blockyworld/blocky/internal/persist"
	"github.com/blockyworld/blocky/internal/render"
	"github.com/blockyworld/blocky/internal/system"
	"github.com/blockyworld/blocky/internal/tile"
	"github.com/blockyworld/blocky/internal/world"
	"github.com/go-gl/mathgl/mgl64"
)

// TickDuration is the simulated time of one Update.
const TickDuration = time.Second / 60

// InputState is the client's input for one tick.
type InputState = world.Input

// BrokenEvent describes a completed break and the item it dropped.
type BrokenEvent = event.TileBroken

var ErrNoStore = errors.New("session has no store")

// Session owns a world and the systems that advance it.
// Not safe for concurrent use; drive it from a single loop goroutine.
type Session struct {
	world  *world.State
	runner *coresys.Runner
	saver  *system.PersistenceSystem
}

// NewSession creates a session over raw. spawn is the player's top-left
// corner in pixels; nil picks a spawn on the surface near the middle of
// the map.
func NewSession(ctx *world.EngineContext, raw *tile.RawMap, spawn *mgl64.Vec2) *Session {
	ws := world.NewState(ctx, raw, spawn)

	runner := coresys.NewRunner()
	runner.Register(system.NewInputSystem(ws))
	runner.Register(system.NewEventSystem(ctx.Bus))
	runner.Register(system.NewStreamSystem(ws))
	runner.Register(system.NewPlayerSystem(ws))
	runner.Register(system.NewItemSystem(ws))
	runner.Register(system.NewEnemySystem(ws))
	runner.Register(system.NewDebrisSystem(ws))
	runner.Register(system.NewGrassSystem(ws))
	runner.Register(system.NewInteractionSystem(ws))
	runner.Register(system.NewCleanupSystem(ws))

	return &Session{world: ws, runner: runner}
}

// Restore creates a session from saved data.
func Restore(ctx *world.EngineContext, sd *persist.SaveData) (*Session, error) {
	raw, err := sd.RawMap()
	if err != nil {
		return nil, fmt.Errorf("restore world: %w", err)
	}
	spawn := mgl64.Vec2{float64(sd.PlayerPos[0]), float64(sd.PlayerPos[1])}
	return NewSession(ctx, raw, &spawn), nil
}

// EnableAutosave saves the world to store under name every interval
// ticks while it has unsaved changes.
func (s *Session) EnableAutosave(store persist.Store, name string, interval int) {
	s.saver = system.NewPersistenceSystem(s.world, store, name, s.world.Ctx.Log, interval)
	s.runner.Register(s.saver)
}

// Save writes the world to the autosave store now.
func (s *Session) Save(ctx context.Context) error {
	if s.saver == nil {
		return ErrNoStore
	}
	return s.saver.Save(ctx)
}

// Update advances the world one tick. It does nothing once the session is
// over.
func (s *Session) Update(in InputState) {
	if s.world.Phase == world.Over {
		return
	}
	s.world.Input = in
	s.runner.Tick(TickDuration)
}

// Render returns the draw list for a viewport whose top-left corner is
// camera.
func (s *Session) Render(camera mgl64.Vec2) []render.Command {
	return render.Frame(s.world, camera, render.Options{ShowReach: s.world.Input.ShowReach})
}

// Camera is the player-centred viewport position, clamped to the map.
func (s *Session) Camera() mgl64.Vec2 { return s.world.Camera }

// AttemptPlace places one kind at cell for the player, reporting whether
// it was placed.
func (s *Session) AttemptPlace(cell tile.Cell, kind item.Kind) bool {
	if s.world.Phase != world.Playing {
		return false
	}
	_, v := s.world.TryPlace(cell, kind)
	return v.OK()
}

// AttemptBreakTick holds break on cell for one tick. It returns the break
// event on the tick the tile breaks, nil otherwise.
func (s *Session) AttemptBreakTick(cell tile.Cell) *BrokenEvent {
	if s.world.Phase != world.Playing {
		return nil
	}
	ev, _ := s.world.BreakTick(cell)
	return ev
}

// PlayerView is the read-only player state the HUD draws.
type PlayerView struct {
	Health, MaxHealth float64
	Hotbar            [item.HotbarSize]item.Kind
	Counts            [item.HotbarSize]uint32
	Selected          int
	Inventory         map[item.Kind]uint32
	Invincible        bool
}

func (s *Session) Player() PlayerView {
	p := s.world.Player
	inv := p.Inventory
	v := PlayerView{
		Health:     p.Health,
		MaxHealth:  p.MaxHP,
		Hotbar:     inv.Hotbar(),
		Selected:   inv.Selected(),
		Inventory:  inv.Counts(),
		Invincible: p.Invincible > 0,
	}
	for i, k := range v.Hotbar {
		v.Counts[i] = inv.Count(k)
	}
	return v
}

// Snapshot returns the world in its persisted form.
func (s *Session) Snapshot() *persist.SaveData { return s.world.Snapshot() }

func (s *Session) Phase() world.Phase { return s.world.Phase }

// Ticks returns the number of completed ticks.
func (s *Session) Ticks() uint64 { return s.runner.Ticks() }

// World exposes the simulation state for tools and tests.
func (s *Session) World() *world.State { return s.world }

// Event hooks. Handlers run during the tick after the event happened.

func (s *Session) OnTileBroken(fn func(BrokenEvent)) { event.Subscribe(s.world.Ctx.Bus, fn) }

func (s *Session) OnTilePlaced(fn func(event.TilePlaced)) { event.Subscribe(s.world.Ctx.Bus, fn) }

func (s *Session) OnItemPickedUp(fn func(event.ItemPickedUp)) { event.Subscribe(s.world.Ctx.Bus, fn) }

func (s *Session) OnPlayerHurt(fn func(event.PlayerHurt)) { event.Subscribe(s.world.Ctx.Bus, fn) }

func (s *Session) OnPlayerDied(fn func(event.PlayerDied)) { event.Subscribe(s.world.Ctx.Bus, fn) }
