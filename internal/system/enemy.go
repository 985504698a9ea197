package system

import (
	"time"

	"github.com/blockyworld/blocky/internal/core/ecs"
	"github.com/blockyworld/blocky/internal/core/event"
	coresys "github.com/blockyworld/blocky/internal/core/system"
	"github.com/blockyworld/blocky/internal/entity"
	"github.com/blockyworld/blocky/internal/tile"
	"github.com/blockyworld/blocky/internal/world"
	"go.uber.org/zap"
)

// EnemySystem runs the enemy controllers and lands their club swings on
// the player. Enemies in unloaded chunks are frozen; dead enemies and
// enemies that fell off the map are queued for removal.
// Phase 3 (Update).
type EnemySystem struct {
	world *world.State
}

func NewEnemySystem(ws *world.State) *EnemySystem {
	return &EnemySystem{world: ws}
}

func (s *EnemySystem) Phase() coresys.Phase { return coresys.PhaseUpdate }

func (s *EnemySystem) Update(_ time.Duration) {
	ws := s.world
	target := ws.Player.Target()
	floor := float64(ws.Grid.Height() * tile.Size)

	ws.Enemies.Each(func(id ecs.EntityID, e *entity.Enemy) {
		if !ws.Live(e.Rect.CenterX()) {
			return
		}
		e.Update(ws.Grid, ws.Colliders(e.Rect), target, ws.Ctx.Rng)
		if e.Dead() || e.Rect.Top() > floor {
			ws.Entities.MarkForDestruction(id)
			return
		}
		if ws.Phase == world.Playing && e.Strike(ws.Player.Rect) {
			s.hit(e)
		}
	})
}

// hit applies one club strike through the player's damage policy.
func (s *EnemySystem) hit(e *entity.Enemy) {
	ws := s.world
	p := ws.Player
	dmg := ws.Ctx.Hooks.StrikeDamage(ws.Ctx.Settings.EnemyDamage, p.Health)
	before := p.Health
	if !p.TakeDamage(dmg) {
		return
	}
	event.Emit(ws.Ctx.Bus, event.PlayerHurt{
		Source: event.DamageEnemy,
		Amount: before - p.Health,
		Health: p.Health,
	})
	ws.Ctx.Log.Debug("enemy hit player",
		zap.Float64("damage", dmg),
		zap.Float64("health", p.Health),
		zap.Stringer("state", e.State))
}
