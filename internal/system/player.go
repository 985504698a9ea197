package system

import (
	"time"

	"github.com/blockyworld/blocky/internal/core/event"
	coresys "github.com/blockyworld/blocky/internal/core/system"
	"github.com/blockyworld/blocky/internal/world"
)

// PlayerSystem moves the player and follows it with the camera. Fall
// damage is applied inside the player's own update and reported here.
// Phase 3 (Update).
type PlayerSystem struct {
	world *world.State
}

func NewPlayerSystem(ws *world.State) *PlayerSystem {
	return &PlayerSystem{world: ws}
}

func (s *PlayerSystem) Phase() coresys.Phase { return coresys.PhaseUpdate }

func (s *PlayerSystem) Update(_ time.Duration) {
	ws := s.world
	if ws.Phase != world.Playing {
		return
	}
	p := ws.Player
	before := p.Health
	p.Update(ws.Colliders(p.Rect))
	if p.Health < before {
		event.Emit(ws.Ctx.Bus, event.PlayerHurt{
			Source: event.DamageFall,
			Amount: before - p.Health,
			Health: p.Health,
		})
	}
	ws.UpdateCamera()
}
