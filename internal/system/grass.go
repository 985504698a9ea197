package system

import (
	"time"

	coresys "github.com/blockyworld/blocky/internal/core/system"
	"github.com/blockyworld/blocky/internal/world"
)

// GrassSystem spreads and decays grass inside the visible window.
// Off-screen grass is left alone. Phase 4 (Mutate).
type GrassSystem struct {
	world *world.State
}

func NewGrassSystem(ws *world.State) *GrassSystem {
	return &GrassSystem{world: ws}
}

func (s *GrassSystem) Phase() coresys.Phase { return coresys.PhaseMutate }

func (s *GrassSystem) Update(_ time.Duration) {
	ws := s.world
	spread, decayed := ws.Grass.Tick(ws.Grid, ws.Window(), ws.Ctx.Rng)
	if spread > 0 || decayed > 0 {
		ws.Dirty = true
	}
}
