package system

import (
	"time"

	coresys "github.com/blockyworld/blocky/internal/core/system"
	"github.com/blockyworld/blocky/internal/world"
)

// InteractionSystem resolves the tick's break and place requests against
// the grid after everything has moved. Phase 5 (Resolve).
type InteractionSystem struct {
	world *world.State
}

func NewInteractionSystem(ws *world.State) *InteractionSystem {
	return &InteractionSystem{world: ws}
}

func (s *InteractionSystem) Phase() coresys.Phase { return coresys.PhaseResolve }

func (s *InteractionSystem) Update(_ time.Duration) {
	ws := s.world
	if ws.Phase != world.Playing {
		return
	}
	in := ws.Input
	if in.Break {
		ws.BreakTick(in.Cursor)
	} else {
		ws.ReleaseBreak()
	}
	if in.Place {
		ws.TryPlace(in.Cursor, ws.Player.Inventory.SelectedKind())
	}
}
