package system

import (
	"time"

	coresys "github.com/blockyworld/blocky/internal/core/system"
	"github.com/blockyworld/blocky/internal/world"
)

// DebrisSystem tumbles the player's remains during the death sequence.
// Phase 3 (Update).
type DebrisSystem struct {
	world *world.State
}

func NewDebrisSystem(ws *world.State) *DebrisSystem {
	return &DebrisSystem{world: ws}
}

func (s *DebrisSystem) Phase() coresys.Phase { return coresys.PhaseUpdate }

func (s *DebrisSystem) Update(_ time.Duration) {
	for _, d := range s.world.Debris {
		d.Update(s.world.Colliders(d.Rect))
	}
}
