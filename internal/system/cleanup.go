package system

import (
	"time"

	coresys "github.com/blockyworld/blocky/internal/core/system"
	"github.com/blockyworld/blocky/internal/world"
)

// CleanupSystem flushes the deferred entity destruction queue at tick end
// and drives the death sequence. Phase 6 (Cleanup).
type CleanupSystem struct {
	world *world.State
}

func NewCleanupSystem(ws *world.State) *CleanupSystem {
	return &CleanupSystem{world: ws}
}

func (s *CleanupSystem) Phase() coresys.Phase { return coresys.PhaseCleanup }

func (s *CleanupSystem) Update(_ time.Duration) {
	ws := s.world
	ws.Entities.FlushDestroyQueue()

	switch ws.Phase {
	case world.Playing:
		if ws.Player.Dead() {
			ws.BeginDeath()
		}
	case world.Dying:
		ws.AdvanceDeath()
	}
}
