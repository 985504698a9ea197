package system

import (
	"time"

	"github.com/blockyworld/blocky/internal/core/event"
	coresys "github.com/blockyworld/blocky/internal/core/system"
	"github.com/blockyworld/blocky/internal/world"
)

// StreamSystem keeps the chunks around the player loaded.
// Phase 2 (Stream).
type StreamSystem struct {
	world *world.State
}

func NewStreamSystem(ws *world.State) *StreamSystem {
	return &StreamSystem{world: ws}
}

func (s *StreamSystem) Phase() coresys.Phase { return coresys.PhaseStream }

func (s *StreamSystem) Update(_ time.Duration) {
	ws := s.world
	loaded, unloaded := ws.Streamer.Update(ws.Player.Rect.CenterX())
	if loaded > 0 || unloaded > 0 {
		event.Emit(ws.Ctx.Bus, event.ChunksStreamed{Loaded: loaded, Unloaded: unloaded})
	}
}
