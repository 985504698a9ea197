package system

import (
	"time"

	coresys "github.com/blockyworld/blocky/internal/core/system"
	"github.com/blockyworld/blocky/internal/entity"
	"github.com/blockyworld/blocky/internal/world"
)

// InputSystem applies the tick's input to the player: hotbar selection,
// steering and jumps. Break and place requests are left for
// InteractionSystem. Phase 0 (Input).
type InputSystem struct {
	world *world.State
}

func NewInputSystem(ws *world.State) *InputSystem {
	return &InputSystem{world: ws}
}

func (s *InputSystem) Phase() coresys.Phase { return coresys.PhaseInput }

func (s *InputSystem) Update(_ time.Duration) {
	if s.world.Phase != world.Playing {
		return
	}
	in := s.world.Input
	p := s.world.Player

	if in.Slot > 0 {
		p.Inventory.Select(in.Slot - 1)
	}
	if in.Cycle != 0 {
		p.Inventory.Cycle(in.Cycle)
	}
	p.Controls = entity.Controls{Left: in.Left, Right: in.Right}
	if in.Jump {
		p.Jump()
	}
}
