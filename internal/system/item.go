package system

import (
	"time"

	"github.com/blockyworld/blocky/internal/core/ecs"
	coresys "github.com/blockyworld/blocky/internal/core/system"
	"github.com/blockyworld/blocky/internal/entity"
	"github.com/blockyworld/blocky/internal/tile"
	"github.com/blockyworld/blocky/internal/world"
)

// ItemSystem moves loose items and hands them to the player on contact.
// Items settle against tiles and against each other.
// Phase 3 (Update).
type ItemSystem struct {
	world *world.State
}

func NewItemSystem(ws *world.State) *ItemSystem {
	return &ItemSystem{world: ws}
}

func (s *ItemSystem) Phase() coresys.Phase { return coresys.PhaseUpdate }

func (s *ItemSystem) Update(_ time.Duration) {
	ws := s.world
	target := ws.Player.Target()
	floor := float64(ws.Grid.Height() * tile.Size)

	ws.Items.Each(func(id ecs.EntityID, d *entity.ItemDrop) {
		if !ws.Live(d.Rect.CenterX()) {
			return
		}
		others := ws.ItemColliders(id, d)
		d.CheckStability(others)
		d.Update(others, target)
		if d.Rect.Top() > floor {
			ws.RemoveItem(id)
			return
		}
		ws.Nearby.Move(id, d.Rect.Center())
		if ws.Phase == world.Playing {
			ws.TryPickup(id, d)
		}
	})
}
