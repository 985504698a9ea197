package system

import (
	"context"
	"time"

	coresys "github.com/blockyworld/blocky/internal/core/system"
	"github.com/blockyworld/blocky/internal/persist"
	"github.com/blockyworld/blocky/internal/world"
	"go.uber.org/zap"
)

const saveTimeout = 5 * time.Second

// PersistenceSystem periodically auto-saves the world when the terrain or
// the player's position changed since the last save. Phase 7 (Persist).
type PersistenceSystem struct {
	world     *world.State
	store     persist.Store
	name      string
	log       *zap.Logger
	tickCount int
	interval  int // auto-save every N ticks
	lastPos   [2]int
	saved     bool // lastPos is valid
}

func NewPersistenceSystem(ws *world.State, store persist.Store, name string, log *zap.Logger, intervalTicks int) *PersistenceSystem {
	return &PersistenceSystem{
		world:    ws,
		store:    store,
		name:     name,
		log:      log,
		interval: intervalTicks,
	}
}

func (s *PersistenceSystem) Phase() coresys.Phase { return coresys.PhasePersist }

func (s *PersistenceSystem) Update(_ time.Duration) {
	if s.interval <= 0 {
		return
	}
	s.tickCount++
	if s.tickCount < s.interval {
		return
	}
	s.tickCount = 0
	if !s.dirty() {
		return
	}
	ctx, cancel := context.WithTimeout(context.Background(), saveTimeout)
	defer cancel()
	if err := s.Save(ctx); err != nil {
		// 存檔失敗不中斷遊戲，下次間隔再試
		s.log.Error("autosave failed", zap.String("world", s.name), zap.Error(err))
	}
}

// Save persists the world immediately, ignoring the dirty check.
// Called for graceful shutdown.
func (s *PersistenceSystem) Save(ctx context.Context) error {
	snap := s.world.Snapshot()
	if err := s.store.Save(ctx, s.name, snap); err != nil {
		return err
	}
	s.world.Dirty = false
	s.lastPos = snap.PlayerPos
	s.saved = true
	return nil
}

func (s *PersistenceSystem) dirty() bool {
	return s.world.Dirty || !s.saved || s.world.PlayerPos() != s.lastPos
}
