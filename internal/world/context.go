package world

import (
	"math/rand"

	"github.com/blockyworld/blocky/internal/chunk"
	"github.com/blockyworld/blocky/internal/core/event"
	"github.com/blockyworld/blocky/internal/data"
	"github.com/blockyworld/blocky/internal/item"
	"github.com/blockyworld/blocky/internal/rules"
	"github.com/blockyworld/blocky/internal/tile"
	"go.uber.org/zap"
)

// Hooks overrides individual built-in rules. The scripting engine
// satisfies it; BuiltinHooks is used when scripting is off.
type Hooks interface {
	TileDrop(t tile.Type) item.Kind
	StrikeDamage(base, playerHealth float64) float64
}

// BuiltinHooks applies the default rules unchanged.
type BuiltinHooks struct{}

func (BuiltinHooks) TileDrop(t tile.Type) item.Kind       { return item.DropFor(t) }
func (BuiltinHooks) StrikeDamage(base, _ float64) float64 { return base }

// Settings are the tunable simulation values, normally taken from the
// [sim] config section.
type Settings struct {
	LoadRadius    int
	ViewW, ViewH  float64 // viewport in pixels
	BreakTime     int
	Reach         rules.Reach
	EnemyDamage   float64
	GrassCooldown int
}

func DefaultSettings() Settings {
	return Settings{
		LoadRadius:    chunk.DefaultRadius,
		ViewW:         1200,
		ViewH:         800,
		BreakTime:     rules.MaxBreakTime,
		Reach:         rules.DefaultReach,
		EnemyDamage:   10,
		GrassCooldown: rules.GrassSpreadCooldown,
	}
}

// EngineContext carries the shared services every system needs.
// 所有系統共用，只在遊戲迴圈 goroutine 內存取。
type EngineContext struct {
	Log      *zap.Logger
	Rng      *rand.Rand
	Bus      *event.Bus
	Hooks    Hooks
	Spawns   *data.SpawnTable
	Settings Settings
}

// NewEngineContext returns a context with default settings, built-in
// hooks, an empty spawn table and a generator seeded with seed.
func NewEngineContext(log *zap.Logger, seed int64) *EngineContext {
	if log == nil {
		log = zap.NewNop()
	}
	return &EngineContext{
		Log:      log,
		Rng:      rand.New(rand.NewSource(seed)),
		Bus:      event.NewBus(),
		Hooks:    BuiltinHooks{},
		Spawns:   data.NewSpawnTable(chunk.Size),
		Settings: DefaultSettings(),
	}
}
