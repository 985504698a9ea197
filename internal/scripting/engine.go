package scripting

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/blockyworld/blocky/internal/item"
	"github.com/blockyworld/blocky/internal/tile"
	lua "github.com/yuin/gopher-lua"
	"go.uber.org/zap"
)

// Engine wraps a single gopher-lua VM holding the optional rule hooks.
// Single-goroutine access only (game loop).
type Engine struct {
	vm  *lua.LState
	log *zap.Logger
}

// NewEngine creates a Lua engine and loads all scripts from the given directory.
// A missing directory leaves every hook on its built-in rule.
func NewEngine(scriptsDir string, log *zap.Logger) (*Engine, error) {
	vm := lua.NewState(lua.Options{
		SkipOpenLibs: false,
	})

	// Set API version global
	vm.SetGlobal("API_VERSION", lua.LNumber(1))

	e := &Engine{vm: vm, log: log}

	// core 先載入，其餘子目錄皆為選用
	for _, sub := range []string{"core", "world", "combat"} {
		p := filepath.Join(scriptsDir, sub)
		if err := e.loadDir(p); err != nil {
			vm.Close()
			return nil, fmt.Errorf("load %s scripts: %w", sub, err)
		}
	}

	return e, nil
}

// loadDir loads all .lua files in a directory.
func (e *Engine) loadDir(dir string) error {
	entries, err := os.ReadDir(dir)
	if err != nil {
		if os.IsNotExist(err) {
			return nil // skip missing dirs
		}
		return err
	}
	for _, entry := range entries {
		if entry.IsDir() || filepath.Ext(entry.Name()) != ".lua" {
			continue
		}
		path := filepath.Join(dir, entry.Name())
		if err := e.vm.DoFile(path); err != nil {
			return fmt.Errorf("load %s: %w", path, err)
		}
		e.log.Debug("loaded lua script", zap.String("file", path))
	}
	return nil
}

// HasHook reports whether a global function with the given name is defined.
func (e *Engine) HasHook(name string) bool {
	_, ok := e.vm.GetGlobal(name).(*lua.LFunction)
	return ok
}

// TileDrop calls the Lua tile_drop(tile_name) hook. The hook returns an item
// name, "none" for no drop, or nil to keep the built-in drop.
func (e *Engine) TileDrop(t tile.Type) item.Kind {
	def := item.DropFor(t)
	fn, ok := e.vm.GetGlobal("tile_drop").(*lua.LFunction)
	if !ok {
		return def
	}

	if err := e.vm.CallByParam(lua.P{
		Fn:      fn,
		NRet:    1,
		Protect: true,
	}, lua.LString(t.String())); err != nil {
		e.log.Error("lua tile_drop error", zap.Error(err))
		return def
	}

	result := e.vm.Get(-1)
	e.vm.Pop(1)

	if result == lua.LNil {
		return def
	}
	name := lua.LVAsString(result)
	if name == "none" {
		return item.None
	}
	k, ok := item.ParseKind(name)
	if !ok {
		e.log.Warn("lua tile_drop returned unknown item",
			zap.String("tile", t.String()), zap.String("item", name))
		return def
	}
	return k
}

// StrikeDamage calls the Lua enemy_strike_damage(base, player_health) hook.
// Without the hook, or on error, the base damage is used. Negative results
// are clamped to zero.
func (e *Engine) StrikeDamage(base, playerHealth float64) float64 {
	fn, ok := e.vm.GetGlobal("enemy_strike_damage").(*lua.LFunction)
	if !ok {
		return base
	}

	if err := e.vm.CallByParam(lua.P{
		Fn:      fn,
		NRet:    1,
		Protect: true,
	}, lua.LNumber(base), lua.LNumber(playerHealth)); err != nil {
		e.log.Error("lua enemy_strike_damage error", zap.Error(err))
		return base
	}

	result := e.vm.Get(-1)
	e.vm.Pop(1)

	n, ok := result.(lua.LNumber)
	if !ok {
		e.log.Error("lua enemy_strike_damage returned non-number")
		return base
	}
	return max(float64(n), 0)
}

// Close shuts down the Lua VM.
func (e *Engine) Close() {
	e.vm.Close()
}
