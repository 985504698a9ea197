package scripting

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/blockyworld/blocky/internal/item"
	"github.com/blockyworld/blocky/internal/tile"
	"go.uber.org/zap"
)

func newTestEngine(t *testing.T, src string) *Engine {
	t.Helper()
	dir := t.TempDir()
	if src != "" {
		if err := os.MkdirAll(filepath.Join(dir, "world"), 0o755); err != nil {
			t.Fatal(err)
		}
		if err := os.WriteFile(filepath.Join(dir, "world", "rules.lua"), []byte(src), 0o644); err != nil {
			t.Fatal(err)
		}
	}
	e, err := NewEngine(dir, zap.NewNop())
	if err != nil {
		t.Fatal(err)
	}
	t.Cleanup(e.Close)
	return e
}

func TestBuiltinRulesWithoutScripts(t *testing.T) {
	e := newTestEngine(t, "")
	if e.HasHook("tile_drop") {
		t.Error("hook defined without scripts")
	}
	if got := e.TileDrop(tile.Grass); got != item.Dirt {
		t.Errorf("TileDrop(grass) = %v, want dirt", got)
	}
	if got := e.StrikeDamage(10, 50); got != 10 {
		t.Errorf("StrikeDamage = %v, want 10", got)
	}
}

func TestTileDropHook(t *testing.T) {
	e := newTestEngine(t, `
function tile_drop(name)
  if name == "leaf" then return "none" end
  if name == "stone" then return "dirt" end
  if name == "wood" then return "lava" end
  return nil
end
`)
	tests := []struct {
		in   tile.Type
		want item.Kind
	}{
		{tile.Leaf, item.None},
		{tile.Stone, item.Dirt},
		{tile.Wood, item.Wood}, // unknown name falls back
		{tile.Dirt, item.Dirt},
	}
	for _, tt := range tests {
		if got := e.TileDrop(tt.in); got != tt.want {
			t.Errorf("TileDrop(%v) = %v, want %v", tt.in, got, tt.want)
		}
	}
}

func TestStrikeDamageHook(t *testing.T) {
	e := newTestEngine(t, `
function enemy_strike_damage(base, health)
  if health < 20 then return -5 end
  return base * 2
end
`)
	if got := e.StrikeDamage(10, 100); got != 20 {
		t.Errorf("StrikeDamage(10, 100) = %v, want 20", got)
	}
	if got := e.StrikeDamage(10, 10); got != 0 {
		t.Errorf("negative damage not clamped: %v", got)
	}
}

func TestHookErrorFallsBack(t *testing.T) {
	e := newTestEngine(t, `
function enemy_strike_damage(base, health)
  error("boom")
end
`)
	if got := e.StrikeDamage(10, 100); got != 10 {
		t.Errorf("StrikeDamage after error = %v, want base", got)
	}
}

func TestBadScriptFailsLoad(t *testing.T) {
	dir := t.TempDir()
	os.MkdirAll(filepath.Join(dir, "core"), 0o755)
	os.WriteFile(filepath.Join(dir, "core", "bad.lua"), []byte("function ("), 0o644)
	if _, err := NewEngine(dir, zap.NewNop()); err == nil {
		t.Error("syntax error did not fail NewEngine")
	}
}

func TestShippedScriptsKeepBuiltinRules(t *testing.T) {
	e, err := NewEngine("../../scripts", zap.NewNop())
	if err != nil {
		t.Fatal(err)
	}
	defer e.Close()
	for _, health := range []float64{100, 10, 5, 1} {
		if got := e.StrikeDamage(10, health); got != 10 {
			t.Errorf("StrikeDamage(10, %v) = %v, want 10", health, got)
		}
	}
	if got := e.TileDrop(tile.Grass); got != item.Dirt {
		t.Errorf("TileDrop(grass) = %v, want dirt", got)
	}
}
