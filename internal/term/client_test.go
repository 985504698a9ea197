package term

import (
	"testing"

	"github.com/blockyworld/blocky/internal/data"
	"github.com/blockyworld/blocky/internal/game"
	"github.com/blockyworld/blocky/internal/item"
	"github.com/blockyworld/blocky/internal/physics"
	"github.com/blockyworld/blocky/internal/render"
	"github.com/blockyworld/blocky/internal/tile"
	"github.com/blockyworld/blocky/internal/world"
	"github.com/gdamore/tcell/v2"
)

func newClient(t *testing.T) (*Client, tcell.SimulationScreen) {
	t.Helper()
	screen := tcell.NewSimulationScreen("UTF-8")
	if err := screen.Init(); err != nil {
		t.Fatal(err)
	}
	screen.SetSize(80, 24)
	t.Cleanup(screen.Fini)
	return NewClient(screen, data.DefaultPalette()), screen
}

func TestHeldKeyExpires(t *testing.T) {
	c, _ := newClient(t)
	head := tile.Cell{X: 10, Y: 5}

	c.handleKey(tcell.KeyRune, 'd')
	for i := 0; i < holdTicks; i++ {
		if in := c.Input(head); !in.Right || in.Left {
			t.Fatalf("tick %d: input = %+v", i, in)
		}
	}
	if c.Input(head).Right {
		t.Error("move still held after the hold window")
	}

	c.handleKey(tcell.KeyRune, 'd')
	c.handleKey(tcell.KeyRune, 'a')
	if in := c.Input(head); !in.Left || in.Right {
		t.Errorf("opposite key did not cancel: %+v", in)
	}
}

func TestOneShotKeys(t *testing.T) {
	c, _ := newClient(t)
	for _, r := range " c3]]" {
		c.handleKey(tcell.KeyRune, r)
	}
	in := c.Input(tile.Cell{})
	if !in.Jump || !in.Place || in.Slot != 3 || in.Cycle != 2 {
		t.Errorf("input = %+v", in)
	}
	in = c.Input(tile.Cell{})
	if in.Jump || in.Place || in.Slot != 0 || in.Cycle != 0 {
		t.Errorf("one-shot keys repeated: %+v", in)
	}
}

func TestCursorFollowsHead(t *testing.T) {
	c, _ := newClient(t)
	head := tile.Cell{X: 10, Y: 5}
	if got := c.Input(head).Cursor; got != (tile.Cell{X: 11, Y: 6}) {
		t.Errorf("default cursor = %v", got)
	}
	for i := 0; i < 20; i++ {
		c.handleKey(tcell.KeyLeft, 0)
	}
	c.handleKey(tcell.KeyUp, 0)
	if got := c.Input(head).Cursor; got != (tile.Cell{X: 10 - cursorRange, Y: 5}) {
		t.Errorf("cursor = %v", got)
	}
}

func TestQuitAndReachToggle(t *testing.T) {
	c, _ := newClient(t)
	c.handleKey(tcell.KeyTab, 0)
	if !c.Input(tile.Cell{}).ShowReach {
		t.Error("tab did not toggle the reach box")
	}
	c.handleKey(tcell.KeyEscape, 0)
	if !c.quit {
		t.Error("escape did not quit")
	}
}

func TestViewport(t *testing.T) {
	c, _ := newClient(t)
	w, h := c.Viewport()
	if w != 80*cellW || h != 22*cellH {
		t.Errorf("viewport = %vx%v", w, h)
	}
}

func TestDrawTilesAndHUD(t *testing.T) {
	c, screen := newClient(t)
	cmds := []render.Command{
		{Kind: render.KindTile, Rect: physics.NewRect(0, 0, tile.Size, tile.Size), Tile: tile.Stone},
		{Kind: render.KindAlert, Rect: physics.NewRect(tile.Size*2, 0, 10, 10), Glyph: '!'},
	}
	hud := game.PlayerView{Health: 50, MaxHealth: 100}
	hud.Hotbar[0], hud.Counts[0] = item.Stone, 4
	c.Draw(cmds, hud, world.Playing)

	for x := 0; x < 2; x++ {
		if r, _, _, _ := screen.GetContent(x, 0); r != '▓' {
			t.Errorf("cell %d = %q, want stone", x, r)
		}
	}
	if r, _, _, _ := screen.GetContent(2, 0); r != ' ' {
		t.Errorf("tile spilled into column 2: %q", r)
	}
	if r, _, _, _ := screen.GetContent(4, 0); r != '!' {
		t.Errorf("alert = %q", r)
	}
	if r, _, _, _ := screen.GetContent(3, 22); r != '█' {
		t.Errorf("health bar start = %q", r)
	}
	if r, _, _, _ := screen.GetContent(3+10, 22); r != '░' {
		t.Errorf("health bar half = %q", r)
	}
	if r, _, st, _ := screen.GetContent(1, 23); r != '1' {
		t.Errorf("hotbar slot = %q", r)
	} else if _, _, attr := st.Decompose(); attr&tcell.AttrReverse == 0 {
		t.Error("selected slot not highlighted")
	}
}

func TestSlantRune(t *testing.T) {
	tests := []struct {
		angle float64
		want  rune
	}{
		{0, '│'},
		{45, '\\'},
		{-45, '/'},
		{90, '─'},
		{180, '│'},
	}
	for _, tt := range tests {
		if got := slantRune(tt.angle); got != tt.want {
			t.Errorf("slantRune(%v) = %q, want %q", tt.angle, got, tt.want)
		}
	}
}
