// Package term is the terminal front end: it turns key presses into tick
// input and draw commands into screen cells. One tile is two columns wide
// and one row tall.
package term

import (
	"fmt"
	"math"

	"github.com/blockyworld/blocky/internal/data"
	"github.com/blockyworld/blocky/internal/entity"
	"github.com/blockyworld/blocky/internal/game"
	"github.com/blockyworld/blocky/internal/item"
	"github.com/blockyworld/blocky/internal/physics"
	"github.com/blockyworld/blocky/internal/render"
	"github.com/blockyworld/blocky/internal/tile"
	"github.com/blockyworld/blocky/internal/world"
	"github.com/gdamore/tcell/v2"
)

const (
	cellW   = tile.Size / 2 // pixels per column
	cellH   = tile.Size     // pixels per row
	hudRows = 2

	// Terminals report presses, not releases. A key counts as held until
	// this many ticks pass without a repeat.
	holdTicks = 30

	cursorRange = 6 // tiles from the player's head
)

// Client owns the terminal screen and the keyboard state.
type Client struct {
	screen tcell.Screen
	styles map[tile.Type]glyphStyle
	events chan tcell.Event

	left, right, brk int // ticks of hold left
	jump, place      bool
	slot, cycle      int
	showReach        bool
	cursor           tile.Cell // offset from the head cell
	quit             bool
}

type glyphStyle struct {
	r     rune
	style tcell.Style
	cover tcell.Style
}

func NewClient(screen tcell.Screen, palette *data.Palette) *Client {
	c := &Client{
		screen: screen,
		styles: make(map[tile.Type]glyphStyle, palette.Count()),
		cursor: tile.Cell{X: 1, Y: 1},
	}
	for t := tile.Dirt; t <= tile.Leaf; t++ {
		g, ok := palette.Glyph(t)
		if !ok {
			continue
		}
		base := tcell.StyleDefault.Foreground(tcell.GetColor(g.Fg)).Background(tcell.GetColor(g.Bg))
		cover := base
		if g.Cover != "" {
			cover = base.Foreground(tcell.GetColor(g.Cover))
		}
		c.styles[t] = glyphStyle{r: []rune(g.Rune)[0], style: base, cover: cover}
	}
	return c
}

// Start initialises the screen and begins reading terminal events.
func (c *Client) Start() error {
	if err := c.screen.Init(); err != nil {
		return fmt.Errorf("init screen: %w", err)
	}
	c.screen.HideCursor()
	c.events = make(chan tcell.Event, 64)
	go func() {
		for {
			ev := c.screen.PollEvent()
			if ev == nil {
				close(c.events)
				return
			}
			c.events <- ev
		}
	}()
	return nil
}

func (c *Client) Fini() { c.screen.Fini() }

// Poll applies all pending terminal events without blocking. It returns
// false once the player asked to quit.
func (c *Client) Poll() bool {
	for {
		select {
		case ev, ok := <-c.events:
			if !ok {
				return false
			}
			c.HandleEvent(ev)
		default:
			return !c.quit
		}
	}
}

func (c *Client) HandleEvent(ev tcell.Event) {
	switch ev := ev.(type) {
	case *tcell.EventKey:
		c.handleKey(ev.Key(), ev.Rune())
	case *tcell.EventResize:
		c.screen.Sync()
	}
}

func (c *Client) handleKey(k tcell.Key, r rune) {
	switch k {
	case tcell.KeyEscape, tcell.KeyCtrlC:
		c.quit = true
	case tcell.KeyLeft:
		c.moveCursor(-1, 0)
	case tcell.KeyRight:
		c.moveCursor(1, 0)
	case tcell.KeyUp:
		c.moveCursor(0, -1)
	case tcell.KeyDown:
		c.moveCursor(0, 1)
	case tcell.KeyTab:
		c.showReach = !c.showReach
	case tcell.KeyRune:
		c.handleRune(r)
	}
}

func (c *Client) handleRune(r rune) {
	switch r {
	case 'a', 'A':
		c.left, c.right = holdTicks, 0
	case 'd', 'D':
		c.right, c.left = holdTicks, 0
	case 'w', 'W', ' ':
		c.jump = true
	case 'x', 'X':
		c.brk = holdTicks
	case 'c', 'C':
		c.place = true
	case '[':
		c.cycle--
	case ']':
		c.cycle++
	case '1', '2', '3', '4', '5':
		c.slot = int(r - '0')
	}
}

func (c *Client) moveCursor(dx, dy int) {
	c.cursor.X = min(max(c.cursor.X+dx, -cursorRange), cursorRange)
	c.cursor.Y = min(max(c.cursor.Y+dy, -cursorRange), cursorRange)
}

// Input returns the input for the next tick and consumes one-shot keys.
// head is the player's head cell; the cursor is kept relative to it.
func (c *Client) Input(head tile.Cell) game.InputState {
	in := game.InputState{
		Left:      c.left > 0,
		Right:     c.right > 0,
		Jump:      c.jump,
		Break:     c.brk > 0,
		Place:     c.place,
		Cursor:    head.Add(c.cursor.X, c.cursor.Y),
		Slot:      c.slot,
		Cycle:     c.cycle,
		ShowReach: c.showReach,
	}
	c.left, c.right, c.brk = max(c.left-1, 0), max(c.right-1, 0), max(c.brk-1, 0)
	c.jump, c.place = false, false
	c.slot, c.cycle = 0, 0
	return in
}

// Viewport returns the size of the world view in pixels.
func (c *Client) Viewport() (w, h float64) {
	cols, rows := c.screen.Size()
	return float64(cols * cellW), float64(max(rows-hudRows, 1) * cellH)
}

// Draw paints one frame followed by the HUD.
func (c *Client) Draw(cmds []render.Command, hud game.PlayerView, phase world.Phase) {
	c.screen.Clear()
	for _, cmd := range cmds {
		c.draw(cmd)
	}
	c.drawHUD(hud, phase)
	c.screen.Show()
}

var (
	playerStyle = tcell.StyleDefault.Foreground(tcell.ColorWhite)
	enemyStyle  = tcell.StyleDefault.Foreground(tcell.ColorRed)
	alertStyle  = tcell.StyleDefault.Foreground(tcell.ColorYellow).Bold(true)
	reachStyle  = tcell.StyleDefault.Foreground(tcell.ColorGray)
	okStyle     = tcell.StyleDefault.Background(tcell.ColorDarkGreen)
	badStyle    = tcell.StyleDefault.Background(tcell.ColorDarkRed)
)

func (c *Client) draw(cmd render.Command) {
	switch cmd.Kind {
	case render.KindTile:
		if g, ok := c.styles[cmd.Tile]; ok {
			c.fill(cmd.Rect, g.r, g.style)
		}
	case render.KindGrassCap:
		if g, ok := c.styles[cmd.Tile]; ok {
			c.fill(cmd.Rect, '▀', g.cover)
		}
	case render.KindCrack:
		x, y := cell((cmd.X1+cmd.X2)/2, (cmd.Y1+cmd.Y2)/2)
		_, _, st, _ := c.screen.GetContent(x, y)
		c.screen.SetContent(x, y, '×', nil, st.Foreground(tcell.ColorBlack))
	case render.KindBreakBar:
		shades := []rune("░▒▓█")
		r := shades[min(int(cmd.Progress*float64(len(shades))), len(shades)-1)]
		c.fill(cmd.Rect, r, tcell.StyleDefault.Foreground(tcell.ColorWhite))
	case render.KindPreview:
		st := badStyle
		if cmd.Valid {
			st = okStyle
		}
		c.fill(cmd.Rect, '+', st)
	case render.KindItem:
		c.fill(cmd.Rect, itemRune(cmd.Angle), c.itemStyle(cmd.Item))
	case render.KindPlayer:
		st := playerStyle
		if cmd.Flash {
			st = st.Dim(true)
		}
		c.fill(cmd.Rect, partRune(cmd.Part, cmd.Angle), st)
	case render.KindEnemy:
		c.fill(cmd.Rect, partRune(cmd.Part, cmd.Angle), enemyStyle)
	case render.KindClub:
		c.fill(cmd.Rect, slantRune(cmd.Angle), enemyStyle)
	case render.KindAlert:
		c.fill(cmd.Rect, cmd.Glyph, alertStyle)
	case render.KindDebris:
		c.fill(cmd.Rect, '*', playerStyle)
	case render.KindReach:
		c.outline(cmd.Rect, reachStyle)
	}
}

func (c *Client) itemStyle(k item.Kind) tcell.Style {
	if t, ok := k.Places(); ok {
		if g, ok := c.styles[t]; ok {
			_, bg, _ := g.style.Decompose()
			return tcell.StyleDefault.Foreground(bg).Bold(true)
		}
	}
	return tcell.StyleDefault
}

// cell maps a screen pixel to a terminal cell.
func cell(x, y float64) (int, int) {
	return int(math.Floor(x / cellW)), int(math.Floor(y / cellH))
}

// span returns the cells a rectangle covers, at least one each way.
func span(r physics.Rect) (x0, y0, x1, y1 int) {
	x0, x1 = int(math.Round(r.X/cellW)), int(math.Round(r.Right()/cellW))
	y0, y1 = int(math.Round(r.Y/cellH)), int(math.Round(r.Bottom()/cellH))
	if x1 <= x0 {
		x0, _ = cell(r.CenterX(), 0)
		x1 = x0 + 1
	}
	if y1 <= y0 {
		_, y0 = cell(0, r.CenterY())
		y1 = y0 + 1
	}
	return x0, y0, x1, y1
}

func (c *Client) fill(r physics.Rect, ch rune, st tcell.Style) {
	x0, y0, x1, y1 := span(r)
	for y := y0; y < y1; y++ {
		for x := x0; x < x1; x++ {
			c.screen.SetContent(x, y, ch, nil, st)
		}
	}
}

func (c *Client) outline(r physics.Rect, st tcell.Style) {
	x0, y0, x1, y1 := span(r)
	c.screen.SetContent(x0, y0, '┌', nil, st)
	c.screen.SetContent(x1-1, y0, '┐', nil, st)
	c.screen.SetContent(x0, y1-1, '└', nil, st)
	c.screen.SetContent(x1-1, y1-1, '┘', nil, st)
}

func itemRune(angle float64) rune {
	if a := math.Mod(math.Abs(angle), 90); a > 22.5 && a < 67.5 {
		return '◆'
	}
	return '■'
}

func slantRune(angle float64) rune {
	a := math.Mod(angle, 180)
	if a < 0 {
		a += 180
	}
	switch {
	case a < 22.5 || a >= 157.5:
		return '│'
	case a < 67.5:
		return '\\'
	case a < 112.5:
		return '─'
	}
	return '/'
}

func partRune(p entity.Part, swing float64) rune {
	switch p {
	case entity.PartHead:
		return '☻'
	case entity.PartTorso:
		return '█'
	case entity.PartLeftLeg, entity.PartRightLeg, entity.PartLeftArm, entity.PartRightArm:
		return slantRune(swing)
	}
	return '?'
}

func (c *Client) drawHUD(hud game.PlayerView, phase world.Phase) {
	cols, rows := c.screen.Size()
	y := rows - hudRows

	const barW = 20
	filled := 0
	if hud.MaxHealth > 0 {
		filled = int(math.Ceil(hud.Health / hud.MaxHealth * barW))
	}
	x := c.text(0, y, "HP ", tcell.StyleDefault)
	for i := 0; i < barW; i++ {
		r, st := '█', tcell.StyleDefault.Foreground(tcell.ColorRed)
		if i >= filled {
			r, st = '░', tcell.StyleDefault.Foreground(tcell.ColorGray)
		}
		c.screen.SetContent(x+i, y, r, nil, st)
	}
	c.text(x+barW+1, y, fmt.Sprintf("%3.0f/%.0f", hud.Health, hud.MaxHealth), tcell.StyleDefault)

	x = 0
	for i, k := range hud.Hotbar {
		label := fmt.Sprintf(" %d:-- ", i+1)
		if k != item.None {
			label = fmt.Sprintf(" %d:%s×%d ", i+1, k, hud.Counts[i])
		}
		st := tcell.StyleDefault
		if i == hud.Selected {
			st = st.Reverse(true)
		}
		x = c.text(x, y+1, label, st)
	}

	if phase == world.Over {
		msg := "GAME OVER  (Esc to quit)"
		c.text(max((cols-len(msg))/2, 0), (rows-hudRows)/2, msg, alertStyle)
	}
}

// text writes s at (x, y) and returns the column after it.
func (c *Client) text(x, y int, s string, st tcell.Style) int {
	for _, r := range s {
		c.screen.SetContent(x, y, r, nil, st)
		x++
	}
	return x
}
