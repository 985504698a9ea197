package rules

import (
	"math/rand"

	"github.com/blockyworld/blocky/internal/physics"
	"github.com/blockyworld/blocky/internal/tile"
)

// MaxBreakTime is the number of held ticks needed to break a tile.
const MaxBreakTime = 60

// Verdict is the outcome of an interaction check. Rejections are not
// errors; the request simply has no effect.
type Verdict uint8

const (
	Allowed Verdict = iota
	OutOfBounds
	Occupied
	Empty
	OutOfReach
	OverlapsPlayer
	NoSight
	NoItem
	NoSupport
)

var verdictNames = [...]string{
	"allowed", "out of bounds", "occupied", "empty", "out of reach",
	"overlaps player", "no line of sight", "no item", "no support",
}

func (v Verdict) String() string { return verdictNames[v] }

func (v Verdict) OK() bool { return v == Allowed }

// Reach is the interaction box around the player's rectangle, in tiles.
type Reach struct {
	Horizontal int `toml:"horizontal"`
	Down       int `toml:"down"`
	Up         int `toml:"up"`
}

// DefaultReach is 3 tiles sideways, 3 down and 4 up.
var DefaultReach = Reach{Horizontal: 3, Down: 3, Up: 4}

// Contains reports whether c is inside the box around body.
func (r Reach) Contains(body physics.Rect, c tile.Cell) bool {
	lo := tile.CellAt(body.Left(), body.Top())
	hi := tile.CellAt(body.Right(), body.Bottom())
	return c.X >= lo.X-r.Horizontal && c.X <= hi.X+r.Horizontal &&
		c.Y >= lo.Y-r.Up && c.Y <= hi.Y+r.Down
}

// Actor describes the player for interaction checks.
type Actor struct {
	Body  physics.Rect
	Eye   tile.Cell // head cell, origin of the sight line
	Reach Reach
}

// CanBreak checks a break request against the live grid.
func CanBreak(g *tile.Grid, a Actor, target tile.Cell) Verdict {
	switch {
	case !a.Reach.Contains(a.Body, target):
		return OutOfReach
	case g.AtCell(target) == nil:
		return Empty
	case !tile.HasLineOfSight(g, a.Eye, target):
		return NoSight
	}
	return Allowed
}

// CanPlace checks a placement request against the live grid. held is the
// count of the selected item in the inventory.
func CanPlace(g *tile.Grid, a Actor, target tile.Cell, held uint32) Verdict {
	switch {
	case !g.InBounds(target.X, target.Y):
		return OutOfBounds
	case g.AtCell(target) != nil:
		return Occupied
	case !a.Reach.Contains(a.Body, target):
		return OutOfReach
	case a.Body.Overlaps(cellRect(target)):
		return OverlapsPlayer
	case !tile.HasLineOfSight(g, a.Eye, target):
		return NoSight
	case held == 0:
		return NoItem
	case !Supported(g, target):
		return NoSupport
	}
	return Allowed
}

// Supported reports whether c has a solid tile below it, or failing that,
// above, right or left of it.
func Supported(g *tile.Grid, c tile.Cell) bool {
	if g.SolidAt(c.X, c.Y+1) {
		return true
	}
	return g.SolidAt(c.X, c.Y-1) || g.SolidAt(c.X+1, c.Y) || g.SolidAt(c.X-1, c.Y)
}

func cellRect(c tile.Cell) physics.Rect {
	return physics.NewRect(float64(c.X*tile.Size), float64(c.Y*tile.Size), tile.Size, tile.Size)
}

// BreakTracker counts down a held break on one target cell. Changing the
// target or releasing resets the countdown without touching the tile.
type BreakTracker struct {
	Duration int

	target    tile.Cell
	active    bool
	remaining int
}

func NewBreakTracker(duration int) *BreakTracker {
	if duration <= 0 {
		duration = MaxBreakTime
	}
	return &BreakTracker{Duration: duration}
}

// Hold registers one tick of holding break on c and reports whether the
// countdown completed this tick.
func (b *BreakTracker) Hold(c tile.Cell) bool {
	if !b.active || b.target != c {
		b.target = c
		b.active = true
		b.remaining = b.Duration
	}
	b.remaining--
	if b.remaining <= 0 {
		b.active = false
		return true
	}
	return false
}

// Release cancels any break in progress.
func (b *BreakTracker) Release() {
	b.active = false
	b.remaining = 0
}

// Progress returns the current target and completion in [0,1).
func (b *BreakTracker) Progress() (tile.Cell, float64, bool) {
	if !b.active {
		return tile.Cell{}, 0, false
	}
	return b.target, 1 - float64(b.remaining)/float64(b.Duration), true
}

// Break destroys the tile at c outright and removes it from the grid.
// It returns the removed tile, or nil if c was empty.
func Break(g *tile.Grid, c tile.Cell, rng *rand.Rand) *tile.Tile {
	t := g.AtCell(c)
	if t == nil {
		return nil
	}
	t.Damage(t.MaxHealth, rng)
	return g.Remove(c.X, c.Y)
}
