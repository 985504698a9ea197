package entity

import (
	"math"

	"github.com/blockyworld/blocky/internal/item"
	"github.com/blockyworld/blocky/internal/physics"
	"github.com/blockyworld/blocky/internal/tile"
	"github.com/go-gl/mathgl/mgl64"
)

const (
	playerScale     = 0.7
	playerLegLen    = 28 // int(40 * 0.7)
	playerTorsoH    = 35 // int(50 * 0.7)
	playerWidth     = 21 // int(30 * 0.7)
	playerHeight    = playerLegLen + playerTorsoH
	playerHeadSize  = 17 // int(25 * 0.7)
	playerArmW      = 7
	playerArmH      = 24
	playerLegW      = 8
	playerMaxHealth = 100

	PlayerAccel      = 0.5
	PlayerMaxSpeed   = 3.0
	PlayerJumpSpeed  = -10.0
	PlayerMaxJumps   = 2
	InvincibleTicks  = 90
	PlaceAnimTicks   = 15
	playerSwingLimit = 40.0
)

// Controls is the movement intent for one tick.
type Controls struct {
	Left, Right bool
}

// Player is the user-controlled body. Part rectangles are derived from the
// root rectangle every tick and never persisted.
type Player struct {
	physics.Body
	Inventory *item.Inventory

	Facing     int // -1 left, 1 right
	Invincible int // ticks of damage immunity left
	Controls   Controls

	Head, Torso physics.Rect

	Breaking  bool
	BreakAnim float64 // swing accumulator while breaking
	PlaceAnim int     // ticks left of the place reach animation

	WalkCycle float64
	Swing     float64 // limb swing in degrees
}

// NewPlayer creates a player with its top-left corner at (x, y).
func NewPlayer(x, y float64) *Player {
	p := &Player{
		Body:      physics.NewBody(physics.NewRect(x, y, playerWidth, playerHeight), physics.SoftFriction, playerMaxHealth),
		Inventory: item.NewInventory(),
		Facing:    1,
	}
	p.UpdateParts()
	return p
}

// Jump starts a jump; a second jump is allowed in the air.
func (p *Player) Jump() bool {
	if p.Jumps >= PlayerMaxJumps {
		return false
	}
	p.Vel[1] = PlayerJumpSpeed
	p.Jumps++
	p.OnGround = false
	return true
}

// TakeDamage applies damage unless the player is still invincible from a
// previous hit. It reports whether damage was applied.
func (p *Player) TakeDamage(amount float64) bool {
	if p.Invincible > 0 || amount <= 0 {
		return false
	}
	p.Hurt(amount)
	p.Invincible = InvincibleTicks
	return true
}

func (p *Player) StartBreaking() { p.Breaking = true }

func (p *Player) StopBreaking() {
	p.Breaking = false
	p.BreakAnim = 0
}

// StartPlacing plays the reach animation unless one is running or the
// player is breaking.
func (p *Player) StartPlacing() {
	if p.PlaceAnim <= 0 && !p.Breaking {
		p.PlaceAnim = PlaceAnimTicks
	}
}

// Update advances the player one tick against the solid colliders.
func (p *Player) Update(colliders []physics.Rect) {
	if p.Invincible > 0 {
		p.Invincible--
	}
	if p.PlaceAnim > 0 {
		p.PlaceAnim--
	}
	if p.Breaking {
		p.BreakAnim += 0.2
	}

	p.steer()
	if dmg := p.Step(colliders); dmg > 0 {
		p.TakeDamage(dmg)
	}
	p.animate()
	p.UpdateParts()
}

func (p *Player) steer() {
	c := p.Controls
	if c.Left {
		p.Vel[0] -= PlayerAccel
		p.Facing = -1
	}
	if c.Right {
		p.Vel[0] += PlayerAccel
		p.Facing = 1
	}
	p.Vel[0] = math.Max(-PlayerMaxSpeed, math.Min(PlayerMaxSpeed, p.Vel[0]))
	if !c.Left && !c.Right {
		p.ApplyFriction()
	}
}

func (p *Player) animate() {
	if math.Abs(p.Vel[0]) > 0.1 && p.OnGround {
		p.WalkCycle += 0.3 + math.Abs(p.Vel[0])*0.005
		p.Swing = math.Sin(p.WalkCycle) * playerSwingLimit
		return
	}
	p.Swing -= p.Swing * 0.1
	if math.Abs(p.Swing) < 0.5 {
		p.Swing, p.WalkCycle = 0, 0
	}
}

// UpdateParts recomputes the head and torso from the root rectangle.
func (p *Player) UpdateParts() {
	r := p.Rect
	p.Torso = physics.NewRect(r.X, r.Bottom()-playerLegLen-playerTorsoH, r.W, playerTorsoH)
	p.Head = physics.NewRect(
		p.Torso.CenterX()-playerHeadSize/2+5*float64(p.Facing)*playerScale,
		p.Torso.Top()-playerHeadSize,
		playerHeadSize, playerHeadSize)
}

// Limbs returns the arm and leg rectangles hanging from the torso, in the
// order left arm, right arm, left leg, right leg.
func (p *Player) Limbs() [4]physics.Rect {
	t := p.Torso
	hipOff := 6 * playerScale
	return [4]physics.Rect{
		physics.NewRect(t.Left()+3-playerArmW/2.0, t.Top()+5, playerArmW, playerArmH),
		physics.NewRect(t.Right()-3-playerArmW/2.0, t.Top()+5, playerArmW, playerArmH),
		physics.NewRect(t.CenterX()-hipOff-playerLegW/2.0, t.Bottom(), playerLegW, playerLegLen),
		physics.NewRect(t.CenterX()+hipOff-playerLegW/2.0, t.Bottom(), playerLegW, playerLegLen),
	}
}

// FeetPoint is the reference point just above the soles.
func (p *Player) FeetPoint() mgl64.Vec2 {
	return mgl64.Vec2{p.Rect.CenterX(), p.Rect.Bottom() - 5}
}

// HeadCell is the grid cell used as the origin of interaction sight lines.
func (p *Player) HeadCell() tile.Cell {
	return tile.CellAt(p.Head.CenterX(), p.Head.CenterY())
}

// Target returns the perception view other entities use of the player.
func (p *Player) Target() Target {
	return Target{
		Rect:  p.Rect,
		Head:  p.Head.Center(),
		Torso: p.Torso.Center(),
		Feet:  p.FeetPoint(),
	}
}

// Target is what enemies and item drops perceive of the player.
type Target struct {
	Rect              physics.Rect
	Head, Torso, Feet mgl64.Vec2
}

// SightCells returns the grid cells of the head, torso and feet points.
func (t Target) SightCells() [3]tile.Cell {
	return [3]tile.Cell{
		tile.CellAt(t.Head[0], t.Head[1]),
		tile.CellAt(t.Torso[0], t.Torso[1]),
		tile.CellAt(t.Feet[0], t.Feet[1]),
	}
}

// VisibleFrom reports whether any of the three sight cells can be seen
// from cell c.
func (t Target) VisibleFrom(g *tile.Grid, c tile.Cell) bool {
	for _, s := range t.SightCells() {
		if tile.HasLineOfSight(g, c, s) {
			return true
		}
	}
	return false
}
