package entity

import (
	"math"
	"math/rand"

	"github.com/blockyworld/blocky/internal/item"
	"github.com/blockyworld/blocky/internal/physics"
	"github.com/go-gl/mathgl/mgl64"
)

const (
	itemSize = 15

	MagnetRadius = 40.0
	MagnetSpeed  = 3.0

	spinDecay = 0.95
	spinStop  = 0.05
	torque    = 0.5
)

// ItemDrop is a loose item lying in the world.
type ItemDrop struct {
	physics.Body
	Kind  item.Kind
	Angle float64 // degrees
	Spin  float64 // degrees per tick
}

// NewItemDrop spawns an item centred on c with a small random toss.
func NewItemDrop(c mgl64.Vec2, k item.Kind, rng *rand.Rand) *ItemDrop {
	d := &ItemDrop{
		Body: physics.NewBody(physics.NewRect(c[0]-itemSize/2.0, c[1]-itemSize/2.0, itemSize, itemSize), physics.HardFriction, 1),
		Kind: k,
	}
	d.Vel = mgl64.Vec2{rng.Float64()*3 - 1.5, -1 - rng.Float64()*3}
	return d
}

// Magnetized reports whether the item is within pull range of the
// player's head, torso or feet.
func (d *ItemDrop) Magnetized(t Target) bool {
	c := d.Rect.Center()
	for _, p := range [...]mgl64.Vec2{t.Head, t.Torso, t.Feet} {
		if c.Sub(p).Len() < MagnetRadius {
			return true
		}
	}
	return false
}

// Update moves the item for one tick. In pull range it homes on the
// torso and passes through terrain; otherwise it falls, slides and spins
// down.
func (d *ItemDrop) Update(colliders []physics.Rect, t Target) {
	if d.Magnetized(t) {
		dir := t.Torso.Sub(d.Rect.Center())
		if l := dir.Len(); l > 0 {
			dir = dir.Mul(MagnetSpeed / l)
		}
		d.Vel = dir
		d.Rect.X += d.Vel[0]
		d.Rect.Y += d.Vel[1]
		d.Spin = 0
		return
	}

	d.Step(colliders)
	d.ApplyFriction()
	d.Angle += d.Spin
	d.Spin *= spinDecay
	if math.Abs(d.Spin) < spinStop {
		d.Spin = 0
	}
}

// CheckStability inspects what the grounded item rests on. With nothing
// below it starts to fall again; resting with its centre past the edge of
// its supports, it is torqued towards that edge.
func (d *ItemDrop) CheckStability(supporters []physics.Rect) {
	if !d.OnGround {
		return
	}
	feet := d.Rect.Move(0, 1)
	lo, hi := math.Inf(1), math.Inf(-1)
	for _, s := range supporters {
		if feet.Overlaps(s) {
			lo = math.Min(lo, s.Left())
			hi = math.Max(hi, s.Right())
		}
	}
	if lo > hi {
		d.OnGround = false
		return
	}
	switch cx := d.Rect.CenterX(); {
	case cx < lo:
		d.Spin -= torque
	case cx > hi:
		d.Spin += torque
	}
}
