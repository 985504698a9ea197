package physics

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"
)

const (
	Gravity          = 0.6   // px per tick²
	SafeFallDistance = 160.0 // px, four tiles
	FallDamageScalar = 0.1   // damage per px beyond the safe distance

	SoftFriction = 0.88 // player, enemies
	HardFriction = 0.7  // debris, item drops

	stopSpeed = 0.1
)

// Body is the kinematic state shared by every dynamic entity. It is
// embedded by value in the entity types.
type Body struct {
	Rect     Rect
	Vel      mgl64.Vec2
	OnGround bool
	Jumps    int
	Friction float64
	Gravity  float64
	Health   float64
	MaxHP    float64

	falling  bool    // a fall origin is recorded
	fallFrom float64 // bottom edge when the descent started
}

// NewBody returns a resting body with full health.
func NewBody(r Rect, friction, maxHP float64) Body {
	return Body{Rect: r, Friction: friction, Gravity: Gravity, Health: maxHP, MaxHP: maxHP}
}

// Step advances the body one tick against the solid colliders and returns
// the fall damage incurred on landing (0 if none). Horizontal movement is
// resolved first, then gravity and vertical movement.
func (b *Body) Step(colliders []Rect) float64 {
	b.Rect.X += b.Vel[0]
	for _, c := range colliders {
		if !b.Rect.Overlaps(c) {
			continue
		}
		if b.Vel[0] > 0 {
			b.Rect.SetRight(c.Left())
		} else if b.Vel[0] < 0 {
			b.Rect.X = c.Right()
		}
	}

	if !b.OnGround && b.Vel[1] > 0 && !b.falling {
		b.falling = true
		b.fallFrom = b.Rect.Bottom()
	}

	b.Vel[1] += b.Gravity
	b.Rect.Y += b.Vel[1]
	b.OnGround = false

	var damage float64
	for _, c := range colliders {
		if !b.Rect.Overlaps(c) {
			continue
		}
		if b.Vel[1] > 0 {
			b.Rect.SetBottom(c.Top())
			b.OnGround = true
			b.Jumps = 0
			b.Vel[1] = 0
			if b.falling {
				if d := b.Rect.Bottom() - b.fallFrom; d > SafeFallDistance {
					damage += (d - SafeFallDistance) * FallDamageScalar
				}
				b.falling = false
			}
		} else if b.Vel[1] < 0 {
			b.Rect.Y = c.Bottom()
			b.Vel[1] = 0
		}
	}

	if b.OnGround {
		b.falling = false
	}
	return damage
}

// ApplyFriction damps horizontal speed while grounded and snaps slow
// bodies to a full stop.
func (b *Body) ApplyFriction() {
	if !b.OnGround {
		return
	}
	b.Vel[0] *= b.Friction
	if math.Abs(b.Vel[0]) < stopSpeed {
		b.Vel[0] = 0
	}
}

// Hurt subtracts amount from health, clamping at zero.
func (b *Body) Hurt(amount float64) {
	b.Health = math.Max(0, b.Health-amount)
}

// Dead reports whether health has reached zero.
func (b *Body) Dead() bool { return b.Health <= 0 }

// FallOrigin returns the recorded bottom edge at the start of the current
// descent.
func (b *Body) FallOrigin() (float64, bool) { return b.fallFrom, b.falling }
