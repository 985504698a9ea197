package entity

import (
	"math/rand"

	"github.com/blockyworld/blocky/internal/physics"
	"github.com/go-gl/mathgl/mgl64"
)

// DeathTicks is how long the debris animation runs before the session ends.
const DeathTicks = 240

// Part names a piece of the player's body scattered on death.
type Part uint8

const (
	PartHead Part = iota
	PartTorso
	PartLeftArm
	PartRightArm
	PartLeftLeg
	PartRightLeg
)

// Debris is a body part tossed around by the death sequence.
type Debris struct {
	physics.Body
	Part Part
}

func NewDebris(r physics.Rect, part Part, rng *rand.Rand) *Debris {
	d := &Debris{Body: physics.NewBody(r, physics.HardFriction, 1), Part: part}
	d.Vel = mgl64.Vec2{rng.Float64()*16 - 8, -5 - rng.Float64()*10}
	return d
}

func (d *Debris) Update(colliders []physics.Rect) {
	d.Step(colliders)
	d.ApplyFriction()
}

// Shatter breaks the player into six debris pieces.
func (p *Player) Shatter(rng *rand.Rand) []*Debris {
	limbs := p.Limbs()
	return []*Debris{
		NewDebris(p.Head, PartHead, rng),
		NewDebris(p.Torso, PartTorso, rng),
		NewDebris(limbs[0], PartLeftArm, rng),
		NewDebris(limbs[1], PartRightArm, rng),
		NewDebris(limbs[2], PartLeftLeg, rng),
		NewDebris(limbs[3], PartRightLeg, rng),
	}
}
