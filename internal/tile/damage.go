package tile

import (
	"math"
	"math/rand"
)

// State is the tile's damage stage.
type State uint8

const (
	Pristine State = iota
	Cracking
	Destroyed
)

func (s State) String() string {
	switch s {
	case Pristine:
		return "pristine"
	case Cracking:
		return "cracking"
	}
	return "destroyed"
}

const (
	crackSegments  = 15
	crackMinLength = 5.0
	crackMaxLength = 10.0
	crackJitter    = math.Pi / 4 // ±45° per segment
)

// Segment is one crack line in tile-local pixels (0..Size on both axes).
type Segment struct {
	X1, Y1, X2, Y2 float64
}

func (t *Tile) State() State {
	switch {
	case t.Health <= 0:
		return Destroyed
	case t.Health < t.MaxHealth:
		return Cracking
	}
	return Pristine
}

// Damage subtracts amount from the tile's health and reports whether it
// was destroyed. The crack pattern is generated on the first hit and kept
// for the tile's lifetime.
func (t *Tile) Damage(amount int, rng *rand.Rand) bool {
	if amount <= 0 {
		return t.Health <= 0
	}
	if t.crack == nil {
		t.crack = generateCrack(rng)
	}
	t.Health -= amount
	if t.Health < 0 {
		t.Health = 0
	}
	return t.Health <= 0
}

// Crack returns the full crack pattern, or nil for an undamaged tile.
func (t *Tile) Crack() []Segment { return t.crack }

// VisibleCracks returns the prefix of the crack pattern revealed at the
// current health: floor(len * (1 - health/max)) segments.
func (t *Tile) VisibleCracks() []Segment {
	if t.crack == nil || t.Health >= t.MaxHealth {
		return nil
	}
	n := int(float64(len(t.crack)) * (1 - float64(t.Health)/float64(t.MaxHealth)))
	return t.crack[:min(n, len(t.crack))]
}

// CrackPattern returns a crack pattern seeded by cell c, the same on every
// call. It is used to preview the crack of a break in progress, whose tile
// keeps full health until the countdown completes.
func CrackPattern(c Cell) []Segment {
	seed := int64(c.X)*73856093 ^ int64(c.Y)*19349663
	return generateCrack(rand.New(rand.NewSource(seed)))
}

// generateCrack walks from a random edge point toward the tile centre in
// short jittered steps, clamped to the tile.
func generateCrack(rng *rand.Rand) []Segment {
	var x, y float64
	switch rng.Intn(4) {
	case 0: // top
		x, y = float64(rng.Intn(Size+1)), 0
	case 1: // bottom
		x, y = float64(rng.Intn(Size+1)), Size
	case 2: // left
		x, y = 0, float64(rng.Intn(Size+1))
	default: // right
		x, y = Size, float64(rng.Intn(Size+1))
	}
	heading := math.Atan2(Size/2-y, Size/2-x)

	segs := make([]Segment, 0, crackSegments)
	for i := 0; i < crackSegments; i++ {
		heading += (rng.Float64()*2 - 1) * crackJitter
		length := crackMinLength + rng.Float64()*(crackMaxLength-crackMinLength)
		nx := clamp(x+length*math.Cos(heading), 0, Size)
		ny := clamp(y+length*math.Sin(heading), 0, Size)
		segs = append(segs, Segment{X1: x, Y1: y, X2: nx, Y2: ny})
		x, y = nx, ny
	}
	return segs
}

func clamp(v, lo, hi float64) float64 {
	return math.Max(lo, math.Min(hi, v))
}
