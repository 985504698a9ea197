package physics

import "github.com/go-gl/mathgl/mgl64"

// Rect is an axis-aligned box in world pixels. X/Y is the top-left corner.
type Rect struct {
	X, Y, W, H float64
}

func NewRect(x, y, w, h float64) Rect { return Rect{X: x, Y: y, W: w, H: h} }

func (r Rect) Left() float64    { return r.X }
func (r Rect) Right() float64   { return r.X + r.W }
func (r Rect) Top() float64     { return r.Y }
func (r Rect) Bottom() float64  { return r.Y + r.H }
func (r Rect) CenterX() float64 { return r.X + r.W/2 }
func (r Rect) CenterY() float64 { return r.Y + r.H/2 }

func (r Rect) Center() mgl64.Vec2 { return mgl64.Vec2{r.CenterX(), r.CenterY()} }

// Overlaps is a strict AABB test; rectangles that only share an edge do
// not overlap.
func (r Rect) Overlaps(o Rect) bool {
	return r.X < o.Right() && o.X < r.Right() && r.Y < o.Bottom() && o.Y < r.Bottom()
}

// Contains reports whether point p lies inside r (right/bottom exclusive).
func (r Rect) Contains(p mgl64.Vec2) bool {
	return p[0] >= r.X && p[0] < r.Right() && p[1] >= r.Y && p[1] < r.Bottom()
}

// Move returns r translated by (dx, dy).
func (r Rect) Move(dx, dy float64) Rect {
	r.X += dx
	r.Y += dy
	return r
}

func (r *Rect) SetRight(v float64)  { r.X = v - r.W }
func (r *Rect) SetBottom(v float64) { r.Y = v - r.H }

// SetCenter moves r so its centre is at p.
func (r *Rect) SetCenter(p mgl64.Vec2) {
	r.X = p[0] - r.W/2
	r.Y = p[1] - r.H/2
}

// Union returns the smallest rect covering r and o.
func (r Rect) Union(o Rect) Rect {
	x0, y0 := min(r.X, o.X), min(r.Y, o.Y)
	x1, y1 := max(r.Right(), o.Right()), max(r.Bottom(), o.Bottom())
	return Rect{X: x0, Y: y0, W: x1 - x0, H: y1 - y0}
}
