package tile

// HasLineOfSight walks a Bresenham line between two cells and reports
// whether every cell strictly between them is in bounds and empty. The
// endpoints themselves are never tested. Any tile blocks sight, including
// non-solid wood and leaves.
//
// The walk always runs from the lesser to the greater endpoint so the
// visited cells, and therefore the answer, do not depend on argument order.
func HasLineOfSight(g *Grid, a, b Cell) bool {
	if a == b {
		return true
	}
	if b.X < a.X || (b.X == a.X && b.Y < a.Y) {
		a, b = b, a
	}

	dx := abs(b.X - a.X)
	dy := -abs(b.Y - a.Y)
	sx, sy := sign(b.X-a.X), sign(b.Y-a.Y)
	e := dx + dy
	x, y := a.X, a.Y

	for {
		e2 := 2 * e
		if e2 >= dy {
			e += dy
			x += sx
		}
		if e2 <= dx {
			e += dx
			y += sy
		}
		if x == b.X && y == b.Y {
			return true
		}
		if !g.InBounds(x, y) || g.At(x, y) != nil {
			return false
		}
	}
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}

func sign(v int) int {
	switch {
	case v > 0:
		return 1
	case v < 0:
		return -1
	}
	return 0
}
