package collision

import "github.com/san-kum/airhockey/internal/geom"

// Side names the wall a circle touches.
type Side int

const (
	None Side = iota
	Left
	Top
	Right
	Bottom
)

func (s Side) String() string {
	switch s {
	case Left:
		return "left"
	case Top:
		return "top"
	case Right:
		return "right"
	case Bottom:
		return "bottom"
	default:
		return "none"
	}
}

// Horizontal reports whether the side is a left or right wall.
func (s Side) Horizontal() bool { return s == Left || s == Right }

// Vertical reports whether the side is a top or bottom wall.
func (s Side) Vertical() bool { return s == Top || s == Bottom }

// CircleToBounds returns the first wall in left, top, right, bottom order
// that the circle touches or crosses, or None when it sits strictly inside.
func CircleToBounds(c geom.Circle, bounds geom.Rect) Side {
	r := geom.V(c.Radius, c.Radius)
	min := bounds.Min().Add(r)
	max := bounds.Max().Sub(r)
	p := c.Center

	switch {
	case p.X <= min.X:
		return Left
	case p.Y <= min.Y:
		return Top
	case p.X >= max.X:
		return Right
	case p.Y >= max.Y:
		return Bottom
	default:
		return None
	}
}

// CircleToCircle reports whether two circles touch or overlap.
func CircleToCircle(a, b geom.Circle) bool {
	return a.Center.Distance(b.Center) <= a.Radius+b.Radius
}

// Penetration returns how deep a sinks into b, or 0 when they do not overlap.
func Penetration(a, b geom.Circle) float64 {
	depth := a.Radius + b.Radius - a.Center.Distance(b.Center)
	if depth <= 0 {
		return 0
	}
	return depth
}
