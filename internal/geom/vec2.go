package geom

import (
	"fmt"
	"math"

	"github.com/golang/geo/r2"
)

type Vec2 struct {
	X, Y float64
}

var Zero = Vec2{}

func V(x, y float64) Vec2 { return Vec2{X: x, Y: y} }

func (a Vec2) Add(b Vec2) Vec2 { return Vec2{a.X + b.X, a.Y + b.Y} }
func (a Vec2) Sub(b Vec2) Vec2 { return Vec2{a.X - b.X, a.Y - b.Y} }

func (a Vec2) Scale(s float64) Vec2 { return Vec2{a.X * s, a.Y * s} }

// Div returns Zero when s is 0.
func (a Vec2) Div(s float64) Vec2 {
	if s == 0 {
		return Zero
	}
	return Vec2{a.X / s, a.Y / s}
}

func (a Vec2) Dot(b Vec2) float64 { return a.X*b.X + a.Y*b.Y }

func (a Vec2) Len() float64   { return math.Hypot(a.X, a.Y) }
func (a Vec2) LenSq() float64 { return a.X*a.X + a.Y*a.Y }

func (a Vec2) Distance(b Vec2) float64 { return a.Sub(b).Len() }

func (a Vec2) Neg() Vec2 { return Vec2{-a.X, -a.Y} }

// Normalize returns the unit vector in the direction of a, or Zero for the zero vector.
func (a Vec2) Normalize() Vec2 {
	l := a.Len()
	if l == 0 {
		return Zero
	}
	return Vec2{a.X / l, a.Y / l}
}

// RectangleClamp clamps each axis to [min, max] independently.
func (a Vec2) RectangleClamp(min, max Vec2) Vec2 {
	return Vec2{
		X: math.Min(math.Max(a.X, min.X), max.X),
		Y: math.Min(math.Max(a.Y, min.Y), max.Y),
	}
}

// CircularClamp rescales a to exactly maxLen when it is longer, keeping its direction.
func (a Vec2) CircularClamp(maxLen float64) Vec2 {
	l := a.Len()
	if l <= maxLen || l == 0 {
		return a
	}
	return a.Scale(maxLen / l)
}

func (a Vec2) IsFinite() bool {
	return !math.IsNaN(a.X) && !math.IsNaN(a.Y) && !math.IsInf(a.X, 0) && !math.IsInf(a.Y, 0)
}

func (a Vec2) Point() r2.Point { return r2.Point{X: a.X, Y: a.Y} }

func FromPoint(p r2.Point) Vec2 { return Vec2{p.X, p.Y} }

func (a Vec2) String() string { return fmt.Sprintf("(%.3f, %.3f)", a.X, a.Y) }
