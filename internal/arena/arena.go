// Package arena holds the fixed geometry of the table: its outer and inner
// size, the inner collision bounds and the legal range of a handle center.
//
// The coordinate frame is centered on the table with Y growing downward.
// Geometry is built once per simulation and shared read-only.
package arena

import (
	"fmt"

	"github.com/san-kum/airhockey/internal/geom"
)

const (
	DefaultOuterWidth   = 680.0
	DefaultOuterHeight  = 1080.0
	DefaultInnerWidth   = 600.0
	DefaultInnerHeight  = 1000.0
	DefaultHandleRadius = 40.0
)

type Geometry struct {
	OuterSize    geom.Vec2
	InnerSize    geom.Vec2
	InnerBounds  geom.Rect
	HandleRadius float64

	MinHandlePosition geom.Vec2
	MaxHandlePosition geom.Vec2
}

// New builds the geometry. The handle must fit inside the inner bounds and
// the inner bounds inside the outer size.
func New(outer, inner geom.Vec2, handleRadius float64) (*Geometry, error) {
	if !inner.IsFinite() || !(inner.X > 0 && inner.Y > 0) {
		return nil, fmt.Errorf("arena: inner size must be positive, got %v", inner)
	}
	if !outer.IsFinite() || !(outer.X >= inner.X && outer.Y >= inner.Y) {
		return nil, fmt.Errorf("arena: outer size %v smaller than inner size %v", outer, inner)
	}
	if !(handleRadius > 0) {
		return nil, fmt.Errorf("arena: handle radius must be positive, got %f", handleRadius)
	}
	if 2*handleRadius >= inner.X || 2*handleRadius >= inner.Y {
		return nil, fmt.Errorf("arena: handle radius %f does not fit inner size %v", handleRadius, inner)
	}

	bounds := geom.RectFromCenterSize(geom.Zero, inner)
	legal := bounds.Shrink(handleRadius)

	return &Geometry{
		OuterSize:         outer,
		InnerSize:         inner,
		InnerBounds:       bounds,
		HandleRadius:      handleRadius,
		MinHandlePosition: legal.Min(),
		MaxHandlePosition: legal.Max(),
	}, nil
}

// Default returns the standard table.
func Default() *Geometry {
	g, err := New(
		geom.V(DefaultOuterWidth, DefaultOuterHeight),
		geom.V(DefaultInnerWidth, DefaultInnerHeight),
		DefaultHandleRadius,
	)
	if err != nil {
		panic(err)
	}
	return g
}

// StartingPositions returns one position near each end of the table,
// handle 1 on the bottom half.
func (g *Geometry) StartingPositions() [2]geom.Vec2 {
	quarter := g.InnerSize.Y / 4
	return [2]geom.Vec2{
		geom.V(0, quarter),
		geom.V(0, -quarter),
	}
}

// ClampHandle limits a handle center to the legal range.
func (g *Geometry) ClampHandle(p geom.Vec2) geom.Vec2 {
	return p.RectangleClamp(g.MinHandlePosition, g.MaxHandlePosition)
}

// HandleCircle returns the collision circle of a handle centered at p.
func (g *Geometry) HandleCircle(p geom.Vec2) geom.Circle {
	return geom.Circle{Center: p, Radius: g.HandleRadius}
}
