package geom

import "github.com/golang/geo/r2"

type Circle struct {
	Center Vec2
	Radius float64
}

// Rect is an axis-aligned rectangle. Y grows downward, so Min is the
// top-left corner and Max the bottom-right.
type Rect struct {
	r2.Rect
}

// RectFromCenterSize builds a rectangle of the given size around center.
func RectFromCenterSize(center, size Vec2) Rect {
	return Rect{r2.RectFromCenterSize(center.Point(), size.Point())}
}

func RectFromCorners(min, max Vec2) Rect {
	return Rect{r2.RectFromPoints(min.Point(), max.Point())}
}

func (r Rect) Min() Vec2    { return FromPoint(r.Lo()) }
func (r Rect) Max() Vec2    { return FromPoint(r.Hi()) }
func (r Rect) Center() Vec2 { return FromPoint(r.Rect.Center()) }
func (r Rect) Size() Vec2   { return FromPoint(r.Rect.Size()) }

// Shrink moves every edge inward by margin. A margin larger than half
// the rectangle yields an empty rectangle.
func (r Rect) Shrink(margin float64) Rect {
	return Rect{r.ExpandedByMargin(-margin)}
}

func (r Rect) Contains(p Vec2) bool { return r.ContainsPoint(p.Point()) }
