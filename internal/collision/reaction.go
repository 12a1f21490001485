package collision

import "github.com/san-kum/airhockey/internal/geom"

// ImmovableMass stands in for infinite mass. It is finite so the mass
// coefficient in FullyElastic stays a number.
const ImmovableMass = 8 * float64(1<<53-1)

// Body is the state FullyElastic needs from one side of a contact.
type Body struct {
	Mass     float64
	Velocity geom.Vec2
	Position geom.Vec2
}

// FullyElastic returns the velocity of body 1 after a perfectly elastic
// collision with body 2, projected on the normal x1-x2. Call it again with
// the arguments swapped for body 2.
//
// https://en.wikipedia.org/wiki/Elastic_collision#Two-dimensional_collision_with_two_moving_objects
func FullyElastic(m1, m2 float64, v1, v2, x1, x2 geom.Vec2) geom.Vec2 {
	normal := x1.Sub(x2)
	distSq := normal.LenSq()
	if distSq == 0 || m1+m2 == 0 {
		return v1
	}
	massCoefficient := 2 * m2 / (m1 + m2)
	return v1.Sub(normal.Scale(massCoefficient * v1.Sub(v2).Dot(normal) / distSq))
}

// Resolve applies FullyElastic to both bodies.
func Resolve(a, b Body) (geom.Vec2, geom.Vec2) {
	va := FullyElastic(a.Mass, b.Mass, a.Velocity, b.Velocity, a.Position, b.Position)
	vb := FullyElastic(b.Mass, a.Mass, b.Velocity, a.Velocity, b.Position, a.Position)
	return va, vb
}

// Approaching reports whether the bodies move toward each other along their center line.
func Approaching(a, b Body) bool {
	return a.Velocity.Sub(b.Velocity).Dot(a.Position.Sub(b.Position)) < 0
}
