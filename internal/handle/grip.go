package handle

import "github.com/san-kum/airhockey/internal/geom"

// PointerID identifies one active pointer (mouse, touch, keyboard cursor).
type PointerID int

const (
	positionSamples = 2
	velocitySamples = 3
)

// grip is the held arm of the handle state.
type grip struct {
	pointer    PointerID
	positions  [positionSamples]geom.Vec2
	velocities [velocitySamples]geom.Vec2
}

func newGrip(pointer PointerID, at geom.Vec2) *grip {
	g := &grip{pointer: pointer}
	for i := range g.positions {
		g.positions[i] = at
	}
	return g
}

// sample records the latest position and returns the smoothed velocity.
func (g *grip) sample(p geom.Vec2, dt, reducer float64) geom.Vec2 {
	copy(g.positions[:], g.positions[1:])
	g.positions[positionSamples-1] = p

	instant := g.positions[1].Sub(g.positions[0]).Div(dt * reducer)

	copy(g.velocities[:], g.velocities[1:])
	g.velocities[velocitySamples-1] = instant

	sum := geom.Zero
	for _, v := range g.velocities {
		sum = sum.Add(v)
	}
	return sum.Div(velocitySamples)
}
