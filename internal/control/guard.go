// Package control drives a handle without a human: a goalkeeper that holds
// one handle and slides it to shadow the opponent.
package control

import (
	"math"

	"github.com/san-kum/airhockey/internal/geom"
	"github.com/san-kum/airhockey/internal/handle"
	"github.com/san-kum/airhockey/internal/sim"
)

const (
	DefaultKp = 0.08
	DefaultKi = 0.0
	DefaultKd = 0.5

	// GuardPointer is the pointer id the guard grabs with.
	GuardPointer handle.PointerID = 201
)

// Guard holds its handle on a fixed line and moves it sideways toward the
// opponent's x. It is a sim.Driver and can be chained after another one.
type Guard struct {
	id      handle.ID
	pid     *PID
	next    sim.Driver
	home    geom.Vec2
	maxStep float64
	pos     geom.Vec2
	grabbed bool
}

// NewGuard guards handle id. maxStep caps the pointer travel per tick in
// table units; next, when non-nil, is driven first.
func NewGuard(id handle.ID, maxStep float64, next sim.Driver) *Guard {
	return &Guard{
		id:      id,
		pid:     NewPID(DefaultKp, DefaultKi, DefaultKd, 0),
		next:    next,
		maxStep: maxStep,
	}
}

func (g *Guard) Start(s *sim.Simulation) {
	if g.next != nil {
		g.next.Start(s)
	}
	g.pid.Reset()

	h := s.Handle(g.id)
	g.home = s.Arena().StartingPositions()[g.id]
	g.pos = h.Position()
	g.grabbed = false
}

func (g *Guard) Drive(s *sim.Simulation, t float64) {
	if g.next != nil {
		g.next.Drive(s, t)
	}

	h := s.Handle(g.id)
	if !g.grabbed {
		s.OnPointerDown(g.id, GuardPointer, h.Position())
		owner, held := h.Pointer()
		if !held || owner != GuardPointer {
			return
		}
		g.grabbed = true
		g.pos = h.Position()
	}

	opponent := s.Handle(other(g.id))
	g.pid.Target = opponent.Position().X

	dx := g.pid.Compute(g.pos.X, t)
	dx = math.Max(-g.maxStep, math.Min(g.maxStep, dx))

	g.pos = s.Arena().ClampHandle(geom.V(g.pos.X+dx, g.home.Y))
	s.OnPointerMove(GuardPointer, g.pos)
}

func other(id handle.ID) handle.ID {
	if id == handle.One {
		return handle.Two
	}
	return handle.One
}
