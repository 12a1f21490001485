package handle

import (
	"math"

	"github.com/san-kum/airhockey/internal/arena"
	"github.com/san-kum/airhockey/internal/collision"
	"github.com/san-kum/airhockey/internal/geom"
)

// ID selects one of the two handles.
type ID int

const (
	One ID = iota
	Two
)

func (id ID) String() string {
	switch id {
	case One:
		return "handle1"
	case Two:
		return "handle2"
	default:
		return "handle?"
	}
}

// FreeMass is the mass of a handle nobody holds.
const FreeMass = 1.0

// Report describes what a single Update did.
type Report struct {
	Held         bool
	Wall         collision.Side
	HitOpponent  bool
	Depenetrated bool
}

type Handle struct {
	id     ID
	arena  *arena.Geometry
	tuning *Tuning

	position geom.Vec2
	velocity geom.Vec2
	grip     *grip
}

func New(id ID, start geom.Vec2, g *arena.Geometry, t *Tuning) *Handle {
	return &Handle{
		id:       id,
		arena:    g,
		tuning:   t,
		position: start,
	}
}

func (h *Handle) ID() ID                 { return h.id }
func (h *Handle) Position() geom.Vec2    { return h.position }
func (h *Handle) Velocity() geom.Vec2    { return h.velocity }
func (h *Handle) Held() bool             { return h.grip != nil }
func (h *Handle) Circle() geom.Circle    { return h.arena.HandleCircle(h.position) }
func (h *Handle) Tuning() Tuning         { return *h.tuning }
func (h *Handle) Arena() *arena.Geometry { return h.arena }
func (h *Handle) Speed() float64         { return h.velocity.Len() }

func (h *Handle) Contains(p geom.Vec2) bool {
	return h.position.Distance(p) <= h.arena.HandleRadius
}

// Pointer returns the id of the pointer holding the handle.
func (h *Handle) Pointer() (PointerID, bool) {
	if h.grip == nil {
		return 0, false
	}
	return h.grip.pointer, true
}

// Mass is ImmovableMass while held so contacts treat the handle as a wall.
func (h *Handle) Mass() float64 {
	if h.Held() {
		return collision.ImmovableMass
	}
	return FreeMass
}

// Grab moves the handle to the held state. A handle already held by any
// pointer ignores the call.
func (h *Handle) Grab(pointer PointerID) bool {
	if h.Held() {
		return false
	}
	h.velocity = geom.Zero
	h.grip = newGrip(pointer, h.position)
	return true
}

// Release frees the handle when pointer is the one holding it. The last
// derived velocity is kept.
func (h *Handle) Release(pointer PointerID) bool {
	if h.grip == nil || h.grip.pointer != pointer {
		return false
	}
	h.grip = nil
	return true
}

// MoveTo places a held handle at p, clamped to the legal range.
func (h *Handle) MoveTo(pointer PointerID, p geom.Vec2) bool {
	if h.grip == nil || h.grip.pointer != pointer || !p.IsFinite() {
		return false
	}
	h.position = h.arena.ClampHandle(p)
	return true
}

// Launch sets the velocity of a free handle.
func (h *Handle) Launch(v geom.Vec2) bool {
	if h.Held() || !v.IsFinite() {
		return false
	}
	h.velocity = v
	return true
}

// Reset places the handle at p, at rest and free.
func (h *Handle) Reset(p geom.Vec2) {
	h.position = p
	h.velocity = geom.Zero
	h.grip = nil
}

// Update advances the handle by dt milliseconds against the opponent's
// current state. Non-positive or non-finite dt is ignored.
func (h *Handle) Update(dt float64, other *Handle) Report {
	if !(dt > 0) || math.IsInf(dt, 0) {
		return Report{Held: h.Held()}
	}
	if h.Held() {
		h.velocity = h.grip.sample(h.position, dt, h.tuning.VelocityReducer).
			CircularClamp(h.tuning.MaxHeldSpeed)
		return Report{Held: true}
	}
	return h.updateFree(dt, other)
}

func (h *Handle) updateFree(dt float64, other *Handle) Report {
	var r Report

	next := h.position.Add(h.velocity.Scale(dt))
	side := collision.CircleToBounds(h.arena.HandleCircle(next), h.arena.InnerBounds)
	if v := reflect(h.velocity, side); v != h.velocity {
		h.velocity = v
		r.Wall = side
	}

	h.position = h.position.Add(h.velocity.Scale(dt))

	if other != nil {
		r.HitOpponent = h.collide(dt, other)

		if depth := collision.Penetration(h.Circle(), other.Circle()); depth > 0 {
			h.position = h.position.Add(h.separation(other).Scale(depth))
			r.Depenetrated = true
		}
	}

	if side := h.confine(); side != collision.None && r.Wall == collision.None {
		r.Wall = side
	}

	h.velocity = h.velocity.CircularClamp(h.tuning.MaxFreeSpeed)

	if h.velocity.Len() > h.tuning.RestEpsilon {
		h.velocity = h.velocity.Scale(1 - h.tuning.Friction)
	} else {
		h.velocity = geom.Zero
	}

	return r
}

// collide resolves the contact with the opponent's predicted position.
// A held opponent keeps its pointer-driven velocity and position.
func (h *Handle) collide(dt float64, other *Handle) bool {
	otherNext := other.position.Add(other.velocity.Scale(dt))
	if !collision.CircleToCircle(h.Circle(), h.arena.HandleCircle(otherNext)) {
		return false
	}

	a := collision.Body{Mass: h.Mass(), Velocity: h.velocity, Position: h.position}
	b := collision.Body{Mass: other.Mass(), Velocity: other.velocity, Position: otherNext}
	if !collision.Approaching(a, b) {
		return false
	}

	va, vb := collision.Resolve(a, b)
	h.velocity = va
	h.position = h.position.Add(va.Scale(dt))
	if !other.Held() {
		other.velocity = vb
		other.position = other.position.Add(vb.Scale(dt))
		other.confine()
	}
	return true
}

// confine clamps the position to the legal range and turns the velocity
// inward on every clamped axis. It returns a wall that was clamped against.
func (h *Handle) confine() collision.Side {
	p := h.arena.ClampHandle(h.position)
	xSide, ySide := collision.None, collision.None
	switch {
	case p.X > h.position.X:
		xSide = collision.Left
	case p.X < h.position.X:
		xSide = collision.Right
	}
	switch {
	case p.Y > h.position.Y:
		ySide = collision.Top
	case p.Y < h.position.Y:
		ySide = collision.Bottom
	}

	h.position = p
	h.velocity = reflect(reflect(h.velocity, xSide), ySide)
	if ySide != collision.None {
		return ySide
	}
	return xSide
}

// separation is the unit vector pushing h away from other. Coincident
// centers fall back to the reverse of h's velocity, then toward h's own
// half of the table.
func (h *Handle) separation(other *Handle) geom.Vec2 {
	if n := h.position.Sub(other.position).Normalize(); n != geom.Zero {
		return n
	}
	if n := h.velocity.Neg().Normalize(); n != geom.Zero {
		return n
	}
	if h.id == Two {
		return geom.V(0, -1)
	}
	return geom.V(0, 1)
}

// reflect points the velocity component normal to side back into the table.
func reflect(v geom.Vec2, side collision.Side) geom.Vec2 {
	switch side {
	case collision.Left:
		v.X = math.Abs(v.X)
	case collision.Right:
		v.X = -math.Abs(v.X)
	case collision.Top:
		v.Y = math.Abs(v.Y)
	case collision.Bottom:
		v.Y = -math.Abs(v.Y)
	}
	return v
}
