package sim

import (
	"io"
	"log/slog"

	"github.com/san-kum/airhockey/internal/arena"
	"github.com/san-kum/airhockey/internal/collision"
	"github.com/san-kum/airhockey/internal/geom"
	"github.com/san-kum/airhockey/internal/handle"
)

type Simulation struct {
	arena   *arena.Geometry
	tuning  *handle.Tuning
	handles [2]*handle.Handle
	log     *slog.Logger
}

type Option func(*Simulation)

// WithLogger sends debug records for contacts and pointer capture to l.
func WithLogger(l *slog.Logger) Option {
	return func(s *Simulation) {
		if l != nil {
			s.log = l
		}
	}
}

// New places both handles at their starting positions.
func New(g *arena.Geometry, t handle.Tuning, opts ...Option) *Simulation {
	s := &Simulation{
		arena:  g,
		tuning: &t,
		log:    slog.New(slog.NewTextHandler(io.Discard, nil)),
	}
	for _, opt := range opts {
		opt(s)
	}

	starts := g.StartingPositions()
	s.handles[handle.One] = handle.New(handle.One, starts[handle.One], g, s.tuning)
	s.handles[handle.Two] = handle.New(handle.Two, starts[handle.Two], g, s.tuning)
	return s
}

func (s *Simulation) Arena() *arena.Geometry { return s.arena }
func (s *Simulation) Tuning() handle.Tuning  { return *s.tuning }

// Handle returns the handle with the given id, or nil for an unknown id.
func (s *Simulation) Handle(id handle.ID) *handle.Handle {
	if id < handle.One || id > handle.Two {
		return nil
	}
	return s.handles[id]
}

// Step advances handle 1 against handle 2, then handle 2 against handle 1.
func (s *Simulation) Step(dt float64) StepReport {
	h1, h2 := s.handles[handle.One], s.handles[handle.Two]

	var r StepReport
	r.Handles[handle.One] = h1.Update(dt, h2)
	r.Handles[handle.Two] = h2.Update(dt, h1)

	for id, rep := range r.Handles {
		s.logReport(handle.ID(id), rep)
	}
	return r
}

func (s *Simulation) logReport(id handle.ID, r handle.Report) {
	if r.Wall != collision.None {
		s.log.Debug("wall bounce", "handle", id, "side", r.Wall)
	}
	if r.HitOpponent {
		s.log.Debug("handle collision", "handle", id, "velocity", s.handles[id].Velocity())
	}
	if r.Depenetrated {
		s.log.Debug("depenetrated", "handle", id, "position", s.handles[id].Position())
	}
}

// OnPointerDown binds pointer to the handle when at lies on its circle.
// Unknown handles, misses, handles that are already held and pointers
// already holding a handle are ignored.
func (s *Simulation) OnPointerDown(id handle.ID, pointer handle.PointerID, at geom.Vec2) {
	h := s.Handle(id)
	if h == nil || s.holding(pointer) != nil || !h.Contains(at) {
		return
	}
	if h.Grab(pointer) {
		s.log.Debug("grab", "handle", id, "pointer", pointer, "at", at)
	}
}

// OnPointerMove moves the handle held by pointer, if any.
func (s *Simulation) OnPointerMove(pointer handle.PointerID, at geom.Vec2) {
	if h := s.holding(pointer); h != nil {
		h.MoveTo(pointer, at)
	}
}

// OnPointerUp frees the handle held by pointer, if any.
func (s *Simulation) OnPointerUp(pointer handle.PointerID) {
	if h := s.holding(pointer); h != nil && h.Release(pointer) {
		s.log.Debug("release", "handle", h.ID(), "pointer", pointer, "velocity", h.Velocity())
	}
}

// HandleAt returns the handle whose circle contains p.
func (s *Simulation) HandleAt(p geom.Vec2) (handle.ID, bool) {
	for _, h := range s.handles {
		if h.Contains(p) {
			return h.ID(), true
		}
	}
	return 0, false
}

func (s *Simulation) holding(pointer handle.PointerID) *handle.Handle {
	for _, h := range s.handles {
		if id, ok := h.Pointer(); ok && id == pointer {
			return h
		}
	}
	return nil
}

// Snapshot copies the observable state of both handles.
func (s *Simulation) Snapshot() Frame {
	var f Frame
	for i, h := range s.handles {
		f.Handles[i] = HandleState{
			Position: h.Position(),
			Velocity: h.Velocity(),
			Held:     h.Held(),
		}
	}
	return f
}

// Reset returns both handles to their starting positions, free and at rest.
func (s *Simulation) Reset() {
	starts := s.arena.StartingPositions()
	for i, h := range s.handles {
		h.Reset(starts[i])
	}
}
