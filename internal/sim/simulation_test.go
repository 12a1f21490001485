package sim

import (
	"bytes"
	"log/slog"
	"strings"
	"testing"

	"github.com/san-kum/airhockey/internal/arena"
	"github.com/san-kum/airhockey/internal/collision"
	"github.com/san-kum/airhockey/internal/geom"
	"github.com/san-kum/airhockey/internal/handle"
)

func newTestSim() *Simulation {
	return New(arena.Default(), handle.DefaultTuning())
}

func TestSimulation_StartingPositions(t *testing.T) {
	s := newTestSim()

	if got := s.Handle(handle.One).Position(); got != geom.V(0, 250) {
		t.Errorf("handle1 starts at %v, want (0,250)", got)
	}
	if got := s.Handle(handle.Two).Position(); got != geom.V(0, -250) {
		t.Errorf("handle2 starts at %v, want (0,-250)", got)
	}
	if s.Handle(handle.ID(2)) != nil || s.Handle(handle.ID(-1)) != nil {
		t.Error("unknown handle ids should return nil")
	}
}

func TestSimulation_PointerLifecycle(t *testing.T) {
	s := newTestSim()
	h1 := s.Handle(handle.One)

	s.OnPointerDown(handle.One, 1, h1.Position())
	if !h1.Held() {
		t.Fatal("pointer down did not grab handle1")
	}

	s.OnPointerMove(1, geom.V(30, 200))
	if got := h1.Position(); got != geom.V(30, 200) {
		t.Errorf("position after move = %v, want (30,200)", got)
	}

	s.OnPointerMove(1, geom.V(30, 900))
	if got := h1.Position(); got != geom.V(30, 460) {
		t.Errorf("position after out of range move = %v, want (30,460)", got)
	}

	s.OnPointerUp(1)
	if h1.Held() {
		t.Error("pointer up did not release handle1")
	}
}

func TestSimulation_MalformedInputIgnored(t *testing.T) {
	s := newTestSim()
	before := s.Snapshot()

	s.OnPointerDown(handle.ID(5), 1, geom.Zero)
	s.OnPointerMove(3, geom.V(10, 10))
	s.OnPointerUp(3)

	if got := s.Snapshot(); got != before {
		t.Errorf("state changed after malformed input: %+v", got)
	}

	h1, h2 := s.Handle(handle.One), s.Handle(handle.Two)
	s.OnPointerDown(handle.One, 1, h1.Position())
	s.OnPointerDown(handle.Two, 1, h2.Position())
	if h2.Held() {
		t.Error("a pointer already holding handle1 grabbed handle2")
	}

	s.OnPointerDown(handle.One, 2, h1.Position())
	if id, _ := s.Handle(handle.One).Pointer(); id != 1 {
		t.Errorf("handle1 pointer = %d, want 1", id)
	}

	s.OnPointerUp(2)
	if !s.Handle(handle.One).Held() {
		t.Error("pointer up from another pointer released handle1")
	}
}

func TestSimulation_PointerDownMustHitHandle(t *testing.T) {
	s := newTestSim()
	h1 := s.Handle(handle.One)

	tests := []struct {
		name string
		at   geom.Vec2
		want bool
	}{
		{"center", geom.V(0, 250), true},
		{"on the rim", geom.V(40, 250), true},
		{"just outside", geom.V(41, 250), false},
		{"table center", geom.Zero, false},
		{"other handle", geom.V(0, -250), false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s.Reset()
			s.OnPointerDown(handle.One, 1, tt.at)
			if got := h1.Held(); got != tt.want {
				t.Errorf("grab at %v: held = %v, want %v", tt.at, got, tt.want)
			}
			s.OnPointerUp(1)
		})
	}
}

func TestSimulation_HandleAt(t *testing.T) {
	s := newTestSim()

	tests := []struct {
		at     geom.Vec2
		want   handle.ID
		wantOK bool
	}{
		{geom.V(0, 250), handle.One, true},
		{geom.V(39, 250), handle.One, true},
		{geom.V(0, -280), handle.Two, true},
		{geom.V(0, 0), 0, false},
		{geom.V(41, 250), 0, false},
	}

	for _, tt := range tests {
		id, ok := s.HandleAt(tt.at)
		if ok != tt.wantOK || (ok && id != tt.want) {
			t.Errorf("HandleAt(%v) = %v, %v; want %v, %v", tt.at, id, ok, tt.want, tt.wantOK)
		}
	}
}

func TestSimulation_FreeHandleBouncesAndRests(t *testing.T) {
	s := newTestSim()
	h1 := s.Handle(handle.One)
	h1.Launch(geom.V(5, 0))

	maxX := s.Arena().MaxHandlePosition.X
	bounces := 0
	prevSpeed := h1.Speed()

	for i := 0; i < 2000; i++ {
		r := s.Step(1)

		if r.Handles[handle.One].Wall != collision.None {
			if r.Handles[handle.One].Wall != collision.Right {
				t.Fatalf("step %d: bounced off %v, want right", i, r.Handles[handle.One].Wall)
			}
			bounces++
		}

		p, v := h1.Position(), h1.Velocity()
		if p.Y != 250 || v.Y != 0 {
			t.Fatalf("step %d: left the straight line: p=%v v=%v", i, p, v)
		}
		if p.X >= maxX {
			t.Fatalf("step %d: x=%v reached the wall limit %v", i, p.X, maxX)
		}
		if bounces == 0 && v.X < 0 {
			t.Fatalf("step %d: reversed before touching the wall", i)
		}
		if bounces > 0 && v.X > 0 {
			t.Fatalf("step %d: moving toward the wall after the bounce", i)
		}
		if h1.Speed() > prevSpeed {
			t.Fatalf("step %d: speed grew from %v to %v", i, prevSpeed, h1.Speed())
		}
		prevSpeed = h1.Speed()
	}

	if bounces != 1 {
		t.Errorf("bounces = %d, want 1", bounces)
	}
	if h1.Velocity() != geom.Zero {
		t.Errorf("final velocity = %v, want exactly zero", h1.Velocity())
	}
}

func TestSimulation_ConvergingHandlesNeverEndOverlapping(t *testing.T) {
	s := newTestSim()
	h1, h2 := s.Handle(handle.One), s.Handle(handle.Two)
	h1.Launch(geom.V(0, -3))
	h2.Launch(geom.V(0.4, 3))

	hit := false
	for i := 0; i < 400; i++ {
		r := s.Step(5)
		if !hit && (r.Handles[handle.One].HitOpponent || r.Handles[handle.Two].HitOpponent) {
			hit = true
			if h1.Velocity().Y < 0 || h2.Velocity().Y > 0 {
				t.Errorf("handles did not rebound: v1=%v v2=%v", h1.Velocity(), h2.Velocity())
			}
		}
		if depth := collision.Penetration(h1.Circle(), h2.Circle()); depth > 1e-9 {
			t.Fatalf("step %d: handles overlap by %v", i, depth)
		}
		if !s.Snapshot().IsValid() {
			t.Fatalf("step %d: invalid state %+v", i, s.Snapshot())
		}
	}

	if !hit {
		t.Fatal("handles never collided")
	}
}

func TestSimulation_HeldHandleActsAsWall(t *testing.T) {
	s := newTestSim()
	h1, h2 := s.Handle(handle.One), s.Handle(handle.Two)

	s.OnPointerDown(handle.Two, 4, h2.Position())
	h1.Launch(geom.V(0, -2))
	start := h2.Position()

	for i := 0; i < 300; i++ {
		s.Step(5)
		if depth := collision.Penetration(h1.Circle(), h2.Circle()); depth > 1e-9 {
			t.Fatalf("step %d: handles overlap by %v", i, depth)
		}
	}

	if h2.Position() != start || h2.Velocity() != geom.Zero {
		t.Errorf("held handle moved: p=%v v=%v", h2.Position(), h2.Velocity())
	}
	if h1.Velocity().Y < 0 {
		t.Errorf("handle1 did not bounce back: v=%v", h1.Velocity())
	}
}

func TestSimulation_Reset(t *testing.T) {
	s := newTestSim()
	s.OnPointerDown(handle.One, 1, s.Handle(handle.One).Position())
	s.OnPointerMove(1, geom.V(100, 100))
	s.Handle(handle.Two).Launch(geom.V(1, 1))
	s.Step(16)

	s.Reset()

	want := New(arena.Default(), handle.DefaultTuning()).Snapshot()
	if got := s.Snapshot(); got != want {
		t.Errorf("Reset() = %+v, want %+v", got, want)
	}
}

func TestSimulation_LogsContacts(t *testing.T) {
	var buf bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug}))
	s := New(arena.Default(), handle.DefaultTuning(), WithLogger(logger))

	s.OnPointerDown(handle.Two, 1, s.Handle(handle.Two).Position())
	s.Handle(handle.One).Reset(geom.V(255, 0))
	s.Handle(handle.One).Launch(geom.V(1, 0))
	s.Step(10)
	s.OnPointerUp(1)

	out := buf.String()
	for _, msg := range []string{"grab", "wall bounce", "release"} {
		if !strings.Contains(out, msg) {
			t.Errorf("log output missing %q:\n%s", msg, out)
		}
	}
}
