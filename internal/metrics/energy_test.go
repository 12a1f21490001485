package metrics

import (
	"math"
	"testing"

	"github.com/san-kum/airhockey/internal/collision"
	"github.com/san-kum/airhockey/internal/geom"
	"github.com/san-kum/airhockey/internal/handle"
	"github.com/san-kum/airhockey/internal/sim"
)

func frame(v1, v2 geom.Vec2, held1, held2 bool) sim.Frame {
	return sim.Frame{Handles: [2]sim.HandleState{
		{Velocity: v1, Held: held1},
		{Velocity: v2, Held: held2},
	}}
}

func TestKineticEnergy(t *testing.T) {
	m := NewKineticEnergy()

	m.Observe(frame(geom.V(3, 4), geom.Zero, false, false), sim.StepReport{}, 0)
	m.Observe(frame(geom.Zero, geom.Zero, false, false), sim.StepReport{}, 1)

	expected := (0.5 * 25) / 2
	if math.Abs(m.Value()-expected) > 1e-9 {
		t.Errorf("expected energy %f, got %f", expected, m.Value())
	}

	m.Reset()
	if m.Value() != 0 {
		t.Error("expected zero energy after reset")
	}
}

func TestMomentum(t *testing.T) {
	tests := []struct {
		name string
		f    sim.Frame
		want float64
	}{
		{"head on cancels", frame(geom.V(0, 2), geom.V(0, -2), false, false), 0},
		{"same direction adds", frame(geom.V(1, 0), geom.V(2, 0), false, false), 3},
		{"held handle ignored", frame(geom.V(3, 4), geom.V(100, 0), false, true), 5},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m := NewMomentum()
			m.Observe(tt.f, sim.StepReport{}, 0)
			if got := m.Value(); math.Abs(got-tt.want) > 1e-9 {
				t.Errorf("got %f, want %f", got, tt.want)
			}
		})
	}
}

func TestPeakSpeed(t *testing.T) {
	m := NewPeakSpeed()
	m.Observe(frame(geom.V(1, 0), geom.V(0, 2), false, false), sim.StepReport{}, 0)
	m.Observe(frame(geom.V(3, 4), geom.Zero, false, false), sim.StepReport{}, 1)
	m.Observe(frame(geom.Zero, geom.Zero, false, false), sim.StepReport{}, 2)

	if m.Value() != 5 {
		t.Errorf("expected peak 5, got %f", m.Value())
	}
}

func TestContactCounters(t *testing.T) {
	hits := NewHandleCollisions()
	walls := NewWallBounces()

	reports := []sim.StepReport{
		{Handles: [2]handle.Report{{HitOpponent: true}, {HitOpponent: true}}},
		{Handles: [2]handle.Report{{Wall: collision.Left}, {Wall: collision.Bottom}}},
		{Handles: [2]handle.Report{{}, {HitOpponent: true, Wall: collision.Right}}},
		{},
	}
	for i, r := range reports {
		hits.Observe(sim.Frame{}, r, float64(i))
		walls.Observe(sim.Frame{}, r, float64(i))
	}

	if hits.Value() != 2 {
		t.Errorf("handle_collisions = %f, want 2", hits.Value())
	}
	if walls.Value() != 3 {
		t.Errorf("wall_bounces = %f, want 3", walls.Value())
	}

	hits.Reset()
	walls.Reset()
	if hits.Value() != 0 || walls.Value() != 0 {
		t.Error("expected counters to reset")
	}
}

func TestDefaultsHaveUniqueNames(t *testing.T) {
	seen := map[string]bool{}
	for _, m := range Defaults() {
		if seen[m.Name()] {
			t.Errorf("duplicate metric %q", m.Name())
		}
		seen[m.Name()] = true
	}
	if len(seen) != 5 {
		t.Errorf("expected 5 metrics, got %d", len(seen))
	}
}
