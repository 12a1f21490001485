package metrics

import (
	"github.com/san-kum/airhockey/internal/collision"
	"github.com/san-kum/airhockey/internal/sim"
)

// HandleCollisions counts ticks in which the handles exchanged momentum.
// Both handles reporting the same contact in one tick count once.
type HandleCollisions struct {
	name  string
	count int
}

func NewHandleCollisions() *HandleCollisions {
	return &HandleCollisions{name: "handle_collisions"}
}

func (c *HandleCollisions) Name() string { return c.name }

func (c *HandleCollisions) Observe(f sim.Frame, r sim.StepReport, t float64) {
	for _, h := range r.Handles {
		if h.HitOpponent {
			c.count++
			return
		}
	}
}

func (c *HandleCollisions) Value() float64 { return float64(c.count) }
func (c *HandleCollisions) Reset()         { c.count = 0 }

// WallBounces counts reflections off the table walls across both handles.
type WallBounces struct {
	name  string
	count int
}

func NewWallBounces() *WallBounces {
	return &WallBounces{name: "wall_bounces"}
}

func (w *WallBounces) Name() string { return w.name }

func (w *WallBounces) Observe(f sim.Frame, r sim.StepReport, t float64) {
	for _, h := range r.Handles {
		if h.Wall != collision.None {
			w.count++
		}
	}
}

func (w *WallBounces) Value() float64 { return float64(w.count) }
func (w *WallBounces) Reset()         { w.count = 0 }

// Defaults returns a fresh instance of every metric.
func Defaults() []sim.Metric {
	return []sim.Metric{
		NewKineticEnergy(),
		NewMomentum(),
		NewPeakSpeed(),
		NewHandleCollisions(),
		NewWallBounces(),
	}
}
