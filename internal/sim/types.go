package sim

import (
	"fmt"
	"math"

	"github.com/san-kum/airhockey/internal/geom"
	"github.com/san-kum/airhockey/internal/handle"
)

// HandleState is what the output side reads back from one handle.
type HandleState struct {
	Position geom.Vec2
	Velocity geom.Vec2
	Held     bool
}

// Frame is both handles after a tick.
type Frame struct {
	Handles [2]HandleState
}

func (f Frame) IsValid() bool {
	for _, h := range f.Handles {
		if !h.Position.IsFinite() || !h.Velocity.IsFinite() {
			return false
		}
	}
	return true
}

func (f Frame) Handle(id handle.ID) HandleState { return f.Handles[id] }

// StepReport collects the per-handle reports of one tick.
type StepReport struct {
	Handles [2]handle.Report
}

// Driver stands in for the input layer: it is started once and then asked
// to deliver the pointer events due at time t before each tick.
type Driver interface {
	Start(s *Simulation)
	Drive(s *Simulation, t float64)
}

type Metric interface {
	Name() string
	Observe(f Frame, r StepReport, t float64)
	Value() float64
	Reset()
}

type Observer interface {
	OnStep(f Frame, r StepReport, t float64)
}

// Config controls a headless run. Times are in milliseconds.
type Config struct {
	Dt            float64
	Duration      float64
	Seed          int64
	ValidateState bool
}

func DefaultConfig() Config {
	return Config{
		Dt:            1000.0 / 60,
		Duration:      4000,
		ValidateState: true,
	}
}

func (c Config) Validate() error {
	if !(c.Dt > 0) || math.IsInf(c.Dt, 1) {
		return fmt.Errorf("%w: dt must be positive, got %f", ErrInvalidConfig, c.Dt)
	}
	if !(c.Duration > 0) || math.IsInf(c.Duration, 1) {
		return fmt.Errorf("%w: duration must be positive, got %f", ErrInvalidConfig, c.Duration)
	}
	if c.Duration < c.Dt {
		return fmt.Errorf("%w: duration %f shorter than dt %f", ErrInvalidConfig, c.Duration, c.Dt)
	}
	return nil
}

type Result struct {
	Frames     []Frame
	Times      []float64
	Reports    []StepReport
	Metrics    map[string]float64
	StepsTaken int
	Errors     []error
}

// Final returns the last recorded frame.
func (r *Result) Final() Frame {
	if len(r.Frames) == 0 {
		return Frame{}
	}
	return r.Frames[len(r.Frames)-1]
}
