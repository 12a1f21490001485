package sim

import (
	"context"
	"fmt"
)

// Runner plays a Driver against a Simulation and records the outcome.
type Runner struct {
	sim       *Simulation
	driver    Driver
	metrics   []Metric
	observers []Observer
}

func NewRunner(s *Simulation, d Driver) *Runner {
	return &Runner{
		sim:       s,
		driver:    d,
		metrics:   make([]Metric, 0),
		observers: make([]Observer, 0),
	}
}

func (r *Runner) AddMetric(m Metric)     { r.metrics = append(r.metrics, m) }
func (r *Runner) AddObserver(o Observer) { r.observers = append(r.observers, o) }

func (r *Runner) Simulation() *Simulation { return r.sim }

func (r *Runner) Run(ctx context.Context, cfg Config) (*Result, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	steps := int(cfg.Duration / cfg.Dt)
	result := &Result{
		Frames:  make([]Frame, 0, steps+1),
		Times:   make([]float64, 0, steps+1),
		Reports: make([]StepReport, 0, steps),
		Metrics: make(map[string]float64),
		Errors:  make([]error, 0),
	}

	for _, m := range r.metrics {
		m.Reset()
	}

	if r.driver != nil {
		r.driver.Start(r.sim)
	}

	t := 0.0
	result.Frames = append(result.Frames, r.sim.Snapshot())
	result.Times = append(result.Times, t)

	for i := 0; i < steps; i++ {
		select {
		case <-ctx.Done():
			return result, ctx.Err()
		default:
		}

		if r.driver != nil {
			r.driver.Drive(r.sim, t)
		}

		report := r.sim.Step(cfg.Dt)
		t += cfg.Dt
		frame := r.sim.Snapshot()

		if cfg.ValidateState && !frame.IsValid() {
			result.Errors = append(result.Errors, SimError{
				Time:    t,
				Step:    i,
				Message: "invalid state (NaN/Inf)",
				Wrapped: ErrInvalidState,
			})
			break
		}

		for _, m := range r.metrics {
			m.Observe(frame, report, t)
		}
		for _, obs := range r.observers {
			obs.OnStep(frame, report, t)
		}

		result.StepsTaken++
		result.Frames = append(result.Frames, frame)
		result.Times = append(result.Times, t)
		result.Reports = append(result.Reports, report)
	}

	for _, m := range r.metrics {
		result.Metrics[m.Name()] = m.Value()
	}

	return result, nil
}

// RunWithCallback steps until the duration elapses or callback returns false.
// Nothing is recorded.
func (r *Runner) RunWithCallback(ctx context.Context, cfg Config, callback func(Frame, StepReport, float64) bool) error {
	if err := cfg.Validate(); err != nil {
		return err
	}

	if r.driver != nil {
		r.driver.Start(r.sim)
	}

	for t := 0.0; t < cfg.Duration; {
		select {
		case <-ctx.Done():
			return ctx.Err()
		default:
		}

		if r.driver != nil {
			r.driver.Drive(r.sim, t)
		}
		report := r.sim.Step(cfg.Dt)
		t += cfg.Dt

		frame := r.sim.Snapshot()
		if cfg.ValidateState && !frame.IsValid() {
			return fmt.Errorf("%w at t=%.4f", ErrInvalidState, t)
		}
		if !callback(frame, report, t) {
			return nil
		}
	}

	return nil
}
