package experiment

import (
	"context"
	"fmt"
	"sort"

	"github.com/san-kum/airhockey/internal/config"
)

var sweepParams = map[string]func(*config.Config, float64){
	"friction":         func(c *config.Config, v float64) { c.Tuning.Friction = v },
	"velocity_reducer": func(c *config.Config, v float64) { c.Tuning.VelocityReducer = v },
	"max_held_speed":   func(c *config.Config, v float64) { c.Tuning.MaxHeldSpeed = v },
	"max_free_speed":   func(c *config.Config, v float64) { c.Tuning.MaxFreeSpeed = v },
	"handle_radius":    func(c *config.Config, v float64) { c.Arena.HandleRadius = v },
	"dt":               func(c *config.Config, v float64) { c.Dt = v },
}

// SweepParams lists the parameters a Sweep can vary.
func SweepParams() []string {
	names := make([]string, 0, len(sweepParams))
	for name := range sweepParams {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Sweep runs one experiment per evenly spaced value of Param in [Min, Max].
type Sweep struct {
	Param string
	Min   float64
	Max   float64
	Steps int
}

type SweepResult struct {
	Value   float64
	Metrics map[string]float64
	Steps   int
}

func (s Sweep) Run(ctx context.Context, base *config.Config, opts ...Option) ([]SweepResult, error) {
	set, ok := sweepParams[s.Param]
	if !ok {
		return nil, fmt.Errorf("unknown sweep parameter: %s (available: %v)", s.Param, SweepParams())
	}
	if s.Steps < 1 {
		return nil, fmt.Errorf("sweep needs at least 1 step, got %d", s.Steps)
	}

	step := 0.0
	if s.Steps > 1 {
		step = (s.Max - s.Min) / float64(s.Steps-1)
	}

	results := make([]SweepResult, 0, s.Steps)
	for i := 0; i < s.Steps; i++ {
		val := s.Min + float64(i)*step

		cfg := *base
		set(&cfg, val)

		exp, err := New(&cfg, opts...)
		if err != nil {
			return results, fmt.Errorf("%s=%g: %w", s.Param, val, err)
		}
		result, err := exp.Run(ctx)
		if err != nil {
			return results, fmt.Errorf("%s=%g: %w", s.Param, val, err)
		}

		results = append(results, SweepResult{
			Value:   val,
			Metrics: result.Metrics,
			Steps:   result.StepsTaken,
		})
	}

	return results, nil
}
