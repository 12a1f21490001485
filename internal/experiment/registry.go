package experiment

import (
	"fmt"
	"sort"

	"github.com/san-kum/airhockey/internal/metrics"
	"github.com/san-kum/airhockey/internal/scenario"
	"github.com/san-kum/airhockey/internal/sim"
)

type Registry struct {
	metrics map[string]func() sim.Metric
}

func NewRegistry() *Registry {
	r := &Registry{
		metrics: make(map[string]func() sim.Metric),
	}

	r.metrics["kinetic_energy"] = func() sim.Metric { return metrics.NewKineticEnergy() }
	r.metrics["momentum"] = func() sim.Metric { return metrics.NewMomentum() }
	r.metrics["peak_speed"] = func() sim.Metric { return metrics.NewPeakSpeed() }
	r.metrics["handle_collisions"] = func() sim.Metric { return metrics.NewHandleCollisions() }
	r.metrics["wall_bounces"] = func() sim.Metric { return metrics.NewWallBounces() }

	return r
}

// GetScenario returns a preset, or loads a script when name is a YAML path.
func (r *Registry) GetScenario(name string) (scenario.Scenario, error) {
	return scenario.Resolve(name)
}

func (r *Registry) ListScenarios() []string {
	return scenario.List()
}

func (r *Registry) GetMetric(name string) (sim.Metric, error) {
	fn, ok := r.metrics[name]
	if !ok {
		return nil, fmt.Errorf("unknown metric: %s", name)
	}
	return fn(), nil
}

func (r *Registry) ListMetrics() []string {
	names := make([]string, 0, len(r.metrics))
	for name := range r.metrics {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Metrics builds the named metrics, or all of them when names is empty.
func (r *Registry) Metrics(names []string) ([]sim.Metric, error) {
	if len(names) == 0 {
		return metrics.Defaults(), nil
	}
	out := make([]sim.Metric, 0, len(names))
	for _, name := range names {
		m, err := r.GetMetric(name)
		if err != nil {
			return nil, err
		}
		out = append(out, m)
	}
	return out, nil
}
