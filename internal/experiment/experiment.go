package experiment

import (
	"context"
	"log/slog"

	"github.com/san-kum/airhockey/internal/config"
	"github.com/san-kum/airhockey/internal/control"
	"github.com/san-kum/airhockey/internal/handle"
	"github.com/san-kum/airhockey/internal/scenario"
	"github.com/san-kum/airhockey/internal/sim"
)

// Experiment is one configured run: a table, a scenario and its metrics.
type Experiment struct {
	cfg      *config.Config
	scenario scenario.Scenario
	registry *Registry
	metrics  []string
	logger   *slog.Logger
	guard    float64
}

type Option func(*Experiment)

func WithMetrics(names ...string) Option {
	return func(e *Experiment) { e.metrics = names }
}

func WithLogger(l *slog.Logger) Option {
	return func(e *Experiment) { e.logger = l }
}

// WithGuard puts handle 2 under a control.Guard that moves at most maxStep
// table units per tick.
func WithGuard(maxStep float64) Option {
	return func(e *Experiment) { e.guard = maxStep }
}

func New(cfg *config.Config, opts ...Option) (*Experiment, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	e := &Experiment{cfg: cfg, registry: NewRegistry()}
	for _, opt := range opts {
		opt(e)
	}

	sc, err := e.registry.GetScenario(cfg.Scenario)
	if err != nil {
		return nil, err
	}
	if launch, ok := cfg.Launch(); ok {
		sc.Launch = launch
	}
	e.scenario = sc

	return e, nil
}

func (e *Experiment) Scenario() scenario.Scenario { return e.scenario }
func (e *Experiment) Config() *config.Config      { return e.cfg }

// Runner builds a fresh simulation and runner driven by the scenario with
// the given seed.
func (e *Experiment) Runner(seed int64) (*sim.Runner, error) {
	g, err := e.cfg.ToArena()
	if err != nil {
		return nil, err
	}

	var opts []sim.Option
	if e.logger != nil {
		opts = append(opts, sim.WithLogger(e.logger))
	}
	s := sim.New(g, e.cfg.ToTuning(), opts...)

	r := sim.NewRunner(s, e.Driver(seed))
	ms, err := e.registry.Metrics(e.metrics)
	if err != nil {
		return nil, err
	}
	for _, m := range ms {
		r.AddMetric(m)
	}
	return r, nil
}

// Driver replays the scenario, under the guard when one is configured.
func (e *Experiment) Driver(seed int64) sim.Driver {
	d := e.scenario.Driver(seed)
	if e.guard > 0 {
		return control.NewGuard(handle.Two, e.guard, d)
	}
	return d
}

func (e *Experiment) Run(ctx context.Context, observers ...sim.Observer) (*sim.Result, error) {
	r, err := e.Runner(e.cfg.Seed)
	if err != nil {
		return nil, err
	}
	for _, o := range observers {
		r.AddObserver(o)
	}
	return r.Run(ctx, e.cfg.ToSimConfig())
}

// RunEnsemble runs n seeds starting at the configured seed in parallel.
func (e *Experiment) RunEnsemble(ctx context.Context, n int) ([]*sim.Result, error) {
	return sim.NewEnsemble(e.Runner, n, e.cfg.Seed).Run(ctx, e.cfg.ToSimConfig())
}
