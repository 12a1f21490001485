package config

import (
	"bytes"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
	"gopkg.in/yaml.v3"

	"github.com/san-kum/airhockey/internal/arena"
	"github.com/san-kum/airhockey/internal/geom"
	"github.com/san-kum/airhockey/internal/handle"
	"github.com/san-kum/airhockey/internal/sim"
)

const (
	DefaultScenario = "idle"
	DefaultDt       = 1000.0 / 60
	DefaultDuration = 4000.0
)

var ErrInvalid = errors.New("config: invalid")

type Config struct {
	Scenario string         `yaml:"scenario" toml:"scenario"`
	Dt       float64        `yaml:"dt" toml:"dt"`
	Duration float64        `yaml:"duration" toml:"duration"`
	Seed     int64          `yaml:"seed" toml:"seed"`
	Arena    ArenaConfig    `yaml:"arena" toml:"arena"`
	Tuning   TuningConfig   `yaml:"tuning" toml:"tuning"`
	Handles  []HandleConfig `yaml:"handles,omitempty" toml:"handles,omitempty"`
}

type ArenaConfig struct {
	OuterWidth   float64 `yaml:"outer_width" toml:"outer_width"`
	OuterHeight  float64 `yaml:"outer_height" toml:"outer_height"`
	InnerWidth   float64 `yaml:"inner_width" toml:"inner_width"`
	InnerHeight  float64 `yaml:"inner_height" toml:"inner_height"`
	HandleRadius float64 `yaml:"handle_radius" toml:"handle_radius"`
}

type TuningConfig struct {
	Friction        float64 `yaml:"friction" toml:"friction"`
	VelocityReducer float64 `yaml:"velocity_reducer" toml:"velocity_reducer"`
	MaxHeldSpeed    float64 `yaml:"max_held_speed" toml:"max_held_speed"`
	MaxFreeSpeed    float64 `yaml:"max_free_speed" toml:"max_free_speed"`
	RestEpsilon     float64 `yaml:"rest_epsilon" toml:"rest_epsilon"`
}

// HandleConfig is an initial velocity for a free handle, overriding the
// scenario's launch when non-zero.
type HandleConfig struct {
	VX float64 `yaml:"vx" toml:"vx"`
	VY float64 `yaml:"vy" toml:"vy"`
}

func DefaultConfig() *Config {
	t := handle.DefaultTuning()
	return &Config{
		Scenario: DefaultScenario,
		Dt:       DefaultDt,
		Duration: DefaultDuration,
		Arena: ArenaConfig{
			OuterWidth:   arena.DefaultOuterWidth,
			OuterHeight:  arena.DefaultOuterHeight,
			InnerWidth:   arena.DefaultInnerWidth,
			InnerHeight:  arena.DefaultInnerHeight,
			HandleRadius: arena.DefaultHandleRadius,
		},
		Tuning: TuningConfig{
			Friction:        t.Friction,
			VelocityReducer: t.VelocityReducer,
			MaxHeldSpeed:    t.MaxHeldSpeed,
			MaxFreeSpeed:    t.MaxFreeSpeed,
			RestEpsilon:     t.RestEpsilon,
		},
	}
}

func isTOML(path string) bool {
	return strings.EqualFold(filepath.Ext(path), ".toml")
}

// Load reads a YAML file, or TOML when path ends in .toml. Missing fields
// keep their defaults.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	cfg := DefaultConfig()
	if isTOML(path) {
		err = toml.Unmarshal(data, cfg)
	} else {
		err = yaml.Unmarshal(data, cfg)
	}
	if err != nil {
		return nil, fmt.Errorf("config: parse %s: %w", path, err)
	}
	return cfg, nil
}

func Save(path string, cfg *Config) error {
	var data []byte
	if isTOML(path) {
		var buf bytes.Buffer
		if err := toml.NewEncoder(&buf).Encode(cfg); err != nil {
			return err
		}
		data = buf.Bytes()
	} else {
		var err error
		data, err = yaml.Marshal(cfg)
		if err != nil {
			return err
		}
	}
	return os.WriteFile(path, data, 0644)
}

func (c *Config) Validate() error {
	if _, err := c.ToArena(); err != nil {
		return err
	}
	if err := c.ToTuning().Validate(); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalid, err)
	}
	if err := c.ToSimConfig().Validate(); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalid, err)
	}
	if len(c.Handles) > 2 {
		return fmt.Errorf("%w: at most 2 handles, got %d", ErrInvalid, len(c.Handles))
	}
	for i, h := range c.Handles {
		if !geom.V(h.VX, h.VY).IsFinite() {
			return fmt.Errorf("%w: handle %d velocity is not finite", ErrInvalid, i+1)
		}
	}
	return nil
}

func (c *Config) ToArena() (*arena.Geometry, error) {
	g, err := arena.New(
		geom.V(c.Arena.OuterWidth, c.Arena.OuterHeight),
		geom.V(c.Arena.InnerWidth, c.Arena.InnerHeight),
		c.Arena.HandleRadius,
	)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalid, err)
	}
	return g, nil
}

func (c *Config) ToTuning() handle.Tuning {
	return handle.Tuning{
		Friction:        c.Tuning.Friction,
		VelocityReducer: c.Tuning.VelocityReducer,
		MaxHeldSpeed:    c.Tuning.MaxHeldSpeed,
		MaxFreeSpeed:    c.Tuning.MaxFreeSpeed,
		RestEpsilon:     c.Tuning.RestEpsilon,
	}
}

func (c *Config) ToSimConfig() sim.Config {
	return sim.Config{
		Dt:            c.Dt,
		Duration:      c.Duration,
		Seed:          c.Seed,
		ValidateState: true,
	}
}

// Launch returns the configured initial velocities. ok is false when no
// handle velocity is set.
func (c *Config) Launch() (v [2]geom.Vec2, ok bool) {
	for i, h := range c.Handles {
		if i >= len(v) {
			break
		}
		v[i] = geom.V(h.VX, h.VY)
		if v[i] != geom.Zero {
			ok = true
		}
	}
	return v, ok
}
