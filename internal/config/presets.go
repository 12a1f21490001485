package config

import "sort"

// Presets are complete configs; each starts from DefaultConfig and changes
// only what its name says.
var Presets = map[string]*Config{
	"standard": DefaultConfig(),
	"rally": with(func(c *Config) {
		c.Scenario = "rally"
		c.Duration = 6000
	}),
	"ice": with(func(c *Config) {
		c.Scenario = "rally"
		c.Duration = 10000
		c.Tuning.Friction = 0.001
	}),
	"sticky": with(func(c *Config) {
		c.Scenario = "wall"
		c.Tuning.Friction = 0.05
	}),
	"fine": with(func(c *Config) {
		c.Scenario = "pin"
		c.Dt = 1
	}),
	"big_handles": with(func(c *Config) {
		c.Scenario = "rally"
		c.Arena.HandleRadius = 80
	}),
	"flick": with(func(c *Config) {
		c.Scenario = "flick"
		c.Duration = 3000
	}),
}

func with(fn func(*Config)) *Config {
	c := DefaultConfig()
	fn(c)
	return c
}

// GetPreset returns a copy of the named preset, or nil.
func GetPreset(name string) *Config {
	cfg, ok := Presets[name]
	if !ok {
		return nil
	}
	cp := *cfg
	cp.Handles = append([]HandleConfig(nil), cfg.Handles...)
	return &cp
}

func ListPresets() []string {
	names := make([]string, 0, len(Presets))
	for name := range Presets {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
