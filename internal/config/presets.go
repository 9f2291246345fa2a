package config

import (
	"fmt"
	"sort"

	"github.com/san-kum/bounce/internal/dynamo"
)

// Presets maps a name to a modification of the default configuration.
var Presets = map[string]func(*Config){
	"classic": func(c *Config) {},
	"floaty": func(c *Config) {
		c.Tuning.GravityBase = 0.0002
		c.Tuning.GravityMass = 0.000005
		c.Tuning.DampingY = 0.999
	},
	"pinball": func(c *Config) {
		c.Tuning.WallRestitution = 0.95
		c.Tuning.CollisionRestitution = 1.4
		c.Tuning.PullStrength = 0.06
		c.Tuning.Clamp = "symmetric"
	},
	"heavy": func(c *Config) {
		c.Tuning.GravityMass = 0.00006
		c.Tuning.CollisionRestitution = 1.0
		c.Tuning.WallRestitution = 0.5
		c.Tuning.SpawnRadiusMin = 45
		c.Tuning.SpawnRadiusSpan = 30
	},
	"steady": func(c *Config) {
		c.Pairs = "unique"
		c.Tuning.Damping = "time-scaled"
		c.Tuning.Clamp = "symmetric"
		c.MaxBodies = 40
		c.MaxDt = 50
	},
}

// GetPreset returns the default configuration with the named preset
// applied, or nil when the name is unknown.
func GetPreset(name string) *Config {
	apply, ok := Presets[name]
	if !ok {
		return nil
	}
	cfg := DefaultConfig()
	apply(cfg)
	return cfg
}

// MustPreset is GetPreset with an error for unknown names.
func MustPreset(name string) (*Config, error) {
	cfg := GetPreset(name)
	if cfg == nil {
		return nil, fmt.Errorf("%w: %s (available: %v)", dynamo.ErrUnknownPreset, name, ListPresets())
	}
	return cfg, nil
}

func ListPresets() []string {
	names := make([]string, 0, len(Presets))
	for name := range Presets {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
