package config

import (
	"fmt"
	"os"

	"github.com/san-kum/bounce/internal/dynamo"
	"github.com/san-kum/bounce/internal/physics"
	"github.com/san-kum/bounce/internal/sim"
	"gopkg.in/yaml.v3"
)

const (
	DefaultWidth  = 1200
	DefaultHeight = 750
	DefaultFPS    = 60
	DefaultTheme  = "classic"
)

type Config struct {
	Width     float64      `yaml:"width"`
	Height    float64      `yaml:"height"`
	FPS       int          `yaml:"fps"`
	Seed      int64        `yaml:"seed"`
	Pairs     string       `yaml:"pairs"`
	MaxBodies int          `yaml:"max_bodies"`
	MaxDt     float64      `yaml:"max_dt"`
	Theme     string       `yaml:"theme"`
	Tuning    TuningConfig `yaml:"tuning"`
}

type TuningConfig struct {
	DampingX             float64 `yaml:"damping_x"`
	DampingY             float64 `yaml:"damping_y"`
	Damping              string  `yaml:"damping"`
	GravityBase          float64 `yaml:"gravity_base"`
	GravityMass          float64 `yaml:"gravity_mass"`
	MaxVelBase           float64 `yaml:"max_vel_base"`
	MaxVelPerMass        float64 `yaml:"max_vel_per_mass"`
	Clamp                string  `yaml:"clamp"`
	WallRestitution      float64 `yaml:"wall_restitution"`
	CollisionRestitution float64 `yaml:"collision_restitution"`
	PullStrength         float64 `yaml:"pull_strength"`
	SpawnRadiusMin       float64 `yaml:"spawn_radius_min"`
	SpawnRadiusSpan      float64 `yaml:"spawn_radius_span"`
	MassFactor           float64 `yaml:"mass_factor"`
}

func DefaultConfig() *Config {
	t := physics.DefaultTuning()
	return &Config{
		Width:  DefaultWidth,
		Height: DefaultHeight,
		FPS:    DefaultFPS,
		Pairs:  string(sim.PairsOrdered),
		Theme:  DefaultTheme,
		Tuning: TuningConfig{
			DampingX:             t.DampingX,
			DampingY:             t.DampingY,
			Damping:              string(t.Damping),
			GravityBase:          t.GravityBase,
			GravityMass:          t.GravityMass,
			MaxVelBase:           t.MaxVelBase,
			MaxVelPerMass:        t.MaxVelPerMass,
			Clamp:                string(t.Clamp),
			WallRestitution:      t.WallRestitution,
			CollisionRestitution: t.CollisionRestitution,
			PullStrength:         t.PullStrength,
			SpawnRadiusMin:       t.SpawnRadiusMin,
			SpawnRadiusSpan:      t.SpawnRadiusSpan,
			MassFactor:           t.MassFactor,
		},
	}
}

// LoadInto reads the yaml file at path over cfg, so keys the file leaves
// out keep cfg's values. cfg is modified and returned.
func LoadInto(path string, cfg *Config) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func Save(path string, cfg *Config) error {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}

// Validate checks every field that would make the simulation meaningless.
func (c *Config) Validate() error {
	invalid := func(format string, args ...any) error {
		return fmt.Errorf("%w: %s", dynamo.ErrInvalidConfig, fmt.Sprintf(format, args...))
	}
	switch {
	case c.Width <= 0 || c.Height <= 0:
		return invalid("world size must be positive, got %.0fx%.0f", c.Width, c.Height)
	case c.FPS <= 0:
		return invalid("fps must be positive, got %d", c.FPS)
	case c.MaxBodies < 0:
		return invalid("max_bodies must not be negative, got %d", c.MaxBodies)
	case c.MaxDt < 0:
		return invalid("max_dt must not be negative, got %f", c.MaxDt)
	case c.Tuning.SpawnRadiusMin <= 0 || c.Tuning.SpawnRadiusSpan < 0:
		return invalid("spawn radius range must be positive")
	case c.Tuning.MassFactor <= 0:
		return invalid("mass_factor must be positive, got %f", c.Tuning.MassFactor)
	case c.Tuning.MaxVelPerMass == 0:
		return invalid("max_vel_per_mass must not be zero")
	}
	switch sim.PairMode(c.Pairs) {
	case sim.PairsOrdered, sim.PairsUnique:
	default:
		return invalid("unknown pairs mode %q", c.Pairs)
	}
	switch physics.DampingMode(c.Tuning.Damping) {
	case physics.DampingPerFrame, physics.DampingTimeScaled:
	default:
		return invalid("unknown damping mode %q", c.Tuning.Damping)
	}
	switch physics.ClampMode(c.Tuning.Clamp) {
	case physics.ClampUpper, physics.ClampSymmetric:
	default:
		return invalid("unknown clamp mode %q", c.Tuning.Clamp)
	}
	return nil
}

// SimConfig converts the file representation into the world's configuration.
func (c *Config) SimConfig() sim.Config {
	t := physics.DefaultTuning()
	t.DampingX = c.Tuning.DampingX
	t.DampingY = c.Tuning.DampingY
	t.Damping = physics.DampingMode(c.Tuning.Damping)
	t.GravityBase = c.Tuning.GravityBase
	t.GravityMass = c.Tuning.GravityMass
	t.MaxVelBase = c.Tuning.MaxVelBase
	t.MaxVelPerMass = c.Tuning.MaxVelPerMass
	t.Clamp = physics.ClampMode(c.Tuning.Clamp)
	t.WallRestitution = c.Tuning.WallRestitution
	t.CollisionRestitution = c.Tuning.CollisionRestitution
	t.PullStrength = c.Tuning.PullStrength
	t.SpawnRadiusMin = c.Tuning.SpawnRadiusMin
	t.SpawnRadiusSpan = c.Tuning.SpawnRadiusSpan
	t.MassFactor = c.Tuning.MassFactor

	return sim.Config{
		Bounds:    dynamo.Bounds{W: c.Width, H: c.Height},
		Tuning:    t,
		Pairs:     sim.PairMode(c.Pairs),
		MaxBodies: c.MaxBodies,
		MaxDt:     c.MaxDt,
	}
}
