package config

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/san-kum/bounce/internal/dynamo"
	"github.com/san-kum/bounce/internal/physics"
	"github.com/san-kum/bounce/internal/sim"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()

	if cfg.Width != 1200 || cfg.Height != 750 {
		t.Errorf("expected 1200x750, got %.0fx%.0f", cfg.Width, cfg.Height)
	}
	if cfg.FPS <= 0 {
		t.Error("fps should be positive")
	}
	if err := cfg.Validate(); err != nil {
		t.Errorf("default config should be valid: %v", err)
	}
}

func TestSimConfigRoundTrip(t *testing.T) {
	sc := DefaultConfig().SimConfig()

	if sc.Tuning != physics.DefaultTuning() {
		t.Errorf("expected default tuning, got %+v", sc.Tuning)
	}
	if sc.Pairs != sim.PairsOrdered {
		t.Errorf("expected ordered pairs, got %s", sc.Pairs)
	}
	if sc.Bounds != (dynamo.Bounds{W: 1200, H: 750}) {
		t.Errorf("expected 1200x750 bounds, got %+v", sc.Bounds)
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
	}{
		{"zero width", func(c *Config) { c.Width = 0 }},
		{"negative fps", func(c *Config) { c.FPS = -1 }},
		{"negative capacity", func(c *Config) { c.MaxBodies = -1 }},
		{"bad pairs", func(c *Config) { c.Pairs = "sometimes" }},
		{"bad damping", func(c *Config) { c.Tuning.Damping = "never" }},
		{"bad clamp", func(c *Config) { c.Tuning.Clamp = "lower" }},
		{"zero radius", func(c *Config) { c.Tuning.SpawnRadiusMin = 0 }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultConfig()
			tt.mutate(cfg)
			err := cfg.Validate()
			if !errors.Is(err, dynamo.ErrInvalidConfig) {
				t.Errorf("expected ErrInvalidConfig, got %v", err)
			}
		})
	}
}

func TestSaveLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bounce.yaml")
	cfg := DefaultConfig()
	cfg.Seed = 42
	cfg.Pairs = "unique"
	cfg.Tuning.CollisionRestitution = 1.0

	if err := Save(path, cfg); err != nil {
		t.Fatalf("save failed: %v", err)
	}
	loaded, err := LoadInto(path, DefaultConfig())
	if err != nil {
		t.Fatalf("load failed: %v", err)
	}

	if loaded.Seed != 42 {
		t.Errorf("expected seed 42, got %d", loaded.Seed)
	}
	if loaded.Pairs != "unique" {
		t.Errorf("expected pairs unique, got %s", loaded.Pairs)
	}
	if loaded.Tuning.CollisionRestitution != 1.0 {
		t.Errorf("expected restitution 1.0, got %f", loaded.Tuning.CollisionRestitution)
	}
}

func TestLoadPartialKeepsDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "partial.yaml")
	if err := os.WriteFile(path, []byte("fps: 30\ntuning:\n  pull_strength: 0.05\n"), 0644); err != nil {
		t.Fatal(err)
	}

	cfg, err := LoadInto(path, DefaultConfig())
	if err != nil {
		t.Fatalf("load failed: %v", err)
	}
	if cfg.FPS != 30 {
		t.Errorf("expected fps 30, got %d", cfg.FPS)
	}
	if cfg.Tuning.PullStrength != 0.05 {
		t.Errorf("expected pull strength 0.05, got %f", cfg.Tuning.PullStrength)
	}
	if cfg.Tuning.DampingX != 0.993 {
		t.Errorf("expected default damping 0.993, got %f", cfg.Tuning.DampingX)
	}
}

func TestLoadIntoPreset(t *testing.T) {
	path := filepath.Join(t.TempDir(), "over.yaml")
	if err := os.WriteFile(path, []byte("width: 800\n"), 0644); err != nil {
		t.Fatal(err)
	}

	cfg, err := LoadInto(path, GetPreset("floaty"))
	if err != nil {
		t.Fatalf("load failed: %v", err)
	}
	if cfg.Width != 800 {
		t.Errorf("expected width 800, got %.0f", cfg.Width)
	}
	if cfg.Tuning.GravityBase != 0.0002 {
		t.Errorf("expected preset gravity 0.0002, got %f", cfg.Tuning.GravityBase)
	}
	if cfg.Tuning.DampingY != 0.999 {
		t.Errorf("expected preset damping 0.999, got %f", cfg.Tuning.DampingY)
	}
}

func TestLoadInvalid(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bad.yaml")
	if err := os.WriteFile(path, []byte("pairs: twice\n"), 0644); err != nil {
		t.Fatal(err)
	}
	if _, err := LoadInto(path, DefaultConfig()); !errors.Is(err, dynamo.ErrInvalidConfig) {
		t.Errorf("expected ErrInvalidConfig, got %v", err)
	}
}

func TestGetPreset(t *testing.T) {
	cfg := GetPreset("pinball")
	if cfg == nil {
		t.Fatal("expected preset, got nil")
	}
	if cfg.Tuning.WallRestitution != 0.95 {
		t.Errorf("expected wall restitution 0.95, got %f", cfg.Tuning.WallRestitution)
	}
	for _, name := range ListPresets() {
		if err := GetPreset(name).Validate(); err != nil {
			t.Errorf("preset %s invalid: %v", name, err)
		}
	}
}

func TestGetPreset_NotFound(t *testing.T) {
	if cfg := GetPreset("nonexistent"); cfg != nil {
		t.Error("expected nil for nonexistent preset")
	}
	if _, err := MustPreset("nonexistent"); !errors.Is(err, dynamo.ErrUnknownPreset) {
		t.Errorf("expected ErrUnknownPreset, got %v", err)
	}
}

func TestListPresets(t *testing.T) {
	presets := ListPresets()
	if len(presets) != len(Presets) {
		t.Errorf("expected %d presets, got %d", len(Presets), len(presets))
	}
	if presets[0] != "classic" {
		t.Errorf("expected sorted presets starting with classic, got %v", presets)
	}
}
