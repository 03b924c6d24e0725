package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/san-kum/rigidsim/internal/scene"
	"github.com/san-kum/rigidsim/internal/vector"
	"github.com/san-kum/rigidsim/internal/world"
)

const (
	DefaultDt          = 1.0 / 60.0
	DefaultDuration    = 10.0
	DefaultRecordEvery = 1
	DefaultPreset      = "drop"
)

type Config struct {
	Preset          string       `yaml:"preset"`
	Dt              float64      `yaml:"dt"`
	Duration        float64      `yaml:"duration"`
	Gravity         [2]float64   `yaml:"gravity,flow"`
	GravityEnabled  bool         `yaml:"gravity_enabled"`
	StaticFriction  float64      `yaml:"static_friction"`
	KineticFriction float64      `yaml:"kinetic_friction"`
	RecordEvery     int          `yaml:"record_every"`
	Scene           *scene.Scene `yaml:"scene,omitempty"`
}

func DefaultConfig() *Config {
	return &Config{
		Preset:          DefaultPreset,
		Dt:              DefaultDt,
		Duration:        DefaultDuration,
		Gravity:         world.DefaultGravity.Array(),
		GravityEnabled:  true,
		StaticFriction:  world.DefaultStaticFriction,
		KineticFriction: world.DefaultKineticFriction,
		RecordEvery:     DefaultRecordEvery,
	}
}

// Load reads a YAML config over the defaults. A config naming a preset but
// no inline scene takes the preset's scene.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	cfg := DefaultConfig()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, err
	}
	if cfg.Scene == nil && cfg.Preset != "" {
		p := GetPreset(cfg.Preset)
		if p == nil {
			return nil, fmt.Errorf("unknown preset %q", cfg.Preset)
		}
		cfg.Scene = p.Scene
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

// Apply loads the scene into w, then the tunables. It leaves w untouched if
// the scene is invalid.
func (c *Config) Apply(w *world.World) error {
	if c.Scene != nil {
		if err := scene.Apply(w, c.Scene); err != nil {
			return err
		}
	}
	w.SetGravity(vector.New(c.Gravity[0], c.Gravity[1]))
	w.SetGravityEnabled(c.GravityEnabled)
	w.SetFriction(c.StaticFriction, c.KineticFriction)
	return nil
}
