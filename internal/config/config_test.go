package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/san-kum/rigidsim/internal/body"
	"github.com/san-kum/rigidsim/internal/vector"
	"github.com/san-kum/rigidsim/internal/world"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()

	if cfg.Preset != "drop" {
		t.Errorf("expected preset drop, got %s", cfg.Preset)
	}
	if cfg.Dt <= 0 {
		t.Error("dt should be positive")
	}
	if cfg.Duration <= 0 {
		t.Error("duration should be positive")
	}
	if cfg.Gravity != [2]float64{0, 9.81} {
		t.Errorf("gravity = %v", cfg.Gravity)
	}
}

func TestGetPreset(t *testing.T) {
	cfg := GetPreset("drop")
	if cfg == nil {
		t.Fatal("expected preset, got nil")
	}
	if len(cfg.Scene.Bodies) != 2 {
		t.Fatalf("expected 2 bodies, got %d", len(cfg.Scene.Bodies))
	}

	cfg.Scene.Bodies[0].Mass = 99
	if Presets["drop"].Scene.Bodies[0].Mass == 99 {
		t.Error("GetPreset returned shared scene")
	}
}

func TestGetPreset_NotFound(t *testing.T) {
	if cfg := GetPreset("nonexistent"); cfg != nil {
		t.Error("expected nil for nonexistent preset")
	}
}

func TestListPresets(t *testing.T) {
	names := ListPresets()
	want := []string{"cradle", "drop", "pool", "slide"}
	if len(names) != len(want) {
		t.Fatalf("expected %v, got %v", want, names)
	}
	for i := range want {
		if names[i] != want[i] {
			t.Errorf("presets[%d] = %s, want %s", i, names[i], want[i])
		}
	}
}

func TestPresetsApply(t *testing.T) {
	for _, name := range ListPresets() {
		t.Run(name, func(t *testing.T) {
			w := world.New()
			if err := GetPreset(name).Apply(w); err != nil {
				t.Fatal(err)
			}
			if w.Len() == 0 {
				t.Error("no bodies")
			}
			w.Step(DefaultDt)
		})
	}
}

func TestApplyTunables(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Scene = nil
	cfg.GravityEnabled = false
	cfg.StaticFriction = 0.9
	cfg.Gravity = [2]float64{1, 2}

	w := world.New()
	w.Add(body.NewSquare(1, vector.Zero, vector.Zero, 1))
	if err := cfg.Apply(w); err != nil {
		t.Fatal(err)
	}
	if w.GravityEnabled() {
		t.Error("gravity still enabled")
	}
	if s, _ := w.Friction(); s != 0.9 {
		t.Errorf("static friction = %f", s)
	}
	if g := w.Gravity(); g.X != 1 || g.Y != 2 {
		t.Errorf("gravity = %v", g)
	}
	if w.Len() != 1 {
		t.Error("nil scene should keep bodies")
	}
}

func TestSaveLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "run.yaml")
	cfg := GetPreset("slide")
	cfg.Dt = 0.005
	if err := Save(path, cfg); err != nil {
		t.Fatal(err)
	}

	loaded, err := Load(path)
	if err != nil {
		t.Fatal(err)
	}
	if loaded.Dt != 0.005 {
		t.Errorf("dt = %f", loaded.Dt)
	}
	if loaded.Scene == nil || len(loaded.Scene.Bodies) != 2 {
		t.Fatal("scene not round-tripped")
	}
	if loaded.Scene.Bodies[1].Width != 200 {
		t.Errorf("floor width = %f", loaded.Scene.Bodies[1].Width)
	}
}

func TestLoadPresetFallback(t *testing.T) {
	path := filepath.Join(t.TempDir(), "run.yaml")
	if err := os.WriteFile(path, []byte("preset: pool\nduration: 3\n"), 0644); err != nil {
		t.Fatal(err)
	}
	cfg, err := Load(path)
	if err != nil {
		t.Fatal(err)
	}
	if cfg.Duration != 3 || cfg.Scene == nil || len(cfg.Scene.Bodies) != 7 {
		t.Errorf("unexpected config %+v", cfg)
	}

	if err := os.WriteFile(path, []byte("preset: nope\n"), 0644); err != nil {
		t.Fatal(err)
	}
	if _, err := Load(path); err == nil {
		t.Error("expected unknown preset error")
	}
}
