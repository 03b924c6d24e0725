package config

import (
	"sort"

	"github.com/san-kum/rigidsim/internal/scene"
)

func circle(id int, mass, x, y, vx, vy, r float64) scene.Body {
	return scene.Body{ID: id, Type: "circle", Mass: mass, Position: []float64{x, y}, Velocity: []float64{vx, vy}, Radius: r}
}

func box(id int, mass, x, y, vx, vy, w, h float64) scene.Body {
	return scene.Body{ID: id, Type: "rectangle", Mass: mass, Position: []float64{x, y}, Velocity: []float64{vx, vy}, Width: w, Height: h}
}

func square(id int, mass, x, y, side float64) scene.Body {
	return scene.Body{ID: id, Type: "square", Mass: mass, Position: []float64{x, y}, Velocity: []float64{0, 0}, SideLength: side}
}

func preset(name string, duration float64, gravity bool, bodies ...scene.Body) *Config {
	cfg := DefaultConfig()
	cfg.Preset = name
	cfg.Duration = duration
	cfg.GravityEnabled = gravity
	cfg.Scene = &scene.Scene{Bodies: bodies, Gravity: []float64{cfg.Gravity[0], cfg.Gravity[1]}}
	return cfg
}

var Presets = map[string]*Config{
	"drop": preset("drop", 5, true,
		circle(1, 1, 0, 0, 0, 0, 10),
		square(2, 0, 0, 30, 20),
	),
	"cradle": preset("cradle", 10, false,
		circle(1, 1, -60, 0, 20, 0, 5),
		circle(2, 1, 0, 0, 0, 0, 5),
		circle(3, 1, 12, 0, 0, 0, 5),
	),
	"slide": preset("slide", 8, true,
		box(1, 2, -40, -20, 15, 0, 8, 8),
		box(2, 0, -100, 0, 0, 0, 200, 10),
	),
	"pool": preset("pool", 10, false,
		circle(1, 1, -80, 0, 60, 0, 4),
		circle(2, 1, 0, 0, 0, 0, 4),
		circle(3, 1, 7, -4, 0, 0, 4),
		circle(4, 1, 7, 4, 0, 0, 4),
		circle(5, 1, 14, -8, 0, 0, 4),
		circle(6, 1, 14, 0, 0, 0, 4),
		circle(7, 1, 14, 8, 0, 0, 4),
	),
}

// GetPreset returns a copy of the named preset, or nil.
func GetPreset(name string) *Config {
	cfg, ok := Presets[name]
	if !ok {
		return nil
	}
	out := *cfg
	if cfg.Scene != nil {
		sc := *cfg.Scene
		sc.Bodies = append([]scene.Body(nil), cfg.Scene.Bodies...)
		out.Scene = &sc
	}
	return &out
}

func ListPresets() []string {
	names := make([]string, 0, len(Presets))
	for name := range Presets {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
