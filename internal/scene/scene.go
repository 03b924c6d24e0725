// Package scene serializes a world's bodies and gravity to JSON or YAML.
package scene

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/san-kum/rigidsim/internal/body"
	"github.com/san-kum/rigidsim/internal/vector"
	"github.com/san-kum/rigidsim/internal/world"
)

// DefaultFile is used when no path is given.
const DefaultFile = "scene.json"

var ErrInvalid = errors.New("scene: invalid")

type Body struct {
	ID         int       `json:"id" yaml:"id"`
	Type       string    `json:"type" yaml:"type"`
	Mass       float64   `json:"mass" yaml:"mass"`
	Position   []float64 `json:"position" yaml:"position"`
	Velocity   []float64 `json:"velocity" yaml:"velocity"`
	Radius     float64   `json:"radius,omitempty" yaml:"radius,omitempty"`
	Width      float64   `json:"width,omitempty" yaml:"width,omitempty"`
	Height     float64   `json:"height,omitempty" yaml:"height,omitempty"`
	SideLength float64   `json:"sideLength,omitempty" yaml:"side_length,omitempty"`
}

type Scene struct {
	Bodies  []Body    `json:"bodies" yaml:"bodies"`
	Gravity []float64 `json:"gravity" yaml:"gravity"`
}

// FromBody converts a live body into its serialized form.
func FromBody(b *body.Body) Body {
	d := body.DimsOf(b.Shape())
	return Body{
		ID:         b.ID(),
		Type:       string(b.Kind()),
		Mass:       b.Mass(),
		Position:   b.Position().Slice(),
		Velocity:   b.Velocity().Slice(),
		Radius:     d.Radius,
		Width:      d.Width,
		Height:     d.Height,
		SideLength: d.Side,
	}
}

// parseVec requires two finite components.
func parseVec(name string, v []float64) (vector.Vec2, error) {
	out, ok := vector.FromSlice(v)
	if !ok {
		return vector.Zero, fmt.Errorf("%w: %s needs two components", ErrInvalid, name)
	}
	if !out.IsFinite() {
		return vector.Zero, fmt.Errorf("%w: %s is not finite", ErrInvalid, name)
	}
	return out, nil
}

// Build validates sb and constructs the body it describes.
func (sb Body) Build() (*body.Body, error) {
	kind, err := body.ParseKind(sb.Type)
	if err != nil {
		return nil, err
	}
	if sb.Mass < 0 {
		return nil, fmt.Errorf("%w: body %d: negative mass %g", ErrInvalid, sb.ID, sb.Mass)
	}
	pos, err := parseVec("position", sb.Position)
	if err != nil {
		return nil, fmt.Errorf("body %d: %w", sb.ID, err)
	}
	vel, err := parseVec("velocity", sb.Velocity)
	if err != nil {
		return nil, fmt.Errorf("body %d: %w", sb.ID, err)
	}

	d := body.Dims{Radius: sb.Radius, Width: sb.Width, Height: sb.Height, Side: sb.SideLength}
	var dims []float64
	switch kind {
	case body.KindCircle:
		dims = []float64{d.Radius}
	case body.KindRectangle:
		dims = []float64{d.Width, d.Height}
	case body.KindSquare:
		dims = []float64{d.Side}
	}
	for _, v := range dims {
		if v <= 0 {
			return nil, fmt.Errorf("%w: body %d: %s dimensions must be positive", ErrInvalid, sb.ID, kind)
		}
	}

	shape, err := body.NewShape(kind, d)
	if err != nil {
		return nil, err
	}
	b := body.New(shape, sb.Mass, pos, vel)
	b.SetID(sb.ID)
	return b, nil
}

// Capture snapshots w.
func Capture(w *world.World) *Scene {
	objs := w.Objects()
	s := &Scene{Bodies: make([]Body, 0, len(objs)), Gravity: w.Gravity().Slice()}
	for _, b := range objs {
		s.Bodies = append(s.Bodies, FromBody(b))
	}
	return s
}

// Build validates every body and the gravity vector without touching any
// world.
func (s *Scene) Build() ([]*body.Body, vector.Vec2, error) {
	g := world.DefaultGravity
	if s.Gravity != nil {
		var err error
		if g, err = parseVec("gravity", s.Gravity); err != nil {
			return nil, vector.Zero, err
		}
	}
	bodies := make([]*body.Body, 0, len(s.Bodies))
	for _, sb := range s.Bodies {
		b, err := sb.Build()
		if err != nil {
			return nil, vector.Zero, err
		}
		bodies = append(bodies, b)
	}
	return bodies, g, nil
}

// Apply replaces the content of w with s. Nothing changes if any part of
// s is invalid.
func Apply(w *world.World, s *Scene) error {
	if s == nil {
		return fmt.Errorf("%w: nil scene", ErrInvalid)
	}
	bodies, g, err := s.Build()
	if err != nil {
		return err
	}
	w.Replace(bodies, g)
	return nil
}

// ResolvePath returns DefaultFile for an empty path.
func ResolvePath(path string) string {
	if strings.TrimSpace(path) == "" {
		return DefaultFile
	}
	return path
}

func isYAML(path string) bool {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return true
	}
	return false
}

// Save writes s to path as YAML for .yaml/.yml extensions and JSON
// otherwise.
func Save(path string, s *Scene) error {
	var (
		data []byte
		err  error
	)
	if isYAML(path) {
		data, err = yaml.Marshal(s)
	} else {
		data, err = json.MarshalIndent(s, "", "  ")
	}
	if err != nil {
		return fmt.Errorf("encode scene: %w", err)
	}
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return err
		}
	}
	return os.WriteFile(path, data, 0o644)
}

// Load reads a scene; a missing file yields an error wrapping
// fs.ErrNotExist.
func Load(path string) (*Scene, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("load scene %s: %w", path, err)
	}
	var s Scene
	if isYAML(path) {
		err = yaml.Unmarshal(data, &s)
	} else {
		err = json.Unmarshal(data, &s)
	}
	if err != nil {
		return nil, fmt.Errorf("%w: decode %s: %w", ErrInvalid, path, err)
	}
	return &s, nil
}

func Exists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}
