// Package service maps request-shaped inputs onto World operations.
//
// Requests mirror what a transport layer decodes: optional scalars are
// pointers and vectors are slices that must carry at least two components.
// Every request is validated in full before the World is touched.
package service

import (
	"fmt"
	"log/slog"

	"github.com/san-kum/rigidsim/internal/body"
	"github.com/san-kum/rigidsim/internal/scene"
	"github.com/san-kum/rigidsim/internal/vector"
	"github.com/san-kum/rigidsim/internal/world"
)

// DefaultDt is one frame at 60 Hz.
const DefaultDt = 1.0 / 60.0

const defaultDim = 1.0

type CreateRequest struct {
	Type       string    `json:"type" yaml:"type"`
	Mass       *float64  `json:"mass,omitempty" yaml:"mass,omitempty"`
	Position   []float64 `json:"position,omitempty" yaml:"position,omitempty"`
	Velocity   []float64 `json:"velocity,omitempty" yaml:"velocity,omitempty"`
	Radius     *float64  `json:"radius,omitempty" yaml:"radius,omitempty"`
	Width      *float64  `json:"width,omitempty" yaml:"width,omitempty"`
	Height     *float64  `json:"height,omitempty" yaml:"height,omitempty"`
	SideLength *float64  `json:"sideLength,omitempty" yaml:"side_length,omitempty"`
}

// UpdateRequest changes only the fields that are set. Shape fields that do
// not belong to the body's kind are ignored.
type UpdateRequest struct {
	Mass       *float64  `json:"mass,omitempty" yaml:"mass,omitempty"`
	Position   []float64 `json:"position,omitempty" yaml:"position,omitempty"`
	Velocity   []float64 `json:"velocity,omitempty" yaml:"velocity,omitempty"`
	Radius     *float64  `json:"radius,omitempty" yaml:"radius,omitempty"`
	Width      *float64  `json:"width,omitempty" yaml:"width,omitempty"`
	Height     *float64  `json:"height,omitempty" yaml:"height,omitempty"`
	SideLength *float64  `json:"sideLength,omitempty" yaml:"side_length,omitempty"`
}

type Service struct {
	world *world.World
	log   *slog.Logger
}

func New(w *world.World, log *slog.Logger) *Service {
	if log == nil {
		log = slog.Default()
	}
	return &Service{world: w, log: log}
}

func (s *Service) World() *world.World { return s.world }

func invalid(format string, args ...any) error {
	return fmt.Errorf("%w: %s", world.ErrInvalidArgument, fmt.Sprintf(format, args...))
}

func parseVec(name string, v []float64, fallback vector.Vec2) (vector.Vec2, error) {
	if v == nil {
		return fallback, nil
	}
	out, ok := vector.FromSlice(v)
	if !ok {
		return vector.Zero, invalid("%s needs two components, got %d", name, len(v))
	}
	if !out.IsFinite() {
		return vector.Zero, invalid("%s is not finite", name)
	}
	return out, nil
}

func requireVec(name string, v []float64) (vector.Vec2, error) {
	if v == nil {
		return vector.Zero, invalid("%s is required", name)
	}
	return parseVec(name, v, vector.Zero)
}

func parseMass(m *float64, fallback float64) (float64, error) {
	if m == nil {
		return fallback, nil
	}
	if *m < 0 {
		return 0, invalid("mass must be non-negative, got %g", *m)
	}
	return *m, nil
}

func parseDim(name string, d *float64, fallback float64) (float64, error) {
	if d == nil {
		return fallback, nil
	}
	if *d <= 0 {
		return 0, invalid("%s must be positive, got %g", name, *d)
	}
	return *d, nil
}

// CreateBody validates req, builds the body and adds it to the world. No id
// is consumed when validation fails.
func (s *Service) CreateBody(req CreateRequest) (*body.Body, error) {
	kind, err := body.ParseKind(req.Type)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", world.ErrInvalidArgument, err)
	}
	mass, err := parseMass(req.Mass, 1)
	if err != nil {
		return nil, err
	}
	pos, err := parseVec("position", req.Position, vector.Zero)
	if err != nil {
		return nil, err
	}
	vel, err := parseVec("velocity", req.Velocity, vector.Zero)
	if err != nil {
		return nil, err
	}

	var d body.Dims
	if d.Radius, err = parseDim("radius", req.Radius, defaultDim); err != nil {
		return nil, err
	}
	if d.Width, err = parseDim("width", req.Width, defaultDim); err != nil {
		return nil, err
	}
	if d.Height, err = parseDim("height", req.Height, defaultDim); err != nil {
		return nil, err
	}
	if d.Side, err = parseDim("sideLength", req.SideLength, defaultDim); err != nil {
		return nil, err
	}

	shape, err := body.NewShape(kind, d)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", world.ErrInvalidArgument, err)
	}

	b := body.New(shape, mass, pos, vel)
	id := s.world.Add(b)
	s.log.Debug("body created", "id", id, "type", kind, "mass", mass)
	return s.world.Object(id)
}

func (s *Service) GetBody(id int) (*body.Body, error) {
	return s.world.Object(id)
}

func (s *Service) ListBodies() []*body.Body {
	return s.world.Objects()
}

// UpdateBody applies the set fields of req to body id. The request is
// validated first; the merge then runs against the live body under the
// World lock so unset fields keep whatever a concurrent Step wrote.
func (s *Service) UpdateBody(id int, req UpdateRequest) (*body.Body, error) {
	if _, err := parseMass(req.Mass, 0); err != nil {
		return nil, err
	}
	pos, err := parseVec("position", req.Position, vector.Zero)
	if err != nil {
		return nil, err
	}
	vel, err := parseVec("velocity", req.Velocity, vector.Zero)
	if err != nil {
		return nil, err
	}
	for _, d := range []struct {
		name string
		v    *float64
	}{
		{"radius", req.Radius},
		{"width", req.Width},
		{"height", req.Height},
		{"sideLength", req.SideLength},
	} {
		if _, err := parseDim(d.name, d.v, defaultDim); err != nil {
			return nil, err
		}
	}

	return s.world.Update(id, func(b *body.Body) {
		if req.Mass != nil {
			b.SetMass(*req.Mass)
		}
		if req.Velocity != nil {
			b.SetVelocity(vel)
		}
		if req.Position != nil {
			b.SetPosition(pos)
		}
		if req.Radius != nil || req.Width != nil || req.Height != nil || req.SideLength != nil {
			b.SetShape(resize(b.Shape(), req))
		}
	})
}

// resize applies the dimensions relevant to shape. Dimensions are
// validated by the caller.
func resize(shape body.Shape, req UpdateRequest) body.Shape {
	set := func(dst, src *float64) {
		if src != nil {
			*dst = *src
		}
	}
	switch sh := shape.(type) {
	case body.Circle:
		set(&sh.Radius, req.Radius)
		return sh
	case body.Rectangle:
		set(&sh.Width, req.Width)
		set(&sh.Height, req.Height)
		return sh
	case body.Square:
		set(&sh.Side, req.SideLength)
		return sh
	}
	return shape
}

func (s *Service) DeleteBody(id int) bool {
	return s.world.Remove(id)
}

// ApplyForce registers a persistent force, replacing any existing one.
func (s *Service) ApplyForce(id int, force []float64) error {
	f, err := requireVec("force", force)
	if err != nil {
		return err
	}
	return s.world.SetCustomForce(id, f)
}

func (s *Service) ClearForce(id int) error {
	return s.world.ClearCustomForce(id)
}

// ApplyImpulse changes the body's velocity once.
func (s *Service) ApplyImpulse(id int, impulse []float64) error {
	j, err := requireVec("impulse", impulse)
	if err != nil {
		return err
	}
	return s.world.ApplyImpulse(id, j)
}

func (s *Service) SetGravity(g []float64) error {
	v, err := requireVec("gravity", g)
	if err != nil {
		return err
	}
	s.world.SetGravity(v)
	return nil
}

func (s *Service) Gravity() [2]float64 {
	return s.world.Gravity().Array()
}

func (s *Service) Start()             { s.world.Start() }
func (s *Service) Pause()             { s.world.Pause() }
func (s *Service) Reset()             { s.world.Reset() }
func (s *Service) Running() bool      { return s.world.Running() }
func (s *Service) State() world.State { return s.world.State() }

// Step advances the world by dt, or by DefaultDt when dt is nil or not
// positive. It returns the dt used.
func (s *Service) Step(dt *float64) float64 {
	d := DefaultDt
	if dt != nil && *dt > 0 {
		d = *dt
	}
	s.world.Step(d)
	return d
}

// ExportScene captures the current bodies and gravity.
func (s *Service) ExportScene() *scene.Scene {
	return scene.Capture(s.world)
}

// ImportScene replaces all world content with sc.
func (s *Service) ImportScene(sc *scene.Scene) error {
	if err := scene.Apply(s.world, sc); err != nil {
		return fmt.Errorf("%w: %w", world.ErrInvalidArgument, err)
	}
	s.log.Info("scene imported", "bodies", len(sc.Bodies))
	return nil
}

// SaveScene writes the current scene to path, or scene.DefaultFile when
// path is empty, and returns the path used.
func (s *Service) SaveScene(path string) (string, error) {
	path = scene.ResolvePath(path)
	if err := scene.Save(path, s.ExportScene()); err != nil {
		return "", err
	}
	s.log.Info("scene saved", "path", path)
	return path, nil
}

// LoadScene reads a scene file and replaces the world content with it.
func (s *Service) LoadScene(path string) (*scene.Scene, error) {
	path = scene.ResolvePath(path)
	sc, err := scene.Load(path)
	if err != nil {
		return nil, err
	}
	if err := s.ImportScene(sc); err != nil {
		return nil, err
	}
	return sc, nil
}

func (s *Service) SceneExists(path string) bool {
	return scene.Exists(scene.ResolvePath(path))
}
