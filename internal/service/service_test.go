package service

import (
	"errors"
	"io/fs"
	"math"
	"path/filepath"
	"sync"
	"testing"

	"github.com/san-kum/rigidsim/internal/body"
	"github.com/san-kum/rigidsim/internal/world"
)

func ptr(f float64) *float64 { return &f }

func newService() *Service { return New(world.New(), nil) }

func TestCreateDefaults(t *testing.T) {
	s := newService()
	b, err := s.CreateBody(CreateRequest{Type: "Circle"})
	if err != nil {
		t.Fatal(err)
	}
	if b.ID() != 1 || b.Mass() != 1 || !b.Position().IsZero() {
		t.Errorf("created %v", b)
	}
	if c, ok := b.Shape().(body.Circle); !ok || c.Radius != 1 {
		t.Errorf("shape = %#v", b.Shape())
	}
}

func TestCreateRejects(t *testing.T) {
	tests := []struct {
		name string
		req  CreateRequest
		want error
	}{
		{"unknown type", CreateRequest{Type: "triangle"}, body.ErrUnknownKind},
		{"negative mass", CreateRequest{Type: "square", Mass: ptr(-2)}, world.ErrInvalidArgument},
		{"short position", CreateRequest{Type: "square", Position: []float64{1}}, world.ErrInvalidArgument},
		{"nan velocity", CreateRequest{Type: "square", Velocity: []float64{math.NaN(), 0}}, world.ErrInvalidArgument},
		{"zero radius", CreateRequest{Type: "circle", Radius: ptr(0)}, world.ErrInvalidArgument},
		{"negative width", CreateRequest{Type: "rectangle", Width: ptr(-1)}, world.ErrInvalidArgument},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := newService()
			_, err := s.CreateBody(tt.req)
			if !errors.Is(err, tt.want) {
				t.Fatalf("err = %v, want %v", err, tt.want)
			}
			if !errors.Is(err, world.ErrInvalidArgument) {
				t.Errorf("err = %v, not an invalid argument", err)
			}
			if s.World().NextID() != 1 {
				t.Errorf("id consumed by failed create")
			}
		})
	}
}

func TestUpdatePartial(t *testing.T) {
	s := newService()
	b, _ := s.CreateBody(CreateRequest{Type: "rectangle", Mass: ptr(3), Width: ptr(4), Height: ptr(2), Velocity: []float64{1, 1}})

	got, err := s.UpdateBody(b.ID(), UpdateRequest{Width: ptr(8), Position: []float64{5, 6}})
	if err != nil {
		t.Fatal(err)
	}
	r := got.Shape().(body.Rectangle)
	if r.Width != 8 || r.Height != 2 {
		t.Errorf("rectangle = %+v", r)
	}
	if got.Mass() != 3 || got.Velocity().X != 1 {
		t.Errorf("unset fields changed: %v", got)
	}
	if got.Collider().Anchor().X != 5 {
		t.Errorf("collider anchor = %v", got.Collider().Anchor())
	}

	if _, err := s.UpdateBody(b.ID(), UpdateRequest{Height: ptr(0), Mass: ptr(9)}); !errors.Is(err, world.ErrInvalidArgument) {
		t.Errorf("err = %v", err)
	}
	if cur, _ := s.GetBody(b.ID()); cur.Mass() != 3 {
		t.Errorf("failed update applied mass %g", cur.Mass())
	}

	if _, err := s.UpdateBody(42, UpdateRequest{}); !errors.Is(err, world.ErrNotFound) {
		t.Errorf("err = %v, want ErrNotFound", err)
	}
}

func TestUpdateKeepsConcurrentStep(t *testing.T) {
	s := newService()
	b, _ := s.CreateBody(CreateRequest{Type: "circle", Mass: ptr(1)})

	done := make(chan struct{})
	var wg sync.WaitGroup
	wg.Add(1)
	go func() {
		defer wg.Done()
		masses := []float64{1, 2}
		for i := 0; ; i++ {
			select {
			case <-done:
				return
			default:
			}
			if _, err := s.UpdateBody(b.ID(), UpdateRequest{Mass: ptr(masses[i%2])}); err != nil {
				t.Error(err)
				return
			}
		}
	}()

	last := 0.0
	rollbacks := 0
	for i := 0; i < 20000; i++ {
		s.World().Step(DefaultDt)
		cur, _ := s.GetBody(b.ID())
		if y := cur.Position().Y; y < last {
			rollbacks++
		} else {
			last = y
		}
	}
	close(done)
	wg.Wait()

	if rollbacks > 0 {
		t.Errorf("mass-only updates rolled back %d steps", rollbacks)
	}
}

func TestUpdateValidatesAllDims(t *testing.T) {
	s := newService()
	b, _ := s.CreateBody(CreateRequest{Type: "circle", Radius: ptr(2)})

	if _, err := s.UpdateBody(b.ID(), UpdateRequest{Radius: ptr(3), Velocity: []float64{math.NaN(), 0}}); !errors.Is(err, world.ErrInvalidArgument) {
		t.Errorf("err = %v", err)
	}
	cur, _ := s.GetBody(b.ID())
	if cur.Shape().(body.Circle).Radius != 2 {
		t.Errorf("failed update resized body: %v", cur.Shape())
	}

	got, err := s.UpdateBody(b.ID(), UpdateRequest{Radius: ptr(3), Width: ptr(9)})
	if err != nil {
		t.Fatal(err)
	}
	if got.Shape().(body.Circle).Radius != 3 {
		t.Errorf("radius = %v", got.Shape())
	}
}

func TestForcesAndImpulse(t *testing.T) {
	s := newService()
	b, _ := s.CreateBody(CreateRequest{Type: "circle", Mass: ptr(2)})

	if err := s.ApplyForce(b.ID(), []float64{4}); !errors.Is(err, world.ErrInvalidArgument) {
		t.Errorf("short force: %v", err)
	}
	if err := s.ApplyForce(99, []float64{1, 0}); !errors.Is(err, world.ErrNotFound) {
		t.Errorf("missing body: %v", err)
	}
	if err := s.ClearForce(99); !errors.Is(err, world.ErrNotFound) {
		t.Errorf("clear missing: %v", err)
	}
	if err := s.ApplyImpulse(b.ID(), []float64{4, 0}); err != nil {
		t.Fatal(err)
	}
	got, _ := s.GetBody(b.ID())
	if got.Velocity().X != 2 {
		t.Errorf("vx = %g, want 2", got.Velocity().X)
	}
}

func TestStepDefaults(t *testing.T) {
	s := newService()
	tests := []struct {
		name string
		dt   *float64
		want float64
	}{
		{"nil", nil, DefaultDt},
		{"zero", ptr(0), DefaultDt},
		{"negative", ptr(-1), DefaultDt},
		{"explicit", ptr(0.5), 0.5},
	}
	for _, tt := range tests {
		if got := s.Step(tt.dt); got != tt.want {
			t.Errorf("%s: dt = %g, want %g", tt.name, got, tt.want)
		}
	}
}

func TestLifecycle(t *testing.T) {
	s := newService()
	s.CreateBody(CreateRequest{Type: "square"})
	s.Start()
	if !s.Running() || !s.State().Running {
		t.Error("not running after Start")
	}
	s.Pause()
	if s.Running() {
		t.Error("running after Pause")
	}
	if err := s.SetGravity([]float64{0, 1}); err != nil {
		t.Fatal(err)
	}
	if s.Gravity() != [2]float64{0, 1} {
		t.Errorf("gravity = %v", s.Gravity())
	}
	s.Reset()
	if len(s.ListBodies()) != 0 || s.Gravity() != world.DefaultGravity.Array() {
		t.Error("reset incomplete")
	}
	if s.DeleteBody(1) {
		t.Error("deleted body after reset")
	}
}

func TestSceneRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "s.yaml")
	s := newService()
	s.CreateBody(CreateRequest{Type: "circle", Radius: ptr(2), Position: []float64{1, 1}})
	s.CreateBody(CreateRequest{Type: "square", SideLength: ptr(3)})

	if _, err := s.SaveScene(path); err != nil {
		t.Fatal(err)
	}
	if !s.SceneExists(path) {
		t.Fatal("scene not saved")
	}

	other := newService()
	sc, err := other.LoadScene(path)
	if err != nil {
		t.Fatal(err)
	}
	if len(sc.Bodies) != 2 || len(other.ListBodies()) != 2 {
		t.Errorf("loaded %d bodies", len(other.ListBodies()))
	}

	if _, err := other.LoadScene(filepath.Join(t.TempDir(), "missing.json")); !errors.Is(err, fs.ErrNotExist) {
		t.Errorf("err = %v, want fs.ErrNotExist", err)
	}
	if len(other.ListBodies()) != 2 {
		t.Error("failed load modified world")
	}
}
