package forces

import (
	"math"
	"testing"

	"github.com/san-kum/rigidsim/internal/body"
	"github.com/san-kum/rigidsim/internal/vector"
)

func TestGravity(t *testing.T) {
	tests := []struct {
		name string
		mass float64
		want vector.Vec2
	}{
		{"unit mass", 1, vector.New(0, DefaultGravity)},
		{"heavy", 4, vector.New(0, 4*DefaultGravity)},
		{"immovable", 0, vector.Zero},
		{"negative mass", -1, vector.Zero},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			b := body.NewCircle(tt.mass, vector.Zero, vector.Zero, 1)
			Gravity(b, vector.New(0, DefaultGravity))
			if !b.NetForce().ApproxEqual(tt.want, 1e-12) {
				t.Errorf("expected force %v, got %v", tt.want, b.NetForce())
			}
		})
	}
}

func TestStaticFriction(t *testing.T) {
	rest := body.NewSquare(2, vector.Zero, vector.Zero, 1)
	StaticFriction(rest, 0.5, vector.New(0, 1))
	if !rest.NetForce().ApproxEqual(vector.New(0, -1), 1e-12) {
		t.Errorf("expected (0, -1), got %v", rest.NetForce())
	}

	moving := body.NewSquare(2, vector.Zero, vector.New(1, 0), 1)
	StaticFriction(moving, 0.5, vector.New(0, 1))
	if !moving.NetForce().IsZero() {
		t.Errorf("expected no friction on moving body, got %v", moving.NetForce())
	}
}

func TestKineticFriction(t *testing.T) {
	b := body.NewCircle(2, vector.Zero, vector.New(3, 4), 1)
	KineticFriction(b, 0.3)

	want := vector.New(-0.6, -0.8).Scale(0.6)
	if !b.NetForce().ApproxEqual(want, 1e-12) {
		t.Errorf("expected %v, got %v", want, b.NetForce())
	}

	still := body.NewCircle(2, vector.Zero, vector.Zero, 1)
	KineticFriction(still, 0.3)
	if !still.NetForce().IsZero() {
		t.Errorf("expected no friction at rest, got %v", still.NetForce())
	}
}

func TestImpulse(t *testing.T) {
	b := body.NewCircle(2, vector.Zero, vector.New(1, 0), 1)
	Impulse(b, vector.New(4, 2))
	if !b.Velocity().ApproxEqual(vector.New(3, 1), 1e-12) {
		t.Errorf("expected velocity (3, 1), got %v", b.Velocity())
	}

	wall := body.NewRectangle(0, vector.Zero, vector.Zero, 5, 5)
	Impulse(wall, vector.New(100, 100))
	if !wall.Velocity().IsZero() {
		t.Errorf("expected immovable body to ignore impulse, got %v", wall.Velocity())
	}
}

func TestCustom(t *testing.T) {
	b := body.NewCircle(1, vector.Zero, vector.Zero, 1)
	Custom(b, vector.New(1, 1))
	Custom(b, vector.New(1, 1))
	if math.Abs(b.NetForce().X-2) > 1e-12 {
		t.Errorf("expected accumulated force 2, got %f", b.NetForce().X)
	}
}
