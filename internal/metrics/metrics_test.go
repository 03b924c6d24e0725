package metrics

import (
	"math"
	"testing"

	"github.com/san-kum/rigidsim/internal/body"
	"github.com/san-kum/rigidsim/internal/sim"
	"github.com/san-kum/rigidsim/internal/world"
)

func frame(collisions int, bodies ...world.BodyState) sim.Frame {
	s := world.State{Bodies: bodies}
	for i := 0; i < collisions; i++ {
		s.Collisions = append(s.Collisions, world.Pair{A: 1, B: 2})
	}
	return sim.Frame{State: s}
}

func bs(mass, vx, vy float64) world.BodyState {
	return world.BodyState{Type: body.KindCircle, Mass: mass, Velocity: [2]float64{vx, vy}}
}

func TestTotalKinetic(t *testing.T) {
	s := world.State{Bodies: []world.BodyState{bs(2, 3, 4), bs(0, 100, 0)}}
	if got := TotalKinetic(s); got != 25 {
		t.Errorf("expected 25, got %f", got)
	}
}

func TestKineticEnergy(t *testing.T) {
	m := NewKineticEnergy()
	m.Observe(frame(0, bs(1, 2, 0)))
	m.Observe(frame(0, bs(1, 4, 0)))

	if got := m.Value(); math.Abs(got-5) > 1e-9 {
		t.Errorf("expected mean 5, got %f", got)
	}

	m.Reset()
	if m.Value() != 0 {
		t.Error("expected zero after reset")
	}
}

func TestMomentumDrift(t *testing.T) {
	tests := []struct {
		name   string
		frames []sim.Frame
		want   float64
	}{
		{"conserved", []sim.Frame{frame(0, bs(1, 2, 0), bs(1, -1, 0)), frame(0, bs(1, 0, 0), bs(1, 1, 0))}, 0},
		{"halved", []sim.Frame{frame(0, bs(2, 1, 0)), frame(0, bs(2, 0.5, 0))}, 0.5},
		{"from rest", []sim.Frame{frame(0, bs(1, 0, 0)), frame(0, bs(1, 0, 3))}, 3},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m := NewMomentumDrift()
			for _, f := range tt.frames {
				m.Observe(f)
			}
			if got := m.Value(); math.Abs(got-tt.want) > 1e-9 {
				t.Errorf("expected %f, got %f", tt.want, got)
			}
		})
	}
}

func TestContactRate(t *testing.T) {
	m := NewContactRate()
	m.Observe(frame(2))
	m.Observe(frame(0))
	m.Observe(frame(1))
	if got := m.Value(); got != 1 {
		t.Errorf("expected 1, got %f", got)
	}
}

func TestDefaultNames(t *testing.T) {
	seen := map[string]bool{}
	for _, m := range Default() {
		if seen[m.Name()] {
			t.Errorf("duplicate metric %s", m.Name())
		}
		seen[m.Name()] = true
	}
	if len(seen) != 3 {
		t.Errorf("expected 3 metrics, got %d", len(seen))
	}
}
