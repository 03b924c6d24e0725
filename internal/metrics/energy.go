package metrics

import (
	"math"

	"github.com/san-kum/rigidsim/internal/sim"
	"github.com/san-kum/rigidsim/internal/world"
)

// TotalKinetic sums ½mv² over movable bodies.
func TotalKinetic(s world.State) float64 {
	total := 0.0
	for _, b := range s.Bodies {
		if b.Mass <= 0 {
			continue
		}
		v2 := b.Velocity[0]*b.Velocity[0] + b.Velocity[1]*b.Velocity[1]
		total += 0.5 * b.Mass * v2
	}
	return total
}

// Momentum sums m·v over movable bodies.
func Momentum(s world.State) (px, py float64) {
	for _, b := range s.Bodies {
		if b.Mass <= 0 {
			continue
		}
		px += b.Mass * b.Velocity[0]
		py += b.Mass * b.Velocity[1]
	}
	return px, py
}

// KineticEnergy is the mean total kinetic energy over observed frames.
type KineticEnergy struct {
	name    string
	samples int
	total   float64
}

func NewKineticEnergy() *KineticEnergy {
	return &KineticEnergy{name: "kinetic_energy"}
}

func (e *KineticEnergy) Name() string { return e.name }

func (e *KineticEnergy) Observe(f sim.Frame) {
	e.total += TotalKinetic(f.State)
	e.samples++
}

func (e *KineticEnergy) Value() float64 {
	if e.samples == 0 {
		return 0
	}
	return e.total / float64(e.samples)
}

func (e *KineticEnergy) Reset() {
	e.total = 0
	e.samples = 0
}

// MomentumDrift tracks the largest change in total momentum magnitude
// relative to the first frame. With zero initial momentum the drift is
// absolute.
type MomentumDrift struct {
	name     string
	initial  float64
	maxDrift float64
	samples  int
}

func NewMomentumDrift() *MomentumDrift {
	return &MomentumDrift{name: "momentum_drift"}
}

func (m *MomentumDrift) Name() string { return m.name }

func (m *MomentumDrift) Observe(f sim.Frame) {
	p := math.Hypot(Momentum(f.State))
	if m.samples == 0 {
		m.initial = p
	}
	m.samples++

	drift := math.Abs(p - m.initial)
	if m.initial != 0 {
		drift /= m.initial
	}
	m.maxDrift = math.Max(m.maxDrift, drift)
}

func (m *MomentumDrift) Value() float64 { return m.maxDrift }

func (m *MomentumDrift) Reset() {
	m.initial = 0
	m.maxDrift = 0
	m.samples = 0
}
