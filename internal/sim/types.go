package sim

import (
	"fmt"
	"math"

	"github.com/san-kum/rigidsim/internal/world"
)

// Frame is the world state at simulated time Time.
type Frame struct {
	Time  float64
	Step  int
	State world.State
}

// IsValid reports whether every body position and velocity is finite.
func (f Frame) IsValid() bool {
	for _, b := range f.State.Bodies {
		for _, v := range [4]float64{b.Position[0], b.Position[1], b.Velocity[0], b.Velocity[1]} {
			if math.IsNaN(v) || math.IsInf(v, 0) {
				return false
			}
		}
	}
	return true
}

type Metric interface {
	Name() string
	Observe(f Frame)
	Value() float64
	Reset()
}

type Observer interface {
	OnStep(f Frame)
}

type Config struct {
	Dt            float64
	Duration      float64
	RecordEvery   int
	ValidateState bool
}

func DefaultConfig() Config {
	return Config{
		Dt:            1.0 / 60.0,
		Duration:      10.0,
		RecordEvery:   1,
		ValidateState: true,
	}
}

// Steps is the number of Dt steps that cover Duration, rounded so that
// float error in the quotient cannot drop the last step.
func (c Config) Steps() int {
	return int(math.Round(c.Duration / c.Dt))
}

type Result struct {
	Frames     []Frame
	Metrics    map[string]float64
	StepsTaken int
	Contacts   int
	Errors     []error
}

// Times returns the timestamp of each recorded frame.
func (r *Result) Times() []float64 {
	ts := make([]float64, len(r.Frames))
	for i, f := range r.Frames {
		ts[i] = f.Time
	}
	return ts
}

type SimError struct {
	Time    float64
	Step    int
	Message string
}

func (e SimError) Error() string {
	return fmt.Sprintf("step %d (t=%.4f): %s", e.Step, e.Time, e.Message)
}
