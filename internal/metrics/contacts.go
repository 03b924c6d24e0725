package metrics

import "github.com/san-kum/rigidsim/internal/sim"

// ContactRate is the mean number of contact pairs per observed step.
type ContactRate struct {
	name     string
	steps    int
	contacts int
}

func NewContactRate() *ContactRate {
	return &ContactRate{name: "contact_rate"}
}

func (c *ContactRate) Name() string { return c.name }

func (c *ContactRate) Observe(f sim.Frame) {
	c.contacts += len(f.State.Collisions)
	c.steps++
}

func (c *ContactRate) Value() float64 {
	if c.steps == 0 {
		return 0
	}
	return float64(c.contacts) / float64(c.steps)
}

func (c *ContactRate) Reset() {
	c.steps = 0
	c.contacts = 0
}

// Default returns a fresh set of every metric in this package.
func Default() []sim.Metric {
	return []sim.Metric{NewKineticEnergy(), NewMomentumDrift(), NewContactRate()}
}
