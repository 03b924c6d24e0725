package sim

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/san-kum/rigidsim/internal/world"
)

// Simulator drives a World with a fixed time step.
type Simulator struct {
	world     *world.World
	metrics   []Metric
	observers []Observer
	log       *slog.Logger
}

func New(w *world.World) *Simulator {
	return &Simulator{
		world:     w,
		metrics:   make([]Metric, 0),
		observers: make([]Observer, 0),
		log:       slog.Default(),
	}
}

func (s *Simulator) AddMetric(m Metric)       { s.metrics = append(s.metrics, m) }
func (s *Simulator) AddObserver(o Observer)   { s.observers = append(s.observers, o) }
func (s *Simulator) SetLogger(l *slog.Logger) { s.log = l }
func (s *Simulator) World() *world.World      { return s.world }

// Run steps the world for cfg.Duration. Cancelling ctx stops the run and
// returns the partial result with ctx.Err().
func (s *Simulator) Run(ctx context.Context, cfg Config) (*Result, error) {
	if err := s.validateConfig(cfg); err != nil {
		return nil, err
	}

	every := cfg.RecordEvery
	if every <= 0 {
		every = 1
	}
	steps := cfg.Steps()
	result := &Result{
		Frames:  make([]Frame, 0, steps/every+1),
		Metrics: make(map[string]float64),
		Errors:  make([]error, 0),
	}

	for _, m := range s.metrics {
		m.Reset()
	}

	t := 0.0
	result.Frames = append(result.Frames, Frame{Time: t, State: s.world.State()})

	for i := 0; i < steps; i++ {
		select {
		case <-ctx.Done():
			s.finish(result)
			return result, ctx.Err()
		default:
		}

		s.world.Step(cfg.Dt)
		t += cfg.Dt
		f := Frame{Time: t, Step: i + 1, State: s.world.State()}

		if cfg.ValidateState && !f.IsValid() {
			err := SimError{Time: t, Step: i, Message: "invalid state (NaN/Inf)"}
			s.log.Warn("simulation stopped", "err", err)
			result.Errors = append(result.Errors, err)
			break
		}

		for _, m := range s.metrics {
			m.Observe(f)
		}
		for _, obs := range s.observers {
			obs.OnStep(f)
		}

		result.StepsTaken++
		result.Contacts += len(f.State.Collisions)
		if result.StepsTaken%every == 0 {
			result.Frames = append(result.Frames, f)
		}
	}

	s.finish(result)
	s.log.Debug("simulation finished", "steps", result.StepsTaken, "contacts", result.Contacts)
	return result, nil
}

func (s *Simulator) finish(result *Result) {
	for _, m := range s.metrics {
		result.Metrics[m.Name()] = m.Value()
	}
}

func (s *Simulator) validateConfig(cfg Config) error {
	if cfg.Dt <= 0 {
		return fmt.Errorf("dt must be positive, got %f", cfg.Dt)
	}
	if cfg.Duration <= 0 {
		return fmt.Errorf("duration must be positive, got %f", cfg.Duration)
	}
	return nil
}

// RunWithCallback steps until cfg.Duration elapses or callback returns
// false. The callback sees each frame after its step.
func (s *Simulator) RunWithCallback(ctx context.Context, cfg Config, callback func(Frame) bool) error {
	if err := s.validateConfig(cfg); err != nil {
		return err
	}

	t := 0.0
	for step := 1; step <= cfg.Steps(); step++ {
		select {
		case <-ctx.Done():
			return ctx.Err()
		default:
		}

		s.world.Step(cfg.Dt)
		t += cfg.Dt
		f := Frame{Time: t, Step: step, State: s.world.State()}

		if cfg.ValidateState && !f.IsValid() {
			return fmt.Errorf("invalid state at t=%.4f", t)
		}
		if !callback(f) {
			return nil
		}
	}

	return nil
}
