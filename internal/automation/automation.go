package automation

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/san-kum/rigidsim/internal/config"
	"github.com/san-kum/rigidsim/internal/service"
	"github.com/san-kum/rigidsim/internal/world"
)

// Scenario is a scripted sequence of world operations.
type Scenario struct {
	Name        string         `yaml:"name"`
	Description string         `yaml:"description"`
	Preset      string         `yaml:"preset"`
	Steps       []ScenarioStep `yaml:"steps"`
}

// ScenarioStep is a single operation. Which fields apply depends on Op.
type ScenarioStep struct {
	Op     string                 `yaml:"op"`
	ID     int                    `yaml:"id"`
	Body   *service.CreateRequest `yaml:"body"`
	Update *service.UpdateRequest `yaml:"update"`
	Vector []float64              `yaml:"vector"`
	Dt     *float64               `yaml:"dt"`
	Count  int                    `yaml:"count"`
	Path   string                 `yaml:"path"`
}

// Report summarizes a finished scenario.
type Report struct {
	Name    string
	Steps   int
	Elapsed float64
	Created []int
	Deleted []int
	State   world.State
}

// LoadScenario loads a scenario from a YAML file
func LoadScenario(path string) (*Scenario, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	var scenario Scenario
	if err := yaml.Unmarshal(data, &scenario); err != nil {
		return nil, err
	}

	return &scenario, nil
}

// RunScenario seeds svc from the scenario preset, if any, then executes
// every step in order. It stops at the first failing step.
func RunScenario(ctx context.Context, svc *service.Service, scenario *Scenario) (*Report, error) {
	report := &Report{Name: scenario.Name}

	if scenario.Preset != "" {
		cfg := config.GetPreset(scenario.Preset)
		if cfg == nil {
			return report, fmt.Errorf("unknown preset %q", scenario.Preset)
		}
		if err := cfg.Apply(svc.World()); err != nil {
			return report, err
		}
	}

	for i, step := range scenario.Steps {
		select {
		case <-ctx.Done():
			return report, ctx.Err()
		default:
		}

		slog.Debug("scenario step", "scenario", scenario.Name, "step", i+1, "op", step.Op)
		if err := runStep(svc, step, report); err != nil {
			return report, fmt.Errorf("step %d (%s): %w", i+1, step.Op, err)
		}
	}

	report.State = svc.State()
	return report, nil
}

func runStep(svc *service.Service, step ScenarioStep, report *Report) error {
	switch strings.ToLower(step.Op) {
	case "create":
		if step.Body == nil {
			return fmt.Errorf("%w: create needs a body", world.ErrInvalidArgument)
		}
		b, err := svc.CreateBody(*step.Body)
		if err != nil {
			return err
		}
		report.Created = append(report.Created, b.ID())
	case "update":
		if step.Update == nil {
			return fmt.Errorf("%w: update needs fields", world.ErrInvalidArgument)
		}
		_, err := svc.UpdateBody(step.ID, *step.Update)
		return err
	case "delete":
		if !svc.DeleteBody(step.ID) {
			return fmt.Errorf("%w: id %d", world.ErrNotFound, step.ID)
		}
		report.Deleted = append(report.Deleted, step.ID)
	case "force":
		return svc.ApplyForce(step.ID, step.Vector)
	case "clear_force":
		return svc.ClearForce(step.ID)
	case "impulse":
		return svc.ApplyImpulse(step.ID, step.Vector)
	case "gravity":
		return svc.SetGravity(step.Vector)
	case "start":
		svc.Start()
	case "pause":
		svc.Pause()
	case "reset":
		svc.Reset()
	case "step":
		n := step.Count
		if n <= 0 {
			n = 1
		}
		for j := 0; j < n; j++ {
			report.Elapsed += svc.Step(step.Dt)
			report.Steps++
		}
	case "save":
		_, err := svc.SaveScene(step.Path)
		return err
	case "load":
		_, err := svc.LoadScene(step.Path)
		return err
	default:
		return fmt.Errorf("%w: unknown op %q", world.ErrInvalidArgument, step.Op)
	}
	return nil
}
