package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/san-kum/rigidsim/internal/automation"
	"github.com/san-kum/rigidsim/internal/viz"
)

func scriptCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "script [file]",
		Short: "run a YAML scenario of world operations",
		Args:  cobra.ExactArgs(1),
		RunE:  runScript,
	}
}

func runScript(cmd *cobra.Command, args []string) error {
	sc, err := automation.LoadScenario(args[0])
	if err != nil {
		return err
	}

	report, err := automation.RunScenario(cmd.Context(), newService(), sc)
	if err != nil {
		return err
	}

	name := report.Name
	if name == "" {
		name = args[0]
	}
	fmt.Println(viz.HeaderStyle.Render(name))
	fmt.Printf("steps: %d (%.3fs)\n", report.Steps, report.Elapsed)
	fmt.Printf("created: %v  deleted: %v\n", report.Created, report.Deleted)
	for _, b := range report.State.Bodies {
		fmt.Printf("  %d %-9s pos (%.3f, %.3f) vel (%.3f, %.3f)\n",
			b.ID, b.Type, b.Position[0], b.Position[1], b.Velocity[0], b.Velocity[1])
	}
	fmt.Printf("contacts: %v\n", report.State.Collisions)
	return nil
}
