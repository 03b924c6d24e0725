package main

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"sort"
	"strconv"
	"strings"
	"text/tabwriter"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/guptarohit/asciigraph"
	"github.com/spf13/cobra"

	"github.com/san-kum/rigidsim/internal/config"
	"github.com/san-kum/rigidsim/internal/export"
	"github.com/san-kum/rigidsim/internal/metrics"
	"github.com/san-kum/rigidsim/internal/sim"
	"github.com/san-kum/rigidsim/internal/storage"
	"github.com/san-kum/rigidsim/internal/viz"
	"github.com/san-kum/rigidsim/internal/world"
)

var (
	dataDir     string
	logLevel    string
	dt          float64
	duration    float64
	recordEvery int
	configFile  string
	exportPath  string
	noSave      bool
	bodyID      int
	svgPath     string
)

var logger = slog.Default()

func main() {
	rootCmd := &cobra.Command{
		Use:   "rigidsim",
		Short: "2D rigid-body simulation",
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			l, err := newLogger(logLevel)
			if err != nil {
				return err
			}
			logger = l
			slog.SetDefault(l)
			return nil
		},
		SilenceUsage: true,
	}

	rootCmd.PersistentFlags().StringVar(&dataDir, "data", ".rigidsim", "data directory")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "warn", "log level (debug|info|warn|error)")

	runCmd := &cobra.Command{
		Use:   "run [preset...]",
		Short: "run one or more presets and store the results",
		RunE:  runSimulation,
	}
	runCmd.Flags().Float64Var(&dt, "dt", config.DefaultDt, "timestep")
	runCmd.Flags().Float64Var(&duration, "time", config.DefaultDuration, "duration")
	runCmd.Flags().IntVar(&recordEvery, "record-every", config.DefaultRecordEvery, "record a frame every n steps")
	runCmd.Flags().StringVar(&configFile, "config", "", "config file path (yaml)")
	runCmd.Flags().StringVar(&exportPath, "export", "", "also write the full run as JSON to this path (single preset)")
	runCmd.Flags().BoolVar(&noSave, "no-save", false, "do not store the run")

	liveCmd := &cobra.Command{
		Use:   "live [preset]",
		Short: "view a preset in the terminal",
		Args:  cobra.MaximumNArgs(1),
		RunE:  runLive,
	}
	liveCmd.Flags().Float64Var(&dt, "dt", config.DefaultDt, "timestep")
	liveCmd.Flags().StringVar(&configFile, "config", "", "config file path (yaml)")

	listCmd := &cobra.Command{
		Use:   "list",
		Short: "list runs",
		RunE:  listRuns,
	}

	plotCmd := &cobra.Command{
		Use:   "plot [run_id]",
		Short: "plot body heights of a stored run",
		Args:  cobra.ExactArgs(1),
		RunE:  plotRun,
	}
	plotCmd.Flags().IntVar(&bodyID, "body", 0, "only plot this body id")
	plotCmd.Flags().StringVar(&svgPath, "svg", "", "also write body paths as SVG to this path")

	exportCmd := &cobra.Command{
		Use:   "export [run_id]",
		Short: "export run metadata",
		Args:  cobra.ExactArgs(1),
		RunE:  exportRun,
	}

	presetsCmd := &cobra.Command{
		Use:   "presets",
		Short: "list built-in scenes",
		RunE:  listPresets,
	}

	rootCmd.AddCommand(runCmd, liveCmd, listCmd, plotCmd, exportCmd, presetsCmd, sceneCommand(), scriptCommand())

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	if err := rootCmd.ExecuteContext(ctx); err != nil {
		stop()
		os.Exit(1)
	}
}

func newLogger(level string) (*slog.Logger, error) {
	var lvl slog.Level
	if err := lvl.UnmarshalText([]byte(level)); err != nil {
		return nil, fmt.Errorf("bad log level %q: %w", level, err)
	}
	return slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: lvl})), nil
}

// loadConfig resolves a config from --config or a preset name, then applies
// flags the user set explicitly.
func loadConfig(cmd *cobra.Command, name string) (*config.Config, error) {
	var cfg *config.Config
	if configFile != "" {
		c, err := config.Load(configFile)
		if err != nil {
			return nil, fmt.Errorf("failed to load config: %w", err)
		}
		cfg = c
	} else {
		cfg = config.GetPreset(name)
		if cfg == nil {
			return nil, fmt.Errorf("unknown preset: %s (available: %v)", name, config.ListPresets())
		}
	}

	flags := cmd.Flags()
	if flags.Changed("dt") {
		cfg.Dt = dt
	}
	if flags.Changed("time") {
		cfg.Duration = duration
	}
	if flags.Changed("record-every") {
		cfg.RecordEvery = recordEvery
	}
	return cfg, nil
}

func simConfig(cfg *config.Config) sim.Config {
	return sim.Config{
		Dt:            cfg.Dt,
		Duration:      cfg.Duration,
		RecordEvery:   cfg.RecordEvery,
		ValidateState: true,
	}
}

func runSimulation(cmd *cobra.Command, args []string) error {
	names := args
	if len(names) == 0 {
		names = []string{config.DefaultPreset}
	}
	if exportPath != "" && len(names) > 1 {
		return fmt.Errorf("--export needs a single preset")
	}

	jobs := make([]sim.Job, 0, len(names))
	for _, name := range names {
		cfg, err := loadConfig(cmd, name)
		if err != nil {
			return err
		}
		jobs = append(jobs, sim.Job{
			Name:    name,
			Config:  simConfig(cfg),
			Setup:   cfg.Apply,
			Metrics: metrics.Default,
		})
	}

	fmt.Printf("running %s...\n", strings.Join(names, ", "))
	start := time.Now()

	results, err := sim.RunBatch(cmd.Context(), jobs)
	if err != nil {
		return err
	}
	elapsed := time.Since(start)
	fmt.Printf("completed in %v\n", elapsed)

	st := storage.New(dataDir)
	if !noSave {
		if err := st.Init(); err != nil {
			return err
		}
	}

	for i, result := range results {
		job := jobs[i]
		fmt.Println()
		fmt.Println(viz.HeaderStyle.Render(job.Name))
		if !noSave {
			runID, err := st.Save(job.Name, job.Config, result)
			if err != nil {
				return err
			}
			fmt.Printf("run id: %s\n", runID)
		}
		fmt.Printf("steps: %d  contacts: %d\n", result.StepsTaken, result.Contacts)
		for _, e := range result.Errors {
			fmt.Printf("error: %v\n", e)
		}
		printMetrics(result.Metrics)
	}

	if exportPath != "" {
		if err := storage.ExportJSON(exportPath, jobs[0].Name, jobs[0].Config, results[0]); err != nil {
			return err
		}
		fmt.Printf("\nexported to %s\n", exportPath)
	}
	return nil
}

func printMetrics(m map[string]float64) {
	names := make([]string, 0, len(m))
	for name := range m {
		names = append(names, name)
	}
	sort.Strings(names)
	for _, name := range names {
		fmt.Printf("  %s %s\n", viz.MetricLabel.Render(fmt.Sprintf("%-16s", name)), viz.MetricValue.Render(fmt.Sprintf("%.6f", m[name])))
	}
}

func runLive(cmd *cobra.Command, args []string) error {
	name := config.DefaultPreset
	if len(args) == 1 {
		name = args[0]
	}
	cfg, err := loadConfig(cmd, name)
	if err != nil {
		return err
	}

	w := world.New()
	w.SetLogger(logger)
	if err := cfg.Apply(w); err != nil {
		return err
	}

	p := tea.NewProgram(viz.NewModel(w, name, cfg.Dt))
	_, err = p.Run()
	return err
}

func listRuns(cmd *cobra.Command, args []string) error {
	st := storage.New(dataDir)
	runs, err := st.List()
	if err != nil {
		return err
	}

	if len(runs) == 0 {
		fmt.Println("no runs found")
		return nil
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tNAME\tTIME\tDURATION\tDT\tSTEPS\tCONTACTS")

	for _, run := range runs {
		fmt.Fprintf(w, "%s\t%s\t%s\t%.2fs\t%.4fs\t%d\t%d\n",
			run.ID,
			run.Name,
			run.Timestamp.Format("2006-01-02 15:04:05"),
			run.Duration,
			run.Dt,
			run.Steps,
			run.Contacts,
		)
	}

	return w.Flush()
}

func plotRun(cmd *cobra.Command, args []string) error {
	runID := args[0]

	st := storage.New(dataDir)
	meta, err := st.Load(runID)
	if err != nil {
		return err
	}

	tr, err := st.LoadTrajectory(runID)
	if err != nil {
		return err
	}
	if len(tr.Times) == 0 {
		return fmt.Errorf("no data to plot")
	}

	fmt.Printf("run: %s\n", meta.ID)
	fmt.Printf("scene: %s\n", meta.Name)
	fmt.Printf("samples: %d\n\n", len(tr.Times))

	ids := tr.IDs
	if bodyID != 0 {
		ids = []int{bodyID}
	}
	const maxPlots = 6
	if len(ids) > maxPlots {
		ids = ids[:maxPlots]
	}

	for _, id := range ids {
		data := tr.Axis(id, 1)
		if data == nil {
			return fmt.Errorf("body %d not in run %s", id, runID)
		}
		graph := asciigraph.Plot(data,
			asciigraph.Height(10),
			asciigraph.Width(80),
			asciigraph.Caption("body "+strconv.Itoa(id)+" y vs time"),
		)
		fmt.Println(graph)
		fmt.Println()
	}

	if svgPath != "" {
		if err := os.WriteFile(svgPath, []byte(export.TrajectorySVG(tr, 800, 600)), 0644); err != nil {
			return err
		}
		fmt.Printf("wrote %s\n", svgPath)
	}

	return nil
}

func exportRun(cmd *cobra.Command, args []string) error {
	runID := args[0]

	st := storage.New(dataDir)
	meta, err := st.Load(runID)
	if err != nil {
		return err
	}

	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(meta)
}

func listPresets(cmd *cobra.Command, args []string) error {
	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "NAME\tBODIES\tDURATION\tGRAVITY")
	for _, name := range config.ListPresets() {
		cfg := config.GetPreset(name)
		gravity := "off"
		if cfg.GravityEnabled {
			gravity = fmt.Sprintf("(%.2f, %.2f)", cfg.Gravity[0], cfg.Gravity[1])
		}
		fmt.Fprintf(w, "%s\t%d\t%.1fs\t%s\n", name, len(cfg.Scene.Bodies), cfg.Duration, gravity)
	}
	return w.Flush()
}
