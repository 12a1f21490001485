package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"sort"
	"strings"
	"text/tabwriter"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/guptarohit/asciigraph"
	"github.com/spf13/cobra"

	"github.com/san-kum/airhockey/internal/config"
	"github.com/san-kum/airhockey/internal/experiment"
	"github.com/san-kum/airhockey/internal/handle"
	"github.com/san-kum/airhockey/internal/sim"
	"github.com/san-kum/airhockey/internal/storage"
	"github.com/san-kum/airhockey/internal/viz"
)

var (
	dataDir    string
	verbose    bool
	dt         float64
	duration   float64
	seed       int64
	friction   float64
	configFile string
	preset     string
	numRuns    int
	metricList []string
	format     string
	outFile    string
	guard      float64
	sweepParam string
	sweepMin   float64
	sweepMax   float64
	sweepSteps int
)

// main registers the commands and exits with status 1 on error.
func main() {
	rootCmd := &cobra.Command{
		Use:          "airhockey",
		Short:        "two-handle air hockey table",
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runLive(cmd, nil)
		},
	}

	rootCmd.PersistentFlags().StringVar(&dataDir, "data", ".airhockey", "data directory")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "log contacts and pointer capture to stderr")
	rootCmd.PersistentFlags().StringVar(&configFile, "config", "", "config file path (yaml or toml)")
	rootCmd.PersistentFlags().StringVar(&preset, "preset", "", "use preset configuration")

	runCmd := &cobra.Command{
		Use:   "run [scenario|script.yaml]",
		Short: "run a scenario headless and store the result",
		Args:  cobra.MaximumNArgs(1),
		RunE:  runScenario,
	}
	addTableFlags(runCmd)
	runCmd.Flags().Float64Var(&duration, "time", config.DefaultDuration, "duration (ms)")
	runCmd.Flags().Int64Var(&seed, "seed", 0, "random seed")
	runCmd.Flags().IntVar(&numRuns, "runs", 1, "number of seeds to run in parallel")
	runCmd.Flags().StringSliceVar(&metricList, "metrics", nil, "metrics to record (default all)")

	liveCmd := &cobra.Command{
		Use:   "live [scenario|script.yaml]",
		Short: "play on the table in the terminal",
		Args:  cobra.MaximumNArgs(1),
		RunE:  runLive,
	}
	addTableFlags(liveCmd)

	sweepCmd := &cobra.Command{
		Use:   "sweep [scenario|script.yaml]",
		Short: "run a scenario across a range of one parameter",
		Args:  cobra.MaximumNArgs(1),
		RunE:  runSweep,
	}
	addTableFlags(sweepCmd)
	sweepCmd.Flags().Float64Var(&duration, "time", config.DefaultDuration, "duration (ms)")
	sweepCmd.Flags().StringVar(&sweepParam, "param", "friction", fmt.Sprintf("parameter to vary %v", experiment.SweepParams()))
	sweepCmd.Flags().Float64Var(&sweepMin, "min", 0, "first value")
	sweepCmd.Flags().Float64Var(&sweepMax, "max", 0.05, "last value")
	sweepCmd.Flags().IntVar(&sweepSteps, "steps", 6, "number of values")

	listCmd := &cobra.Command{
		Use:   "list",
		Short: "list runs",
		RunE:  listRuns,
	}

	plotCmd := &cobra.Command{
		Use:   "plot [run_id]",
		Short: "plot handle speeds and positions",
		Args:  cobra.ExactArgs(1),
		RunE:  plotRun,
	}

	exportCmd := &cobra.Command{
		Use:   "export [run_id]",
		Short: "export a run trace",
		Args:  cobra.ExactArgs(1),
		RunE:  exportRun,
	}
	exportCmd.Flags().StringVar(&format, "format", "json", "output format: json, msgpack or csv")
	exportCmd.Flags().StringVarP(&outFile, "out", "o", "", "output file (default stdout)")

	presetsCmd := &cobra.Command{
		Use:   "presets",
		Short: "list configuration presets",
		RunE:  listPresets,
	}

	scenariosCmd := &cobra.Command{
		Use:   "scenarios",
		Short: "list scripted scenarios",
		RunE:  listScenarios,
	}

	configCmd := &cobra.Command{
		Use:   "config",
		Short: "manage config files",
	}
	configCmd.AddCommand(&cobra.Command{
		Use:   "init [path]",
		Short: "write the default config (or --preset) to path",
		Args:  cobra.MaximumNArgs(1),
		RunE:  initConfig,
	})

	rootCmd.AddCommand(runCmd, liveCmd, sweepCmd, listCmd, plotCmd, exportCmd, presetsCmd, scenariosCmd, configCmd)

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func addTableFlags(cmd *cobra.Command) {
	cmd.Flags().Float64Var(&dt, "dt", config.DefaultDt, "timestep (ms)")
	cmd.Flags().Float64Var(&friction, "friction", handle.DefaultFriction, "velocity lost per tick")
	cmd.Flags().Float64Var(&guard, "guard", 0, "let a keeper hold handle 2, moving at most this far per tick (0 disables)")
}

func newLogger() *slog.Logger {
	if !verbose {
		return slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	return slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelDebug}))
}

// resolveConfig layers defaults, --preset, --config, changed flags and the
// scenario argument, in that order.
func resolveConfig(cmd *cobra.Command, args []string) (*config.Config, error) {
	cfg := config.DefaultConfig()

	if preset != "" {
		cfg = config.GetPreset(preset)
		if cfg == nil {
			return nil, fmt.Errorf("unknown preset: %s (available: %v)", preset, config.ListPresets())
		}
	}

	if configFile != "" {
		loaded, err := config.Load(configFile)
		if err != nil {
			return nil, fmt.Errorf("failed to load config: %w", err)
		}
		cfg = loaded
	}

	flags := cmd.Flags()
	if flags.Changed("dt") {
		cfg.Dt = dt
	}
	if flags.Changed("time") {
		cfg.Duration = duration
	}
	if flags.Changed("seed") {
		cfg.Seed = seed
	}
	if flags.Changed("friction") {
		cfg.Tuning.Friction = friction
	}
	if len(args) > 0 {
		cfg.Scenario = args[0]
	}

	return cfg, cfg.Validate()
}

func runScenario(cmd *cobra.Command, args []string) error {
	cfg, err := resolveConfig(cmd, args)
	if err != nil {
		return err
	}

	exp, err := experiment.New(cfg,
		experiment.WithMetrics(metricList...),
		experiment.WithLogger(newLogger()),
		experiment.WithGuard(guard),
	)
	if err != nil {
		return err
	}

	st := storage.New(dataDir)
	if err := st.Init(); err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	fmt.Printf("running %s scenario...\n", exp.Scenario().Name)
	start := time.Now()

	var results []*sim.Result
	if numRuns > 1 {
		results, err = exp.RunEnsemble(ctx, numRuns)
	} else {
		var r *sim.Result
		r, err = exp.Run(ctx)
		results = []*sim.Result{r}
	}
	if err != nil {
		return err
	}

	fmt.Printf("completed in %v\n", time.Since(start))

	for i, result := range results {
		runCfg := cfg.ToSimConfig()
		runCfg.Seed = cfg.Seed + int64(i)

		runID, err := st.Save(exp.Scenario().Name, runCfg, result)
		if err != nil {
			return err
		}

		fmt.Printf("\nrun id: %s\n", runID)
		fmt.Printf("steps: %d\n", result.StepsTaken)
		for _, e := range result.Errors {
			fmt.Printf("error: %v\n", e)
		}
		printMetrics(result.Metrics)
	}

	return nil
}

func printMetrics(metrics map[string]float64) {
	names := make([]string, 0, len(metrics))
	for name := range metrics {
		names = append(names, name)
	}
	sort.Strings(names)

	fmt.Println("metrics:")
	for _, name := range names {
		fmt.Printf("  %s: %.6f\n", name, metrics[name])
	}
}

func runLive(cmd *cobra.Command, args []string) error {
	cfg, err := resolveConfig(cmd, args)
	if err != nil {
		return err
	}

	exp, err := experiment.New(cfg, experiment.WithGuard(guard))
	if err != nil {
		return err
	}

	g, err := cfg.ToArena()
	if err != nil {
		return err
	}
	s := sim.New(g, cfg.ToTuning(), sim.WithLogger(newLogger()))

	m := viz.NewModel(s, exp.Driver(cfg.Seed), cfg.Dt, "air hockey · "+exp.Scenario().Name)

	p := tea.NewProgram(m, tea.WithAltScreen())
	if _, err := p.Run(); err != nil {
		return err
	}
	return nil
}

func runSweep(cmd *cobra.Command, args []string) error {
	cfg, err := resolveConfig(cmd, args)
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	sw := experiment.Sweep{Param: sweepParam, Min: sweepMin, Max: sweepMax, Steps: sweepSteps}
	results, err := sw.Run(ctx, cfg, experiment.WithGuard(guard))
	if err != nil {
		return err
	}

	names := experiment.NewRegistry().ListMetrics()

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintf(w, "%s\t%s\n", strings.ToUpper(sweepParam), strings.ToUpper(strings.Join(names, "\t")))
	for _, r := range results {
		fmt.Fprintf(w, "%.4f", r.Value)
		for _, name := range names {
			fmt.Fprintf(w, "\t%.4f", r.Metrics[name])
		}
		fmt.Fprintln(w)
	}

	return w.Flush()
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
	fmt.Fprintln(w, "ID\tSCENARIO\tTIME\tDURATION\tDT\tSEED\tSTEPS")

	for _, run := range runs {
		fmt.Fprintf(w, "%s\t%s\t%s\t%.0fms\t%.4fms\t%d\t%d\n",
			run.ID,
			run.Scenario,
			run.Timestamp.Format("2006-01-02 15:04:05"),
			run.Duration,
			run.Dt,
			run.Seed,
			run.Steps,
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

	frames, _, err := st.LoadFrames(runID)
	if err != nil {
		return err
	}

	if len(frames) == 0 {
		return fmt.Errorf("no data to plot")
	}

	fmt.Printf("run: %s\n", meta.ID)
	fmt.Printf("scenario: %s\n", meta.Scenario)
	fmt.Printf("samples: %d\n\n", len(frames))

	series := []struct {
		caption string
		value   func(sim.HandleState) float64
	}{
		{"speed (handle1 red, handle2 blue)", func(h sim.HandleState) float64 { return h.Velocity.Len() }},
		{"x position", func(h sim.HandleState) float64 { return h.Position.X }},
		{"y position", func(h sim.HandleState) float64 { return h.Position.Y }},
	}

	for _, sr := range series {
		data := [][]float64{make([]float64, len(frames)), make([]float64, len(frames))}
		for i, f := range frames {
			for j, h := range f.Handles {
				data[j][i] = sr.value(h)
			}
		}

		graph := asciigraph.PlotMany(data,
			asciigraph.Height(10),
			asciigraph.Width(80),
			asciigraph.SeriesColors(asciigraph.Red, asciigraph.Blue),
			asciigraph.Caption(sr.caption),
		)
		fmt.Println(graph)
		fmt.Println()
	}

	return nil
}

func exportRun(cmd *cobra.Command, args []string) (err error) {
	st := storage.New(dataDir)
	tr, err := st.Export(args[0])
	if err != nil {
		return err
	}

	out := io.Writer(os.Stdout)
	if outFile != "" {
		f, ferr := os.Create(outFile)
		if ferr != nil {
			return ferr
		}
		defer func() {
			if cerr := f.Close(); err == nil {
				err = cerr
			}
		}()
		out = f
	}

	switch strings.ToLower(format) {
	case "json":
		return storage.ExportJSON(out, tr)
	case "msgpack":
		return storage.ExportMsgpack(out, tr)
	case "csv":
		return storage.ExportCSV(out, tr)
	default:
		return fmt.Errorf("unknown format: %s (available: json, msgpack, csv)", format)
	}
}

func listPresets(cmd *cobra.Command, args []string) error {
	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "PRESET\tSCENARIO\tDT\tDURATION\tFRICTION\tRADIUS")

	for _, name := range config.ListPresets() {
		cfg := config.GetPreset(name)
		fmt.Fprintf(w, "%s\t%s\t%.4fms\t%.0fms\t%.3f\t%.0f\n",
			name, cfg.Scenario, cfg.Dt, cfg.Duration, cfg.Tuning.Friction, cfg.Arena.HandleRadius)
	}

	return w.Flush()
}

func listScenarios(cmd *cobra.Command, args []string) error {
	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "SCENARIO\tEVENTS\tDESCRIPTION")

	registry := experiment.NewRegistry()
	for _, name := range registry.ListScenarios() {
		sc, err := registry.GetScenario(name)
		if err != nil {
			return err
		}
		fmt.Fprintf(w, "%s\t%d\t%s\n", name, len(sc.Events), sc.Description)
	}

	return w.Flush()
}

func initConfig(cmd *cobra.Command, args []string) error {
	path := "airhockey.yaml"
	if len(args) > 0 {
		path = args[0]
	}

	if _, err := os.Stat(path); err == nil {
		return fmt.Errorf("%s already exists", path)
	}

	cfg := config.DefaultConfig()
	if preset != "" {
		cfg = config.GetPreset(preset)
		if cfg == nil {
			return fmt.Errorf("unknown preset: %s (available: %v)", preset, config.ListPresets())
		}
	}

	if err := config.Save(path, cfg); err != nil {
		return err
	}
	fmt.Printf("wrote %s\n", path)
	return nil
}
