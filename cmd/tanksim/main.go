package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"text/tabwriter"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/tanklab/tanksim/internal/config"
	"github.com/tanklab/tanksim/internal/experiment"
	"github.com/tanklab/tanksim/internal/export"
	"github.com/tanklab/tanksim/internal/pid"
	"github.com/tanklab/tanksim/internal/refsig"
	"github.com/tanklab/tanksim/internal/report"
	"github.com/tanklab/tanksim/internal/sim"
	"github.com/tanklab/tanksim/internal/storage"
	"github.com/tanklab/tanksim/internal/viz"
)

var (
	dataDir string
	k       float64
	tau     float64
	kp      float64
	ki      float64
	kd      float64
	periods []float64
	horizon float64
	refKind string
	amp     float64
	slope   float64
	window  int
	// Config file and preset
	configFile string
	preset     string
	// Live view frame rate
	frameRate int
	// SVG output path
	svgOut string
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "tanksim",
		Short: "digital PID level-control simulation lab",
	}

	rootCmd.PersistentFlags().StringVar(&dataDir, "data", ".tanksim", "data directory")

	runCmd := &cobra.Command{
		Use:   "run",
		Short: "simulate the closed loop over the configured sample periods",
		RunE:  runSweep,
	}
	addScenarioFlags(runCmd)

	listCmd := &cobra.Command{
		Use:   "list",
		Short: "list saved runs",
		RunE:  listRuns,
	}

	plotCmd := &cobra.Command{
		Use:   "plot [run_id]",
		Short: "plot a saved run",
		Args:  cobra.ExactArgs(1),
		RunE:  plotRun,
	}

	exportJSONCmd := &cobra.Command{
		Use:   "export-json [run_id]",
		Short: "export run metadata as JSON",
		Args:  cobra.ExactArgs(1),
		RunE:  exportJSON,
	}

	exportCSVCmd := &cobra.Command{
		Use:   "export-csv [run_id]",
		Short: "dump a run's trace CSV to stdout",
		Args:  cobra.ExactArgs(1),
		RunE:  exportCSV,
	}

	exportSVGCmd := &cobra.Command{
		Use:   "export-svg [run_id]",
		Short: "render a run's trace as an SVG figure",
		Args:  cobra.ExactArgs(1),
		RunE:  exportSVG,
	}
	exportSVGCmd.Flags().StringVar(&svgOut, "out", "trace.svg", "output file")

	liveCmd := &cobra.Command{
		Use:   "live",
		Short: "watch the closed loop settle sample by sample",
		RunE:  runLive,
	}
	addScenarioFlags(liveCmd)
	liveCmd.Flags().IntVar(&frameRate, "fps", 30, "frame rate")

	presetsCmd := &cobra.Command{
		Use:   "presets",
		Short: "list available presets",
		Run: func(cmd *cobra.Command, args []string) {
			for _, name := range config.ListPresets() {
				fmt.Println(name)
			}
		},
	}

	rootCmd.AddCommand(runCmd, listCmd, plotCmd, exportJSONCmd, exportCSVCmd, exportSVGCmd, liveCmd, presetsCmd)

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func addScenarioFlags(cmd *cobra.Command) {
	cmd.Flags().Float64Var(&k, "k", config.DefaultK, "plant static gain")
	cmd.Flags().Float64Var(&tau, "tau", config.DefaultTau, "plant time constant (s)")
	cmd.Flags().Float64Var(&kp, "kp", config.DefaultKp, "proportional gain")
	cmd.Flags().Float64Var(&ki, "ki", config.DefaultKi, "integral gain")
	cmd.Flags().Float64Var(&kd, "kd", config.DefaultKd, "derivative gain")
	cmd.Flags().Float64SliceVar(&periods, "periods", []float64{config.DefaultPeriod}, "sample periods (s)")
	cmd.Flags().Float64Var(&horizon, "time", config.DefaultHorizon, "simulation horizon (s)")
	cmd.Flags().StringVar(&refKind, "ref", "step", "reference signal (step|ramp|both)")
	cmd.Flags().Float64Var(&amp, "amplitude", config.DefaultAmplitude, "step amplitude (m)")
	cmd.Flags().Float64Var(&slope, "slope", config.DefaultSlope, "ramp slope (m/s)")
	cmd.Flags().IntVar(&window, "window", config.DefaultWindow, "settling-time lookback window (samples)")
	cmd.Flags().StringVar(&configFile, "config", "", "config file path (yaml)")
	cmd.Flags().StringVar(&preset, "preset", "", "use preset configuration")
}

// scenario resolves preset, config file and flags (in rising precedence)
// into a campaign config.
func scenario(cmd *cobra.Command) (*config.Config, error) {
	cfg := config.DefaultConfig()

	if preset != "" {
		p := config.GetPreset(preset)
		if p == nil {
			return nil, fmt.Errorf("unknown preset: %s (available: %v)", preset, config.ListPresets())
		}
		cfg = p
	}

	if configFile != "" {
		loaded, err := config.Load(configFile)
		if err != nil {
			return nil, fmt.Errorf("failed to load config: %w", err)
		}
		cfg = loaded
	}

	flags := cmd.Flags()
	if flags.Changed("k") {
		cfg.Plant.K = k
	}
	if flags.Changed("tau") {
		cfg.Plant.Tau = tau
	}
	if flags.Changed("kp") {
		cfg.Gains.Kp = kp
	}
	if flags.Changed("ki") {
		cfg.Gains.Ki = ki
	}
	if flags.Changed("kd") {
		cfg.Gains.Kd = kd
	}
	if flags.Changed("periods") {
		cfg.SamplePeriods = periods
	}
	if flags.Changed("time") {
		cfg.Horizon = horizon
	}
	if flags.Changed("ref") {
		cfg.Reference = refKind
	}
	if flags.Changed("amplitude") {
		cfg.StepAmplitude = amp
	}
	if flags.Changed("slope") {
		cfg.RampSlope = slope
	}
	if flags.Changed("window") {
		cfg.SettlingWindow = window
	}
	return cfg, nil
}

func runConfig(cfg *config.Config, kind refsig.Kind) experiment.Config {
	return experiment.Config{
		Plant:          experiment.PlantParams{K: cfg.Plant.K, Tau: cfg.Plant.Tau},
		Gains:          pid.Gains{Kp: cfg.Gains.Kp, Ki: cfg.Gains.Ki, Kd: cfg.Gains.Kd},
		Horizon:        cfg.Horizon,
		Reference:      kind,
		StepAmplitude:  cfg.StepAmplitude,
		RampSlope:      cfg.RampSlope,
		SettlingWindow: cfg.SettlingWindow,
	}
}

func referenceKinds(cfg *config.Config) ([]refsig.Kind, error) {
	switch cfg.Reference {
	case "step":
		return []refsig.Kind{refsig.Step}, nil
	case "ramp":
		return []refsig.Kind{refsig.Ramp}, nil
	case "both":
		return []refsig.Kind{refsig.Step, refsig.Ramp}, nil
	default:
		return nil, fmt.Errorf("unknown reference: %s (want step, ramp or both)", cfg.Reference)
	}
}

func runSweep(cmd *cobra.Command, args []string) error {
	cfg, err := scenario(cmd)
	if err != nil {
		return err
	}
	kinds, err := referenceKinds(cfg)
	if err != nil {
		return err
	}

	st := storage.New(dataDir)
	if err := st.Init(); err != nil {
		return err
	}

	ctx := context.Background()
	for _, kind := range kinds {
		items := experiment.Sweep(ctx, runConfig(cfg, kind), cfg.SamplePeriods)
		fmt.Print(report.RenderSweep(items))

		for _, item := range items {
			if item.Err != nil {
				continue
			}
			runID, err := st.Save(item.Result)
			if err != nil {
				return err
			}
			fmt.Printf("saved: %s\n", runID)
		}
		fmt.Println()
	}
	return nil
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
	fmt.Fprintln(w, "ID\tREF\tT\tHORIZON\tKP\tKI\tKD")
	for _, run := range runs {
		fmt.Fprintf(w, "%s\t%s\t%gs\t%gs\t%g\t%g\t%g\n",
			run.ID, run.Reference, run.SamplePeriod, run.Horizon, run.Kp, run.Ki, run.Kd)
	}
	return w.Flush()
}

func plotRun(cmd *cobra.Command, args []string) error {
	st := storage.New(dataDir)
	meta, err := st.Load(args[0])
	if err != nil {
		return err
	}
	td, err := st.LoadTrace(args[0])
	if err != nil {
		return err
	}
	if len(td.Time) == 0 {
		return fmt.Errorf("no data to plot")
	}

	fmt.Printf("run: %s\n", meta.ID)
	fmt.Printf("reference: %s, T = %gs\n\n", meta.Reference, meta.SamplePeriod)

	fmt.Println(viz.PlotSeries(td.Output, "output"))
	fmt.Println()
	fmt.Println(viz.PlotSeries(td.Reference, "reference"))
	fmt.Println()
	fmt.Println(viz.PlotSeries(td.Error, "tracking error"))
	fmt.Println()
	fmt.Println(viz.PlotSeries(td.Effort, "control effort"))
	return nil
}

func exportJSON(cmd *cobra.Command, args []string) error {
	st := storage.New(dataDir)
	meta, err := st.Load(args[0])
	if err != nil {
		return err
	}
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(meta)
}

func exportCSV(cmd *cobra.Command, args []string) error {
	data, err := os.ReadFile(filepath.Join(dataDir, args[0], "trace.csv"))
	if err != nil {
		return err
	}
	_, err = os.Stdout.Write(data)
	return err
}

func exportSVG(cmd *cobra.Command, args []string) error {
	st := storage.New(dataDir)
	td, err := st.LoadTrace(args[0])
	if err != nil {
		return err
	}

	tr := sim.Trace{Time: td.Time, Input: td.Reference, Output: td.Output}
	if err := export.WriteSVG(svgOut, tr, 800, 400); err != nil {
		return err
	}
	fmt.Printf("wrote %s\n", svgOut)
	return nil
}

func runLive(cmd *cobra.Command, args []string) error {
	cfg, err := scenario(cmd)
	if err != nil {
		return err
	}
	kinds, err := referenceKinds(cfg)
	if err != nil {
		return err
	}

	runCfg := runConfig(cfg, kinds[0])
	runCfg.SamplePeriod = cfg.SamplePeriods[0]

	res, err := experiment.Run(context.Background(), runCfg)
	if err != nil {
		return err
	}

	p := tea.NewProgram(viz.NewModel(res, frameRate))
	if _, err := p.Run(); err != nil {
		return err
	}
	return nil
}
