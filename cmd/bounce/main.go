package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log"
	"math/rand"
	"os"
	"os/signal"
	"sort"
	"strings"
	"text/tabwriter"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/guptarohit/asciigraph"
	"github.com/san-kum/bounce/internal/automation"
	"github.com/san-kum/bounce/internal/config"
	"github.com/san-kum/bounce/internal/dynamo"
	"github.com/san-kum/bounce/internal/export"
	"github.com/san-kum/bounce/internal/gui"
	"github.com/san-kum/bounce/internal/metrics"
	"github.com/san-kum/bounce/internal/sim"
	"github.com/san-kum/bounce/internal/viz"
	"github.com/spf13/cobra"
)

var (
	// Config file and preset
	configFile string
	preset     string
	// Overrides
	seed      int64
	frameRate int
	theme     string
	pairs     string
	maxBodies int
	maxDt     float64
	// Headless run
	frames    int
	dt        float64
	numBodies int
	svgFile   string
	traceFile string
	jsonFile  string
	csvFile   string
	preview   int
	// Sweep and trials
	paramName string
	paramMin  float64
	paramMax  float64
	numSteps  int
	numTrials int
	// Log file, discarded when empty
	logFile string
	force   bool

	logCloser io.Closer
)

// main registers the commands and runs the terminal front-end when no
// subcommand is given. It exits with status 1 on error.
func main() {
	rootCmd := &cobra.Command{
		Use:               "bounce",
		Short:             "circles, gravity and a slingshot",
		PersistentPreRunE: setupLog,
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			if logCloser != nil {
				logCloser.Close()
			}
		},
		RunE: runLive,
	}

	addConfigFlags(rootCmd)
	rootCmd.PersistentFlags().StringVar(&logFile, "log", "", "write debug log to file")

	tuiCmd := &cobra.Command{
		Use:   "tui",
		Short: "pick a preset, then run in the terminal",
		RunE: func(cmd *cobra.Command, args []string) error {
			return viz.RunInteractive(presetResolver(cmd))
		},
	}

	guiCmd := &cobra.Command{
		Use:   "gui",
		Short: "run in a window",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := resolveConfig(cmd)
			if err != nil {
				return err
			}
			name := preset
			if name == "" {
				name = "classic"
			}
			return gui.Run(cfg, name)
		},
	}

	runCmd := &cobra.Command{
		Use:   "run",
		Short: "run headless and print metrics",
		RunE:  runHeadless,
	}
	runCmd.Flags().IntVar(&frames, "frames", 600, "number of frames")
	runCmd.Flags().Float64Var(&dt, "dt", 1000.0/60, "frame time in ms")
	runCmd.Flags().IntVar(&numBodies, "bodies", 8, "number of bodies")
	runCmd.Flags().StringVar(&svgFile, "svg", "", "write final frame as svg")
	runCmd.Flags().StringVar(&traceFile, "trace", "", "write path of the first body as svg")
	runCmd.Flags().StringVar(&jsonFile, "json", "", "write result and final bodies as json")
	runCmd.Flags().StringVar(&csvFile, "csv", "", "write metric series as csv")
	runCmd.Flags().IntVar(&preview, "preview", 0, "print the final frame as braille this many columns wide")

	scriptCmd := &cobra.Command{
		Use:   "script [file]",
		Short: "replay a yaml scenario of pointer events",
		Args:  cobra.ExactArgs(1),
		RunE:  runScript,
	}
	scriptCmd.Flags().StringVar(&svgFile, "svg", "", "write final frame as svg")

	sweepCmd := &cobra.Command{
		Use:   "sweep",
		Short: "repeat a headless run across values of one parameter",
		RunE:  runSweep,
	}
	sweepCmd.Flags().StringVar(&paramName, "param", "restitution", "tuning parameter to sweep")
	sweepCmd.Flags().Float64Var(&paramMin, "min", 0.5, "first value")
	sweepCmd.Flags().Float64Var(&paramMax, "max", 1.5, "last value")
	sweepCmd.Flags().IntVar(&numSteps, "steps", 5, "number of values")

	trialsCmd := &cobra.Command{
		Use:   "trials",
		Short: "repeat a headless run with random seeds and count unstable runs",
		RunE:  runTrials,
	}
	trialsCmd.Flags().IntVar(&numTrials, "n", 20, "number of trials")

	for _, c := range []*cobra.Command{sweepCmd, trialsCmd} {
		c.Flags().IntVar(&frames, "frames", 600, "number of frames")
		c.Flags().Float64Var(&dt, "dt", 1000.0/60, "frame time in ms")
		c.Flags().IntVar(&numBodies, "bodies", 8, "number of bodies")
	}

	presetsCmd := &cobra.Command{
		Use:   "presets",
		Short: "list available presets",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Println("presets:")
			for _, p := range config.ListPresets() {
				fmt.Printf("  %s\n", p)
			}
		},
	}

	configCmd := &cobra.Command{
		Use:   "config",
		Short: "manage config files",
	}
	initCmd := &cobra.Command{
		Use:   "init [path]",
		Short: "write the resolved configuration to a yaml file",
		Args:  cobra.MaximumNArgs(1),
		RunE:  initConfig,
	}
	initCmd.Flags().BoolVar(&force, "force", false, "overwrite an existing file")
	configCmd.AddCommand(initCmd)

	rootCmd.AddCommand(tuiCmd, guiCmd, runCmd, scriptCmd, sweepCmd, trialsCmd, presetsCmd, configCmd)

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

// addConfigFlags registers the flags resolveConfig reads.
func addConfigFlags(cmd *cobra.Command) {
	pf := cmd.PersistentFlags()
	pf.StringVar(&configFile, "config", "", "config file path (yaml)")
	pf.StringVar(&preset, "preset", "", "use preset configuration")
	pf.Int64Var(&seed, "seed", 0, "random seed (0 picks one from the clock)")
	pf.IntVar(&frameRate, "fps", config.DefaultFPS, "frame rate")
	pf.StringVar(&theme, "theme", config.DefaultTheme, "color theme")
	pf.StringVar(&pairs, "pairs", string(sim.PairsOrdered), "pair resolution: ordered or unique")
	pf.IntVar(&maxBodies, "max-bodies", 0, "body cap, 0 for none")
	pf.Float64Var(&maxDt, "max-dt", 0, "frame time cap in ms, 0 for none")
}

// setupLog sends the standard logger to --log, or nowhere. Terminal output
// is owned by the UI.
func setupLog(cmd *cobra.Command, args []string) error {
	if logFile == "" {
		log.SetOutput(io.Discard)
		return nil
	}
	f, err := tea.LogToFile(logFile, "bounce")
	if err != nil {
		return fmt.Errorf("open log: %w", err)
	}
	logCloser = f
	return nil
}

// resolveConfig builds the configuration: defaults, then the preset, then
// the config file read over it, then flags that were set explicitly.
func resolveConfig(cmd *cobra.Command) (*config.Config, error) {
	cfg := config.DefaultConfig()
	if preset != "" {
		p, err := config.MustPreset(preset)
		if err != nil {
			return nil, err
		}
		cfg = p
	}

	if configFile != "" {
		loaded, err := config.LoadInto(configFile, cfg)
		if err != nil {
			return nil, fmt.Errorf("failed to load config: %w", err)
		}
		cfg = loaded
	}

	flags := cmd.Flags()
	if flags.Changed("seed") {
		cfg.Seed = seed
	}
	if flags.Changed("fps") {
		cfg.FPS = frameRate
	}
	if flags.Changed("theme") {
		cfg.Theme = theme
	}
	if flags.Changed("pairs") {
		cfg.Pairs = pairs
	}
	if flags.Changed("max-bodies") {
		cfg.MaxBodies = maxBodies
	}
	if flags.Changed("max-dt") {
		cfg.MaxDt = maxDt
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// presetResolver resolves the configuration for the preset picked in the
// menu, keeping the config file and explicit flags on top of it.
func presetResolver(cmd *cobra.Command) viz.Resolver {
	return func(name string) (*config.Config, error) {
		preset = name
		return resolveConfig(cmd)
	}
}

// pickSeed returns s, or a seed from the clock when s is zero.
func pickSeed(s int64) int64 {
	if s == 0 {
		return time.Now().UnixNano()
	}
	return s
}

// newWorld builds a world from cfg and returns the seed it used.
func newWorld(cfg *config.Config) (*sim.World, int64) {
	s := pickSeed(cfg.Seed)
	return worldFactory(cfg)(s), s
}

func runLive(cmd *cobra.Command, args []string) error {
	cfg, err := resolveConfig(cmd)
	if err != nil {
		return err
	}
	w, _ := newWorld(cfg)
	return viz.Run(w, cfg.FPS, cfg.Theme)
}

func runHeadless(cmd *cobra.Command, args []string) error {
	cfg, err := resolveConfig(cmd)
	if err != nil {
		return err
	}

	w, usedSeed := newWorld(cfg)
	s := sim.NewSimulator(w)
	s.AddMetric(metrics.NewEnergy())
	s.AddMetric(metrics.NewMomentum())
	s.AddMetric(metrics.NewCollisions())
	s.AddMetric(metrics.NewContainment(1e-9))

	// bodies are numbered from 1 in spawn order
	tracker := &export.Tracker{Body: dynamo.BodyID(1)}
	if traceFile != "" {
		s.AddObserver(tracker)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	fmt.Printf("running %d bodies for %d frames...\n", numBodies, frames)
	start := time.Now()

	result, runErr := s.Run(ctx, sim.RunConfig{Frames: frames, Dt: dt, Bodies: numBodies})
	if result == nil {
		return runErr
	}
	elapsed := time.Since(start)

	fmt.Printf("completed in %v\n", elapsed)
	printResult(result)

	if energy := result.Series["energy"]; len(energy) > 1 {
		fmt.Println()
		fmt.Println(asciigraph.Plot(energy, asciigraph.Height(10), asciigraph.Width(60), asciigraph.Caption("kinetic energy")))
	}
	if preview > 0 {
		fmt.Println()
		fmt.Print(viz.Preview(w, preview))
	}

	if svgFile != "" {
		if err := os.WriteFile(svgFile, []byte(export.WorldToSVG(w, viz.GetTheme(cfg.Theme))), 0644); err != nil {
			return err
		}
		fmt.Printf("wrote %s\n", svgFile)
	}
	if traceFile != "" {
		out := export.TrajectoryToSVG(tracker.Points, w.Bounds(), "#00ff00")
		if out == "" {
			return errors.New("trace: not enough points")
		}
		if err := os.WriteFile(traceFile, []byte(out), 0644); err != nil {
			return err
		}
		fmt.Printf("wrote %s\n", traceFile)
	}
	if jsonFile != "" {
		if err := writeFile(jsonFile, func(f io.Writer) error {
			return export.WriteJSON(f, export.NewExportData(w, result, usedSeed, dt))
		}); err != nil {
			return err
		}
	}
	if csvFile != "" {
		if err := writeFile(csvFile, func(f io.Writer) error {
			return export.WriteCSV(f, result, dt)
		}); err != nil {
			return err
		}
	}

	return runErr
}

func writeFile(path string, write func(io.Writer) error) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := write(f); err != nil {
		f.Close()
		return err
	}
	if err := f.Close(); err != nil {
		return err
	}
	fmt.Printf("wrote %s\n", path)
	return nil
}

func runScript(cmd *cobra.Command, args []string) error {
	cfg, err := resolveConfig(cmd)
	if err != nil {
		return err
	}
	sc, err := automation.LoadScenario(args[0])
	if err != nil {
		return fmt.Errorf("failed to load scenario: %w", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	w, _ := newWorld(cfg)
	fmt.Printf("running scenario %q: %d frames, %d events\n", sc.Name, sc.Frames, len(sc.Events))
	result, runErr := automation.RunScenario(ctx, sc, w,
		metrics.NewEnergy(), metrics.NewMomentum(), metrics.NewCollisions(), metrics.NewContainment(1e-9))
	printResult(result)

	if svgFile != "" {
		if err := os.WriteFile(svgFile, []byte(export.WorldToSVG(w, viz.GetTheme(cfg.Theme))), 0644); err != nil {
			return err
		}
		fmt.Printf("wrote %s\n", svgFile)
	}
	return runErr
}

// worldFactory returns a constructor for fresh worlds built from cfg.
func worldFactory(cfg *config.Config) func(seed int64) *sim.World {
	return func(seed int64) *sim.World {
		return sim.New(cfg.SimConfig(), rand.New(rand.NewSource(seed)))
	}
}

func runSweep(cmd *cobra.Command, args []string) error {
	cfg, err := resolveConfig(cmd)
	if err != nil {
		return err
	}
	s := pickSeed(cfg.Seed)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	sweep := &automation.ParameterSweep{
		ParamName: paramName,
		ParamMin:  paramMin,
		ParamMax:  paramMax,
		NumSteps:  numSteps,
		Run:       sim.RunConfig{Frames: frames, Dt: dt, Bodies: numBodies},
		Seed:      s,
	}
	results, err := automation.RunSweep(ctx, sweep, worldFactory(cfg))
	if err != nil {
		return err
	}

	tw := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintf(tw, "%s\tPEAK ENERGY\tCOLLISIONS\tCONTAINED\tSTATUS\n", strings.ToUpper(paramName))
	for _, r := range results {
		status := "ok"
		if r.Err != nil {
			status = r.Err.Error()
		}
		fmt.Fprintf(tw, "%.4f\t%.4f\t%.0f\t%.3f\t%s\n", r.ParamValue, r.PeakEnergy, r.Collisions, r.Containment, status)
	}
	return tw.Flush()
}

func runTrials(cmd *cobra.Command, args []string) error {
	cfg, err := resolveConfig(cmd)
	if err != nil {
		return err
	}

	s := pickSeed(cfg.Seed)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	mc := &automation.MonteCarloConfig{
		NumTrials: numTrials,
		Run:       sim.RunConfig{Frames: frames, Dt: dt, Bodies: numBodies},
		Seed:      s,
	}
	results, err := automation.RunMonteCarlo(ctx, mc, worldFactory(cfg))
	if err != nil {
		return err
	}

	stable, unstable := automation.MonteCarloStats(results)
	peaks := make([]float64, len(results))
	for i, r := range results {
		peaks[i] = r.PeakEnergy
		if !r.Stable {
			fmt.Printf("trial %d (seed %d) went non-finite\n", r.TrialID, r.Seed)
		}
	}
	fmt.Printf("%d trials from seed %d: %d stable, %d unstable\n", len(results), s, stable, unstable)
	if len(peaks) > 1 {
		fmt.Println(asciigraph.Plot(peaks, asciigraph.Height(8), asciigraph.Width(60), asciigraph.Caption("peak energy per trial")))
	}
	return nil
}

func printResult(r *sim.Result) {
	tw := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "\nMETRIC\tVALUE")
	fmt.Fprintf(tw, "frames\t%d\n", r.Frames)
	fmt.Fprintf(tw, "bodies\t%d\n", r.Bodies)
	fmt.Fprintf(tw, "elapsed_ms\t%.1f\n", r.Elapsed)

	names := make([]string, 0, len(r.Metrics))
	for name := range r.Metrics {
		names = append(names, name)
	}
	sort.Strings(names)
	for _, name := range names {
		fmt.Fprintf(tw, "%s\t%.6f\n", name, r.Metrics[name])
	}
	tw.Flush()
}

func initConfig(cmd *cobra.Command, args []string) error {
	path := "bounce.yaml"
	if len(args) > 0 {
		path = args[0]
	}
	if _, err := os.Stat(path); err == nil && !force {
		return fmt.Errorf("%s already exists (use --force)", path)
	}

	cfg, err := resolveConfig(cmd)
	if err != nil {
		return err
	}
	if err := config.Save(path, cfg); err != nil {
		return err
	}
	fmt.Printf("wrote %s\n", path)
	return nil
}
