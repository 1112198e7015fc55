package main

import (
	"context"
	"fmt"
	"log/slog"
	"math"
	"math/rand"
	"os"
	"os/signal"
	"sort"
	"strings"
	"text/tabwriter"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/guptarohit/asciigraph"
	"github.com/san-kum/heroviz/internal/config"
	"github.com/san-kum/heroviz/internal/desktop"
	"github.com/san-kum/heroviz/internal/export"
	"github.com/san-kum/heroviz/internal/gui"
	"github.com/san-kum/heroviz/internal/logging"
	"github.com/san-kum/heroviz/internal/metrics"
	"github.com/san-kum/heroviz/internal/scene"
	"github.com/san-kum/heroviz/internal/sim"
	"github.com/san-kum/heroviz/internal/storage"
	"github.com/san-kum/heroviz/internal/viz"
	"github.com/spf13/cobra"
)

var (
	dataDir    string
	configFile string
	preset     string
	logLevel   string
	logFormat  string
	seed       int64
	theme      string

	// window and terminal hosts
	width     int
	height    int
	frameRate int
	hud       bool
	dotScale  float64

	// headless runs
	pointerMode string
	format      string
	outFile     string
	pixelRatio  float64
	metricNames []string
	save        bool
	numRuns     int
	asJSON      bool
)

var (
	headingStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#3b82f6"))
	mutedStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("#64748b"))
)

// main registers the heroviz commands and runs the raylib window when no
// subcommand is given. It exits with status 1 if a command fails.
func main() {
	rootCmd := &cobra.Command{
		Use:          "heroviz",
		Short:        "animated particle network and waveform",
		SilenceUsage: true,
		RunE:         runWindow,
	}

	rootCmd.PersistentFlags().StringVar(&dataDir, "data", ".heroviz", "data directory")
	rootCmd.PersistentFlags().StringVar(&configFile, "config", "", "config file path (yaml)")
	rootCmd.PersistentFlags().StringVar(&preset, "preset", "", "use preset configuration")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "warn", "log level (debug, info, warn, error)")
	rootCmd.PersistentFlags().StringVar(&logFormat, "log-format", "text", "log format (text, json)")
	rootCmd.PersistentFlags().Int64Var(&seed, "seed", 1, "random seed for particle placement")

	windowCmd := &cobra.Command{
		Use:   "window",
		Short: "run in a raylib window",
		RunE:  runWindow,
	}
	addWindowFlags(windowCmd)
	addWindowFlags(rootCmd)

	ebitenCmd := &cobra.Command{
		Use:   "ebiten",
		Short: "run in an ebiten window",
		RunE:  runEbiten,
	}
	addWindowFlags(ebitenCmd)

	termCmd := &cobra.Command{
		Use:   "term",
		Short: "run in the terminal with braille graphics",
		RunE:  runTerm,
	}
	termCmd.Flags().IntVar(&frameRate, "fps", 30, "frame rate")
	termCmd.Flags().Float64Var(&dotScale, "dot-scale", 5, "logical units per braille dot")
	termCmd.Flags().StringVar(&theme, "theme", "hero", "color theme")
	termCmd.Flags().BoolVar(&hud, "stats", true, "show the stats panel")

	snapshotCmd := &cobra.Command{
		Use:   "snapshot",
		Short: "render a frame without a display",
		RunE:  runSnapshot,
	}
	snapshotCmd.Flags().StringVar(&format, "format", "svg", "output format (svg, png, braille)")
	snapshotCmd.Flags().Int("ticks", 120, "frames to advance before capture")
	snapshotCmd.Flags().StringVar(&outFile, "out", "", "output file (default heroviz.<format>, - for stdout)")
	snapshotCmd.Flags().IntVar(&width, "width", 1280, "logical width")
	snapshotCmd.Flags().IntVar(&height, "height", 720, "logical height")
	snapshotCmd.Flags().Float64Var(&pixelRatio, "dpr", 2, "device pixel ratio")
	snapshotCmd.Flags().StringVar(&pointerMode, "pointer", "still", "pointer path (still, center, orbit)")

	traceCmd := &cobra.Command{
		Use:   "trace",
		Short: "run headless and plot metrics",
		RunE:  runTrace,
	}
	traceCmd.Flags().Int("ticks", 600, "ticks to simulate")
	traceCmd.Flags().IntVar(&width, "width", 1280, "logical width")
	traceCmd.Flags().IntVar(&height, "height", 720, "logical height")
	traceCmd.Flags().StringVar(&pointerMode, "pointer", "still", "pointer path (still, center, orbit)")
	traceCmd.Flags().StringSliceVar(&metricNames, "metrics", nil, "metrics to record (default all)")
	traceCmd.Flags().BoolVar(&save, "save", false, "save the run to the data directory")
	traceCmd.Flags().IntVar(&numRuns, "runs", 1, "number of seeds to run, starting at --seed")
	traceCmd.Flags().BoolVar(&asJSON, "json", false, "print the run as json instead of plots")

	benchCmd := &cobra.Command{
		Use:   "bench",
		Short: "benchmark the simulation step",
		RunE:  runBench,
	}
	benchCmd.Flags().Int("ticks", 600, "ticks per measurement")

	runsCmd := &cobra.Command{
		Use:   "runs",
		Short: "list saved runs",
		RunE:  listRuns,
	}

	plotCmd := &cobra.Command{
		Use:   "plot [run_id]",
		Short: "plot the metrics of a saved run",
		Args:  cobra.ExactArgs(1),
		RunE:  plotRun,
	}

	presetsCmd := &cobra.Command{
		Use:   "presets",
		Short: "list presets",
		RunE:  listPresets,
	}

	configCmd := &cobra.Command{
		Use:   "config",
		Short: "manage configuration files",
	}
	configInitCmd := &cobra.Command{
		Use:   "init [path]",
		Short: "write the default configuration",
		Args:  cobra.MaximumNArgs(1),
		RunE:  initConfig,
	}
	configCmd.AddCommand(configInitCmd)

	rootCmd.AddCommand(windowCmd, ebitenCmd, termCmd, snapshotCmd, traceCmd,
		benchCmd, runsCmd, plotCmd, presetsCmd, configCmd)

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func addWindowFlags(cmd *cobra.Command) {
	cmd.Flags().IntVar(&width, "width", 1280, "window width")
	cmd.Flags().IntVar(&height, "height", 720, "window height")
	cmd.Flags().IntVar(&frameRate, "fps", 60, "frame rate")
	cmd.Flags().BoolVar(&hud, "hud", true, "show the overlay")
}

// loadConfig resolves the preset, then the config file over it, then any
// flags the user set explicitly.
func loadConfig(cmd *cobra.Command) (*config.Config, error) {
	cfg := config.DefaultConfig()
	if preset != "" {
		cfg = config.GetPreset(preset)
		if cfg == nil {
			return nil, fmt.Errorf("unknown preset: %s (available: %v)", preset, config.ListPresets())
		}
	}

	if configFile != "" {
		loaded, err := config.LoadOver(configFile, cfg)
		if err != nil {
			return nil, fmt.Errorf("failed to load config: %w", err)
		}
		cfg = loaded
	}

	flags := cmd.Flags()
	if flags.Changed("seed") {
		cfg.Seed = seed
	}
	if flags.Changed("log-level") {
		cfg.Log.Level = logLevel
	}
	if flags.Changed("log-format") {
		cfg.Log.Format = logFormat
	}

	switch cmd.Name() {
	case "term":
		if flags.Changed("fps") {
			cfg.Terminal.FPS = frameRate
		}
		if flags.Changed("dot-scale") {
			cfg.Terminal.DotScale = dotScale
		}
		if flags.Changed("stats") {
			cfg.Terminal.ShowStats = hud
		}
		if flags.Changed("theme") {
			cfg.Theme = theme
		}
	case "heroviz", "window", "ebiten":
		if flags.Changed("width") {
			cfg.Window.Width = width
		}
		if flags.Changed("height") {
			cfg.Window.Height = height
		}
		if flags.Changed("fps") {
			cfg.Window.FPS = frameRate
		}
		if flags.Changed("hud") {
			cfg.Window.HUD = hud
		}
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func newLogger(cfg *config.Config) (*slog.Logger, error) {
	return logging.New(os.Stderr, cfg.Log.Level, cfg.Log.Format)
}

func setup(cmd *cobra.Command) (*config.Config, *slog.Logger, error) {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return nil, nil, err
	}
	log, err := newLogger(cfg)
	if err != nil {
		return nil, nil, err
	}
	return cfg, log, nil
}

func runWindow(cmd *cobra.Command, args []string) error {
	cfg, log, err := setup(cmd)
	if err != nil {
		return err
	}

	return gui.Run(gui.Options{
		Title:      cfg.Window.Title,
		Width:      cfg.Window.Width,
		Height:     cfg.Window.Height,
		FPS:        cfg.Window.FPS,
		HUD:        cfg.Window.HUD,
		FontPath:   cfg.Window.FontPath,
		Background: cfg.Background(),
	}, cfg.SurfaceOptions(log))
}

func runEbiten(cmd *cobra.Command, args []string) error {
	cfg, log, err := setup(cmd)
	if err != nil {
		return err
	}

	return desktop.Run(desktop.Options{
		Title:      cfg.Window.Title,
		Width:      cfg.Window.Width,
		Height:     cfg.Window.Height,
		TPS:        cfg.Window.FPS,
		HUD:        cfg.Window.HUD,
		Background: cfg.Background(),
	}, cfg.SurfaceOptions(log))
}

func runTerm(cmd *cobra.Command, args []string) error {
	cfg, log, err := setup(cmd)
	if err != nil {
		return err
	}

	return viz.Run(viz.Options{
		Title:     cfg.Window.Title,
		FPS:       cfg.Terminal.FPS,
		Scale:     cfg.Terminal.DotScale,
		Theme:     cfg.Theme,
		ShowStats: cfg.Terminal.ShowStats,
	}, cfg.SurfaceOptions(log))
}

// pointerPath maps a --pointer name to a path over a field of size b.
func pointerPath(name string, b scene.Bounds) (sim.PointerPath, error) {
	switch name {
	case "still", "":
		return sim.Still(scene.Offscreen), nil
	case "center":
		return sim.Still(scene.Pointer{X: b.W / 2, Y: b.H / 2}), nil
	case "orbit":
		return sim.Orbit(math.Min(b.W, b.H)*0.2, 240), nil
	}
	return nil, fmt.Errorf("unknown pointer path: %s (available: still, center, orbit)", name)
}

func runSnapshot(cmd *cobra.Command, args []string) error {
	cfg, log, err := setup(cmd)
	if err != nil {
		return err
	}
	ticks, _ := cmd.Flags().GetInt("ticks")

	f := export.Format(format)
	b := scene.Bounds{W: float64(width), H: float64(height)}
	path, err := pointerPath(pointerMode, b)
	if err != nil {
		return err
	}
	snap := export.Snapshot{
		Width:      b.W,
		Height:     b.H,
		PixelRatio: pixelRatio,
		Ticks:      ticks,
		Pointer:    path,
		Background: cfg.Background(),
	}

	if outFile == "-" {
		_, err := export.Write(os.Stdout, f, snap, cfg.SurfaceOptions(log))
		return err
	}

	name := outFile
	if name == "" {
		name = "heroviz." + format
	}
	out, err := os.Create(name)
	if err != nil {
		return err
	}
	defer out.Close()

	sc, err := export.Write(out, f, snap, cfg.SurfaceOptions(log))
	if err != nil {
		return err
	}

	fmt.Printf("wrote %s (%d particles, t=%.2f)\n", name, sc.Count(), sc.Time)
	return out.Close()
}

func runTrace(cmd *cobra.Command, args []string) error {
	cfg, log, err := setup(cmd)
	if err != nil {
		return err
	}
	ticks, _ := cmd.Flags().GetInt("ticks")
	if numRuns < 1 {
		return fmt.Errorf("runs must be positive, got %d", numRuns)
	}

	b := scene.Bounds{W: float64(width), H: float64(height)}
	path, err := pointerPath(pointerMode, b)
	if err != nil {
		return err
	}
	env := metrics.Env{Bounds: b, ConnectionDistance: cfg.Render.ConnectionDistance}
	if _, err := metrics.Build(env, metricNames...); err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	stepper := sim.NewStepper(cfg.SimParams())
	populate := func(s int64) *scene.Scene {
		return scene.Populate(b.W, b.H, cfg.SceneParams(), rand.New(rand.NewSource(s)))
	}
	build := func() []sim.Metric {
		ms, _ := metrics.Build(env, metricNames...)
		return ms
	}
	runCfg := sim.RunConfig{Ticks: ticks, Bounds: b, Pointer: path}

	log.Info("trace", "ticks", ticks, "runs", numRuns, "seed", cfg.Seed, "pointer", pointerMode)
	start := time.Now()
	results, err := sim.NewEnsemble(stepper, numRuns, cfg.Seed).Run(ctx, populate, build, runCfg)
	if err != nil {
		return err
	}
	log.Debug("trace done", "elapsed", time.Since(start))

	name := preset
	if name == "" {
		name = "default"
	}
	metas := make([]storage.RunMetadata, len(results))
	for i := range results {
		metas[i] = storage.RunMetadata{
			Preset:  name,
			Seed:    cfg.Seed + int64(i),
			Width:   b.W,
			Height:  b.H,
			Pointer: pointerMode,
		}
	}

	if save {
		st := storage.New(dataDir)
		if err := st.Init(); err != nil {
			return err
		}
		for i, res := range results {
			id, err := st.Save(metas[i], res)
			if err != nil {
				return err
			}
			metas[i].ID = id
			if !asJSON {
				fmt.Printf("saved: %s\n", id)
			}
		}
	}

	if asJSON {
		for i, res := range results {
			if err := storage.ExportJSON(os.Stdout, metas[i], res); err != nil {
				return err
			}
		}
		return nil
	}

	if len(results) > 1 {
		return printEnsemble(results, metas)
	}
	return printTrace(results[0])
}

func printTrace(res *sim.Result) error {
	names := sortedKeys(res.Metrics)

	fmt.Println(headingStyle.Render(fmt.Sprintf("%d ticks, %d particles", res.Ticks, res.Final.Count())))
	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "METRIC\tFINAL")
	for _, n := range names {
		fmt.Fprintf(w, "%s\t%.4f\n", n, res.Metrics[n])
	}
	if err := w.Flush(); err != nil {
		return err
	}

	for _, n := range names {
		plotSeries(n, res.Series[n])
	}
	return nil
}

func printEnsemble(results []*sim.Result, metas []storage.RunMetadata) error {
	names := sortedKeys(results[0].Metrics)

	fmt.Println(headingStyle.Render(fmt.Sprintf("%d runs, %d ticks each", len(results), results[0].Ticks)))
	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintf(w, "SEED\t%s\n", strings.ToUpper(strings.Join(names, "\t")))

	means := make([]float64, len(names))
	for i, res := range results {
		row := []string{fmt.Sprint(metas[i].Seed)}
		for j, n := range names {
			v := res.Metrics[n]
			means[j] += v / float64(len(results))
			row = append(row, fmt.Sprintf("%.4f", v))
		}
		fmt.Fprintln(w, strings.Join(row, "\t"))
	}

	row := []string{"mean"}
	for _, m := range means {
		row = append(row, fmt.Sprintf("%.4f", m))
	}
	fmt.Fprintln(w, strings.Join(row, "\t"))
	return w.Flush()
}

func plotSeries(name string, data []float64) {
	if len(data) < 2 {
		return
	}
	fmt.Println()
	fmt.Println(asciigraph.Plot(downsample(data, 120),
		asciigraph.Height(8),
		asciigraph.Width(60),
		asciigraph.Caption(name),
	))
}

// downsample keeps at most n evenly spaced samples.
func downsample(data []float64, n int) []float64 {
	if len(data) <= n {
		return data
	}
	out := make([]float64, n)
	step := float64(len(data)-1) / float64(n-1)
	for i := range out {
		out[i] = data[int(float64(i)*step)]
	}
	return out
}

func sortedKeys(m map[string]float64) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

func runBench(cmd *cobra.Command, args []string) error {
	cfg, _, err := setup(cmd)
	if err != nil {
		return err
	}
	ticks, _ := cmd.Flags().GetInt("ticks")
	if ticks < 1 {
		return fmt.Errorf("ticks must be positive, got %d", ticks)
	}

	sizes := []scene.Bounds{{W: 640, H: 360}, {W: 1280, H: 720}, {W: 2560, H: 1440}}
	factors := []int{1, 2, 4}
	stepper := sim.NewStepper(cfg.SimParams())

	fmt.Printf("benchmarking %d ticks\n\n", ticks)
	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "SIZE\tPARTICLES\tTIME\tTICKS/SEC")

	for _, b := range sizes {
		for _, k := range factors {
			p := cfg.SceneParams()
			p.Secondary.Count *= k
			p.Ambient.Count *= k
			sc := scene.Populate(b.W, b.H, p, rand.New(rand.NewSource(cfg.Seed)))
			path, _ := pointerPath("orbit", b)

			start := time.Now()
			res, err := sim.New(stepper).Run(context.Background(), sc, sim.RunConfig{
				Ticks:   ticks,
				Bounds:  b,
				Pointer: path,
			})
			if err != nil {
				return err
			}
			elapsed := time.Since(start)

			fmt.Fprintf(w, "%.0fx%.0f\t%d\t%v\t%.0f\n",
				b.W, b.H, res.Final.Count(), elapsed, float64(res.Ticks)/elapsed.Seconds())
		}
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
		fmt.Println(mutedStyle.Render("no runs found"))
		return nil
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tPRESET\tSEED\tTICKS\tPOINTER\tTIME")
	for _, r := range runs {
		fmt.Fprintf(w, "%s\t%s\t%d\t%d\t%s\t%s\n",
			r.ID, r.Preset, r.Seed, r.Ticks, r.Pointer, r.Timestamp.Format("2006-01-02 15:04:05"))
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
	series, err := st.LoadSeries(runID)
	if err != nil {
		return err
	}

	fmt.Println(headingStyle.Render(meta.ID))
	fmt.Println(mutedStyle.Render(fmt.Sprintf("preset %s, seed %d, %d ticks, %.0fx%.0f, pointer %s",
		meta.Preset, meta.Seed, meta.Ticks, meta.Width, meta.Height, meta.Pointer)))

	names := make([]string, 0, len(series))
	for n := range series {
		names = append(names, n)
	}
	sort.Strings(names)
	for _, n := range names {
		plotSeries(n, series[n])
	}
	return nil
}

func listPresets(cmd *cobra.Command, args []string) error {
	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "PRESET\tPARTICLES\tDAMPING\tREPULSION\tLINK DISTANCE")
	for _, name := range config.ListPresets() {
		cfg := config.GetPreset(name)
		p := cfg.Population
		fmt.Fprintf(w, "%s\t%d\t%.3f\t%.2f\t%.0f\n", name,
			p.Primary.Count+p.Secondary.Count+p.Ambient.Count,
			cfg.Physics.Damping, cfg.Physics.Repulsion, cfg.Render.ConnectionDistance)
	}
	return w.Flush()
}

func initConfig(cmd *cobra.Command, args []string) error {
	path := "heroviz.yaml"
	if len(args) == 1 {
		path = args[0]
	}
	if _, err := os.Stat(path); err == nil {
		return fmt.Errorf("%s already exists", path)
	}

	cfg := config.DefaultConfig()
	if preset != "" {
		if cfg = config.GetPreset(preset); cfg == nil {
			return fmt.Errorf("unknown preset: %s (available: %v)", preset, config.ListPresets())
		}
	}
	if err := config.Save(path, cfg); err != nil {
		return err
	}
	fmt.Printf("wrote %s\n", path)
	return nil
}
