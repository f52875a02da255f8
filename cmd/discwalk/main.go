package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"path/filepath"
	"sort"
	"strings"
	"text/tabwriter"
	"time"

	"github.com/guptarohit/asciigraph"
	"github.com/spf13/cobra"

	"github.com/san-kum/discwalk/internal/config"
	"github.com/san-kum/discwalk/internal/controls"
	"github.com/san-kum/discwalk/internal/driver"
	"github.com/san-kum/discwalk/internal/gui"
	"github.com/san-kum/discwalk/internal/logs"
	"github.com/san-kum/discwalk/internal/metrics"
	"github.com/san-kum/discwalk/internal/render"
	"github.com/san-kum/discwalk/internal/rng"
	"github.com/san-kum/discwalk/internal/storage"
	"github.com/san-kum/discwalk/internal/viz"
	"github.com/san-kum/discwalk/internal/walk"
)

var (
	dataDir     string
	configFile  string
	preset      string
	scriptFile  string
	seed        int64
	frames      int
	step        float64
	delta       int
	radius      float64
	fps         int
	burstOut    string
	liveOut     string
	recordEvery int
	limit       int
	backend     string
	scale       float64
	theme       string
	logLevel    string
	logFile     string

	logger *logs.Logger
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()
	if err := execute(ctx, newRootCmd()); err != nil {
		stop()
		os.Exit(1)
	}
}

// execute runs the command tree and closes the log file whether or not the
// command failed.
func execute(ctx context.Context, rootCmd *cobra.Command) error {
	err := rootCmd.ExecuteContext(ctx)
	if logger != nil {
		if cerr := logger.Close(); cerr != nil && err == nil {
			err = cerr
		}
		logger = nil
	}
	return err
}

func newRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:               "discwalk",
		Short:             "random walk of a colored disc",
		PersistentPreRunE: setupLogging,
		RunE:              runLive,
	}

	rootCmd.PersistentFlags().StringVar(&dataDir, "data", ".discwalk", "data directory")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "info", "log level (debug, info, warn, error)")
	rootCmd.PersistentFlags().StringVar(&logFile, "log-file", "", "also write JSON logs to this file")

	burstCmd := &cobra.Command{
		Use:   "burst",
		Short: "render a whole walk at once and save it",
		RunE:  runBurst,
	}
	addWalkFlags(burstCmd)
	burstCmd.Flags().StringVar(&burstOut, "out", "discwalk.png", "output file (.png, .svg, .gif, .apng)")
	burstCmd.Flags().IntVar(&recordEvery, "record-every", 0, "keep every nth frame for animated output (0 picks a default)")

	liveCmd := &cobra.Command{
		Use:   "live",
		Short: "animate the walk in the terminal",
		RunE:  runLive,
	}
	addWalkFlags(liveCmd)
	liveCmd.Flags().IntVar(&limit, "limit", 0, "frame limit (defaults to the configured frames)")
	liveCmd.Flags().StringVar(&theme, "theme", "cyberpunk", "color theme ("+strings.Join(viz.ThemeNames(), ", ")+")")
	liveCmd.Flags().StringVar(&liveOut, "out", "", "save the final canvas as png")

	guiCmd := &cobra.Command{
		Use:   "gui",
		Short: "animate the walk in a window",
		RunE:  runGUI,
	}
	addWalkFlags(guiCmd)
	guiCmd.Flags().IntVar(&limit, "limit", 0, "frame limit (defaults to the configured frames)")
	guiCmd.Flags().StringVar(&backend, "backend", "raylib", "window backend (raylib, ebiten)")
	guiCmd.Flags().Float64Var(&scale, "scale", 2, "window pixels per region unit")

	listCmd := &cobra.Command{
		Use:   "list",
		Short: "list runs",
		RunE:  listRuns,
	}

	plotCmd := &cobra.Command{
		Use:   "plot [run_id]",
		Short: "plot the color channels of a run",
		Args:  cobra.ExactArgs(1),
		RunE:  plotRun,
	}

	exportJSONCmd := &cobra.Command{
		Use:   "export-json [run_id]",
		Short: "export run data to JSON",
		Args:  cobra.ExactArgs(1),
		RunE:  exportJSON,
	}

	presetsCmd := &cobra.Command{
		Use:   "presets",
		Short: "list available presets",
		RunE:  listPresets,
	}

	configCmd := &cobra.Command{
		Use:   "config",
		Short: "manage config files",
	}
	configInitCmd := &cobra.Command{
		Use:   "init [path]",
		Short: "write a config file with default values",
		Args:  cobra.MaximumNArgs(1),
		RunE:  initConfig,
	}
	configInitCmd.Flags().StringVar(&preset, "preset", "", "start from a preset")
	configCmd.AddCommand(configInitCmd)

	importJSONCmd := &cobra.Command{
		Use:   "import-json [file]",
		Short: "store a run exported with export-json",
		Args:  cobra.ExactArgs(1),
		RunE:  importJSON,
	}

	rootCmd.AddCommand(burstCmd, liveCmd, guiCmd, listCmd, plotCmd, exportJSONCmd, importJSONCmd, presetsCmd, configCmd)
	return rootCmd
}

func addWalkFlags(cmd *cobra.Command) {
	cmd.Flags().StringVar(&configFile, "config", "", "config file path (yaml)")
	cmd.Flags().StringVar(&preset, "preset", "", "use preset configuration")
	cmd.Flags().StringVar(&scriptFile, "script", "", "lua script providing per-tick controls")
	cmd.Flags().Int64Var(&seed, "seed", 0, "random seed (0 picks one from the clock)")
	cmd.Flags().IntVar(&frames, "frames", walk.DefaultFrames, "number of frames")
	cmd.Flags().Float64Var(&step, "step", walk.DefaultStep, "step size")
	cmd.Flags().IntVar(&delta, "delta", config.DefaultDelta, "color delta per frame (0-255)")
	cmd.Flags().Float64Var(&radius, "radius", walk.DefaultRadius, "disc radius")
	cmd.Flags().IntVar(&fps, "fps", config.DefaultFPS, "frame rate")
}

func setupLogging(cmd *cobra.Command, args []string) error {
	opts := logs.Options{Level: logLevel, JSONPath: logFile}
	// The terminal UI owns the screen.
	if cmd.Name() == "live" || !cmd.HasParent() {
		opts.Writer = io.Discard
	}
	var err error
	logger, err = logs.New(opts)
	return err
}

// resolveConfig applies preset, then config file, then explicitly set flags.
func resolveConfig(cmd *cobra.Command) (*config.Config, error) {
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
	if flags.Changed("seed") {
		cfg.Seed = seed
	}
	if flags.Changed("frames") {
		cfg.Frames = frames
	}
	if flags.Changed("step") {
		cfg.Walk.Step = step
	}
	if flags.Changed("delta") {
		if delta < 0 || delta > 255 {
			return nil, fmt.Errorf("%w: delta %d out of range", config.ErrInvalidConfig, delta)
		}
		cfg.Walk.Delta = uint8(delta)
	}
	if flags.Changed("radius") {
		cfg.Disc.Radius = radius
	}
	if flags.Changed("fps") {
		cfg.FPS = fps
	}
	if flags.Changed("script") {
		cfg.Script = scriptFile
	}
	if cfg.Seed == 0 {
		cfg.Seed = time.Now().UnixNano()
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// buildControls returns the parameter source and a release func.
func buildControls(cfg *config.Config, adjustable bool) (driver.Controls, func(), error) {
	if cfg.Script != "" {
		s, err := controls.LoadScript(cfg.Script, cfg.Params())
		if err != nil {
			return nil, nil, err
		}
		return s, s.Close, nil
	}
	if adjustable {
		return controls.NewSlider(cfg.Params()), func() {}, nil
	}
	return controls.NewStatic(cfg.Params()), func() {}, nil
}

// newDisc places a disc on a seeded source whose draws are counted for the
// run metadata.
func newDisc(cfg *config.Config) (*walk.Disc, *rng.Counting, error) {
	src := rng.NewCounting(rng.New(cfg.Seed))
	disc, err := walk.NewDisc(cfg.Region, cfg.Disc.Radius, src)
	return disc, src, err
}

func runMetadata(mode string, cfg *config.Config, stats driver.Stats, draws *rng.Counting, m metrics.Set, runErr error) storage.RunMetadata {
	meta := storage.RunMetadata{
		Mode:     mode,
		Seed:     cfg.Seed,
		Region:   cfg.Region,
		Radius:   cfg.Disc.Radius,
		Step:     cfg.Walk.Step,
		Delta:    cfg.Walk.Delta,
		Frames:   cfg.Frames,
		Renders:  stats.Renders,
		Advances: stats.Advances,
		Draws:    draws.Count(),
		Metrics:  m.Values(),
	}
	if runErr != nil {
		meta.Error = runErr.Error()
	}
	return meta
}

func saveRun(meta storage.RunMetadata, rec *storage.Recorder) {
	st := storage.New(dataDir)
	if err := st.Init(); err != nil {
		logger.Warn("cannot create data directory", "dir", dataDir, "error", err)
		return
	}
	runID, err := st.Save(meta, rec.Points)
	if err != nil {
		logger.Warn("failed to save run", "error", err)
		return
	}
	logger.Info("run saved", "id", runID, "points", len(rec.Points))
}

func runBurst(cmd *cobra.Command, args []string) error {
	cfg, err := resolveConfig(cmd)
	if err != nil {
		return err
	}
	format, err := render.FormatOf(burstOut)
	if err != nil {
		return err
	}

	disc, draws, err := newDisc(cfg)
	if err != nil {
		return err
	}
	ctrl, release, err := buildControls(cfg, false)
	if err != nil {
		return err
	}
	defer release()

	bg, _ := cfg.BackgroundColor()
	var (
		raster *render.Raster
		svg    *render.SVG
		r      driver.Renderer
	)
	if format == render.FormatSVG {
		svg = render.NewSVG(cfg.Region, cfg.Background, "discwalk")
		r = svg
	} else {
		raster = render.NewRaster(cfg.Region, bg)
		if format.Animated() {
			every := recordEvery
			if every <= 0 {
				every = max(cfg.Frames/100, 1)
			}
			raster.RecordEvery(every)
		}
		r = raster
	}

	rec := storage.NewRecorder(0)
	m := metrics.Default(cfg.Region)
	stats, runErr := driver.Burst(cmd.Context(), disc, r, ctrl, cfg.Frames,
		driver.WithLogger(logger.Logger), driver.WithObserver(rec), driver.WithObserver(m))

	meta := runMetadata("burst", cfg, stats, draws, m, runErr)
	if runErr == nil {
		runErr = writeOutput(burstOut, format, raster, svg)
		if runErr == nil {
			meta.Output = burstOut
			fmt.Printf("wrote %s (%d frames in %s)\n", burstOut, stats.Renders, stats.Elapsed.Round(time.Millisecond))
			printMetrics(meta.Metrics)
		}
	}
	saveRun(meta, rec)
	return runErr
}

func writeOutput(path string, format render.Format, raster *render.Raster, svg *render.SVG) error {
	switch format {
	case render.FormatSVG:
		f, err := os.Create(path)
		if err != nil {
			return err
		}
		if _, err := svg.WriteTo(f); err != nil {
			f.Close()
			return err
		}
		return f.Close()
	case render.FormatGIF:
		return render.SaveGIF(path, raster.Frames())
	case render.FormatAPNG:
		return render.SaveAPNG(path, raster.Frames())
	default:
		return raster.SavePNG(path)
	}
}

func frameLimit(cmd *cobra.Command, cfg *config.Config) int {
	if cmd.Flags().Changed("limit") {
		return limit
	}
	return cfg.Frames
}

func runLive(cmd *cobra.Command, args []string) error {
	cfg, err := resolveConfig(cmd)
	if err != nil {
		return err
	}
	disc, draws, err := newDisc(cfg)
	if err != nil {
		return err
	}
	ctrl, release, err := buildControls(cfg, true)
	if err != nil {
		return err
	}
	defer release()

	rec := storage.NewRecorder(0)
	ms := metrics.Default(cfg.Region)
	opts := viz.Options{
		FPS:       cfg.FPS,
		Theme:     theme,
		Observers: []driver.Observer{rec, ms},
		Logger:    logger.Logger,
	}
	var raster *render.Raster
	if liveOut != "" {
		bg, _ := cfg.BackgroundColor()
		raster = render.NewRaster(cfg.Region, bg)
		opts.Extra = raster
	}

	m, runErr := viz.Run(viz.NewModel(disc, ctrl, frameLimit(cmd, cfg), opts))
	if raster != nil && runErr == nil {
		runErr = raster.SavePNG(liveOut)
	}

	meta := runMetadata("live", cfg, m.Animation().Stats(), draws, ms, runErr)
	meta.Output = liveOut
	saveRun(meta, rec)
	return runErr
}

func runGUI(cmd *cobra.Command, args []string) error {
	cfg, err := resolveConfig(cmd)
	if err != nil {
		return err
	}
	disc, draws, err := newDisc(cfg)
	if err != nil {
		return err
	}
	ctrl, release, err := buildControls(cfg, true)
	if err != nil {
		return err
	}
	defer release()

	win := gui.DefaultWindow()
	win.Scale = scale
	win.FPS = cfg.FPS
	if bg, err := cfg.BackgroundColor(); err == nil {
		r, g, b, _ := bg.RGBA()
		win.Background.R, win.Background.G, win.Background.B = uint8(r>>8), uint8(g>>8), uint8(b>>8)
	}

	rec := storage.NewRecorder(0)
	ms := metrics.Default(cfg.Region)
	opts := []driver.Option{driver.WithLogger(logger.Logger), driver.WithObserver(rec), driver.WithObserver(ms)}

	var stats driver.Stats
	switch backend {
	case "raylib":
		stats, err = gui.RunRaylib(win, disc, ctrl, frameLimit(cmd, cfg), opts...)
	case "ebiten":
		stats, err = gui.RunEbiten(win, disc, ctrl, frameLimit(cmd, cfg), opts...)
	default:
		return fmt.Errorf("unknown backend: %s (available: raylib, ebiten)", backend)
	}

	saveRun(runMetadata("gui-"+backend, cfg, stats, draws, ms, err), rec)
	return err
}

func printMetrics(values map[string]float64) {
	names := make([]string, 0, len(values))
	for name := range values {
		names = append(names, name)
	}
	sort.Strings(names)
	for _, name := range names {
		fmt.Printf("  %-12s %.3f\n", name, values[name])
	}
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
	fmt.Fprintln(w, "ID\tMODE\tTIME\tSEED\tSTEP\tDELTA\tRENDERS\tOUTPUT")

	for _, run := range runs {
		fmt.Fprintf(w, "%s\t%s\t%s\t%d\t%.3f\t%d\t%d\t%s\n",
			run.ID,
			run.Mode,
			run.Timestamp.Format("2006-01-02 15:04:05"),
			run.Seed,
			run.Step,
			run.Delta,
			run.Renders,
			run.Output,
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

	trail, err := st.LoadTrail(runID)
	if err != nil {
		return err
	}

	if len(trail) == 0 {
		return fmt.Errorf("no data to plot")
	}

	fmt.Printf("run: %s\n", meta.ID)
	fmt.Printf("mode: %s\n", meta.Mode)
	fmt.Printf("samples: %d\n", len(trail))
	printMetrics(meta.Metrics)
	fmt.Println()

	r, g, b := storage.Channels(trail)
	for _, series := range []struct {
		caption string
		data    []float64
		color   asciigraph.AnsiColor
	}{
		{"red", r, asciigraph.Red},
		{"green", g, asciigraph.Green},
		{"blue", b, asciigraph.Blue},
	} {
		graph := asciigraph.Plot(series.data,
			asciigraph.Height(10),
			asciigraph.Width(80),
			asciigraph.LowerBound(0),
			asciigraph.UpperBound(255),
			asciigraph.SeriesColors(series.color),
			asciigraph.Caption(series.caption),
		)
		fmt.Println(graph)
		fmt.Println()
	}

	return nil
}

func exportJSON(cmd *cobra.Command, args []string) error {
	runID := args[0]

	st := storage.New(dataDir)
	meta, err := st.Load(runID)
	if err != nil {
		return err
	}

	trail, err := st.LoadTrail(runID)
	if err != nil {
		return err
	}

	return storage.ExportJSON(os.Stdout, *meta, trail)
}

func importJSON(cmd *cobra.Command, args []string) error {
	f, err := os.Open(args[0])
	if err != nil {
		return err
	}
	defer f.Close()

	meta, trail, err := storage.ImportJSON(f)
	if err != nil {
		return err
	}

	st := storage.New(dataDir)
	if err := st.Init(); err != nil {
		return err
	}
	runID, err := st.Save(meta, trail)
	if err != nil {
		return err
	}
	fmt.Fprintf(cmd.OutOrStdout(), "imported %s (%d points)\n", runID, len(trail))
	return nil
}

func listPresets(cmd *cobra.Command, args []string) error {
	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "NAME\tRADIUS\tSTEP\tDELTA\tFRAMES\tBACKGROUND")
	for _, name := range config.ListPresets() {
		p := config.GetPreset(name)
		fmt.Fprintf(w, "%s\t%.2f\t%.2f\t%d\t%d\t%s\n", name, p.Disc.Radius, p.Walk.Step, p.Walk.Delta, p.Frames, p.Background)
	}
	return w.Flush()
}

func initConfig(cmd *cobra.Command, args []string) error {
	path := "discwalk.yaml"
	if len(args) > 0 {
		path = args[0]
	}
	if _, err := os.Stat(path); err == nil {
		return fmt.Errorf("%s already exists", path)
	} else if !errors.Is(err, os.ErrNotExist) {
		return err
	}

	cfg := config.DefaultConfig()
	if preset != "" {
		if cfg = config.GetPreset(preset); cfg == nil {
			return fmt.Errorf("unknown preset: %s (available: %v)", preset, config.ListPresets())
		}
	}
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return err
		}
	}
	if err := config.Save(path, cfg); err != nil {
		return err
	}
	fmt.Printf("wrote %s\n", path)
	return nil
}
