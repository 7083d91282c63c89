package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"text/tabwriter"
	"time"

	"github.com/charmbracelet/log"
	"github.com/guptarohit/asciigraph"
	"github.com/san-kum/reflow/internal/config"
	"github.com/san-kum/reflow/internal/gui"
	"github.com/san-kum/reflow/internal/metrics"
	"github.com/san-kum/reflow/internal/render"
	"github.com/san-kum/reflow/internal/sim"
	"github.com/san-kum/reflow/internal/storage"
	"github.com/san-kum/reflow/internal/viz"
	"github.com/spf13/cobra"
)

const version = "1.1 - Tangent Repulsion"

var (
	dataDir  string
	logLevel string
	logFile  string

	preset     string
	configFile string
	seed       int64
	frames     int
	width      float64
	height     float64
	fps        int
	outPath    string
	format     string
	noSave     bool

	curves        int
	segmentLength float64
	radius        float64
	strength      float64
	randomness    float64
	growthRate    int
	maxSegments   int
	thickness     float64
	hueShift      float64
	fixedColor    bool
	lineColor     string
	background    string
)

// main registers the reflow commands and flags; with no subcommand it opens
// the live terminal view. It exits with status 1 if a command fails.
func main() {
	rootCmd := &cobra.Command{
		Use:           "reflow",
		Short:         "organic curve growth with tangent repulsion",
		Version:       version,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE:          runLive,
	}

	rootCmd.PersistentFlags().StringVar(&dataDir, "data", ".reflow", "data directory")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "info", "log level (debug, info, warn, error)")
	rootCmd.PersistentFlags().StringVar(&logFile, "log-file", "", "write logs to this file instead of stderr")
	addSimFlags(rootCmd)
	rootCmd.Flags().IntVar(&fps, "fps", 30, "frame rate")

	renderCmd := &cobra.Command{
		Use:   "render",
		Short: "grow curves headlessly and write a frame",
		Args:  cobra.NoArgs,
		RunE:  runRender,
	}
	addSimFlags(renderCmd)
	renderCmd.Flags().IntVar(&frames, "frames", config.DefaultFrames, "number of ticks to run")
	renderCmd.Flags().StringVarP(&outPath, "out", "o", "", "output file (default: inside the run directory)")
	renderCmd.Flags().StringVar(&format, "format", "", "svg, png or json (default: from --out, else svg)")
	renderCmd.Flags().BoolVar(&noSave, "no-save", false, "do not record the run in the data directory")

	windowCmd := &cobra.Command{
		Use:   "window",
		Short: "open the desktop window",
		Args:  cobra.NoArgs,
		RunE:  runWindow,
	}
	addSimFlags(windowCmd)
	windowCmd.Flags().IntVar(&fps, "fps", 60, "frame rate")

	benchCmd := &cobra.Command{
		Use:   "bench",
		Short: "measure tick throughput",
		Args:  cobra.NoArgs,
		RunE:  runBench,
	}
	addSimFlags(benchCmd)
	benchCmd.Flags().IntVar(&frames, "frames", config.DefaultFrames, "number of ticks per trial")

	listCmd := &cobra.Command{
		Use:   "list",
		Short: "list runs",
		Args:  cobra.NoArgs,
		RunE:  listRuns,
	}

	showCmd := &cobra.Command{
		Use:   "show [run_id]",
		Short: "print run metadata",
		Args:  cobra.ExactArgs(1),
		RunE:  showRun,
	}

	plotCmd := &cobra.Command{
		Use:   "plot [run_id]",
		Short: "plot the active population of a run",
		Args:  cobra.ExactArgs(1),
		RunE:  plotRun,
	}

	presetsCmd := &cobra.Command{
		Use:   "presets",
		Short: "list available presets",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, args []string) {
			for _, p := range config.ListPresets() {
				fmt.Printf("  %s\n", p)
			}
		},
	}

	configCmd := &cobra.Command{
		Use:   "config [path]",
		Short: "write the resolved configuration as yaml",
		Args:  cobra.ExactArgs(1),
		RunE:  writeConfig,
	}
	addSimFlags(configCmd)

	rootCmd.AddCommand(renderCmd, windowCmd, benchCmd, listCmd, showCmd, plotCmd, presetsCmd, configCmd)

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(1)
	}
}

func addSimFlags(cmd *cobra.Command) {
	f := cmd.Flags()
	f.StringVar(&preset, "preset", "default", "preset configuration")
	f.StringVar(&configFile, "config", "", "config file path (yaml)")
	f.Int64Var(&seed, "seed", 0, "random seed (0 = time based)")
	f.Float64Var(&width, "width", config.DefaultWidth, "canvas width")
	f.Float64Var(&height, "height", config.DefaultHeight, "canvas height")
	f.IntVar(&curves, "curves", config.DefaultNumInitialCurves, "target active curve count")
	f.Float64Var(&segmentLength, "segment-length", config.DefaultSegmentLength, "distance per segment")
	f.Float64Var(&radius, "radius", config.DefaultRepulsionRadius, "repulsion radius")
	f.Float64Var(&strength, "strength", config.DefaultRepulsionStrength, "repulsion strength")
	f.Float64Var(&randomness, "randomness", config.DefaultRandomness, "max heading jitter in radians [0,1]")
	f.IntVar(&growthRate, "growth-rate", config.DefaultGrowthRate, "growth attempts per curve per tick")
	f.IntVar(&maxSegments, "max-segments", config.DefaultMaxSegmentsPerCurve, "segment cap per curve")
	f.Float64Var(&thickness, "thickness", config.DefaultLineThickness, "stroke width")
	f.Float64Var(&hueShift, "hue-shift", config.DefaultHueShift, "hue offset in degrees")
	f.BoolVar(&fixedColor, "fixed-color", false, "stroke every curve with --line-color")
	f.StringVar(&lineColor, "line-color", string(config.DefaultLineColor), "fixed stroke color")
	f.StringVar(&background, "background", string(config.DefaultBackgroundColor), "background color")
}

// resolveConfig applies preset, then config file, then explicitly set flags.
func resolveConfig(cmd *cobra.Command) (*config.Config, error) {
	cfg, err := config.LookupPreset(preset)
	if err != nil {
		return nil, err
	}

	if configFile != "" {
		if err := cfg.Overlay(configFile); err != nil {
			return nil, fmt.Errorf("failed to load config: %w", err)
		}
	}

	flags := cmd.Flags()
	if flags.Changed("seed") {
		cfg.Seed = seed
	}
	if flags.Changed("width") {
		cfg.Width = width
	}
	if flags.Changed("height") {
		cfg.Height = height
	}
	if flags.Changed("frames") {
		cfg.Frames = frames
	}
	if flags.Changed("curves") {
		cfg.NumInitialCurves = curves
	}
	if flags.Changed("segment-length") {
		cfg.SegmentLength = segmentLength
	}
	if flags.Changed("radius") {
		cfg.RepulsionRadius = radius
	}
	if flags.Changed("strength") {
		cfg.RepulsionStrength = strength
	}
	if flags.Changed("randomness") {
		cfg.Randomness = randomness
	}
	if flags.Changed("growth-rate") {
		cfg.GrowthRate = growthRate
	}
	if flags.Changed("max-segments") {
		cfg.MaxSegmentsPerCurve = maxSegments
	}
	if flags.Changed("thickness") {
		cfg.LineThickness = thickness
	}
	if flags.Changed("hue-shift") {
		cfg.HueShift = hueShift
	}
	if flags.Changed("fixed-color") {
		cfg.DynamicColor = !fixedColor
	}
	if flags.Changed("line-color") {
		cfg.LineColor = config.Color(lineColor)
	}
	if flags.Changed("background") {
		cfg.BackgroundColor = config.Color(background)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	if cfg.Seed == 0 {
		cfg.Seed = time.Now().UnixNano()
	}
	return cfg, nil
}

func newLogger(fallback io.Writer) (*log.Logger, func(), error) {
	out, closeFn := fallback, func() {}
	if logFile != "" {
		f, err := os.OpenFile(logFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
		if err != nil {
			return nil, nil, err
		}
		out, closeFn = f, func() { f.Close() }
	}

	logger := log.NewWithOptions(out, log.Options{ReportTimestamp: true, Prefix: "reflow"})
	level, err := log.ParseLevel(logLevel)
	if err != nil {
		closeFn()
		return nil, nil, fmt.Errorf("invalid log level %q: %w", logLevel, err)
	}
	logger.SetLevel(level)
	return logger, closeFn, nil
}

func runLive(cmd *cobra.Command, args []string) error {
	cfg, err := resolveConfig(cmd)
	if err != nil {
		return err
	}
	// The alternate screen owns stderr while the view runs.
	logger, closeLog, err := newLogger(io.Discard)
	if err != nil {
		return err
	}
	defer closeLog()

	ctrl := sim.New(sim.NewRand(cfg.Seed), viz.CanvasBounds(viz.DefaultCols, viz.DefaultRows), logger)
	ctrl.Reset(cfg)
	logger.Info("live view", "seed", cfg.Seed, "preset", preset)
	return viz.Run(ctrl, cfg, fps, logger)
}

func runWindow(cmd *cobra.Command, args []string) error {
	cfg, err := resolveConfig(cmd)
	if err != nil {
		return err
	}
	logger, closeLog, err := newLogger(os.Stderr)
	if err != nil {
		return err
	}
	defer closeLog()

	ctrl := sim.New(sim.NewRand(cfg.Seed), cfg.Bounds(), logger)
	ctrl.Reset(cfg)
	logger.Info("window", "seed", cfg.Seed, "preset", preset, "width", cfg.Width, "height", cfg.Height)
	gui.Run(ctrl, cfg, fps, logger)
	return nil
}

func runRender(cmd *cobra.Command, args []string) error {
	cfg, err := resolveConfig(cmd)
	if err != nil {
		return err
	}
	logger, closeLog, err := newLogger(os.Stderr)
	if err != nil {
		return err
	}
	defer closeLog()

	kind, err := outputFormat(outPath, format)
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	ctrl := sim.New(sim.NewRand(cfg.Seed), cfg.Bounds(), logger)
	ctrl.Reset(cfg)
	rec := sim.NewPopulationRecorder(cfg.Frames)
	summary := metrics.Default()

	start := time.Now()
	if err := ctrl.Run(ctx, cfg, cfg.Frames, rec, summary); err != nil {
		return err
	}
	elapsed := time.Since(start)

	snapshot := ctrl.Snapshot()
	frame, err := render.NewFrame(snapshot, cfg, ctrl.Bounds())
	if err != nil {
		return err
	}

	var runID string
	st := storage.New(dataDir)
	if !noSave {
		if err := st.Init(); err != nil {
			return err
		}
		runID, err = st.Save(storage.Run{
			Preset:     preset,
			Seed:       cfg.Seed,
			Config:     cfg,
			Curves:     snapshot,
			Population: rec.History,
			Metrics:    summary.Values(),
		})
		if err != nil {
			return err
		}
	}

	dest := outPath
	if dest == "" {
		if runID == "" {
			return fmt.Errorf("--out is required with --no-save")
		}
		dest = st.ArtifactPath(runID, "frame."+kind)
	}
	if err := writeFrame(dest, kind, frame); err != nil {
		return err
	}
	if runID != "" && outPath == "" {
		if err := st.AddArtifact(runID, filepath.Base(dest)); err != nil {
			return err
		}
	}

	stats := ctrl.Stats()
	logger.Info("render complete", "frames", cfg.Frames, "elapsed", elapsed, "curves", stats.Curves, "segments", stats.Segments, "out", dest)
	if runID != "" {
		fmt.Printf("run id: %s\n", runID)
	}
	fmt.Printf("seed: %d\n", cfg.Seed)
	for _, m := range summary {
		fmt.Printf("%s: %.2f\n", m.Name(), m.Value())
	}
	fmt.Printf("wrote: %s\n", dest)
	return nil
}

func outputFormat(path, explicit string) (string, error) {
	kind := strings.ToLower(explicit)
	if kind == "" {
		kind = strings.TrimPrefix(strings.ToLower(filepath.Ext(path)), ".")
	}
	if kind == "" {
		kind = "svg"
	}
	switch kind {
	case "svg", "png", "json":
		return kind, nil
	}
	return "", fmt.Errorf("unsupported format %q (svg, png, json)", kind)
}

func writeFrame(path, kind string, frame *render.Frame) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()

	switch kind {
	case "png":
		err = render.WritePNG(f, frame)
	case "json":
		err = render.WriteJSON(f, frame)
	default:
		err = render.WriteSVG(f, frame)
	}
	if err != nil {
		return fmt.Errorf("write %s: %w", path, err)
	}
	return f.Close()
}

func runBench(cmd *cobra.Command, args []string) error {
	cfg, err := resolveConfig(cmd)
	if err != nil {
		return err
	}

	fmt.Printf("benchmarking preset %s, %d ticks per trial\n\n", preset, cfg.Frames)
	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "CURVES\tSEGMENTS\tTIME\tTICKS/SEC")

	for _, n := range []int{cfg.NumInitialCurves, cfg.NumInitialCurves * 4, cfg.NumInitialCurves * 16} {
		trial := cfg.Clone()
		trial.NumInitialCurves = n

		ctrl := sim.New(sim.NewRand(trial.Seed), trial.Bounds(), nil)
		ctrl.Reset(trial)

		start := time.Now()
		if err := ctrl.Run(context.Background(), trial, trial.Frames); err != nil {
			return err
		}
		elapsed := time.Since(start)

		fmt.Fprintf(w, "%d\t%d\t%v\t%.0f\n", n, ctrl.Stats().Segments, elapsed, float64(trial.Frames)/elapsed.Seconds())
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
	fmt.Fprintln(w, "ID\tPRESET\tTIME\tSEED\tFRAMES\tCURVES\tSEGMENTS")

	for _, run := range runs {
		fmt.Fprintf(w, "%s\t%s\t%s\t%d\t%d\t%d\t%d\n",
			run.ID,
			run.Preset,
			run.Timestamp.Format("2006-01-02 15:04:05"),
			run.Seed,
			run.Frames,
			run.Final.Curves,
			run.Final.Segments,
		)
	}

	return w.Flush()
}

func showRun(cmd *cobra.Command, args []string) error {
	st := storage.New(dataDir)
	meta, err := st.Load(args[0])
	if err != nil {
		return err
	}

	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(meta)
}

func plotRun(cmd *cobra.Command, args []string) error {
	runID := args[0]

	st := storage.New(dataDir)
	meta, err := st.Load(runID)
	if err != nil {
		return err
	}
	pop, err := st.LoadPopulation(runID)
	if err != nil {
		return err
	}
	if len(pop) == 0 {
		return fmt.Errorf("no data to plot")
	}

	active := make([]float64, len(pop))
	segments := make([]float64, len(pop))
	for i, s := range pop {
		active[i] = float64(s.Active)
		segments[i] = float64(s.Segments)
	}

	fmt.Printf("run: %s\n", meta.ID)
	fmt.Printf("seed: %d\n", meta.Seed)
	fmt.Printf("frames: %d\n\n", len(pop))

	fmt.Println(asciigraph.Plot(active, asciigraph.Height(10), asciigraph.Width(80), asciigraph.Caption("active curves")))
	fmt.Println()
	fmt.Println(asciigraph.Plot(segments, asciigraph.Height(10), asciigraph.Width(80), asciigraph.Caption("total segments")))
	return nil
}

func writeConfig(cmd *cobra.Command, args []string) error {
	cfg, err := resolveConfig(cmd)
	if err != nil {
		return err
	}
	if !cmd.Flags().Changed("seed") {
		cfg.Seed = 0
	}
	if err := config.Save(args[0], cfg); err != nil {
		return err
	}
	fmt.Printf("wrote %s\n", args[0])
	return nil
}
