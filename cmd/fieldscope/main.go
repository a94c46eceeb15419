package main

import (
	"fmt"
	"log/slog"
	"os"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"fieldscope/internal/app"
	"fieldscope/internal/core"
	_ "fieldscope/internal/engines/briansbrain"
	_ "fieldscope/internal/engines/life"
	_ "fieldscope/internal/engines/quantum"
	"fieldscope/internal/logging"
	"fieldscope/internal/telemetry"
	"fieldscope/internal/ui"
)

var (
	configFile string
	logLevel   string
	logJSON    bool

	engineName string
	width      int
	height     int
	cellSize   int
	mode       string
	seed       int64
	tps        int
	zoom       float64

	frames  int
	paced   bool
	csvPath string
	pngPath string

	outPath string
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:           "fieldscope",
		Short:         "interactive visualizer for stepped grid simulations",
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE:          runGUICmd,
	}

	pf := rootCmd.PersistentFlags()
	pf.StringVar(&configFile, "config", "", "config file path (yaml)")
	pf.StringVar(&logLevel, "log-level", "", "log level (debug, info, warn, error)")
	pf.BoolVar(&logJSON, "log-json", false, "emit JSON logs")
	pf.StringVar(&engineName, "engine", "", "engine name")
	pf.IntVar(&width, "width", 0, "grid width in cells")
	pf.IntVar(&height, "height", 0, "grid height in cells")
	pf.IntVar(&cellSize, "cell-size", 0, "cell size in pixels")
	pf.StringVar(&mode, "mode", "", "initial field mode (color, scalar)")
	pf.Int64Var(&seed, "seed", 0, "engine seed")
	pf.IntVar(&tps, "tps", 0, "display refresh rate")

	runCmd := &cobra.Command{
		Use:   "run",
		Short: "open the visualizer window",
		RunE:  runGUICmd,
	}
	runCmd.Flags().Float64Var(&zoom, "zoom", 0, "window zoom factor")

	benchCmd := &cobra.Command{
		Use:   "bench",
		Short: "run the frame loop headless and report frame rates",
		RunE:  runBench,
	}
	benchCmd.Flags().IntVar(&frames, "frames", 0, "loop iterations to run")
	benchCmd.Flags().BoolVar(&paced, "paced", false, "hold the loop to --tps")
	benchCmd.Flags().StringVar(&csvPath, "csv", "", "write per-frame samples to this CSV file")
	benchCmd.Flags().StringVar(&pngPath, "png", "", "write the final canvas to this PNG file")

	enginesCmd := &cobra.Command{
		Use:   "engines",
		Short: "list available engines",
		RunE:  listEngines,
	}

	configCmd := &cobra.Command{
		Use:   "config",
		Short: "print the resolved configuration as yaml",
		RunE:  dumpConfig,
	}
	configCmd.Flags().StringVarP(&outPath, "out", "o", "", "write to this file instead of stdout")

	rootCmd.AddCommand(runCmd, benchCmd, enginesCmd, configCmd)
	return rootCmd
}

// setup loads the config, applies flag overrides and builds the logger.
func setup(cmd *cobra.Command) (*app.Config, *slog.Logger, error) {
	cfg, err := app.Load(configFile)
	if err != nil {
		return nil, nil, err
	}
	flags := cmd.Flags()
	if flags.Changed("log-level") {
		cfg.Log.Level = logLevel
	}
	if flags.Changed("log-json") {
		cfg.Log.JSON = logJSON
	}
	if flags.Changed("engine") {
		cfg.Engine.Name = engineName
	}
	if flags.Changed("width") {
		cfg.Grid.Width = width
	}
	if flags.Changed("height") {
		cfg.Grid.Height = height
	}
	if flags.Changed("cell-size") {
		cfg.Grid.CellSize = cellSize
	}
	if flags.Changed("seed") {
		cfg.Engine.Seed = seed
	}
	if flags.Changed("tps") {
		cfg.Display.TPS = tps
	}
	if flags.Changed("zoom") {
		cfg.Display.Zoom = zoom
	}
	if flags.Changed("frames") {
		cfg.Bench.Frames = frames
	}
	if flags.Changed("paced") {
		cfg.Bench.Paced = paced
	}
	if flags.Changed("mode") {
		m, err := core.ParseFieldMode(mode)
		if err != nil {
			return nil, nil, err
		}
		cfg.Display.Mode = m
	}
	if err := cfg.Validate(); err != nil {
		return nil, nil, fmt.Errorf("invalid configuration: %w", err)
	}

	log, err := logging.New(os.Stderr, logging.Options{Level: cfg.Log.Level, JSON: cfg.Log.JSON})
	if err != nil {
		return nil, nil, err
	}
	slog.SetDefault(log)
	return cfg, log, nil
}

func runGUICmd(cmd *cobra.Command, args []string) error {
	cfg, log, err := setup(cmd)
	if err != nil {
		return reportErr(err)
	}
	if err := runGUI(cfg, log); err != nil {
		log.Error("visualizer stopped", "error", err)
		return err
	}
	return nil
}

func runBench(cmd *cobra.Command, args []string) error {
	cfg, log, err := setup(cmd)
	if err != nil {
		return reportErr(err)
	}
	engine, err := cfg.NewEngine()
	if err != nil {
		return reportErr(err)
	}
	frameLog, err := telemetry.CreateFrameLog(csvPath)
	if err != nil {
		return reportErr(err)
	}
	defer frameLog.Close()

	res, err := app.RunBench(cfg, engine, app.BenchOptions{
		Frames:   cfg.Bench.Frames,
		Paced:    cfg.Bench.Paced,
		TPS:      cfg.Display.TPS,
		FrameLog: frameLog,
		Logger:   log,
	})
	if err != nil {
		log.Error("bench failed", "error", err)
		return err
	}
	if pngPath != "" {
		if err := res.WritePNG(pngPath); err != nil {
			return reportErr(err)
		}
		log.Info("wrote canvas", "path", pngPath)
	}
	if frameLog != nil {
		log.Info("wrote frame log", "path", csvPath, "rows", frameLog.Rows())
	}
	fmt.Fprintln(cmd.OutOrStdout(), res.Summary().Render())
	return nil
}

func dumpConfig(cmd *cobra.Command, args []string) error {
	cfg, log, err := setup(cmd)
	if err != nil {
		return reportErr(err)
	}
	if outPath == "" {
		return cfg.WriteYAML(cmd.OutOrStdout())
	}
	f, err := os.Create(outPath)
	if err != nil {
		return reportErr(err)
	}
	if err := cfg.WriteYAML(f); err != nil {
		f.Close()
		return reportErr(err)
	}
	if err := f.Close(); err != nil {
		return reportErr(err)
	}
	log.Info("wrote config", "path", outPath)
	return nil
}

func listEngines(cmd *cobra.Command, args []string) error {
	tw := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "NAME\tPARAMETERS")
	for _, name := range core.EngineNames() {
		eng := core.Engines()[name](core.Size{W: 8, H: 8}, 0)
		params := "-"
		if p, ok := eng.(core.ParameterProvider); ok {
			if lines := ui.ParamLines(p.Parameters()); len(lines) > 0 {
				params = strings.Join(lines, "; ")
			}
		}
		fmt.Fprintf(tw, "%s\t%s\n", name, params)
	}
	return tw.Flush()
}

func reportErr(err error) error {
	fmt.Fprintln(os.Stderr, "fieldscope:", err)
	return err
}
