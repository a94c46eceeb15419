package app

import (
	"fmt"
	"image/png"
	"log/slog"
	"os"
	"time"

	"fieldscope/internal/core"
	"fieldscope/internal/render"
	"fieldscope/internal/telemetry"
)

// BenchOptions configures a headless run.
type BenchOptions struct {
	Frames int
	// Paced holds the loop to TPS iterations per second using FixedStep.
	// Unpaced runs dispatch back to back.
	Paced bool
	TPS   int

	// Now and Sleep default to the wall clock.
	Now   func() time.Duration
	Sleep func(time.Duration)

	FrameLog *telemetry.FrameLog
	Logger   *slog.Logger
}

// BenchResult is the outcome of RunBench.
type BenchResult struct {
	Engine  string
	Mode    core.FieldMode
	Frames  uint64
	Elapsed time.Duration
	Stats   core.FrameStats
	Rates   []float64
	Surface *render.PixelSurface
}

// Summary converts the result for terminal display.
func (r *BenchResult) Summary() telemetry.Summary {
	return telemetry.Summary{
		Engine:  r.Engine,
		Mode:    r.Mode,
		Frames:  r.Frames,
		Elapsed: r.Elapsed,
		Stats:   r.Stats,
		Rates:   r.Rates,
	}
}

// WritePNG saves the final canvas.
func (r *BenchResult) WritePNG(path string) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("creating png: %w", err)
	}
	if err := png.Encode(f, r.Surface.Image()); err != nil {
		f.Close()
		return fmt.Errorf("encoding png: %w", err)
	}
	return f.Close()
}

// RunBench drives engine through the same Driver the GUI uses, painting
// into an in-memory surface, until the loop has completed opts.Frames
// iterations.
func RunBench(cfg *Config, engine core.Engine, opts BenchOptions) (*BenchResult, error) {
	if opts.Frames <= 0 {
		return nil, fmt.Errorf("bench: frames must be positive, got %d", opts.Frames)
	}
	now := opts.Now
	if now == nil {
		start := time.Now()
		now = func() time.Duration { return time.Since(start) }
	}
	sleep := opts.Sleep
	if sleep == nil {
		sleep = time.Sleep
	}
	log := opts.Logger
	if log == nil {
		log = slog.Default()
	}

	res := &BenchResult{Engine: engine.Name(), Mode: cfg.Display.Mode}
	res.Surface = render.NewPixelSurface(cfg.CanvasSize())

	var frame uint64
	var sinkErr error
	d, err := NewDriver(Options{
		Engine:   engine,
		Surface:  res.Surface,
		CellSize: cfg.Grid.CellSize,
		Mode:     cfg.Display.Mode,
		Now:      now,
		Logger:   log,
		OnFrame: func(st core.FrameStats) {
			frame++
			if st.Recorded {
				res.Rates = append(res.Rates, st.Rate)
			}
			if err := opts.FrameLog.Write(telemetry.NewFrameSample(frame, now(), st, cfg.Display.Mode)); err != nil && sinkErr == nil {
				sinkErr = err
			}
		},
	})
	if err != nil {
		return nil, err
	}

	began := now()
	if err := d.Controller().Play(); err != nil {
		return nil, err
	}
	pacer := core.NewFixedStep(opts.TPS)
	epoch := time.Now()
	// The iteration run by Play takes the first tick.
	pacer.ShouldStepAt(epoch.Add(began))
	for d.Controller().Frames() < uint64(opts.Frames) {
		if opts.Paced {
			for !pacer.ShouldStepAt(epoch.Add(now())) {
				sleep(pacer.Remaining())
			}
		}
		if err := d.Tick(now()); err != nil {
			return nil, err
		}
		if sinkErr != nil {
			return nil, sinkErr
		}
	}
	d.Controller().Pause()

	res.Frames = d.Controller().Frames()
	res.Elapsed = now() - began
	res.Stats = d.Clock().Stats()
	log.Info("bench complete", "engine", res.Engine, "frames", res.Frames,
		"elapsed", res.Elapsed, "fps", res.Stats.Rounded)
	return res, nil
}
