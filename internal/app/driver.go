package app

import (
	"fmt"
	"log/slog"
	"time"

	"fieldscope/internal/anim"
	"fieldscope/internal/core"
	"fieldscope/internal/input"
	"fieldscope/internal/render"
)

// Options configures a Driver.
type Options struct {
	Engine   core.Engine
	Surface  render.Surface
	CellSize int
	Mode     core.FieldMode

	// Now is the monotonic clock shared by the frame queue and the frame
	// clock. It defaults to the time elapsed since construction.
	Now func() time.Duration

	OnFrame       func(core.FrameStats)
	OnStateChange func(anim.State)
	Logger        *slog.Logger
}

// Driver owns the visualizer state: the active field mode, the frame queue
// and the controller and router wired around one engine. All methods must be
// called from the host's single logic thread.
type Driver struct {
	engine   core.Engine
	renderer *render.Renderer
	clock    *core.FrameClock
	queue    *anim.FrameQueue
	ctrl     *anim.Controller
	router   *input.Router
	log      *slog.Logger

	mode  core.FieldMode
	stats core.FrameStats
	opts  Options
}

// NewDriver validates the collaborators, sets up the engine and wires the
// animation controller and input router. The driver starts paused.
func NewDriver(opts Options) (*Driver, error) {
	if opts.Engine == nil {
		return nil, fmt.Errorf("%w: engine", core.ErrMissingElement)
	}
	if opts.Surface == nil {
		return nil, fmt.Errorf("%w: canvas surface", core.ErrMissingElement)
	}
	log := opts.Logger
	if log == nil {
		log = slog.Default()
	}
	now := opts.Now
	if now == nil {
		start := time.Now()
		now = func() time.Duration { return time.Since(start) }
	}

	renderer, err := render.NewRenderer(opts.Surface, opts.Engine.Size(), opts.CellSize)
	if err != nil {
		return nil, err
	}
	if err := opts.Engine.Setup(); err != nil {
		return nil, core.WrapEngine(opts.Engine, "setup", err)
	}

	d := &Driver{
		engine:   opts.Engine,
		renderer: renderer,
		clock:    core.NewFrameClock(now()),
		queue:    anim.NewFrameQueue(now),
		log:      log,
		mode:     opts.Mode,
		opts:     opts,
	}
	d.ctrl, err = anim.NewController(d.queue, d.clock, d, d.engine, anim.Options{
		OnStateChange: opts.OnStateChange,
		OnFrame:       d.recordStats,
		Logger:        log,
	})
	if err != nil {
		return nil, err
	}
	pitch := render.Pitch(opts.CellSize)
	backW, backH := render.CanvasSize(d.engine.Size(), opts.CellSize)
	mapper := input.Mapper{BackingW: backW, BackingH: backH, Pitch: pitch, Grid: d.engine.Size()}
	d.router, err = input.NewRouter(d.engine, d.ctrl, d, mapper, log)
	if err != nil {
		return nil, err
	}

	size := d.engine.Size()
	log.Info("driver ready", "engine", d.engine.Name(), "width", size.W, "height", size.H,
		"cell_size", opts.CellSize, "mode", d.mode)
	return d, nil
}

// Start runs a single loop iteration and pauses, leaving the first frame on
// the canvas.
func (d *Driver) Start() error {
	if err := d.ctrl.Play(); err != nil {
		return err
	}
	d.ctrl.Pause()
	return nil
}

// Tick dispatches the callbacks due at the current display refresh.
func (d *Driver) Tick(now time.Duration) error {
	return d.queue.Dispatch(now)
}

// Refresh handles one display refresh. The iteration scheduled by the
// previous refresh runs first and events are routed after it, so an
// iteration started by input (play) schedules its successor for the next
// refresh instead of this one.
func (d *Driver) Refresh(now time.Duration, events func(*input.Router) error) error {
	if err := d.Tick(now); err != nil {
		return err
	}
	if events == nil {
		return nil
	}
	return events(d.router)
}

// Paint repaints the canvas from the engine's current buffers.
func (d *Driver) Paint() error {
	if err := d.renderer.Draw(d.engine, d.mode); err != nil {
		return core.WrapEngine(d.engine, "view", err)
	}
	return nil
}

// Redraw repaints outside the animation loop, after user input.
func (d *Driver) Redraw() error { return d.Paint() }

// Mode returns the active field mode.
func (d *Driver) Mode() core.FieldMode { return d.mode }

// SetMode selects the field rendered by subsequent paints.
func (d *Driver) SetMode(m core.FieldMode) { d.mode = m }

func (d *Driver) recordStats(st core.FrameStats) {
	d.stats = st
	if d.opts.OnFrame != nil {
		d.opts.OnFrame(st)
	}
}

// Stats returns the most recent frame statistics.
func (d *Driver) Stats() core.FrameStats { return d.stats }

// FPSLabel formats the rounded frame rate for display.
func (d *Driver) FPSLabel() string { return fmt.Sprintf("FPS: %d", d.stats.Rounded) }

// Engine returns the driven engine.
func (d *Driver) Engine() core.Engine { return d.engine }

// Controller returns the animation controller.
func (d *Driver) Controller() *anim.Controller { return d.ctrl }

// Router returns the input router.
func (d *Driver) Router() *input.Router { return d.router }

// Clock returns the frame clock.
func (d *Driver) Clock() *core.FrameClock { return d.clock }

// Queue returns the frame queue.
func (d *Driver) Queue() *anim.FrameQueue { return d.queue }

// Renderer returns the canvas renderer.
func (d *Driver) Renderer() *render.Renderer { return d.renderer }
