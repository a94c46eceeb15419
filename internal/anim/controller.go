package anim

import (
	"fmt"
	"log/slog"
	"time"

	"fieldscope/internal/core"
)

// State is the animation state.
type State int

const (
	Paused State = iota
	Running
)

func (s State) String() string {
	if s == Running {
		return "running"
	}
	return "paused"
}

// Painter repaints the canvas from the current engine state.
type Painter interface {
	Paint() error
}

// Options carries optional controller hooks.
type Options struct {
	// OnStateChange updates the play/pause affordance.
	OnStateChange func(State)
	// OnFrame receives the frame statistics recorded by each iteration.
	OnFrame func(core.FrameStats)
	Logger  *slog.Logger
}

// Controller owns the cooperative frame loop. While Running exactly one
// iteration is scheduled; while Paused none is.
type Controller struct {
	sched   Scheduler
	clock   *core.FrameClock
	painter Painter
	engine  core.Engine
	opts    Options
	log     *slog.Logger

	state  State
	handle Handle
	err    error
	frames uint64
}

// NewController returns a paused controller.
func NewController(sched Scheduler, clock *core.FrameClock, painter Painter, engine core.Engine, opts Options) (*Controller, error) {
	switch {
	case sched == nil:
		return nil, fmt.Errorf("%w: scheduler", core.ErrMissingElement)
	case clock == nil:
		return nil, fmt.Errorf("%w: frame clock", core.ErrMissingElement)
	case painter == nil:
		return nil, fmt.Errorf("%w: painter", core.ErrMissingElement)
	case engine == nil:
		return nil, fmt.Errorf("%w: engine", core.ErrMissingElement)
	}
	log := opts.Logger
	if log == nil {
		log = slog.Default()
	}
	return &Controller{sched: sched, clock: clock, painter: painter, engine: engine, opts: opts, log: log}, nil
}

// State returns the current animation state.
func (c *Controller) State() State { return c.state }

// IsPaused reports whether the loop is paused.
func (c *Controller) IsPaused() bool { return c.state == Paused }

// Err returns the failure that terminated the loop, if any.
func (c *Controller) Err() error { return c.err }

// Frames returns the number of completed loop iterations.
func (c *Controller) Frames() uint64 { return c.frames }

// Play starts the loop and runs the first iteration immediately. It is a
// no-op while already running.
func (c *Controller) Play() error {
	if c.state == Running {
		return nil
	}
	c.state = Running
	c.notify()
	return c.iterate(c.sched.Now())
}

// Pause stops the loop and cancels the outstanding iteration. It is a no-op
// while already paused.
func (c *Controller) Pause() {
	if c.state == Paused {
		return
	}
	c.state = Paused
	c.sched.CancelFrame(c.handle)
	c.handle = 0
	c.notify()
}

func (c *Controller) tick(now time.Duration) error {
	c.handle = 0
	if c.state != Running {
		return nil
	}
	return c.iterate(now)
}

// iterate runs one loop body: measure, paint, step, reschedule. The painted
// frame shows the engine state from before this iteration's step.
func (c *Controller) iterate(now time.Duration) error {
	stats := c.clock.RecordFrame(now)
	if c.opts.OnFrame != nil {
		c.opts.OnFrame(stats)
	}
	if err := c.painter.Paint(); err != nil {
		return c.fail(err)
	}
	if err := c.engine.Step(); err != nil {
		return c.fail(core.WrapEngine(c.engine, "step", err))
	}
	c.frames++
	c.handle = c.sched.RequestFrame(c.tick)
	return nil
}

func (c *Controller) fail(err error) error {
	c.err = err
	c.state = Paused
	c.handle = 0
	c.log.Error("animation loop terminated", "error", err, "frames", c.frames)
	c.notify()
	return err
}

func (c *Controller) notify() {
	c.log.Debug("animation state", "state", c.state)
	if c.opts.OnStateChange != nil {
		c.opts.OnStateChange(c.state)
	}
}
