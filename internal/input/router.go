package input

import (
	"fmt"
	"log/slog"

	"fieldscope/internal/core"
)

// Key identifies a keyboard binding independent of the host toolkit.
type Key int

const (
	KeyNone Key = iota
	// KeySpace advances one step.
	KeySpace
	// KeyP toggles play/pause.
	KeyP
	// KeyR resets the engine.
	KeyR
	// KeyColorMode selects the color field.
	KeyColorMode
	// KeyScalarMode selects the scalar field.
	KeyScalarMode
)

// ButtonID names a control element.
type ButtonID string

const (
	ButtonReset      ButtonID = "reset"
	ButtonPlayPause  ButtonID = "play-pause"
	ButtonStep       ButtonID = "step"
	ButtonModeColor  ButtonID = "mode-color"
	ButtonModeScalar ButtonID = "mode-scalar"
)

// Animator is the play/pause surface of the animation controller.
type Animator interface {
	Play() error
	Pause()
	IsPaused() bool
}

// Display owns the active field mode and repaints the canvas.
type Display interface {
	Mode() core.FieldMode
	SetMode(core.FieldMode)
	Redraw() error
}

// Router binds pointer, key and button input to engine mutations and
// animation transitions. Every handler reports whether it consumed the
// event so hosts can stop it from reaching other handlers.
type Router struct {
	engine  core.Engine
	anim    Animator
	display Display
	mapper  Mapper
	log     *slog.Logger
}

// NewRouter wires a router. All collaborators are required.
func NewRouter(engine core.Engine, anim Animator, display Display, mapper Mapper, log *slog.Logger) (*Router, error) {
	switch {
	case engine == nil:
		return nil, fmt.Errorf("%w: engine", core.ErrMissingElement)
	case anim == nil:
		return nil, fmt.Errorf("%w: animation controller", core.ErrMissingElement)
	case display == nil:
		return nil, fmt.Errorf("%w: display", core.ErrMissingElement)
	}
	if log == nil {
		log = slog.Default()
	}
	return &Router{engine: engine, anim: anim, display: display, mapper: mapper, log: log}, nil
}

// Click toggles the cell under the pointer in the active field.
func (r *Router) Click(px, py float64, rect Rect) error {
	cell := r.mapper.MapToCell(px, py, rect)
	mode := r.display.Mode()
	if err := r.engine.ToggleCell(cell.Row, cell.Col, mode); err != nil {
		return core.WrapEngine(r.engine, "toggle", err)
	}
	r.log.Debug("toggled cell", "row", cell.Row, "col", cell.Col, "mode", mode)
	return r.display.Redraw()
}

// Key dispatches a key press.
func (r *Router) Key(k Key) (bool, error) {
	switch k {
	case KeySpace:
		return true, r.Step()
	case KeyP:
		return true, r.TogglePlay()
	case KeyR:
		return true, r.resetEngine()
	case KeyColorMode:
		return true, r.SelectMode(core.ColorField)
	case KeyScalarMode:
		return true, r.SelectMode(core.ScalarField)
	}
	return false, nil
}

// Button dispatches a control element activation.
func (r *Router) Button(id ButtonID) (bool, error) {
	switch id {
	case ButtonReset:
		return true, r.Reset()
	case ButtonPlayPause:
		return true, r.TogglePlay()
	case ButtonStep:
		return true, r.Step()
	case ButtonModeColor:
		return true, r.SelectMode(core.ColorField)
	case ButtonModeScalar:
		return true, r.SelectMode(core.ScalarField)
	}
	return false, nil
}

// Reset pauses the animation, restores the engine and repaints.
func (r *Router) Reset() error {
	r.anim.Pause()
	return r.resetEngine()
}

func (r *Router) resetEngine() error {
	if err := r.engine.Reset(); err != nil {
		return core.WrapEngine(r.engine, "reset", err)
	}
	r.log.Info("engine reset", "engine", r.engine.Name())
	return r.display.Redraw()
}

// TogglePlay flips between running and paused.
func (r *Router) TogglePlay() error {
	if r.anim.IsPaused() {
		return r.anim.Play()
	}
	r.anim.Pause()
	return nil
}

// Step advances the engine once and repaints.
func (r *Router) Step() error {
	if err := r.engine.Step(); err != nil {
		return core.WrapEngine(r.engine, "step", err)
	}
	return r.display.Redraw()
}

// SelectMode switches the rendered field without touching the engine.
func (r *Router) SelectMode(m core.FieldMode) error {
	if r.display.Mode() != m {
		r.log.Info("field mode", "mode", m)
	}
	r.display.SetMode(m)
	return r.display.Redraw()
}
