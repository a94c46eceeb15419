// Package coretest provides a scriptable Engine for driver tests.
package coretest

import (
	"fmt"

	"fieldscope/internal/core"
)

// Toggle records one ToggleCell call.
type Toggle struct {
	Row, Col int
	Mode     core.FieldMode
}

// Engine is an in-memory core.Engine that records calls. Each Step
// reallocates both buffers so stale views are detectable.
type Engine struct {
	size    core.Size
	colors  *core.RGBGrid
	scalars *core.ScalarGrid

	Steps   int
	Resets  int
	Toggles []Toggle
	// Calls lists operations in the order they happened.
	Calls []string

	// StepErr, when set, is returned by the next Step.
	StepErr error
	// Log, when set, receives call names alongside Calls.
	Log *[]string
}

// NewEngine returns an engine whose fields encode the step count.
func NewEngine(w, h int) *Engine {
	e := &Engine{size: core.Size{W: w, H: h}}
	e.rebuild()
	return e
}

func (e *Engine) record(call string) {
	e.Calls = append(e.Calls, call)
	if e.Log != nil {
		*e.Log = append(*e.Log, call)
	}
}

func (e *Engine) rebuild() {
	e.colors = core.NewRGBGrid(e.size.W, e.size.H)
	e.scalars = core.NewScalarGrid(e.size.W, e.size.H)
	for i := 0; i < e.size.Cells(); i++ {
		v := uint8((e.Steps*7 + i) % 256)
		e.colors.Set(i, v, 255-v, uint8(e.Steps))
		e.scalars.Set(i, float32((e.Steps+i)%3-1))
	}
	for _, t := range e.Toggles {
		i := core.Cell{Row: t.Row, Col: t.Col}.Index(e.size.W)
		e.colors.Set(i, 255, 255, 255)
	}
}

func (e *Engine) Name() string        { return "fake" }
func (e *Engine) Size() core.Size     { return e.size }
func (e *Engine) ColorField() []byte  { return e.colors.Bytes() }
func (e *Engine) ScalarField() []byte { return e.scalars.Bytes() }

func (e *Engine) Setup() error {
	e.record("setup")
	return nil
}

func (e *Engine) Step() error {
	e.record("step")
	if e.StepErr != nil {
		err := e.StepErr
		e.StepErr = nil
		return err
	}
	e.Steps++
	e.rebuild()
	return nil
}

func (e *Engine) Reset() error {
	e.record("reset")
	e.Resets++
	e.Steps = 0
	e.Toggles = nil
	e.rebuild()
	return nil
}

func (e *Engine) ToggleCell(row, col int, mode core.FieldMode) error {
	e.record(fmt.Sprintf("toggle %d,%d %s", row, col, mode))
	if !e.size.Contains(core.Cell{Row: row, Col: col}) {
		return fmt.Errorf("cell %d,%d out of range", row, col)
	}
	e.Toggles = append(e.Toggles, Toggle{Row: row, Col: col, Mode: mode})
	e.rebuild()
	return nil
}
