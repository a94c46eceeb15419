package core

import (
	"errors"
	"fmt"
)

var (
	// ErrMissingElement indicates a required surface or control was not
	// supplied at setup.
	ErrMissingElement = errors.New("fieldscope: missing required element")

	// ErrInvalidView indicates an engine buffer whose length does not match
	// the grid geometry for the requested field mode.
	ErrInvalidView = errors.New("fieldscope: invalid field view")

	// ErrUnstable indicates the engine state diverged (NaN or Inf).
	ErrUnstable = errors.New("fieldscope: engine state diverged")
)

// EngineError wraps a failure returned by an Engine call.
type EngineError struct {
	Engine string
	Op     string
	Err    error
}

func (e *EngineError) Error() string {
	return fmt.Sprintf("engine %s: %s: %v", e.Engine, e.Op, e.Err)
}

func (e *EngineError) Unwrap() error {
	return e.Err
}

// WrapEngine annotates err with the engine and operation; nil stays nil.
func WrapEngine(eng Engine, op string, err error) error {
	if err == nil {
		return nil
	}
	name := ""
	if eng != nil {
		name = eng.Name()
	}
	return &EngineError{Engine: name, Op: op, Err: err}
}
