package core

import "sort"

// Size describes the dimensions of a simulation grid.
type Size struct {
	W int
	H int
}

// Cells returns the number of cells in the grid.
func (s Size) Cells() int { return s.W * s.H }

// Valid reports whether both dimensions are positive.
func (s Size) Valid() bool { return s.W > 0 && s.H > 0 }

// FieldSource is the read-only view contract the driver consumes from an
// Engine. Each call returns a slice borrowed from engine-owned storage; the
// slice is only valid until the next mutating call on the engine.
type FieldSource interface {
	Size() Size
	// ColorField returns width*height*3 bytes of packed R, G, B samples.
	ColorField() []byte
	// ScalarField returns width*height*4 bytes of little-endian float32
	// values in roughly [-1, 1].
	ScalarField() []byte
}

// Engine is the simulation collaborator driven by the visualizer. The engine
// owns its state and buffers exclusively and may reallocate them on any
// mutating call.
type Engine interface {
	FieldSource
	Name() string
	// Setup initializes default field values.
	Setup() error
	// Step advances the simulation by one discrete tick.
	Step() error
	// Reset restores the initial configuration.
	Reset() error
	// ToggleCell flips or perturbs the cell at (row, col) in the named field.
	ToggleCell(row, col int, mode FieldMode) error
}

// Factory constructs an Engine for a grid of the given size.
type Factory func(size Size, seed int64) Engine

var engines = map[string]Factory{}

// Register adds an engine factory under the provided name.
func Register(name string, f Factory) {
	if name == "" || f == nil {
		return
	}
	engines[name] = f
}

// Engines exposes the registry of available engine factories.
func Engines() map[string]Factory {
	return engines
}

// EngineNames returns the registered engine names in sorted order.
func EngineNames() []string {
	names := make([]string, 0, len(engines))
	for name := range engines {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
