package core

import (
	"encoding/binary"
	"math"
)

// Cell addresses a grid cell by 0-indexed row and column.
type Cell struct {
	Row int
	Col int
}

// Index returns the row-major linear offset of c in a grid of the given width.
func (c Cell) Index(width int) int { return c.Row*width + c.Col }

// Contains reports whether c lies inside a grid of size s.
func (s Size) Contains(c Cell) bool {
	return c.Row >= 0 && c.Row < s.H && c.Col >= 0 && c.Col < s.W
}

// RGBGrid stores packed 3-byte color samples in row-major order.
type RGBGrid struct {
	W, H int
	data []uint8
}

// NewRGBGrid allocates a color grid with the given dimensions.
func NewRGBGrid(w, h int) *RGBGrid {
	if w <= 0 {
		w = 1
	}
	if h <= 0 {
		h = 1
	}
	return &RGBGrid{W: w, H: h, data: make([]uint8, w*h*ColorField.BytesPerCell())}
}

// Bytes exposes the backing slice.
func (g *RGBGrid) Bytes() []uint8 { return g.data }

// Set writes the color of the cell at linear index i.
func (g *RGBGrid) Set(i int, r, gr, b uint8) {
	base := i * 3
	g.data[base+0] = r
	g.data[base+1] = gr
	g.data[base+2] = b
}

// ScalarGrid stores little-endian float32 values in row-major order, the
// byte layout consumed by the scalar field view.
type ScalarGrid struct {
	W, H int
	data []uint8
}

// NewScalarGrid allocates a scalar grid with the given dimensions.
func NewScalarGrid(w, h int) *ScalarGrid {
	if w <= 0 {
		w = 1
	}
	if h <= 0 {
		h = 1
	}
	return &ScalarGrid{W: w, H: h, data: make([]uint8, w*h*ScalarField.BytesPerCell())}
}

// Bytes exposes the backing slice.
func (g *ScalarGrid) Bytes() []uint8 { return g.data }

// Set stores v at linear index i.
func (g *ScalarGrid) Set(i int, v float32) {
	binary.LittleEndian.PutUint32(g.data[i*4:], math.Float32bits(v))
}

// At loads the value at linear index i.
func (g *ScalarGrid) At(i int) float32 {
	return math.Float32frombits(binary.LittleEndian.Uint32(g.data[i*4:]))
}

// Wrap applies toroidal wrapping to the provided coordinates.
func (s Size) Wrap(x, y int) (int, int) {
	x = (x%s.W + s.W) % s.W
	y = (y%s.H + s.H) % s.H
	return x, y
}
