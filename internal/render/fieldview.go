package render

import (
	"encoding/binary"
	"fmt"
	"image/color"
	"math"

	"fieldscope/internal/core"
)

// View is a short-lived, non-owning window onto one engine buffer. It must be
// discarded before any call that may mutate the engine.
type View struct {
	buf   []byte
	mode  core.FieldMode
	cells int
}

// Acquire borrows the buffer selected by mode from src and checks it against
// the grid geometry.
func Acquire(src core.FieldSource, mode core.FieldMode) (View, error) {
	size := src.Size()
	var buf []byte
	switch mode {
	case core.ScalarField:
		buf = src.ScalarField()
	default:
		buf = src.ColorField()
	}
	want := size.Cells() * mode.BytesPerCell()
	if len(buf) < want {
		return View{}, fmt.Errorf("%w: %s field has %d bytes, want %d", core.ErrInvalidView, mode, len(buf), want)
	}
	return View{buf: buf[:want:want], mode: mode, cells: size.Cells()}, nil
}

// Mode reports the interpretation applied by the view.
func (v View) Mode() core.FieldMode { return v.mode }

// Len returns the number of cells covered by the view.
func (v View) Len() int { return v.cells }

// ColorOf returns the draw color of the cell at the linear index.
func (v View) ColorOf(index int) color.RGBA {
	return ColorOf(v.buf, v.mode, index)
}

// ColorOf decodes the cell at index from buf. Color samples are returned
// unmodified; scalar samples map to gray = 127 + value*127.
func ColorOf(buf []byte, mode core.FieldMode, index int) color.RGBA {
	if mode == core.ScalarField {
		bits := binary.LittleEndian.Uint32(buf[index*4:])
		g := ScalarGray(math.Float32frombits(bits))
		return color.RGBA{R: g, G: g, B: g, A: 0xff}
	}
	base := index * 3
	return color.RGBA{R: buf[base], G: buf[base+1], B: buf[base+2], A: 0xff}
}

// ScalarGray maps a normalized magnitude to an 8-bit gray level. Values
// outside [-1, 1] saturate at black or white; NaN renders as mid gray.
func ScalarGray(v float32) uint8 {
	if v != v {
		return 127
	}
	g := math.Round(127 + float64(v)*127)
	if g < 0 {
		return 0
	}
	if g > 255 {
		return 255
	}
	return uint8(g)
}
