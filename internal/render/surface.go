package render

import (
	"image"
	"image/color"
)

// Surface is a pixel canvas the renderer paints onto.
type Surface interface {
	Size() (w, h int)
	FillRect(x, y, w, h int, c color.RGBA)
}

// PixelSurface is an in-memory RGBA canvas.
type PixelSurface struct {
	w, h int
	buf  []byte
}

// NewPixelSurface allocates a w*h RGBA canvas cleared to transparent black.
func NewPixelSurface(w, h int) *PixelSurface {
	if w < 0 {
		w = 0
	}
	if h < 0 {
		h = 0
	}
	return &PixelSurface{w: w, h: h, buf: make([]byte, 4*w*h)}
}

// Size returns the backing-store dimensions.
func (s *PixelSurface) Size() (int, int) { return s.w, s.h }

// FillRect paints the rectangle clipped to the surface bounds.
func (s *PixelSurface) FillRect(x, y, w, h int, c color.RGBA) {
	x0, y0 := max(x, 0), max(y, 0)
	x1, y1 := min(x+w, s.w), min(y+h, s.h)
	for py := y0; py < y1; py++ {
		row := py * s.w * 4
		for px := x0; px < x1; px++ {
			base := row + px*4
			s.buf[base+0] = c.R
			s.buf[base+1] = c.G
			s.buf[base+2] = c.B
			s.buf[base+3] = c.A
		}
	}
}

// At returns the pixel at (x, y).
func (s *PixelSurface) At(x, y int) color.RGBA {
	if x < 0 || y < 0 || x >= s.w || y >= s.h {
		return color.RGBA{}
	}
	base := (y*s.w + x) * 4
	return color.RGBA{R: s.buf[base], G: s.buf[base+1], B: s.buf[base+2], A: s.buf[base+3]}
}

// Pix exposes the RGBA bytes so callers can upload them.
func (s *PixelSurface) Pix() []byte { return s.buf }

// Image wraps the pixels in an image.RGBA sharing the same memory.
func (s *PixelSurface) Image() *image.RGBA {
	return &image.RGBA{Pix: s.buf, Stride: 4 * s.w, Rect: image.Rect(0, 0, s.w, s.h)}
}

// Snapshot returns a copy of the current pixels.
func (s *PixelSurface) Snapshot() []byte {
	return append([]byte(nil), s.buf...)
}
