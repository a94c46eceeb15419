package input

import (
	"math"

	"fieldscope/internal/core"
)

// Rect is the on-screen rectangle a canvas occupies, in the same space as
// pointer coordinates.
type Rect struct {
	X, Y float64
	W, H float64
}

// Contains reports whether the pointer position lies on the rectangle.
// The right and bottom edges are exclusive.
func (r Rect) Contains(px, py float64) bool {
	return px >= r.X && py >= r.Y && px < r.X+r.W && py < r.Y+r.H
}

// Mapper converts pointer positions into grid cells for a canvas whose
// backing store may be displayed at a different size.
type Mapper struct {
	BackingW int
	BackingH int
	Pitch    int
	Grid     core.Size
}

// MapToCell maps a pointer position to the cell under it, clamped to the grid.
func (m Mapper) MapToCell(px, py float64, rect Rect) core.Cell {
	return MapToCell(px, py, rect, m.BackingW, m.BackingH, m.Pitch, m.Grid)
}

// MapToCell scales the pointer position from display space into
// backing-store pixels, divides by the cell pitch and clamps each axis to
// [0, dimension-1]. Any input yields a valid cell.
func MapToCell(px, py float64, rect Rect, backingW, backingH, pitch int, grid core.Size) core.Cell {
	scaleX, scaleY := 1.0, 1.0
	if rect.W > 0 {
		scaleX = float64(backingW) / rect.W
	}
	if rect.H > 0 {
		scaleY = float64(backingH) / rect.H
	}
	if pitch <= 0 {
		pitch = 1
	}

	x := (px - rect.X) * scaleX
	y := (py - rect.Y) * scaleY

	return core.Cell{
		Row: clampIndex(y/float64(pitch), grid.H),
		Col: clampIndex(x/float64(pitch), grid.W),
	}
}

func clampIndex(v float64, n int) int {
	if n <= 0 || v != v || v < 0 {
		return 0
	}
	f := math.Floor(v)
	if f >= float64(n-1) {
		return n - 1
	}
	return int(f)
}
