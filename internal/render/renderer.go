package render

import (
	"fmt"
	"image/color"

	"fieldscope/internal/core"
)

// GridColor fills the 1-pixel border between cells.
var GridColor = color.RGBA{R: 0x33, G: 0x33, B: 0x33, A: 0xff}

// Pitch returns the spacing of cells on the canvas: cell size plus border.
func Pitch(cellSize int) int { return cellSize + 1 }

// CanvasSize returns the backing-store size needed for a grid with a 1-pixel
// border around every cell.
func CanvasSize(grid core.Size, cellSize int) (w, h int) {
	p := Pitch(cellSize)
	return p*grid.W + 1, p*grid.H + 1
}

// Renderer repaints the whole grid onto a surface.
type Renderer struct {
	surface  Surface
	grid     core.Size
	cellSize int
}

// NewRenderer validates the surface against the grid geometry.
func NewRenderer(surface Surface, grid core.Size, cellSize int) (*Renderer, error) {
	if surface == nil {
		return nil, fmt.Errorf("%w: canvas surface", core.ErrMissingElement)
	}
	if !grid.Valid() || cellSize <= 0 {
		return nil, fmt.Errorf("invalid geometry %dx%d cell %d", grid.W, grid.H, cellSize)
	}
	wantW, wantH := CanvasSize(grid, cellSize)
	if w, h := surface.Size(); w < wantW || h < wantH {
		return nil, fmt.Errorf("canvas %dx%d smaller than grid needs (%dx%d)", w, h, wantW, wantH)
	}
	return &Renderer{surface: surface, grid: grid, cellSize: cellSize}, nil
}

// Grid returns the grid dimensions the renderer was built for.
func (r *Renderer) Grid() core.Size { return r.grid }

// CellSize returns the cell edge length in pixels.
func (r *Renderer) CellSize() int { return r.cellSize }

// Draw acquires a fresh view of the field selected by mode and paints every
// cell. The view does not outlive the call.
func (r *Renderer) Draw(src core.FieldSource, mode core.FieldMode) error {
	if got := src.Size(); got != r.grid {
		return fmt.Errorf("%w: engine grid %dx%d, renderer grid %dx%d", core.ErrInvalidView, got.W, got.H, r.grid.W, r.grid.H)
	}
	view, err := Acquire(src, mode)
	if err != nil {
		return err
	}

	w, h := CanvasSize(r.grid, r.cellSize)
	r.surface.FillRect(0, 0, w, h, GridColor)

	pitch := Pitch(r.cellSize)
	for row := 0; row < r.grid.H; row++ {
		for col := 0; col < r.grid.W; col++ {
			c := view.ColorOf(row*r.grid.W + col)
			r.surface.FillRect(col*pitch+1, row*pitch+1, r.cellSize, r.cellSize, c)
		}
	}
	return nil
}
