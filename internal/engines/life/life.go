// Package life implements Conway's Game of Life with toroidal wrapping.
package life

import (
	"fieldscope/internal/core"
)

// Life implements Conway's Game of Life with toroidal wrapping.
type Life struct {
	w, h int
	seed int64
	cur  []uint8
	nxt  []uint8

	colors  *core.RGBGrid
	scalars *core.ScalarGrid
}

// New returns a Life simulation with the provided dimensions.
func New(w, h int, seed int64) *Life {
	cells := make([]uint8, w*h)
	return &Life{w: w, h: h, seed: seed, cur: cells, nxt: make([]uint8, len(cells))}
}

// Name returns the engine identifier.
func (l *Life) Name() string { return "life" }

// Size returns the grid dimensions.
func (l *Life) Size() core.Size { return core.Size{W: l.w, H: l.h} }

// Cells exposes the current grid values.
func (l *Life) Cells() []uint8 { return l.cur }

// Setup seeds the board.
func (l *Life) Setup() error { return l.Reset() }

// Reset randomizes the board using the engine seed.
func (l *Life) Reset() error {
	rng := core.NewRNG(l.seed).Source()
	core.FillBinary(rng, l.cur)
	l.invalidate()
	return nil
}

// Step advances the simulation by one generation.
func (l *Life) Step() error {
	w, h := l.w, l.h
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			neighbors := l.neighbors(x, y)
			idx := y*w + x
			alive := l.cur[idx] == 1
			l.nxt[idx] = 0
			if (alive && (neighbors == 2 || neighbors == 3)) || (!alive && neighbors == 3) {
				l.nxt[idx] = 1
			}
		}
	}
	l.cur, l.nxt = l.nxt, l.cur
	l.invalidate()
	return nil
}

func (l *Life) neighbors(x, y int) int {
	n := 0
	for dy := -1; dy <= 1; dy++ {
		for dx := -1; dx <= 1; dx++ {
			if dx == 0 && dy == 0 {
				continue
			}
			nx, ny := l.Size().Wrap(x+dx, y+dy)
			n += int(l.cur[ny*l.w+nx])
		}
	}
	return n
}

// ToggleCell flips the cell at (row, col). Both field modes edit the same
// board.
func (l *Life) ToggleCell(row, col int, _ core.FieldMode) error {
	if !l.Size().Contains(core.Cell{Row: row, Col: col}) {
		return nil
	}
	i := core.Cell{Row: row, Col: col}.Index(l.w)
	l.cur[i] ^= 1
	l.invalidate()
	return nil
}

func (l *Life) invalidate() {
	l.colors = nil
	l.scalars = nil
}

// ColorField renders live cells white on black.
func (l *Life) ColorField() []byte {
	if l.colors == nil {
		l.colors = core.NewRGBGrid(l.w, l.h)
		for i, v := range l.cur {
			if v == 1 {
				l.colors.Set(i, 255, 255, 255)
			}
		}
	}
	return l.colors.Bytes()
}

// ScalarField reports live-neighbor density mapped to [-1, 1].
func (l *Life) ScalarField() []byte {
	if l.scalars == nil {
		l.scalars = core.NewScalarGrid(l.w, l.h)
		for y := 0; y < l.h; y++ {
			for x := 0; x < l.w; x++ {
				n := l.neighbors(x, y)
				l.scalars.Set(y*l.w+x, float32(n)/4-1)
			}
		}
	}
	return l.scalars.Bytes()
}

func init() {
	core.Register("life", func(size core.Size, seed int64) core.Engine {
		return New(size.W, size.H, seed)
	})
}
