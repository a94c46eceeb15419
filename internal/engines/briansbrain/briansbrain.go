package briansbrain

import "fieldscope/internal/core"

const (
	stateDead  = 0
	stateOn    = 1
	stateDying = 2

	// seedDensity is the fraction of cells firing after Reset.
	seedDensity = 0.125
)

// Brain implements Brian's Brain cellular automaton.
type Brain struct {
	w, h int
	seed int64
	cur  []uint8
	nxt  []uint8

	colors  *core.RGBGrid
	scalars *core.ScalarGrid
}

// New creates a Brain simulation with the provided dimensions.
func New(w, h int, seed int64) *Brain {
	cells := make([]uint8, w*h)
	return &Brain{w: w, h: h, seed: seed, cur: cells, nxt: make([]uint8, len(cells))}
}

// Name identifies the engine.
func (b *Brain) Name() string { return "briansbrain" }

// Size returns the grid dimensions.
func (b *Brain) Size() core.Size { return core.Size{W: b.w, H: b.h} }

// Cells exposes the current state buffer.
func (b *Brain) Cells() []uint8 { return b.cur }

// Setup seeds the board.
func (b *Brain) Setup() error { return b.Reset() }

// Reset randomizes cells into dead or firing states.
func (b *Brain) Reset() error {
	rng := core.NewRNG(b.seed)
	for i := range b.cur {
		if rng.Chance(seedDensity) {
			b.cur[i] = stateOn
			continue
		}
		b.cur[i] = stateDead
	}
	b.invalidate()
	return nil
}

// Step advances the automaton by one tick.
func (b *Brain) Step() error {
	w, h := b.w, b.h
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			idx := y*w + x
			switch b.cur[idx] {
			case stateOn:
				b.nxt[idx] = stateDying
			case stateDying:
				b.nxt[idx] = stateDead
			default:
				if b.firing(x, y) == 2 {
					b.nxt[idx] = stateOn
				} else {
					b.nxt[idx] = stateDead
				}
			}
		}
	}
	b.cur, b.nxt = b.nxt, b.cur
	b.invalidate()
	return nil
}

func (b *Brain) firing(x, y int) int {
	n := 0
	for dy := -1; dy <= 1; dy++ {
		for dx := -1; dx <= 1; dx++ {
			if dx == 0 && dy == 0 {
				continue
			}
			nx, ny := b.Size().Wrap(x+dx, y+dy)
			if b.cur[ny*b.w+nx] == stateOn {
				n++
			}
		}
	}
	return n
}

// ToggleCell fires a dead cell and kills a live or dying one.
func (b *Brain) ToggleCell(row, col int, _ core.FieldMode) error {
	if !b.Size().Contains(core.Cell{Row: row, Col: col}) {
		return nil
	}
	i := core.Cell{Row: row, Col: col}.Index(b.w)
	if b.cur[i] == stateDead {
		b.cur[i] = stateOn
	} else {
		b.cur[i] = stateDead
	}
	b.invalidate()
	return nil
}

func (b *Brain) invalidate() {
	b.colors = nil
	b.scalars = nil
}

// ColorField paints firing cells white and dying cells blue.
func (b *Brain) ColorField() []byte {
	if b.colors == nil {
		b.colors = core.NewRGBGrid(b.w, b.h)
		for i, v := range b.cur {
			switch v {
			case stateOn:
				b.colors.Set(i, 255, 255, 255)
			case stateDying:
				b.colors.Set(i, 40, 90, 200)
			}
		}
	}
	return b.colors.Bytes()
}

// ScalarField maps firing to 1, dying to 0 and dead to -1.
func (b *Brain) ScalarField() []byte {
	if b.scalars == nil {
		b.scalars = core.NewScalarGrid(b.w, b.h)
		for i, v := range b.cur {
			switch v {
			case stateOn:
				b.scalars.Set(i, 1)
			case stateDying:
				b.scalars.Set(i, 0)
			default:
				b.scalars.Set(i, -1)
			}
		}
	}
	return b.scalars.Bytes()
}

func init() {
	core.Register("briansbrain", func(size core.Size, seed int64) core.Engine {
		return New(size.W, size.H, seed)
	})
}
