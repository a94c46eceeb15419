// Package quantum simulates a two-dimensional complex wave field with walls,
// absorbing sinks and a potential landscape.
package quantum

import (
	"math"
	"math/cmplx"

	"fieldscope/internal/core"
)

const (
	defaultDT       = 0.1
	defaultMaxTilt  = 2.5
	defaultSinkBand = 4
	// suddenness controls how quickly the sink multiplier falls off with
	// distance from the nearest open cell.
	suddenness = 0.005

	packetSigma = 2.0
	wellRadius  = 4.0
	wellCore    = 1.0
)

// Universe is a complex field evolved under -1/2 laplacian plus potential.
type Universe struct {
	w, h int
	seed int64

	psi      []complex128
	walls    []bool
	sinks    []bool
	sinkMult []float64
	level    []float64
	cache    []float64

	initPsi   []complex128
	initLevel []float64

	dt       float64
	maxTilt  float64
	xSlope   float64
	ySlope   float64
	sinkBand int

	colors     *core.RGBGrid
	scalars    *core.ScalarGrid
	colorDirty bool
	scaleDirty bool
}

// New allocates a universe of the given size. Call Setup before stepping.
func New(w, h int, seed int64) *Universe {
	n := w * h
	return &Universe{
		w: w, h: h, seed: seed,
		psi:        make([]complex128, n),
		walls:      make([]bool, n),
		sinks:      make([]bool, n),
		sinkMult:   make([]float64, n),
		level:      make([]float64, n),
		cache:      make([]float64, n),
		dt:         defaultDT,
		maxTilt:    defaultMaxTilt,
		sinkBand:   defaultSinkBand,
		colorDirty: true,
		scaleDirty: true,
	}
}

// Name identifies the engine.
func (u *Universe) Name() string { return "quantum" }

// Size returns the grid dimensions.
func (u *Universe) Size() core.Size { return core.Size{W: u.w, H: u.h} }

func (u *Universe) idx(x, y int) int { return y*u.w + x }

// Setup lays out the default level: a wall ring, an absorbing band inside
// it and one wave packet. The result is the state Reset returns to.
func (u *Universe) Setup() error {
	clear(u.psi)
	clear(u.level)
	band := min(u.sinkBand, (min(u.w, u.h)-1)/4)
	for y := 0; y < u.h; y++ {
		for x := 0; x < u.w; x++ {
			i := u.idx(x, y)
			u.walls[i] = x == 0 || y == 0 || x == u.w-1 || y == u.h-1
			edge := min(x, y, u.w-1-x, u.h-1-y)
			u.sinks[i] = !u.walls[i] && edge <= band
		}
	}
	u.setupSinkMult()
	u.applyWalls()
	u.ensureNoPositivePotential()

	rng := core.NewRNG(u.seed).Source()
	cx := u.w/3 + rng.IntN(max(1, u.w/6))
	cy := u.h/2 + rng.IntN(max(1, u.h/8)) - u.h/16
	u.AddGaussian(cx, cy, packetSigma+1, 0.8, 0, 1)

	u.initPsi = append(u.initPsi[:0], u.psi...)
	u.initLevel = append(u.initLevel[:0], u.level...)
	u.touch()
	return nil
}

// Reset restores the state captured at the end of Setup.
func (u *Universe) Reset() error {
	if u.initPsi == nil {
		return u.Setup()
	}
	copy(u.psi, u.initPsi)
	copy(u.level, u.initLevel)
	u.touch()
	return nil
}

// Step advances the field by dt. The real part is updated from the
// imaginary part and the imaginary part from the fresh real part, which
// keeps the explicit scheme stable for dt * (4 + |V|) < 2.
func (u *Universe) Step() error {
	u.resetPotentialCache()
	dt := u.dt
	w := u.w

	for y := 1; y < u.h-1; y++ {
		for x := 1; x < w-1; x++ {
			i := y*w + x
			if u.walls[i] {
				continue
			}
			lap := imag(u.psi[i-w]) + imag(u.psi[i+w]) + imag(u.psi[i-1]) + imag(u.psi[i+1]) - 4*imag(u.psi[i])
			re := real(u.psi[i]) + dt*(-0.5*lap+u.cache[i]*imag(u.psi[i]))
			u.psi[i] = complex(re, imag(u.psi[i]))
		}
	}
	for y := 1; y < u.h-1; y++ {
		for x := 1; x < w-1; x++ {
			i := y*w + x
			if u.walls[i] {
				continue
			}
			lap := real(u.psi[i-w]) + real(u.psi[i+w]) + real(u.psi[i-1]) + real(u.psi[i+1]) - 4*real(u.psi[i])
			im := imag(u.psi[i]) - dt*(-0.5*lap+u.cache[i]*real(u.psi[i]))
			u.psi[i] = complex(real(u.psi[i]), im)
		}
	}
	for i, m := range u.sinkMult {
		if m != 1 && !u.walls[i] {
			u.psi[i] *= complex(m, 0)
		}
	}

	for _, v := range u.psi {
		if cmplx.IsNaN(v) || cmplx.IsInf(v) {
			return core.ErrUnstable
		}
	}
	u.colorDirty = true
	return nil
}

// ToggleCell drops a wave packet at (row, col) in color mode and raises a
// potential barrier there in scalar mode.
func (u *Universe) ToggleCell(row, col int, mode core.FieldMode) error {
	if !u.Size().Contains(core.Cell{Row: row, Col: col}) {
		return nil
	}
	switch mode {
	case core.ScalarField:
		u.AddPotentialWell(col, row, wellRadius, wellCore)
		u.ensureNoPositivePotential()
		u.scaleDirty = true
	default:
		u.AddGaussian(col, row, packetSigma, 0, 0, 1)
	}
	u.colorDirty = true
	return nil
}

// AddGaussian adds a normalized wave packet centered at (xc, yc) moving with
// wave numbers (kx, ky).
func (u *Universe) AddGaussian(xc, yc int, sigma, kx, ky, scale float64) {
	a := scale * math.Pow(2*math.Pi*sigma*sigma, -0.25)
	d := 4 * sigma * sigma
	for y := 1; y < u.h-1; y++ {
		for x := 1; x < u.w-1; x++ {
			i := u.idx(x, y)
			if u.walls[i] {
				continue
			}
			dx, dy := float64(x-xc), float64(y-yc)
			env := a * math.Exp(-(dx*dx+dy*dy)/d)
			u.psi[i] += cmplx.Rect(env, kx*float64(x)+ky*float64(y))
		}
	}
}

// AddPotentialWell adds a smooth bump of height peak at (xc, yc) with a
// 1/r tail beyond radius.
func (u *Universe) AddPotentialWell(xc, yc int, radius, peak float64) {
	b := -peak / 3 / radius / radius
	a := 2 * b * radius * radius
	for y := 0; y < u.h; y++ {
		for x := 0; x < u.w; x++ {
			r := math.Hypot(float64(x-xc), float64(y-yc))
			i := u.idx(x, y)
			if r < radius {
				u.level[i] += b * (r*r - 3*radius*radius)
			} else {
				u.level[i] += -a / r
			}
		}
	}
}

// SetTilt sets the potential slope along each axis, in [-1, 1].
func (u *Universe) SetTilt(xSlope, ySlope float64) {
	u.xSlope, u.ySlope = xSlope, ySlope
}

// setupSinkMult computes, for every cell, the grid distance to the nearest
// open cell by breadth-first search and converts it to an attenuation
// factor. Open cells get exactly 1.
func (u *Universe) setupSinkMult() {
	n := u.w * u.h
	dist := make([]int, n)
	queue := make([]int, 0, n)
	for i := range dist {
		dist[i] = -1
		if !u.walls[i] && !u.sinks[i] {
			dist[i] = 0
			queue = append(queue, i)
		}
	}
	for head := 0; head < len(queue); head++ {
		i := queue[head]
		x, y := i%u.w, i/u.w
		for _, nb := range [4][2]int{{x, y - 1}, {x, y + 1}, {x - 1, y}, {x + 1, y}} {
			if nb[0] < 0 || nb[1] < 0 || nb[0] >= u.w || nb[1] >= u.h {
				continue
			}
			j := u.idx(nb[0], nb[1])
			if dist[j] < 0 {
				dist[j] = dist[i] + 1
				queue = append(queue, j)
			}
		}
	}
	for i, d := range dist {
		if d < 0 {
			u.sinkMult[i] = 0
			continue
		}
		half := float64(d) / 2
		u.sinkMult[i] = math.Exp(-half * half * suddenness)
	}
}

func (u *Universe) applyWalls() {
	for i, wall := range u.walls {
		if wall {
			u.psi[i] = 0
		}
	}
}

// ensureNoPositivePotential shifts the level so its maximum is zero.
func (u *Universe) ensureNoPositivePotential() {
	hi := math.Inf(-1)
	for _, v := range u.level {
		hi = math.Max(hi, v)
	}
	if math.IsInf(hi, -1) {
		return
	}
	for i := range u.level {
		u.level[i] -= hi
	}
}

// resetPotentialCache combines the level with the current tilt plane.
func (u *Universe) resetPotentialCache() {
	total := math.Abs(u.xSlope) + math.Abs(u.ySlope)
	tilt := u.maxTilt
	if total > 1 {
		tilt = u.maxTilt / total
	}
	largest := float64(max(u.w, u.h))
	right := -u.xSlope * tilt * float64(u.w) / largest
	down := -u.ySlope * tilt * float64(u.h) / largest

	hi := max(-right-down, right-down, -right+down, right+down)
	topLeft := -right - down - hi
	xStep := right / float64(u.w)
	yStep := down / float64(u.h)

	leftEdge := topLeft
	for y := 0; y < u.h; y++ {
		leftEdge += yStep
		pot := leftEdge
		for x := 0; x < u.w; x++ {
			pot += xStep
			i := u.idx(x, y)
			u.cache[i] = pot + u.level[i]
		}
	}
}

// Norm returns the total probability, the sum of |psi|^2.
func (u *Universe) Norm() float64 {
	var sum float64
	for _, v := range u.psi {
		a := cmplx.Abs(v)
		sum += a * a
	}
	return sum
}

// At returns the wave function at (x, y).
func (u *Universe) At(x, y int) complex128 { return u.psi[u.idx(x, y)] }

// Level returns the potential level at (x, y).
func (u *Universe) Level(x, y int) float64 { return u.level[u.idx(x, y)] }

// SinkMult returns the attenuation factor at (x, y).
func (u *Universe) SinkMult(x, y int) float64 { return u.sinkMult[u.idx(x, y)] }

func (u *Universe) touch() {
	u.colorDirty = true
	u.scaleDirty = true
}

// Parameters reports the engine tunables.
func (u *Universe) Parameters() core.ParameterSnapshot {
	return core.ParameterSnapshot{Groups: []core.ParameterGroup{{
		Name: "quantum",
		Params: []core.Parameter{
			core.FloatParam("dt", "dt", u.dt),
			core.FloatParam("max_tilt", "tilt", u.maxTilt),
			core.IntParam("sink_band", "sinks", u.sinkBand),
		},
	}}}
}

func init() {
	core.Register("quantum", func(size core.Size, seed int64) core.Engine {
		return New(size.W, size.H, seed)
	})
}
