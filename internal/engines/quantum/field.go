package quantum

import (
	"math"
	"math/cmplx"

	colorful "github.com/lucasb-eyer/go-colorful"

	"fieldscope/internal/core"
)

// PhaseColor maps a complex amplitude to an inverted HSL color: phase sets
// the hue and magnitude the lightness, so zero amplitude is white.
func PhaseColor(v complex128) (r, g, b uint8) {
	radius := cmplx.Abs(v)
	if radius == 0 {
		return 255, 255, 255
	}
	hue := math.Mod(cmplx.Phase(v)*180/math.Pi+360, 360)
	light := math.Min(radius*0.5, 1)
	c := colorful.Hsl(hue, 1, light).Clamped()
	cr, cg, cb := c.RGB255()
	return 255 - cr, 255 - cg, 255 - cb
}

// ColorField returns the wave function rendered as packed RGB. The buffer
// is reallocated after every mutation.
func (u *Universe) ColorField() []byte {
	if u.colorDirty || u.colors == nil {
		grid := core.NewRGBGrid(u.w, u.h)
		for i, v := range u.psi {
			r, g, b := PhaseColor(v)
			grid.Set(i, r, g, b)
		}
		u.colors = grid
		u.colorDirty = false
	}
	return u.colors.Bytes()
}

// ScalarField returns the potential level as float32, scaled into [-1, 0]
// when its depth exceeds one.
func (u *Universe) ScalarField() []byte {
	if u.scaleDirty || u.scalars == nil {
		depth := 1.0
		for _, v := range u.level {
			depth = math.Max(depth, -v)
		}
		grid := core.NewScalarGrid(u.w, u.h)
		for i, v := range u.level {
			grid.Set(i, float32(v/depth))
		}
		u.scalars = grid
		u.scaleDirty = false
	}
	return u.scalars.Bytes()
}
