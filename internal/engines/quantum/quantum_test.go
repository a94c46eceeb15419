package quantum

import (
	"math"
	"math/cmplx"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"fieldscope/internal/core"
)

func newUniverse(t *testing.T, w, h int) *Universe {
	t.Helper()
	u := New(w, h, 7)
	require.NoError(t, u.Setup())
	return u
}

func TestSetupWallsAndSinks(t *testing.T) {
	u := newUniverse(t, 30, 20)

	for x := 0; x < 30; x++ {
		assert.Zero(t, u.At(x, 0))
		assert.Zero(t, u.At(x, 19))
	}
	assert.Equal(t, 1.0, u.SinkMult(15, 10), "open cells are not attenuated")
	assert.Less(t, u.SinkMult(1, 10), 1.0, "cells in the band are attenuated")
	assert.Greater(t, u.SinkMult(1, 10), 0.0)
	assert.Less(t, u.SinkMult(1, 1), u.SinkMult(3, 3), "attenuation grows toward the wall")
	assert.Greater(t, u.Norm(), 0.5)
}

func TestSmallGridKeepsOpenCells(t *testing.T) {
	u := newUniverse(t, 5, 5)
	assert.Equal(t, 1.0, u.SinkMult(2, 2))
}

func TestResetRestoresInitialState(t *testing.T) {
	u := newUniverse(t, 24, 24)
	initial := u.At(8, 12)
	norm := u.Norm()

	for i := 0; i < 10; i++ {
		require.NoError(t, u.Step())
	}
	require.NoError(t, u.ToggleCell(4, 4, core.ScalarField))
	require.NotEqual(t, initial, u.At(8, 12))

	require.NoError(t, u.Reset())
	assert.Equal(t, initial, u.At(8, 12))
	assert.InDelta(t, norm, u.Norm(), 1e-12)
	assert.Zero(t, u.Level(4, 4))
}

func TestStepStaysBounded(t *testing.T) {
	u := newUniverse(t, 40, 40)
	start := u.Norm()
	for i := 0; i < 300; i++ {
		require.NoError(t, u.Step())
	}
	assert.LessOrEqual(t, u.Norm(), start*1.1)
}

func TestStepDetectsDivergence(t *testing.T) {
	u := newUniverse(t, 10, 10)
	u.psi[u.idx(5, 5)] = cmplx.NaN()
	assert.ErrorIs(t, u.Step(), core.ErrUnstable)
}

func TestToggleColorAddsPacket(t *testing.T) {
	u := New(20, 20, 1)
	require.NoError(t, u.Setup())
	before := cmplx.Abs(u.At(15, 5))

	require.NoError(t, u.ToggleCell(5, 15, core.ColorField))
	assert.Greater(t, cmplx.Abs(u.At(15, 5)), before)
}

func TestToggleScalarRaisesBarrier(t *testing.T) {
	u := newUniverse(t, 20, 20)
	require.NoError(t, u.ToggleCell(10, 10, core.ScalarField))

	assert.InDelta(t, 0, u.Level(10, 10), 1e-12, "peak is shifted to zero")
	assert.Less(t, u.Level(0, 0), u.Level(10, 10))
	for _, v := range u.level {
		assert.LessOrEqual(t, v, 0.0)
	}
}

func TestToggleOutOfRangeIsIgnored(t *testing.T) {
	u := newUniverse(t, 8, 8)
	norm := u.Norm()
	require.NoError(t, u.ToggleCell(-1, 40, core.ColorField))
	assert.Equal(t, norm, u.Norm())
}

func TestTiltSlopesPotentialDownhill(t *testing.T) {
	u := newUniverse(t, 16, 16)
	u.SetTilt(1, 0)
	u.resetPotentialCache()

	left := u.cache[u.idx(0, 8)]
	right := u.cache[u.idx(15, 8)]
	assert.Greater(t, left, right)
	for _, v := range u.cache {
		assert.LessOrEqual(t, v, 1e-12)
	}
}

func TestFieldBuffers(t *testing.T) {
	u := newUniverse(t, 12, 9)

	color := u.ColorField()
	scalar := u.ScalarField()
	assert.Len(t, color, 12*9*3)
	assert.Len(t, scalar, 12*9*4)

	// Walls hold zero amplitude, rendered white.
	assert.Equal(t, []byte{255, 255, 255}, color[:3])

	require.NoError(t, u.Step())
	after := u.ColorField()
	assert.NotSame(t, &color[0], &after[0], "stepping reallocates the color buffer")
	assert.Same(t, &scalar[0], &u.ScalarField()[0], "potential is unchanged by stepping")
}

func TestScalarFieldIsNormalized(t *testing.T) {
	u := newUniverse(t, 20, 20)
	for i := 0; i < 3; i++ {
		require.NoError(t, u.ToggleCell(10, 10, core.ScalarField))
	}
	grid := core.NewScalarGrid(20, 20)
	copy(grid.Bytes(), u.ScalarField())
	for i := 0; i < 400; i++ {
		v := grid.At(i)
		assert.GreaterOrEqual(t, v, float32(-1))
		assert.LessOrEqual(t, v, float32(0))
	}
}

func TestPhaseColor(t *testing.T) {
	r, g, b := PhaseColor(0)
	assert.Equal(t, [3]uint8{255, 255, 255}, [3]uint8{r, g, b})

	r, g, b = PhaseColor(1)
	assert.InDelta(t, 0, r, 1)
	assert.InDelta(t, 255, g, 1)
	assert.InDelta(t, 255, b, 1)

	r, g, b = PhaseColor(-1)
	assert.InDelta(t, 255, r, 1)
	assert.InDelta(t, 0, g, 1)
	assert.InDelta(t, 0, b, 1)

	// Lightness saturates at magnitude 2.
	r1, g1, b1 := PhaseColor(complex(2, 0))
	r2, g2, b2 := PhaseColor(complex(math.Sqrt(20), 0))
	assert.Equal(t, [3]uint8{r1, g1, b1}, [3]uint8{r2, g2, b2})
}

func TestRegistered(t *testing.T) {
	factory, ok := core.Engines()["quantum"]
	require.True(t, ok)
	eng := factory(core.Size{W: 6, H: 4}, 1)
	assert.Equal(t, "quantum", eng.Name())
	assert.Equal(t, core.Size{W: 6, H: 4}, eng.Size())
}

func TestParameters(t *testing.T) {
	u := New(4, 4, 0)
	snap := u.Parameters()
	require.Len(t, snap.Groups, 1)
	assert.Equal(t, "0.1", snap.Groups[0].Params[0].Value)
}
