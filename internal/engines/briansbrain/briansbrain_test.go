package briansbrain

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"fieldscope/internal/core"
)

func TestStateCycle(t *testing.T) {
	b := New(6, 6, 0)
	// Two adjacent firing cells ignite their shared neighbors.
	require.NoError(t, b.ToggleCell(2, 2, core.ColorField))
	require.NoError(t, b.ToggleCell(2, 3, core.ColorField))

	require.NoError(t, b.Step())
	cells := b.Cells()
	assert.Equal(t, uint8(stateDying), cells[2*6+2])
	assert.Equal(t, uint8(stateDying), cells[2*6+3])
	assert.Equal(t, uint8(stateOn), cells[1*6+2])
	assert.Equal(t, uint8(stateOn), cells[3*6+3])

	require.NoError(t, b.Step())
	assert.Equal(t, uint8(stateDead), b.Cells()[2*6+2])
}

func TestToggle(t *testing.T) {
	b := New(3, 3, 0)
	require.NoError(t, b.ToggleCell(0, 0, core.ScalarField))
	assert.Equal(t, uint8(stateOn), b.Cells()[0])
	require.NoError(t, b.ToggleCell(0, 0, core.ScalarField))
	assert.Equal(t, uint8(stateDead), b.Cells()[0])
}

func TestResetIsDeterministic(t *testing.T) {
	b := New(20, 20, 3)
	require.NoError(t, b.Setup())
	initial := append([]uint8(nil), b.Cells()...)
	for i := 0; i < 4; i++ {
		require.NoError(t, b.Step())
	}
	require.NoError(t, b.Reset())
	assert.Equal(t, initial, b.Cells())
}

func TestResetSeedsSparseFiringCells(t *testing.T) {
	b := New(40, 40, 7)
	require.NoError(t, b.Reset())

	on := 0
	for _, v := range b.Cells() {
		require.NotEqual(t, uint8(stateDying), v)
		if v == stateOn {
			on++
		}
	}
	assert.Greater(t, on, 0)
	assert.Less(t, on, len(b.Cells())/4)
}

func TestFields(t *testing.T) {
	b := New(2, 1, 0)
	require.NoError(t, b.ToggleCell(0, 0, core.ColorField))

	assert.Equal(t, []byte{255, 255, 255, 0, 0, 0}, b.ColorField())

	grid := core.NewScalarGrid(2, 1)
	copy(grid.Bytes(), b.ScalarField())
	assert.Equal(t, float32(1), grid.At(0))
	assert.Equal(t, float32(-1), grid.At(1))
}

func TestRegistered(t *testing.T) {
	_, ok := core.Engines()["briansbrain"]
	assert.True(t, ok)
}
