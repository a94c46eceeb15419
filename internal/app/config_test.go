package app

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"fieldscope/internal/core"
	"fieldscope/internal/core/coretest"
)

func init() {
	core.Register("fake", func(size core.Size, _ int64) core.Engine {
		return coretest.NewEngine(size.W, size.H)
	})
}

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load("")
	require.NoError(t, err)

	assert.Equal(t, 60, cfg.Grid.Width)
	assert.Equal(t, 60, cfg.Grid.Height)
	assert.Equal(t, 10, cfg.Grid.CellSize)
	assert.Equal(t, "quantum", cfg.Engine.Name)
	assert.Equal(t, core.ColorField, cfg.Display.Mode)
	assert.Equal(t, 60, cfg.Display.TPS)
	assert.InDelta(t, 1.0, cfg.Display.Zoom, 1e-9)

	w, h := cfg.CanvasSize()
	assert.Equal(t, 661, w)
	assert.Equal(t, 661, h)
}

func TestLoadMergesUserFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "fieldscope.yaml")
	data := "grid:\n  width: 80\n  height: 40\ndisplay:\n  mode: scalar\nengine:\n  name: fake\n"
	require.NoError(t, os.WriteFile(path, []byte(data), 0o644))

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, 80, cfg.Grid.Width)
	assert.Equal(t, 40, cfg.Grid.Height)
	assert.Equal(t, 10, cfg.Grid.CellSize, "unset keys keep defaults")
	assert.Equal(t, core.ScalarField, cfg.Display.Mode)
	require.NoError(t, cfg.Validate())

	eng, err := cfg.NewEngine()
	require.NoError(t, err)
	assert.Equal(t, core.Size{W: 80, H: 40}, eng.Size())
}

func TestLoadRejectsBadMode(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bad.yaml")
	require.NoError(t, os.WriteFile(path, []byte("display:\n  mode: sepia\n"), 0o644))

	_, err := Load(path)
	assert.Error(t, err)
}

func TestLoadMissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)
}

func TestValidateCollectsErrors(t *testing.T) {
	cfg, err := Load("")
	require.NoError(t, err)
	cfg.Grid.Width = 0
	cfg.Grid.CellSize = -1
	cfg.Display.Zoom = 0
	cfg.Engine.Name = "nope"

	err = cfg.Validate()
	require.Error(t, err)
	msg := err.Error()
	assert.Contains(t, msg, "grid must be positive")
	assert.Contains(t, msg, "cell_size")
	assert.Contains(t, msg, "zoom")
	assert.Contains(t, msg, `unknown engine "nope"`)
}

func TestWriteYAMLRoundTrip(t *testing.T) {
	cfg, err := Load("")
	require.NoError(t, err)
	cfg.Engine.Name = "fake"
	cfg.Display.Mode = core.ScalarField

	var buf bytes.Buffer
	require.NoError(t, cfg.WriteYAML(&buf))
	assert.Contains(t, buf.String(), "mode: scalar")

	path := filepath.Join(t.TempDir(), "out.yaml")
	require.NoError(t, os.WriteFile(path, buf.Bytes(), 0o644))

	back, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, cfg, back)
}
