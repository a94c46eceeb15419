package app

import (
	"bytes"
	"errors"
	"image/png"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"fieldscope/internal/core"
	"fieldscope/internal/core/coretest"
	"fieldscope/internal/telemetry"
)

type sleepClock struct{ now time.Duration }

func (c *sleepClock) Now() time.Duration      { return c.now }
func (c *sleepClock) Sleep(d time.Duration) { c.now += d }

func benchConfig(t *testing.T) *Config {
	t.Helper()
	cfg, err := Load("")
	require.NoError(t, err)
	cfg.Grid.Width, cfg.Grid.Height, cfg.Grid.CellSize = 6, 4, 3
	return cfg
}

func TestRunBenchPaced(t *testing.T) {
	cfg := benchConfig(t)
	clock := &sleepClock{}
	var csv bytes.Buffer

	res, err := RunBench(cfg, coretest.NewEngine(6, 4), BenchOptions{
		Frames:   30,
		Paced:    true,
		TPS:      50,
		Now:      clock.Now,
		Sleep:    clock.Sleep,
		FrameLog: telemetry.NewFrameLog(&csv),
	})
	require.NoError(t, err)

	assert.Equal(t, uint64(30), res.Frames)
	assert.Equal(t, 50, res.Stats.Rounded)
	assert.InDelta(t, 50, res.Stats.Min, 1e-9)
	assert.InDelta(t, 50, res.Stats.Max, 1e-9)
	assert.Equal(t, 580*time.Millisecond, res.Elapsed, "one interval between consecutive frames")
	assert.Len(t, res.Rates, 29, "the frame at the start timestamp adds no sample")

	rows, err := telemetry.ReadFrameLog(&csv)
	require.NoError(t, err)
	assert.Len(t, rows, 30)
	assert.Equal(t, "color", rows[0].Mode)

	summary := res.Summary().Render()
	assert.Contains(t, summary, "FAKE")
}

// coarseClock reports time at 40ms resolution, so two paced frames share
// each timestamp.
type coarseClock struct{ real time.Duration }

func (c *coarseClock) Now() time.Duration {
	return c.real / (40 * time.Millisecond) * (40 * time.Millisecond)
}
func (c *coarseClock) Sleep(d time.Duration) { c.real += d }

func TestRunBenchSkipsRepeatedTimestamps(t *testing.T) {
	cfg := benchConfig(t)
	clock := &coarseClock{}

	res, err := RunBench(cfg, coretest.NewEngine(6, 4), BenchOptions{
		Frames: 9,
		Paced:  true,
		TPS:    50,
		Now:    clock.Now,
		Sleep:  clock.Sleep,
	})
	require.NoError(t, err)

	assert.Equal(t, uint64(9), res.Frames)
	assert.Equal(t, []float64{25, 25, 25, 25}, res.Rates)
	assert.Equal(t, 4, res.Stats.Samples)
	assert.Equal(t, 160*time.Millisecond, res.Elapsed)
}

func TestRunBenchPropagatesEngineFailure(t *testing.T) {
	cfg := benchConfig(t)
	clock := &sleepClock{}
	eng := coretest.NewEngine(6, 4)
	boom := errors.New("boom")
	eng.StepErr = boom

	_, err := RunBench(cfg, eng, BenchOptions{Frames: 5, Paced: true, TPS: 60, Now: clock.Now, Sleep: clock.Sleep})
	assert.ErrorIs(t, err, boom)
	var engErr *core.EngineError
	assert.ErrorAs(t, err, &engErr)
}

func TestRunBenchRejectsZeroFrames(t *testing.T) {
	_, err := RunBench(benchConfig(t), coretest.NewEngine(6, 4), BenchOptions{})
	assert.Error(t, err)
}

func TestBenchResultWritePNG(t *testing.T) {
	cfg := benchConfig(t)
	clock := &sleepClock{}
	res, err := RunBench(cfg, coretest.NewEngine(6, 4), BenchOptions{Frames: 2, Paced: true, TPS: 60, Now: clock.Now, Sleep: clock.Sleep})
	require.NoError(t, err)

	path := filepath.Join(t.TempDir(), "final.png")
	require.NoError(t, res.WritePNG(path))

	f, err := os.Open(path)
	require.NoError(t, err)
	defer f.Close()
	img, err := png.Decode(f)
	require.NoError(t, err)
	w, h := cfg.CanvasSize()
	assert.Equal(t, w, img.Bounds().Dx())
	assert.Equal(t, h, img.Bounds().Dy())
}
