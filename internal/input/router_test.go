package input

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"fieldscope/internal/core"
	"fieldscope/internal/core/coretest"
)

type fakeAnimator struct {
	paused bool
	log    *[]string
}

func (a *fakeAnimator) Play() error {
	*a.log = append(*a.log, "play")
	a.paused = false
	return nil
}

func (a *fakeAnimator) Pause() {
	*a.log = append(*a.log, "pause")
	a.paused = true
}

func (a *fakeAnimator) IsPaused() bool { return a.paused }

type fakeDisplay struct {
	mode core.FieldMode
	log  *[]string
}

func (d *fakeDisplay) Mode() core.FieldMode { return d.mode }

func (d *fakeDisplay) SetMode(m core.FieldMode) {
	*d.log = append(*d.log, "mode "+m.String())
	d.mode = m
}

func (d *fakeDisplay) Redraw() error {
	*d.log = append(*d.log, "draw")
	return nil
}

type routerHarness struct {
	calls   []string
	engine  *coretest.Engine
	anim    *fakeAnimator
	display *fakeDisplay
	router  *Router
}

func newRouterHarness(t *testing.T) *routerHarness {
	t.Helper()
	h := &routerHarness{}
	h.engine = coretest.NewEngine(80, 40)
	h.engine.Log = &h.calls
	h.anim = &fakeAnimator{paused: true, log: &h.calls}
	h.display = &fakeDisplay{log: &h.calls}
	mapper := Mapper{BackingW: 881, BackingH: 441, Pitch: 11, Grid: h.engine.Size()}
	r, err := NewRouter(h.engine, h.anim, h.display, mapper, nil)
	require.NoError(t, err)
	h.router = r
	return h
}

func TestClickTogglesMappedCellInActiveMode(t *testing.T) {
	h := newRouterHarness(t)
	h.display.mode = core.ScalarField

	require.NoError(t, h.router.Click(879, 439, Rect{W: 881, H: 441}))

	assert.Equal(t, []string{"toggle 39,79 scalar", "draw"}, h.calls)
	assert.Equal(t, []coretest.Toggle{{Row: 39, Col: 79, Mode: core.ScalarField}}, h.engine.Toggles)
}

func TestResetButtonPausesResetsAndRedraws(t *testing.T) {
	h := newRouterHarness(t)
	h.anim.paused = false

	handled, err := h.router.Button(ButtonReset)
	require.NoError(t, err)
	assert.True(t, handled)
	assert.Equal(t, []string{"pause", "reset", "draw"}, h.calls)
}

func TestPlayPauseButtonToggles(t *testing.T) {
	h := newRouterHarness(t)

	_, err := h.router.Button(ButtonPlayPause)
	require.NoError(t, err)
	_, err = h.router.Button(ButtonPlayPause)
	require.NoError(t, err)

	assert.Equal(t, []string{"play", "pause"}, h.calls)
}

func TestStepButtonAndSpaceKey(t *testing.T) {
	h := newRouterHarness(t)

	_, err := h.router.Button(ButtonStep)
	require.NoError(t, err)
	handled, err := h.router.Key(KeySpace)
	require.NoError(t, err)

	assert.True(t, handled)
	assert.Equal(t, []string{"step", "draw", "step", "draw"}, h.calls)
	assert.Equal(t, 2, h.engine.Steps)
}

func TestKeyBindings(t *testing.T) {
	h := newRouterHarness(t)

	_, err := h.router.Key(KeyP)
	require.NoError(t, err)
	_, err = h.router.Key(KeyR)
	require.NoError(t, err)

	assert.Equal(t, []string{"play", "reset", "draw"}, h.calls)

	handled, err := h.router.Key(KeyNone)
	require.NoError(t, err)
	assert.False(t, handled)
}

func TestModeSelectionDoesNotTouchEngine(t *testing.T) {
	h := newRouterHarness(t)

	_, err := h.router.Button(ButtonModeScalar)
	require.NoError(t, err)
	_, err = h.router.Key(KeyColorMode)
	require.NoError(t, err)

	assert.Equal(t, []string{"mode scalar", "draw", "mode color", "draw"}, h.calls)
	assert.Empty(t, h.engine.Calls)
	assert.Equal(t, core.ColorField, h.display.mode)
}

func TestUnknownButtonIsNotHandled(t *testing.T) {
	h := newRouterHarness(t)
	handled, err := h.router.Button(ButtonID("fullscreen"))
	require.NoError(t, err)
	assert.False(t, handled)
}

func TestEngineErrorsAreWrapped(t *testing.T) {
	h := newRouterHarness(t)
	boom := errors.New("boom")
	h.engine.StepErr = boom

	err := h.router.Step()
	var engErr *core.EngineError
	require.ErrorAs(t, err, &engErr)
	assert.Equal(t, "step", engErr.Op)
	assert.ErrorIs(t, err, boom)
	assert.Equal(t, []string{"step"}, h.calls, "no redraw after a failed step")
}

func TestNewRouterPreconditions(t *testing.T) {
	_, err := NewRouter(nil, &fakeAnimator{}, &fakeDisplay{}, Mapper{}, nil)
	assert.ErrorIs(t, err, core.ErrMissingElement)
}
