//go:build ebiten

package app

import (
	"log/slog"
	"time"

	"fieldscope/internal/anim"
	"fieldscope/internal/core"
	"fieldscope/internal/input"
	"fieldscope/internal/render"
	"fieldscope/internal/ui"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
)

var keyBindings = []struct {
	key ebiten.Key
	id  input.Key
}{
	{ebiten.KeySpace, input.KeySpace},
	{ebiten.KeyP, input.KeyP},
	{ebiten.KeyR, input.KeyR},
	{ebiten.KeyDigit1, input.KeyColorMode},
	{ebiten.KeyDigit2, input.KeyScalarMode},
}

// Game adapts a Driver to the ebiten.Game interface. Ebiten's Update is the
// display-refresh source: input is routed first, then the frame queue is
// dispatched, so input never interleaves with a loop iteration.
type Game struct {
	driver  *Driver
	canvas  *render.Canvas
	toolbar *ui.Toolbar
	log     *slog.Logger

	zoom  float64
	start time.Time
}

// New constructs a Game for the provided engine.
func New(cfg *Config, engine core.Engine, log *slog.Logger) (*Game, error) {
	if log == nil {
		log = slog.Default()
	}
	w, h := cfg.CanvasSize()
	g := &Game{
		canvas: render.NewCanvas(w, h),
		log:    log,
		zoom:   cfg.Display.Zoom,
		start:  time.Now(),
	}
	var snapshot core.ParameterSnapshot
	if p, ok := engine.(core.ParameterProvider); ok {
		snapshot = p.Parameters()
	}
	g.toolbar = ui.NewToolbar(g.scaled(h), g.scaled(w), snapshot)
	g.toolbar.SetMode(cfg.Display.Mode)

	d, err := NewDriver(Options{
		Engine:        engine,
		Surface:       g.canvas,
		CellSize:      cfg.Grid.CellSize,
		Mode:          cfg.Display.Mode,
		Now:           g.now,
		OnStateChange: func(s anim.State) { g.toolbar.SetPaused(s == anim.Paused) },
		Logger:        log,
	})
	if err != nil {
		return nil, err
	}
	g.driver = d
	if err := d.Start(); err != nil {
		return nil, err
	}
	return g, nil
}

func (g *Game) now() time.Duration { return time.Since(g.start) }

func (g *Game) scaled(v int) int { return int(float64(v) * g.zoom) }

// Driver returns the underlying driver.
func (g *Game) Driver() *Driver { return g.driver }

// WindowSize returns the initial window size in pixels.
func (g *Game) WindowSize() (int, int) { return g.Layout(0, 0) }

// Update dispatches the scheduled loop iteration, then routes input.
func (g *Game) Update() error {
	if inpututil.IsKeyJustPressed(ebiten.KeyQ) || inpututil.IsKeyJustPressed(ebiten.KeyEscape) {
		return ebiten.Termination
	}
	err := g.driver.Refresh(g.now(), func(router *input.Router) error {
		for _, b := range keyBindings {
			if inpututil.IsKeyJustPressed(b.key) {
				if _, err := router.Key(b.id); err != nil {
					return err
				}
			}
		}
		if inpututil.IsMouseButtonJustPressed(ebiten.MouseButtonLeft) {
			return g.click(ebiten.CursorPosition())
		}
		return nil
	})
	if err != nil {
		return err
	}
	g.toolbar.SetMode(g.driver.Mode())
	g.toolbar.SetFPS(g.driver.FPSLabel())
	return nil
}

func (g *Game) click(x, y int) error {
	router := g.driver.Router()
	if id, ok := g.toolbar.HitTest(x, y); ok {
		_, err := router.Button(id)
		return err
	}
	w, h := g.canvas.Size()
	rect := input.Rect{W: float64(w) * g.zoom, H: float64(h) * g.zoom}
	if !rect.Contains(float64(x), float64(y)) {
		return nil
	}
	return router.Click(float64(x), float64(y), rect)
}

// Draw uploads the painted canvas and the toolbar.
func (g *Game) Draw(screen *ebiten.Image) {
	g.canvas.Blit(screen, 0, 0, g.zoom)
	g.toolbar.Draw(screen)
}

// Layout returns the logical screen size.
func (g *Game) Layout(outsideWidth, outsideHeight int) (int, int) {
	_, h := g.canvas.Size()
	return g.toolbar.Width(), g.scaled(h) + g.toolbar.Height()
}
