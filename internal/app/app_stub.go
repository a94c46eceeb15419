//go:build !ebiten

package app

import (
	"errors"
	"log/slog"

	"fieldscope/internal/core"
)

// ErrHeadless is returned by New when built without the ebiten tag.
var ErrHeadless = errors.New("app: the GUI requires building with the 'ebiten' tag")

// Game is a placeholder that satisfies the API expected by the GUI build.
type Game struct{}

// New reports that the GUI is unavailable in the headless build.
func New(*Config, core.Engine, *slog.Logger) (*Game, error) {
	return nil, ErrHeadless
}

// Driver returns nil in the headless build.
func (g *Game) Driver() *Driver { return nil }

// WindowSize returns zeros in the headless build.
func (g *Game) WindowSize() (int, int) { return 0, 0 }

// Update always reports that the GUI build tag is missing.
func (g *Game) Update() error { return ErrHeadless }

// Draw is a no-op placeholder to satisfy the interface shape.
func (g *Game) Draw(any) {}

// Layout returns zeros in the headless build.
func (g *Game) Layout(int, int) (int, int) { return 0, 0 }
