//go:build ebiten

package main

import (
	"errors"
	"log/slog"

	"github.com/hajimehoshi/ebiten/v2"

	"fieldscope/internal/app"
)

func runGUI(cfg *app.Config, log *slog.Logger) error {
	engine, err := cfg.NewEngine()
	if err != nil {
		return err
	}
	game, err := app.New(cfg, engine, log)
	if err != nil {
		return err
	}

	w, h := game.WindowSize()
	ebiten.SetWindowTitle("fieldscope - " + engine.Name())
	ebiten.SetTPS(cfg.Display.TPS)
	ebiten.SetWindowSize(w, h)

	if err := ebiten.RunGame(game); err != nil && !errors.Is(err, ebiten.Termination) {
		return err
	}
	return nil
}
