//go:build !ebiten

package main

import (
	"log/slog"

	"fieldscope/internal/app"
)

func runGUI(_ *app.Config, log *slog.Logger) error {
	log.Error("re-run with `go run -tags ebiten ./cmd/fieldscope`, or use the bench command")
	return app.ErrHeadless
}
