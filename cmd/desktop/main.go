package main

import (
	"context"
	"os"

	"github.com/hajimehoshi/ebiten/v2"

	"github.com/tomz197/strike/internal/config"
	"github.com/tomz197/strike/internal/logging"
	"github.com/tomz197/strike/internal/loop/session"
)

func main() {
	logger, _ := logging.New(os.Stderr, config.DefaultLogLevel, "desktop")
	if err := config.Load(); err != nil {
		logger.Fatal("failed to load .env", "err", err)
	}
	app, err := config.FromEnv()
	if err != nil {
		logger.Warn("bad configuration, using defaults", "err", err)
	}
	if l, err := logging.New(os.Stderr, app.LogLevel, "desktop"); err != nil {
		logger.Warn("bad log level", "err", err)
	} else {
		logger = l
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	s := session.New(session.Options{
		Interval: app.TickInterval,
		Seed:     app.Seed,
		Logger:   logger,
	})
	go s.Run(ctx)

	g := newGame(ctx, s, logger)
	arena := s.Snapshot().Arena
	ebiten.SetWindowSize(int(arena.Width), int(arena.Height))
	ebiten.SetWindowTitle("Strike")
	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)

	if err := ebiten.RunGame(g); err != nil {
		logger.Error("game error", "err", err)
	}
	cancel()
	<-s.Done()
}
