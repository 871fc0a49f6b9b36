package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"golang.org/x/term"

	"github.com/tomz197/strike/internal/config"
	"github.com/tomz197/strike/internal/logging"
	"github.com/tomz197/strike/internal/loop"
	"github.com/tomz197/strike/internal/loop/session"
)

func main() {
	if err := config.Load(); err != nil {
		fmt.Fprintf(os.Stderr, "config: %v\n", err)
		os.Exit(1)
	}
	app, err := config.FromEnv()
	if err != nil {
		fmt.Fprintf(os.Stderr, "config: %v\n", err)
		os.Exit(1)
	}

	// Stdout belongs to the renderer, so logs go to an optional file.
	logger := logging.Discard()
	if path := config.GetEnv("STRIKE_LOG_FILE", ""); path != "" {
		f, err := os.OpenFile(path, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o644)
		if err != nil {
			fmt.Fprintf(os.Stderr, "log file: %v\n", err)
			os.Exit(1)
		}
		defer f.Close()
		if logger, err = logging.New(f, app.LogLevel, "game"); err != nil {
			fmt.Fprintf(os.Stderr, "log: %v\n", err)
		}
	}

	fd := int(os.Stdin.Fd())
	oldState, err := term.MakeRaw(fd)
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to enable raw mode: %v\n", err)
		os.Exit(1)
	}
	defer func() {
		_ = term.Restore(fd, oldState)
	}()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGTERM)
	defer stop()

	err = loop.Run(ctx, os.Stdin, os.Stdout, loop.Options{
		Session: session.Options{
			Interval: app.TickInterval,
			Seed:     app.Seed,
		},
		Logger: logger,
	})
	if err != nil {
		_ = term.Restore(fd, oldState)
		fmt.Fprintf(os.Stderr, "game error: %v\n", err)
		os.Exit(1)
	}
}
