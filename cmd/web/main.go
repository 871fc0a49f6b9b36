package main

import (
	"context"
	_ "embed"
	"errors"
	"net"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/tomz197/strike/internal/config"
	"github.com/tomz197/strike/internal/logging"
	"github.com/tomz197/strike/internal/loop/session"
	"github.com/tomz197/strike/internal/web"
)

const (
	defaultHost = "0.0.0.0"
	defaultPort = "8080"
)

//go:embed index.html
var htmlPage []byte

func main() {
	logger, _ := logging.New(os.Stderr, config.DefaultLogLevel, "web")
	if err := config.Load(); err != nil {
		logger.Fatal("failed to load .env", "err", err)
	}
	app, err := config.FromEnv()
	if err != nil {
		logger.Warn("bad configuration, using defaults", "err", err)
	}
	if l, err := logging.New(os.Stderr, app.LogLevel, "web"); err != nil {
		logger.Warn("bad log level", "err", err)
	} else {
		logger = l
	}

	host := config.GetEnv("WEB_HOST", defaultHost)
	port := config.GetEnv("WEB_PORT", defaultPort)

	mux := http.NewServeMux()
	mux.HandleFunc("GET /{$}", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		_, _ = w.Write(htmlPage)
	})
	mux.Handle("GET /ws", web.NewHandler(session.Options{
		Interval: app.TickInterval,
		Seed:     app.Seed,
		Logger:   logger,
	}))

	srv := &http.Server{
		Addr:              net.JoinHostPort(host, port),
		Handler:           mux,
		ReadHeaderTimeout: 10 * time.Second,
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	go func() {
		logger.Info("starting web server", "addr", "http://"+srv.Addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Fatal("server error", "err", err)
		}
	}()

	<-ctx.Done()
	logger.Info("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("shutdown error", "err", err)
	}
}
