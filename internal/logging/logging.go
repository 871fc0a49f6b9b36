// Package logging builds the structured logger shared by all entry points.
package logging

import (
	"fmt"
	"io"
	"time"

	"github.com/charmbracelet/log"
)

// New returns a logger writing to w at the named level ("debug", "info", ...).
// An unknown level is an error; the returned logger is still usable at info.
func New(w io.Writer, level, prefix string) (*log.Logger, error) {
	logger := log.NewWithOptions(w, log.Options{
		ReportTimestamp: true,
		TimeFormat:      time.TimeOnly,
		Prefix:          prefix,
		Level:           log.InfoLevel,
	})

	lvl, err := log.ParseLevel(level)
	if err != nil {
		return logger, fmt.Errorf("log level %q: %w", level, err)
	}
	logger.SetLevel(lvl)
	return logger, nil
}

// Discard returns a logger that drops everything. Used by tests and by the
// local terminal game, whose stdout belongs to the renderer.
func Discard() *log.Logger {
	return log.NewWithOptions(io.Discard, log.Options{Level: log.FatalLevel})
}
