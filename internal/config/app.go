package config

import (
	"errors"
	"time"
)

// Defaults for the process-level settings.
const (
	DefaultLogLevel     = "info"
	DefaultTickInterval = 16 * time.Millisecond
)

// App holds the settings shared by every entry point. Transport-specific
// settings (listen addresses, key paths) are read by the commands themselves.
type App struct {
	LogLevel     string        // STRIKE_LOG_LEVEL: debug, info, warn, error
	Seed         int64         // STRIKE_SEED: spawn RNG seed, 0 picks one from the clock
	TickInterval time.Duration // STRIKE_TICK: logical tick length
}

// FromEnv builds App from the environment. Every malformed variable is
// reported; fields with bad values keep their defaults.
func FromEnv() (App, error) {
	app := App{
		LogLevel: GetEnv("STRIKE_LOG_LEVEL", DefaultLogLevel),
	}

	seed, seedErr := GetEnvInt("STRIKE_SEED", 0)
	app.Seed = seed

	tick, tickErr := GetEnvDuration("STRIKE_TICK", DefaultTickInterval)
	app.TickInterval = tick

	return app, errors.Join(seedErr, tickErr)
}
