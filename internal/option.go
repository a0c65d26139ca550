package internal

import "time"

// Option is a functional option for configuring the application.
type Option func(*application)

type application struct {
	config        *Config
	batchThrottle time.Duration
}

// WithConfig sets the application configuration.
func WithConfig(cfg *Config) Option {
	return func(a *application) {
		a.config = cfg
	}
}

// WithBatchThrottle overrides how often the coalesced files.changed SSE
// event may fire. Zero keeps the broker default.
func WithBatchThrottle(d time.Duration) Option {
	return func(a *application) {
		a.batchThrottle = d
	}
}
