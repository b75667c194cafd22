// Package source discovers and reads per-provider projection tables and the
// ADP table for a season.
package source

import (
	"runtime"

	"github.com/okian/draftboard/pkg/logger"
)

// Loader reads season inputs below a data directory.
type Loader struct {
	dataDir string
	workers int
	logger  logger.Logger
}

// Option applies a configuration option to the Loader.
type Option func(*Loader)

// WithWorkers bounds how many provider tables are read concurrently.
func WithWorkers(n int) Option {
	return func(l *Loader) {
		if n > 0 {
			l.workers = n
		}
	}
}

// WithLogger sets a custom logger for the loader.
func WithLogger(log logger.Logger) Option {
	return func(l *Loader) {
		if log != nil {
			l.logger = log
		}
	}
}

// NewLoader returns a Loader rooted at dataDir.
func NewLoader(dataDir string, opts ...Option) *Loader {
	l := &Loader{
		dataDir: dataDir,
		workers: runtime.NumCPU(),
		logger:  logger.Nop(),
	}
	for _, opt := range opts {
		opt(l)
	}
	return l
}
