// Package fixtures writes a deterministic synthetic season: one projection
// table per provider with provider-specific noise and header conventions,
// plus one ADP table.
package fixtures

import "errors"

// ErrInvalidConfig is returned for unusable generator settings.
var ErrInvalidConfig = errors.New("invalid fixtures config")

// Config holds generator settings.
type Config struct {
	DataDir   string   // Root data directory; files go below raw/
	Season    int      // Season encoded in file names
	Players   int      // Number of distinct players
	Providers []string // Provider names, one projection table each
	Seed      int64    // Random seed; equal seeds give identical files
	// Variant selects the ADP file suffix (PPR, HalfPPR, Standard). Empty
	// writes the generic FantasyPros-<season> table.
	Variant string
}

// DefaultConfig returns a small three-provider season.
func DefaultConfig() Config {
	return Config{
		DataDir:   "data",
		Season:    2025,
		Players:   300,
		Providers: []string{"CBS", "ESPN", "NFL"},
		Seed:      42,
	}
}

// Summary describes what Generate wrote.
type Summary struct {
	Players         int
	ProjectionFiles []string
	ADPFile         string
}

func (c Config) validate() error {
	switch {
	case c.Players <= 0:
		return errors.Join(ErrInvalidConfig, errors.New("players must be positive"))
	case len(c.Providers) == 0:
		return errors.Join(ErrInvalidConfig, errors.New("at least one provider is required"))
	case c.Season <= 0:
		return errors.Join(ErrInvalidConfig, errors.New("season must be positive"))
	}
	return nil
}
