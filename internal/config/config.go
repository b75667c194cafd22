// Package config defines the draft board configuration and its loaders.
//
// Conventions:
// - New returns a Config populated with defaults.
// - Load layers a YAML file and the environment on top of New.
// - Errors are wrapped with this package's sentinels.
package config

import (
	"runtime"
	"time"

	"github.com/okian/draftboard/internal/domain/tiers"
	"github.com/okian/draftboard/internal/domain/valuation"
)

// Config contains process configuration.
type Config struct {
	// LogLevel controls verbosity: debug, info, warn, error.
	LogLevel string `koanf:"log_level" validate:"oneof=debug info warn warning error"`
	// LogFormat selects the log handler: text or json.
	LogFormat string `koanf:"log_format" validate:"oneof=text json"`

	// DataDir holds raw/projections and raw/adp.
	DataDir string `koanf:"data_dir" validate:"required"`
	// OutputDir receives Projections-<season>.{csv,json,xlsx}.
	OutputDir string `koanf:"output_dir" validate:"required"`
	// ScoringFile is an optional flat JSON object of stat weights.
	ScoringFile string `koanf:"scoring_file"`

	// Season is used when no season is given on the command line.
	Season int `koanf:"season" validate:"gt=2000,lt=2100"`

	// Scoring overrides default stat weights, keyed by stat name.
	Scoring map[string]float64 `koanf:"scoring"`
	// ReplacementDepth is the 0-based replacement index per position.
	ReplacementDepth map[string]int `koanf:"replacement_depth" validate:"dive,gte=0"`
	// TierCounts is the number of tiers per position.
	TierCounts map[string]int `koanf:"tier_counts" validate:"dive,gte=1"`

	ClusterSeed     int64 `koanf:"cluster_seed"`
	ClusterRestarts int   `koanf:"cluster_restarts" validate:"gte=1"`
	ClusterMaxIter  int   `koanf:"cluster_max_iter" validate:"gte=1"`
	// ClusterTolerance stops Lloyd iterations once the centre shift falls
	// below this fraction of the mean feature variance.
	ClusterTolerance float64 `koanf:"cluster_tolerance" validate:"gte=0"`

	// Workers bounds concurrent provider table reads.
	Workers int `koanf:"workers" validate:"gte=1"`

	WriteXLSX   bool   `koanf:"write_xlsx"`
	MetricsFile string `koanf:"metrics_file"`

	// Addr configures the HTTP listen address of the serve command.
	Addr string `koanf:"addr" validate:"required"`
	// MaxBoardLimit caps GET /board?limit.
	MaxBoardLimit int `koanf:"max_board_limit" validate:"gte=1"`
}

// New creates a Config with defaults.
func New() *Config {
	return &Config{
		LogLevel:         "info",
		LogFormat:        "text",
		DataDir:          "data",
		OutputDir:        "data/processed",
		ScoringFile:      "data/scoring.json",
		Season:           time.Now().Year(),
		Scoring:          map[string]float64{},
		ReplacementDepth: valuation.DefaultReplacementDepth(),
		TierCounts:       tiers.DefaultCounts(),
		ClusterSeed:      tiers.DefaultSeed,
		ClusterRestarts:  tiers.DefaultRestarts,
		ClusterMaxIter:   tiers.DefaultMaxIter,
		ClusterTolerance: tiers.DefaultTolerance,
		Workers:          runtime.NumCPU(),
		Addr:             ":9080",
		MaxBoardLimit:    500,
	}
}
