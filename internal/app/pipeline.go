// Package service sequences the draft board pipeline: ingestion and scoring,
// consensus merge, ADP join, value metrics, tiers and board assembly.
package service

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/google/uuid"

	"github.com/okian/draftboard/internal/adapters/source"
	"github.com/okian/draftboard/internal/config"
	"github.com/okian/draftboard/internal/domain/board"
	"github.com/okian/draftboard/internal/domain/consensus"
	"github.com/okian/draftboard/internal/domain/model"
	"github.com/okian/draftboard/internal/domain/scoring"
	"github.com/okian/draftboard/internal/domain/tiers"
	"github.com/okian/draftboard/internal/domain/valuation"
	"github.com/okian/draftboard/pkg/logger"
	"github.com/okian/draftboard/pkg/metrics"
)

// Stage names used in logs and metrics.
const (
	StageIngest     = "ingest"
	StageADP        = "adp"
	StageMerge      = "merge"
	StageJoin       = "join"
	StageVORP       = "vorp"
	StageVolatility = "volatility"
	StageTiers      = "tiers"
	StageAssemble   = "assemble"
)

// Loader reads the season inputs.
type Loader interface {
	LoadProjections(ctx context.Context, season int, sc scoring.Config) ([]model.ProviderTable, error)
	LoadADP(ctx context.Context, season int, variant string) (*source.ADPTable, error)
}

// Result is the outcome of one pipeline run.
type Result struct {
	RunID     string
	Board     *board.Board
	Baselines map[string]float64
	Tiers     []tiers.Summary
	ADPPath   string
	ADPMatch  int
	Duration  time.Duration
}

// Pipeline runs every stage in order over one season.
type Pipeline struct {
	loader     Loader
	scoring    scoring.Config
	depths     map[string]int
	tierCounts map[string]int
	clusterer  *tiers.Clusterer
	logger     logger.Logger
}

// Option applies a configuration option to the Pipeline.
type Option func(*Pipeline)

// WithScoring sets the scoring table.
func WithScoring(sc scoring.Config) Option {
	return func(p *Pipeline) {
		p.scoring = sc
	}
}

// WithReplacementDepth sets the VORP replacement index per position.
func WithReplacementDepth(depths map[string]int) Option {
	return func(p *Pipeline) {
		if depths != nil {
			p.depths = depths
		}
	}
}

// WithTierCounts sets the number of tiers per position.
func WithTierCounts(counts map[string]int) Option {
	return func(p *Pipeline) {
		if counts != nil {
			p.tierCounts = counts
		}
	}
}

// WithClusterer sets the tier clusterer.
func WithClusterer(c *tiers.Clusterer) Option {
	return func(p *Pipeline) {
		if c != nil {
			p.clusterer = c
		}
	}
}

// WithLogger sets a custom logger for the pipeline.
func WithLogger(log logger.Logger) Option {
	return func(p *Pipeline) {
		if log != nil {
			p.logger = log
		}
	}
}

// New constructs a Pipeline with default scoring, depths and tier counts.
func New(loader Loader, opts ...Option) *Pipeline {
	p := &Pipeline{
		loader:     loader,
		scoring:    scoring.New(),
		depths:     valuation.DefaultReplacementDepth(),
		tierCounts: tiers.DefaultCounts(),
		clusterer:  tiers.New(),
		logger:     logger.Nop(),
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// FromConfig wires a Pipeline and its source loader from cfg.
func FromConfig(ctx context.Context, cfg *config.Config, log logger.Logger) *Pipeline {
	sc := cfg.ScoringConfig(ctx, log)
	metrics.UpdateScoringOverrides(sc.Overrides())

	loader := source.NewLoader(cfg.DataDir,
		source.WithWorkers(cfg.Workers),
		source.WithLogger(log.Named("source")),
	)
	return New(loader,
		WithScoring(sc),
		WithReplacementDepth(cfg.ReplacementDepth),
		WithTierCounts(cfg.TierCounts),
		WithClusterer(tiers.New(
			tiers.WithSeed(cfg.ClusterSeed),
			tiers.WithRestarts(cfg.ClusterRestarts),
			tiers.WithMaxIter(cfg.ClusterMaxIter),
			tiers.WithTolerance(cfg.ClusterTolerance),
		)),
		WithLogger(log),
	)
}

// Run executes the pipeline for season and returns the assembled board.
func (p *Pipeline) Run(ctx context.Context, season int) (*Result, error) {
	start := time.Now()
	res := &Result{RunID: uuid.NewString()}
	log := p.logger.Named("pipeline").With(logger.String("run_id", res.RunID), logger.Int("season", season))
	log.Info(ctx, "pipeline started", logger.String("adp_variant", p.scoring.ADPVariant()))

	var (
		tables []model.ProviderTable
		adp    *source.ADPTable
		frame  *model.Frame
	)

	stages := []struct {
		name string
		fn   func() error
	}{
		{StageIngest, func() (err error) {
			tables, err = p.loader.LoadProjections(ctx, season, p.scoring)
			if err == nil {
				log.Info(ctx, "providers loaded", logger.Int("providers", len(tables)))
			}
			return err
		}},
		{StageADP, func() (err error) {
			adp, err = p.loader.LoadADP(ctx, season, p.scoring.ADPVariant())
			return err
		}},
		{StageMerge, func() error {
			frame = consensus.Merge(tables)
			log.Info(ctx, "providers merged", logger.Int("players", len(frame.Records)))
			return nil
		}},
		{StageJoin, func() error {
			res.ADPPath = adp.Path
			res.ADPMatch = consensus.JoinADP(frame, adp.Values)
			metrics.UpdateADP(adp.Rows, res.ADPMatch)
			log.Info(ctx, "adp joined", logger.Int("matched", res.ADPMatch), logger.Int("players", len(frame.Records)))
			return nil
		}},
		{StageVORP, func() error {
			res.Baselines = valuation.AssignVORP(frame, p.depths)
			for pos, b := range res.Baselines {
				log.Debug(ctx, "replacement baseline", logger.String("pos", pos), logger.Float64("points", b))
			}
			return nil
		}},
		{StageVolatility, func() error {
			valuation.AssignVolatility(frame)
			return nil
		}},
		{StageTiers, func() error {
			res.Tiers = p.clusterer.Assign(frame, p.tierCounts)
			for _, s := range res.Tiers {
				metrics.UpdateTierInertia(s.Pos, s.Inertia)
				for i, n := range s.Sizes {
					metrics.UpdateTierPlayers(s.Pos, strconv.Itoa(i+1), n)
				}
				log.Debug(ctx, "position clustered",
					logger.String("pos", s.Pos), logger.Int("k", s.K), logger.Float64("inertia", s.Inertia),
					logger.Int("iterations", s.Iterations))
			}
			return nil
		}},
		{StageAssemble, func() error {
			res.Board = board.Assemble(season, frame)
			metrics.UpdatePlayersOutput(len(res.Board.Rows))
			return nil
		}},
	}
	for _, st := range stages {
		if err := p.stage(ctx, log, st.name, st.fn); err != nil {
			metrics.RecordRun("error")
			return nil, err
		}
	}

	res.Duration = time.Since(start)
	metrics.RecordRun("ok")
	log.Info(ctx, "pipeline finished",
		logger.Int("rows", len(res.Board.Rows)), logger.Duration("duration", res.Duration))
	return res, nil
}

// stage times fn and reports failures with their error kind.
func (p *Pipeline) stage(ctx context.Context, log logger.Logger, name string, fn func() error) error {
	if err := ctx.Err(); err != nil {
		return fmt.Errorf("%s: %w", name, err)
	}
	start := time.Now()
	err := fn()
	metrics.RecordStageDuration(name, float64(time.Since(start).Microseconds())/1000)
	if err != nil {
		metrics.RecordStageError(name, ErrorKind(err))
		log.Error(ctx, "stage failed", logger.String("stage", name), logger.Error(err))
		return fmt.Errorf("%s: %w", name, err)
	}
	return nil
}

// ErrorKind classifies err for metrics labels.
func ErrorKind(err error) string {
	switch {
	case errors.Is(err, source.ErrSourceNotFound):
		return "source_not_found"
	case errors.Is(err, source.ErrUnrecognizedSchema):
		return "unrecognized_schema"
	case errors.Is(err, source.ErrADPColumnNotFound):
		return "adp_column_not_found"
	case errors.Is(err, source.ErrReadTable):
		return "read_table"
	case errors.Is(err, context.Canceled), errors.Is(err, context.DeadlineExceeded):
		return "canceled"
	default:
		return "other"
	}
}
