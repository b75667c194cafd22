package config

import (
	"context"
	"errors"
	"io/fs"
	"os"
	"strconv"
	"strings"

	"github.com/knadh/koanf/parsers/json"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"

	"github.com/okian/draftboard/internal/domain/model"
	"github.com/okian/draftboard/internal/domain/scoring"
	"github.com/okian/draftboard/pkg/logger"
)

// adpReceptionKey is a reception weight that only selects the ADP variant.
// It never changes points.
const adpReceptionKey = "rec"

// ScoringConfig builds the immutable scoring table: defaults, then the
// scoring map of the config, then the scoring file. A missing file is not an
// error. An unparseable file is logged and ignored; so are individual
// non-numeric weights. Unknown stat names are ignored, except "rec", which
// picks the ADP variant when no receptions weight is given.
func (c *Config) ScoringConfig(ctx context.Context, log logger.Logger) scoring.Config {
	weights := make(map[string]float64, len(c.Scoring))
	for k, v := range c.Scoring {
		weights[strings.ToLower(strings.TrimSpace(k))] = v
	}
	for k, v := range readScoringFile(ctx, c.ScoringFile, log) {
		weights[k] = v
	}

	opts := []scoring.Option{scoring.WithOverrides(weights)}
	rec, hasRec := weights[adpReceptionKey]
	_, hasReceptions := weights[model.Receptions.Key()]
	if hasRec && !hasReceptions {
		opts = append(opts, scoring.WithADPReceptionWeight(rec))
	}
	for k := range weights {
		if _, ok := model.StatByKey(k); !ok && k != adpReceptionKey {
			log.Debug(ctx, "ignoring unknown scoring key", logger.String("key", k))
		}
	}
	return scoring.New(opts...)
}

func readScoringFile(ctx context.Context, path string, log logger.Logger) map[string]float64 {
	if path == "" {
		return nil
	}
	if _, err := os.Stat(path); errors.Is(err, fs.ErrNotExist) {
		log.Debug(ctx, "no scoring file", logger.String("path", path))
		return nil
	}

	k := koanf.New(".")
	if err := k.Load(file.Provider(path), json.Parser()); err != nil {
		log.Warn(ctx, "scoring file could not be parsed; using default scoring weights",
			logger.String("path", path), logger.Error(err))
		return nil
	}

	out := make(map[string]float64)
	for key, raw := range k.All() {
		w, ok := toWeight(raw)
		if !ok {
			log.Warn(ctx, "skipping non-numeric scoring weight",
				logger.String("path", path), logger.String("key", key), logger.Any("value", raw))
			continue
		}
		out[strings.ToLower(strings.TrimSpace(key))] = w
	}
	log.Info(ctx, "scoring file loaded", logger.String("path", path), logger.Int("weights", len(out)))
	return out
}

func toWeight(v any) (float64, bool) {
	switch x := v.(type) {
	case float64:
		return x, true
	case int:
		return float64(x), true
	case int64:
		return float64(x), true
	case string:
		f, err := strconv.ParseFloat(strings.TrimSpace(x), 64)
		return f, err == nil
	default:
		return 0, false
	}
}
