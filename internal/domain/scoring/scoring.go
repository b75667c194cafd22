// Package scoring turns provider statistics into fantasy points and ranks.
package scoring

import (
	"sort"

	"github.com/okian/draftboard/internal/domain/model"
)

// Reception weight thresholds that select the ADP scoring variant.
const (
	fullPPRThreshold = 1.0
	halfPPRThreshold = 0.25
)

// ADP scoring variants, as they appear in ADP file names.
const (
	VariantPPR      = "PPR"
	VariantHalfPPR  = "HalfPPR"
	VariantStandard = "Standard"
)

// DefaultWeights returns the built-in per-unit weights keyed by stat name.
func DefaultWeights() map[string]float64 {
	return map[string]float64{
		"pass_yds":      0.04,
		"pass_tds":      4.0,
		"pass_ints":     -2.0,
		"rush_yds":      0.1,
		"rush_tds":      6.0,
		"receptions":    0.5,
		"reception_yds": 0.1,
		"reception_tds": 6.0,
	}
}

// Option applies a configuration option to a Config under construction.
type Option func(*Config)

// WithOverrides replaces the weights of known stats. Unknown keys are ignored.
func WithOverrides(weights map[string]float64) Option {
	return func(c *Config) {
		for key, w := range weights {
			if s, ok := model.StatByKey(key); ok {
				c.weights[s] = w
				c.overridden[s] = true
			}
		}
	}
}

// WithADPReceptionWeight sets the reception weight used only to pick the ADP
// variant. Points are unaffected.
func WithADPReceptionWeight(w float64) Option {
	return func(c *Config) {
		c.adpReception = model.Some(w)
	}
}

// Config is the immutable scoring table. Build it once with New and pass it
// by value; it has no setters.
type Config struct {
	weights      [model.NumStats]float64
	overridden   [model.NumStats]bool
	adpReception model.Optional
}

// New builds a Config from the defaults and the given options, applied in order.
func New(opts ...Option) Config {
	c := Config{}
	for key, w := range DefaultWeights() {
		s, _ := model.StatByKey(key)
		c.weights[s] = w
	}
	for _, opt := range opts {
		opt(&c)
	}
	return c
}

// Weight returns the per-unit weight of s.
func (c Config) Weight(s model.Stat) float64 { return c.weights[s] }

// Overrides returns how many weights were set by WithOverrides.
func (c Config) Overrides() int {
	n := 0
	for _, o := range c.overridden {
		if o {
			n++
		}
	}
	return n
}

// Weights returns a copy of the table keyed by stat name.
func (c Config) Weights() map[string]float64 {
	out := make(map[string]float64, model.NumStats)
	for _, s := range model.Stats {
		out[s.Key()] = c.weights[s]
	}
	return out
}

// ADPVariant selects the ADP file variant matching the reception weight, or
// the weight set by WithADPReceptionWeight.
func (c Config) ADPVariant() string {
	w := c.adpReception.Or(c.weights[model.Receptions])
	switch {
	case w >= fullPPRThreshold:
		return VariantPPR
	case w >= halfPPRThreshold:
		return VariantHalfPPR
	default:
		return VariantStandard
	}
}

// Points computes Σ(stat × weight) with absent stats counted as zero,
// rounded to two decimals.
func (c Config) Points(line model.StatLine) float64 {
	var total float64
	for _, s := range model.Stats {
		total += line[s].Or(0) * c.weights[s]
	}
	return model.Round2(total)
}

// CompetitionRank ranks scores descending. Tied scores share the minimum
// ordinal of their group ("1224" ranking).
func CompetitionRank(scores []float64) []int {
	idx := make([]int, len(scores))
	for i := range idx {
		idx[i] = i
	}
	sort.SliceStable(idx, func(a, b int) bool { return scores[idx[a]] > scores[idx[b]] })

	ranks := make([]int, len(scores))
	for pos, i := range idx {
		if pos > 0 && scores[i] == scores[idx[pos-1]] {
			ranks[i] = ranks[idx[pos-1]]
			continue
		}
		ranks[i] = pos + 1
	}
	return ranks
}

// ScoreTable computes points and rank for every row of one provider.
func (c Config) ScoreTable(provider string, supplied [model.NumStats]bool, rows []model.ProviderRow) model.ProviderTable {
	points := make([]float64, len(rows))
	for i := range rows {
		points[i] = c.Points(rows[i].Stats)
	}
	ranks := CompetitionRank(points)

	scored := make([]model.ScoredRow, len(rows))
	for i := range rows {
		scored[i] = model.ScoredRow{ProviderRow: rows[i], Points: points[i], Rank: ranks[i]}
	}
	return model.ProviderTable{Provider: provider, Supplied: supplied, Rows: scored}
}
