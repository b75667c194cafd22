// Package tiers groups same-position players into ordinal value tiers by
// clustering on (VORP, ADP).
package tiers

import (
	"math"
	"sort"

	"github.com/okian/draftboard/internal/domain/model"
)

// Unassigned is the tier of players in positions that are not clustered.
const Unassigned = 0

// DefaultCounts returns the built-in number of tiers per position.
func DefaultCounts() map[string]int {
	return map[string]int{"QB": 8, "RB": 10, "WR": 10, "TE": 7}
}

// Summary describes the clustering of one position.
type Summary struct {
	Pos     string
	K       int
	Players int
	Inertia float64
	// Iterations is the Lloyd iteration count of the best restart.
	Iterations int
	// Sizes[t-1] is the member count of tier t.
	Sizes []int
}

// Assign sets Tier on every record. Positions with a configured count k and
// at least k players get tiers 1..k ordered by mean VORP descending; every
// other player gets Unassigned. Summaries are returned sorted by position
// for clustered positions only.
func (c *Clusterer) Assign(frame *model.Frame, counts map[string]int) []Summary {
	groups := frame.IndicesByPosition()
	positions := frame.Positions()
	sort.Strings(positions)

	var out []Summary
	for _, pos := range positions {
		idx := groups[pos]
		k, ok := counts[pos]
		if !ok || k <= 0 || len(idx) < k {
			for _, ri := range idx {
				frame.Records[ri].Tier = Unassigned
			}
			continue
		}

		features := Standardize(Features(frame, idx))
		res := c.KMeans(features, k)
		tierOf := orderByVORP(frame, idx, res.Labels, k)

		sizes := make([]int, k)
		for i, ri := range idx {
			t := tierOf[res.Labels[i]]
			frame.Records[ri].Tier = t
			sizes[t-1]++
		}
		out = append(out, Summary{Pos: pos, K: k, Players: len(idx), Inertia: res.Inertia, Iterations: res.Iterations, Sizes: sizes})
	}
	return out
}

// Features builds (VORP, ADP) rows for the given records. Missing ADP values
// take the mean of the present ones, or 0 when none is present.
func Features(frame *model.Frame, idx []int) [][]float64 {
	var adpSum float64
	adpN := 0
	for _, ri := range idx {
		if v, ok := frame.Records[ri].ADP.Get(); ok {
			adpSum += v
			adpN++
		}
	}
	fill := 0.0
	if adpN > 0 {
		fill = adpSum / float64(adpN)
	}

	out := make([][]float64, len(idx))
	for i, ri := range idx {
		r := &frame.Records[ri]
		out[i] = []float64{r.VORP, r.ADP.Or(fill)}
	}
	return out
}

// Standardize centres every column and scales it to unit population
// variance. Zero-variance columns are only centred.
func Standardize(rows [][]float64) [][]float64 {
	if len(rows) == 0 {
		return nil
	}
	dim := len(rows[0])
	n := float64(len(rows))
	mean := make([]float64, dim)
	scale := make([]float64, dim)
	for d := 0; d < dim; d++ {
		for _, r := range rows {
			mean[d] += r[d]
		}
		mean[d] /= n
		var v float64
		for _, r := range rows {
			v += (r[d] - mean[d]) * (r[d] - mean[d])
		}
		scale[d] = math.Sqrt(v / n)
		if scale[d] == 0 {
			scale[d] = 1
		}
	}

	out := make([][]float64, len(rows))
	for i, r := range rows {
		out[i] = make([]float64, dim)
		for d := range r {
			out[i][d] = (r[d] - mean[d]) / scale[d]
		}
	}
	return out
}

// orderByVORP maps cluster labels to tiers 1..k by mean VORP descending.
func orderByVORP(frame *model.Frame, idx, labels []int, k int) []int {
	sums := make([]float64, k)
	counts := make([]int, k)
	for i, ri := range idx {
		sums[labels[i]] += frame.Records[ri].VORP
		counts[labels[i]]++
	}
	mean := make([]float64, k)
	order := make([]int, k)
	for j := 0; j < k; j++ {
		order[j] = j
		if counts[j] > 0 {
			mean[j] = sums[j] / float64(counts[j])
		} else {
			mean[j] = math.Inf(-1)
		}
	}
	sort.SliceStable(order, func(a, b int) bool { return mean[order[a]] > mean[order[b]] })

	tierOf := make([]int, k)
	for t, j := range order {
		tierOf[j] = t + 1
	}
	return tierOf
}
