// Package valuation computes value over replacement and cross-provider
// volatility for a merged player frame.
package valuation

import (
	"sort"

	"github.com/okian/draftboard/internal/domain/model"
)

// DefaultReplacementDepth returns the 0-based replacement index per position.
func DefaultReplacementDepth() map[string]int {
	return map[string]int{"QB": 20, "RB": 40, "WR": 40, "TE": 15}
}

// Baselines returns the replacement-level score for every position with a
// configured depth. A position with no more than depth players has baseline 0.
func Baselines(frame *model.Frame, depths map[string]int) map[string]float64 {
	out := make(map[string]float64, len(depths))
	for pos, idx := range frame.IndicesByPosition() {
		d, ok := depths[pos]
		if !ok {
			continue
		}
		if d < 0 || len(idx) <= d {
			out[pos] = 0
			continue
		}
		points := make([]float64, len(idx))
		for i, ri := range idx {
			points[i] = frame.Records[ri].ProjectedPoints
		}
		sort.SliceStable(points, func(a, b int) bool { return points[a] > points[b] })
		out[pos] = points[d]
	}
	return out
}

// AssignVORP sets VORP on every record and returns the baselines used.
func AssignVORP(frame *model.Frame, depths map[string]int) map[string]float64 {
	baselines := Baselines(frame, depths)
	for i := range frame.Records {
		r := &frame.Records[i]
		r.VORP = model.Round2(r.ProjectedPoints - baselines[r.Pos])
	}
	return baselines
}
