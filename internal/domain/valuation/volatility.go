package valuation

import (
	"math"

	"github.com/okian/draftboard/internal/domain/model"
)

// Volatility scale bounds. Undefined spreads take the midpoint.
const (
	MinVolatility     = 1.0
	MaxVolatility     = 10.0
	NeutralVolatility = 5.0
)

// RankSpread returns the sample standard deviation of the present provider
// ranks. ok is false with fewer than two ranks.
func RankSpread(scores []model.ProviderScore) (float64, bool) {
	var ranks []float64
	for _, sc := range scores {
		if sc.Present {
			ranks = append(ranks, float64(sc.Rank))
		}
	}
	n := len(ranks)
	if n < 2 {
		return 0, false
	}
	var mean float64
	for _, r := range ranks {
		mean += r
	}
	mean /= float64(n)
	var ss float64
	for _, r := range ranks {
		ss += (r - mean) * (r - mean)
	}
	return math.Sqrt(ss / float64(n-1)), true
}

// AssignVolatility rescales every player's rank spread to [1, 10] using the
// global minimum and maximum over the whole frame.
func AssignVolatility(frame *model.Frame) {
	spreads := make([]float64, len(frame.Records))
	defined := make([]bool, len(frame.Records))
	lo, hi := math.Inf(1), math.Inf(-1)
	for i := range frame.Records {
		s, ok := RankSpread(frame.Records[i].Scores)
		spreads[i], defined[i] = s, ok
		if ok {
			lo = math.Min(lo, s)
			hi = math.Max(hi, s)
		}
	}

	for i := range frame.Records {
		r := &frame.Records[i]
		if !defined[i] || hi <= lo {
			r.Volatility = NeutralVolatility
			continue
		}
		v := MinVolatility + (MaxVolatility-MinVolatility)*(spreads[i]-lo)/(hi-lo)
		r.Volatility = math.Max(MinVolatility, math.Min(MaxVolatility, v))
	}
}
