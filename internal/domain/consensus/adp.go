package consensus

import "github.com/okian/draftboard/internal/domain/model"

// JoinADP attaches ADP to records by canonical player name. Records without
// an entry keep an absent ADP. It returns the number of matched records.
func JoinADP(frame *model.Frame, adp map[string]float64) int {
	matched := 0
	for i := range frame.Records {
		r := &frame.Records[i]
		if v, ok := adp[r.Player]; ok {
			r.ADP = model.Some(v)
			matched++
			continue
		}
		r.ADP = model.None()
	}
	return matched
}
