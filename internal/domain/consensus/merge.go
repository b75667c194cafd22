// Package consensus merges per-provider projection tables into one record
// per player.
package consensus

import (
	"sort"

	"github.com/okian/draftboard/internal/domain/identity"
	"github.com/okian/draftboard/internal/domain/model"
)

type accumulator struct {
	record model.PlayerRecord
	stats  [model.NumStats][]model.Optional
}

// Merge outer-joins tables on (player, team, position). A player known to a
// single provider is kept. Each statistic is the mean of the values present
// among the providers that supplied it; Projected_Points is the mean of the
// present per-provider points, rounded to two decimals.
//
// Records are returned in key order, so the result does not depend on the
// order in which tables were ingested beyond Frame.Providers.
func Merge(tables []model.ProviderTable) *model.Frame {
	frame := &model.Frame{Providers: make([]string, len(tables))}
	byKey := make(map[identity.Key]*accumulator)
	var order []*accumulator

	for pi, t := range tables {
		frame.Providers[pi] = t.Provider
		for s := range t.Supplied {
			if t.Supplied[s] {
				frame.StatPresent[s] = true
			}
		}
		for _, row := range t.Rows {
			acc, ok := byKey[row.Key]
			if !ok {
				acc = &accumulator{record: model.PlayerRecord{
					Key:    row.Key,
					Scores: make([]model.ProviderScore, len(tables)),
				}}
				byKey[row.Key] = acc
				order = append(order, acc)
			}
			acc.record.Scores[pi] = model.ProviderScore{Present: true, Points: row.Points, Rank: row.Rank}
			for _, s := range model.Stats {
				if t.Supplied[s] {
					acc.stats[s] = append(acc.stats[s], row.Stats[s])
				}
			}
		}
	}

	frame.Records = make([]model.PlayerRecord, 0, len(order))
	for _, acc := range order {
		rec := acc.record
		for _, s := range model.Stats {
			rec.Stats[s] = model.Mean(acc.stats[s])
		}
		rec.ProjectedPoints = ConsensusPoints(rec.Scores)
		frame.Records = append(frame.Records, rec)
	}
	sort.SliceStable(frame.Records, func(i, j int) bool {
		return frame.Records[i].Key.Less(frame.Records[j].Key)
	})
	return frame
}

// ConsensusPoints averages the present provider points. It is 0 when no
// provider scored the player.
func ConsensusPoints(scores []model.ProviderScore) float64 {
	var sum float64
	n := 0
	for _, sc := range scores {
		if sc.Present {
			sum += sc.Points
			n++
		}
	}
	if n == 0 {
		return 0
	}
	return model.Round2(sum / float64(n))
}
