// Package board assembles the final ranked draft board from an enriched frame.
package board

import (
	"sort"
	"strconv"

	"github.com/okian/draftboard/internal/domain/model"
)

// Fixed leading columns, in output order.
const (
	ColPlayer     = "Player"
	ColTeam       = "Team"
	ColPos        = "Pos"
	ColRank       = "Rank"
	ColVORP       = "VORP"
	ColTier       = "Tier"
	ColVolatility = "Volatility"
	ColADP        = "ADP"
)

// RankColumn returns the output column holding a provider's rank.
func RankColumn(provider string) string { return provider + "_Rank" }

// Row is one player on the board.
type Row struct {
	Player     string         `json:"player"`
	Team       string         `json:"team"`
	Pos        string         `json:"pos"`
	Rank       int            `json:"rank"`
	VORP       float64        `json:"vorp"`
	Tier       int            `json:"tier"`
	Volatility float64        `json:"volatility"`
	ADP        model.Optional `json:"adp"`
	// ProviderRanks is aligned with Board.Providers.
	ProviderRanks []model.Optional `json:"provider_ranks"`
	Stats         model.StatLine   `json:"-"`
}

// Board is the ordered output table.
type Board struct {
	Season    int
	Providers []string
	// Stats lists the statistic columns present in the merged frame.
	Stats []model.Stat
	Rows  []Row
}

// Assemble sorts records by VORP descending, keeping merged order for ties,
// and assigns Rank as the 1-based position.
func Assemble(season int, frame *model.Frame) *Board {
	b := &Board{Season: season, Providers: append([]string(nil), frame.Providers...)}
	for _, s := range model.Stats {
		if frame.StatPresent[s] {
			b.Stats = append(b.Stats, s)
		}
	}

	order := make([]int, len(frame.Records))
	for i := range order {
		order[i] = i
	}
	sort.SliceStable(order, func(a, c int) bool {
		return frame.Records[order[a]].VORP > frame.Records[order[c]].VORP
	})

	b.Rows = make([]Row, len(order))
	for pos, i := range order {
		r := &frame.Records[i]
		ranks := make([]model.Optional, len(frame.Providers))
		for p, sc := range r.Scores {
			if sc.Present {
				ranks[p] = model.Some(float64(sc.Rank))
			}
		}
		b.Rows[pos] = Row{
			Player:        r.Player,
			Team:          r.Team,
			Pos:           r.Pos,
			Rank:          pos + 1,
			VORP:          r.VORP,
			Tier:          r.Tier,
			Volatility:    r.Volatility,
			ADP:           r.ADP,
			ProviderRanks: ranks,
			Stats:         r.Stats,
		}
	}
	return b
}

// Columns returns the output column names in order.
func (b *Board) Columns() []string {
	cols := []string{ColPlayer, ColTeam, ColPos, ColRank, ColVORP, ColTier, ColVolatility, ColADP}
	for _, p := range b.Providers {
		cols = append(cols, RankColumn(p))
	}
	for _, s := range b.Stats {
		cols = append(cols, s.Column())
	}
	return cols
}

// Values returns a row's cells aligned with Columns. Absent values are
// model.Optional and encode as null.
func (b *Board) Values(r *Row) []any {
	out := make([]any, 0, 8+len(b.Providers)+len(b.Stats))
	out = append(out, r.Player, r.Team, r.Pos, r.Rank, r.VORP, r.Tier, r.Volatility, r.ADP)
	for i := range b.Providers {
		out = append(out, r.ProviderRanks[i])
	}
	for _, s := range b.Stats {
		out = append(out, r.Stats[s])
	}
	return out
}

// Cells formats a row's values as text; absent values are empty.
func (b *Board) Cells(r *Row) []string {
	vals := b.Values(r)
	out := make([]string, len(vals))
	for i, v := range vals {
		switch x := v.(type) {
		case string:
			out[i] = x
		case int:
			out[i] = strconv.Itoa(x)
		case float64:
			out[i] = strconv.FormatFloat(x, 'f', -1, 64)
		case model.Optional:
			out[i] = x.String()
		}
	}
	return out
}
