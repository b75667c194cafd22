package model

import "github.com/okian/draftboard/internal/domain/identity"

// ProviderRow is one player's raw statistics from one data source.
type ProviderRow struct {
	identity.Key
	Stats StatLine
}

// ScoredRow is a ProviderRow with its per-provider fantasy points and rank.
type ScoredRow struct {
	ProviderRow
	Points float64
	Rank   int
}

// ProviderTable is one provider's scored projections for a season.
type ProviderTable struct {
	Provider string
	// Supplied marks statistics the provider's table carried a column for.
	Supplied [NumStats]bool
	Rows     []ScoredRow
}

// ProviderScore is a player's points and rank from one provider.
// Present is false when the provider had no row for the player.
type ProviderScore struct {
	Present bool
	Points  float64
	Rank    int
}

// PlayerRecord is the merged, per-player unit of the middle pipeline stages.
type PlayerRecord struct {
	identity.Key

	// Scores is aligned with Frame.Providers.
	Scores          []ProviderScore
	Stats           StatLine
	ProjectedPoints float64
	ADP             Optional

	VORP       float64
	Volatility float64
	Tier       int
}

// Frame is the merged player set together with the provider vocabulary its
// records refer to.
type Frame struct {
	Providers []string
	// StatPresent marks statistics supplied by at least one provider.
	StatPresent [NumStats]bool
	Records     []PlayerRecord
}

// Positions returns the distinct positions in record order.
func (f *Frame) Positions() []string {
	seen := make(map[string]bool)
	var out []string
	for i := range f.Records {
		p := f.Records[i].Pos
		if !seen[p] {
			seen[p] = true
			out = append(out, p)
		}
	}
	return out
}

// IndicesByPosition groups record indices by position, preserving record order.
func (f *Frame) IndicesByPosition() map[string][]int {
	out := make(map[string][]int)
	for i := range f.Records {
		p := f.Records[i].Pos
		out[p] = append(out[p], i)
	}
	return out
}
