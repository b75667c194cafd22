// Package model contains domain models passed between pipeline stages.
package model

// Stat identifies one of the counting statistics a provider may project.
type Stat int

// The eight counting statistics, in output column order.
const (
	PassYds Stat = iota
	PassTDs
	PassInts
	RushYds
	RushTDs
	Receptions
	ReceptionYds
	ReceptionTDs

	NumStats = 8
)

// Stats lists every statistic in output column order.
var Stats = [NumStats]Stat{PassYds, PassTDs, PassInts, RushYds, RushTDs, Receptions, ReceptionYds, ReceptionTDs}

var statKeys = [NumStats]string{
	"pass_yds", "pass_tds", "pass_ints", "rush_yds", "rush_tds", "receptions", "reception_yds", "reception_tds",
}

var statColumns = [NumStats]string{
	"Pass_Yds", "Pass_TD", "Int", "Rush_Yds", "Rush_TD", "Rec", "Rec_Yds", "Rec_TD",
}

// Key is the scoring-configuration name of the stat, e.g. "pass_yds".
func (s Stat) Key() string {
	if s < 0 || int(s) >= NumStats {
		return ""
	}
	return statKeys[s]
}

// Column is the output column name of the stat, e.g. "Pass_Yds".
func (s Stat) Column() string {
	if s < 0 || int(s) >= NumStats {
		return ""
	}
	return statColumns[s]
}

func (s Stat) String() string { return s.Key() }

// StatByKey resolves a scoring-configuration name.
func StatByKey(key string) (Stat, bool) {
	for i, k := range statKeys {
		if k == key {
			return Stat(i), true
		}
	}
	return 0, false
}
