package fixtures

import (
	"fmt"
	"math"
	"math/rand"
	"sort"

	"github.com/okian/draftboard/internal/domain/model"
)

// Probabilities shaping the generated data.
const (
	providerMissRate = 0.05 // provider omits a player
	adpMissRate      = 0.08 // player absent from ADP
	suffixRate       = 0.04 // name carries a generational suffix
	noiseFraction    = 0.12 // max relative provider disagreement
	adpNoise         = 6.0  // max absolute ADP jitter
)

var firstNames = []string{
	"Aaron", "Amari", "Bijan", "Brandon", "Caleb", "Cooper", "Dak", "Dalton", "DeVonta", "Derrick",
	"Garrett", "George", "Jahmyr", "Jalen", "Jaylen", "Joe", "Jonathan", "Josh", "Justin", "Kenneth",
	"Kyren", "Lamar", "Malik", "Mark", "Nico", "Puka", "Rashee", "Sam", "Tee", "Travis",
}

var lastNames = []string{
	"Adams", "Allen", "Brown", "Chase", "Collins", "Davis", "Evans", "Gibbs", "Hall", "Harris",
	"Hill", "Hurts", "Jackson", "Jefferson", "Jones", "Kelce", "Lamb", "London", "Mixon", "Moore",
	"Nacua", "Olave", "Pitts", "Purdy", "Ridley", "Smith", "Stroud", "Taylor", "Walker", "Williams",
}

var suffixes = []string{"Jr.", "Sr.", "II", "III"}

var teams = []string{
	"ARI", "ATL", "BAL", "BUF", "CAR", "CHI", "CIN", "CLE", "DAL", "DEN", "DET", "GB", "HOU", "IND", "JAX", "KC",
	"LAC", "LAR", "LV", "MIA", "MIN", "NE", "NO", "NYG", "NYJ", "PHI", "PIT", "SEA", "SF", "TB", "TEN", "WAS",
}

// statRange is the season range of one statistic for a position.
type statRange struct {
	stat     model.Stat
	min, max float64
}

type positionProfile struct {
	pos    string
	share  float64
	ranges []statRange
}

var profiles = []positionProfile{
	{pos: "QB", share: 0.14, ranges: []statRange{
		{model.PassYds, 2200, 4900}, {model.PassTDs, 12, 40}, {model.PassInts, 16, 5},
		{model.RushYds, 40, 750}, {model.RushTDs, 0, 7},
	}},
	{pos: "RB", share: 0.30, ranges: []statRange{
		{model.RushYds, 250, 1550}, {model.RushTDs, 1, 15}, {model.Receptions, 8, 80},
		{model.ReceptionYds, 60, 700}, {model.ReceptionTDs, 0, 5},
	}},
	{pos: "WR", share: 0.36, ranges: []statRange{
		{model.Receptions, 18, 120}, {model.ReceptionYds, 220, 1700}, {model.ReceptionTDs, 1, 13},
		{model.RushYds, 0, 90},
	}},
	{pos: "TE", share: 0.13, ranges: []statRange{
		{model.Receptions, 14, 100}, {model.ReceptionYds, 140, 1200}, {model.ReceptionTDs, 1, 11},
	}},
	{pos: "K", share: 0.07},
}

// player is one generated player with its true statistics.
type player struct {
	name  string
	team  string
	pos   string
	stats model.StatLine
	value float64
}

// generatePlayers builds n unique players. Ability is skewed so that few
// players are elite.
func generatePlayers(rng *rand.Rand, n int) []player {
	out := make([]player, 0, n)
	used := make(map[string]bool, n)
	for i := 0; i < n; i++ {
		prof := pickProfile(rng)
		name := uniqueName(rng, used, i)
		ability := math.Pow(rng.Float64(), 1.6)

		p := player{name: name, team: teams[rng.Intn(len(teams))], pos: prof.pos}
		for _, r := range prof.ranges {
			v := r.min + (r.max-r.min)*ability
			p.stats[r.stat] = model.Some(math.Round(v*10) / 10)
		}
		p.value = ability
		out = append(out, p)
	}
	return out
}

func pickProfile(rng *rand.Rand) positionProfile {
	x := rng.Float64()
	for _, prof := range profiles {
		if x < prof.share {
			return prof
		}
		x -= prof.share
	}
	return profiles[len(profiles)-1]
}

func uniqueName(rng *rand.Rand, used map[string]bool, i int) string {
	for attempt := 0; attempt < 8; attempt++ {
		name := firstNames[rng.Intn(len(firstNames))] + " " + lastNames[rng.Intn(len(lastNames))]
		if !used[name] {
			used[name] = true
			if rng.Float64() < suffixRate {
				return name + " " + suffixes[rng.Intn(len(suffixes))]
			}
			return name
		}
	}
	// Synthetic surname keeps the canonical two-token name unique.
	name := fmt.Sprintf("%s Player%d", firstNames[i%len(firstNames)], i)
	used[name] = true
	return name
}

// perturb returns one provider's view of a player's statistics.
func perturb(rng *rand.Rand, stats model.StatLine) model.StatLine {
	var out model.StatLine
	for s, v := range stats {
		x, ok := v.Get()
		if !ok {
			continue
		}
		f := 1 + (rng.Float64()*2-1)*noiseFraction
		out[s] = model.Some(math.Max(0, math.Round(x*f*10)/10))
	}
	return out
}

// adpOrder ranks players by true value with jitter and returns their ADP.
func adpOrder(rng *rand.Rand, players []player) map[int]float64 {
	type entry struct {
		idx   int
		score float64
	}
	entries := make([]entry, 0, len(players))
	for i, p := range players {
		if p.pos == "K" && rng.Float64() < 0.5 {
			continue
		}
		if rng.Float64() < adpMissRate {
			continue
		}
		entries = append(entries, entry{idx: i, score: p.value*float64(len(players)) + rng.Float64()*adpNoise})
	}
	sort.SliceStable(entries, func(a, b int) bool { return entries[a].score > entries[b].score })

	out := make(map[int]float64, len(entries))
	for rank, e := range entries {
		out[e.idx] = math.Round((float64(rank+1)+rng.Float64()*0.9)*10) / 10
	}
	return out
}
