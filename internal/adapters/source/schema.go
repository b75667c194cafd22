package source

import (
	"math"
	"strconv"
	"strings"

	"github.com/okian/draftboard/internal/domain/model"
)

// Canonical identity fields.
const (
	fieldPlayer = "player"
	fieldTeam   = "team"
	fieldPos    = "pos"
	fieldKey    = "key"
)

// identityAliases maps normalized headers to identity fields.
var identityAliases = map[string]string{
	"name":        fieldPlayer,
	"player":      fieldPlayer,
	"player_name": fieldPlayer,
	"team":        fieldTeam,
	"tm":          fieldTeam,
	"pos":         fieldPos,
	"position":    fieldPos,
	"key":         fieldKey,
}

// statAliases maps normalized headers to statistics. Both the provider keys
// and the output column names are accepted.
var statAliases = func() map[string]model.Stat {
	m := map[string]model.Stat{
		"passing_yds":   model.PassYds,
		"pass_yards":    model.PassYds,
		"passing_tds":   model.PassTDs,
		"interceptions": model.PassInts,
		"rushing_yds":   model.RushYds,
		"rush_yards":    model.RushYds,
		"rushing_tds":   model.RushTDs,
		"receiving_yds": model.ReceptionYds,
		"rec_yards":     model.ReceptionYds,
		"receiving_tds": model.ReceptionTDs,
	}
	for _, s := range model.Stats {
		m[s.Key()] = s
		m[normalizeHeader(s.Column())] = s
	}
	return m
}()

// normalizeHeader lower-cases a header and joins its words with '_'.
func normalizeHeader(h string) string {
	h = strings.TrimPrefix(h, "\ufeff")
	h = strings.ToLower(strings.TrimSpace(h))
	h = strings.NewReplacer("-", " ", ".", " ").Replace(h)
	return strings.Join(strings.Fields(h), "_")
}

// schema holds the column index of every recognized field, -1 when absent.
type schema struct {
	player, team, pos, key int
	stats                  [model.NumStats]int
}

// resolveSchema maps a header row onto the canonical vocabulary. The first
// column matching a field wins. A table without a player column is rejected.
func resolveSchema(header []string) (schema, error) {
	sc := schema{player: -1, team: -1, pos: -1, key: -1}
	for i := range sc.stats {
		sc.stats[i] = -1
	}
	for i, h := range header {
		n := normalizeHeader(h)
		if f, ok := identityAliases[n]; ok {
			switch f {
			case fieldPlayer:
				setFirst(&sc.player, i)
			case fieldTeam:
				setFirst(&sc.team, i)
			case fieldPos:
				setFirst(&sc.pos, i)
			case fieldKey:
				setFirst(&sc.key, i)
			}
			continue
		}
		if s, ok := statAliases[n]; ok {
			setFirst(&sc.stats[s], i)
		}
	}
	if sc.player < 0 {
		return sc, ErrUnrecognizedSchema
	}
	return sc, nil
}

func (sc schema) supplied() [model.NumStats]bool {
	var out [model.NumStats]bool
	for s, col := range sc.stats {
		out[s] = col >= 0
	}
	return out
}

func setFirst(dst *int, i int) {
	if *dst < 0 {
		*dst = i
	}
}

// missingMarkers are cell values that stand for "no value".
var missingMarkers = map[string]bool{
	"": true, "-": true, "--": true, "n/a": true, "na": true, "nan": true, "null": true, "none": true,
}

// parseNumber reads a numeric cell. Thousands separators are accepted; NaN
// and infinities are not values.
func parseNumber(cell string) (float64, bool) {
	cell = strings.ReplaceAll(strings.TrimSpace(cell), ",", "")
	if missingCell(cell) {
		return 0, false
	}
	v, err := strconv.ParseFloat(cell, 64)
	if err != nil || math.IsNaN(v) || math.IsInf(v, 0) {
		return 0, false
	}
	return v, true
}

// missingCell reports whether cell holds a missing-value marker or a
// non-finite number.
func missingCell(cell string) bool {
	cell = strings.ToLower(strings.TrimSpace(cell))
	if missingMarkers[cell] {
		return true
	}
	v, err := strconv.ParseFloat(cell, 64)
	return err == nil && (math.IsNaN(v) || math.IsInf(v, 0))
}
