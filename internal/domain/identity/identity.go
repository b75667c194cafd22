// Package identity canonicalizes player identity so rows from different
// sources can be joined.
package identity

import (
	"strings"
)

// suffixes are generational name suffixes dropped before truncation.
var suffixes = map[string]bool{
	"jr": true, "sr": true, "ii": true, "iii": true, "iv": true, "v": true,
}

// Key identifies a player across providers. It is an identity key, not a
// primary key: providers may disagree on team or position for one name.
type Key struct {
	Player string
	Team   string
	Pos    string
}

// NewKey builds a canonical key from raw fields.
func NewKey(player, team, pos string) Key {
	return Key{Player: CanonicalName(player), Team: Code(team), Pos: Code(pos)}
}

// Less orders keys by player, then team, then position.
func (k Key) Less(o Key) bool {
	if k.Player != o.Player {
		return k.Player < o.Player
	}
	if k.Team != o.Team {
		return k.Team < o.Team
	}
	return k.Pos < o.Pos
}

func (k Key) String() string {
	return k.Player + "|" + k.Team + "|" + k.Pos
}

// CanonicalName strips punctuation and generational suffixes and keeps the
// first two name tokens: "Odell Beckham Jr." -> "Odell Beckham".
func CanonicalName(name string) string {
	cleaned := strings.NewReplacer(".", "", ",", "").Replace(name)
	parts := strings.Fields(cleaned)
	for len(parts) > 1 && suffixes[strings.ToLower(parts[len(parts)-1])] {
		parts = parts[:len(parts)-1]
	}
	if len(parts) > 2 {
		parts = parts[:2]
	}
	return strings.Join(parts, " ")
}

// Code normalizes team and position codes.
func Code(s string) string {
	return strings.ToUpper(strings.TrimSpace(s))
}

// ParseComposite recovers position and team from a provider composite key of
// the form "lastname_POSITION_TEAM".
func ParseComposite(key string) (pos, team string, ok bool) {
	parts := strings.Split(strings.TrimSpace(key), "_")
	if len(parts) < 3 {
		return "", "", false
	}
	pos, team = Code(parts[1]), Code(parts[2])
	if pos == "" && team == "" {
		return "", "", false
	}
	return pos, team, true
}
