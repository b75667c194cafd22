package main

import (
	"fmt"
	"strconv"
)

const (
	minSeason = 2000
	maxSeason = 2100
)

// resolveSeason parses an optional positional season, falling back to def.
func resolveSeason(args []string, def int) (int, error) {
	season := def
	if len(args) > 0 {
		v, err := strconv.Atoi(args[0])
		if err != nil {
			return 0, fmt.Errorf("%w: %q", ErrInvalidSeason, args[0])
		}
		season = v
	}
	if season <= minSeason || season >= maxSeason {
		return 0, fmt.Errorf("%w: %d not in (%d, %d)", ErrInvalidSeason, season, minSeason, maxSeason)
	}
	return season, nil
}
