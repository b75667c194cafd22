package source

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/okian/draftboard/internal/domain/identity"
	"github.com/okian/draftboard/pkg/logger"
)

// adpCandidates are normalized header names holding the ADP value.
var adpCandidates = []string{"adp", "avg", "overall"}

// adpExcluded are numeric columns never used as the ADP fallback.
var adpExcluded = map[string]bool{"rank": true, "bye": true}

// ADPTable is the season's draft-position data keyed by canonical name.
type ADPTable struct {
	Path   string
	Column string
	// Values keeps the first ADP seen for every canonical name.
	Values map[string]float64
	// Rows counts rows with a numeric ADP, duplicates included.
	Rows int
}

// ADPCandidates returns the file stems tried for a season, highest priority
// first, relative to the data directory. variant is one of the scoring
// package's ADP variants.
func ADPCandidates(season int, variant string) []string {
	adp := filepath.Join("raw", "adp")
	return []string{
		filepath.Join(adp, fmt.Sprintf("FantasyPros-%d-%s", season, variant)),
		filepath.Join(adp, fmt.Sprintf("FantasyPros-%d", season)),
		filepath.Join(adp, fmt.Sprintf("FantasyPros-ADP-%d", season)),
		filepath.Join(adp, fmt.Sprintf("FantasyPros_%d_Overall_ADP_Rankings", season)),
		filepath.Join("raw", fmt.Sprintf("FantasyPros_%d_Overall_ADP_Rankings", season)),
	}
}

// DiscoverADP returns the first existing candidate, trying CSV before XLSX
// for every stem.
func (l *Loader) DiscoverADP(season int, variant string) (string, error) {
	for _, stem := range ADPCandidates(season, variant) {
		for _, ext := range []string{extCSV, extXLSX} {
			p := filepath.Join(l.dataDir, stem+ext)
			if st, err := os.Stat(p); err == nil && !st.IsDir() {
				return p, nil
			}
		}
	}
	return "", fmt.Errorf("%w: no ADP table for %d in %s", ErrSourceNotFound, season, filepath.Join(l.dataDir, "raw", "adp"))
}

// LoadADP locates and reads the season's ADP table.
func (l *Loader) LoadADP(ctx context.Context, season int, variant string) (*ADPTable, error) {
	path, err := l.DiscoverADP(season, variant)
	if err != nil {
		return nil, err
	}
	t, err := ReadTable(path)
	if err != nil {
		return nil, err
	}
	adp, err := ParseADP(t)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	adp.Path = path
	l.logger.Info(ctx, "adp table read",
		logger.String("path", path), logger.String("column", adp.Column),
		logger.Int("rows", adp.Rows), logger.Int("players", len(adp.Values)))
	return adp, nil
}

// ParseADP resolves the name and ADP columns and reads every row with a
// numeric ADP.
func ParseADP(t *Table) (*ADPTable, error) {
	sc, err := resolveSchema(t.Header)
	if err != nil {
		return nil, err
	}
	col := adpColumn(t, sc.player)
	if col < 0 {
		return nil, ErrADPColumnNotFound
	}

	out := &ADPTable{Column: t.Header[col], Values: make(map[string]float64, len(t.Rows))}
	for r := range t.Rows {
		v, ok := parseNumber(t.Cell(r, col))
		if !ok {
			continue
		}
		out.Rows++
		name := identity.CanonicalName(t.Cell(r, sc.player))
		if name == "" {
			continue
		}
		if _, dup := out.Values[name]; !dup {
			out.Values[name] = v
		}
	}
	return out, nil
}

// adpColumn finds the ADP column by name, else the first numeric column that
// is neither a rank nor a bye week.
func adpColumn(t *Table, playerCol int) int {
	norm := make([]string, len(t.Header))
	for i, h := range t.Header {
		norm[i] = normalizeHeader(h)
	}
	for _, cand := range adpCandidates {
		for i, n := range norm {
			if n == cand {
				return i
			}
		}
	}
	for i, n := range norm {
		if i == playerCol || adpExcluded[n] {
			continue
		}
		if numericColumn(t, i) {
			return i
		}
	}
	return -1
}

// numericColumn reports whether every non-missing cell parses as a number
// and at least one such cell is present.
func numericColumn(t *Table, c int) bool {
	present := false
	for r := range t.Rows {
		cell := t.Cell(r, c)
		if missingCell(cell) {
			continue
		}
		if _, ok := parseNumber(cell); !ok {
			return false
		}
		present = true
	}
	return present
}
