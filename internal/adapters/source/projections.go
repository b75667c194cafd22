package source

import (
	"context"
	"fmt"
	"path/filepath"
	"sort"
	"strings"

	"golang.org/x/sync/errgroup"

	"github.com/okian/draftboard/internal/domain/identity"
	"github.com/okian/draftboard/internal/domain/model"
	"github.com/okian/draftboard/internal/domain/scoring"
	"github.com/okian/draftboard/pkg/logger"
	"github.com/okian/draftboard/pkg/metrics"
)

// ProviderFile is a discovered projection table.
type ProviderFile struct {
	Provider string
	Path     string
}

// ProjectionsDir returns the directory projection tables are read from.
func (l *Loader) ProjectionsDir() string {
	return filepath.Join(l.dataDir, "raw", "projections")
}

// DiscoverProjections lists "<Provider>-Projections-<season>" tables in file
// name order. When a provider has both a CSV and an XLSX table the CSV wins.
func (l *Loader) DiscoverProjections(ctx context.Context, season int) ([]ProviderFile, error) {
	dir := l.ProjectionsDir()
	var paths []string
	for _, ext := range []string{extCSV, extXLSX} {
		m, err := filepath.Glob(filepath.Join(dir, fmt.Sprintf("*-Projections-%d%s", season, ext)))
		if err != nil {
			return nil, fmt.Errorf("glob projections: %w", err)
		}
		paths = append(paths, m...)
	}
	sort.Slice(paths, func(i, j int) bool { return filepath.Base(paths[i]) < filepath.Base(paths[j]) })

	seen := make(map[string]bool, len(paths))
	files := make([]ProviderFile, 0, len(paths))
	for _, p := range paths {
		provider := strings.SplitN(filepath.Base(p), "-", 2)[0]
		if provider == "" {
			continue
		}
		if seen[provider] {
			l.logger.Warn(ctx, "ignoring extra projection table for provider",
				logger.String("provider", provider), logger.String("path", p))
			continue
		}
		seen[provider] = true
		files = append(files, ProviderFile{Provider: provider, Path: p})
	}
	if len(files) == 0 {
		return nil, fmt.Errorf("%w: no projection tables for %d in %s", ErrSourceNotFound, season, dir)
	}
	return files, nil
}

// LoadProjections discovers, reads and scores every provider table for the
// season. Tables are read concurrently; the result is in discovery order.
func (l *Loader) LoadProjections(ctx context.Context, season int, sc scoring.Config) ([]model.ProviderTable, error) {
	files, err := l.DiscoverProjections(ctx, season)
	if err != nil {
		return nil, err
	}

	tables := make([]model.ProviderTable, len(files))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(l.workers)
	for i, f := range files {
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			t, err := l.loadProvider(gctx, f, sc)
			if err != nil {
				return err
			}
			tables[i] = t
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	metrics.UpdateProvidersLoaded(len(tables))
	return tables, nil
}

func (l *Loader) loadProvider(ctx context.Context, f ProviderFile, sc scoring.Config) (model.ProviderTable, error) {
	t, err := ReadTable(f.Path)
	if err != nil {
		return model.ProviderTable{}, err
	}
	rows, supplied, dupes, err := ParseProjections(t)
	if err != nil {
		return model.ProviderTable{}, fmt.Errorf("provider %s (%s): %w", f.Provider, f.Path, err)
	}
	if dupes > 0 {
		l.logger.Warn(ctx, "dropped duplicate players",
			logger.String("provider", f.Provider), logger.Int("duplicates", dupes))
		metrics.RecordProviderDuplicates(f.Provider, dupes)
	}
	metrics.RecordProviderRows(f.Provider, len(rows))
	l.logger.Debug(ctx, "provider table read",
		logger.String("provider", f.Provider), logger.String("path", f.Path), logger.Int("rows", len(rows)))
	return sc.ScoreTable(f.Provider, supplied, rows), nil
}

// ParseProjections maps a raw table onto provider rows. Rows without a player
// name are skipped. Team and position missing from their columns are taken
// from the composite key when the table has one. Later rows repeating an
// identity are dropped and counted.
func ParseProjections(t *Table) (rows []model.ProviderRow, supplied [model.NumStats]bool, dupes int, err error) {
	sc, err := resolveSchema(t.Header)
	if err != nil {
		return nil, supplied, 0, err
	}
	supplied = sc.supplied()

	seen := identity.NewSeen(len(t.Rows))
	rows = make([]model.ProviderRow, 0, len(t.Rows))
	for r := range t.Rows {
		name := t.Cell(r, sc.player)
		if name == "" {
			continue
		}
		team, pos := t.Cell(r, sc.team), t.Cell(r, sc.pos)
		if team == "" || pos == "" {
			if kp, kt, ok := identity.ParseComposite(t.Cell(r, sc.key)); ok {
				if pos == "" {
					pos = kp
				}
				if team == "" {
					team = kt
				}
			}
		}
		row := model.ProviderRow{Key: identity.NewKey(name, team, pos)}
		if seen.SeenAndRecord(row.Key) {
			dupes++
			continue
		}
		for s, col := range sc.stats {
			if col < 0 {
				continue
			}
			if v, ok := parseNumber(t.Cell(r, col)); ok {
				row.Stats[s] = model.Some(v)
			}
		}
		rows = append(rows, row)
	}
	return rows, supplied, dupes, nil
}
