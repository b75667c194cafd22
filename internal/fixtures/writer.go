package fixtures

import (
	"context"
	"encoding/csv"
	"fmt"
	"math/rand"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"strings"

	"github.com/okian/draftboard/internal/domain/model"
	"github.com/okian/draftboard/pkg/logger"
)

// Header conventions rotated across providers.
const (
	styleKeys = iota
	styleComposite
	styleColumns
	numStyles
)

// Generate writes the season below cfg.DataDir.
func Generate(ctx context.Context, cfg Config, log logger.Logger) (*Summary, error) {
	if err := cfg.validate(); err != nil {
		return nil, err
	}
	if log == nil {
		log = logger.Nop()
	}
	rng := rand.New(rand.NewSource(cfg.Seed)) //nolint:gosec // reproducible fixtures
	players := generatePlayers(rng, cfg.Players)

	projDir := filepath.Join(cfg.DataDir, "raw", "projections")
	adpDir := filepath.Join(cfg.DataDir, "raw", "adp")
	for _, dir := range []string{projDir, adpDir} {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("create %s: %w", dir, err)
		}
	}

	sum := &Summary{Players: len(players)}
	for i, provider := range cfg.Providers {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		path := filepath.Join(projDir, fmt.Sprintf("%s-Projections-%d.csv", provider, cfg.Season))
		header, rows := projectionRows(rng, players, i%numStyles)
		if err := writeCSV(path, header, rows); err != nil {
			return nil, err
		}
		log.Info(ctx, "projection fixture written",
			logger.String("provider", provider), logger.String("path", path), logger.Int("rows", len(rows)))
		sum.ProjectionFiles = append(sum.ProjectionFiles, path)
	}

	name := fmt.Sprintf("FantasyPros-%d", cfg.Season)
	if cfg.Variant != "" {
		name += "-" + cfg.Variant
	}
	sum.ADPFile = filepath.Join(adpDir, name+".csv")
	header, rows := adpRows(rng, players)
	if err := writeCSV(sum.ADPFile, header, rows); err != nil {
		return nil, err
	}
	log.Info(ctx, "adp fixture written", logger.String("path", sum.ADPFile), logger.Int("rows", len(rows)))
	return sum, nil
}

func projectionRows(rng *rand.Rand, players []player, style int) ([]string, [][]string) {
	var header []string
	stats := model.Stats[:]
	switch style {
	case styleKeys:
		header = []string{"player", "team", "pos"}
		for _, s := range stats {
			header = append(header, s.Key())
		}
	case styleComposite:
		header = []string{"name", "key", "team", "pos"}
		for _, s := range stats {
			header = append(header, s.Key())
		}
	default:
		// this convention carries no interceptions column
		stats = nil
		header = []string{"Player", "Team", "Pos"}
		for _, s := range model.Stats {
			if s == model.PassInts {
				continue
			}
			stats = append(stats, s)
			header = append(header, s.Column())
		}
	}

	rows := make([][]string, 0, len(players))
	for _, p := range players {
		if rng.Float64() < providerMissRate {
			continue
		}
		line := perturb(rng, p.stats)
		var row []string
		switch style {
		case styleComposite:
			team, pos := p.team, p.pos
			if rng.Float64() < 0.1 {
				team, pos = "", ""
			}
			row = []string{p.name, compositeKey(p), team, pos}
		default:
			row = []string{p.name, p.team, p.pos}
		}
		for _, s := range stats {
			row = append(row, line[s].String())
		}
		rows = append(rows, row)
	}
	return header, rows
}

func adpRows(rng *rand.Rand, players []player) ([]string, [][]string) {
	adp := adpOrder(rng, players)
	rows := make([][]string, 0, len(adp))
	for i, p := range players {
		v, ok := adp[i]
		if !ok {
			continue
		}
		rows = append(rows, []string{"", p.name, p.team, p.pos, strconv.FormatFloat(v, 'f', 1, 64)})
	}
	// Rank follows the ADP order.
	sortByADP(rows)
	for i := range rows {
		rows[i][0] = strconv.Itoa(i + 1)
	}
	return []string{"Rank", "Player", "Team", "POS", "AVG"}, rows
}

func sortByADP(rows [][]string) {
	val := func(r []string) float64 {
		f, _ := strconv.ParseFloat(r[4], 64)
		return f
	}
	sort.SliceStable(rows, func(a, b int) bool { return val(rows[a]) < val(rows[b]) })
}

func compositeKey(p player) string {
	parts := strings.Fields(p.name)
	last := strings.ToLower(parts[len(parts)-1])
	if len(parts) > 2 {
		last = strings.ToLower(parts[1])
	}
	return last + "_" + p.pos + "_" + p.team
}

func writeCSV(path string, header []string, rows [][]string) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	w := csv.NewWriter(f)
	if err := w.Write(header); err != nil {
		_ = f.Close()
		return fmt.Errorf("write %s: %w", path, err)
	}
	if err := w.WriteAll(rows); err != nil {
		_ = f.Close()
		return fmt.Errorf("write %s: %w", path, err)
	}
	return f.Close()
}
