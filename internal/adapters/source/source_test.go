package source

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"github.com/okian/draftboard/internal/domain/model"
	"github.com/okian/draftboard/internal/domain/scoring"
)

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
}

func writeXLSX(t *testing.T, path string, rows [][]any) {
	t.Helper()
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	f := excelize.NewFile()
	defer func() { _ = f.Close() }()
	sheet := f.GetSheetName(0)
	for i, row := range rows {
		cell, err := excelize.CoordinatesToCellName(1, i+1)
		require.NoError(t, err)
		require.NoError(t, f.SetSheetRow(sheet, cell, &row))
	}
	require.NoError(t, f.SaveAs(path))
}

func TestParseProjections(t *testing.T) {
	tbl := &Table{
		Header: []string{"Name", "key", "Team", "Pos", "pass_yds", "Rush-Yds", "rec", "Extra"},
		Rows: [][]string{
			{"Patrick Mahomes II", "mahomes_QB_KC", "KC", "QB", "4,500", "300", "", "x"},
			{"Bijan Robinson", "robinson_rb_atl", "", "", "", "1200", "50"},
			{"", "ghost_WR_NYJ", "NYJ", "WR", "1", "1", "1"},
			{"Patrick Mahomes", "mahomes_QB_KC", "KC", "QB", "1", "1", "1"},
		},
	}

	rows, supplied, dupes, err := ParseProjections(tbl)
	require.NoError(t, err)
	require.Len(t, rows, 2)
	require.Equal(t, 1, dupes)

	require.Equal(t, "Patrick Mahomes", rows[0].Player)
	require.Equal(t, model.Some(4500), rows[0].Stats[model.PassYds])
	require.False(t, rows[0].Stats[model.Receptions].Valid())

	require.Equal(t, "ATL", rows[1].Team)
	require.Equal(t, "RB", rows[1].Pos)
	require.Equal(t, model.Some(50), rows[1].Stats[model.Receptions])

	require.True(t, supplied[model.PassYds])
	require.True(t, supplied[model.RushYds])
	require.True(t, supplied[model.Receptions])
	require.False(t, supplied[model.PassTDs])
}

func TestParseProjections_UnrecognizedSchema(t *testing.T) {
	_, _, _, err := ParseProjections(&Table{Header: []string{"foo", "pass_yds"}})
	require.ErrorIs(t, err, ErrUnrecognizedSchema)
}

func TestLoadProjections(t *testing.T) {
	dir := t.TempDir()
	proj := filepath.Join(dir, "raw", "projections")
	writeFile(t, filepath.Join(proj, "CBS-Projections-2025.csv"),
		"player,team,pos,rush_yds,rush_tds\nPlayer X,NYG,RB,100,1\nPlayer Y,NYJ,RB,50,0\nPlayer Z,DAL,RB,50,0\n")
	writeFile(t, filepath.Join(proj, "ESPN-Projections-2025.csv"),
		"name,team,pos,receptions\nPlayer X,NYG,RB,10\n")
	writeFile(t, filepath.Join(proj, "ESPN-Projections-2024.csv"), "name,team,pos\nOld Guy,NYG,RB\n")
	writeXLSX(t, filepath.Join(proj, "NFL-Projections-2025.xlsx"), [][]any{
		{"Player", "Team", "Pos", "Rec_Yds"},
		{"Player Y", "NYJ", "RB", 200},
	})
	writeXLSX(t, filepath.Join(proj, "CBS-Projections-2025.xlsx"), [][]any{{"Player"}, {"Ignored"}})

	loader := NewLoader(dir, WithWorkers(2))
	tables, err := loader.LoadProjections(context.Background(), 2025, scoring.New())
	require.NoError(t, err)
	require.Len(t, tables, 3)

	require.Equal(t, "CBS", tables[0].Provider)
	require.Equal(t, "ESPN", tables[1].Provider)
	require.Equal(t, "NFL", tables[2].Provider)

	cbs := tables[0]
	require.Len(t, cbs.Rows, 3)
	require.Equal(t, 16.0, cbs.Rows[0].Points)
	require.Equal(t, []int{1, 2, 2}, []int{cbs.Rows[0].Rank, cbs.Rows[1].Rank, cbs.Rows[2].Rank})
	require.True(t, cbs.Supplied[model.RushTDs])
	require.False(t, cbs.Supplied[model.Receptions])

	require.Equal(t, 5.0, tables[1].Rows[0].Points)
	require.Equal(t, 20.0, tables[2].Rows[0].Points)
}

func TestLoadProjections_NotFound(t *testing.T) {
	loader := NewLoader(t.TempDir())
	_, err := loader.LoadProjections(context.Background(), 2025, scoring.New())
	require.ErrorIs(t, err, ErrSourceNotFound)
}

func TestLoadProjections_BadTableFailsRun(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, filepath.Join(dir, "raw", "projections", "CBS-Projections-2025.csv"), "who,what\na,b\n")

	_, err := NewLoader(dir).LoadProjections(context.Background(), 2025, scoring.New())
	require.ErrorIs(t, err, ErrUnrecognizedSchema)
	require.True(t, strings.Contains(err.Error(), "CBS"))
}

func TestLoadADP(t *testing.T) {
	ctx := context.Background()

	t.Run("variant file wins", func(t *testing.T) {
		dir := t.TempDir()
		writeFile(t, filepath.Join(dir, "raw", "adp", "FantasyPros-2025-PPR.csv"),
			"Rank,Player,Team,POS,AVG\n1,Ja'Marr Chase,CIN,WR1,1.5\n2,Bijan Robinson Jr.,ATL,RB1,2.1\n3,Ja'Marr Chase,CIN,WR1,9\n")
		writeFile(t, filepath.Join(dir, "raw", "adp", "FantasyPros-2025.csv"), "Player,ADP\nSomeone,1\n")

		adp, err := NewLoader(dir).LoadADP(ctx, 2025, scoring.VariantPPR)
		require.NoError(t, err)
		require.Equal(t, "AVG", adp.Column)
		require.Equal(t, 3, adp.Rows)
		require.Equal(t, 1.5, adp.Values["Ja'Marr Chase"])
		require.Equal(t, 2.1, adp.Values["Bijan Robinson"])
		require.Len(t, adp.Values, 2)
	})

	t.Run("falls back through patterns", func(t *testing.T) {
		dir := t.TempDir()
		writeFile(t, filepath.Join(dir, "raw", "FantasyPros_2025_Overall_ADP_Rankings.csv"),
			"Rank,Name,Bye,Value\n1,A One,7,3.5\n2,B Two,9,\n")

		adp, err := NewLoader(dir).LoadADP(ctx, 2025, scoring.VariantStandard)
		require.NoError(t, err)
		require.Equal(t, "Value", adp.Column)
		require.Equal(t, map[string]float64{"A One": 3.5}, adp.Values)
	})

	t.Run("no numeric column", func(t *testing.T) {
		dir := t.TempDir()
		writeFile(t, filepath.Join(dir, "raw", "adp", "FantasyPros-2025.csv"), "Player,Rank\nA One,1\n")

		_, err := NewLoader(dir).LoadADP(ctx, 2025, scoring.VariantHalfPPR)
		require.ErrorIs(t, err, ErrADPColumnNotFound)
	})

	t.Run("missing file", func(t *testing.T) {
		_, err := NewLoader(t.TempDir()).LoadADP(ctx, 2025, scoring.VariantPPR)
		require.ErrorIs(t, err, ErrSourceNotFound)
	})
}

func TestParseNumber(t *testing.T) {
	tests := []struct {
		cell string
		want float64
		ok   bool
	}{
		{"12.5", 12.5, true},
		{" 1,234 ", 1234, true},
		{"-2", -2, true},
		{"", 0, false},
		{"N/A", 0, false},
		{"n/a", 0, false},
		{"-", 0, false},
		{"nan", 0, false},
		{"NaN", 0, false},
		{"inf", 0, false},
		{"-Infinity", 0, false},
		{"+Inf", 0, false},
		{"abc", 0, false},
	}
	for _, tt := range tests {
		t.Run(tt.cell, func(t *testing.T) {
			v, ok := parseNumber(tt.cell)
			require.Equal(t, tt.ok, ok)
			require.Equal(t, tt.want, v)
		})
	}
}

func TestParseProjections_MissingNumericCells(t *testing.T) {
	tbl := &Table{
		Header: []string{"Player", "Team", "Pos", "rush_yds", "rush_tds"},
		Rows: [][]string{
			{"Alpha One", "KC", "RB", "1,234", "N/A"},
			{"Beta Two", "KC", "RB", "nan", "2"},
			{"Gamma Three", "KC", "RB", "Infinity", "-inf"},
		},
	}

	rows, supplied, _, err := ParseProjections(tbl)
	require.NoError(t, err)
	require.Len(t, rows, 3)
	require.True(t, supplied[model.RushYds])
	require.True(t, supplied[model.RushTDs])

	require.Equal(t, model.Some(1234), rows[0].Stats[model.RushYds])
	require.False(t, rows[0].Stats[model.RushTDs].Valid())
	require.False(t, rows[1].Stats[model.RushYds].Valid())
	require.Equal(t, model.Some(2), rows[1].Stats[model.RushTDs])
	require.False(t, rows[2].Stats[model.RushYds].Valid())
	require.False(t, rows[2].Stats[model.RushTDs].Valid())
}

func TestLoadProjections_NonFiniteCellsScoreAsZero(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, filepath.Join(dir, "raw", "projections", "CBS-Projections-2025.csv"),
		"Player,Team,Pos,rush_yds,rush_tds\nAlpha One,KC,RB,100,nan\nBeta Two,KC,RB,110,inf\n")

	tables, err := NewLoader(dir).LoadProjections(context.Background(), 2025, scoring.New())
	require.NoError(t, err)
	require.Len(t, tables, 1)

	points := map[string]float64{}
	ranks := map[string]int{}
	for _, r := range tables[0].Rows {
		points[r.Player] = r.Points
		ranks[r.Player] = r.Rank
	}
	require.Equal(t, map[string]float64{"Alpha One": 10, "Beta Two": 11}, points)
	require.Equal(t, map[string]int{"Alpha One": 2, "Beta Two": 1}, ranks)
}

func TestParseADP_MissingNumericCells(t *testing.T) {
	t.Run("named column", func(t *testing.T) {
		adp, err := ParseADP(&Table{
			Header: []string{"Player", "ADP"},
			Rows: [][]string{
				{"Alpha One", "NaN"},
				{"Beta Two", "Inf"},
				{"Gamma Three", "N/A"},
				{"Delta Four", "1,234"},
				{"Eps Five", "3"},
			},
		})
		require.NoError(t, err)
		require.Equal(t, 2, adp.Rows)
		require.Equal(t, map[string]float64{"Delta Four": 1234, "Eps Five": 3}, adp.Values)
	})

	t.Run("detected column tolerates missing markers", func(t *testing.T) {
		adp, err := ParseADP(&Table{
			Header: []string{"Rank", "Player", "Value"},
			Rows: [][]string{
				{"1", "Alpha One", "1,200.5"},
				{"2", "Beta Two", "N/A"},
				{"3", "Gamma Three", "nan"},
				{"4", "Delta Four", "7"},
			},
		})
		require.NoError(t, err)
		require.Equal(t, "Value", adp.Column)
		require.Equal(t, map[string]float64{"Alpha One": 1200.5, "Delta Four": 7}, adp.Values)
	})

	t.Run("text column is not numeric", func(t *testing.T) {
		_, err := ParseADP(&Table{
			Header: []string{"Player", "Note"},
			Rows:   [][]string{{"Alpha One", "sleeper"}},
		})
		require.ErrorIs(t, err, ErrADPColumnNotFound)
	})
}
