package export

import (
	"bytes"
	"context"
	"encoding/csv"
	"encoding/json"
	"os"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"github.com/okian/draftboard/internal/domain/board"
	"github.com/okian/draftboard/internal/domain/identity"
	"github.com/okian/draftboard/internal/domain/model"
)

func sampleBoard() *board.Board {
	var stats model.StatLine
	stats[model.RushYds] = model.Some(1150.5)
	frame := &model.Frame{
		Providers: []string{"CBS", "ESPN"},
		Records: []model.PlayerRecord{
			{Key: identity.NewKey("Bijan Robinson", "ATL", "RB"), VORP: 120.25, Tier: 1, Volatility: 3.5,
				ADP: model.Some(2.1), Stats: stats,
				Scores: []model.ProviderScore{{Present: true, Rank: 1}, {Present: true, Rank: 3}}},
			{Key: identity.NewKey("Deep Sleeper", "NYJ", "WR"), VORP: -4, Volatility: 5,
				Scores: []model.ProviderScore{{}, {Present: true, Rank: 80}}},
		},
	}
	frame.StatPresent[model.RushYds] = true
	return board.Assemble(2025, frame)
}

func TestWriteCSV(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteCSV(&buf, sampleBoard()))

	records, err := csv.NewReader(&buf).ReadAll()
	require.NoError(t, err)
	require.Len(t, records, 3)
	require.Equal(t, []string{"Player", "Team", "Pos", "Rank", "VORP", "Tier", "Volatility", "ADP", "CBS_Rank", "ESPN_Rank", "Rush_Yds"}, records[0])
	require.Equal(t, []string{"Bijan Robinson", "ATL", "RB", "1", "120.25", "1", "3.5", "2.1", "1", "3", "1150.5"}, records[1])
	require.Equal(t, []string{"Deep Sleeper", "NYJ", "WR", "2", "-4", "0", "5", "", "", "80", ""}, records[2])
}

func TestWriteJSON(t *testing.T) {
	var buf bytes.Buffer
	b := sampleBoard()
	require.NoError(t, WriteJSON(&buf, b))

	var out []map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &out))
	require.Len(t, out, 2)
	require.Equal(t, "Bijan Robinson", out[0]["Player"])
	require.Equal(t, 120.25, out[0]["VORP"])
	require.Nil(t, out[1]["ADP"])
	require.Nil(t, out[1]["CBS_Rank"])
	require.Equal(t, 80.0, out[1]["ESPN_Rank"])

	text := buf.String()
	last := -1
	for _, c := range b.Columns() {
		idx := strings.Index(text, `"`+c+`"`)
		require.Greater(t, idx, last, "column %s out of order", c)
		last = idx
	}
}

func TestWriteJSON_Empty(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteJSON(&buf, &board.Board{}))
	require.Equal(t, "[]\n", buf.String())
}

func TestExporter_Write(t *testing.T) {
	dir := t.TempDir()
	e := New(dir, WithXLSX(true))
	p, err := e.Write(context.Background(), sampleBoard())
	require.NoError(t, err)
	require.Equal(t, e.PathsFor(2025), p)
	require.True(t, strings.HasSuffix(p.CSV, "Projections-2025.csv"))

	for _, path := range []string{p.CSV, p.JSON, p.XLSX} {
		_, err := os.Stat(path)
		require.NoError(t, err)
	}

	f, err := excelize.OpenFile(p.XLSX)
	require.NoError(t, err)
	defer func() { _ = f.Close() }()
	rows, err := f.GetRows("Board")
	require.NoError(t, err)
	require.Len(t, rows, 3)
	require.Equal(t, "Player", rows[0][0])
	require.Equal(t, "Bijan Robinson", rows[1][0])
	require.Equal(t, "120.25", rows[1][4])
}

func TestExporter_WithoutXLSX(t *testing.T) {
	e := New(t.TempDir())
	require.Empty(t, e.PathsFor(2025).XLSX)
}
