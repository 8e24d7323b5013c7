package outwriter

import (
	"bytes"
	"encoding/json"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/huangsam/lineup/internal/parquet"
	"github.com/huangsam/lineup/schema"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWriteLineupTable(t *testing.T) {
	var buf bytes.Buffer
	fmtFloat, _ := createFormatters(2)
	require.NoError(t, writeLineupTable(&buf, sampleLineup(), testConfig(), fmtFloat, 2*time.Millisecond))

	out := buf.String()
	// Formation order: LW, AM, RW, ST
	lw := strings.Index(out, "Amad")
	am := strings.Index(out, "Bruno")
	rw := strings.Index(out, "Mbeumo")
	st := strings.Index(out, "Cunha")
	assert.True(t, lw < am && am < rw && rw < st, "rows should follow formation order")

	assert.Contains(t, out, "Total fit: 3.60  Efficiency: 90.00%")
	assert.Contains(t, out, "Solved matrix.csv in 2ms (cached: false). Cache backend: none")
	assert.NotContains(t, out, "Bench:")
}

func TestWriteLineupTable_Rectangular(t *testing.T) {
	result := sampleLineup()
	result.Assignment.UnassignedPlayers = []string{"Mount", "Garnacho"}
	result.Assignment.UnassignedPositions = []string{"CF"}

	var buf bytes.Buffer
	fmtFloat, _ := createFormatters(2)
	require.NoError(t, writeLineupTable(&buf, result, testConfig(), fmtFloat, time.Millisecond))

	out := buf.String()
	assert.Contains(t, out, "CF")
	assert.Contains(t, out, "Bench: Mount, Garnacho")
}

func TestWriteLineupCSV(t *testing.T) {
	result := sampleLineup()
	result.Assignment.UnassignedPlayers = []string{"Mount"}

	var buf bytes.Buffer
	fmtFloat, _ := createFormatters(2)
	require.NoError(t, writeLineupCSV(&buf, result, fmtFloat))

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	assert.Equal(t, []string{
		"position,player,score,label,position_index,player_index",
		"LW,Amad,0.85,Elite,0,3",
		"AM,Bruno,0.95,Elite,1,0",
		"RW,Mbeumo,0.90,Elite,2,2",
		"ST,Cunha,0.90,Elite,3,1",
		",Mount,,,,",
	}, lines)
}

func TestWriteLineupJSON(t *testing.T) {
	tests := []struct {
		name       string
		detail     bool
		wantMatrix bool
	}{
		{"summary", false, false},
		{"detail", true, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := testConfig()
			cfg.Detail = tt.detail

			var buf bytes.Buffer
			require.NoError(t, writeLineupJSON(&buf, sampleLineup(), cfg))

			var got map[string]any
			require.NoError(t, json.Unmarshal(buf.Bytes(), &got))
			assert.InDelta(t, 3.60, got["total"], 1e-9)
			assert.InDelta(t, 0.90, got["efficiency"], 1e-9)
			assert.Equal(t, false, got["cached"])
			assert.Equal(t, []any{}, got["unassigned_players"])

			pairs := got["pairs"].([]any)
			require.Len(t, pairs, 4)
			first := pairs[0].(map[string]any)
			assert.Equal(t, "Bruno", first["player"])
			assert.Equal(t, "Elite", first["label"])

			_, hasMatrix := got["matrix"]
			assert.Equal(t, tt.wantMatrix, hasMatrix)
		})
	}
}

func TestToJSONLineup_NilSlices(t *testing.T) {
	result := &schema.LineupResult{Assignment: schema.AssignmentResult{}}
	out := toJSONLineup(result, false)
	assert.NotNil(t, out.UnassignedPlayers)
	assert.NotNil(t, out.UnassignedPositions)
	assert.Empty(t, out.Pairs)
}

func TestWriteLineupResult_Files(t *testing.T) {
	dir := t.TempDir()

	t.Run("parquet", func(t *testing.T) {
		cfg := testConfig()
		cfg.Output = schema.ParquetOut
		cfg.OutputFile = filepath.Join(dir, "lineup.parquet")
		require.NoError(t, WriteLineupResult(sampleLineup(), cfg, time.Millisecond))
		assert.FileExists(t, cfg.OutputFile)
	})

	t.Run("parquet without file", func(t *testing.T) {
		cfg := testConfig()
		cfg.Output = schema.ParquetOut
		assert.ErrorIs(t, WriteLineupResult(sampleLineup(), cfg, time.Millisecond), errParquetNeedsFile)
	})

	t.Run("text with detail", func(t *testing.T) {
		cfg := testConfig()
		cfg.Detail = true
		cfg.OutputFile = filepath.Join(dir, "lineup.txt")
		require.NoError(t, NewOutWriter().WriteLineup(sampleLineup(), cfg, time.Millisecond))
		assert.FileExists(t, cfg.OutputFile)
	})
}

func TestAssignmentRows(t *testing.T) {
	rows := assignmentRows(sampleLineup())
	require.Len(t, rows, 4)
	assert.Equal(t, parquet.AssignmentRow{
		Source:        "matrix.csv",
		Player:        "Bruno",
		Position:      "AM",
		PlayerIndex:   0,
		PositionIndex: 1,
		Score:         0.95,
		Label:         "Elite",
	}, rows[0])
}
