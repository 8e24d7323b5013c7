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

func sampleBatch() []schema.BatchItem {
	cached := sampleLineup()
	cached.Source = "squads/away.csv"
	cached.Cached = true
	return []schema.BatchItem{
		{Source: "squads/home.csv", Lineup: sampleLineup()},
		{Source: "squads/broken.csv", Err: "invalid input: player \"A\" is missing xa_p90"},
		{Source: "squads/away.csv", Lineup: cached},
	}
}

func TestWriteBatchCSV(t *testing.T) {
	var buf bytes.Buffer
	fmtFloat, _ := createFormatters(2)
	require.NoError(t, writeBatchCSV(&buf, sampleBatch(), fmtFloat))

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	require.Len(t, lines, 4)
	assert.Equal(t, "source,total,efficiency,filled,unassigned_positions,cached,error", lines[0])
	assert.Equal(t, "squads/home.csv,3.60,0.90,4,0,false,", lines[1])
	assert.True(t, strings.HasPrefix(lines[2], "squads/broken.csv,,,,,,"))
	assert.Equal(t, "squads/away.csv,3.60,0.90,4,0,true,", lines[3])
}

func TestWriteBatchTable(t *testing.T) {
	var buf bytes.Buffer
	fmtFloat, _ := createFormatters(2)
	cfg := testConfig()
	require.NoError(t, writeBatchTable(&buf, sampleBatch(), cfg, fmtFloat, 5*time.Millisecond))

	out := buf.String()
	assert.Contains(t, out, "squads/home.csv")
	assert.Contains(t, out, "Optimized 3 squads (1 failed) in 5ms with 2 workers")
}

func TestWriteBatchJSON(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, writeBatchJSON(&buf, sampleBatch(), testConfig()))

	var got []map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &got))
	require.Len(t, got, 3)
	assert.Contains(t, got[0], "lineup")
	assert.NotContains(t, got[0], "error")
	assert.NotContains(t, got[1], "lineup")
	assert.Contains(t, got[1]["error"], "missing xa_p90")
}

func TestWriteBatchResults_Parquet(t *testing.T) {
	cfg := testConfig()
	cfg.Output = schema.ParquetOut
	cfg.OutputFile = filepath.Join(t.TempDir(), "batch.parquet")
	require.NoError(t, NewOutWriter().WriteBatch(sampleBatch(), cfg, time.Millisecond))

	rows, err := parquet.ReadAssignmentsParquet(cfg.OutputFile)
	require.NoError(t, err)
	assert.Len(t, rows, 8)
}
