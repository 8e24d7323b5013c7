package outwriter

import (
	"bytes"
	"path/filepath"
	"strings"
	"testing"

	"github.com/huangsam/lineup/schema"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFormatWeights(t *testing.T) {
	tests := []struct {
		name    string
		weights []schema.StatWeight
		want    string
	}{
		{
			name:    "creator",
			weights: []schema.StatWeight{{Stat: schema.StatXA, Weight: 0.6}, {Stat: schema.StatProgPasses, Weight: 0.4}},
			want:    "0.60*xa_p90+0.40*prog_passes_p90",
		},
		{
			name:    "zero weights are hidden",
			weights: []schema.StatWeight{{Stat: schema.StatXG, Weight: 1}, {Stat: schema.StatXA, Weight: 0}},
			want:    "1.00*xg_p90",
		},
		{name: "empty", want: ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, formatWeights(tt.weights))
		})
	}
}

func TestWritePositionsText(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, writePositionsText(&buf, testConfig()))
	out := buf.String()
	assert.True(t, strings.HasPrefix(out, "Stats: xg_p90, xa_p90, prog_carries_p90, prog_passes_p90\n"))
	assert.Contains(t, out, "Formation:")
	assert.Contains(t, out, "Roles:")
	assert.Contains(t, out, "creator")
}

func TestWritePositionsCSV(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, writePositionsCSV(&buf, testConfig()))
	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	assert.Equal(t, "kind,slot,label,stat,weight", lines[0])
	assert.Contains(t, lines, "role,creator,Playmaker/Winger,xa_p90,0.6")
}

func TestWritePositionDefinitions(t *testing.T) {
	cfg := testConfig()
	cfg.Output = schema.ParquetOut
	cfg.OutputFile = filepath.Join(t.TempDir(), "positions.parquet")
	assert.Error(t, NewOutWriter().WritePositions(cfg))

	cfg.Output = schema.JSONOut
	cfg.OutputFile = filepath.Join(t.TempDir(), "positions.json")
	require.NoError(t, WritePositionDefinitions(cfg))
	assert.FileExists(t, cfg.OutputFile)
}
