package contract

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/huangsam/lineup/schema"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// validInput mirrors the flag defaults registered by the root command.
func validInput() *ConfigRawInput {
	return &ConfigRawInput{
		Limit:        DefaultResultLimit,
		Workers:      4,
		Precision:    DefaultPrecision,
		Output:       "text",
		Color:        "yes",
		CacheBackend: "none",
		LogLevel:     "warn",
		Seed:         DefaultSeed,
		Players:      DefaultSamplePlayers,
	}
}

func TestProcessAndValidate_Defaults(t *testing.T) {
	cfg := &Config{}
	require.NoError(t, ProcessAndValidate(cfg, validInput()))

	assert.Equal(t, schema.DefaultStats, cfg.Stats)
	assert.Equal(t, []string{"LW", "AM", "RW", "ST"}, schema.Slots(cfg.Formation))
	assert.Equal(t, []string{schema.CreatorRole, schema.StrikerRole}, schema.Slots(cfg.Roles))
	assert.Equal(t, schema.TextOut, cfg.Output)
	assert.Equal(t, schema.NoneBackend, cfg.CacheBackend)
	assert.Equal(t, schema.NoneBackend, cfg.HistoryBackend)
	assert.True(t, cfg.UseColors)
	assert.Equal(t, uint64(DefaultSeed), cfg.Seed)
}

func TestProcessAndValidate_Invalid(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*ConfigRawInput)
	}{
		{"zero limit", func(in *ConfigRawInput) { in.Limit = 0 }},
		{"limit too large", func(in *ConfigRawInput) { in.Limit = MaxResultLimit + 1 }},
		{"zero workers", func(in *ConfigRawInput) { in.Workers = 0 }},
		{"precision too high", func(in *ConfigRawInput) { in.Precision = MaxPrecision + 1 }},
		{"precision zero", func(in *ConfigRawInput) { in.Precision = 0 }},
		{"unknown output", func(in *ConfigRawInput) { in.Output = "xml" }},
		{"parquet without file", func(in *ConfigRawInput) { in.Output = "parquet" }},
		{"zero sample players", func(in *ConfigRawInput) { in.Players = 0 }},
		{"bad log level", func(in *ConfigRawInput) { in.LogLevel = "chatty" }},
		{"bad color flag", func(in *ConfigRawInput) { in.Color = "sometimes" }},
		{"unknown cache backend", func(in *ConfigRawInput) { in.CacheBackend = "redis" }},
		{"mysql without connection", func(in *ConfigRawInput) { in.CacheBackend = "mysql" }},
		{"mysql without tcp", func(in *ConfigRawInput) {
			in.CacheBackend = "mysql"
			in.CacheDBConnect = "user:pass@localhost/db"
		}},
		{"postgres without dbname", func(in *ConfigRawInput) {
			in.HistoryBackend = "postgresql"
			in.HistoryDBConnect = "host=localhost user=u"
		}},
		{"unknown history backend", func(in *ConfigRawInput) { in.HistoryBackend = "mongo" }},
		{"shared sqlite file", func(in *ConfigRawInput) {
			in.CacheBackend = "sqlite"
			in.CacheDBConnect = "/tmp/lineup.db"
			in.HistoryBackend = "sqlite"
			in.HistoryDBConnect = "/tmp/lineup.db"
		}},
		{"missing formation file", func(in *ConfigRawInput) { in.FormationFile = "/does/not/exist.yaml" }},
		{"duplicate stat", func(in *ConfigRawInput) { in.Stats = []string{"xg_p90", "XG_P90"} }},
		{"invalid stat name", func(in *ConfigRawInput) { in.Stats = []string{"xg%"} }},
		{"stats without defaults", func(in *ConfigRawInput) { in.Stats = []string{"tackles_p90"} }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			in := validInput()
			tt.mutate(in)
			assert.Error(t, ProcessAndValidate(&Config{}, in))
		})
	}
}

func TestProcessAndValidate_SharedSQLiteDefaultsConflict(t *testing.T) {
	in := validInput()
	in.CacheBackend = "sqlite"
	in.HistoryBackend = "sqlite"
	assert.NoError(t, ProcessAndValidate(&Config{}, in), "default files differ")

	in.HistoryDBConnect = GetCacheDBFilePath()
	assert.Error(t, ProcessAndValidate(&Config{}, in))
}

func TestProcessPositionDefinitions(t *testing.T) {
	raw := []PositionRaw{
		{
			Slot:  " AM ",
			Label: " Attacking Mid ",
			Weights: map[string]float64{
				"prog_passes_p90": 0.4,
				"XA_P90":          0.6,
			},
		},
		{
			Slot:    "ST",
			Weights: map[string]float64{"xg_p90": 0.7, "prog-carries-p90": 0.3},
		},
	}
	defs, err := ProcessPositionDefinitions(raw, schema.DefaultStats)
	require.NoError(t, err)
	require.Len(t, defs, 2)

	assert.Equal(t, "AM", defs[0].Slot)
	assert.Equal(t, "Attacking Mid", defs[0].Label)
	assert.Equal(t, []schema.StatWeight{
		{Stat: schema.StatXA, Weight: 0.6},
		{Stat: schema.StatProgPasses, Weight: 0.4},
	}, defs[0].Weights, "weights follow stat column order")
	assert.Equal(t, []schema.StatWeight{
		{Stat: schema.StatXG, Weight: 0.7},
		{Stat: schema.StatProgCarries, Weight: 0.3},
	}, defs[1].Weights)
}

func TestProcessPositionDefinitions_Errors(t *testing.T) {
	tests := []struct {
		name string
		raw  []PositionRaw
	}{
		{"weights sum to 0.9", []PositionRaw{{Slot: "AM", Weights: map[string]float64{"xa_p90": 0.5, "prog_passes_p90": 0.4}}}},
		{"weights sum above one", []PositionRaw{{Slot: "AM", Weights: map[string]float64{"xa_p90": 0.7, "prog_passes_p90": 0.4}}}},
		{"empty slot", []PositionRaw{{Slot: "  ", Weights: map[string]float64{"xg_p90": 1}}}},
		{"duplicate slot", []PositionRaw{
			{Slot: "ST", Weights: map[string]float64{"xg_p90": 1}},
			{Slot: "ST", Weights: map[string]float64{"xa_p90": 1}},
		}},
		{"no weights", []PositionRaw{{Slot: "ST"}}},
		{"unknown stat", []PositionRaw{{Slot: "ST", Weights: map[string]float64{"tackles_p90": 1}}}},
		{"negative weight", []PositionRaw{{Slot: "ST", Weights: map[string]float64{"xg_p90": 1.2, "xa_p90": -0.2}}}},
		{"same stat twice", []PositionRaw{{Slot: "ST", Weights: map[string]float64{"xg_p90": 0.5, "XG_P90": 0.5}}}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ProcessPositionDefinitions(tt.raw, schema.DefaultStats)
			assert.Error(t, err)
		})
	}
}

func TestProcessPositionDefinitions_WithinTolerance(t *testing.T) {
	raw := []PositionRaw{{Slot: "ST", Weights: map[string]float64{"xg_p90": 0.7005, "prog_carries_p90": 0.3}}}
	defs, err := ProcessPositionDefinitions(raw, schema.DefaultStats)
	require.NoError(t, err)
	assert.InDelta(t, 1.0005, defs[0].WeightSum(), 1e-12, "weights are kept as given")
}

func TestProcessAndValidate_CustomStatsAndFormation(t *testing.T) {
	in := validInput()
	in.Stats = []string{"xg_p90", "tackles_p90"}
	in.Formation = []PositionRaw{
		{Slot: "ST", Weights: map[string]float64{"xg_p90": 1}},
		{Slot: "DM", Weights: map[string]float64{"tackles_p90": 1}},
	}
	in.Roles = []PositionRaw{
		{Slot: "ballwinner", Weights: map[string]float64{"tackles_p90": 1}},
	}

	cfg := &Config{}
	require.NoError(t, ProcessAndValidate(cfg, in))
	assert.Equal(t, []schema.StatKey{"xg_p90", "tackles_p90"}, cfg.Stats)
	assert.Equal(t, []string{"ST", "DM"}, schema.Slots(cfg.Formation))
	assert.Equal(t, []string{"ballwinner"}, schema.Slots(cfg.Roles))
}

func TestProcessAndValidate_FormationFileOverridesConfig(t *testing.T) {
	path := filepath.Join(t.TempDir(), "formation.yaml")
	doc := `
formation:
  - slot: AM
    label: Attacking Mid
    weights:
      xa_p90: 0.6
      prog_passes_p90: 0.4
  - slot: ST
    weights:
      xg_p90: 0.7
      prog_carries_p90: 0.3
`
	require.NoError(t, os.WriteFile(path, []byte(doc), 0o600))

	in := validInput()
	in.Formation = []PositionRaw{{Slot: "LW", Weights: map[string]float64{"xg_p90": 1}}}
	in.FormationFile = path

	cfg := &Config{}
	require.NoError(t, ProcessAndValidate(cfg, in))
	assert.Equal(t, []string{"AM", "ST"}, schema.Slots(cfg.Formation))
	assert.Equal(t, []string{schema.CreatorRole, schema.StrikerRole}, schema.Slots(cfg.Roles), "roles fall back to defaults")
}

func TestConfigClone(t *testing.T) {
	cfg := &Config{}
	require.NoError(t, ProcessAndValidate(cfg, validInput()))

	clone := cfg.Clone()
	clone.Stats[0] = "changed"
	clone.Formation[0].Weights[0].Weight = 42
	clone.Roles = nil

	assert.Equal(t, schema.StatXG, cfg.Stats[0])
	assert.InDelta(t, 0.3, cfg.Formation[0].Weights[0].Weight, 1e-12)
	assert.Len(t, cfg.Roles, 2)
}

func TestConfigParams(t *testing.T) {
	cfg := &Config{}
	require.NoError(t, ProcessAndValidate(cfg, validInput()))

	params := cfg.ConfigParams()
	assert.Equal(t, []string{"LW", "AM", "RW", "ST"}, params["formation"])
	assert.Equal(t, 4, params["workers"])
	assert.Len(t, params["stats"], 4)
}
