package contract

import (
	"fmt"
	"math"
	"runtime"
	"slices"
	"strings"
	"time"

	"github.com/huangsam/lineup/schema"
	"github.com/sirupsen/logrus"
)

// Default values for configuration.
const (
	DefaultResultLimit   = 25
	MaxResultLimit       = 1000
	DefaultPrecision     = 2
	MaxPrecision         = 4
	DefaultSeed          = 42
	DefaultSamplePlayers = 11
	MaxSamplePlayers     = 500
	DefaultLogLevel      = "warn"
)

// WeightSumTolerance is how far a position's weights may drift from 1.0.
const WeightSumTolerance = 0.001

// DefaultWorkers is the default number of concurrent workers to use.
var DefaultWorkers = runtime.GOMAXPROCS(0)

// DateTimeFormat is the default date time representation.
var DateTimeFormat = time.RFC3339

// PositionRaw is a position or role definition as written in config or YAML.
// Weights map a stat key to its weight.
type PositionRaw struct {
	Slot    string             `mapstructure:"slot" yaml:"slot"`
	Label   string             `mapstructure:"label" yaml:"label"`
	Weights map[string]float64 `mapstructure:"weights" yaml:"weights"`
}

// Config holds the runtime configuration for a lineup run.
// This struct remains the "final, validated" config.
type Config struct {
	ResultLimit int
	Workers     int
	Precision   int
	Output      schema.OutputMode
	OutputFile  string
	Detail      bool
	FillMissing bool
	Width       int // Terminal width override (0 = auto-detect)
	UseColors   bool

	Seed          uint64
	SamplePlayers int

	// Stats is the declared stat set, in squad column order
	Stats []schema.StatKey

	// Formation is the list of slots to fill, in output order
	Formation []schema.PositionDef

	// Roles is the list of roles used by role analysis, ties going to the first
	Roles []schema.PositionDef

	CacheBackend   schema.DatabaseBackend
	CacheDBConnect string // Please use env var as this is plaintext

	HistoryBackend   schema.DatabaseBackend
	HistoryDBConnect string // Please use env var as this is plaintext

	LogLevel string
	LogFile  string
}

// ConfigRawInput holds the raw inputs from all sources (flags, env, config file).
// Viper unmarshals into this struct.
type ConfigRawInput struct {
	// --- Fields from rootCmd.PersistentFlags() ---
	OutputFile       string `mapstructure:"output-file"`
	Limit            int    `mapstructure:"limit"`
	Workers          int    `mapstructure:"workers"`
	Precision        int    `mapstructure:"precision"`
	Output           string `mapstructure:"output"`
	Detail           bool   `mapstructure:"detail"`
	FillMissing      bool   `mapstructure:"fill-missing"`
	Width            int    `mapstructure:"width"`
	Color            string `mapstructure:"color"`
	CacheBackend     string `mapstructure:"cache-backend"`
	CacheDBConnect   string `mapstructure:"cache-db-connect"`
	HistoryBackend   string `mapstructure:"history-backend"`
	HistoryDBConnect string `mapstructure:"history-db-connect"`
	LogLevel         string `mapstructure:"log-level"`
	LogFile          string `mapstructure:"log-file"`
	FormationFile    string `mapstructure:"formation-file"`

	// --- Fields from sampleCmd.Flags() ---
	Seed    uint64 `mapstructure:"seed"`
	Players int    `mapstructure:"players"`

	// --- Scoring model from config file ---
	Stats     []string      `mapstructure:"stats"`
	Formation []PositionRaw `mapstructure:"formation"`
	Roles     []PositionRaw `mapstructure:"roles"`
}

// Clone returns a deep copy of the Config struct.
func (c *Config) Clone() *Config {
	clone := *c
	clone.Stats = slices.Clone(c.Stats)
	clone.Formation = clonePositions(c.Formation)
	clone.Roles = clonePositions(c.Roles)
	return &clone
}

func clonePositions(in []schema.PositionDef) []schema.PositionDef {
	if in == nil {
		return nil
	}
	out := make([]schema.PositionDef, len(in))
	for i, p := range in {
		out[i] = p
		out[i].Weights = slices.Clone(p.Weights)
	}
	return out
}

// ConfigParams returns the settings worth recording alongside a run.
func (c *Config) ConfigParams() map[string]any {
	stats := make([]string, len(c.Stats))
	for i, s := range c.Stats {
		stats[i] = string(s)
	}
	return map[string]any{
		"stats":     stats,
		"formation": schema.Slots(c.Formation),
		"roles":     schema.Slots(c.Roles),
		"workers":   c.Workers,
	}
}

// ProcessAndValidate performs all complex parsing and validation on the raw inputs
// and updates the final Config struct.
func ProcessAndValidate(cfg *Config, input *ConfigRawInput) error {
	if err := validateSimpleInputs(cfg, input); err != nil {
		return err
	}
	if err := validateBackendConfigs(cfg, input); err != nil {
		return err
	}
	if input.FormationFile != "" {
		file, err := LoadFormationFile(input.FormationFile)
		if err != nil {
			return err
		}
		mergeFormationFile(input, file)
	}
	return processScoringModel(cfg, input.Stats, input.Formation, input.Roles)
}

// ValidateDatabaseConnectionString validates the format of database connection strings
// for MySQL and PostgreSQL backends.
func ValidateDatabaseConnectionString(backend schema.DatabaseBackend, connStr string) error {
	switch backend {
	case schema.SQLiteBackend, schema.NoneBackend:
		return nil
	case schema.MySQLBackend:
		if connStr == "" {
			return fmt.Errorf("a connection string is required when using %s backend", backend)
		}
		if !strings.Contains(connStr, "@tcp(") {
			return fmt.Errorf("MySQL connection string must contain '@tcp(' for host:port specification")
		}
		if !strings.Contains(connStr, "/") {
			return fmt.Errorf("MySQL connection string must contain '/' followed by database name")
		}
	case schema.PostgreSQLBackend:
		if connStr == "" {
			return fmt.Errorf("a connection string is required when using %s backend", backend)
		}
		if !strings.Contains(connStr, "host=") {
			return fmt.Errorf("PostgreSQL connection string must contain 'host=' parameter")
		}
		if !strings.Contains(connStr, "dbname=") {
			return fmt.Errorf("PostgreSQL connection string must contain 'dbname=' parameter")
		}
	}
	return nil
}

// validateBackendConfigs validates cache and history backend configurations.
func validateBackendConfigs(cfg *Config, input *ConfigRawInput) error {
	// --- Cache Backend Validation ---
	cfg.CacheBackend = schema.DatabaseBackend(strings.ToLower(input.CacheBackend))
	if cfg.CacheBackend == "" {
		cfg.CacheBackend = schema.SQLiteBackend
	}
	if _, ok := schema.ValidDatabaseBackends[cfg.CacheBackend]; !ok {
		return fmt.Errorf("invalid cache backend '%s'. must be sqlite, mysql, postgresql, none", input.CacheBackend)
	}
	cfg.CacheDBConnect = input.CacheDBConnect
	if err := ValidateDatabaseConnectionString(cfg.CacheBackend, cfg.CacheDBConnect); err != nil {
		return fmt.Errorf("cache-db-connect: %w", err)
	}

	// --- History Backend Validation ---
	cfg.HistoryBackend = schema.DatabaseBackend(strings.ToLower(input.HistoryBackend))
	if cfg.HistoryBackend == "" {
		cfg.HistoryBackend = schema.NoneBackend
		return nil
	}
	if _, ok := schema.ValidDatabaseBackends[cfg.HistoryBackend]; !ok {
		return fmt.Errorf("invalid history backend '%s'. must be sqlite, mysql, postgresql, none", input.HistoryBackend)
	}
	cfg.HistoryDBConnect = input.HistoryDBConnect
	if err := ValidateDatabaseConnectionString(cfg.HistoryBackend, cfg.HistoryDBConnect); err != nil {
		return fmt.Errorf("history-db-connect: %w", err)
	}

	// Cache and history must not share one SQLite file
	if cfg.CacheBackend == schema.SQLiteBackend && cfg.HistoryBackend == schema.SQLiteBackend {
		cacheDBPath := cfg.CacheDBConnect
		if cacheDBPath == "" {
			cacheDBPath = GetCacheDBFilePath()
		}
		historyDBPath := cfg.HistoryDBConnect
		if historyDBPath == "" {
			historyDBPath = GetHistoryDBFilePath()
		}
		if cacheDBPath == historyDBPath {
			return fmt.Errorf("cache and history storage must use different SQLite database files. Both resolve to %q", cacheDBPath)
		}
	}
	return nil
}

// validateSimpleInputs processes and validates all scalar fields.
func validateSimpleInputs(cfg *Config, input *ConfigRawInput) error {
	// --- 0. Transfer simple non-validated fields from input -> cfg ---
	cfg.OutputFile = input.OutputFile
	cfg.Detail = input.Detail
	cfg.FillMissing = input.FillMissing
	cfg.Width = input.Width
	cfg.Seed = input.Seed
	cfg.LogFile = input.LogFile

	colorFlag := input.Color
	if colorFlag == "" {
		colorFlag = "yes"
	}
	colors, err := ParseBoolString(colorFlag)
	if err != nil {
		return fmt.Errorf("invalid --color value: %w", err)
	}
	cfg.UseColors = colors

	// --- 1. ResultLimit Validation ---
	if input.Limit <= 0 || input.Limit > MaxResultLimit {
		return fmt.Errorf("limit must be greater than 0 and cannot exceed %d (received %d)", MaxResultLimit, input.Limit)
	}
	cfg.ResultLimit = input.Limit

	// --- 2. Workers Validation ---
	if input.Workers <= 0 {
		return fmt.Errorf("workers must be greater than 0 (received %d)", input.Workers)
	}
	cfg.Workers = input.Workers

	// --- 3. Precision and Output Validation ---
	if input.Precision < 1 || input.Precision > MaxPrecision {
		return fmt.Errorf("precision must be between 1 and %d (received %d)", MaxPrecision, input.Precision)
	}
	cfg.Precision = input.Precision

	cfg.Output = schema.OutputMode(strings.ToLower(input.Output))
	if _, ok := schema.ValidOutputModes[cfg.Output]; !ok {
		return fmt.Errorf("invalid output format '%s'. must be text, csv, json, parquet", input.Output)
	}
	if cfg.Output == schema.ParquetOut && cfg.OutputFile == "" {
		return fmt.Errorf("parquet output requires --output-file")
	}

	// --- 4. Sample Validation ---
	if input.Players <= 0 || input.Players > MaxSamplePlayers {
		return fmt.Errorf("players must be greater than 0 and cannot exceed %d (received %d)", MaxSamplePlayers, input.Players)
	}
	cfg.SamplePlayers = input.Players

	// --- 5. Logging Validation ---
	cfg.LogLevel = strings.ToLower(strings.TrimSpace(input.LogLevel))
	if cfg.LogLevel == "" {
		cfg.LogLevel = DefaultLogLevel
	}
	if _, err := logrus.ParseLevel(cfg.LogLevel); err != nil {
		return fmt.Errorf("invalid log level '%s'", input.LogLevel)
	}
	return nil
}

// processScoringModel resolves the stat set, the formation and the roles.
// Empty sections fall back to the built-in defaults.
func processScoringModel(cfg *Config, rawStats []string, formation, roles []PositionRaw) error {
	stats, err := ProcessStats(rawStats)
	if err != nil {
		return err
	}
	cfg.Stats = stats

	if len(formation) == 0 {
		cfg.Formation, err = defaultDefinitions("formation", schema.DefaultFormation(), stats)
	} else {
		cfg.Formation, err = ProcessPositionDefinitions(formation, stats)
	}
	if err != nil {
		return fmt.Errorf("formation: %w", err)
	}

	if len(roles) == 0 {
		cfg.Roles, err = defaultDefinitions("roles", schema.DefaultRoles(), stats)
	} else {
		cfg.Roles, err = ProcessPositionDefinitions(roles, stats)
	}
	if err != nil {
		return fmt.Errorf("roles: %w", err)
	}
	return nil
}

// ProcessStats normalizes the declared stat keys. An empty list yields the defaults.
func ProcessStats(raw []string) ([]schema.StatKey, error) {
	if len(raw) == 0 {
		return slices.Clone(schema.DefaultStats), nil
	}
	stats := make([]schema.StatKey, 0, len(raw))
	for _, s := range raw {
		key := schema.NormalizeStatKey(s)
		if key == "" {
			return nil, fmt.Errorf("stat names cannot be empty")
		}
		for _, r := range key {
			if (r < 'a' || r > 'z') && (r < '0' || r > '9') && r != '_' {
				return nil, fmt.Errorf("invalid stat name %q: use letters, digits and underscores", s)
			}
		}
		if slices.Contains(stats, key) {
			return nil, fmt.Errorf("duplicate stat %q", key)
		}
		stats = append(stats, key)
	}
	return stats, nil
}

// ProcessPositionDefinitions converts raw definitions into ordered PositionDefs.
// Weights are sorted by their stat's column so that the result is deterministic, and
// they must sum to 1.0 within WeightSumTolerance. Nothing is renormalized.
func ProcessPositionDefinitions(raw []PositionRaw, stats []schema.StatKey) ([]schema.PositionDef, error) {
	defs := make([]schema.PositionDef, 0, len(raw))
	seen := make(map[string]struct{}, len(raw))
	for i, p := range raw {
		slot := strings.TrimSpace(p.Slot)
		if slot == "" {
			return nil, fmt.Errorf("definition %d has an empty slot", i+1)
		}
		if _, dup := seen[slot]; dup {
			return nil, fmt.Errorf("duplicate slot %q", slot)
		}
		seen[slot] = struct{}{}
		if len(p.Weights) == 0 {
			return nil, fmt.Errorf("slot %q has no weights", slot)
		}

		weights := make([]schema.StatWeight, 0, len(p.Weights))
		for key, w := range p.Weights {
			stat := schema.NormalizeStatKey(key)
			if schema.IndexOfStat(stats, stat) < 0 {
				return nil, fmt.Errorf("slot %q references unknown stat %q", slot, key)
			}
			if math.IsNaN(w) || math.IsInf(w, 0) || w < 0 {
				return nil, fmt.Errorf("slot %q has invalid weight %g for %q", slot, w, key)
			}
			if slices.ContainsFunc(weights, func(sw schema.StatWeight) bool { return sw.Stat == stat }) {
				return nil, fmt.Errorf("slot %q lists stat %q twice", slot, stat)
			}
			weights = append(weights, schema.StatWeight{Stat: stat, Weight: w})
		}
		slices.SortFunc(weights, func(a, b schema.StatWeight) int {
			return schema.IndexOfStat(stats, a.Stat) - schema.IndexOfStat(stats, b.Stat)
		})

		def := schema.PositionDef{Slot: slot, Label: strings.TrimSpace(p.Label), Weights: weights}
		if sum := def.WeightSum(); math.Abs(sum-1.0) > WeightSumTolerance {
			return nil, fmt.Errorf("weights for slot %s must sum to 1.0, got %.3f", slot, sum)
		}
		defs = append(defs, def)
	}
	return defs, nil
}

// defaultDefinitions checks that built-in definitions only use declared stats.
func defaultDefinitions(section string, defs []schema.PositionDef, stats []schema.StatKey) ([]schema.PositionDef, error) {
	for _, d := range defs {
		for _, w := range d.Weights {
			if schema.IndexOfStat(stats, w.Stat) < 0 {
				return nil, fmt.Errorf("default %s needs stat %q; declare it or define %s explicitly", section, w.Stat, section)
			}
		}
	}
	return defs, nil
}
