package schema

// Custom string types for type safety.
type (
	// StatKey names a single per-90 statistic column.
	StatKey string

	// OutputMode represents the format of the output.
	OutputMode string

	// DatabaseBackend represents the database backend for caching and history.
	DatabaseBackend string
)

// Default per-90 statistics tracked for every player.
const (
	StatXG          StatKey = "xg_p90"           // expected goals
	StatXA          StatKey = "xa_p90"           // expected assists
	StatProgCarries StatKey = "prog_carries_p90" // progressive carries
	StatProgPasses  StatKey = "prog_passes_p90"  // progressive passes
)

// All output modes supported.
const (
	CSVOut     OutputMode = "csv"
	TextOut    OutputMode = "text" // default
	JSONOut    OutputMode = "json"
	ParquetOut OutputMode = "parquet"
)

// All database backends supported.
const (
	SQLiteBackend     DatabaseBackend = "sqlite" // default
	MySQLBackend      DatabaseBackend = "mysql"
	PostgreSQLBackend DatabaseBackend = "postgresql"
	NoneBackend       DatabaseBackend = "none"
)

// Role slots used by the role analysis.
const (
	CreatorRole = "creator"
	StrikerRole = "striker"
)

// DefaultStats is the ordered stat set used when no configuration overrides it.
var DefaultStats = []StatKey{StatXG, StatXA, StatProgCarries, StatProgPasses}

// ValidOutputModes lists all valid output modes.
var ValidOutputModes = map[OutputMode]struct{}{
	CSVOut:     {},
	TextOut:    {},
	JSONOut:    {},
	ParquetOut: {},
}

// ValidDatabaseBackends lists all valid database backends.
var ValidDatabaseBackends = map[DatabaseBackend]struct{}{
	SQLiteBackend:     {},
	MySQLBackend:      {},
	PostgreSQLBackend: {},
	NoneBackend:       {},
}

// DefaultFormation returns the LW/AM/RW/ST front four.
// AM reuses the creator weights and ST the striker weights.
func DefaultFormation() []PositionDef {
	wide := []StatWeight{
		{Stat: StatXG, Weight: 0.3},
		{Stat: StatXA, Weight: 0.2},
		{Stat: StatProgCarries, Weight: 0.4},
		{Stat: StatProgPasses, Weight: 0.1},
	}
	return []PositionDef{
		{Slot: "LW", Label: "Left Wing", Weights: cloneWeights(wide)},
		{Slot: "AM", Label: "Attacking Mid", Weights: creatorWeights()},
		{Slot: "RW", Label: "Right Wing", Weights: cloneWeights(wide)},
		{Slot: "ST", Label: "Striker", Weights: strikerWeights()},
	}
}

// DefaultRoles returns the role definitions used by role analysis.
// Creator is listed first so that an exact tie resolves to it.
func DefaultRoles() []PositionDef {
	return []PositionDef{
		{Slot: CreatorRole, Label: "Playmaker/Winger", Weights: creatorWeights()},
		{Slot: StrikerRole, Label: "Striker/Inside Forward", Weights: strikerWeights()},
	}
}

func strikerWeights() []StatWeight {
	return []StatWeight{
		{Stat: StatXG, Weight: 0.7},
		{Stat: StatProgCarries, Weight: 0.3},
	}
}

func creatorWeights() []StatWeight {
	return []StatWeight{
		{Stat: StatXA, Weight: 0.6},
		{Stat: StatProgPasses, Weight: 0.4},
	}
}

func cloneWeights(in []StatWeight) []StatWeight {
	out := make([]StatWeight, len(in))
	copy(out, in)
	return out
}
