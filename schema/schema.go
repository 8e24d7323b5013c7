// Package schema has configs, models and global variables for all parts of lineup.
package schema

// Player is a single squad member with per-90 rates.
// Rates are ordered like the owning Squad's Stats.
type Player struct {
	Name  string    `json:"name"`
	Rates []float64 `json:"rates"`
}

// Squad is the tabular input of the Score Builder.
type Squad struct {
	Stats   []StatKey `json:"stats"`   // Declared stat set, in column order
	Players []Player  `json:"players"` // One row per player
}

// StatWeight is one term of a position definition.
type StatWeight struct {
	Stat   StatKey `json:"stat"`
	Weight float64 `json:"weight"`
}

// PositionDef describes how a formation slot (or role) values each statistic.
// Weights are expected to sum to 1.0 and are never renormalized.
type PositionDef struct {
	Slot    string       `json:"slot"`
	Label   string       `json:"label,omitempty"`
	Weights []StatWeight `json:"weights"`
}

// DisplayName returns the label when present, falling back to the slot.
func (p PositionDef) DisplayName() string {
	if p.Label != "" {
		return p.Label
	}
	return p.Slot
}

// WeightSum returns the sum of all weights.
func (p PositionDef) WeightSum() float64 {
	sum := 0.0
	for _, w := range p.Weights {
		sum += w.Weight
	}
	return sum
}

// Slots returns the slot identifiers of the given definitions in order.
func Slots(defs []PositionDef) []string {
	slots := make([]string, len(defs))
	for i, d := range defs {
		slots[i] = d.Slot
	}
	return slots
}

// FitnessMatrix holds player-to-position suitability scores. Higher is better.
type FitnessMatrix struct {
	Players   []string    `json:"players"`   // Row labels
	Positions []string    `json:"positions"` // Column labels
	Scores    [][]float64 `json:"scores"`    // Scores[player][position]
}

// Rows returns the number of players.
func (m FitnessMatrix) Rows() int {
	return len(m.Scores)
}

// Cols returns the number of positions, based on the first row.
func (m FitnessMatrix) Cols() int {
	if len(m.Scores) == 0 {
		return len(m.Positions)
	}
	return len(m.Scores[0])
}

// PlayerRecord is one loosely typed squad row, keyed by stat name.
// Loaders and the MCP tools turn records into a Squad.
type PlayerRecord struct {
	Name  string             `json:"name"`
	Stats map[string]float64 `json:"stats"`
}
