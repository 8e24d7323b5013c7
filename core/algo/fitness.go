package algo

import (
	"fmt"
	"math"

	"github.com/huangsam/lineup/schema"
)

// compiledTerm is a StatWeight resolved to its column index.
type compiledTerm struct {
	col    int
	weight float64
}

// compileDefinitions resolves every definition's stat keys against the declared stat set.
func compileDefinitions(stats []schema.StatKey, defs []schema.PositionDef) ([][]compiledTerm, error) {
	compiled := make([][]compiledTerm, len(defs))
	for k, def := range defs {
		terms := make([]compiledTerm, 0, len(def.Weights))
		for _, w := range def.Weights {
			col := schema.IndexOfStat(stats, w.Stat)
			if col < 0 {
				return nil, fmt.Errorf("%w: position %q references undeclared stat %q", ErrInvalidInput, def.Slot, w.Stat)
			}
			if math.IsNaN(w.Weight) || math.IsInf(w.Weight, 0) || w.Weight < 0 {
				return nil, fmt.Errorf("%w: position %q has invalid weight %g for %q", ErrInvalidInput, def.Slot, w.Weight, w.Stat)
			}
			terms = append(terms, compiledTerm{col: col, weight: w.Weight})
		}
		compiled[k] = terms
	}
	return compiled, nil
}

// BuildFitnessMatrix turns raw per-90 rates into a players x positions fitness matrix.
//
// Every stat column is normalized by its maximum, then each position scores a player as
// the weighted sum of the normalized stats it references. Weights are used exactly as
// given: a definition whose weights do not sum to 1.0 yields scores on a different scale.
// Row and column order follow squad.Players and defs.
func BuildFitnessMatrix(squad schema.Squad, defs []schema.PositionDef) (schema.FitnessMatrix, error) {
	compiled, err := compileDefinitions(squad.Stats, defs)
	if err != nil {
		return schema.FitnessMatrix{}, err
	}

	normalized, err := NormalizeColumns(squad.Players, len(squad.Stats))
	if err != nil {
		return schema.FitnessMatrix{}, err
	}

	matrix := schema.FitnessMatrix{
		Players:   make([]string, len(squad.Players)),
		Positions: schema.Slots(defs),
		Scores:    make([][]float64, len(squad.Players)),
	}
	for i, p := range squad.Players {
		matrix.Players[i] = p.Name
		row := make([]float64, len(defs))
		for k, terms := range compiled {
			score := 0.0
			for _, t := range terms {
				score += t.weight * normalized[i][t.col]
			}
			row[k] = score
		}
		matrix.Scores[i] = row
	}
	return matrix, nil
}
