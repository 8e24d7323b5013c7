package algo

import (
	"fmt"
	"math"

	"github.com/huangsam/lineup/schema"
	"gonum.org/v1/gonum/floats"
)

// validateRates checks every player's rate vector against the declared stat count.
func validateRates(players []schema.Player, nStats int) error {
	for _, p := range players {
		if len(p.Rates) < nStats {
			return fmt.Errorf("%w: player %q has %d rates, want %d", ErrInvalidInput, p.Name, len(p.Rates), nStats)
		}
		for j := range nStats {
			v := p.Rates[j]
			if math.IsNaN(v) || math.IsInf(v, 0) {
				return fmt.Errorf("%w: player %q has non-finite rate in column %d", ErrInvalidInput, p.Name, j)
			}
			if v < 0 {
				return fmt.Errorf("%w: player %q has negative rate %g in column %d", ErrInvalidInput, p.Name, v, j)
			}
		}
	}
	return nil
}

// NormalizeColumns divides each of the first nStats columns by its maximum across players.
// A column whose maximum is zero normalizes to exactly zero.
// The returned slice is indexed [player][stat] and never aliases the input.
func NormalizeColumns(players []schema.Player, nStats int) ([][]float64, error) {
	if err := validateRates(players, nStats); err != nil {
		return nil, err
	}

	out := make([][]float64, len(players))
	for i := range players {
		out[i] = make([]float64, nStats)
	}
	if len(players) == 0 {
		return out, nil
	}

	column := make([]float64, len(players))
	for j := range nStats {
		for i, p := range players {
			column[i] = p.Rates[j]
		}
		colMax := floats.Max(column)
		if colMax == 0 {
			continue // already zero
		}
		for i := range players {
			out[i][j] = column[i] / colMax
		}
	}
	return out, nil
}
