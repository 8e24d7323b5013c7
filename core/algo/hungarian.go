package algo

import (
	"fmt"
	"math"

	"github.com/huangsam/lineup/schema"
	"gonum.org/v1/gonum/mat"
)

// tieEpsilon is the tolerance under which two reduced costs count as equal.
// Near-ties resolve to the lowest column index.
const tieEpsilon = 1e-9

// validateMatrix returns the matrix shape or a classified error.
func validateMatrix(m schema.FitnessMatrix) (rows, cols int, err error) {
	rows = len(m.Scores)
	if rows == 0 {
		return 0, 0, fmt.Errorf("%w: matrix has no players", ErrEmptyInput)
	}
	cols = len(m.Scores[0])
	for i, row := range m.Scores {
		if len(row) != cols {
			return 0, 0, fmt.Errorf("%w: row %d has %d scores, want %d", ErrInvalidMatrix, i, len(row), cols)
		}
		for j, v := range row {
			if math.IsNaN(v) || math.IsInf(v, 0) {
				return 0, 0, fmt.Errorf("%w: non-finite score at (%d, %d)", ErrInvalidMatrix, i, j)
			}
		}
	}
	if cols == 0 {
		return 0, 0, fmt.Errorf("%w: matrix has no positions", ErrEmptyInput)
	}
	if err := checkScoreRange(m.Scores, max(rows, cols)); err != nil {
		return 0, 0, err
	}
	if len(m.Players) != 0 && len(m.Players) != rows {
		return 0, 0, fmt.Errorf("%w: %d player labels for %d rows", ErrInvalidMatrix, len(m.Players), rows)
	}
	if len(m.Positions) != 0 && len(m.Positions) != cols {
		return 0, 0, fmt.Errorf("%w: %d position labels for %d columns", ErrInvalidMatrix, len(m.Positions), cols)
	}
	return rows, cols, nil
}

// ValidateMatrix reports whether SolveAssignment would accept m.
func ValidateMatrix(m schema.FitnessMatrix) error {
	_, _, err := validateMatrix(m)
	return err
}

// checkScoreRange rejects matrices whose spread is so wide that the cost transform
// or the potentials summed over n rows could overflow to infinity.
func checkScoreRange(scores [][]float64, n int) error {
	lo, hi := math.Inf(1), math.Inf(-1)
	for _, row := range scores {
		for _, v := range row {
			lo = math.Min(lo, v)
			hi = math.Max(hi, v)
		}
	}
	limit := math.MaxFloat64 / float64(2*n)
	if spread := hi - lo; math.IsInf(spread, 0) || spread > limit {
		return fmt.Errorf("%w: scores span [%g, %g], wider than %g", ErrInvalidMatrix, lo, hi, limit)
	}
	return nil
}

// SolveAssignment finds the one-to-one matching of players to positions with the maximum
// total score. Rectangular matrices are supported: min(rows, cols) pairs are produced and
// the surplus players or positions are listed as unassigned.
//
// The same matrix always yields the same result.
func SolveAssignment(m schema.FitnessMatrix) (schema.AssignmentResult, error) {
	rows, cols, err := validateMatrix(m)
	if err != nil {
		return schema.AssignmentResult{}, err
	}

	// Maximization becomes minimization via cost = K - score, K being the largest score.
	// Padding cells keep a constant cost of zero so they never influence the choice.
	k := math.Inf(-1)
	for _, row := range m.Scores {
		for _, v := range row {
			k = math.Max(k, v)
		}
	}
	n := max(rows, cols)
	cost := mat.NewDense(n, n, nil)
	for i := range rows {
		for j := range cols {
			cost.Set(i, j, k-m.Scores[i][j])
		}
	}

	colOf := minCostAssignment(cost)

	result := schema.AssignmentResult{
		Pairs:               make([]schema.Pair, 0, min(rows, cols)),
		UnassignedPlayers:   []string{},
		UnassignedPositions: []string{},
	}
	filled := make([]bool, cols)
	for i := range rows {
		j := colOf[i]
		if j >= cols {
			result.UnassignedPlayers = append(result.UnassignedPlayers, playerLabel(m, i))
			continue
		}
		filled[j] = true
		score := m.Scores[i][j]
		result.Pairs = append(result.Pairs, schema.Pair{
			Player:        playerLabel(m, i),
			Position:      positionLabel(m, j),
			PlayerIndex:   i,
			PositionIndex: j,
			Score:         score,
		})
		result.Total += score
	}
	for j := range cols {
		if !filled[j] {
			result.UnassignedPositions = append(result.UnassignedPositions, positionLabel(m, j))
		}
	}
	return result, nil
}

// minCostAssignment solves the square assignment problem on cost with the
// Kuhn-Munkres primal-dual method using row and column potentials.
// It returns, for every row, the column assigned to it.
func minCostAssignment(cost *mat.Dense) []int {
	n, _ := cost.Dims()
	inf := math.Inf(1)

	// Index 0 is a sentinel column; rows and columns are 1-based below.
	u := make([]float64, n+1)
	v := make([]float64, n+1)
	owner := make([]int, n+1) // owner[j] is the row matched to column j, 0 if free
	way := make([]int, n+1)
	minv := make([]float64, n+1)
	used := make([]bool, n+1)

	for i := 1; i <= n; i++ {
		owner[0] = i
		j0 := 0
		for j := range minv {
			minv[j] = inf
			used[j] = false
		}

		for {
			used[j0] = true
			i0 := owner[j0]
			delta := inf
			j1 := 0
			for j := 1; j <= n; j++ {
				if used[j] {
					continue
				}
				cur := cost.At(i0-1, j-1) - u[i0] - v[j]
				if cur < minv[j] {
					minv[j] = cur
					way[j] = j0
				}
				if minv[j] < delta-tieEpsilon {
					delta = minv[j]
					j1 = j
				}
			}
			for j := 0; j <= n; j++ {
				if used[j] {
					u[owner[j]] += delta
					v[j] -= delta
				} else {
					minv[j] -= delta
				}
			}
			j0 = j1
			if owner[j0] == 0 {
				break
			}
		}

		// Augment along the alternating path back to the sentinel.
		for j0 != 0 {
			j1 := way[j0]
			owner[j0] = owner[j1]
			j0 = j1
		}
	}

	colOf := make([]int, n)
	for j := 1; j <= n; j++ {
		if owner[j] != 0 {
			colOf[owner[j]-1] = j - 1
		}
	}
	return colOf
}

func playerLabel(m schema.FitnessMatrix, i int) string {
	if i < len(m.Players) {
		return m.Players[i]
	}
	return fmt.Sprintf("player_%d", i+1)
}

func positionLabel(m schema.FitnessMatrix, j int) string {
	if j < len(m.Positions) {
		return m.Positions[j]
	}
	return fmt.Sprintf("position_%d", j+1)
}
