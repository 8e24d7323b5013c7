package algo

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func FuzzSolveAssignment(f *testing.F) {
	f.Add(uint64(1), uint8(3), uint8(3))
	f.Add(uint64(7), uint8(2), uint8(5))
	f.Add(uint64(99), uint8(6), uint8(1))

	f.Fuzz(func(t *testing.T, seed uint64, rows, cols uint8) {
		r := int(rows%6) + 1
		c := int(cols%6) + 1
		m := randomMatrix(seed, r, c)

		result, err := SolveAssignment(m)
		require.NoError(t, err)
		assertValidMatching(t, m, result)
		assert.InDelta(t, bruteForceMax(m.Scores), result.Total, 1e-9)
	})
}
