package algo

import (
	"math"
	"testing"

	"github.com/huangsam/lineup/schema"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNormalizeColumns(t *testing.T) {
	tests := []struct {
		name     string
		players  []schema.Player
		nStats   int
		expected [][]float64
	}{
		{
			name:     "no players",
			players:  nil,
			nStats:   3,
			expected: [][]float64{},
		},
		{
			name: "divides by column maximum",
			players: []schema.Player{
				{Name: "a", Rates: []float64{0.2, 4}},
				{Name: "b", Rates: []float64{0.4, 2}},
			},
			nStats:   2,
			expected: [][]float64{{0.5, 1}, {1, 0.5}},
		},
		{
			name: "all-zero column stays zero",
			players: []schema.Player{
				{Name: "a", Rates: []float64{0, 3}},
				{Name: "b", Rates: []float64{0, 1}},
			},
			nStats:   2,
			expected: [][]float64{{0, 1}, {0, 1.0 / 3}},
		},
		{
			name: "extra rates past nStats are ignored",
			players: []schema.Player{
				{Name: "a", Rates: []float64{2, 99}},
			},
			nStats:   1,
			expected: [][]float64{{1}},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := NormalizeColumns(tt.players, tt.nStats)
			require.NoError(t, err)
			require.Len(t, got, len(tt.expected))
			for i := range tt.expected {
				assert.InDeltaSlice(t, tt.expected[i], got[i], 1e-12)
			}
		})
	}
}

func TestNormalizeColumns_ZeroColumnIsExactlyZero(t *testing.T) {
	players := []schema.Player{
		{Name: "a", Rates: []float64{0, 0.3}},
		{Name: "b", Rates: []float64{0, 0.1}},
		{Name: "c", Rates: []float64{0, 0.0}},
	}
	got, err := NormalizeColumns(players, 2)
	require.NoError(t, err)
	for i := range players {
		assert.Equal(t, 0.0, got[i][0])
		assert.False(t, math.IsNaN(got[i][0]))
	}
}

func TestNormalizeColumns_DoesNotAliasInput(t *testing.T) {
	players := []schema.Player{{Name: "a", Rates: []float64{2, 4}}}
	got, err := NormalizeColumns(players, 2)
	require.NoError(t, err)
	got[0][0] = 42
	assert.Equal(t, []float64{2, 4}, players[0].Rates)
}

func TestNormalizeColumns_Errors(t *testing.T) {
	tests := []struct {
		name    string
		players []schema.Player
	}{
		{"short rate vector", []schema.Player{{Name: "a", Rates: []float64{0.1}}}},
		{"negative rate", []schema.Player{{Name: "a", Rates: []float64{0.1, -0.2}}}},
		{"NaN rate", []schema.Player{{Name: "a", Rates: []float64{math.NaN(), 0.2}}}},
		{"infinite rate", []schema.Player{{Name: "a", Rates: []float64{0.1, math.Inf(1)}}}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NormalizeColumns(tt.players, 2)
			assert.ErrorIs(t, err, ErrInvalidInput)
		})
	}
}
