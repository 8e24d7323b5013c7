package algo

import (
	"testing"

	"github.com/huangsam/lineup/schema"
	"github.com/stretchr/testify/assert"
)

func TestRankRoleFits(t *testing.T) {
	fits := []schema.RoleFit{
		{Player: "Mount", BestScore: 0.40},
		{Player: "Amad", BestScore: 0.85},
		{Player: "Zirkzee", BestScore: 0.85},
		{Player: "Bruno", BestScore: 0.95},
	}

	tests := []struct {
		name     string
		limit    int
		expected []string
	}{
		{"all players", 0, []string{"Bruno", "Amad", "Zirkzee", "Mount"}},
		{"negative limit", -1, []string{"Bruno", "Amad", "Zirkzee", "Mount"}},
		{"top two", 2, []string{"Bruno", "Amad"}},
		{"limit beyond length", 10, []string{"Bruno", "Amad", "Zirkzee", "Mount"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ranked := RankRoleFits(fits, tt.limit)
			names := make([]string, len(ranked))
			for i, f := range ranked {
				names[i] = f.Player
			}
			assert.Equal(t, tt.expected, names)
		})
	}

	assert.Equal(t, "Mount", fits[0].Player, "input must not be reordered")
}

func TestRankRoleFits_NearTiesUseName(t *testing.T) {
	tenth, fifth := 0.1, 0.2
	fits := []schema.RoleFit{
		{Player: "Mbeumo", BestScore: 0.7 + 1e-12},
		{Player: "Cunha", BestScore: 0.7},
		{Player: "Amad", BestScore: tenth + fifth},
		{Player: "Dorgu", BestScore: 0.3},
	}

	ranked := RankRoleFits(fits, 0)
	names := make([]string, len(ranked))
	for i, f := range ranked {
		names[i] = f.Player
	}
	assert.Equal(t, []string{"Cunha", "Mbeumo", "Amad", "Dorgu"}, names)
}

func TestPairsByPosition(t *testing.T) {
	result, err := SolveAssignment(scenarioMatrix())
	assert.NoError(t, err)

	ordered := PairsByPosition(result.Pairs)
	positions := make([]string, len(ordered))
	for i, p := range ordered {
		positions[i] = p.Position
	}
	assert.Equal(t, []string{"LW", "AM", "RW", "ST"}, positions)
	assert.Equal(t, "Bruno", result.Pairs[0].Player, "input keeps player order")
}
