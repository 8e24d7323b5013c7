package core

import (
	"fmt"
	"math"
	"math/rand/v2"

	"github.com/huangsam/lineup/schema"
)

// sampleSeedMix decorrelates the two PCG words derived from one seed.
const sampleSeedMix = 0x9e3779b97f4a7c15

// sampleRanges holds plausible per-90 maxima for the default stats.
// Any other stat is drawn from [0, 1).
var sampleRanges = map[schema.StatKey]float64{
	schema.StatXG:          0.8,
	schema.StatXA:          0.5,
	schema.StatProgCarries: 8,
	schema.StatProgPasses:  10,
}

// GenerateSampleSquad returns a synthetic squad drawn from seed.
// The same seed, size and stats always produce the same squad.
func GenerateSampleSquad(seed uint64, players int, stats []schema.StatKey) (schema.Squad, error) {
	if players < 1 {
		return schema.Squad{}, fmt.Errorf("players must be at least 1, got %d", players)
	}
	if len(stats) == 0 {
		return schema.Squad{}, fmt.Errorf("at least one stat is required")
	}

	rng := rand.New(rand.NewPCG(seed, seed^sampleSeedMix))
	squad := schema.Squad{
		Stats:   append([]schema.StatKey(nil), stats...),
		Players: make([]schema.Player, players),
	}
	width := len(fmt.Sprint(players))
	for i := range players {
		rates := make([]float64, len(stats))
		for j, stat := range stats {
			upper, ok := sampleRanges[stat]
			if !ok {
				upper = 1
			}
			rates[j] = math.Round(rng.Float64()*upper*100) / 100
		}
		squad.Players[i] = schema.Player{
			Name:  fmt.Sprintf("Player %0*d", width, i+1),
			Rates: rates,
		}
	}
	return squad, nil
}
