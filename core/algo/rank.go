package algo

import (
	"math"
	"slices"
	"sort"

	"github.com/huangsam/lineup/schema"
)

// RankRoleFits sorts players by their best role rating in descending order
// and returns the top 'limit' players. Ratings within tieEpsilon keep alphabetical order.
// A non-positive limit returns every player.
func RankRoleFits(fits []schema.RoleFit, limit int) []schema.RoleFit {
	ranked := slices.Clone(fits)
	sort.SliceStable(ranked, func(i, j int) bool {
		if math.Abs(ranked[i].BestScore-ranked[j].BestScore) > tieEpsilon {
			return ranked[i].BestScore > ranked[j].BestScore
		}
		return ranked[i].Player < ranked[j].Player
	})
	if limit > 0 && len(ranked) > limit {
		return ranked[:limit]
	}
	return ranked
}

// PairsByPosition returns the pairs in formation order rather than player order.
func PairsByPosition(pairs []schema.Pair) []schema.Pair {
	ordered := slices.Clone(pairs)
	sort.SliceStable(ordered, func(i, j int) bool {
		return ordered[i].PositionIndex < ordered[j].PositionIndex
	})
	return ordered
}
