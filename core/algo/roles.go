package algo

import (
	"fmt"

	"github.com/huangsam/lineup/schema"
)

// BestRoles rates every player against every role and picks the best one.
// Roles are scored exactly like formation slots. When two ratings are within
// tieEpsilon of each other, the role listed first wins.
func BestRoles(squad schema.Squad, roles []schema.PositionDef) ([]schema.RoleFit, error) {
	if len(roles) == 0 {
		return nil, fmt.Errorf("%w: no roles defined", ErrInvalidInput)
	}
	matrix, err := BuildFitnessMatrix(squad, roles)
	if err != nil {
		return nil, err
	}

	fits := make([]schema.RoleFit, len(matrix.Scores))
	for i, row := range matrix.Scores {
		fit := schema.RoleFit{
			Player:  matrix.Players[i],
			Ratings: make([]schema.RoleRating, len(roles)),
		}
		best := 0
		for k, score := range row {
			fit.Ratings[k] = schema.RoleRating{Role: roles[k].Slot, Score: score}
			if score > row[best]+tieEpsilon {
				best = k
			}
		}
		fit.BestRole = roles[best].Slot
		fit.BestScore = row[best]
		fits[i] = fit
	}
	return fits, nil
}
