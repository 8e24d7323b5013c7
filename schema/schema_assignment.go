package schema

// Pair is a single player-to-position assignment.
// Score is always the original fitness, never a transformed cost.
type Pair struct {
	Player        string  `json:"player"`
	Position      string  `json:"position"`
	PlayerIndex   int     `json:"player_index"`
	PositionIndex int     `json:"position_index"`
	Score         float64 `json:"score"`
}

// AssignmentResult is the output of the Assignment Solver.
type AssignmentResult struct {
	Pairs               []Pair   `json:"pairs"` // Ordered by player index
	Total               float64  `json:"total"`
	UnassignedPlayers   []string `json:"unassigned_players"`
	UnassignedPositions []string `json:"unassigned_positions"`
}

// Efficiency is the achieved total over the number of positions.
// With normalized scores this is the share of the best possible lineup.
func (r AssignmentResult) Efficiency() float64 {
	slots := len(r.Pairs) + len(r.UnassignedPositions)
	if slots == 0 {
		return 0
	}
	return r.Total / float64(slots)
}

// PositionOf returns the position assigned to the player, if any.
func (r AssignmentResult) PositionOf(player string) (string, bool) {
	for _, p := range r.Pairs {
		if p.Player == player {
			return p.Position, true
		}
	}
	return "", false
}

// RoleRating is a single role score for a player.
type RoleRating struct {
	Role  string  `json:"role"`
	Score float64 `json:"score"`
}

// RoleFit is the role analysis of one player.
type RoleFit struct {
	Player    string       `json:"player"`
	Ratings   []RoleRating `json:"ratings"` // In role definition order
	BestRole  string       `json:"best_role"`
	BestScore float64      `json:"best_score"`
}

// LineupResult is one optimization run over a single squad or matrix.
type LineupResult struct {
	RunID      string           `json:"run_id"`
	Source     string           `json:"source"`
	Matrix     FitnessMatrix    `json:"matrix"`
	Assignment AssignmentResult `json:"assignment"`
	Cached     bool             `json:"cached"`
}

// BatchItem is the outcome for one squad of a batch run.
type BatchItem struct {
	Source string        `json:"source"`
	Lineup *LineupResult `json:"lineup,omitempty"`
	Err    string        `json:"error,omitempty"`
}
