package schema

import "time"

// RunRecord represents a row from the lineup_runs table.
type RunRecord struct {
	RunID               int64
	RunUUID             string
	Source              string
	StartTime           time.Time
	EndTime             *time.Time
	RunDurationMs       *int32
	TotalPlayers        int32
	TotalPositions      int32
	TotalScore          *float64
	UnassignedPlayers   int32
	UnassignedPositions int32
	ConfigParams        *string
}

// AssignmentRecord represents a row from the lineup_assignments table.
type AssignmentRecord struct {
	RunID         int64
	Player        string
	Position      string
	PlayerIndex   int32
	PositionIndex int32
	Score         float64
}
