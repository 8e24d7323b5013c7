// Package contract provides interfaces and shared utilities for internal architecture.
package contract

import (
	"time"

	"github.com/huangsam/lineup/schema"
)

// CacheManager defines the interface for managing cache stores.
// This allows the cache layer to be mocked for testing.
type CacheManager interface {
	GetSolutionStore() CacheStore
	GetHistoryStore() HistoryStore
}

// CacheStore defines the interface for cache data storage.
// This allows mocking the store for testing.
type CacheStore interface {
	Get(key string) ([]byte, int, int64, error)
	Set(key string, value []byte, version int, timestamp int64) error
	GetStatus() (schema.CacheStatus, error)
	Close() error
}

// HistoryStore defines the interface for tracking optimization runs and their assignments.
type HistoryStore interface {
	// BeginRun creates a new run and returns its database ID
	BeginRun(startTime time.Time, runUUID, source string, configParams map[string]any) (int64, error)

	// EndRun updates the run with completion data
	EndRun(runID int64, endTime time.Time, summary RunSummary) error

	// RecordAssignment stores one player-to-position pair of a run
	RecordAssignment(runID int64, pair schema.Pair) error

	// GetStatus returns status information about the history store
	GetStatus() (schema.HistoryStatus, error)

	// GetAllRuns returns every recorded run, oldest first
	GetAllRuns() ([]schema.RunRecord, error)

	// GetAllAssignments returns every recorded assignment ordered by run
	GetAllAssignments() ([]schema.AssignmentRecord, error)

	// Close closes the underlying connection
	Close() error
}

// RunSummary is the completion data written when a run ends.
type RunSummary struct {
	TotalPlayers        int
	TotalPositions      int
	TotalScore          float64
	UnassignedPlayers   int
	UnassignedPositions int
}

// SummarizeRun derives a RunSummary from a matrix and its assignment.
func SummarizeRun(m schema.FitnessMatrix, r schema.AssignmentResult) RunSummary {
	return RunSummary{
		TotalPlayers:        m.Rows(),
		TotalPositions:      m.Cols(),
		TotalScore:          r.Total,
		UnassignedPlayers:   len(r.UnassignedPlayers),
		UnassignedPositions: len(r.UnassignedPositions),
	}
}

// Solve outcomes reported to a SolveObserver.
const (
	OutcomeSolved = "solved"
	OutcomeCached = "cached"
	OutcomeFailed = "failed"
)

// SolveObserver receives one event per solve. The metrics recorder implements it.
// Cells is the number of matrix cells (players times positions).
type SolveObserver interface {
	ObserveSolve(outcome string, cells int, elapsed time.Duration)
}
