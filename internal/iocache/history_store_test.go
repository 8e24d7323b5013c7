package iocache

import (
	"encoding/json"
	"path/filepath"
	"testing"
	"time"

	"github.com/huangsam/lineup/internal/contract"
	"github.com/huangsam/lineup/schema"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newSQLiteHistoryStore(t *testing.T) contract.HistoryStore {
	t.Helper()
	path := filepath.Join(t.TempDir(), "history.db")
	store, err := NewHistoryStore(schema.SQLiteBackend, path)
	require.NoError(t, err)
	t.Cleanup(func() { _ = store.Close() })
	return store
}

func TestHistoryStoreRunLifecycle(t *testing.T) {
	store := newSQLiteHistoryStore(t)
	start := time.Date(2026, 3, 1, 15, 0, 0, 0, time.UTC)

	runID, err := store.BeginRun(start, "uuid-1", "squad.csv", map[string]any{"workers": 4})
	require.NoError(t, err)
	assert.Equal(t, int64(1), runID)

	pairs := []schema.Pair{
		{Player: "Amad", Position: "RW", PlayerIndex: 0, PositionIndex: 2, Score: 1},
		{Player: "Cunha", Position: "ST", PlayerIndex: 1, PositionIndex: 3, Score: 1},
	}
	for _, p := range pairs {
		require.NoError(t, store.RecordAssignment(runID, p))
	}

	summary := contract.RunSummary{TotalPlayers: 3, TotalPositions: 2, TotalScore: 2, UnassignedPlayers: 1}
	require.NoError(t, store.EndRun(runID, start.Add(250*time.Millisecond), summary))

	runs, err := store.GetAllRuns()
	require.NoError(t, err)
	require.Len(t, runs, 1)
	run := runs[0]
	assert.Equal(t, runID, run.RunID)
	assert.Equal(t, "uuid-1", run.RunUUID)
	assert.Equal(t, "squad.csv", run.Source)
	assert.True(t, start.Equal(run.StartTime))
	require.NotNil(t, run.EndTime)
	assert.True(t, start.Add(250*time.Millisecond).Equal(*run.EndTime))
	require.NotNil(t, run.RunDurationMs)
	assert.Equal(t, int32(250), *run.RunDurationMs)
	assert.Equal(t, int32(3), run.TotalPlayers)
	assert.Equal(t, int32(2), run.TotalPositions)
	require.NotNil(t, run.TotalScore)
	assert.InDelta(t, 2.0, *run.TotalScore, 1e-9)
	assert.Equal(t, int32(1), run.UnassignedPlayers)
	assert.Equal(t, int32(0), run.UnassignedPositions)
	require.NotNil(t, run.ConfigParams)

	var params map[string]any
	require.NoError(t, json.Unmarshal([]byte(*run.ConfigParams), &params))
	assert.Equal(t, 4.0, params["workers"])

	assignments, err := store.GetAllAssignments()
	require.NoError(t, err)
	require.Len(t, assignments, 2)
	assert.Equal(t, schema.AssignmentRecord{RunID: runID, Player: "Amad", Position: "RW", PlayerIndex: 0, PositionIndex: 2, Score: 1}, assignments[0])
	assert.Equal(t, "ST", assignments[1].Position)
}

func TestHistoryStoreOpenRun(t *testing.T) {
	store := newSQLiteHistoryStore(t)
	runID, err := store.BeginRun(time.Now(), "uuid-open", "matrix.csv", nil)
	require.NoError(t, err)

	runs, err := store.GetAllRuns()
	require.NoError(t, err)
	require.Len(t, runs, 1)
	assert.Equal(t, runID, runs[0].RunID)
	assert.Nil(t, runs[0].EndTime)
	assert.Nil(t, runs[0].RunDurationMs)
	assert.Nil(t, runs[0].TotalScore)
}

func TestHistoryStoreDuplicateAssignment(t *testing.T) {
	store := newSQLiteHistoryStore(t)
	runID, err := store.BeginRun(time.Now(), "uuid-dup", "squad.csv", nil)
	require.NoError(t, err)

	pair := schema.Pair{Player: "Amad", Position: "RW", PlayerIndex: 0, PositionIndex: 2, Score: 1}
	require.NoError(t, store.RecordAssignment(runID, pair))
	assert.Error(t, store.RecordAssignment(runID, pair))
}

func TestHistoryStoreEndUnknownRun(t *testing.T) {
	store := newSQLiteHistoryStore(t)
	err := store.EndRun(99, time.Now(), contract.RunSummary{})
	assert.Error(t, err)
}

func TestHistoryStoreStatus(t *testing.T) {
	store := newSQLiteHistoryStore(t)

	status, err := store.GetStatus()
	require.NoError(t, err)
	assert.True(t, status.Connected)
	assert.Zero(t, status.TotalRuns)
	assert.Equal(t, int64(0), status.TableSizes[runsTable])

	first := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	second := first.Add(24 * time.Hour)
	_, err = store.BeginRun(first, "uuid-a", "a.csv", nil)
	require.NoError(t, err)
	runID, err := store.BeginRun(second, "uuid-b", "b.csv", nil)
	require.NoError(t, err)
	require.NoError(t, store.RecordAssignment(runID, schema.Pair{Player: "A", Position: "ST", Score: 0.5}))

	status, err = store.GetStatus()
	require.NoError(t, err)
	assert.Equal(t, 2, status.TotalRuns)
	assert.Equal(t, runID, status.LastRunID)
	assert.True(t, second.Equal(status.LastRunTime))
	assert.True(t, first.Equal(status.OldestRunTime))
	assert.Equal(t, 1, status.TotalAssignments)
	assert.Equal(t, int64(2), status.TableSizes[runsTable])
	assert.Equal(t, int64(1), status.TableSizes[assignmentsTable])
}

func TestNoneHistoryStore(t *testing.T) {
	store, err := NewHistoryStore(schema.NoneBackend, "")
	require.NoError(t, err)

	runID, err := store.BeginRun(time.Now(), "uuid", "squad.csv", nil)
	require.NoError(t, err)
	assert.Zero(t, runID)
	assert.NoError(t, store.RecordAssignment(runID, schema.Pair{}))
	assert.NoError(t, store.EndRun(runID, time.Now(), contract.RunSummary{}))

	runs, err := store.GetAllRuns()
	assert.NoError(t, err)
	assert.Empty(t, runs)

	status, err := store.GetStatus()
	require.NoError(t, err)
	assert.False(t, status.Connected)
	assert.NoError(t, store.Close())
}

func TestNewHistoryStoreUnsupportedBackend(t *testing.T) {
	_, err := NewHistoryStore("oracle", "")
	assert.Error(t, err)
}
