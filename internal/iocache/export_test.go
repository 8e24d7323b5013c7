package iocache

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/huangsam/lineup/internal/contract"
	"github.com/huangsam/lineup/internal/parquet"
	"github.com/huangsam/lineup/schema"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExecuteHistoryExport(t *testing.T) {
	store := newSQLiteHistoryStore(t)
	start := time.Date(2026, 3, 1, 15, 0, 0, 0, time.UTC)
	runID, err := store.BeginRun(start, "uuid-1", "squad.csv", map[string]any{"workers": 2})
	require.NoError(t, err)
	require.NoError(t, store.RecordAssignment(runID, schema.Pair{Player: "Cunha", Position: "ST", PlayerIndex: 1, PositionIndex: 3, Score: 1}))
	require.NoError(t, store.EndRun(runID, start.Add(time.Second), contract.RunSummary{TotalPlayers: 1, TotalPositions: 1, TotalScore: 1}))

	prefix := filepath.Join(t.TempDir(), "export")
	var out bytes.Buffer
	require.NoError(t, ExecuteHistoryExport(store, prefix, &out))
	assert.Contains(t, out.String(), "Exported 1 runs")
	assert.Contains(t, out.String(), "Exported 1 assignments")

	runsFile, assignmentsFile := ExportPaths(prefix)
	assert.Equal(t, prefix+".lineup_runs.parquet", runsFile)
	assert.Equal(t, prefix+".lineup_assignments.parquet", assignmentsFile)

	runs, err := parquet.ReadLineupRunsParquet(runsFile)
	require.NoError(t, err)
	require.Len(t, runs, 1)
	assert.Equal(t, "uuid-1", runs[0].RunUUID)

	assignments, err := parquet.ReadLineupAssignmentsParquet(assignmentsFile)
	require.NoError(t, err)
	require.Len(t, assignments, 1)
	assert.Equal(t, "Cunha", assignments[0].Player)
}

func TestExecuteHistoryExportErrors(t *testing.T) {
	var out bytes.Buffer

	err := ExecuteHistoryExport(&MockHistoryStore{}, "", &out)
	assert.ErrorContains(t, err, "--output-file")

	err = ExecuteHistoryExport(nil, "out", &out)
	assert.Error(t, err)

	empty := &MockHistoryStore{}
	empty.On("GetStatus").Return(schema.HistoryStatus{Backend: "sqlite", Connected: true}, nil)
	err = ExecuteHistoryExport(empty, "out", &out)
	assert.ErrorIs(t, err, ErrNoHistory)
	empty.AssertExpectations(t)

	failing := &MockHistoryStore{}
	failing.On("GetStatus").Return(schema.HistoryStatus{TotalRuns: 1}, nil)
	failing.On("GetAllRuns").Return(nil, errors.New("boom"))
	err = ExecuteHistoryExport(failing, filepath.Join(t.TempDir(), "out"), &out)
	assert.ErrorContains(t, err, "failed to retrieve runs")
}

func TestExecuteHistoryExportUnwritable(t *testing.T) {
	store := &MockHistoryStore{}
	store.On("GetStatus").Return(schema.HistoryStatus{TotalRuns: 1}, nil)
	store.On("GetAllRuns").Return([]schema.RunRecord{{RunID: 1, StartTime: time.Now()}}, nil)
	store.On("GetAllAssignments").Return([]schema.AssignmentRecord{}, nil)

	dir := filepath.Join(t.TempDir(), "missing", "dir")
	err := ExecuteHistoryExport(store, filepath.Join(dir, "out"), &bytes.Buffer{})
	assert.ErrorContains(t, err, "failed to write runs")
	_, statErr := os.Stat(dir)
	assert.True(t, os.IsNotExist(statErr))
}
