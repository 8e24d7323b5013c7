package core

import (
	"context"
	"time"

	"github.com/huangsam/lineup/internal/contract"
	"github.com/huangsam/lineup/schema"
)

// runTracker writes one run to the history store. A nil store turns every call into a no-op.
// Store failures are logged and never fail the run.
type runTracker struct {
	store contract.HistoryStore
	runID int64
}

// beginTracking opens a history row for the run when a history store is configured.
func beginTracking(ctx context.Context, cfg *contract.Config, mgr contract.CacheManager, runUUID, source string, start time.Time) (context.Context, *runTracker) {
	tracker := &runTracker{}
	if mgr == nil {
		return ctx, tracker
	}
	store := mgr.GetHistoryStore()
	if store == nil {
		return ctx, tracker
	}

	runID, err := store.BeginRun(start, runUUID, source, cfg.ConfigParams())
	if err != nil {
		contract.LogWarn("Run history initialization failed", err)
		return ctx, tracker
	}
	tracker.store = store
	tracker.runID = runID
	if runID > 0 {
		ctx = withRunID(ctx, runID)
	}
	return ctx, tracker
}

// finish records every pair and closes the run.
func (t *runTracker) finish(m schema.FitnessMatrix, result schema.AssignmentResult) {
	if t.store == nil || t.runID <= 0 {
		return
	}
	for _, pair := range result.Pairs {
		if err := t.store.RecordAssignment(t.runID, pair); err != nil {
			contract.LogWarn("Failed to record assignment", err)
			break
		}
	}
	if err := t.store.EndRun(t.runID, time.Now(), contract.SummarizeRun(m, result)); err != nil {
		contract.LogWarn("Failed to finalize run history", err)
	}
}
