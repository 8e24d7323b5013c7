package core

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/huangsam/lineup/core/algo"
	"github.com/huangsam/lineup/internal/contract"
	"github.com/huangsam/lineup/schema"
	"github.com/sirupsen/logrus"
)

// OptimizeSquad scores the squad against the configured formation and solves the lineup.
func OptimizeSquad(ctx context.Context, cfg *contract.Config, mgr contract.CacheManager, squad schema.Squad, source string) (*schema.LineupResult, error) {
	matrix, err := algo.BuildFitnessMatrix(squad, cfg.Formation)
	if err != nil {
		return nil, err
	}
	return SolveMatrix(ctx, cfg, mgr, matrix, source)
}

// SolveMatrix solves a ready fitness matrix, going through the solution cache and
// recording the run in history when those stores are configured.
func SolveMatrix(ctx context.Context, cfg *contract.Config, mgr contract.CacheManager, matrix schema.FitnessMatrix, source string) (*schema.LineupResult, error) {
	start := time.Now()
	runUUID := uuid.NewString()

	// Rejected matrices never open a history run
	if err := algo.ValidateMatrix(matrix); err != nil {
		observeSolve(ctx, matrix, false, err, time.Since(start))
		return nil, err
	}

	ctx, tracker := beginTracking(ctx, cfg, mgr, runUUID, source, start)
	if !shouldSuppressHeader(ctx) {
		logRunHeader(ctx, runUUID, source, matrix)
	}

	assignment, cached, err := cachedSolve(mgr, matrix)
	observeSolve(ctx, matrix, cached, err, time.Since(start))
	if err != nil {
		return nil, err
	}

	tracker.finish(matrix, assignment)

	return &schema.LineupResult{
		RunID:      runUUID,
		Source:     source,
		Matrix:     matrix,
		Assignment: assignment,
		Cached:     cached,
	}, nil
}

// logRunHeader logs the shape of the run about to be solved.
func logRunHeader(ctx context.Context, runUUID, source string, m schema.FitnessMatrix) {
	fields := logrus.Fields{
		"run":       runUUID,
		"source":    source,
		"players":   m.Rows(),
		"positions": m.Cols(),
	}
	if runID, ok := getRunID(ctx); ok {
		fields["history_id"] = runID
	}
	contract.LogInfo("Solving lineup", fields)
}

// observeSolve reports the solve to the observer attached to ctx, if any.
func observeSolve(ctx context.Context, m schema.FitnessMatrix, cached bool, err error, elapsed time.Duration) {
	obs := observerFrom(ctx)
	if obs == nil {
		return
	}
	outcome := contract.OutcomeSolved
	switch {
	case err != nil:
		outcome = contract.OutcomeFailed
	case cached:
		outcome = contract.OutcomeCached
	}
	obs.ObserveSolve(outcome, m.Rows()*m.Cols(), elapsed)
}

// AnalyzeRoles rates every player of the squad against the configured roles,
// best fits first, limited to cfg.ResultLimit players.
func AnalyzeRoles(cfg *contract.Config, squad schema.Squad) ([]schema.RoleFit, error) {
	fits, err := algo.BestRoles(squad, cfg.Roles)
	if err != nil {
		return nil, err
	}
	return algo.RankRoleFits(fits, cfg.ResultLimit), nil
}
