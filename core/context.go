package core

import (
	"context"

	"github.com/huangsam/lineup/internal/contract"
)

// Context keys for run options
type contextKey string

const (
	suppressHeaderKey contextKey = "suppressHeader"
	runIDKey          contextKey = "runID"
	observerKey       contextKey = "observer"
)

// withSuppressHeader sets whether run headers should be suppressed in the context
func withSuppressHeader(ctx context.Context) context.Context {
	return context.WithValue(ctx, suppressHeaderKey, true)
}

// WithSuppressHeader is the exported form used by long-running surfaces such as MCP.
func WithSuppressHeader(ctx context.Context) context.Context {
	return withSuppressHeader(ctx)
}

// shouldSuppressHeader returns whether run headers should be suppressed from context
func shouldSuppressHeader(ctx context.Context) bool {
	val := ctx.Value(suppressHeaderKey)
	if val == nil {
		return false // default: show headers
	}
	suppress, ok := val.(bool)
	return ok && suppress
}

// withRunID stores the history row id of the current run
func withRunID(ctx context.Context, runID int64) context.Context {
	return context.WithValue(ctx, runIDKey, runID)
}

// getRunID returns the history row id of the current run, if any
func getRunID(ctx context.Context) (int64, bool) {
	val := ctx.Value(runIDKey)
	if val == nil {
		return 0, false
	}
	runID, ok := val.(int64)
	return runID, ok
}

// WithObserver attaches a SolveObserver that is told about every solve.
func WithObserver(ctx context.Context, obs contract.SolveObserver) context.Context {
	return context.WithValue(ctx, observerKey, obs)
}

// observerFrom returns the attached SolveObserver, or nil
func observerFrom(ctx context.Context) contract.SolveObserver {
	obs, _ := ctx.Value(observerKey).(contract.SolveObserver)
	return obs
}
