// Package core has core logic for loading squads, optimizing lineups and tracking runs.
package core

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/huangsam/lineup/core/algo"
	"github.com/huangsam/lineup/internal/contract"
	"github.com/huangsam/lineup/internal/outwriter"
)

// ExecutorFunc defines the function signature for executing the different commands.
type ExecutorFunc func(ctx context.Context, cfg *contract.Config, mgr contract.CacheManager, args []string) error

// ExecuteOptimize loads a squad, solves the lineup and prints it.
// It serves as the main entry point for the 'optimize' command.
func ExecuteOptimize(ctx context.Context, cfg *contract.Config, mgr contract.CacheManager, args []string) error {
	path, err := singleArg(args, "squad file")
	if err != nil {
		return err
	}
	start := time.Now()
	squad, err := LoadSquad(path, cfg.Stats, cfg.FillMissing)
	if err != nil {
		return err
	}
	result, err := OptimizeSquad(ctx, cfg, mgr, squad, path)
	if err != nil {
		return err
	}
	return outwriter.NewOutWriter().WriteLineup(result, cfg, time.Since(start))
}

// ExecuteSolve solves a ready fitness matrix and prints the lineup.
func ExecuteSolve(ctx context.Context, cfg *contract.Config, mgr contract.CacheManager, args []string) error {
	path, err := singleArg(args, "matrix file")
	if err != nil {
		return err
	}
	start := time.Now()
	matrix, err := LoadMatrix(path)
	if err != nil {
		return err
	}
	result, err := SolveMatrix(ctx, cfg, mgr, matrix, path)
	if err != nil {
		return err
	}
	return outwriter.NewOutWriter().WriteLineup(result, cfg, time.Since(start))
}

// ExecuteMatrix loads a squad and prints its fitness matrix without solving it.
func ExecuteMatrix(_ context.Context, cfg *contract.Config, _ contract.CacheManager, args []string) error {
	path, err := singleArg(args, "squad file")
	if err != nil {
		return err
	}
	start := time.Now()
	squad, err := LoadSquad(path, cfg.Stats, cfg.FillMissing)
	if err != nil {
		return err
	}
	matrix, err := algo.BuildFitnessMatrix(squad, cfg.Formation)
	if err != nil {
		return err
	}
	return outwriter.NewOutWriter().WriteMatrix(matrix, cfg, time.Since(start))
}

// ExecuteRoles loads a squad and prints each player's best role.
func ExecuteRoles(_ context.Context, cfg *contract.Config, _ contract.CacheManager, args []string) error {
	path, err := singleArg(args, "squad file")
	if err != nil {
		return err
	}
	start := time.Now()
	squad, err := LoadSquad(path, cfg.Stats, cfg.FillMissing)
	if err != nil {
		return err
	}
	fits, err := AnalyzeRoles(cfg, squad)
	if err != nil {
		return err
	}
	return outwriter.NewOutWriter().WriteRoles(fits, cfg, time.Since(start))
}

// ExecuteBatch optimizes several squads concurrently and prints a summary.
// It fails only when every squad failed.
func ExecuteBatch(ctx context.Context, cfg *contract.Config, mgr contract.CacheManager, args []string) error {
	if len(args) == 0 {
		return errors.New("at least one squad file is required")
	}
	start := time.Now()
	items := RunBatch(ctx, cfg, mgr, args)
	if err := outwriter.NewOutWriter().WriteBatch(items, cfg, time.Since(start)); err != nil {
		return err
	}
	for _, item := range items {
		if item.Lineup != nil {
			return nil
		}
	}
	return fmt.Errorf("all %d squads failed", len(items))
}

// ExecuteSample writes a synthetic squad drawn from cfg.Seed.
func ExecuteSample(_ context.Context, cfg *contract.Config, _ contract.CacheManager, _ []string) error {
	squad, err := GenerateSampleSquad(cfg.Seed, cfg.SamplePlayers, cfg.Stats)
	if err != nil {
		return err
	}
	return outwriter.NewOutWriter().WriteSquad(squad, cfg)
}

// ExecutePositions prints the active stat set, formation and roles.
func ExecutePositions(_ context.Context, cfg *contract.Config, _ contract.CacheManager, _ []string) error {
	return outwriter.NewOutWriter().WritePositions(cfg)
}

func singleArg(args []string, what string) (string, error) {
	if len(args) != 1 {
		return "", fmt.Errorf("expected exactly one %s, got %d arguments", what, len(args))
	}
	return args[0], nil
}
