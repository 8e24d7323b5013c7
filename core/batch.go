package core

import (
	"context"

	"github.com/huangsam/lineup/internal/contract"
	"github.com/huangsam/lineup/schema"
	"golang.org/x/sync/errgroup"
)

// RunBatch optimizes every squad file concurrently with at most cfg.Workers solves in flight.
// Items keep the order of paths. A failing squad records its error in its own item
// and never stops the others.
func RunBatch(ctx context.Context, cfg *contract.Config, mgr contract.CacheManager, paths []string) []schema.BatchItem {
	items := make([]schema.BatchItem, len(paths))
	ctx = withSuppressHeader(ctx)

	var g errgroup.Group
	g.SetLimit(max(cfg.Workers, 1))
	for i, path := range paths {
		g.Go(func() error {
			items[i] = optimizeBatchItem(ctx, cfg, mgr, path)
			return nil
		})
	}
	_ = g.Wait()
	return items
}

// optimizeBatchItem loads and solves one squad of a batch.
func optimizeBatchItem(ctx context.Context, cfg *contract.Config, mgr contract.CacheManager, path string) schema.BatchItem {
	item := schema.BatchItem{Source: path}
	if err := ctx.Err(); err != nil {
		item.Err = err.Error()
		return item
	}

	squad, err := LoadSquad(path, cfg.Stats, cfg.FillMissing)
	if err != nil {
		item.Err = err.Error()
		return item
	}
	lineup, err := OptimizeSquad(ctx, cfg, mgr, squad, path)
	if err != nil {
		item.Err = err.Error()
		return item
	}
	item.Lineup = lineup
	return item
}
