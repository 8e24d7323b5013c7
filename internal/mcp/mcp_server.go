// Package mcp provides the Model Context Protocol (MCP) server implementation.
package mcp

import (
	"context"

	"github.com/huangsam/lineup/internal/contract"
	"github.com/huangsam/lineup/internal/metrics"
	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
)

// NewMCPServer initializes and configures the lineup MCP server without starting it.
// obs may be nil. This is exposed for unit testing.
func NewMCPServer(baseCfg *contract.Config, mgr contract.CacheManager, obs contract.SolveObserver) *server.MCPServer {
	s := server.NewMCPServer(
		"Lineup Optimizer Server",
		"1.0.0",
		server.WithLogging(),
	)

	h := &toolHandler{
		baseCfg:  baseCfg,
		mgr:      mgr,
		observer: obs,
	}

	// --- 1. Tool: build_fitness_matrix ---
	s.AddTool(mcp.NewTool("build_fitness_matrix",
		mcp.WithDescription("Score every player against every formation slot. Returns the fitness matrix as JSON."),
		mcp.WithString("squad_json", mcp.Description(`JSON array of players, e.g. [{"name":"Bruno","stats":{"xg_p90":0.3,"xa_p90":0.4,"prog_carries_p90":2,"prog_passes_p90":8}}].`), mcp.Required()),
		mcp.WithString("formation_yaml", mcp.Description("Optional YAML with stats, formation and roles sections overriding the configured scoring model.")),
		mcp.WithBoolean("fill_missing", mcp.Description("Treat missing stats as 0 instead of failing.")),
	), h.handleBuildFitnessMatrix)

	// --- 2. Tool: solve_assignment ---
	s.AddTool(mcp.NewTool("solve_assignment",
		mcp.WithDescription("Find the player-to-position assignment with the maximum total fitness."),
		mcp.WithString("matrix_json", mcp.Description(`Fitness matrix as {"players":[...],"positions":[...],"scores":[[...]]}.`), mcp.Required()),
	), h.handleSolveAssignment)

	// --- 3. Tool: optimize_lineup ---
	s.AddTool(mcp.NewTool("optimize_lineup",
		mcp.WithDescription("Load a squad file (CSV or Parquet), build its fitness matrix and solve the lineup."),
		mcp.WithString("path", mcp.Description("Path to the squad file."), mcp.Required()),
		mcp.WithString("formation_yaml", mcp.Description("Optional YAML overriding the configured scoring model.")),
		mcp.WithBoolean("fill_missing", mcp.Description("Treat missing stats as 0 instead of failing.")),
	), h.handleOptimizeLineup)

	// --- 4. Tool: best_roles ---
	s.AddTool(mcp.NewTool("best_roles",
		mcp.WithDescription("Rate every player of a squad file against the configured roles, best fits first."),
		mcp.WithString("path", mcp.Description("Path to the squad file."), mcp.Required()),
		mcp.WithNumber("limit", mcp.Description("Limit the number of players returned.")),
	), h.handleBestRoles)

	return s
}

// StartMCPServer starts the lineup MCP server on stdio.
// A non-empty metricsAddr also serves Prometheus metrics for the lifetime of ctx.
func StartMCPServer(ctx context.Context, baseCfg *contract.Config, mgr contract.CacheManager, metricsAddr string) error {
	var obs contract.SolveObserver
	if metricsAddr != "" {
		rec := metrics.NewRecorder()
		obs = rec
		go func() {
			if err := rec.Serve(ctx, metricsAddr); err != nil {
				contract.LogWarn("Metrics server stopped", err)
			}
		}()
	}
	s := NewMCPServer(baseCfg, mgr, obs)
	return server.ServeStdio(s)
}
