package mcp

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/huangsam/lineup/core"
	"github.com/huangsam/lineup/core/algo"
	"github.com/huangsam/lineup/internal/contract"
	"github.com/huangsam/lineup/schema"
	"github.com/mark3labs/mcp-go/mcp"
)

// mcpSource is the run source recorded for matrices passed inline.
const mcpSource = "mcp"

// toolHandler holds common dependencies for MCP tool handlers.
type toolHandler struct {
	baseCfg  *contract.Config
	mgr      contract.CacheManager
	observer contract.SolveObserver
}

// runContext suppresses run headers on stdio and attaches the metrics observer.
func (h *toolHandler) runContext(ctx context.Context) context.Context {
	ctx = core.WithSuppressHeader(ctx)
	if h.observer != nil {
		ctx = core.WithObserver(ctx, h.observer)
	}
	return ctx
}

// configFor clones the base config and applies the request's formation_yaml, if any.
func (h *toolHandler) configFor(request mcp.CallToolRequest) (*contract.Config, error) {
	if doc := request.GetString("formation_yaml", ""); strings.TrimSpace(doc) != "" {
		return contract.ApplyFormationYAML(h.baseCfg, []byte(doc))
	}
	return h.baseCfg.Clone(), nil
}

// errorKind names the error class for tool error messages.
func errorKind(err error) string {
	switch {
	case errors.Is(err, algo.ErrInvalidInput):
		return "InvalidInput"
	case errors.Is(err, algo.ErrInvalidMatrix):
		return "InvalidMatrix"
	case errors.Is(err, algo.ErrEmptyInput):
		return "EmptyInput"
	default:
		return "Error"
	}
}

func toolError(action string, err error) *mcp.CallToolResult {
	return mcp.NewToolResultError(fmt.Sprintf("%s failed [%s]: %v", action, errorKind(err), err))
}

func jsonResult(v any) (*mcp.CallToolResult, error) {
	jsonData, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return nil, err
	}
	return mcp.NewToolResultText(string(jsonData)), nil
}

func (h *toolHandler) handleBuildFitnessMatrix(_ context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	cfg, err := h.configFor(request)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("invalid formation_yaml: %v", err)), nil
	}

	var records []schema.PlayerRecord
	dec := json.NewDecoder(strings.NewReader(request.GetString("squad_json", "")))
	dec.DisallowUnknownFields()
	if err := dec.Decode(&records); err != nil {
		return toolError("build", fmt.Errorf("%w: squad_json: %v", algo.ErrInvalidInput, err)), nil
	}

	squad, err := core.BuildSquad(cfg.Stats, records, request.GetBool("fill_missing", false))
	if err != nil {
		return toolError("build", err), nil
	}
	matrix, err := algo.BuildFitnessMatrix(squad, cfg.Formation)
	if err != nil {
		return toolError("build", err), nil
	}
	return jsonResult(matrix)
}

func (h *toolHandler) handleSolveAssignment(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	matrix, err := core.ReadMatrixJSON(strings.NewReader(request.GetString("matrix_json", "")))
	if err != nil {
		return toolError("solve", err), nil
	}

	result, err := core.SolveMatrix(h.runContext(ctx), h.baseCfg, h.mgr, matrix, mcpSource)
	if err != nil {
		return toolError("solve", err), nil
	}
	return jsonResult(result.Assignment)
}

func (h *toolHandler) handleOptimizeLineup(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	cfg, err := h.configFor(request)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("invalid formation_yaml: %v", err)), nil
	}
	path := request.GetString("path", "")
	if path == "" {
		return mcp.NewToolResultError("path is required"), nil
	}

	squad, err := core.LoadSquad(path, cfg.Stats, request.GetBool("fill_missing", cfg.FillMissing))
	if err != nil {
		return toolError("optimize", err), nil
	}
	result, err := core.OptimizeSquad(h.runContext(ctx), cfg, h.mgr, squad, path)
	if err != nil {
		return toolError("optimize", err), nil
	}
	return jsonResult(result)
}

func (h *toolHandler) handleBestRoles(_ context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	cfg := h.baseCfg.Clone()
	if l := request.GetInt("limit", 0); l > 0 {
		cfg.ResultLimit = l
	}
	path := request.GetString("path", "")
	if path == "" {
		return mcp.NewToolResultError("path is required"), nil
	}

	squad, err := core.LoadSquad(path, cfg.Stats, cfg.FillMissing)
	if err != nil {
		return toolError("roles", err), nil
	}
	fits, err := core.AnalyzeRoles(cfg, squad)
	if err != nil {
		return toolError("roles", err), nil
	}
	return jsonResult(fits)
}
