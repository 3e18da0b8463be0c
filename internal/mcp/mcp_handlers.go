package mcp

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/huangsam/presetter/core"
	"github.com/huangsam/presetter/internal/contract"
	"github.com/huangsam/presetter/schema"
	"github.com/mark3labs/mcp-go/mcp"
)

// toolHandler holds common dependencies for MCP tool handlers.
type toolHandler struct {
	baseCfg *contract.Config
	catalog *core.Catalog
	mgr     contract.HistoryManager
}

// evaluation is the JSON body returned by evaluate_scores.
type evaluation struct {
	Presets []schema.EnrichedPresetResult `json:"presets"`
	Metrics []schema.Score                `json:"metrics"`
}

func (h *toolHandler) handleListMetrics(_ context.Context, _ mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	jsonData, _ := json.MarshalIndent(h.catalog.Definitions(), "", "  ")
	return mcp.NewToolResultText(string(jsonData)), nil
}

func (h *toolHandler) handleGetMetric(_ context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	id := request.GetString("metric", "")
	if id == "" {
		return mcp.NewToolResultError("metric is required"), nil
	}
	def, ok := h.catalog.Lookup(id)
	if !ok {
		return mcp.NewToolResultError(core.NewUnknownMetricError(id).Error()), nil
	}
	jsonData, _ := json.MarshalIndent(def, "", "  ")
	return mcp.NewToolResultText(string(jsonData)), nil
}

func (h *toolHandler) handleEvaluateScores(_ context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	values, ok := request.GetArguments()["scores"].(map[string]any)
	if !ok {
		return mcp.NewToolResultError("scores must be an object mapping metric ids to integer scores"), nil
	}

	scores, err := core.ScoreSetFromMap(values, h.catalog)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("invalid scores: %v", err)), nil
	}
	for _, id := range h.baseCfg.RequiredMetrics {
		if !scores.Has(id) {
			return mcp.NewToolResultError(fmt.Sprintf("invalid scores: %v", core.MissingMetricError(id))), nil
		}
	}

	start := time.Now()
	results, err := core.NewEvaluator(h.catalog).Evaluate(scores)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("evaluation failed: %v", err)), nil
	}
	core.RecordSession(h.mgr, schema.MCPSource, start, scores, results)

	jsonData, _ := json.MarshalIndent(evaluation{
		Presets: schema.EnrichPresets(results),
		Metrics: scores,
	}, "", "  ")
	return mcp.NewToolResultText(string(jsonData)), nil
}
