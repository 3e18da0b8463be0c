// Package mcp provides the Model Context Protocol (MCP) server implementation.
package mcp

import (
	"context"

	"github.com/huangsam/presetter/core"
	"github.com/huangsam/presetter/internal/contract"
	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
)

// NewMCPServer initializes and configures the Presetter MCP server without starting it.
// The server keeps its own copy of baseCfg. This is exposed for unit testing.
func NewMCPServer(baseCfg *contract.Config, catalog *core.Catalog, mgr contract.HistoryManager) *server.MCPServer {
	s := server.NewMCPServer(
		"Presetter Survey Server",
		"1.0.0",
		server.WithLogging(),
	)

	h := &toolHandler{
		baseCfg: baseCfg.Clone(),
		catalog: catalog,
		mgr:     mgr,
	}

	// --- 1. Tool: list_metrics ---
	s.AddTool(mcp.NewTool("list_metrics",
		mcp.WithDescription("List every survey metric with its threshold and the chatbot preset it unlocks."),
	), h.handleListMetrics)

	// --- 2. Tool: get_metric ---
	s.AddTool(mcp.NewTool("get_metric",
		mcp.WithDescription("Look up a single survey metric by id."),
		mcp.WithString("metric", mcp.Description("Metric id (e.g. metric_a)."), mcp.Required()),
	), h.handleGetMetric)

	// --- 3. Tool: evaluate_scores ---
	s.AddTool(mcp.NewTool("evaluate_scores",
		mcp.WithDescription("Evaluate survey scores (integers 0-100 keyed by metric id) and return the matching chatbot presets."),
		mcp.WithObject("scores", mcp.Description("Object mapping metric ids to integer scores between 0 and 100."), mcp.Required()),
	), h.handleEvaluateScores)

	return s
}

// StartMCPServer starts the Presetter MCP server on stdio.
func StartMCPServer(_ context.Context, baseCfg *contract.Config, catalog *core.Catalog, mgr contract.HistoryManager) error {
	s := NewMCPServer(baseCfg, catalog, mgr)
	return server.ServeStdio(s)
}
