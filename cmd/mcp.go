package cmd

import (
	"github.com/huangsam/presetter/internal/mcp"
	"github.com/spf13/cobra"
)

// mcpCmd represents the mcp command.
var mcpCmd = &cobra.Command{
	Use:   "mcp",
	Short: "Start the Presetter MCP server",
	Long:  `Launch an MCP server that allows AI agents to list metrics and evaluate survey scores via standard tools.`,
	PreRunE: func(cmd *cobra.Command, args []string) error {
		return sharedSetup(rootCtx, cmd, args)
	},
	RunE: func(_ *cobra.Command, _ []string) error {
		return mcp.StartMCPServer(rootCtx, cfg, catalog, historyManager)
	},
}
