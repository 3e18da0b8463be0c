package cmd

import (
	"os/signal"
	"syscall"

	"github.com/huangsam/presetter/internal/api"
	"github.com/spf13/cobra"
)

// serveCmd runs the JSON HTTP API.
var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve the survey evaluator over HTTP.",
	Long: `Start a JSON HTTP API with the following routes:

  POST /api/process-survey   evaluate a JSON object of metric scores
  GET  /api/metrics          list the catalog
  GET  /health               liveness probe

Requests to /api/process-survey must include every metric listed in
--required-metrics. The server stops gracefully on SIGINT or SIGTERM.

Examples:
  presetter serve
  presetter serve --addr 0.0.0.0:8080 --required-metrics metric_a,metric_b`,
	PreRunE: sharedSetupWrapper,
	RunE: func(_ *cobra.Command, _ []string) error {
		ctx, stop := signal.NotifyContext(rootCtx, syscall.SIGINT, syscall.SIGTERM)
		defer stop()
		return api.NewServer(catalog, cfg.RequiredMetrics, historyManager).ListenAndServe(ctx, cfg.Addr)
	},
}
