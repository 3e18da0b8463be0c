package cmd

import (
	"fmt"
	"os"

	"github.com/huangsam/presetter/internal/contract"
	"github.com/huangsam/presetter/internal/history"
	"github.com/huangsam/presetter/schema"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

// loadHistoryBackend reads and validates the history backend settings.
func loadHistoryBackend() (schema.DatabaseBackend, string, error) {
	if err := loadConfigFile(); err != nil {
		return "", "", err
	}

	backend, err := contract.ParseHistoryBackend(viper.GetString("history-backend"))
	if err != nil {
		return "", "", err
	}
	connStr := viper.GetString("history-db-connect")
	if err := contract.ValidateDatabaseConnectionString(backend, connStr); err != nil {
		return "", "", err
	}
	return backend, connStr, nil
}

// historySetup loads minimal configuration needed for history operations.
// This is used by commands that need history access without full shared setup.
func historySetup() error {
	backend, connStr, err := loadHistoryBackend()
	if err != nil {
		return err
	}

	if err := history.InitHistory(backend, connStr); err != nil {
		return fmt.Errorf("failed to initialize history: %w", err)
	}

	cfg.HistoryBackend = backend
	cfg.HistoryDBConnect = connStr
	cfg.OutputFile = viper.GetString("output-file")

	return nil
}

// historySetupWrapper wraps historySetup to provide PreRunE for history commands.
func historySetupWrapper(_ *cobra.Command, _ []string) error {
	return historySetup()
}

// historyMigrateSetup loads configuration for migrations without opening the
// store, so migrations can run against a fresh database.
func historyMigrateSetup(_ *cobra.Command, _ []string) error {
	backend, connStr, err := loadHistoryBackend()
	if err != nil {
		return err
	}
	if backend == schema.SQLiteBackend && connStr == "" {
		connStr = contract.GetHistoryDBFilePath()
	}
	cfg.HistoryBackend = backend
	cfg.HistoryDBConnect = connStr
	return nil
}

// sqliteFilePath returns the database file used by the SQLite backend.
func sqliteFilePath() string {
	if cfg.HistoryDBConnect != "" {
		return cfg.HistoryDBConnect
	}
	return contract.GetHistoryDBFilePath()
}

// historyCmd focused on session history management.
//
// Note: History subcommands use minimal initialization (historySetup) instead of
// the full sharedSetup so they never require survey or server settings.
var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "Manage recorded survey sessions and exports",
	Long: `Manage the history of evaluated surveys.

When a history backend is configured, every evaluation is recorded with:
- Session metadata (id, source, timestamp, totals)
- The submitted scores
- Every preset that matched, with its margin

Supported backends: SQLite, MySQL, PostgreSQL, or None (disabled, the default)

Subcommands:
  status  - Show history statistics
  export  - Export data to Parquet for analytics
  clear   - Remove all history data
  migrate - Run database schema migrations

Examples:
  # Record sessions in SQLite and check the status
  presetter survey --history-backend sqlite
  presetter history status --history-backend sqlite`,
}

// historyStatusCmd shows history status.
var historyStatusCmd = &cobra.Command{
	Use:     "status",
	Short:   "Display session history statistics",
	PreRunE: historySetupWrapper,
	Run: func(_ *cobra.Command, _ []string) {
		status, err := historyManager.GetHistoryStore().GetStatus()
		if err != nil {
			contract.LogFatal("Failed to get history status", err)
		}
		history.PrintHistoryStatus(os.Stdout, status)
	},
}

// historyClearCmd clears the history data.
var historyClearCmd = &cobra.Command{
	Use:   "clear",
	Short: "Remove all recorded survey sessions",
	Long: `Delete every recorded session and preset match.

WARNING: This action cannot be undone. Consider exporting data first.

Examples:
  presetter history export --history-backend sqlite --output-file backup
  presetter history clear --history-backend sqlite`,
	PreRunE: func(_ *cobra.Command, _ []string) error {
		backend, connStr, err := loadHistoryBackend()
		if err != nil {
			return err
		}
		cfg.HistoryBackend = backend
		cfg.HistoryDBConnect = connStr
		return nil
	},
	Run: func(_ *cobra.Command, _ []string) {
		if err := history.ClearHistory(cfg.HistoryBackend, sqliteFilePath(), cfg.HistoryDBConnect); err != nil {
			contract.LogFatal("Failed to clear session history", err)
		}
		fmt.Println("Session history cleared successfully.")
	},
}

// historyExportCmd exports history data to Parquet files.
var historyExportCmd = &cobra.Command{
	Use:   "export",
	Short: "Export session history to Parquet for BI tools and analytics",
	Long: `Export all recorded sessions to Parquet format.

Writes two files next to --output-file:
- <output-file>.sessions.parquet - one row per evaluated survey
- <output-file>.matches.parquet  - one row per matched preset

Requires: --output-file parameter

Examples:
  presetter history export --history-backend sqlite --output-file presets
  duckdb -c "SELECT preset, count(*) FROM read_parquet('presets.matches.parquet') GROUP BY 1"`,
	PreRunE: historySetupWrapper,
	Run: func(_ *cobra.Command, _ []string) {
		if err := history.ExecuteHistoryExport(os.Stdout, historyManager, cfg.OutputFile); err != nil {
			contract.LogFatal("Failed to export session history", err)
		}
	},
}

// historyMigrateCmd runs database migrations for the history store.
var historyMigrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Run database schema migrations (upgrades/downgrades)",
	Long: `Manage database schema versions for the session history store.

By default, migrates to the latest version. Use --target-version for specific versions.

Examples:
  # Migrate to latest version (default)
  presetter history migrate --history-backend postgresql --history-db-connect "$DSN"

  # Rollback to initial state
  presetter history migrate --history-backend sqlite --target-version 0`,
	PreRunE: historyMigrateSetup,
	Run: func(_ *cobra.Command, _ []string) {
		targetVersion := viper.GetInt("target-version")
		if err := history.MigrateHistory(os.Stdout, cfg.HistoryBackend, cfg.HistoryDBConnect, targetVersion); err != nil {
			contract.LogFatal("Failed to run migrations", err)
		}
	},
}
