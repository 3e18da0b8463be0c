package history

import (
	"errors"
	"fmt"
	"io"

	"github.com/huangsam/presetter/internal/contract"
	"github.com/huangsam/presetter/internal/parquet"
)

// ExecuteHistoryExport exports recorded sessions and preset matches to two Parquet files
// named after outputFile.
func ExecuteHistoryExport(w io.Writer, mgr contract.HistoryManager, outputFile string) error {
	if outputFile == "" {
		return errors.New("--output-file is required for export command")
	}

	store := mgr.GetHistoryStore()

	status, err := store.GetStatus()
	if err != nil {
		return fmt.Errorf("failed to get history status: %w", err)
	}
	if status.TotalSessions == 0 {
		return errors.New("no session history found to export")
	}

	_, _ = fmt.Fprintf(w, "Exporting data from %s backend...\n", status.Backend)
	_, _ = fmt.Fprintf(w, "Total sessions: %d\n", status.TotalSessions)
	_, _ = fmt.Fprintf(w, "Total preset matches: %d\n", status.TableSizes[matchesTable])

	sessions, err := store.GetAllSessions()
	if err != nil {
		return fmt.Errorf("failed to retrieve sessions: %w", err)
	}
	matches, err := store.GetAllMatches()
	if err != nil {
		return fmt.Errorf("failed to retrieve preset matches: %w", err)
	}

	sessionsFile := outputFile + ".sessions.parquet"
	parquetSessions := parquet.ConvertSessionRecords(sessions)
	if err := parquet.WriteSessionsParquet(parquetSessions, sessionsFile); err != nil {
		return fmt.Errorf("failed to write sessions: %w", err)
	}
	_, _ = fmt.Fprintf(w, "Exported %d sessions to: %s\n", len(parquetSessions), sessionsFile)

	matchesFile := outputFile + ".matches.parquet"
	parquetMatches := parquet.ConvertMatchRecords(matches)
	if err := parquet.WriteMatchesParquet(parquetMatches, matchesFile); err != nil {
		return fmt.Errorf("failed to write preset matches: %w", err)
	}
	_, _ = fmt.Fprintf(w, "Exported %d preset matches to: %s\n", len(parquetMatches), matchesFile)

	return nil
}
