package history

import (
	"fmt"
	"io"
	"slices"

	"github.com/huangsam/presetter/internal/contract"
	"github.com/huangsam/presetter/schema"
)

// PrintHistoryStatus prints history status information.
func PrintHistoryStatus(w io.Writer, status schema.HistoryStatus) {
	_, _ = fmt.Fprintf(w, "History Backend: %s\n", status.Backend)
	_, _ = fmt.Fprintf(w, "Connected: %t\n", status.Connected)
	if !status.Connected {
		return
	}
	_, _ = fmt.Fprintf(w, "Total Sessions: %d\n", status.TotalSessions)
	if status.TotalSessions > 0 {
		_, _ = fmt.Fprintf(w, "Last Session ID: %s\n", status.LastSessionID)
		_, _ = fmt.Fprintf(w, "Last Session: %s\n", status.LastSessionTime.Local().Format(contract.DateTimeFormat))
		_, _ = fmt.Fprintf(w, "Oldest Session: %s\n", status.OldestSession.Local().Format(contract.DateTimeFormat))
		_, _ = fmt.Fprintf(w, "Total Preset Matches: %d\n", status.TotalMatches)
	}
	_, _ = fmt.Fprintln(w, "Table Sizes:")
	tables := make([]string, 0, len(status.TableSizes))
	for table := range status.TableSizes {
		tables = append(tables, table)
	}
	slices.Sort(tables)
	for _, table := range tables {
		_, _ = fmt.Fprintf(w, "  %s: %d rows\n", table, status.TableSizes[table])
	}
}
