package history

import (
	"bytes"
	"errors"
	"path/filepath"
	"testing"
	"time"

	"github.com/huangsam/presetter/schema"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExecuteHistoryExport_RequiresOutputFile(t *testing.T) {
	var buf bytes.Buffer
	err := ExecuteHistoryExport(&buf, StaticHistoryManager{}, "")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "--output-file is required")
}

func TestExecuteHistoryExport_NoData(t *testing.T) {
	var buf bytes.Buffer
	err := ExecuteHistoryExport(&buf, StaticHistoryManager{}, filepath.Join(t.TempDir(), "out"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "no session history found")
}

func TestExecuteHistoryExport_StatusError(t *testing.T) {
	store := &MockHistoryStore{}
	store.On("GetStatus").Return(schema.HistoryStatus{}, errors.New("boom"))

	var buf bytes.Buffer
	err := ExecuteHistoryExport(&buf, StaticHistoryManager{Store: store}, "out")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to get history status")
	store.AssertExpectations(t)
}

func TestExecuteHistoryExport_SQLite(t *testing.T) {
	store := newSQLiteStore(t)
	_, err := store.RecordSession(schema.CLISource, time.Now(), testScores, testResults)
	require.NoError(t, err)

	mgr := &MockHistoryManager{}
	mgr.On("GetHistoryStore").Return(store)

	out := filepath.Join(t.TempDir(), "export")
	var buf bytes.Buffer
	require.NoError(t, ExecuteHistoryExport(&buf, mgr, out))

	assert.FileExists(t, out+".sessions.parquet")
	assert.FileExists(t, out+".matches.parquet")
	assert.Contains(t, buf.String(), "Exported 1 sessions")
	assert.Contains(t, buf.String(), "Exported 2 preset matches")
	mgr.AssertExpectations(t)
}

func TestPrintHistoryStatus(t *testing.T) {
	var buf bytes.Buffer
	PrintHistoryStatus(&buf, schema.HistoryStatus{Backend: "none"})
	assert.Equal(t, "History Backend: none\nConnected: false\n", buf.String())

	buf.Reset()
	PrintHistoryStatus(&buf, schema.HistoryStatus{
		Backend:       "sqlite",
		Connected:     true,
		TotalSessions: 1,
		TotalMatches:  2,
		LastSessionID: "abc",
		TableSizes:    map[string]int64{matchesTable: 2, sessionsTable: 1},
	})
	output := buf.String()
	assert.Contains(t, output, "Total Sessions: 1")
	assert.Contains(t, output, "Last Session ID: abc")
	assert.Contains(t, output, "  preset_matches: 2 rows\n  preset_sessions: 1 rows\n")
}
