package history

import (
	"encoding/json"
	"path/filepath"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/huangsam/presetter/schema"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var (
	testScores = schema.ScoreSet{
		{MetricID: "metric_c", Value: 35},
		{MetricID: "metric_a", Value: 95},
		{MetricID: "metric_b", Value: 20},
	}
	testResults = []schema.PresetResult{
		{Metric: "metric_c", Name: "Communication Style", Preset: "Playful and Casual", Score: 35, Threshold: 30, Margin: 5},
		{Metric: "metric_a", Name: "Emotional Intelligence", Preset: "Supportive and Empathetic", Score: 95, Threshold: 70, Margin: 25},
	}
)

func newSQLiteStore(t *testing.T) *HistoryStoreImpl {
	t.Helper()
	store, err := NewHistoryStore(schema.SQLiteBackend, filepath.Join(t.TempDir(), "history.db"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = store.Close() })
	return store.(*HistoryStoreImpl)
}

func TestHistoryStore_NoneBackend(t *testing.T) {
	store, err := NewHistoryStore(schema.NoneBackend, "")
	require.NoError(t, err)

	id, err := store.RecordSession(schema.CLISource, time.Now(), testScores, testResults)
	require.NoError(t, err)
	_, err = uuid.Parse(id)
	assert.NoError(t, err)

	status, err := store.GetStatus()
	require.NoError(t, err)
	assert.Equal(t, string(schema.NoneBackend), status.Backend)
	assert.False(t, status.Connected)

	sessions, err := store.GetAllSessions()
	assert.NoError(t, err)
	assert.Nil(t, sessions)

	assert.NoError(t, store.Close())
}

func TestHistoryStore_UnsupportedBackend(t *testing.T) {
	_, err := NewHistoryStore(schema.DatabaseBackend("oracle"), "")
	assert.Error(t, err)
}

func TestHistoryStore_SQLiteRecordAndRead(t *testing.T) {
	store := newSQLiteStore(t)

	createdAt := time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)
	id, err := store.RecordSession(schema.APISource, createdAt, testScores, testResults)
	require.NoError(t, err)

	sessions, err := store.GetAllSessions()
	require.NoError(t, err)
	require.Len(t, sessions, 1)
	assert.Equal(t, id, sessions[0].SessionID)
	assert.Equal(t, "api", sessions[0].Source)
	assert.True(t, createdAt.Equal(sessions[0].CreatedAt))
	assert.Equal(t, int32(3), sessions[0].TotalMetrics)
	assert.Equal(t, int32(2), sessions[0].TotalPresets)

	require.NotNil(t, sessions[0].Scores)
	var stored schema.ScoreSet
	require.NoError(t, json.Unmarshal([]byte(*sessions[0].Scores), &stored))
	assert.Equal(t, testScores, stored)

	matches, err := store.GetAllMatches()
	require.NoError(t, err)
	require.Len(t, matches, 2)
	assert.Equal(t, schema.PresetMatchRecord{
		SessionID: id, MetricID: "metric_a", Preset: "Supportive and Empathetic", Score: 95, Threshold: 70, Margin: 25,
	}, matches[0])
}

func TestHistoryStore_SQLiteNoMatches(t *testing.T) {
	store := newSQLiteStore(t)

	_, err := store.RecordSession(schema.CLISource, time.Now(), schema.ScoreSet{{MetricID: "metric_a", Value: 0}}, []schema.PresetResult{})
	require.NoError(t, err)

	matches, err := store.GetAllMatches()
	require.NoError(t, err)
	assert.Empty(t, matches)
}

func TestHistoryStore_SQLiteStatus(t *testing.T) {
	store := newSQLiteStore(t)

	status, err := store.GetStatus()
	require.NoError(t, err)
	assert.True(t, status.Connected)
	assert.Equal(t, 0, status.TotalSessions)
	assert.Equal(t, int64(0), status.TableSizes[sessionsTable])

	older := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	newer := time.Date(2024, 2, 1, 0, 0, 0, 0, time.UTC)
	_, err = store.RecordSession(schema.CLISource, older, testScores, testResults)
	require.NoError(t, err)
	lastID, err := store.RecordSession(schema.MCPSource, newer, testScores, testResults[:1])
	require.NoError(t, err)

	status, err = store.GetStatus()
	require.NoError(t, err)
	assert.Equal(t, 2, status.TotalSessions)
	assert.Equal(t, 3, status.TotalMatches)
	assert.Equal(t, lastID, status.LastSessionID)
	assert.True(t, newer.Equal(status.LastSessionTime))
	assert.True(t, older.Equal(status.OldestSession))
	assert.Equal(t, int64(2), status.TableSizes[sessionsTable])
	assert.Equal(t, int64(3), status.TableSizes[matchesTable])
}

func TestHistoryStore_SQLiteOrderWithinSecond(t *testing.T) {
	store := newSQLiteStore(t)

	later := time.Date(2024, 5, 1, 10, 0, 5, 500_000_000, time.UTC)
	earlier := time.Date(2024, 5, 1, 10, 0, 5, 0, time.UTC)
	laterID, err := store.RecordSession(schema.CLISource, later, testScores, testResults)
	require.NoError(t, err)
	earlierID, err := store.RecordSession(schema.CLISource, earlier, testScores, testResults)
	require.NoError(t, err)

	status, err := store.GetStatus()
	require.NoError(t, err)
	assert.Equal(t, laterID, status.LastSessionID)
	assert.True(t, later.Equal(status.LastSessionTime))
	assert.True(t, earlier.Equal(status.OldestSession))

	sessions, err := store.GetAllSessions()
	require.NoError(t, err)
	require.Len(t, sessions, 2)
	assert.Equal(t, earlierID, sessions[0].SessionID)
	assert.Equal(t, laterID, sessions[1].SessionID)
}

func TestClearHistory(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "history.db")
	store, err := NewHistoryStore(schema.SQLiteBackend, dbPath)
	require.NoError(t, err)
	require.NoError(t, store.Close())

	assert.FileExists(t, dbPath)
	require.NoError(t, ClearHistory(schema.SQLiteBackend, dbPath, ""))
	assert.NoFileExists(t, dbPath)

	// Clearing twice is fine
	assert.NoError(t, ClearHistory(schema.SQLiteBackend, dbPath, ""))
	assert.NoError(t, ClearHistory(schema.NoneBackend, "", ""))
	assert.Error(t, ClearHistory(schema.SQLiteBackend, "", ""))
	assert.Error(t, ClearHistory(schema.DatabaseBackend("oracle"), "", ""))
}

func TestStaticHistoryManager(t *testing.T) {
	assert.Equal(t, noopStore, StaticHistoryManager{}.GetHistoryStore())

	store := &MockHistoryStore{}
	assert.Equal(t, store, StaticHistoryManager{Store: store}.GetHistoryStore())
}

func TestHistoryStoreManagerDefaultsToNoop(t *testing.T) {
	mgr := &HistoryStoreManager{}
	assert.Equal(t, noopStore, mgr.GetHistoryStore())
}
