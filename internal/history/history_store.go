package history

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/huangsam/presetter/internal/contract"
	"github.com/huangsam/presetter/schema"
)

// HistoryStoreImpl implements the HistoryStore interface on database/sql.
type HistoryStoreImpl struct {
	db      *sql.DB
	backend schema.DatabaseBackend
}

var _ contract.HistoryStore = &HistoryStoreImpl{} // Compile-time check

// NewHistoryStore creates a new HistoryStore with the specified backend.
func NewHistoryStore(backend schema.DatabaseBackend, connStr string) (contract.HistoryStore, error) {
	if backend == schema.NoneBackend || backend == "" {
		return &HistoryStoreImpl{backend: schema.NoneBackend}, nil
	}

	driverName, dsn, err := driverFor(backend, connStr)
	if err != nil {
		return nil, err
	}

	db, err := sql.Open(driverName, dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to open %s database: %w", backend, err)
	}
	if backend == schema.SQLiteBackend {
		// Limit SQLite to a single open connection to avoid "database is locked" errors
		db.SetMaxOpenConns(1)
	}

	if err := db.Ping(); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to connect to %s database: %w. Verify the database server is running and the connection string is correct", backend, err)
	}

	if err := createHistoryTables(db, backend); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to create history tables: %w", err)
	}

	return &HistoryStoreImpl{db: db, backend: backend}, nil
}

// createHistoryTables creates the session history tables.
func createHistoryTables(db *sql.DB, backend schema.DatabaseBackend) error {
	tables := []struct {
		name  string
		query string
	}{
		{sessionsTable, getCreateSessionsQuery(backend)},
		{matchesTable, getCreateMatchesQuery(backend)},
	}

	for _, table := range tables {
		if _, err := db.Exec(table.query); err != nil {
			return fmt.Errorf("failed to create table %s: %w", table.name, err)
		}
	}
	return nil
}

// getCreateSessionsQuery returns the CREATE TABLE query for preset_sessions.
func getCreateSessionsQuery(backend schema.DatabaseBackend) string {
	quoted := quoteTableName(sessionsTable, backend)

	switch backend {
	case schema.MySQLBackend:
		return fmt.Sprintf(`
			CREATE TABLE IF NOT EXISTS %s (
				session_id CHAR(36) PRIMARY KEY,
				source VARCHAR(16) NOT NULL,
				created_at DATETIME(6) NOT NULL,
				total_metrics INT NOT NULL,
				total_presets INT NOT NULL,
				scores TEXT
			);
		`, quoted)

	case schema.PostgreSQLBackend:
		return fmt.Sprintf(`
			CREATE TABLE IF NOT EXISTS %s (
				session_id TEXT PRIMARY KEY,
				source TEXT NOT NULL,
				created_at TIMESTAMPTZ NOT NULL,
				total_metrics INT NOT NULL,
				total_presets INT NOT NULL,
				scores TEXT
			);
		`, quoted)

	default: // SQLite
		return fmt.Sprintf(`
			CREATE TABLE IF NOT EXISTS %s (
				session_id TEXT PRIMARY KEY,
				source TEXT NOT NULL,
				created_at TEXT NOT NULL,
				total_metrics INTEGER NOT NULL,
				total_presets INTEGER NOT NULL,
				scores TEXT
			);
		`, quoted)
	}
}

// getCreateMatchesQuery returns the CREATE TABLE query for preset_matches.
func getCreateMatchesQuery(backend schema.DatabaseBackend) string {
	quoted := quoteTableName(matchesTable, backend)

	switch backend {
	case schema.MySQLBackend:
		return fmt.Sprintf(`
			CREATE TABLE IF NOT EXISTS %s (
				session_id CHAR(36) NOT NULL,
				metric_id VARCHAR(64) NOT NULL,
				preset VARCHAR(128) NOT NULL,
				score INT NOT NULL,
				threshold INT NOT NULL,
				margin INT NOT NULL,
				PRIMARY KEY (session_id, metric_id)
			);
		`, quoted)

	case schema.PostgreSQLBackend:
		return fmt.Sprintf(`
			CREATE TABLE IF NOT EXISTS %s (
				session_id TEXT NOT NULL,
				metric_id TEXT NOT NULL,
				preset TEXT NOT NULL,
				score INT NOT NULL,
				threshold INT NOT NULL,
				margin INT NOT NULL,
				PRIMARY KEY (session_id, metric_id)
			);
		`, quoted)

	default: // SQLite
		return fmt.Sprintf(`
			CREATE TABLE IF NOT EXISTS %s (
				session_id TEXT NOT NULL,
				metric_id TEXT NOT NULL,
				preset TEXT NOT NULL,
				score INTEGER NOT NULL,
				threshold INTEGER NOT NULL,
				margin INTEGER NOT NULL,
				PRIMARY KEY (session_id, metric_id)
			);
		`, quoted)
	}
}

// RecordSession stores a session and its matched presets in one transaction.
func (hs *HistoryStoreImpl) RecordSession(source schema.SessionSource, createdAt time.Time, scores schema.ScoreSet, results []schema.PresetResult) (string, error) {
	sessionID := uuid.NewString()

	// Skip for NoneBackend
	if hs.backend == schema.NoneBackend || hs.db == nil {
		return sessionID, nil
	}

	scoresJSON, err := json.Marshal(scores)
	if err != nil {
		return "", fmt.Errorf("failed to marshal scores: %w", err)
	}

	tx, err := hs.db.Begin()
	if err != nil {
		return "", fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	sessionQuery := rebind(hs.backend, fmt.Sprintf(
		`INSERT INTO %s (session_id, source, created_at, total_metrics, total_presets, scores) VALUES (?, ?, ?, ?, ?, ?)`,
		quoteTableName(sessionsTable, hs.backend)))
	if _, err := tx.Exec(sessionQuery, sessionID, string(source), formatTime(createdAt, hs.backend), len(scores), len(results), string(scoresJSON)); err != nil {
		return "", fmt.Errorf("failed to insert session: %w", err)
	}

	matchQuery := rebind(hs.backend, fmt.Sprintf(
		`INSERT INTO %s (session_id, metric_id, preset, score, threshold, margin) VALUES (?, ?, ?, ?, ?, ?)`,
		quoteTableName(matchesTable, hs.backend)))
	for _, r := range results {
		if _, err := tx.Exec(matchQuery, sessionID, r.Metric, r.Preset, r.Score, r.Threshold, r.Margin); err != nil {
			return "", fmt.Errorf("failed to insert preset match for %s: %w", r.Metric, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return "", fmt.Errorf("failed to commit session: %w", err)
	}
	return sessionID, nil
}

// Close closes the underlying connection.
func (hs *HistoryStoreImpl) Close() error {
	if hs.db != nil {
		return hs.db.Close()
	}
	return nil
}

// GetStatus returns status information about the history store.
func (hs *HistoryStoreImpl) GetStatus() (schema.HistoryStatus, error) {
	status := schema.HistoryStatus{
		Backend:    string(hs.backend),
		Connected:  hs.db != nil,
		TableSizes: make(map[string]int64),
	}

	if hs.backend == schema.NoneBackend || hs.db == nil {
		return status, nil
	}

	sessions := quoteTableName(sessionsTable, hs.backend)

	row := hs.db.QueryRow(fmt.Sprintf("SELECT COUNT(*) FROM %s", sessions))
	if err := row.Scan(&status.TotalSessions); err != nil {
		return status, fmt.Errorf("failed to get total sessions: %w", err)
	}

	if status.TotalSessions > 0 {
		row = hs.db.QueryRow(fmt.Sprintf("SELECT session_id, created_at FROM %s ORDER BY created_at DESC LIMIT 1", sessions))
		if err := row.Scan(&status.LastSessionID, timeScanner{&status.LastSessionTime}); err != nil {
			return status, fmt.Errorf("failed to get last session info: %w", err)
		}

		row = hs.db.QueryRow(fmt.Sprintf("SELECT created_at FROM %s ORDER BY created_at ASC LIMIT 1", sessions))
		if err := row.Scan(timeScanner{&status.OldestSession}); err != nil {
			return status, fmt.Errorf("failed to get oldest session time: %w", err)
		}
	}

	for _, table := range []string{sessionsTable, matchesTable} {
		var count int64
		row = hs.db.QueryRow(fmt.Sprintf("SELECT COUNT(*) FROM %s", quoteTableName(table, hs.backend)))
		if err := row.Scan(&count); err != nil {
			return status, fmt.Errorf("failed to get count for table %s: %w", table, err)
		}
		status.TableSizes[table] = count
	}
	status.TotalMatches = int(status.TableSizes[matchesTable])

	return status, nil
}

// GetAllSessions retrieves all sessions ordered by creation time.
func (hs *HistoryStoreImpl) GetAllSessions() ([]schema.SessionRunRecord, error) {
	// Skip for NoneBackend
	if hs.backend == schema.NoneBackend || hs.db == nil {
		return nil, nil
	}

	query := fmt.Sprintf(`SELECT session_id, source, created_at, total_metrics, total_presets, scores
		FROM %s ORDER BY created_at, session_id`, quoteTableName(sessionsTable, hs.backend))

	rows, err := hs.db.Query(query)
	if err != nil {
		return nil, fmt.Errorf("failed to query sessions: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var results []schema.SessionRunRecord
	for rows.Next() {
		var record schema.SessionRunRecord
		if err := rows.Scan(&record.SessionID, &record.Source, timeScanner{&record.CreatedAt},
			&record.TotalMetrics, &record.TotalPresets, &record.Scores); err != nil {
			return nil, fmt.Errorf("failed to scan session: %w", err)
		}
		results = append(results, record)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating sessions: %w", err)
	}
	return results, nil
}

// GetAllMatches retrieves all recorded preset matches.
func (hs *HistoryStoreImpl) GetAllMatches() ([]schema.PresetMatchRecord, error) {
	// Skip for NoneBackend
	if hs.backend == schema.NoneBackend || hs.db == nil {
		return nil, nil
	}

	query := fmt.Sprintf(`SELECT session_id, metric_id, preset, score, threshold, margin
		FROM %s ORDER BY session_id, metric_id`, quoteTableName(matchesTable, hs.backend))

	rows, err := hs.db.Query(query)
	if err != nil {
		return nil, fmt.Errorf("failed to query preset matches: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var results []schema.PresetMatchRecord
	for rows.Next() {
		var record schema.PresetMatchRecord
		if err := rows.Scan(&record.SessionID, &record.MetricID, &record.Preset,
			&record.Score, &record.Threshold, &record.Margin); err != nil {
			return nil, fmt.Errorf("failed to scan preset match: %w", err)
		}
		results = append(results, record)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating preset matches: %w", err)
	}
	return results, nil
}
