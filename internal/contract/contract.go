// Package contract provides interfaces and shared utilities for internal architecture.
package contract

import (
	"time"

	"github.com/huangsam/presetter/schema"
)

// HistoryManager defines the interface for reaching the session history store.
// This allows the persistence layer to be mocked for testing.
type HistoryManager interface {
	GetHistoryStore() HistoryStore
}

// HistoryStore defines the interface for recording evaluated sessions.
type HistoryStore interface {
	// RecordSession stores one evaluation and its matched presets, returning the session id.
	RecordSession(source schema.SessionSource, createdAt time.Time, scores schema.ScoreSet, results []schema.PresetResult) (string, error)

	// GetStatus returns status information about the history store.
	GetStatus() (schema.HistoryStatus, error)

	// GetAllSessions returns every recorded session ordered by creation time.
	GetAllSessions() ([]schema.SessionRunRecord, error)

	// GetAllMatches returns every recorded preset match.
	GetAllMatches() ([]schema.PresetMatchRecord, error)

	// Close closes the underlying connection.
	Close() error
}
