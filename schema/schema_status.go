package schema

import "time"

// HistoryStatus represents the status of the session history store.
type HistoryStatus struct {
	Backend         string           `json:"backend"`
	Connected       bool             `json:"connected"`
	TotalSessions   int              `json:"total_sessions"`
	TotalMatches    int              `json:"total_matches"`
	LastSessionID   string           `json:"last_session_id"`
	LastSessionTime time.Time        `json:"last_session_time"`
	OldestSession   time.Time        `json:"oldest_session_time"`
	TableSizes      map[string]int64 `json:"table_sizes"`
}

// SessionRunRecord represents a row from the preset_sessions table.
type SessionRunRecord struct {
	SessionID    string
	Source       string
	CreatedAt    time.Time
	TotalMetrics int32
	TotalPresets int32
	Scores       *string
}

// PresetMatchRecord represents a row from the preset_matches table.
type PresetMatchRecord struct {
	SessionID string
	MetricID  string
	Preset    string
	Score     int32
	Threshold int32
	Margin    int32
}
