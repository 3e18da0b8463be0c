// Package parquet provides data structures and functions for exporting preset
// session history to Parquet files using github.com/parquet-go/parquet-go.
package parquet

import (
	"fmt"
	"os"
	"time"

	"github.com/huangsam/presetter/schema"
	"github.com/parquet-go/parquet-go"
)

// SessionRun represents a single evaluated survey session.
// This struct maps to the preset_sessions database table.
type SessionRun struct {
	// SessionID is the UUID assigned when the session was recorded
	SessionID string `parquet:"session_id,snappy"`

	// Source is where the evaluation came from (cli, api, mcp)
	Source string `parquet:"source,snappy,dict"`

	// CreatedAt is when the session was evaluated (stored as TIMESTAMP with nanosecond precision)
	CreatedAt time.Time `parquet:"created_at,snappy"`

	TotalMetrics int32 `parquet:"total_metrics,snappy"`
	TotalPresets int32 `parquet:"total_presets,snappy"`

	// Scores contains the JSON-encoded ordered score list (nullable)
	Scores *string `parquet:"scores,optional,snappy"`
}

// PresetMatch represents one preset unlocked in a session.
// This struct maps to the preset_matches database table.
type PresetMatch struct {
	SessionID string `parquet:"session_id,snappy"`
	MetricID  string `parquet:"metric_id,snappy,dict"`
	Preset    string `parquet:"preset,snappy,dict"`
	Score     int32  `parquet:"score,snappy"`
	Threshold int32  `parquet:"threshold,snappy"`
	Margin    int32  `parquet:"margin,snappy"`
}

// WriteSessionsParquet writes a slice of SessionRun structs to a Parquet file.
func WriteSessionsParquet(data []SessionRun, outputPath string) error {
	return writeParquet(data, outputPath)
}

// WriteMatchesParquet writes a slice of PresetMatch structs to a Parquet file.
func WriteMatchesParquet(data []PresetMatch, outputPath string) error {
	return writeParquet(data, outputPath)
}

// writeParquet writes rows to a new file with the schema derived from T's struct tags.
func writeParquet[T any](data []T, outputPath string) error {
	file, err := os.Create(outputPath)
	if err != nil {
		return fmt.Errorf("failed to create output file: %w", err)
	}
	defer func() { _ = file.Close() }()

	writer := parquet.NewGenericWriter[T](file)
	if _, err := writer.Write(data); err != nil {
		_ = writer.Close()
		return fmt.Errorf("failed to write data to parquet file: %w", err)
	}
	if err := writer.Close(); err != nil {
		return fmt.Errorf("failed to finalize parquet file: %w", err)
	}
	return file.Close()
}

// ConvertSessionRecords converts schema.SessionRunRecord to SessionRun for Parquet export.
func ConvertSessionRecords(records []schema.SessionRunRecord) []SessionRun {
	result := make([]SessionRun, len(records))
	for i, record := range records {
		result[i] = SessionRun{
			SessionID:    record.SessionID,
			Source:       record.Source,
			CreatedAt:    record.CreatedAt,
			TotalMetrics: record.TotalMetrics,
			TotalPresets: record.TotalPresets,
			Scores:       record.Scores,
		}
	}
	return result
}

// ConvertMatchRecords converts schema.PresetMatchRecord to PresetMatch for Parquet export.
func ConvertMatchRecords(records []schema.PresetMatchRecord) []PresetMatch {
	result := make([]PresetMatch, len(records))
	for i, record := range records {
		result[i] = PresetMatch(record)
	}
	return result
}
