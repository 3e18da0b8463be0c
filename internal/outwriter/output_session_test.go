package outwriter

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/huangsam/presetter/schema"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSessionFileName(t *testing.T) {
	ts := time.Date(2024, 3, 9, 14, 5, 7, 0, time.UTC)
	assert.Equal(t, "survey_results_20240309_140507.json", SessionFileName(ts))
}

func TestNewSessionRecord(t *testing.T) {
	ts := time.Date(2024, 3, 9, 14, 5, 7, 0, time.UTC)
	scores := schema.ScoreSet{{MetricID: "metric_a", Value: 10}}

	record := NewSessionRecord(ts, scores, nil)
	assert.Equal(t, ts, record.Timestamp)
	assert.Equal(t, map[string]int{"metric_a": 10}, record.UserMetrics)
	assert.NotNil(t, record.SelectedPresets)
	assert.Empty(t, record.SelectedPresets)
}

func TestWriteSessionFile(t *testing.T) {
	dir := t.TempDir()
	ts := time.Date(2024, 3, 9, 14, 5, 7, 0, time.UTC)
	results, scores := samplePresets()

	path, err := WriteSessionFile(dir, NewSessionRecord(ts, scores, results))
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(dir, "survey_results_20240309_140507.json"), path)

	content, err := os.ReadFile(path)
	require.NoError(t, err)

	var body map[string]any
	require.NoError(t, json.Unmarshal(content, &body))
	assert.Contains(t, body, "timestamp")
	assert.Equal(t, map[string]any{"metric_a": float64(95), "metric_b": float64(20), "metric_c": float64(35)}, body["user_metrics"])
	assert.Len(t, body["selected_presets"], 2)
}

func TestWriteSessionFileSameSecond(t *testing.T) {
	dir := t.TempDir()
	first := time.Date(2024, 3, 9, 14, 5, 7, 0, time.UTC)
	second := first.Add(500 * time.Millisecond)

	p1, err := WriteSessionFile(dir, NewSessionRecord(first, schema.ScoreSet{{MetricID: "metric_a", Value: 1}}, nil))
	require.NoError(t, err)
	p2, err := WriteSessionFile(dir, NewSessionRecord(second, schema.ScoreSet{{MetricID: "metric_a", Value: 2}}, nil))
	require.NoError(t, err)

	assert.NotEqual(t, p1, p2)
	assert.Equal(t, filepath.Join(dir, "survey_results_20240309_140507.json"), p1)
	assert.Equal(t, filepath.Join(dir, "survey_results_20240309_140507_1.json"), p2)

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	assert.Len(t, entries, 2)

	for path, want := range map[string]float64{p1: 1, p2: 2} {
		content, err := os.ReadFile(path)
		require.NoError(t, err)
		var body map[string]any
		require.NoError(t, json.Unmarshal(content, &body))
		assert.Equal(t, map[string]any{"metric_a": want}, body["user_metrics"])
	}
}

func TestWriteSessionFileMissingDir(t *testing.T) {
	_, err := WriteSessionFile(filepath.Join(t.TempDir(), "missing"), schema.SessionRecord{})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to create results file")
}
