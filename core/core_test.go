package core

import (
	"bytes"
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/huangsam/presetter/internal/contract"
	"github.com/huangsam/presetter/internal/history"
	"github.com/huangsam/presetter/schema"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func testConfig(t *testing.T) *contract.Config {
	t.Helper()
	dir := t.TempDir()
	return &contract.Config{
		Output:      schema.JSONOut,
		OutputFile:  filepath.Join(dir, "out.json"),
		ResultsDir:  dir,
		SaveResults: true,
	}
}

func TestExecuteSurvey(t *testing.T) {
	cfg := testConfig(t)
	store := &history.MockHistoryStore{}
	store.On("RecordSession", schema.CLISource, mock.Anything, mock.Anything, mock.Anything).Return("session-1", nil)

	var out bytes.Buffer
	err := ExecuteSurvey(context.Background(), cfg, DefaultCatalog(), history.StaticHistoryManager{Store: store}, strings.NewReader("80\n45\n35\n10\n"), &out)
	require.NoError(t, err)

	content, err := os.ReadFile(cfg.OutputFile)
	require.NoError(t, err)
	assert.Contains(t, string(content), "Supportive and Empathetic")
	assert.Contains(t, string(content), "Playful and Casual")
	assert.NotContains(t, string(content), "Direct and Analytical")

	matches, err := filepath.Glob(filepath.Join(cfg.ResultsDir, "survey_results_*.json"))
	require.NoError(t, err)
	assert.Len(t, matches, 1)

	store.AssertExpectations(t)
	recorded := store.Calls[0].Arguments.Get(2).(schema.ScoreSet)
	assert.Equal(t, []string{"metric_a", "metric_b", "metric_c", "metric_d"}, metricIDs(recorded))
}

func TestExecuteSurveyCancelled(t *testing.T) {
	cfg := testConfig(t)
	store := &history.MockHistoryStore{}

	var out bytes.Buffer
	err := ExecuteSurvey(context.Background(), cfg, DefaultCatalog(), history.StaticHistoryManager{Store: store}, strings.NewReader("80\nq\n"), &out)
	require.NoError(t, err)
	assert.Contains(t, out.String(), "Survey cancelled. No results were saved.")

	matches, _ := filepath.Glob(filepath.Join(cfg.ResultsDir, "survey_results_*.json"))
	assert.Empty(t, matches)
	assert.NoFileExists(t, cfg.OutputFile)
	store.AssertNotCalled(t, "RecordSession", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func TestExecuteSurveyNoSave(t *testing.T) {
	cfg := testConfig(t)
	cfg.SaveResults = false

	var out bytes.Buffer
	err := ExecuteSurvey(context.Background(), cfg, DefaultCatalog(), history.StaticHistoryManager{}, strings.NewReader("1\n2\n3\n4\n"), &out)
	require.NoError(t, err)

	matches, _ := filepath.Glob(filepath.Join(cfg.ResultsDir, "survey_results_*.json"))
	assert.Empty(t, matches)
}

func TestExecuteSurveySaveFailure(t *testing.T) {
	cfg := testConfig(t)
	cfg.ResultsDir = filepath.Join(cfg.ResultsDir, "missing")

	var out bytes.Buffer
	err := ExecuteSurvey(context.Background(), cfg, DefaultCatalog(), history.StaticHistoryManager{}, strings.NewReader("90\n90\n90\n90\n"), &out)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to save survey results")

	// The evaluation was still printed
	content, readErr := os.ReadFile(cfg.OutputFile)
	require.NoError(t, readErr)
	assert.Contains(t, string(content), "Strategic and Methodical")
}

func TestExecuteEvaluate(t *testing.T) {
	cfg := testConfig(t)
	store := &history.MockHistoryStore{}
	store.On("RecordSession", schema.CLISource, mock.Anything, mock.Anything, mock.Anything).Return("", errors.New("db down"))

	scores := schema.ScoreSet{{MetricID: "metric_d", Value: 61}}
	err := ExecuteEvaluate(context.Background(), cfg, DefaultCatalog(), history.StaticHistoryManager{Store: store}, scores)
	require.NoError(t, err, "history failures must not fail the evaluation")

	content, err := os.ReadFile(cfg.OutputFile)
	require.NoError(t, err)
	assert.Contains(t, string(content), "Strategic and Methodical")
	store.AssertExpectations(t)
}

func TestExecuteEvaluateErrors(t *testing.T) {
	cfg := testConfig(t)

	err := ExecuteEvaluate(context.Background(), cfg, DefaultCatalog(), nil, schema.ScoreSet{{MetricID: "metric_z", Value: 10}})
	assert.True(t, IsUnknownMetric(err))

	err = ExecuteEvaluate(context.Background(), cfg, DefaultCatalog(), nil, schema.ScoreSet{{MetricID: "metric_a", Value: 120}})
	assert.True(t, IsValidationError(err))
}

func TestExecuteCatalog(t *testing.T) {
	cfg := testConfig(t)
	require.NoError(t, ExecuteCatalog(context.Background(), cfg, DefaultCatalog()))

	content, err := os.ReadFile(cfg.OutputFile)
	require.NoError(t, err)
	for _, id := range DefaultCatalog().IDs() {
		assert.Contains(t, string(content), id)
	}
}

func TestRecordSessionNilManager(t *testing.T) {
	assert.NotPanics(t, func() {
		RecordSession(nil, schema.APISource, time.Now(), nil, nil)
	})
}

func metricIDs(scores schema.ScoreSet) []string {
	ids := make([]string, len(scores))
	for i, s := range scores {
		ids[i] = s.MetricID
	}
	return ids
}
