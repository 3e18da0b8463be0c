package outwriter

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"time"

	"github.com/huangsam/presetter/schema"
)

// sessionFileLayout is the timestamp layout embedded in results file names.
const sessionFileLayout = "20060102_150405"

// maxSessionFileSuffix bounds the numbered names tried when a results file already exists.
const maxSessionFileSuffix = 1000

// SessionFileName returns the results file name for a session started at t.
func SessionFileName(t time.Time) string {
	return sessionFileNameN(t, 0)
}

// sessionFileNameN appends _n to the base name when n is positive.
func sessionFileNameN(t time.Time, n int) string {
	if n == 0 {
		return fmt.Sprintf("survey_results_%s.json", t.Format(sessionFileLayout))
	}
	return fmt.Sprintf("survey_results_%s_%d.json", t.Format(sessionFileLayout), n)
}

// NewSessionRecord builds the results file body for a finished session.
func NewSessionRecord(t time.Time, scores schema.ScoreSet, results []schema.PresetResult) schema.SessionRecord {
	presets := results
	if presets == nil {
		presets = []schema.PresetResult{}
	}
	return schema.SessionRecord{
		Timestamp:       t,
		UserMetrics:     scores.ToMap(),
		SelectedPresets: presets,
	}
}

// WriteSessionFile writes the record as indented JSON into dir and returns the file path.
// An existing results file is never overwritten; a numbered name is used instead.
func WriteSessionFile(dir string, record schema.SessionRecord) (string, error) {
	file, path, err := createSessionFile(dir, record.Timestamp)
	if err != nil {
		return "", fmt.Errorf("failed to create results file: %w", err)
	}
	defer func() { _ = file.Close() }()

	if err := writeJSON(file, record); err != nil {
		return "", err
	}
	if err := file.Close(); err != nil {
		return "", fmt.Errorf("failed to close results file: %w", err)
	}
	return path, nil
}

// createSessionFile exclusively creates the first free results file name for t.
func createSessionFile(dir string, t time.Time) (*os.File, string, error) {
	for n := range maxSessionFileSuffix {
		path := filepath.Join(dir, sessionFileNameN(t, n))
		file, err := os.OpenFile(path, os.O_CREATE|os.O_EXCL|os.O_WRONLY, 0o644)
		if err == nil {
			return file, path, nil
		}
		if !errors.Is(err, fs.ErrExist) {
			return nil, "", err
		}
	}
	return nil, "", fmt.Errorf("no free file name for %s in %s", SessionFileName(t), dir)
}
