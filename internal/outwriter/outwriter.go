// Package outwriter has output and writer logic.
package outwriter

import (
	"time"

	"github.com/huangsam/presetter/internal/contract"
	"github.com/huangsam/presetter/schema"
)

// OutWriter provides a unified interface for all output operations.
// It encapsulates the various output formats and provides a clean API for the core logic.
type OutWriter struct{}

// NewOutWriter creates a new instance of the output writer.
func NewOutWriter() *OutWriter {
	return &OutWriter{}
}

// WritePresets prints matched presets using the configured output format.
func (ow *OutWriter) WritePresets(results []schema.PresetResult, scores schema.ScoreSet, cfg *contract.Config, duration time.Duration) error {
	return WritePresetResults(results, scores, cfg, duration)
}

// WriteCatalog prints the metric catalog using the configured output format.
func (ow *OutWriter) WriteCatalog(defs []schema.MetricDefinition, cfg *contract.Config) error {
	return WriteCatalogDefinitions(defs, cfg)
}

// WriteSession saves the results file for an interactive session.
func (ow *OutWriter) WriteSession(dir string, record schema.SessionRecord) (string, error) {
	return WriteSessionFile(dir, record)
}
