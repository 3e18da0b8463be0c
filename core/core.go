// Package core has core logic for the preset catalog, score evaluation and survey collection.
package core

import (
	"context"
	"errors"
	"fmt"
	"io"
	"time"

	"github.com/huangsam/presetter/internal/contract"
	"github.com/huangsam/presetter/internal/outwriter"
	"github.com/huangsam/presetter/schema"
)

// writer handles every user-facing output of the core commands.
var writer = outwriter.NewOutWriter()

// ExecuteSurvey runs an interactive survey: collect, evaluate, print, then persist.
// A cancelled survey prints a notice and returns nil without saving anything.
func ExecuteSurvey(ctx context.Context, cfg *contract.Config, catalog *Catalog, mgr contract.HistoryManager, in io.Reader, out io.Writer) error {
	collector := NewCollector(catalog, in, out)
	scores, err := collector.Collect(ctx)
	if errors.Is(err, ErrCollectionCancelled) {
		_, _ = fmt.Fprintln(out, "\nSurvey cancelled. No results were saved.")
		return nil
	}
	if err != nil {
		return err
	}

	start := time.Now()
	results, err := NewEvaluator(catalog).Evaluate(scores)
	if err != nil {
		return err
	}
	duration := time.Since(start)

	_, _ = fmt.Fprintln(out)
	if err := writer.WritePresets(results, scores, cfg, duration); err != nil {
		return fmt.Errorf("error writing results: %w", err)
	}

	RecordSession(mgr, schema.CLISource, start, scores, results)

	if !cfg.SaveResults {
		return nil
	}
	path, err := writer.WriteSession(cfg.ResultsDir, outwriter.NewSessionRecord(start, scores, results))
	if err != nil {
		contract.LogWarn("Failed to save survey results", err)
		return fmt.Errorf("failed to save survey results: %w", err)
	}
	contract.LogInfo("💾 Saved survey results to %s", path)
	return nil
}

// ExecuteEvaluate evaluates a score set supplied on the command line and prints the presets.
func ExecuteEvaluate(_ context.Context, cfg *contract.Config, catalog *Catalog, mgr contract.HistoryManager, scores schema.ScoreSet) error {
	if err := ValidateScoreSet(scores); err != nil {
		return err
	}

	start := time.Now()
	results, err := NewEvaluator(catalog).Evaluate(scores)
	if err != nil {
		return err
	}
	duration := time.Since(start)

	if err := writer.WritePresets(results, scores, cfg, duration); err != nil {
		return fmt.Errorf("error writing results: %w", err)
	}
	RecordSession(mgr, schema.CLISource, start, scores, results)
	return nil
}

// ExecuteCatalog prints every metric definition in the catalog.
func ExecuteCatalog(_ context.Context, cfg *contract.Config, catalog *Catalog) error {
	return writer.WriteCatalog(catalog.Definitions(), cfg)
}

// RecordSession writes an evaluation to the history store. Failures are only
// logged since history never changes what the caller sees.
func RecordSession(mgr contract.HistoryManager, source schema.SessionSource, createdAt time.Time, scores schema.ScoreSet, results []schema.PresetResult) {
	if mgr == nil {
		return
	}
	store := mgr.GetHistoryStore()
	if store == nil {
		return
	}
	if _, err := store.RecordSession(source, createdAt, scores, results); err != nil {
		contract.LogWarn("Failed to record session history", err)
	}
}
