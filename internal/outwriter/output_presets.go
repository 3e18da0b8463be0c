package outwriter

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"
	"time"

	"github.com/huangsam/presetter/internal/contract"
	"github.com/huangsam/presetter/schema"

	"github.com/olekukonko/tablewriter"
	"github.com/olekukonko/tablewriter/tw"
)

// PresetReport is the structured form of an evaluation, shared by JSON and YAML output.
type PresetReport struct {
	Presets []schema.EnrichedPresetResult `json:"presets" yaml:"presets"`
	Metrics []schema.Score                `json:"metrics" yaml:"metrics"`
}

// WritePresetResults outputs the evaluation results, dispatching based on the output format configured.
func WritePresetResults(results []schema.PresetResult, scores schema.ScoreSet, cfg *contract.Config, duration time.Duration) error {
	switch cfg.Output {
	case schema.JSONOut:
		return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			return writeJSON(w, buildPresetReport(results, scores))
		}, "Wrote JSON")
	case schema.YAMLOut:
		return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			return writeYAML(w, buildPresetReport(results, scores))
		}, "Wrote YAML")
	case schema.CSVOut:
		return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			return writeCSVResultsForPresets(w, results)
		}, "Wrote CSV")
	default:
		return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			return writePresetTable(w, results, scores, cfg, duration)
		}, "Wrote table")
	}
}

// buildPresetReport pairs the enriched presets with the scores that produced them.
func buildPresetReport(results []schema.PresetResult, scores schema.ScoreSet) PresetReport {
	metrics := scores
	if metrics == nil {
		metrics = schema.ScoreSet{}
	}
	return PresetReport{
		Presets: schema.EnrichPresets(results),
		Metrics: metrics,
	}
}

// writePresetTable generates and writes the human-readable table.
func writePresetTable(w io.Writer, results []schema.PresetResult, scores schema.ScoreSet, cfg *contract.Config, duration time.Duration) error {
	if len(results) == 0 {
		if _, err := fmt.Fprintln(w, "No presets matched your scores."); err != nil {
			return err
		}
		return writePresetSummary(w, results, scores, duration)
	}

	if _, err := fmt.Fprintln(w, "Selected chatbot presets based on your inputs:"); err != nil {
		return err
	}

	table := tablewriter.NewWriter(w)

	// 1. Define Headers
	table.Header([]string{"Rank", "Metric", "Preset", "Score", "Threshold", "Margin", "Fit", "Description"})

	// 2. Configure Alignment
	table.Configure(func(cfg *tablewriter.Config) {
		cfg.Row.Alignment.Global = tw.AlignRight
	})

	// 3. Populate Rows
	descWidth := getMaxTableDescWidth(cfg)
	var data [][]string
	for i, r := range results {
		fit := schema.GetFitLabel(r.Margin)
		if cfg.UseColors {
			fit = contract.GetColorFitLabel(r.Margin)
		}
		data = append(data, []string{
			strconv.Itoa(i + 1),
			r.Name,
			r.Preset,
			strconv.Itoa(r.Score),
			strconv.Itoa(r.Threshold),
			fmt.Sprintf("+%d", r.Margin),
			fit,
			contract.TruncateText(r.Description, descWidth),
		})
	}

	// 4. Render the table
	if err := table.Bulk(data); err != nil {
		return err
	}
	if err := table.Render(); err != nil {
		return err
	}
	return writePresetSummary(w, results, scores, duration)
}

// writePresetSummary writes the trailing summary line under the table.
func writePresetSummary(w io.Writer, results []schema.PresetResult, scores schema.ScoreSet, duration time.Duration) error {
	_, err := fmt.Fprintf(w, "Matched %d of %d metrics in %v\n", len(results), len(scores), duration)
	return err
}

// writeCSVResultsForPresets writes the evaluation results in CSV format.
func writeCSVResultsForPresets(w io.Writer, results []schema.PresetResult) error {
	header := []string{"rank", "metric", "name", "preset", "score", "threshold", "margin", "fit", "description"}
	return writeCSVWithHeader(w, header, func(csvWriter *csv.Writer) error {
		for i, r := range results {
			rec := []string{
				strconv.Itoa(i + 1),
				r.Metric,
				r.Name,
				r.Preset,
				strconv.Itoa(r.Score),
				strconv.Itoa(r.Threshold),
				strconv.Itoa(r.Margin),
				schema.GetFitLabel(r.Margin),
				r.Description,
			}
			if err := csvWriter.Write(rec); err != nil {
				return fmt.Errorf("failed to write CSV record: %w", err)
			}
		}
		return nil
	})
}
