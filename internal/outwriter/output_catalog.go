package outwriter

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"

	"github.com/huangsam/presetter/internal/contract"
	"github.com/huangsam/presetter/schema"
)

// WriteCatalogDefinitions displays every metric definition with its threshold and preset.
func WriteCatalogDefinitions(defs []schema.MetricDefinition, cfg *contract.Config) error {
	switch cfg.Output {
	case schema.JSONOut:
		return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			return writeJSON(w, defs)
		}, "Wrote JSON")
	case schema.YAMLOut:
		return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			return writeYAML(w, defs)
		}, "Wrote YAML")
	case schema.CSVOut:
		return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			return writeCSVCatalog(w, defs)
		}, "Wrote CSV")
	default:
		return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			return writeCatalogText(w, defs)
		}, "Wrote text")
	}
}

// writeCatalogText displays the catalog in human-readable text format.
func writeCatalogText(w io.Writer, defs []schema.MetricDefinition) error {
	if _, err := fmt.Fprintf(w, "🤖 Chatbot Preset Catalog\n"); err != nil {
		return err
	}
	if _, err := fmt.Fprintf(w, "=========================\n\n"); err != nil {
		return err
	}
	for _, def := range defs {
		if _, err := fmt.Fprintf(w, "%s [%s]\n", def.Name, def.ID); err != nil {
			return err
		}
		if _, err := fmt.Fprintf(w, "   Preset: %s (score >= %d)\n", def.Preset, def.Threshold); err != nil {
			return err
		}
		if _, err := fmt.Fprintf(w, "   %s\n\n", def.Description); err != nil {
			return err
		}
	}
	return nil
}

// writeCSVCatalog writes the catalog in CSV format.
func writeCSVCatalog(w io.Writer, defs []schema.MetricDefinition) error {
	header := []string{"id", "name", "threshold", "preset", "description"}
	return writeCSVWithHeader(w, header, func(csvWriter *csv.Writer) error {
		for _, def := range defs {
			rec := []string{def.ID, def.Name, strconv.Itoa(def.Threshold), def.Preset, def.Description}
			if err := csvWriter.Write(rec); err != nil {
				return fmt.Errorf("failed to write CSV record: %w", err)
			}
		}
		return nil
	})
}
