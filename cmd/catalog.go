package cmd

import (
	"github.com/huangsam/presetter/core"
	"github.com/spf13/cobra"
)

// catalogCmd prints the preset catalog.
var catalogCmd = &cobra.Command{
	Use:   "catalog",
	Short: "List every survey metric and the preset it unlocks.",
	Long: `Show the fixed preset catalog: metric id, display name, threshold,
preset label and description.

Examples:
  presetter catalog
  presetter catalog --output csv --output-file catalog.csv`,
	PreRunE: sharedSetupWrapper,
	RunE: func(_ *cobra.Command, _ []string) error {
		return core.ExecuteCatalog(rootCtx, cfg, catalog)
	},
}
