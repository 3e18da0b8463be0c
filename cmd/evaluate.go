package cmd

import (
	"github.com/huangsam/presetter/core"
	"github.com/spf13/cobra"
)

// evaluateCmd evaluates scores passed on the command line.
var evaluateCmd = &cobra.Command{
	Use:   "evaluate [metric=score ...]",
	Short: "Evaluate scores without the interactive prompt.",
	Long: `Evaluate a set of metric scores supplied as metric=score pairs.

Scores are evaluated in the order given, which is also the order of the
presets in the output. Every score must be an integer between 0 and 100 and
every metric must exist in the catalog.

Examples:
  # Positional pairs
  presetter evaluate metric_a=85 metric_b=40 metric_c=30

  # Repeated flags with YAML output
  presetter evaluate -s metric_d=75 -s metric_a=70 --output yaml`,
	PreRunE: sharedSetupWrapper,
	RunE: func(cmd *cobra.Command, args []string) error {
		pairs, err := cmd.Flags().GetStringArray("score")
		if err != nil {
			return err
		}
		scores, err := core.ParseScorePairs(append(pairs, args...))
		if err != nil {
			return err
		}
		return core.ExecuteEvaluate(rootCtx, cfg, catalog, historyManager, scores)
	},
}
