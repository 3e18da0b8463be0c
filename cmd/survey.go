package cmd

import (
	"os"

	"github.com/huangsam/presetter/core"
	"github.com/spf13/cobra"
)

// surveyCmd runs the interactive survey.
var surveyCmd = &cobra.Command{
	Use:   "survey",
	Short: "Answer the survey interactively and get chatbot preset recommendations.",
	Long: `Prompt for a score between 0 and 100 for every metric in the catalog, then
show the chatbot presets whose thresholds your scores meet or exceed.

Each metric allows three attempts. A metric that never receives a valid score
is recorded as 0. Type q, quit or exit at any prompt to abandon the survey
without saving anything.

Results are written to survey_results_YYYYMMDD_HHMMSS.json unless --save=false.

Examples:
  # Run the survey and save results to the current directory
  presetter survey

  # Keep results in a dedicated folder
  presetter survey --results-dir ./results

  # Print JSON instead of a table and skip the results file
  presetter survey --output json --save=false`,
	PreRunE: sharedSetupWrapper,
	RunE: func(_ *cobra.Command, _ []string) error {
		return core.ExecuteSurvey(rootCtx, cfg, catalog, historyManager, os.Stdin, os.Stdout)
	},
}
