package cmd

import (
	"runtime"

	"github.com/spf13/cobra"
)

// versionCmd shows the verbose version for diagnostic purposes.
var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the version number of presetter.",
	Long: `Display version information including build details and the
size of the built-in preset catalog.

Useful for verifying the installed binary and reporting bugs.`,
	Run: func(cmd *cobra.Command, _ []string) {
		cmd.Printf("presetter CLI\n")
		cmd.Printf("  Version: %s\n", version)
		cmd.Printf("  Commit:  %s\n", commit)
		cmd.Printf("  Built:   %s\n", date)
		cmd.Printf("  Runtime: %s\n", runtime.Version())
		cmd.Printf("  Metrics: %d\n", catalog.Len())
	},
}
