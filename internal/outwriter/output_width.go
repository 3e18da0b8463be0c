package outwriter

import (
	"os"

	"github.com/huangsam/presetter/internal/contract"
	"golang.org/x/term"
)

// getMaxTableDescWidth calculates the maximum width for preset descriptions in table
// output based on terminal width and the fixed columns around them.
func getMaxTableDescWidth(cfg *contract.Config) int {
	var termWidth int

	// Check for absolute width override from flag/env
	if cfg.Width > 0 {
		termWidth = cfg.Width
	}

	if termWidth == 0 { // Not set by override
		detectedWidth, _, err := term.GetSize(int(os.Stdout.Fd()))
		if err != nil || detectedWidth <= 0 {
			termWidth = 80 // Conservative default for narrow terminals and CI
		} else {
			termWidth = detectedWidth
		}
	}

	// Rank + Metric + Preset + Score + Threshold + Margin + Fit with borders/padding
	baseWidth := 95

	available := termWidth - baseWidth
	if available < 20 {
		return 20
	}
	if available > 70 {
		return 70
	}
	return available
}
