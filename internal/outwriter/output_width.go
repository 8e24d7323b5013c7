package outwriter

import (
	"os"

	"github.com/huangsam/lineup/internal/contract"
	"golang.org/x/term"
)

// GetMaxTableNameWidth calculates the maximum width for player names in table output
// based on terminal width and the number of other columns.
func GetMaxTableNameWidth(cfg *contract.Config, otherColumns int) int {
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

	// Every other column takes about 10 characters with borders and padding
	available := termWidth - otherColumns*10 - 4
	if available < 12 {
		return 12
	}
	if available > 40 {
		return 40
	}
	return available
}
