package cmd

import (
	"github.com/huangsam/lineup/core"
	"github.com/spf13/cobra"
)

// sampleCmd writes a synthetic squad.
var sampleCmd = &cobra.Command{
	Use:   "sample",
	Short: "Generate a synthetic squad for trying things out.",
	Long: `Draw plausible per-90 stats for a synthetic squad. The same --seed always yields
the same squad. Text output written to a file is CSV so it loads back directly.

Examples:
  lineup sample --players 18 --output-file squad.csv
  lineup optimize squad.csv`,
	Args:    cobra.NoArgs,
	PreRunE: sharedSetupWrapper,
	Run:     runExecutor("sample", core.ExecuteSample),
}

// positionsCmd prints the active scoring model.
var positionsCmd = &cobra.Command{
	Use:   "positions",
	Short: "Print the active stats, formation and roles.",
	Long: `Show the scoring model after defaults, config file and --formation-file are merged.
Each slot and role is listed with its weighted stat formula.`,
	Args:    cobra.NoArgs,
	PreRunE: sharedSetupWrapper,
	Run:     runExecutor("positions", core.ExecutePositions),
}
