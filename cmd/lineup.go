package cmd

import (
	"github.com/huangsam/lineup/core"
	"github.com/huangsam/lineup/internal/contract"
	"github.com/spf13/cobra"
)

// runExecutor adapts a core executor to a cobra Run function.
func runExecutor(what string, exec core.ExecutorFunc) func(*cobra.Command, []string) {
	return func(_ *cobra.Command, args []string) {
		if err := exec(rootCtx, cfg, cacheManager, args); err != nil {
			contract.LogFatal("Cannot run "+what, err)
		}
	}
}

// optimizeCmd builds the fitness matrix of a squad and solves the lineup.
var optimizeCmd = &cobra.Command{
	Use:   "optimize <squad-file>",
	Short: "Pick the best lineup for a squad.",
	Long: `Score every player of a squad against every formation slot, then find the
one-to-one assignment with the highest total fit.

The squad file is CSV (or Parquet) with a player column and one column per stat.
Headers are matched case-insensitively, so xG_p90 and xg_p90 are the same stat.

Examples:
  # Default front four (LW, AM, RW, ST)
  lineup optimize squad.csv

  # Custom formation from YAML, with the full matrix
  lineup optimize squad.csv --formation-file 433.yaml --detail

  # Machine-readable output
  lineup optimize squad.csv --output json --output-file lineup.json`,
	Args:    cobra.ExactArgs(1),
	PreRunE: sharedSetupWrapper,
	Run:     runExecutor("lineup optimization", core.ExecuteOptimize),
}

// solveCmd solves a ready fitness matrix.
var solveCmd = &cobra.Command{
	Use:   "solve <matrix-file>",
	Short: "Solve a ready fitness matrix.",
	Long: `Find the best player-to-position assignment for a fitness matrix.

The matrix is either CSV (header "player" followed by positions, one row per
player) or JSON ({"players":[],"positions":[],"scores":[[]]}). Rectangular
matrices leave the surplus players or positions unassigned.

Examples:
  lineup solve matrix.csv
  lineup matrix squad.csv --output csv --output-file m.csv && lineup solve m.csv`,
	Args:    cobra.ExactArgs(1),
	PreRunE: sharedSetupWrapper,
	Run:     runExecutor("assignment", core.ExecuteSolve),
}

// matrixCmd prints the fitness matrix of a squad.
var matrixCmd = &cobra.Command{
	Use:   "matrix <squad-file>",
	Short: "Print the fitness matrix of a squad without solving it.",
	Long: `Normalize each stat by its squad maximum and score every player against every
formation slot. CSV output can be fed straight back into "lineup solve".`,
	Args:    cobra.ExactArgs(1),
	PreRunE: sharedSetupWrapper,
	Run:     runExecutor("matrix build", core.ExecuteMatrix),
}

// rolesCmd rates every player against the configured roles.
var rolesCmd = &cobra.Command{
	Use:   "roles <squad-file>",
	Short: "Show each player's best role.",
	Long: `Rate every player against the configured roles (creator and striker by default)
and list them by best score. Ties go to the role listed first.

Examples:
  lineup roles squad.csv --limit 5`,
	Args:    cobra.ExactArgs(1),
	PreRunE: sharedSetupWrapper,
	Run:     runExecutor("role analysis", core.ExecuteRoles),
}

// batchCmd optimizes many squads concurrently.
var batchCmd = &cobra.Command{
	Use:   "batch <squad-file>...",
	Short: "Optimize several squads concurrently.",
	Long: `Optimize every squad file with up to --workers solves in flight.
Results keep the order of the arguments. A failing squad is reported in its own
row and does not stop the others; the command fails only when every squad failed.

Examples:
  lineup batch squads/*.csv --workers 8
  lineup batch home.csv away.csv --output parquet --output-file lineups.parquet`,
	Args:    cobra.MinimumNArgs(1),
	PreRunE: sharedSetupWrapper,
	Run:     runExecutor("batch", core.ExecuteBatch),
}
