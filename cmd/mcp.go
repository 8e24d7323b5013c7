package cmd

import (
	"github.com/huangsam/lineup/internal/mcp"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

// mcpCmd represents the mcp command.
var mcpCmd = &cobra.Command{
	Use:   "mcp",
	Short: "Start the lineup MCP server",
	Long: `Launch an MCP server on stdio that lets AI agents build fitness matrices,
solve assignments and pick lineups through standard tools.

Logs go to stderr or --log-file so stdout stays free for the protocol.
With --metrics-addr, solve counters and latencies are served for Prometheus.`,
	PreRunE: sharedSetupWrapper,
	RunE: func(_ *cobra.Command, _ []string) error {
		return mcp.StartMCPServer(rootCtx, cfg, cacheManager, viper.GetString("metrics-addr"))
	},
}
