package cli

import (
	"github.com/spf13/cobra"

	"github.com/ironsheep/wordsearch-mcp/internal/logging"
	"github.com/ironsheep/wordsearch-mcp/internal/server"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the MCP server on stdio",
	Long: `Start the Model Context Protocol server. Requests are read from stdin
and responses written to stdout, one JSON-RPC message per line. Logs go to
stderr.

MCP client configuration:
  {
    "mcpServers": {
      "wordsearch": {
        "command": "/path/to/wordsearch",
        "args": ["serve"]
      }
    }
  }`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, _ []string) error {
		server.Version = version
		logging.Info("wordsearch MCP server %s", version)
		return server.New(cfg).Serve(cmd.InOrStdin(), cmd.OutOrStdout())
	},
}

func init() {
	rootCmd.AddCommand(serveCmd)
}
