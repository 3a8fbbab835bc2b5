package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/qamus-labs/rootscan-cli/internal/adapters/driving/mcp"
)

var mcpCmd = &cobra.Command{
	Use:   "mcp",
	Short: "MCP server commands",
	Long:  `Commands for the Model Context Protocol (MCP) server integration.`,
}

var mcpServeCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the MCP server",
	Long: `Start the Model Context Protocol server for AI assistant integration.

The server exposes the corpus as tools: locate_verses finds every verse
containing a root and root_frequency lists roots by occurrence count.

By default, the server communicates over stdio using JSON-RPC. Use --port
to start an HTTP server instead, which enables testing with the MCP
Inspector web UI and remote access.

Examples:
  # Stdio mode (default, for MCP-compatible AI assistants)
  rootscan mcp serve --morphology corpus.tsv --verses quran-uthmani.xml

  # HTTP mode
  rootscan mcp serve --port 8080`,
	RunE: runMCPServe,
}

func init() {
	mcpServeCmd.Flags().IntP("port", "p", 0, "HTTP port (0 = use stdio)")
	mcpCmd.AddCommand(mcpServeCmd)
	rootCmd.AddCommand(mcpCmd)
}

func runMCPServe(cmd *cobra.Command, _ []string) error {
	port, err := cmd.Flags().GetInt("port")
	if err != nil {
		return fmt.Errorf("getting port flag: %w", err)
	}

	locator, err := ensureLocatorService()
	if err != nil {
		return err
	}
	frequency, err := ensureFrequencyService()
	if err != nil {
		return err
	}

	ports := &mcp.Ports{
		Locator:   locator,
		Frequency: frequency,
	}

	server, err := mcp.NewServer(ports)
	if err != nil {
		return err
	}

	if port > 0 {
		addr := fmt.Sprintf(":%d", port)
		fmt.Fprintf(cmd.OutOrStdout(), "MCP server listening on http://localhost%s\n", addr)
		return server.RunHTTP(cmd.Context(), addr)
	}

	return server.Run(cmd.Context())
}
