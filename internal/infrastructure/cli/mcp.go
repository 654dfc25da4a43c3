package cli

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	inframcp "github.com/felixgeelhaar/weekplan/internal/infrastructure/mcp"
)

var (
	mcpTransport string
	mcpAddr      string
)

var mcpCmd = &cobra.Command{
	Use:   "mcp",
	Short: "Start the weekplan MCP server for AI agents",
	Long: `Start the Model Context Protocol server that exposes task and
journal operations to AI agents. Agents see the same store the CLI
does; their writes are attributed to the "agent" actor in the audit
trail.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		if os.Getenv("WEEKPLAN_SKIP_MCP_START") == "true" {
			return nil
		}
		cfg, err := loadConfig()
		if err != nil {
			return err
		}
		server, err := inframcp.NewServer(cfg)
		if err != nil {
			return err
		}
		switch strings.ToLower(mcpTransport) {
		case "stdio", "":
			return server.ServeStdio(cmd.Context())
		case "http":
			return server.ServeHTTP(cmd.Context(), mcpAddr)
		default:
			return fmt.Errorf("unsupported transport: %s", mcpTransport)
		}
	},
}

func init() {
	mcpCmd.Flags().StringVar(&mcpTransport, "transport", "stdio", "Transport to use (stdio, http)")
	mcpCmd.Flags().StringVar(&mcpAddr, "addr", ":8080", "Address for the http transport")
	RootCmd.AddCommand(mcpCmd)
}
