package commands

import (
	"github.com/spf13/cobra"

	"github.com/gocutover/open-api-specs/internal/mcpserver"
)

func newMCPCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "mcp",
		Short: "Serve the compile, versions and template tools over MCP (stdio)",
		Long: `Start a Model Context Protocol server on stdin/stdout. Configure it with
OASPECS_* environment variables in the MCP client config; each tool also
accepts a root directory.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return mcpserver.Run(cmd.Context())
		},
	}
}
