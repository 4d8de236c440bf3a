package cmd

import (
	"fmt"

	mcpserver "github.com/mark3labs/mcp-go/server"
	"github.com/spf13/cobra"

	"github.com/agendum/agendum/internal/tools/eventtools"
)

func newMcpCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "mcp",
		Short: "Run an MCP server exposing the calendar tools over stdio",
		Long: `Run a Model Context Protocol server over stdio so AI assistants can
add, list, update and delete calendar events through tool calls.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			rt, err := newRuntime()
			if err != nil {
				return err
			}
			defer rt.Close()

			mcpSrv := mcpserver.NewMCPServer("agendum", version,
				mcpserver.WithToolCapabilities(true),
			)
			eventtools.RegisterEventTools(mcpSrv, rt.events, rt.cfg.Chat.DefaultUser)

			if err := mcpserver.ServeStdio(mcpSrv); err != nil {
				return fmt.Errorf("MCP server error: %w", err)
			}
			return nil
		},
	}
}
