package main

import (
	"context"

	"github.com/spf13/cobra"

	"haci/internal/logging"
	mcpserver "haci/internal/mcp"
)

var mcpCmd = &cobra.Command{
	Use:   "mcp",
	Short: "Serve investigation tools over MCP stdio",
	Long: `Starts an MCP server on stdin/stdout so an agent can drive
investigations: start_investigation, get_steps, get_result.

The server watches for parent process death and self-terminates to
avoid zombie processes when the client disconnects.`,
	RunE: runMCP,
}

func runMCP(cmd *cobra.Command, _ []string) error {
	_, base, err := setup()
	if err != nil {
		return err
	}

	srv, err := mcpserver.NewServer(base)
	if err != nil {
		return err
	}
	defer srv.Shutdown()

	ctx, cancel := context.WithCancel(cmd.Context())
	defer cancel()
	mcpserver.WatchParent(ctx, cancel)

	logging.New("mcp").Info("starting MCP server over stdio",
		"provider", base.Adapter.Provider())
	return srv.Run(ctx)
}
