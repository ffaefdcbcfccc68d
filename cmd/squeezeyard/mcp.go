package main

import (
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	mcptransport "github.com/nadzzz/squeezeyard/internal/transport/mcp"
)

var mcpCmd = &cobra.Command{
	Use:   "mcp",
	Short: "Serve the command tool to an MCP client over stdio",
	Long: `Expose a single "squeezebox_command" tool over the Model Context Protocol.
Stdout carries the protocol, so logs are written to stderr.`,
	Args: cobra.NoArgs,
	RunE: runMCP,
}

func runMCP(cmd *cobra.Command, _ []string) error {
	_, _, dispatcher, err := setup(os.Stderr)
	if err != nil {
		return err
	}

	ctx, cancel := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	t := mcptransport.New(version)
	defer t.Close()
	return t.Listen(ctx, dispatcher.Handle)
}
