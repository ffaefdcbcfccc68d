// Package mcp exposes the command interface to AI assistants as a Model
// Context Protocol tool served over stdio.
package mcp

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"github.com/nadzzz/squeezeyard/internal/message"
	"github.com/nadzzz/squeezeyard/internal/transport"
)

// ToolName is the name of the command tool.
const ToolName = "squeezebox_command"

// Transport implements transport.Transport over MCP stdio.
type Transport struct {
	version string
	in      io.Reader
	out     io.Writer
	cancel  context.CancelFunc
}

// New creates an MCP transport reading requests from stdin and writing
// responses to stdout. Logs must go elsewhere.
func New(version string) *Transport {
	return &Transport{version: version, in: os.Stdin, out: os.Stdout}
}

// Name returns the transport identifier.
func (t *Transport) Name() string { return "mcp" }

// NewServer builds the MCP server with the command tool registered.
func (t *Transport) NewServer(handler transport.Handler) *server.MCPServer {
	s := server.NewMCPServer(
		"squeezeyard",
		t.version,
		server.WithToolCapabilities(false),
	)
	s.AddTool(
		mcp.NewTool(ToolName,
			mcp.WithDescription("Control Squeezebox players connected to a Logitech Media Server with a plain English "+
				"command, e.g. \"play Kind of Blue in the kitchen\", \"louder\", \"what's playing\" or \"turn off the den\". "+
				"Returns a one-sentence confirmation."),
			mcp.WithString("text",
				mcp.Required(),
				mcp.Description("The command, as the user would say it"),
			),
		),
		toolHandler(handler),
	)
	return s
}

// toolHandler adapts a transport.Handler to an MCP tool handler. Command
// failures are reported as tool errors carrying the reply text.
func toolHandler(handler transport.Handler) server.ToolHandlerFunc {
	return func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		text, ok := request.GetArguments()["text"].(string)
		if !ok {
			return mcp.NewToolResultError(`required parameter "text" must be a string`), nil
		}

		req := &message.Request{Text: text}
		transport.Stamp(req, "mcp")
		reply, err := handler(ctx, req)
		if err != nil {
			return mcp.NewToolResultError(fmt.Sprintf("dispatch failed: %s", err)), nil
		}
		if reply.Status == message.StatusFailed {
			return mcp.NewToolResultError(reply.Response), nil
		}
		return mcp.NewToolResultText(reply.Response), nil
	}
}

// Listen serves MCP over stdio until ctx is cancelled or stdin closes.
func (t *Transport) Listen(ctx context.Context, handler transport.Handler) error {
	ctx, t.cancel = context.WithCancel(ctx)
	slog.Info("mcp transport serving on stdio")
	stdio := server.NewStdioServer(t.NewServer(handler))
	if err := stdio.Listen(ctx, t.in, t.out); err != nil && ctx.Err() == nil {
		return fmt.Errorf("mcp serve: %w", err)
	}
	return nil
}

// Close stops serving.
func (t *Transport) Close() error {
	if t.cancel != nil {
		t.cancel()
	}
	return nil
}
