// Package transport defines the interface for pluggable command surfaces.
//
// Each transport (HTTP, gRPC, MCP) accepts free-text commands in its own
// protocol and hands them to the dispatcher through a Handler. The dispatcher
// doesn't care how requests arrive; it only works with the Transport contract.
package transport

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/nadzzz/squeezeyard/internal/message"
)

// Handler processes an incoming request and returns its reply.
// The dispatcher provides this handler to each transport.
type Handler func(ctx context.Context, req *message.Request) (*message.Reply, error)

// Transport is the interface that every transport adapter must implement.
type Transport interface {
	// Name returns the transport identifier (e.g., "grpc", "http", "mcp").
	Name() string

	// Listen starts accepting requests and passes them to the handler.
	// It blocks until the context is cancelled.
	Listen(ctx context.Context, handler Handler) error

	// Close gracefully shuts down the transport, draining in-flight work.
	Close() error
}

// Stamp fills in the fields a transport owns: a fresh ID when the caller did
// not supply one, the receive time, and the source when missing.
func Stamp(req *message.Request, source string) {
	if req.ID == "" {
		req.ID = uuid.NewString()
	}
	if req.Source == "" {
		req.Source = source
	}
	req.Timestamp = time.Now().UTC()
}
