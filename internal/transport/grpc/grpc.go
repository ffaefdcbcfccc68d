// Package grpc implements the gRPC transport for squeezeyard.
//
// The service squeezeyard.v1.Commands has a single unary method, Dispatch,
// taking a message.Request and returning a message.Reply. Messages travel as
// JSON under the "json" content subtype, so clients need no generated code:
//
//	conn.Invoke(ctx, grpc.DispatchMethod, req, &reply, grpc.CallContentSubtype("json"))
package grpc

import (
	"context"
	"fmt"
	"log/slog"
	"net"

	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	"github.com/nadzzz/squeezeyard/internal/message"
	"github.com/nadzzz/squeezeyard/internal/transport"
)

// DispatchMethod is the full method name of Commands.Dispatch.
const DispatchMethod = "/squeezeyard.v1.Commands/Dispatch"

// CommandServer is the server API for the squeezeyard.v1.Commands service.
type CommandServer interface {
	Dispatch(ctx context.Context, req *message.Request) (*message.Reply, error)
}

var serviceDesc = grpc.ServiceDesc{
	ServiceName: "squeezeyard.v1.Commands",
	HandlerType: (*CommandServer)(nil),
	Methods: []grpc.MethodDesc{
		{MethodName: "Dispatch", Handler: dispatchHandler},
	},
	Streams:  []grpc.StreamDesc{},
	Metadata: "squeezeyard/v1/commands",
}

func dispatchHandler(srv any, ctx context.Context, dec func(any) error, interceptor grpc.UnaryServerInterceptor) (any, error) {
	in := new(message.Request)
	if err := dec(in); err != nil {
		return nil, err
	}
	if interceptor == nil {
		return srv.(CommandServer).Dispatch(ctx, in)
	}
	info := &grpc.UnaryServerInfo{Server: srv, FullMethod: DispatchMethod}
	handler := func(ctx context.Context, req any) (any, error) {
		return srv.(CommandServer).Dispatch(ctx, req.(*message.Request))
	}
	return interceptor(ctx, in, info, handler)
}

// RegisterCommandServer registers srv on s.
func RegisterCommandServer(s grpc.ServiceRegistrar, srv CommandServer) {
	s.RegisterService(&serviceDesc, srv)
}

// commandServer adapts a transport.Handler to CommandServer.
type commandServer struct {
	handler transport.Handler
}

func (c commandServer) Dispatch(ctx context.Context, req *message.Request) (*message.Reply, error) {
	transport.Stamp(req, "grpc")
	reply, err := c.handler(ctx, req)
	if err != nil {
		slog.Error("dispatch failed", "request_id", req.ID, "error", err)
		return nil, status.Errorf(codes.Internal, "dispatch: %v", err)
	}
	return reply, nil
}

// Dispatch sends req to a remote squeezeyard over conn.
func Dispatch(ctx context.Context, conn grpc.ClientConnInterface, req *message.Request) (*message.Reply, error) {
	reply := new(message.Reply)
	if err := conn.Invoke(ctx, DispatchMethod, req, reply, grpc.CallContentSubtype(codecName)); err != nil {
		return nil, err
	}
	return reply, nil
}

// Transport implements transport.Transport over gRPC.
type Transport struct {
	port   int
	server *grpc.Server
}

// New creates a new gRPC transport on the given port.
func New(port int) *Transport {
	return &Transport{port: port}
}

// Name returns the transport identifier.
func (t *Transport) Name() string { return "grpc" }

// Listen starts the gRPC server and routes incoming requests to the handler.
func (t *Transport) Listen(ctx context.Context, handler transport.Handler) error {
	lis, err := net.Listen("tcp", fmt.Sprintf(":%d", t.port))
	if err != nil {
		return fmt.Errorf("grpc listen: %w", err)
	}
	slog.Info("grpc transport listening", "port", t.port)
	return t.Serve(ctx, lis, handler)
}

// Serve runs the server on lis until ctx is cancelled.
func (t *Transport) Serve(ctx context.Context, lis net.Listener, handler transport.Handler) error {
	t.server = grpc.NewServer()
	RegisterCommandServer(t.server, commandServer{handler: handler})

	go func() {
		<-ctx.Done()
		slog.Info("grpc transport shutting down")
		t.server.GracefulStop()
	}()

	return t.server.Serve(lis)
}

// Close gracefully stops the gRPC server.
func (t *Transport) Close() error {
	if t.server != nil {
		t.server.GracefulStop()
	}
	return nil
}
