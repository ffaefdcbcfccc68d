package main

import (
	"context"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/spf13/cobra"
	"google.golang.org/grpc"
	"google.golang.org/grpc/credentials/insecure"

	"github.com/nadzzz/squeezeyard/internal/message"
	"github.com/nadzzz/squeezeyard/internal/transport"
	grpctransport "github.com/nadzzz/squeezeyard/internal/transport/grpc"
)

var askGRPC string

var askCmd = &cobra.Command{
	Use:   "ask <words...>",
	Short: "Run a single command and print the answer",
	Long: `Run one command, e.g. "squeezeyard ask turn up the kitchen".

By default the command is carried out directly against the media server.
With --grpc it is sent to a running daemon instead.`,
	Args: cobra.MinimumNArgs(1),
	RunE: runAsk,
}

func init() {
	askCmd.Flags().StringVar(&askGRPC, "grpc", "", "address of a running daemon's gRPC transport (host:port)")
}

func runAsk(cmd *cobra.Command, args []string) error {
	req := &message.Request{Text: strings.Join(args, " ")}
	transport.Stamp(req, "cli")

	var (
		reply *message.Reply
		err   error
	)
	if askGRPC != "" {
		reply, err = askRemote(cmd.Context(), askGRPC, req)
	} else {
		reply, err = askLocal(cmd.Context(), req)
	}
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	fmt.Fprintln(out, reply.Response)
	for _, e := range reply.Playlist {
		marker := " "
		if e.Current {
			marker = ">"
		}
		fmt.Fprintf(out, "%s %3d. %s\n", marker, e.Position, describeEntry(e))
	}
	if reply.Status == message.StatusFailed {
		return fmt.Errorf("command failed: %s", reply.Fault)
	}
	return nil
}

func askLocal(ctx context.Context, req *message.Request) (*message.Reply, error) {
	_, _, dispatcher, err := setup(os.Stderr)
	if err != nil {
		return nil, err
	}
	return dispatcher.Handle(ctx, req)
}

func askRemote(ctx context.Context, addr string, req *message.Request) (*message.Reply, error) {
	conn, err := grpc.NewClient(addr, grpc.WithTransportCredentials(insecure.NewCredentials()))
	if err != nil {
		return nil, fmt.Errorf("connecting to %s: %w", addr, err)
	}
	defer conn.Close()

	ctx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()
	return grpctransport.Dispatch(ctx, conn, req)
}

func describeEntry(e message.PlaylistEntry) string {
	parts := []string{e.Title}
	if e.Artist != "" {
		parts = append(parts, e.Artist)
	}
	if e.Album != "" {
		parts = append(parts, e.Album)
	}
	return strings.Join(parts, " - ")
}
