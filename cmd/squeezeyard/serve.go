package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/nadzzz/squeezeyard/internal/gateway"
	"github.com/nadzzz/squeezeyard/internal/health"
	"github.com/nadzzz/squeezeyard/internal/transport"
	grpctransport "github.com/nadzzz/squeezeyard/internal/transport/grpc"
	httptransport "github.com/nadzzz/squeezeyard/internal/transport/http"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the command daemon",
	Long:  `Serve commands over the enabled transports (HTTP, gRPC) until interrupted.`,
	Args:  cobra.NoArgs,
	RunE:  runServe,
}

func runServe(cmd *cobra.Command, _ []string) error {
	cfg, client, dispatcher, err := setup(os.Stdout)
	if err != nil {
		return err
	}
	slog.Info("squeezeyard starting", "version", version, "server", client.Endpoint())

	ctx, cancel := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	var transports []transport.Transport
	if cfg.Transports.GRPC.Enabled {
		transports = append(transports, grpctransport.New(cfg.Transports.GRPC.Port))
	}
	if cfg.Transports.HTTP.Enabled {
		transports = append(transports, httptransport.New(cfg.Transports.HTTP.Port))
	}
	if len(transports) == 0 {
		return errors.New("no transports enabled, enable at least one in config")
	}

	healthServer := health.New(cfg.Health.Port, func(ctx context.Context) error {
		_, err := gateway.Version(ctx, client)
		return err
	})

	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		return healthServer.ListenAndServe(ctx)
	})
	for _, t := range transports {
		g.Go(func() error {
			slog.Info("starting transport", "name", t.Name())
			if err := t.Listen(ctx, dispatcher.Handle); err != nil {
				return fmt.Errorf("%s transport: %w", t.Name(), err)
			}
			return nil
		})
	}

	healthServer.SetReady(true)
	slog.Info("squeezeyard ready", "transports", len(transports), "health_port", cfg.Health.Port)

	// Each transport shuts itself down when ctx is cancelled.
	err = g.Wait()
	for _, t := range transports {
		if cerr := t.Close(); cerr != nil {
			slog.Error("transport close error", "name", t.Name(), "error", cerr)
		}
	}
	if err != nil {
		slog.Error("squeezeyard stopped with error", "error", err)
		return err
	}
	slog.Info("squeezeyard stopped")
	return nil
}
