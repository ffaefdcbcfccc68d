package main

import (
	"fmt"
	"io"
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/nadzzz/squeezeyard/docs"
	"github.com/nadzzz/squeezeyard/internal/config"
	"github.com/nadzzz/squeezeyard/internal/dispatch"
	"github.com/nadzzz/squeezeyard/internal/gateway/lms"
)

// version is set at build time via ldflags.
var version = "dev"

var configFile string

var rootCmd = &cobra.Command{
	Use:   "squeezeyard",
	Short: "Natural-language control for Squeezebox players",
	Long: `Squeezeyard interprets commands such as "play Kind of Blue in the kitchen"
and carries them out on a Logitech Media Server.`,
	Version:      version,
	SilenceUsage: true,
	CompletionOptions: cobra.CompletionOptions{
		HiddenDefaultCmd: true,
	},
}

func init() {
	rootCmd.SetVersionTemplate(fmt.Sprintf("squeezeyard %s\n", version))
	rootCmd.PersistentFlags().StringVar(&configFile, "config", "", "path to config file (e.g. configs/squeezeyard.yaml)")
	docs.SwaggerInfo.Version = version

	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(askCmd)
	rootCmd.AddCommand(mcpCmd)
}

// setup loads configuration, installs the logger and builds the dispatcher.
func setup(logOut io.Writer) (*config.Config, *lms.Client, *dispatch.Dispatcher, error) {
	cfg, err := config.Load(configFile)
	if err != nil {
		return nil, nil, nil, fmt.Errorf("loading configuration: %w", err)
	}
	if err := config.SetupLogging(cfg.Logging, logOut); err != nil {
		return nil, nil, nil, fmt.Errorf("setting up logging: %w", err)
	}

	client := lms.New(cfg.Server)
	slog.Debug("media server", "endpoint", client.Endpoint())
	return cfg, client, dispatch.New(client, cfg.Commands), nil
}
