// Package config handles loading and validating the squeezeyard configuration.
package config

import (
	"fmt"
	"log/slog"
	"os"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Config is the root configuration for squeezeyard.
type Config struct {
	Server     ServerConfig     `mapstructure:"server"`
	Commands   CommandsConfig   `mapstructure:"commands"`
	Transports TransportsConfig `mapstructure:"transports"`
	Health     HealthConfig     `mapstructure:"health"`
	Logging    LoggingConfig    `mapstructure:"logging"`
}

// ServerConfig locates the Logitech Media Server.
type ServerConfig struct {
	Host     string        `mapstructure:"host"`
	Port     int           `mapstructure:"port"`
	Scheme   string        `mapstructure:"scheme"` // "http" or "https"
	Username string        `mapstructure:"username"`
	Password string        `mapstructure:"password"`
	Timeout  time.Duration `mapstructure:"timeout"`
}

// CommandsConfig tunes command behaviour.
type CommandsConfig struct {
	VolumeStep     int `mapstructure:"volume_step"`     // percentage points per louder/quieter
	PlaylistWindow int `mapstructure:"playlist_window"` // entries shown either side of the current track
}

// TransportsConfig holds the configuration for each command surface.
type TransportsConfig struct {
	GRPC GRPCConfig `mapstructure:"grpc"`
	HTTP HTTPConfig `mapstructure:"http"`
}

// GRPCConfig configures the gRPC transport.
type GRPCConfig struct {
	Enabled bool `mapstructure:"enabled"`
	Port    int  `mapstructure:"port"`
}

// HTTPConfig configures the HTTP transport.
type HTTPConfig struct {
	Enabled bool `mapstructure:"enabled"`
	Port    int  `mapstructure:"port"`
}

// HealthConfig holds the health check server settings.
type HealthConfig struct {
	Port int `mapstructure:"port"`
}

// LoggingConfig holds structured logging settings.
type LoggingConfig struct {
	Level  string `mapstructure:"level"`  // debug, info, warn, error
	Format string `mapstructure:"format"` // json, text, pretty
	File   string `mapstructure:"file"`   // optional rotating log file
}

// Load reads the configuration from file, environment variables, and defaults.
// If configFile is non-empty it is used directly; otherwise the standard
// search order applies: ./squeezeyard.yaml, ./configs/squeezeyard.yaml, /etc/squeezeyard/squeezeyard.yaml.
func Load(configFile string) (*Config, error) {
	v := viper.New()

	v.SetDefault("server.host", "localhost")
	v.SetDefault("server.port", 9000)
	v.SetDefault("server.scheme", "http")
	v.SetDefault("server.username", "")
	v.SetDefault("server.password", "")
	v.SetDefault("server.timeout", "10s")
	v.SetDefault("commands.volume_step", 10)
	v.SetDefault("commands.playlist_window", 3)
	v.SetDefault("transports.grpc.enabled", false)
	v.SetDefault("transports.grpc.port", 50051)
	v.SetDefault("transports.http.enabled", true)
	v.SetDefault("transports.http.port", 8080)
	v.SetDefault("health.port", 8081)
	v.SetDefault("logging.level", "info")
	v.SetDefault("logging.format", "json")
	v.SetDefault("logging.file", "")

	if configFile != "" {
		v.SetConfigFile(configFile)
	} else {
		v.SetConfigName("squeezeyard")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
		v.AddConfigPath("./configs")
		v.AddConfigPath("/etc/squeezeyard")
	}

	// Environment variables: SQUEEZEYARD_SERVER_HOST, SQUEEZEYARD_LOGGING_LEVEL, etc.
	v.SetEnvPrefix("SQUEEZEYARD")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("reading config: %w", err)
		}
		slog.Debug("no config file found, using defaults and environment variables")
	} else {
		slog.Debug("loaded config file", "path", v.ConfigFileUsed())
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("unmarshalling config: %w", err)
	}

	cfg.Server.Username = resolveEnvRef(cfg.Server.Username)
	cfg.Server.Password = resolveEnvRef(cfg.Server.Password)

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Validate rejects settings the engine cannot work with.
func (c *Config) Validate() error {
	if c.Server.Host == "" {
		return fmt.Errorf("server.host must be set")
	}
	if c.Server.Port <= 0 || c.Server.Port > 65535 {
		return fmt.Errorf("server.port %d out of range", c.Server.Port)
	}
	if c.Commands.VolumeStep <= 0 || c.Commands.VolumeStep > 100 {
		return fmt.Errorf("commands.volume_step %d out of range", c.Commands.VolumeStep)
	}
	if c.Commands.PlaylistWindow < 0 {
		return fmt.Errorf("commands.playlist_window must not be negative")
	}
	return nil
}

// resolveEnvRef replaces "${VAR_NAME}" patterns with the corresponding env var value.
func resolveEnvRef(val string) string {
	if strings.HasPrefix(val, "${") && strings.HasSuffix(val, "}") {
		envKey := val[2 : len(val)-1]
		if envVal := os.Getenv(envKey); envVal != "" {
			return envVal
		}
	}
	return val
}
