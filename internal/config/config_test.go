package config

import (
	"bytes"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "squeezeyard.yaml")
	if err := os.WriteFile(path, []byte(body), 0o600); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load(writeConfig(t, "{}\n"))
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if cfg.Server.Host != "localhost" || cfg.Server.Port != 9000 || cfg.Server.Scheme != "http" {
		t.Errorf("server = %+v", cfg.Server)
	}
	if cfg.Server.Timeout != 10*time.Second {
		t.Errorf("timeout = %v, want 10s", cfg.Server.Timeout)
	}
	if cfg.Commands.VolumeStep != 10 || cfg.Commands.PlaylistWindow != 3 {
		t.Errorf("commands = %+v", cfg.Commands)
	}
	if !cfg.Transports.HTTP.Enabled || cfg.Transports.GRPC.Enabled {
		t.Errorf("transports = %+v", cfg.Transports)
	}
	if cfg.Logging.Format != "json" || cfg.Logging.Level != "info" {
		t.Errorf("logging = %+v", cfg.Logging)
	}
}

func TestLoadFileAndEnvironment(t *testing.T) {
	path := writeConfig(t, `
server:
  host: lms.lan
  port: 9002
  username: admin
  password: ${TEST_LMS_PASSWORD}
  timeout: 2s
commands:
  volume_step: 5
transports:
  grpc:
    enabled: true
`)
	t.Setenv("TEST_LMS_PASSWORD", "hunter2")
	t.Setenv("SQUEEZEYARD_LOGGING_LEVEL", "debug")
	t.Setenv("SQUEEZEYARD_SERVER_PORT", "9100")

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if cfg.Server.Host != "lms.lan" {
		t.Errorf("host = %q", cfg.Server.Host)
	}
	if cfg.Server.Port != 9100 {
		t.Errorf("port = %d, want env override 9100", cfg.Server.Port)
	}
	if cfg.Server.Password != "hunter2" {
		t.Errorf("password = %q, want resolved env reference", cfg.Server.Password)
	}
	if cfg.Server.Timeout != 2*time.Second {
		t.Errorf("timeout = %v", cfg.Server.Timeout)
	}
	if cfg.Commands.VolumeStep != 5 {
		t.Errorf("volume_step = %d", cfg.Commands.VolumeStep)
	}
	if !cfg.Transports.GRPC.Enabled {
		t.Error("grpc should be enabled")
	}
	if cfg.Logging.Level != "debug" {
		t.Errorf("logging.level = %q", cfg.Logging.Level)
	}
}

func TestLoadRejectsInvalid(t *testing.T) {
	tests := []struct {
		name string
		body string
		want string
	}{
		{"empty host", "server:\n  host: \"\"\n", "server.host"},
		{"bad port", "server:\n  port: 70000\n", "server.port"},
		{"zero step", "commands:\n  volume_step: 0\n", "volume_step"},
		{"negative window", "commands:\n  playlist_window: -1\n", "playlist_window"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Load(writeConfig(t, tt.body))
			if err == nil || !strings.Contains(err.Error(), tt.want) {
				t.Errorf("Load() error = %v, want mention of %q", err, tt.want)
			}
		})
	}
}

func TestLoadMissingFile(t *testing.T) {
	if _, err := Load(filepath.Join(t.TempDir(), "absent.yaml")); err == nil {
		t.Error("Load() of a missing explicit file should fail")
	}
}

func TestResolveEnvRef(t *testing.T) {
	t.Setenv("TEST_LMS_USER", "alice")
	tests := []struct {
		in, want string
	}{
		{"${TEST_LMS_USER}", "alice"},
		{"${TEST_LMS_UNSET}", "${TEST_LMS_UNSET}"},
		{"plain", "plain"},
		{"", ""},
	}
	for _, tt := range tests {
		if got := resolveEnvRef(tt.in); got != tt.want {
			t.Errorf("resolveEnvRef(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestParseLevel(t *testing.T) {
	tests := []struct {
		in   string
		want slog.Level
	}{
		{"debug", slog.LevelDebug},
		{"WARN", slog.LevelWarn},
		{"warning", slog.LevelWarn},
		{"error", slog.LevelError},
		{"info", slog.LevelInfo},
		{"chatty", slog.LevelInfo},
	}
	for _, tt := range tests {
		if got := ParseLevel(tt.in); got != tt.want {
			t.Errorf("ParseLevel(%q) = %v, want %v", tt.in, got, tt.want)
		}
	}
}

func TestNewHandlerFormats(t *testing.T) {
	tests := []struct {
		format string
		want   string
	}{
		{"json", `"msg":"hello"`},
		{"text", "msg=hello"},
		{"pretty", "hello"},
	}
	for _, tt := range tests {
		t.Run(tt.format, func(t *testing.T) {
			var buf bytes.Buffer
			logger := slog.New(NewHandler(LoggingConfig{Level: "info", Format: tt.format}, &buf))
			logger.Debug("hidden")
			logger.Info("hello", "player", "Kitchen")
			out := buf.String()
			if !strings.Contains(out, tt.want) || !strings.Contains(out, "Kitchen") {
				t.Errorf("output %q missing %q", out, tt.want)
			}
			if strings.Contains(out, "hidden") {
				t.Errorf("debug line leaked at info level: %q", out)
			}
		})
	}
}

func TestSetupLoggingWritesFile(t *testing.T) {
	prev := slog.Default()
	t.Cleanup(func() { slog.SetDefault(prev) })

	path := filepath.Join(t.TempDir(), "logs", "squeezeyard.log")
	var console bytes.Buffer
	if err := SetupLogging(LoggingConfig{Level: "info", Format: "json", File: path}, &console); err != nil {
		t.Fatalf("SetupLogging() error = %v", err)
	}
	slog.Info("written twice")

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("reading log file: %v", err)
	}
	if !strings.Contains(string(data), "written twice") || !strings.Contains(console.String(), "written twice") {
		t.Errorf("file %q console %q", data, console.String())
	}
}
