package logger

import (
	"io"
	"log/slog"
	"os"
	"strings"

	"github.com/phrazzld/shop-api/internal/config"
)

// Setup initializes the application's logging system from the server
// configuration. It creates a structured JSON logger on stdout with the
// configured level and installs it as the slog default.
func Setup(cfg config.ServerConfig) (*slog.Logger, error) {
	return SetupWithWriter(cfg, os.Stdout)
}

// SetupWithWriter is Setup writing to w instead of stdout.
func SetupWithWriter(cfg config.ServerConfig, w io.Writer) (*slog.Logger, error) {
	level, ok := ParseLevel(cfg.LogLevel)
	if !ok {
		// Use a temporary text logger so the warning is visible even though
		// the JSON logger is not installed yet.
		tmpLogger := slog.New(slog.NewTextHandler(os.Stderr, nil))
		tmpLogger.Warn("invalid log level configured, using default level",
			"configured_level", cfg.LogLevel,
			"default_level", "info")
	}

	handler := slog.NewJSONHandler(w, &slog.HandlerOptions{Level: level})
	logger := slog.New(handler)

	slog.SetDefault(logger)

	return logger, nil
}

// ParseLevel maps a case-insensitive level name to a slog.Level.
// Unknown names yield slog.LevelInfo and false.
func ParseLevel(name string) (slog.Level, bool) {
	switch strings.ToLower(name) {
	case "debug":
		return slog.LevelDebug, true
	case "info":
		return slog.LevelInfo, true
	case "warn":
		return slog.LevelWarn, true
	case "error":
		return slog.LevelError, true
	default:
		return slog.LevelInfo, false
	}
}
