package logging

import (
	"io"
	"os"

	"employee-service/internal/config"

	"github.com/go-kratos/kratos/v2/log"
)

// New creates the service logger with the standard key set, filtered by the
// configured level.
func New(cfg config.LogConfig, name, version string) log.Logger {
	return newLogger(os.Stdout, cfg, name, version)
}

func newLogger(w io.Writer, cfg config.LogConfig, name, version string) log.Logger {
	id, _ := os.Hostname()

	logger := log.With(log.NewStdLogger(w),
		"ts", log.DefaultTimestamp,
		"caller", log.DefaultCaller,
		"service.id", id,
		"service.name", name,
		"service.version", version,
	)

	return log.NewFilter(logger, log.FilterLevel(ParseLevel(cfg.Level)))
}

// ParseLevel converts a string log level, defaulting to info.
func ParseLevel(level string) log.Level {
	switch level {
	case "debug":
		return log.LevelDebug
	case "info":
		return log.LevelInfo
	case "warn":
		return log.LevelWarn
	case "error":
		return log.LevelError
	default:
		return log.LevelInfo
	}
}
