package logs

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"

	slogmulti "github.com/samber/slog-multi"

	"github.com/vugu/vgnav/internal/config"
)

// ParseLevel maps a configured level name to a slog level. Unknown names give Warn.
func ParseLevel(s string) slog.Level {
	switch s {
	case "Debug", "debug":
		return slog.LevelDebug
	case "Info", "info":
		return slog.LevelInfo
	case "Warn", "warn":
		return slog.LevelWarn
	case "Error", "error":
		return slog.LevelError
	default:
		return slog.LevelWarn
	}
}

// New returns a logger writing text to stdout and, with output "file", JSON
// to the configured file as well. The returned func closes the log file.
func New(cfg config.Logging, stdout io.Writer) (*slog.Logger, func() error, error) {

	opts := &slog.HandlerOptions{
		Level: ParseLevel(cfg.Level),
	}

	handlers := []slog.Handler{
		slog.NewTextHandler(stdout, opts),
	}
	closeFn := func() error { return nil }

	if cfg.Output == "file" {
		logPath, err := filepath.Abs(filepath.ToSlash(cfg.File))
		if err != nil {
			return nil, nil, fmt.Errorf("unable to create log file path: %w", err)
		}
		logFile, err := os.OpenFile(logPath, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
		if err != nil {
			return nil, nil, fmt.Errorf("unable to create log file: %w", err)
		}
		handlers = append(handlers, slog.NewJSONHandler(logFile, opts))
		closeFn = logFile.Close
	}

	return slog.New(slogmulti.Fanout(handlers...)), closeFn, nil
}
