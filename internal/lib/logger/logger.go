package logger

import (
	"io"
	"log/slog"
	"os"
	"path/filepath"
)

const (
	envLocal = "local"
	envDev   = "dev"
	envProd  = "prod"
)

// SetupLogger builds the root slog logger for the given environment.
// local: pretty text to stdout with debug enabled; dev/prod: JSON to a
// file under logPath, falling back to stdout when the file can't be opened.
func SetupLogger(env, logPath string) *slog.Logger {
	switch env {
	case envDev:
		return slog.New(slog.NewJSONHandler(logOutput(logPath), &slog.HandlerOptions{Level: slog.LevelDebug}))
	case envProd:
		return slog.New(slog.NewJSONHandler(logOutput(logPath), &slog.HandlerOptions{Level: slog.LevelInfo}))
	default:
		return slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelDebug}))
	}
}

func logOutput(logPath string) io.Writer {
	file := filepath.Join(logPath, "driveline.log")
	f, err := os.OpenFile(file, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return os.Stdout
	}
	return f
}
