package sl

import (
	"log/slog"
)

// Err returns a slog attribute for an error value.
func Err(err error) slog.Attr {
	return slog.Attr{
		Key:   "error",
		Value: slog.StringValue(err.Error()),
	}
}

// Module tags log records with the emitting module name.
func Module(name string) slog.Attr {
	return slog.Attr{
		Key:   "module",
		Value: slog.StringValue(name),
	}
}

// Secret logs a masked form of a sensitive value, keeping only the edges.
func Secret(key, value string) slog.Attr {
	masked := "***"
	if len(value) > 8 {
		masked = value[:3] + "..." + value[len(value)-3:]
	}
	return slog.Attr{
		Key:   key,
		Value: slog.StringValue(masked),
	}
}
