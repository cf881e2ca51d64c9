package observability

import (
	"log/slog"
	"os"
)

// NewLogger builds the process logger. Output is single-line JSON so log
// collectors can ingest it; dev additionally gets debug level and source
// locations.
func NewLogger(env string) *slog.Logger {
	opts := &slog.HandlerOptions{
		Level:     levelFor(env),
		AddSource: env == "dev",
	}

	return slog.New(slog.NewJSONHandler(os.Stdout, opts))
}

func levelFor(env string) slog.Level {
	switch env {
	case "dev":
		return slog.LevelDebug
	case "test":
		return slog.LevelWarn
	default:
		return slog.LevelInfo
	}
}
