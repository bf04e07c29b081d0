package entitycache

import (
	"context"
	"io"
	"log/slog"
	"os"
	"time"

	"github.com/hupe1980/entitycache/idset"
)

// Logger wraps slog.Logger with entitycache-specific context.
// This provides structured logging with consistent field names.
type Logger struct {
	*slog.Logger
}

// NewLogger creates a new Logger with the given handler.
// If handler is nil, uses default text handler to stderr.
func NewLogger(handler slog.Handler) *Logger {
	if handler == nil {
		handler = slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
			Level: slog.LevelInfo,
		})
	}
	return &Logger{
		Logger: slog.New(handler),
	}
}

// NewJSONLogger creates a Logger that outputs JSON-formatted logs.
// level sets the minimum log level (e.g., slog.LevelDebug, slog.LevelInfo).
func NewJSONLogger(level slog.Level) *Logger {
	return NewLogger(slog.NewJSONHandler(os.Stderr, &slog.HandlerOptions{
		Level: level,
	}))
}

// NewTextLogger creates a Logger that outputs human-readable text logs.
func NewTextLogger(level slog.Level) *Logger {
	return NewLogger(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: level,
	}))
}

// NoopLogger creates a Logger that discards all log output.
func NoopLogger() *Logger {
	return NewLogger(slog.NewTextHandler(io.Discard, &slog.HandlerOptions{
		Level: slog.Level(1000), // Unreachable level
	}))
}

// LogCollect logs a Factory.Collect call.
func (l *Logger) LogCollect(ctx context.Context, typeID int32, count int, sorted bool, err error) {
	if err != nil {
		l.ErrorContext(ctx, "collect failed",
			"type_id", typeID,
			"count", count,
			"error", err,
		)
	} else {
		l.DebugContext(ctx, "collect completed",
			"type_id", typeID,
			"count", count,
			"presorted", sorted,
		)
	}
}

// LogSelection logs one set selection. It satisfies idset.SelectionLogger.
func (l *Logger) LogSelection(ctx context.Context, typeID int32, count int, kind idset.Kind, d time.Duration, err error) {
	if err != nil {
		l.ErrorContext(ctx, "id set selection failed",
			"type_id", typeID,
			"count", count,
			"error", err,
		)
	} else {
		l.DebugContext(ctx, "id set selected",
			"type_id", typeID,
			"count", count,
			"kind", kind.String(),
			"duration", d,
		)
	}
}

// LogConfig logs the effective selection settings.
func (l *Logger) LogConfig(ctx context.Context, loadFactor float64, useBitSets bool) {
	l.InfoContext(ctx, "entity cache configured",
		"load_factor", loadFactor,
		"use_bit_sets", useBitSets,
	)
}

var _ idset.SelectionLogger = (*Logger)(nil)
