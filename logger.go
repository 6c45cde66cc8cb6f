package quadgo

import (
	"context"
	"log/slog"
	"os"
)

// Logger wraps slog.Logger with quadgo-specific helpers.
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
func NewJSONLogger(level slog.Level) *Logger {
	handler := slog.NewJSONHandler(os.Stderr, &slog.HandlerOptions{
		Level: level,
	})
	return &Logger{
		Logger: slog.New(handler),
	}
}

// NewTextLogger creates a Logger that outputs human-readable text logs.
func NewTextLogger(level slog.Level) *Logger {
	handler := slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: level,
	})
	return &Logger{
		Logger: slog.New(handler),
	}
}

// NoopLogger creates a Logger that discards all log output.
func NoopLogger() *Logger {
	handler := slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: slog.Level(1000), // Unreachable level
	})
	return &Logger{
		Logger: slog.New(handler),
	}
}

// LogOpen logs tree initialization.
func (l *Logger) LogOpen(ctx context.Context, rootID string, created bool) {
	if created {
		l.InfoContext(ctx, "tree initialized",
			"root_id", rootID,
		)
	} else {
		l.DebugContext(ctx, "tree reopened",
			"root_id", rootID,
		)
	}
}

// LogInsert logs an insert operation.
func (l *Logger) LogInsert(ctx context.Context, x, y float64, err error) {
	if err != nil {
		l.ErrorContext(ctx, "insert failed",
			"x", x,
			"y", y,
			"error", err,
		)
	} else {
		l.DebugContext(ctx, "insert completed",
			"x", x,
			"y", y,
		)
	}
}

// LogRange logs a range query.
func (l *Logger) LogRange(ctx context.Context, results int, err error) {
	if err != nil {
		l.ErrorContext(ctx, "range query failed",
			"error", err,
		)
	} else {
		l.DebugContext(ctx, "range query completed",
			"results", results,
		)
	}
}

// LogNearest logs a nearest lookup.
func (l *Logger) LogNearest(ctx context.Context, x, y float64, found bool, err error) {
	if err != nil {
		l.ErrorContext(ctx, "nearest lookup failed",
			"x", x,
			"y", y,
			"error", err,
		)
	} else {
		l.DebugContext(ctx, "nearest lookup completed",
			"x", x,
			"y", y,
			"found", found,
		)
	}
}

// LogUpdate logs an update operation.
func (l *Logger) LogUpdate(ctx context.Context, x, y float64, err error) {
	if err != nil {
		l.ErrorContext(ctx, "update failed",
			"x", x,
			"y", y,
			"error", err,
		)
	} else {
		l.DebugContext(ctx, "update completed",
			"x", x,
			"y", y,
		)
	}
}
