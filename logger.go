package colidx

import (
	"context"
	"log/slog"
	"os"
)

// Logger wraps slog.Logger with colidx-specific context.
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
// Use this to disable logging entirely.
func NoopLogger() *Logger {
	handler := slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: slog.Level(1000), // Unreachable level
	})
	return &Logger{
		Logger: slog.New(handler),
	}
}

// WithLevels adds a level-count field to the logger.
func (l *Logger) WithLevels(nlevels int) *Logger {
	return &Logger{
		Logger: l.Logger.With("nlevels", nlevels),
	}
}

// WithRows adds a row-count field to the logger.
func (l *Logger) WithRows(rows int) *Logger {
	return &Logger{
		Logger: l.Logger.With("rows", rows),
	}
}

// LogFactorize logs a level factorization.
func (l *Logger) LogFactorize(ctx context.Context, nlevels, rows int, err error) {
	if err != nil {
		l.ErrorContext(ctx, "factorize failed",
			"nlevels", nlevels,
			"rows", rows,
			"error", err,
		)
	} else {
		l.DebugContext(ctx, "factorize completed",
			"nlevels", nlevels,
			"rows", rows,
		)
	}
}

// LogLocate logs a key lookup.
func (l *Logger) LogLocate(ctx context.Context, keyLen int, kind LocKind, err error) {
	if err != nil {
		l.DebugContext(ctx, "locate missed",
			"key_len", keyLen,
			"error", err,
		)
	} else {
		l.DebugContext(ctx, "locate completed",
			"key_len", keyLen,
			"result_kind", uint8(kind),
		)
	}
}

// LogTake logs a positional take.
func (l *Logger) LogTake(ctx context.Context, count int, err error) {
	if err != nil {
		l.ErrorContext(ctx, "take failed",
			"count", count,
			"error", err,
		)
	} else {
		l.DebugContext(ctx, "take completed",
			"count", count,
		)
	}
}

// LogAppend logs an index concatenation.
func (l *Logger) LogAppend(ctx context.Context, operands, rows int, err error) {
	if err != nil {
		l.ErrorContext(ctx, "append failed",
			"operands", operands,
			"error", err,
		)
	} else {
		l.DebugContext(ctx, "append completed",
			"operands", operands,
			"rows", rows,
		)
	}
}
