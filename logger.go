package tweetclust

import (
	"context"
	"log/slog"
	"os"
	"time"

	"github.com/google/uuid"
)

// Logger wraps slog.Logger with tweetclust-specific context.
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

// WithK adds a k (cluster count) field to the logger.
func (l *Logger) WithK(k int) *Logger {
	return &Logger{
		Logger: l.Logger.With("k", k),
	}
}

// WithCount adds a count field to the logger.
func (l *Logger) WithCount(count int) *Logger {
	return &Logger{
		Logger: l.Logger.With("count", count),
	}
}

// WithRunID tags every record with the id of one fit.
func (l *Logger) WithRunID(id uuid.UUID) *Logger {
	return &Logger{
		Logger: l.Logger.With("run_id", id.String()),
	}
}

// LogIteration logs one completed fit iteration.
func (l *Logger) LogIteration(ctx context.Context, iteration, centroids int, elapsed time.Duration) {
	l.DebugContext(ctx, "iteration completed",
		"iteration", iteration,
		"centroids", centroids,
		"elapsed", elapsed,
	)
}

// LogFit logs the outcome of a fit.
func (l *Logger) LogFit(ctx context.Context, status Status, iterations int, sse float64, err error) {
	switch {
	case err != nil:
		l.ErrorContext(ctx, "fit failed",
			"iterations", iterations,
			"error", err,
		)
	case status == StatusConverged:
		l.InfoContext(ctx, "fit converged",
			"iterations", iterations,
			"sse", sse,
		)
	default:
		l.InfoContext(ctx, "fit reached iteration cap",
			"iterations", iterations,
			"sse", sse,
		)
	}
}

// LogSweep logs a completed experiment sweep.
func (l *Logger) LogSweep(ctx context.Context, experiments int, elapsed time.Duration, err error) {
	if err != nil {
		l.ErrorContext(ctx, "sweep failed",
			"experiments", experiments,
			"error", err,
		)
	} else {
		l.InfoContext(ctx, "sweep completed",
			"experiments", experiments,
			"elapsed", elapsed,
		)
	}
}
