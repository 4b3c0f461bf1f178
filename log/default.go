package log

import (
	"context"
	"log/slog"
	"os"
	"sync"
)

// DefaultContextProvider returns the context used by the package-level
// logging functions that do not accept one.
//
//nolint:gochecknoglobals
var DefaultContextProvider = context.Background

//nolint:gochecknoglobals
var (
	defaultMu  sync.RWMutex
	defaultLog = Make(os.Stderr)
)

// Config replaces the package-level logger with one built from opts and
// returns it. Output goes to [os.Stderr] unless [WithOutput] is given.
func Config(opts ...Option) Logger {
	l := Make(os.Stderr, opts...)

	defaultMu.Lock()
	defaultLog = l
	defaultMu.Unlock()

	return l
}

// Default returns the package-level logger.
func Default() Logger {
	defaultMu.RLock()
	defer defaultMu.RUnlock()

	return defaultLog
}

// pkgSkip skips runtime.Callers, logDepth, and the package-level function.
const pkgSkip = 3

func logDefault(ctx context.Context, level Level, msg string, attrs ...slog.Attr) {
	if ctx == nil {
		ctx = DefaultContextProvider()
	}

	Default().logDepth(ctx, pkgSkip+1, level, msg, attrs...)
}

// Trace logs a message at trace level using the package-level logger.
func Trace(msg string, attrs ...slog.Attr) {
	logDefault(DefaultContextProvider(), LevelTrace, msg, attrs...)
}

// Debug logs a message at debug level using the package-level logger.
func Debug(msg string, attrs ...slog.Attr) {
	logDefault(DefaultContextProvider(), LevelDebug, msg, attrs...)
}

// Info logs a message at info level using the package-level logger.
func Info(msg string, attrs ...slog.Attr) {
	logDefault(DefaultContextProvider(), LevelInfo, msg, attrs...)
}

// Warn logs a message at warn level using the package-level logger.
func Warn(msg string, attrs ...slog.Attr) {
	logDefault(DefaultContextProvider(), LevelWarn, msg, attrs...)
}

// Error logs a message at error level using the package-level logger.
func Error(msg string, attrs ...slog.Attr) {
	logDefault(DefaultContextProvider(), LevelError, msg, attrs...)
}

// TraceContext logs a message at trace level using the package-level logger.
func TraceContext(ctx context.Context, msg string, attrs ...slog.Attr) {
	logDefault(ctx, LevelTrace, msg, attrs...)
}

// DebugContext logs a message at debug level using the package-level logger.
func DebugContext(ctx context.Context, msg string, attrs ...slog.Attr) {
	logDefault(ctx, LevelDebug, msg, attrs...)
}

// InfoContext logs a message at info level using the package-level logger.
func InfoContext(ctx context.Context, msg string, attrs ...slog.Attr) {
	logDefault(ctx, LevelInfo, msg, attrs...)
}

// WarnContext logs a message at warn level using the package-level logger.
func WarnContext(ctx context.Context, msg string, attrs ...slog.Attr) {
	logDefault(ctx, LevelWarn, msg, attrs...)
}

// ErrorContext logs a message at error level using the package-level logger.
func ErrorContext(ctx context.Context, msg string, attrs ...slog.Attr) {
	logDefault(ctx, LevelError, msg, attrs...)
}
