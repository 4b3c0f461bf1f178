// Package log provides a concurrency-safe simplified logging interface
// based on [log/slog].
//
// # Basic Usage
//
//	logger := log.Make(os.Stderr)
//	logger.Info("level loaded", slog.String("id", "1-1"))
//
// # Configuration
//
// Configuration is applied at logger creation time using functional options:
//
//	logger := log.Make(os.Stderr,
//		log.WithLevel(log.LevelTrace),
//		log.WithFormat(log.FormatText),
//		log.WithTimeLayout("kitchen"),
//		log.WithCaller(true))
//
// A derived logger with different settings is created with [Logger.Wrap],
// and one with persistent attributes with [Logger.With].
//
// # Zero Value
//
// The zero value of [Logger] discards everything. Packages that accept a
// logger through an option may call its methods unconditionally.
//
// # Levels
//
// Five levels are supported: [LevelTrace], [LevelDebug], [LevelInfo],
// [LevelWarn], and [LevelError]. Trace sits below slog's debug level and is
// used for interpreter and game internals.
//
// # Output Formats
//
// [FormatJSON] (default) emits one JSON object per record. [FormatText]
// emits key=value pairs; with pretty printing enabled (the default) keys and
// values are colorized using github.com/fatih/color.
package log
