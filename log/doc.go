// Package log is the structured logger used throughout snow.
//
// A [Logger] wraps a [slog.Logger] whose handler is chosen at construction
// from functional options: [WithOutput], [WithLevel], [WithFormat],
// [WithTimeLayout], [WithCaller] and [WithPretty]. Loggers are values; every
// option or attribute produces a new Logger and never mutates an existing
// one, so they are safe to share between goroutines.
//
//	logger := log.Make(os.Stderr,
//		log.WithLevel(log.LevelDebug),
//		log.WithTimeLayout("kitchen"))
//	logger.Info("script finished", slog.String("file", name))
//
// Methods take [slog.Attr] rather than alternating keys and values. Each
// level has a variant that takes a context; the variant without one uses
// [DefaultContextProvider].
//
// # Levels
//
// In addition to the four [slog] levels there is [LevelTrace], below
// [LevelDebug], for per-statement detail from the interpreter.
//
// # Package-level logger
//
// The package-level functions ([Trace], [Debug], [Info], [Warn], [Error] and
// their Context variants) write through a process-wide logger, initially
// text on standard error at [DefaultLevel]. [Config] layers options onto it,
// so flags can adjust one setting at a time as they are parsed.
//
// # Pretty output
//
// With [WithPretty] enabled, records are styled with lipgloss: text records
// become a single colored line and JSON records are indented. Colors are
// only emitted when the output is a terminal.
package log
