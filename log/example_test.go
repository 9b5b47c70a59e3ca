package log_test

import (
	"log/slog"
	"os"

	"github.com/ardnew/snow/log"
)

func Example() {
	logger := log.Make(os.Stdout,
		log.WithPretty(false),
		log.WithTimeLayout("none"))

	logger.Info("script finished", slog.String("file", "hello.snow"))
	logger.Debug("not shown")

	// Output:
	// level=INFO msg="script finished" file=hello.snow
}

func Example_levels() {
	logger := log.Make(os.Stdout,
		log.WithPretty(false),
		log.WithTimeLayout("none"),
		log.WithLevel(log.LevelTrace))

	logger.Trace("statement", slog.Int("offset", 12))
	logger.Warn("slow run", slog.Int("passes", 100000))

	// Output:
	// level=TRACE msg=statement offset=12
	// level=WARN msg="slow run" passes=100000
}

func Example_json() {
	logger := log.Make(os.Stdout,
		log.WithPretty(false),
		log.WithTimeLayout("none"),
		log.WithFormat(log.FormatJSON))

	logger.With(slog.String("phase", "parse")).Error("unexpected token")

	// Output:
	// {"level":"ERROR","msg":"unexpected token","phase":"parse"}
}
