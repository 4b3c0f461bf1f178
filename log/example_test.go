package log_test

import (
	"log/slog"
	"os"

	"github.com/ardnew/dragon/log"
)

func ExampleMake() {
	logger := log.Make(os.Stdout,
		log.WithFormat(log.FormatText),
		log.WithPretty(false),
		log.WithTimeLayout("none"))

	logger.Info("level loaded", slog.String("id", "1-1"))
	// Output:
	// level=INFO msg="level loaded" id=1-1
}

func ExampleLogger_With() {
	logger := log.Make(os.Stdout, log.WithTimeLayout("none")).
		With(slog.String("component", "server"))

	logger.Warn("slow request", slog.Int("ms", 120))
	// Output:
	// {"level":"WARN","msg":"slow request","component":"server","ms":120}
}
