package logging

import (
	"log/slog"
	"os"
)

// Setup installs the bootstrap slog logger (JSON to stdout). Once the
// database is up, main swaps in a MultiHandler that also writes to Postgres.
func Setup() {
	handler := slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level: slog.LevelInfo,
	})
	slog.SetDefault(slog.New(handler))
}
