package logging

import (
	"log/slog"
	"os"
)

var stdout = slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelInfo}))

// Setup initializes the global slog logger with JSON output to stdout.
func Setup() {
	slog.SetDefault(stdout)
}

// WithDatabase makes the default logger also persist ERROR+ records through pg.
func WithDatabase(pg *PGHandler) {
	slog.SetDefault(slog.New(NewMultiHandler(stdout.Handler(), pg)))
}
