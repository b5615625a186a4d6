package logger

import (
	"log/slog"
	"os"

	"go.uber.org/zap"
)

// New builds the process logger. The default verbosity is "error" so that a
// normal run stays silent apart from the final success line on stdout;
// diagnostics for failed stages still reach stderr instead of being swallowed.
func New(verbosity string) (*zap.Logger, error) {
	config := zap.NewProductionConfig()
	level, err := zap.ParseAtomicLevel(verbosity)
	if err != nil {
		return nil, err
	}
	config.Level = level
	config.DisableStacktrace = true
	return config.Build()
}

// Device builds the slog logger the gpu package expects, mapping the same
// verbosity strings New accepts onto slog levels. Anything unrecognized
// falls back to error so device chatter stays out of a normal run.
func Device(verbosity string) *slog.Logger {
	level := slog.LevelError
	switch verbosity {
	case "debug":
		level = slog.LevelDebug
	case "info":
		level = slog.LevelInfo
	case "warn":
		level = slog.LevelWarn
	}
	return slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))
}
