package cli

import (
	"fmt"
	"io"
	"log/slog"
)

type logFlags struct {
	level  *enumValue
	format *enumValue
}

func newLogFlags() *logFlags {
	return &logFlags{
		level:  newEnum("warn", "debug", "info", "warn", "error"),
		format: newEnum("text", "text", "json"),
	}
}

func (f *logFlags) logger(w io.Writer) (*slog.Logger, error) {
	var level slog.Level
	switch f.level.String() {
	case "debug":
		level = slog.LevelDebug
	case "info":
		level = slog.LevelInfo
	case "warn":
		level = slog.LevelWarn
	case "error":
		level = slog.LevelError
	default:
		return nil, fmt.Errorf("invalid log level: %s", f.level)
	}

	opts := &slog.HandlerOptions{Level: level}
	switch f.format.String() {
	case "json":
		return slog.New(slog.NewJSONHandler(w, opts)), nil
	case "text":
		return slog.New(slog.NewTextHandler(w, opts)), nil
	default:
		return nil, fmt.Errorf("invalid log format: %s", f.format)
	}
}
