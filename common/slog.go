package common

import (
	"fmt"
	"io"
	"log/slog"
	"strings"
)

// SlogResetLevel sets the default logger's level and returns a function
// restoring the previous level; pairs well with defer.
// Use like:
// func Test123(t *testing.T) {
//     defer common.SlogResetLevel(slog.LevelWarn)()
func SlogResetLevel(level slog.Level) (reset func()) {
	oldLevel := slog.SetLogLoggerLevel(level)
	return func() {
		slog.SetLogLoggerLevel(oldLevel)
	}
}

// ParseSlogLevel accepts debug, info, warn or error (any case), or a numeric level.
func ParseSlogLevel(s string) (slog.Level, error) {
	var level slog.Level
	if err := level.UnmarshalText([]byte(strings.TrimSpace(s))); err != nil {
		return slog.LevelInfo, fmt.Errorf("invalid log level %q: %w", s, err)
	}
	return level, nil
}

// NewSlogHandler returns a text or json handler writing to w.
func NewSlogHandler(w io.Writer, format string, level slog.Level) (slog.Handler, error) {
	opts := &slog.HandlerOptions{Level: level}
	switch strings.ToLower(format) {
	case "", "text":
		return slog.NewTextHandler(w, opts), nil
	case "json":
		return slog.NewJSONHandler(w, opts), nil
	}
	return nil, fmt.Errorf("invalid log format %q (want text or json)", format)
}
