// Package logging builds the process logger and adapts it to the engine's
// printf-style Logger interface.
package logging

import (
	"fmt"
	"io"
	"log/slog"
	"strings"

	"github.com/lmittmann/tint"
)

// Options selects the log level and output format
type Options struct {
	Level   string // debug, info, warn, error
	Format  string // text or json
	NoColor bool
}

// ParseLevel converts a level name to a slog.Level. Unknown names are an error.
func ParseLevel(name string) (slog.Level, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "debug":
		return slog.LevelDebug, nil
	case "", "info":
		return slog.LevelInfo, nil
	case "warn", "warning":
		return slog.LevelWarn, nil
	case "error":
		return slog.LevelError, nil
	default:
		return slog.LevelInfo, fmt.Errorf("unknown log level %q", name)
	}
}

// New returns a logger writing to w. Text output is colorized with tint.
func New(w io.Writer, opts Options) (*slog.Logger, error) {
	level, err := ParseLevel(opts.Level)
	if err != nil {
		return nil, err
	}

	var handler slog.Handler
	switch strings.ToLower(opts.Format) {
	case "", "text":
		handler = tint.NewHandler(w, &tint.Options{
			Level:      level,
			TimeFormat: "15:04:05",
			NoColor:    opts.NoColor,
		})
	case "json":
		handler = slog.NewJSONHandler(w, &slog.HandlerOptions{Level: level})
	default:
		return nil, fmt.Errorf("unknown log format %q (expected text or json)", opts.Format)
	}
	return slog.New(handler), nil
}

// EngineLogger adapts a *slog.Logger to calculation.Logger.
type EngineLogger struct {
	L *slog.Logger
}

// NewEngineLogger wraps l; a nil l uses slog.Default().
func NewEngineLogger(l *slog.Logger) *EngineLogger {
	if l == nil {
		l = slog.Default()
	}
	return &EngineLogger{L: l}
}

func (e *EngineLogger) Debugf(format string, args ...any) { e.L.Debug(fmt.Sprintf(format, args...)) }
func (e *EngineLogger) Infof(format string, args ...any)  { e.L.Info(fmt.Sprintf(format, args...)) }
func (e *EngineLogger) Warnf(format string, args ...any)  { e.L.Warn(fmt.Sprintf(format, args...)) }
func (e *EngineLogger) Errorf(format string, args ...any) { e.L.Error(fmt.Sprintf(format, args...)) }
