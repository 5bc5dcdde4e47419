// Package logging wires the process-wide slog logger: a text handler on the
// console fanned out with a JSON handler appending to the log file. File sink
// failures are swallowed and counted, never propagated into the pipeline.
package logging

import (
	"io"
	"log/slog"
	"os"
	"strings"
	"sync/atomic"

	slogmulti "github.com/samber/slog-multi"
)

// CountingWriter swallows write errors on the underlying sink and counts them
type CountingWriter struct {
	w        io.Writer
	failures atomic.Int64
}

// NewCountingWriter wraps w
func NewCountingWriter(w io.Writer) *CountingWriter {
	return &CountingWriter{w: w}
}

func (cw *CountingWriter) Write(p []byte) (int, error) {
	n, err := cw.w.Write(p)
	if err != nil {
		cw.failures.Add(1)
		return len(p), nil
	}
	return n, nil
}

// Failures returns how many writes were dropped
func (cw *CountingWriter) Failures() int64 {
	return cw.failures.Load()
}

// ParseLevel converts a CLI level string into a slog level, defaulting to info
func ParseLevel(s string) slog.Level {
	switch strings.ToLower(s) {
	case "debug":
		return slog.LevelDebug
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

// Setup builds the logger. console receives human-readable lines at the given
// level; logPath (when non-empty) receives every record as JSON. The returned
// counter tracks dropped file writes and is nil when no file sink is used.
func Setup(console io.Writer, logPath string, level slog.Level) (*slog.Logger, *CountingWriter, error) {
	opts := &slog.HandlerOptions{Level: level}
	consoleHandler := slog.NewTextHandler(console, opts)

	if logPath == "" {
		return slog.New(consoleHandler), nil, nil
	}

	f, err := os.OpenFile(logPath, os.O_APPEND|os.O_WRONLY|os.O_CREATE, 0600)
	if err != nil {
		return nil, nil, err
	}

	counter := NewCountingWriter(f)
	fileHandler := slog.NewJSONHandler(counter, &slog.HandlerOptions{Level: slog.LevelDebug})

	return slog.New(slogmulti.Fanout(consoleHandler, fileHandler)), counter, nil
}
