// Package logger implements a logging adapter using log/slog.
package logger

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"maps"
	"os"
	"slices"
	"strings"
	"sync"

	"go.trai.ch/impact/internal/core/ports"
)

// zerrError describes an error that can report its own message and metadata
// without the chain, as go.trai.ch/zerr errors do.
type zerrError interface {
	Message() string
	Metadata() map[string]any
}

// sink is the output state shared by a logger and every logger derived from it.
type sink struct {
	mu       sync.RWMutex
	logger   *slog.Logger
	level    slog.LevelVar
	jsonMode bool
	output   io.Writer
}

// Logger implements ports.Logger using log/slog.
type Logger struct {
	sink  *sink
	attrs []slog.Attr
}

// New creates a new Logger writing pretty output to stderr at info level.
func New() ports.Logger {
	s := &sink{output: os.Stderr}
	s.rebuild()
	return &Logger{sink: s}
}

// SetOutput updates the logger's output destination.
// It preserves the current JSON mode and level. If w is nil, os.Stderr is used.
func (l *Logger) SetOutput(w io.Writer) {
	l.sink.mu.Lock()
	defer l.sink.mu.Unlock()

	if w == nil {
		w = os.Stderr
	}
	l.sink.output = w
	l.sink.rebuild()
}

// SetJSON switches between JSON and pretty logging.
func (l *Logger) SetJSON(enable bool) {
	l.sink.mu.Lock()
	defer l.sink.mu.Unlock()

	l.sink.jsonMode = enable
	l.sink.rebuild()
}

// SetVerbose enables or disables debug records.
func (l *Logger) SetVerbose(enable bool) {
	if enable {
		l.sink.level.Set(slog.LevelDebug)
		return
	}
	l.sink.level.Set(slog.LevelInfo)
}

// rebuild replaces the slog logger. The caller holds the lock or owns s.
func (s *sink) rebuild() {
	opts := &slog.HandlerOptions{Level: &s.level}

	var handler slog.Handler
	if s.jsonMode {
		handler = slog.NewJSONHandler(s.output, opts)
	} else {
		handler = NewPrettyHandler(s.output, opts)
	}
	s.logger = slog.New(handler)
}

// With returns a logger that attaches key=value to every record.
func (l *Logger) With(key string, value any) ports.Logger {
	attrs := make([]slog.Attr, len(l.attrs), len(l.attrs)+1)
	copy(attrs, l.attrs)
	return &Logger{
		sink:  l.sink,
		attrs: append(attrs, slog.Any(key, value)),
	}
}

// Debug logs a message that is only shown in verbose mode.
func (l *Logger) Debug(msg string) {
	l.log(slog.LevelDebug, msg)
}

// Info logs an informational message.
func (l *Logger) Info(msg string) {
	l.log(slog.LevelInfo, msg)
}

// Warn logs a warning message.
func (l *Logger) Warn(msg string) {
	l.log(slog.LevelWarn, msg)
}

// Error logs an error. Pretty output renders the whole zerr chain, one cause
// per line; JSON output keeps the error as an attribute.
func (l *Logger) Error(err error) {
	if err == nil {
		return
	}

	l.sink.mu.RLock()
	jsonMode := l.sink.jsonMode
	l.sink.mu.RUnlock()

	if jsonMode {
		l.log(slog.LevelError, "operation failed", slog.String("error", err.Error()))
		return
	}
	l.log(slog.LevelError, formatErrorEntries(collectErrorEntries(err)))
}

func (l *Logger) log(level slog.Level, msg string, extra ...slog.Attr) {
	l.sink.mu.RLock()
	lg := l.sink.logger
	l.sink.mu.RUnlock()

	attrs := l.attrs
	if len(extra) > 0 {
		attrs = append(slices.Clip(attrs), extra...)
	}
	lg.LogAttrs(context.Background(), level, msg, attrs...)
}

// errorEntry is one level of an error chain.
type errorEntry struct {
	message  string
	metadata map[string]any
}

// collectErrorEntries walks the error chain. zerr errors contribute their own
// message and metadata; the first standard error contributes its full text and
// ends the walk. Anonymous zerr levels created by zerr.With on a standard error
// pass their metadata on to the next entry.
func collectErrorEntries(err error) []errorEntry {
	var entries []errorEntry
	var pending map[string]any

	for current := err; current != nil; {
		z, ok := current.(zerrError)
		if !ok {
			entries = append(entries, errorEntry{message: current.Error(), metadata: pending})
			break
		}

		meta := z.Metadata()
		if z.Message() == "" {
			if pending == nil {
				pending = make(map[string]any, len(meta))
			}
			maps.Copy(pending, meta)
			current = errors.Unwrap(current)
			continue
		}
		if pending != nil {
			maps.Copy(meta, pending)
			pending = nil
		}
		entries = append(entries, errorEntry{message: z.Message(), metadata: meta})
		current = errors.Unwrap(current)
	}

	return entries
}

// formatErrorEntries renders the entries as
//
//	Error: outer (key=value)
//
//	  Caused by:
//	    → inner
func formatErrorEntries(entries []errorEntry) string {
	var lines []string

	for i, entry := range entries {
		msgLines := strings.Split(entry.message, "\n")
		msgLines[len(msgLines)-1] += formatMetadata(entry.metadata)

		if i == 0 {
			lines = append(lines, "Error: "+msgLines[0])
			for _, line := range msgLines[1:] {
				lines = append(lines, "       "+line)
			}
			continue
		}
		if i == 1 {
			lines = append(lines, "", "  Caused by:")
		}
		lines = append(lines, "    → "+msgLines[0])
		for _, line := range msgLines[1:] {
			lines = append(lines, "      "+line)
		}
	}

	return strings.Join(lines, "\n")
}

func formatMetadata(meta map[string]any) string {
	if len(meta) == 0 {
		return ""
	}
	keys := slices.Sorted(maps.Keys(meta))
	pairs := make([]string, 0, len(keys))
	for _, k := range keys {
		pairs = append(pairs, fmt.Sprintf("%s=%v", k, meta[k]))
	}
	return " (" + strings.Join(pairs, ", ") + ")"
}
