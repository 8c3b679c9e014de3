// Package log builds the slog.Logger shared by every scriptmeta command.
//
// Without a log file, records below error go to stdout and errors go to
// stderr. With a log file, the console gets everything on stderr and the
// file gets a copy.
package log

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"
)

// LevelTrace sits below Debug and is used for per-file scanner chatter.
const LevelTrace slog.Level = -8

// ParseLevel maps a level name to a slog.Level. Unknown names yield Info.
func ParseLevel(s string) slog.Level {
	switch strings.ToLower(s) {
	case "trace":
		return LevelTrace
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

// MultiHandler fans out records to multiple handlers.
type MultiHandler struct{ hs []slog.Handler }

// NewMultiHandler returns a handler writing every record to all of hs.
func NewMultiHandler(hs ...slog.Handler) MultiHandler {
	return MultiHandler{hs: hs}
}

func (m MultiHandler) Enabled(ctx context.Context, level slog.Level) bool {
	for _, h := range m.hs {
		if h.Enabled(ctx, level) {
			return true
		}
	}
	return false
}

func (m MultiHandler) Handle(ctx context.Context, r slog.Record) error {
	for _, h := range m.hs {
		if !h.Enabled(ctx, r.Level) {
			continue
		}
		_ = h.Handle(ctx, r.Clone())
	}
	return nil
}

func (m MultiHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	out := make([]slog.Handler, len(m.hs))
	for i, h := range m.hs {
		out[i] = h.WithAttrs(attrs)
	}
	return MultiHandler{hs: out}
}

func (m MultiHandler) WithGroup(name string) slog.Handler {
	out := make([]slog.Handler, len(m.hs))
	for i, h := range m.hs {
		out[i] = h.WithGroup(name)
	}
	return MultiHandler{hs: out}
}

// LevelFilter passes records to h only when pass accepts their level.
type LevelFilter struct {
	pass func(slog.Level) bool
	h    slog.Handler
}

// NewLevelFilter wraps h with the given level predicate.
func NewLevelFilter(pass func(slog.Level) bool, h slog.Handler) LevelFilter {
	return LevelFilter{pass: pass, h: h}
}

func (f LevelFilter) Enabled(ctx context.Context, level slog.Level) bool {
	return f.pass(level) && f.h.Enabled(ctx, level)
}

func (f LevelFilter) Handle(ctx context.Context, r slog.Record) error {
	if !f.pass(r.Level) {
		return nil
	}
	return f.h.Handle(ctx, r)
}

func (f LevelFilter) WithAttrs(attrs []slog.Attr) slog.Handler {
	return LevelFilter{pass: f.pass, h: f.h.WithAttrs(attrs)}
}

func (f LevelFilter) WithGroup(name string) slog.Handler {
	return LevelFilter{pass: f.pass, h: f.h.WithGroup(name)}
}

// NewHandler returns a text or json handler writing to w.
func NewHandler(w io.Writer, format string, level slog.Leveler) (slog.Handler, error) {
	opts := &slog.HandlerOptions{Level: level, ReplaceAttr: replaceLevel}
	switch strings.ToLower(format) {
	case "", "text":
		return slog.NewTextHandler(w, opts), nil
	case "json":
		return slog.NewJSONHandler(w, opts), nil
	default:
		return nil, fmt.Errorf("unknown log format %q", format)
	}
}

// replaceLevel prints LevelTrace as TRACE instead of DEBUG-4.
func replaceLevel(_ []string, a slog.Attr) slog.Attr {
	if a.Key != slog.LevelKey {
		return a
	}
	if lvl, ok := a.Value.Any().(slog.Level); ok && lvl <= LevelTrace {
		a.Value = slog.StringValue("TRACE")
	}
	return a
}

// SetupLogger builds a slog.Logger with console and optional file handlers.
func SetupLogger(logLevel, logFormat, logFile string) (*slog.Logger, []io.Closer, error) {
	return setupLogger(os.Stdout, os.Stderr, logLevel, logFormat, logFile)
}

func setupLogger(stdout, stderr io.Writer, logLevel, logFormat, logFile string) (*slog.Logger, []io.Closer, error) {
	level := ParseLevel(logLevel)
	var handlers []slog.Handler

	if logFile == "" {
		out, err := NewHandler(stdout, logFormat, level)
		if err != nil {
			return nil, nil, err
		}
		errOut, err := NewHandler(stderr, logFormat, slog.LevelError)
		if err != nil {
			return nil, nil, err
		}
		handlers = append(handlers,
			NewLevelFilter(func(l slog.Level) bool { return l < slog.LevelError }, out),
			NewLevelFilter(func(l slog.Level) bool { return l >= slog.LevelError }, errOut),
		)
		return slog.New(NewMultiHandler(handlers...)), nil, nil
	}

	console, err := NewHandler(stderr, logFormat, level)
	if err != nil {
		return nil, nil, err
	}
	f, err := os.OpenFile(logFile, os.O_CREATE|os.O_TRUNC|os.O_WRONLY, 0o644)
	if err != nil {
		return nil, nil, fmt.Errorf("open log file: %w", err)
	}
	file, err := NewHandler(f, logFormat, level)
	if err != nil {
		_ = f.Close()
		return nil, nil, err
	}
	handlers = append(handlers, console, file)
	return slog.New(NewMultiHandler(handlers...)), []io.Closer{f}, nil
}

// Discard returns a logger that drops everything. Handy in tests.
func Discard() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, &slog.HandlerOptions{Level: slog.LevelError + 1}))
}
