// Package log provides structured logging for versort.
//
// The Logger interface is backed by Go's stdlib slog. Library packages log
// through Default(), which discards everything until the CLI installs a
// real logger with SetDefault.
//
// Output semantics:
//   - User output (stdout): sorted refs, stable version, config values
//   - Diagnostic logging (stderr): Debug, Info, Warn, Error messages
//
// Verbosity levels:
//   - ERROR (--quiet): Errors only
//   - WARN (default): Malformed patterns, unknown strategies
//   - INFO (--verbose): Which strategy and inputs were used
//   - DEBUG (--debug): Every demoted or dropped version
package log

import (
	"io"
	"log/slog"
	"sync"
)

// Logger is the interface for structured logging.
// Methods match slog's signature for easy integration.
type Logger interface {
	// Debug logs at DEBUG level: per-version parse decisions.
	Debug(msg string, args ...any)

	// Info logs at INFO level: strategy selection, input sizes.
	Info(msg string, args ...any)

	// Warn logs at WARN level: configuration that degrades the ordering.
	Warn(msg string, args ...any)

	// Error logs at ERROR level: failures that stop a command.
	Error(msg string, args ...any)

	// With returns a Logger that adds the given key-value pairs to
	// every entry.
	With(args ...any) Logger
}

// slogLogger is what the CLI installs: a text handler on stderr whose level
// follows --quiet, --verbose and --debug.
type slogLogger struct {
	l *slog.Logger
}

// New creates a Logger backed by slog with the given handler.
func New(h slog.Handler) Logger {
	return &slogLogger{l: slog.New(h)}
}

// NewText creates a Logger writing slog text records at or above level to w.
func NewText(w io.Writer, level slog.Leveler) Logger {
	return New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: level}))
}

func (s *slogLogger) Debug(msg string, args ...any) {
	s.l.Debug(msg, args...)
}

func (s *slogLogger) Info(msg string, args ...any) {
	s.l.Info(msg, args...)
}

func (s *slogLogger) Warn(msg string, args ...any) {
	s.l.Warn(msg, args...)
}

func (s *slogLogger) Error(msg string, args ...any) {
	s.l.Error(msg, args...)
}

func (s *slogLogger) With(args ...any) Logger {
	return &slogLogger{l: s.l.With(args...)}
}

// noopLogger is the default until main runs, so the version package stays
// silent when used as a library or under go test.
type noopLogger struct{}

// NewNoop returns a logger that discards all output.
func NewNoop() Logger {
	return noopLogger{}
}

func (noopLogger) Debug(string, ...any) {}
func (noopLogger) Info(string, ...any)  {}
func (noopLogger) Warn(string, ...any)  {}
func (noopLogger) Error(string, ...any) {}
func (noopLogger) With(...any) Logger   { return noopLogger{} }

var (
	defaultLogger Logger = noopLogger{}
	defaultMu     sync.RWMutex
)

// Default returns the process-wide logger, a noop until SetDefault is called.
func Default() Logger {
	defaultMu.RLock()
	defer defaultMu.RUnlock()
	return defaultLogger
}

// SetDefault replaces the process-wide logger. main calls it once after
// parsing verbosity flags.
func SetDefault(l Logger) {
	defaultMu.Lock()
	defer defaultMu.Unlock()
	defaultLogger = l
}
