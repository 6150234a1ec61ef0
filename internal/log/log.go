// Package log provides centralized, category-tagged logging for the compiler
// and the CLI. Output is discarded until SetOutput is called.
package log

import (
	"io"
	"log/slog"
	"sync"
)

var (
	logger = slog.New(slog.DiscardHandler)
	on     bool
	mu     sync.Mutex
)

// SetOutput sends log records at or above level to w as text.
// Pass nil to disable logging.
func SetOutput(w io.Writer, level slog.Level) {
	mu.Lock()
	defer mu.Unlock()
	if w == nil {
		logger = slog.New(slog.DiscardHandler)
		on = false
		return
	}
	logger = slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: level}))
	on = true
}

// Logger returns the current logger.
func Logger() *slog.Logger {
	mu.Lock()
	defer mu.Unlock()
	return logger
}

// Enabled returns true if logging is enabled.
func Enabled() bool {
	mu.Lock()
	defer mu.Unlock()
	return on
}

func category(name, msg string, args []any) {
	l := Logger()
	l.Debug(msg, append([]any{slog.String("category", name)}, args...)...)
}

// Debug writes an uncategorized debug record.
func Debug(msg string, args ...any) {
	Logger().Debug(msg, args...)
}

// Scan writes a scan-tagged debug record.
func Scan(msg string, args ...any) {
	category("scan", msg, args)
}

// Compile writes a compile-tagged debug record.
func Compile(msg string, args ...any) {
	category("compile", msg, args)
}

// Emit writes an emit-tagged debug record.
func Emit(msg string, args ...any) {
	category("emit", msg, args)
}

// Generate writes a generate-tagged record for CLI file processing.
func Generate(msg string, args ...any) {
	category("generate", msg, args)
}

// Warn writes a warning record.
func Warn(msg string, args ...any) {
	Logger().Warn(msg, args...)
}
