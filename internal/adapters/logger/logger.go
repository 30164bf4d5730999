// Package logger implements a logging adapter using log/slog.
package logger

import (
	"errors"
	"io"
	"log/slog"
	"os"
	"sync"

	"go.trai.ch/strbuf/internal/core/ports"
	"go.trai.ch/zerr"
)

// Logger implements ports.Logger using log/slog.
type Logger struct {
	mu     sync.RWMutex
	logger *slog.Logger
}

// New creates a new Logger writing text output to stderr.
func New() *Logger {
	return &Logger{logger: newSlog(os.Stderr)}
}

func newSlog(w io.Writer) *slog.Logger {
	return slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{
		Level: slog.LevelInfo,
	}))
}

// SetOutput updates the logger's output destination.
func (l *Logger) SetOutput(w io.Writer) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.logger = newSlog(w)
}

// Info logs an informational message.
func (l *Logger) Info(msg string) {
	l.mu.RLock()
	defer l.mu.RUnlock()
	l.logger.Info(msg)
}

// Warn logs a warning message.
func (l *Logger) Warn(msg string) {
	l.mu.RLock()
	defer l.mu.RUnlock()
	l.logger.Warn(msg)
}

// Error logs an error. zerr metadata is attached as attributes so fatal
// reports carry the size or category that triggered them.
func (l *Logger) Error(err error) {
	l.mu.RLock()
	defer l.mu.RUnlock()

	var zErr *zerr.Error
	if errors.As(err, &zErr) {
		args := make([]any, 0, 2+2*len(zErr.Metadata()))
		args = append(args, "error", err)
		for k, v := range zErr.Metadata() {
			args = append(args, k, v)
		}
		l.logger.Error("operation failed", args...)
		return
	}
	l.logger.Error("operation failed", "error", err)
}

var _ ports.Logger = (*Logger)(nil)
