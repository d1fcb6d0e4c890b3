package utils

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"time"

	"github.com/lmittmann/tint"
)

// Logger provides leveled logging throughout the application.
// Messages are printf-formatted and emitted through a tint slog handler.
type Logger struct {
	slog *slog.Logger
}

// NewLogger creates a Logger writing Info and above to stderr.
func NewLogger() *Logger {
	return NewLoggerTo(os.Stderr, false)
}

// NewLoggerTo creates a Logger writing to w. Debug output is enabled when verbose is set.
func NewLoggerTo(w io.Writer, verbose bool) *Logger {
	level := slog.LevelInfo
	if verbose {
		level = slog.LevelDebug
	}
	return &Logger{
		slog: slog.New(tint.NewHandler(w, &tint.Options{
			Level:      level,
			TimeFormat: time.DateTime,
			NoColor:    w != os.Stderr && w != os.Stdout,
		})),
	}
}

func (l *Logger) Info(format string, args ...any) {
	l.slog.Info(fmt.Sprintf(format, args...))
}

func (l *Logger) Warn(format string, args ...any) {
	l.slog.Warn(fmt.Sprintf(format, args...))
}

func (l *Logger) Error(format string, args ...any) {
	l.slog.Error(fmt.Sprintf(format, args...))
}

func (l *Logger) Debug(format string, args ...any) {
	l.slog.Debug(fmt.Sprintf(format, args...))
}
