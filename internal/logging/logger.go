package logging

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/rs/zerolog"
)

// LogDir is where file loggers write, relative to the application root.
const LogDir = ".cssplugins/logs"

// Logger is the sink for non-fatal resolution warnings. A nil *Logger
// discards everything.
type Logger struct {
	zlog zerolog.Logger
	file *os.File
}

// New writes structured lines to w at the given level (debug, info, warn,
// error). An empty level means info.
func New(w io.Writer, level string) (*Logger, error) {
	lvl, err := parseLevel(level)
	if err != nil {
		return nil, err
	}
	zlog := zerolog.New(w).With().Timestamp().Logger().Level(lvl)
	return &Logger{zlog: zlog}, nil
}

// NewConsole writes human-readable lines to w, for CLI use.
func NewConsole(w io.Writer, level string) (*Logger, error) {
	return New(zerolog.ConsoleWriter{Out: w, TimeFormat: time.Kitchen}, level)
}

// Open creates (or reuses) the log file under appDir so failures can be
// inspected after the build finishes.
func Open(appDir, level string) (*Logger, error) {
	logDir := filepath.Join(appDir, filepath.FromSlash(LogDir))
	if err := os.MkdirAll(logDir, 0o755); err != nil {
		return nil, fmt.Errorf("logging: ensure log dir: %w", err)
	}
	path := filepath.Join(logDir, "cssplugins.log")
	f, err := os.OpenFile(path, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o644)
	if err != nil {
		return nil, fmt.Errorf("logging: open log file: %w", err)
	}
	l, err := New(f, level)
	if err != nil {
		f.Close()
		return nil, err
	}
	l.file = f
	return l, nil
}

// Nop returns a logger that drops every line.
func Nop() *Logger {
	return &Logger{zlog: zerolog.Nop()}
}

// Close releases the file handle, if any.
func (l *Logger) Close() error {
	if l == nil || l.file == nil {
		return nil
	}
	return l.file.Close()
}

// With returns a child logger tagging every line with component.
func (l *Logger) With(component string) *Logger {
	if l == nil {
		return nil
	}
	return &Logger{zlog: l.zlog.With().Str("component", component).Logger(), file: l.file}
}

// Printf writes an info line.
func (l *Logger) Printf(format string, args ...any) {
	if l == nil {
		return
	}
	l.zlog.Info().Msg(line(format, args...))
}

// Debugf writes a debug line.
func (l *Logger) Debugf(format string, args ...any) {
	if l == nil {
		return
	}
	l.zlog.Debug().Msg(line(format, args...))
}

// Warnf writes a warning line.
func (l *Logger) Warnf(format string, args ...any) {
	if l == nil {
		return
	}
	l.zlog.Warn().Msg(line(format, args...))
}

// Error writes err at error level with a message.
func (l *Logger) Error(err error, format string, args ...any) {
	if l == nil {
		return
	}
	l.zlog.Error().Err(err).Msg(line(format, args...))
}

func line(format string, args ...any) string {
	return strings.TrimRight(fmt.Sprintf(format, args...), "\n")
}

func parseLevel(level string) (zerolog.Level, error) {
	trimmed := strings.ToLower(strings.TrimSpace(level))
	if trimmed == "" {
		return zerolog.InfoLevel, nil
	}
	if trimmed == "warning" {
		trimmed = "warn"
	}
	lvl, err := zerolog.ParseLevel(trimmed)
	if err != nil {
		return zerolog.NoLevel, fmt.Errorf("logging: %w", err)
	}
	return lvl, nil
}
