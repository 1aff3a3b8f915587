package monitoring

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"

	"github.com/lmittmann/tint"
)

// Logger is the structured logger used by the pipeline and the CLI.
// Replace it with Use.
var Logger = NewLogger(os.Stderr, slog.LevelInfo)

// Logf is the package-level diagnostic logger. It writes through Logger
// at info level but may be replaced by SetLogger. Tests or production
// code can redirect or mute it.
var Logf func(format string, v ...interface{}) = infof(Logger)

// NewLogger returns a colourised console logger writing to w.
func NewLogger(w io.Writer, level slog.Level) *slog.Logger {
	return slog.New(tint.NewHandler(w, &tint.Options{
		Level:      level,
		TimeFormat: "15:04:05",
		NoColor:    !isTerminal(w),
	}))
}

// Use installs l as Logger and routes Logf through it.
func Use(l *slog.Logger) {
	if l == nil {
		l = slog.New(slog.DiscardHandler)
	}
	Logger = l
	Logf = infof(l)
}

// SetLogger replaces the package logger. Passing nil will set a no-op logger.
func SetLogger(f func(format string, v ...interface{})) {
	if f == nil {
		Logf = func(string, ...interface{}) {}
		return
	}
	Logf = f
}

// ParseLevel maps a level name (debug, info, warn, error) to a slog level.
func ParseLevel(s string) (slog.Level, error) {
	var l slog.Level
	if err := l.UnmarshalText([]byte(strings.TrimSpace(s))); err != nil {
		return slog.LevelInfo, fmt.Errorf("invalid log level %q: %w", s, err)
	}
	return l, nil
}

func infof(l *slog.Logger) func(string, ...interface{}) {
	return func(format string, v ...interface{}) {
		l.Info(fmt.Sprintf(format, v...))
	}
}

func isTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	if !ok {
		return false
	}
	fi, err := f.Stat()
	if err != nil {
		return false
	}
	return fi.Mode()&os.ModeCharDevice != 0
}
