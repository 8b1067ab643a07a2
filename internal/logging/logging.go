package logging

import (
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/charmbracelet/log"
)

// Component prefixes
const (
	PrefixAPI       = "API"
	PrefixFavorites = "FAVORITES"
	PrefixFetch     = "FETCH"
)

// Logger is the root file logger plus the file it writes to
type Logger struct {
	*log.Logger
	file *os.File
}

// Open creates a logger appending to path. The TUI owns the terminal, so logs
// go to a file; if the file cannot be opened logs are discarded.
func Open(path string, level log.Level) *Logger {
	if dir := filepath.Dir(path); dir != "." && dir != "" {
		_ = os.MkdirAll(dir, 0755)
	}

	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0666)
	if err != nil {
		return &Logger{Logger: New(io.Discard, level)}
	}
	return &Logger{Logger: New(f, level), file: f}
}

// New creates a logger writing to w with RFC3339 timestamps
func New(w io.Writer, level log.Level) *log.Logger {
	return log.NewWithOptions(w, log.Options{
		ReportTimestamp: true,
		TimeFormat:      time.RFC3339,
		Level:           level,
	})
}

// Component returns a child logger tagged with prefix
func (l *Logger) Component(prefix string) *log.Logger {
	return l.WithPrefix(prefix)
}

// Path returns the log file path, or "" when logs are discarded
func (l *Logger) Path() string {
	if l.file == nil {
		return ""
	}
	return l.file.Name()
}

func (l *Logger) Close() error {
	if l.file == nil {
		return nil
	}
	return l.file.Close()
}
