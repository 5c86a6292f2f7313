package logging

import (
	"bytes"
	"io"
	"strings"

	"github.com/charmbracelet/log"
)

// Logger wraps a charmbracelet logger. Buffer is only set for test loggers.
type Logger struct {
	*log.Logger
	Buffer *bytes.Buffer
}

// New creates a logger writing to w at the named level. Unknown levels fall
// back to info. debug forces debug output with timestamps and caller
// information.
func New(w io.Writer, level string, debug bool) *Logger {
	lvl, err := log.ParseLevel(strings.ToLower(level))
	if err != nil {
		lvl = log.InfoLevel
	}

	opts := log.Options{
		Level:  lvl,
		Prefix: "zfsfacts",
	}
	if debug {
		opts.Level = log.DebugLevel
		opts.ReportTimestamp = true
		opts.ReportCaller = true
	}

	return &Logger{Logger: log.NewWithOptions(w, opts)}
}

// Discard returns a logger that drops everything.
func Discard() *Logger {
	return &Logger{Logger: log.New(io.Discard)}
}

// NewTestLogger returns a debug-level logger that records into Buffer.
func NewTestLogger() *Logger {
	buf := new(bytes.Buffer)
	l := log.NewWithOptions(buf, log.Options{Level: log.DebugLevel})
	return &Logger{Logger: l, Buffer: buf}
}

// GetOutput returns everything a test logger has recorded.
func (l *Logger) GetOutput() string {
	if l.Buffer == nil {
		return ""
	}
	return l.Buffer.String()
}

// With returns a child logger carrying the given key/value pairs.
func (l *Logger) With(keyvals ...interface{}) *Logger {
	return &Logger{Logger: l.Logger.With(keyvals...), Buffer: l.Buffer}
}

// WithPrefix returns a child logger with a different prefix.
func (l *Logger) WithPrefix(prefix string) *Logger {
	return &Logger{Logger: l.Logger.WithPrefix(prefix), Buffer: l.Buffer}
}
