package logger

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"sync"
	"time"
)

// VerboseChecker interface for checking verbose state
type VerboseChecker interface {
	IsVerbose() bool
}

// Format selects the line layout
type Format int

const (
	// FormatConsole is the human layout: [15:04:05.000] LEVEL [component] msg [k=v]
	FormatConsole Format = iota
	// FormatLogfmt writes time=... level=... component=... msg=... k=v
	FormatLogfmt
)

// Logger provides structured logging with verbose support
type Logger struct {
	component      string
	verboseChecker VerboseChecker
	sink           *sink
	now            func() time.Time
}

// sink is shared by every logger derived through WithComponent
type sink struct {
	mu     sync.Mutex
	writer io.Writer
	format Format
}

// Field represents a key-value pair for structured logging
type Field struct {
	Key   string
	Value interface{}
}

// New creates a new logger instance writing console lines to stderr
func New(component string, verboseChecker VerboseChecker) *Logger {
	return &Logger{
		component:      component,
		verboseChecker: verboseChecker,
		sink:           &sink{writer: os.Stderr, format: FormatConsole},
		now:            time.Now,
	}
}

// NewWithCallback creates a new logger instance with a callback function
func NewWithCallback(component string, verboseCheck func() bool) *Logger {
	return New(component, &callbackChecker{callback: verboseCheck})
}

// NewWithWriter creates a logger writing to w in the given format
func NewWithWriter(component string, verboseChecker VerboseChecker, w io.Writer, format Format) *Logger {
	l := New(component, verboseChecker)
	l.sink = &sink{writer: w, format: format}
	return l
}

// Discard returns a logger that drops everything
func Discard() *Logger {
	return NewWithWriter("", nil, io.Discard, FormatConsole)
}

// OpenFile opens path for appending, creating its directory
func OpenFile(path string) (*os.File, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o750); err != nil {
		return nil, fmt.Errorf("failed to create log directory: %w", err)
	}
	// #nosec G304 - path comes from configuration
	f, err := os.OpenFile(path, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o600)
	if err != nil {
		return nil, fmt.Errorf("failed to open log file: %w", err)
	}
	return f, nil
}

// WithComponent creates a logger with a specific component name
func (l *Logger) WithComponent(component string) *Logger {
	return &Logger{
		component:      component,
		verboseChecker: l.verboseChecker,
		sink:           l.sink,
		now:            l.now,
	}
}

// callbackChecker implements VerboseChecker with a callback function
type callbackChecker struct {
	callback func() bool
}

func (c *callbackChecker) IsVerbose() bool {
	if c.callback == nil {
		return false
	}
	return c.callback()
}

func (l *Logger) verbose() bool {
	return l.verboseChecker != nil && l.verboseChecker.IsVerbose()
}

// Debug logs debug messages (only when verbose=true)
func (l *Logger) Debug(msg string, args ...interface{}) {
	if l.verbose() {
		l.write("DEBUG", fmt.Sprintf(msg, args...), nil)
	}
}

// Info logs informational messages (only when verbose=true)
func (l *Logger) Info(msg string, args ...interface{}) {
	if l.verbose() {
		l.write("INFO", fmt.Sprintf(msg, args...), nil)
	}
}

// Warn logs warning messages (always shown)
func (l *Logger) Warn(msg string, args ...interface{}) {
	l.write("WARN", fmt.Sprintf(msg, args...), nil)
}

// Error logs error messages (always shown)
func (l *Logger) Error(msg string, args ...interface{}) {
	l.write("ERROR", fmt.Sprintf(msg, args...), nil)
}

// DebugWithFields logs debug message with structured fields
func (l *Logger) DebugWithFields(msg string, fields []Field, args ...interface{}) {
	if l.verbose() {
		l.write("DEBUG", fmt.Sprintf(msg, args...), fields)
	}
}

// InfoWithFields logs info message with structured fields
func (l *Logger) InfoWithFields(msg string, fields []Field, args ...interface{}) {
	if l.verbose() {
		l.write("INFO", fmt.Sprintf(msg, args...), fields)
	}
}

// WarnWithFields logs a warning with structured fields
func (l *Logger) WarnWithFields(msg string, fields []Field, args ...interface{}) {
	l.write("WARN", fmt.Sprintf(msg, args...), fields)
}

// ErrorWithFields logs an error with structured fields
func (l *Logger) ErrorWithFields(msg string, fields []Field, args ...interface{}) {
	l.write("ERROR", fmt.Sprintf(msg, args...), fields)
}

func (l *Logger) write(level, msg string, fields []Field) {
	component := l.component
	if component == "" {
		component = "main"
	}

	var line string
	switch l.sink.format {
	case FormatLogfmt:
		line = formatLogfmt(l.now(), level, component, msg, fields)
	default:
		line = formatConsole(l.now(), level, component, msg, fields)
	}

	l.sink.mu.Lock()
	defer l.sink.mu.Unlock()
	// a failed log write has nowhere to be reported
	_, _ = io.WriteString(l.sink.writer, line)
}

func formatConsole(ts time.Time, level, component, msg string, fields []Field) string {
	fieldStrings := make([]string, 0, len(fields))
	for _, field := range fields {
		fieldStrings = append(fieldStrings, fmt.Sprintf("%s=%v", field.Key, field.Value))
	}

	var fieldsStr string
	if len(fieldStrings) > 0 {
		fieldsStr = fmt.Sprintf(" [%s]", strings.Join(fieldStrings, " "))
	}

	return fmt.Sprintf("[%s] %s [%s] %s%s\n", ts.Format("15:04:05.000"), level, component, msg, fieldsStr)
}

func formatLogfmt(ts time.Time, level, component, msg string, fields []Field) string {
	var b strings.Builder
	b.WriteString("time=")
	b.WriteString(ts.UTC().Format(time.RFC3339Nano))
	b.WriteString(" level=")
	b.WriteString(strings.ToLower(level))
	b.WriteString(" component=")
	b.WriteString(logfmtValue(component))
	b.WriteString(" msg=")
	b.WriteString(logfmtValue(msg))
	for _, field := range fields {
		b.WriteByte(' ')
		b.WriteString(field.Key)
		b.WriteByte('=')
		b.WriteString(logfmtValue(fmt.Sprint(field.Value)))
	}
	b.WriteByte('\n')
	return b.String()
}

func logfmtValue(s string) string {
	if s == "" {
		return `""`
	}
	if strings.ContainsAny(s, " =\"\t\n\r") {
		return strconv.Quote(s)
	}
	return s
}

// Helper functions for common field types
func F(key string, value interface{}) Field {
	return Field{Key: key, Value: value}
}

func Count(value int) Field {
	return Field{Key: "count", Value: value}
}

func Duration(d time.Duration) Field {
	return Field{Key: "duration", Value: d}
}

func Error(err error) Field {
	return Field{Key: "error", Value: err}
}
