package logger

import (
	"fmt"
	"io"
	"os"
)

// Logger provides structured logging for journald
type Logger struct {
	writer io.Writer
	debug  bool
}

// New creates a new logger instance writing to stderr, so command output on
// stdout stays clean.
func New() *Logger {
	return &Logger{
		writer: os.Stderr,
	}
}

// NewWithWriter creates a logger with a custom writer
func NewWithWriter(w io.Writer) *Logger {
	return &Logger{
		writer: w,
	}
}

// Discard returns a logger that drops everything.
func Discard() *Logger {
	return NewWithWriter(io.Discard)
}

// SetDebug toggles emission of Debug messages.
func (l *Logger) SetDebug(on bool) {
	l.debug = on
}

// Info logs informational messages
func (l *Logger) Info(msg string, fields ...Field) {
	l.log("INFO", msg, fields...)
}

// Error logs error messages
func (l *Logger) Error(msg string, fields ...Field) {
	l.log("ERROR", msg, fields...)
}

// Warn logs warning messages
func (l *Logger) Warn(msg string, fields ...Field) {
	l.log("WARNING", msg, fields...)
}

// Debug logs debug messages, only when enabled with SetDebug.
func (l *Logger) Debug(msg string, fields ...Field) {
	if !l.debug {
		return
	}
	l.log("DEBUG", msg, fields...)
}

func (l *Logger) log(level, msg string, fields ...Field) {
	output := fmt.Sprintf("LEVEL=%s MESSAGE=%s", level, msg)
	for _, field := range fields {
		output += fmt.Sprintf(" %s=%v", field.Key, field.Value)
	}
	_, _ = fmt.Fprintln(l.writer, output)
}

// Field represents a key-value pair for structured logging
type Field struct {
	Key   string
	Value interface{}
}

// F creates a new field (shorthand)
func F(key string, value interface{}) Field {
	return Field{Key: key, Value: value}
}

// Common field constructors
func Action(value string) Field   { return F("ACTION", value) }
func Status(value string) Field   { return F("STATUS", value) }
func Room(value int) Field        { return F("ROOM", value) }
func Customer(value string) Field { return F("CUSTOMER", value) }
func Period(value string) Field   { return F("PERIOD", value) }
func Count(value int) Field       { return F("COUNT", value) }
func Error(value error) Field     { return F("ERROR", value) }
func Backend(value string) Field  { return F("BACKEND", value) }
func Path(value string) Field     { return F("PATH", value) }
func Reason(value string) Field   { return F("REASON", value) }
