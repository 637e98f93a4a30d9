/*
Copyright © 2025 3 Leaps <info@3leaps.net>
*/
package logger

import (
	"fmt"
	"io"
	"os"

	"github.com/rs/zerolog"
)

// Level represents the severity level of log messages
type Level int

const (
	TraceLevel Level = iota
	DebugLevel
	InfoLevel
	WarnLevel
	ErrorLevel
)

// String returns the string representation of the level
func (l Level) String() string {
	switch l {
	case TraceLevel:
		return "TRACE"
	case DebugLevel:
		return "DEBUG"
	case InfoLevel:
		return "INFO"
	case WarnLevel:
		return "WARN"
	case ErrorLevel:
		return "ERROR"
	default:
		return "UNKNOWN"
	}
}

// ParseLevel maps a flag value to a Level, defaulting to InfoLevel.
func ParseLevel(s string) Level {
	switch s {
	case "trace", "TRACE":
		return TraceLevel
	case "debug", "DEBUG":
		return DebugLevel
	case "info", "INFO":
		return InfoLevel
	case "warn", "WARN", "warning":
		return WarnLevel
	case "error", "ERROR":
		return ErrorLevel
	default:
		return InfoLevel
	}
}

func (l Level) zerolog() zerolog.Level {
	switch l {
	case TraceLevel:
		return zerolog.TraceLevel
	case DebugLevel:
		return zerolog.DebugLevel
	case WarnLevel:
		return zerolog.WarnLevel
	case ErrorLevel:
		return zerolog.ErrorLevel
	default:
		return zerolog.InfoLevel
	}
}

// Config holds the logger configuration
type Config struct {
	Level     Level
	UseColor  bool
	JSON      bool
	Component string
	NoOp      bool
}

// Logger represents the logger instance
type Logger struct {
	config Config
	zl     zerolog.Logger
}

// Default logger instance
var defaultLogger *Logger

func init() {
	// Level filtering happens per logger
	zerolog.SetGlobalLevel(zerolog.TraceLevel)
}

// Initialize sets up the default logger writing to stderr
func Initialize(config Config) error {
	defaultLogger = New(config, os.Stderr)
	return nil
}

// New builds a logger that writes to w
func New(config Config, w io.Writer) *Logger {
	return &Logger{
		config: config,
		zl:     build(config, w),
	}
}

func build(config Config, w io.Writer) zerolog.Logger {
	out := w
	if !config.JSON {
		out = zerolog.ConsoleWriter{
			Out:        w,
			NoColor:    !config.UseColor,
			TimeFormat: "2006-01-02 15:04:05",
		}
	}

	ctx := zerolog.New(out).Level(config.Level.zerolog()).With().Timestamp()
	if config.Component != "" {
		ctx = ctx.Str("component", config.Component)
	}
	if config.NoOp {
		ctx = ctx.Bool("no_op", true)
	}
	// Caller info for debug and trace
	if config.Level <= DebugLevel {
		ctx = ctx.CallerWithSkipFrameCount(4)
	}
	return ctx.Logger()
}

// Log writes a log message
func (l *Logger) Log(level Level, message string, fields ...Field) {
	if level < l.config.Level {
		return
	}

	var ev *zerolog.Event
	switch level {
	case TraceLevel:
		ev = l.zl.Trace()
	case DebugLevel:
		ev = l.zl.Debug()
	case WarnLevel:
		ev = l.zl.Warn()
	case ErrorLevel:
		ev = l.zl.Error()
	default:
		ev = l.zl.Info()
	}

	for _, field := range fields {
		ev = ev.Interface(field.Key, field.Value)
	}
	ev.Msg(message)
}

// Field represents a structured field in a log entry
type Field struct {
	Key   string
	Value interface{}
}

// String creates a string field
func String(key, value string) Field {
	return Field{Key: key, Value: value}
}

// Int creates an int field
func Int(key string, value int) Field {
	return Field{Key: key, Value: value}
}

// Bool creates a bool field
func Bool(key string, value bool) Field {
	return Field{Key: key, Value: value}
}

// Err creates an error field
func Err(err error) Field {
	return Field{Key: "error", Value: err.Error()}
}

// Convenience functions for default logger
func Trace(message string, fields ...Field) {
	if defaultLogger != nil {
		defaultLogger.Log(TraceLevel, message, fields...)
	}
}

func Debug(message string, fields ...Field) {
	if defaultLogger != nil {
		defaultLogger.Log(DebugLevel, message, fields...)
	}
}

func Info(message string, fields ...Field) {
	if defaultLogger != nil {
		defaultLogger.Log(InfoLevel, message, fields...)
	} else {
		// Fallback to stderr if logger not initialized
		_, _ = fmt.Fprintf(os.Stderr, "[INFO] goinject: %s\n", message)
	}
}

func Warn(message string, fields ...Field) {
	if defaultLogger != nil {
		defaultLogger.Log(WarnLevel, message, fields...)
	}
}

func Error(message string, fields ...Field) {
	if defaultLogger != nil {
		defaultLogger.Log(ErrorLevel, message, fields...)
	}
}

// SetOutput redirects the default logger to w, keeping its configuration
func SetOutput(w io.Writer) {
	if defaultLogger != nil {
		defaultLogger.zl = build(defaultLogger.config, w)
	}
}
