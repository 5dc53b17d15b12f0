// Package log provides structured logging for the treecore split-selection
// engines, backed by github.com/rs/zerolog.
//
// The package exposes a minimal Logger interface so callers stay decoupled
// from the backend, plus package-level accessors for the common case:
//
//	logger := log.GetLoggerWithName("histogram")
//	logger.Debug("histograms built",
//	    log.FeaturesKey, nFeatures,
//	    log.BinsKey, nBins,
//	)
//
// Hot scan and build loops never log; only entry points and summaries do.
package log

import (
	"io"
	"os"
	"sync"

	"github.com/rs/zerolog"
)

// Logger is a structured logging interface with key-value field support.
type Logger interface {
	// Debug logs a debug-level message with optional key-value fields.
	Debug(msg string, fields ...any)

	// Info logs an info-level message with optional key-value fields.
	Info(msg string, fields ...any)

	// Warn logs a warning-level message with optional key-value fields.
	Warn(msg string, fields ...any)

	// Error logs an error-level message with optional key-value fields.
	// If the first field is an error it is attached under the "error" key.
	Error(msg string, fields ...any)

	// With returns a new Logger with the given fields pre-populated.
	With(fields ...any) Logger
}

type zerologLogger struct {
	zl zerolog.Logger
}

func (l *zerologLogger) Debug(msg string, fields ...any) {
	appendFields(l.zl.Debug(), fields).Msg(msg)
}

func (l *zerologLogger) Info(msg string, fields ...any) {
	appendFields(l.zl.Info(), fields).Msg(msg)
}

func (l *zerologLogger) Warn(msg string, fields ...any) {
	appendFields(l.zl.Warn(), fields).Msg(msg)
}

func (l *zerologLogger) Error(msg string, fields ...any) {
	event := l.zl.Error()
	if len(fields) > 0 {
		if err, ok := fields[0].(error); ok {
			event = event.Err(err)
			fields = fields[1:]
		}
	}
	appendFields(event, fields).Msg(msg)
}

func (l *zerologLogger) With(fields ...any) Logger {
	ctx := l.zl.With()
	for i := 0; i+1 < len(fields); i += 2 {
		key, ok := fields[i].(string)
		if !ok {
			continue
		}
		ctx = ctx.Interface(key, fields[i+1])
	}
	return &zerologLogger{zl: ctx.Logger()}
}

func appendFields(event *zerolog.Event, fields []any) *zerolog.Event {
	for i := 0; i+1 < len(fields); i += 2 {
		key, ok := fields[i].(string)
		if !ok {
			continue
		}
		switch v := fields[i+1].(type) {
		case string:
			event = event.Str(key, v)
		case int:
			event = event.Int(key, v)
		case int64:
			event = event.Int64(key, v)
		case float64:
			event = event.Float64(key, v)
		case bool:
			event = event.Bool(key, v)
		case error:
			event = event.AnErr(key, v)
		default:
			event = event.Interface(key, v)
		}
	}
	return event
}

var (
	mu         sync.RWMutex
	baseLogger = zerolog.New(os.Stderr).With().Timestamp().Logger().Level(zerolog.InfoLevel)
)

// SetOutput redirects all package loggers to w. Tests use this to capture
// log output in a buffer.
func SetOutput(w io.Writer) {
	mu.Lock()
	defer mu.Unlock()
	baseLogger = baseLogger.Output(w)
}

// SetLevel sets the minimum level emitted by all package loggers.
// Recognized levels: "debug", "info", "warn", "error".
func SetLevel(level string) {
	parsed, err := zerolog.ParseLevel(level)
	if err != nil {
		parsed = zerolog.InfoLevel
	}
	mu.Lock()
	defer mu.Unlock()
	baseLogger = baseLogger.Level(parsed)
}

// GetLogger returns the default logger.
func GetLogger() Logger {
	mu.RLock()
	defer mu.RUnlock()
	return &zerologLogger{zl: baseLogger}
}

// GetLoggerWithName returns a logger tagged with a component name.
func GetLoggerWithName(name string) Logger {
	mu.RLock()
	defer mu.RUnlock()
	return &zerologLogger{zl: baseLogger.With().Str(ComponentKey, name).Logger()}
}
