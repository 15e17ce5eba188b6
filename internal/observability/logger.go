// Package observability provides structured logging, metrics, and health checks
package observability

import (
	"context"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// LogLevel represents the severity of a log entry
type LogLevel string

const (
	LevelDebug LogLevel = "debug"
	LevelInfo  LogLevel = "info"
	LevelWarn  LogLevel = "warn"
	LevelError LogLevel = "error"
)

func (l LogLevel) zapLevel() zapcore.Level {
	switch l {
	case LevelDebug:
		return zapcore.DebugLevel
	case LevelWarn:
		return zapcore.WarnLevel
	case LevelError:
		return zapcore.ErrorLevel
	default:
		return zapcore.InfoLevel
	}
}

// Logger provides structured logging with correlation IDs on top of zap
type Logger struct {
	zl        *zap.Logger
	output    zapcore.WriteSyncer
	level     zap.AtomicLevel
	format    string
	component string
}

// NewLogger creates a JSON logger writing info and above to stdout
func NewLogger(component string) *Logger {
	return NewLoggerWithConfig(string(LevelInfo), "json", component)
}

// NewLoggerWithConfig creates a logger with the given level ("debug", "info",
// "warn", "error") and format ("json" or "console")
func NewLoggerWithConfig(level, format, component string) *Logger {
	l := &Logger{
		output:    zapcore.Lock(os.Stdout),
		level:     zap.NewAtomicLevelAt(LogLevel(level).zapLevel()),
		format:    format,
		component: component,
	}
	l.build()
	return l
}

func (l *Logger) build() {
	var encoder zapcore.Encoder
	if l.format == "console" {
		encoder = zapcore.NewConsoleEncoder(zap.NewDevelopmentEncoderConfig())
	} else {
		cfg := zap.NewProductionEncoderConfig()
		cfg.TimeKey = "timestamp"
		cfg.MessageKey = "message"
		cfg.EncodeTime = zapcore.ISO8601TimeEncoder
		encoder = zapcore.NewJSONEncoder(cfg)
	}

	core := zapcore.NewCore(encoder, l.output, l.level)
	l.zl = zap.New(core)
	if l.component != "" {
		l.zl = l.zl.With(zap.String("component", l.component))
	}
}

// WithOutput sets the output writer for the logger
func (l *Logger) WithOutput(w io.Writer) *Logger {
	l.output = zapcore.AddSync(w)
	l.build()
	return l
}

// WithLevel sets the minimum log level
func (l *Logger) WithLevel(level LogLevel) *Logger {
	l.level.SetLevel(level.zapLevel())
	return l
}

// Named returns a logger for a sub-component sharing the same output and level
func (l *Logger) Named(component string) *Logger {
	child := *l
	child.component = component
	child.build()
	return &child
}

// Sync flushes any buffered log entries
func (l *Logger) Sync() error {
	return l.zl.Sync()
}

func (l *Logger) log(ctx context.Context, level LogLevel, message string, fields map[string]interface{}) {
	ce := l.zl.Check(level.zapLevel(), message)
	if ce == nil {
		return
	}

	zfields := make([]zap.Field, 0, 3)
	if ctx != nil {
		if correlationID := GetCorrelationID(ctx); correlationID != "" {
			zfields = append(zfields, zap.String("correlation_id", correlationID))
		}
		if userID := GetUserID(ctx); userID != "" {
			zfields = append(zfields, zap.String("user_id", userID))
		}
	}
	if len(fields) > 0 {
		zfields = append(zfields, zap.Any("fields", fields))
	}

	ce.Write(zfields...)
}

// Debug logs a debug message
func (l *Logger) Debug(ctx context.Context, message string, fields map[string]interface{}) {
	l.log(ctx, LevelDebug, message, fields)
}

// Info logs an info message
func (l *Logger) Info(ctx context.Context, message string, fields map[string]interface{}) {
	l.log(ctx, LevelInfo, message, fields)
}

// Warn logs a warning message
func (l *Logger) Warn(ctx context.Context, message string, fields map[string]interface{}) {
	l.log(ctx, LevelWarn, message, fields)
}

// Error logs an error message
func (l *Logger) Error(ctx context.Context, message string, err error, fields map[string]interface{}) {
	if fields == nil {
		fields = make(map[string]interface{})
	}
	if err != nil {
		fields["error"] = err.Error()
	}
	l.log(ctx, LevelError, message, fields)
}

// WithOperation logs the start and end of an operation
func (l *Logger) WithOperation(ctx context.Context, operation string, fn func(context.Context) error) error {
	start := time.Now()
	correlationID := GetCorrelationID(ctx)
	if correlationID == "" {
		correlationID = uuid.New().String()
		ctx = WithCorrelationID(ctx, correlationID)
	}

	l.Info(ctx, fmt.Sprintf("Starting operation: %s", operation), map[string]interface{}{
		"operation": operation,
	})

	err := fn(ctx)
	duration := time.Since(start)

	fields := map[string]interface{}{
		"operation":   operation,
		"duration_ms": duration.Milliseconds(),
	}

	if err != nil {
		l.Error(ctx, fmt.Sprintf("Operation failed: %s", operation), err, fields)
		return err
	}

	l.Info(ctx, fmt.Sprintf("Operation completed: %s", operation), fields)
	return nil
}

// Context keys for storing values in context
type contextKey string

const (
	correlationIDKey contextKey = "correlation_id"
	userIDKey        contextKey = "user_id"
)

// WithCorrelationID adds a correlation ID to the context
func WithCorrelationID(ctx context.Context, id string) context.Context {
	return context.WithValue(ctx, correlationIDKey, id)
}

// GetCorrelationID retrieves the correlation ID from the context
func GetCorrelationID(ctx context.Context) string {
	if id, ok := ctx.Value(correlationIDKey).(string); ok {
		return id
	}
	return ""
}

// WithUserID adds a user ID to the context
func WithUserID(ctx context.Context, id string) context.Context {
	return context.WithValue(ctx, userIDKey, id)
}

// GetUserID retrieves the user ID from the context
func GetUserID(ctx context.Context) string {
	if id, ok := ctx.Value(userIDKey).(string); ok {
		return id
	}
	return ""
}

// NopLogger returns a logger that discards everything, for tests
func NopLogger() *Logger {
	return NewLogger("test").WithOutput(io.Discard)
}
