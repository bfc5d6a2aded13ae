// Package logging provides structured logging utilities.
// Every component logs through the global zap logger, named per component
// under the "grocery-cost" root, e.g. "grocery-cost.engine".
package logging

import (
	"os"
	"strings"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"grocery-cost/internal/version"
)

// Logger is the global root logger. Components take a child with Named.
var Logger *zap.Logger

// Output destinations other than a file path
const (
	OutputStdout = "stdout"
	OutputStderr = "stderr"
)

// Config contains logging configuration
type Config struct {
	// Level is the minimum log level (debug, info, warn, error)
	Level string `json:"level" mapstructure:"level"`

	// Format is json or console
	Format string `json:"format" mapstructure:"format"`

	// Output is stdout, stderr or a file path
	Output string `json:"output" mapstructure:"output"`

	// Development adds stack traces on errors and panics on DPanic
	Development bool `json:"development" mapstructure:"development"`
}

// DefaultConfig logs info and above to stderr so stdout stays free for
// rendered plans
func DefaultConfig() Config {
	return Config{
		Level:  "info",
		Format: "console",
		Output: OutputStderr,
	}
}

// Initialize replaces the global logger
func Initialize(cfg Config) error {
	sink, terminal, err := openSink(cfg.Output)
	if err != nil {
		return err
	}

	core := zapcore.NewCore(newEncoder(cfg.Format, terminal), sink, parseLevel(cfg.Level))
	opts := []zap.Option{zap.AddCaller()}
	if cfg.Development {
		opts = append(opts, zap.Development(), zap.AddStacktrace(zapcore.ErrorLevel))
	}

	Logger = zap.New(core, opts...).Named(version.Name)
	return nil
}

// InitializeDefault sets up the logger with default configuration
func InitializeDefault() {
	_ = Initialize(DefaultConfig())
}

// parseLevel accepts zap level names plus "warning"; anything else is info
func parseLevel(s string) zapcore.Level {
	s = strings.ToLower(strings.TrimSpace(s))
	if s == "warning" {
		s = "warn"
	}
	level, err := zapcore.ParseLevel(s)
	if err != nil {
		return zapcore.InfoLevel
	}
	return level
}

// newEncoder colors console levels only on a terminal stream
func newEncoder(format string, terminal bool) zapcore.Encoder {
	cfg := zap.NewProductionEncoderConfig()
	cfg.TimeKey = "timestamp"
	cfg.EncodeTime = zapcore.ISO8601TimeEncoder

	if format != "console" {
		return zapcore.NewJSONEncoder(cfg)
	}
	if terminal {
		cfg.EncodeLevel = zapcore.CapitalColorLevelEncoder
	} else {
		cfg.EncodeLevel = zapcore.CapitalLevelEncoder
	}
	return zapcore.NewConsoleEncoder(cfg)
}

// openSink resolves an output name and reports whether it is a std stream
func openSink(output string) (zapcore.WriteSyncer, bool, error) {
	switch output {
	case OutputStdout:
		return zapcore.Lock(os.Stdout), true, nil
	case "", OutputStderr:
		return zapcore.Lock(os.Stderr), true, nil
	}
	file, err := os.OpenFile(output, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o644)
	if err != nil {
		return nil, false, err
	}
	return zapcore.AddSync(file), false, nil
}

// Sync flushes the logger
func Sync() {
	if Logger != nil {
		_ = Logger.Sync()
	}
}

// With returns a logger with additional fields
func With(fields ...zap.Field) *zap.Logger {
	return Logger.With(fields...)
}

// Named returns the logger for a component, e.g. "engine" or "api"
func Named(component string) *zap.Logger {
	return Logger.Named(component)
}

// ForRequest scopes a component logger to one HTTP request
func ForRequest(base *zap.Logger, requestID string) *zap.Logger {
	if requestID == "" {
		return base
	}
	return base.With(RequestID(requestID))
}

// Silence replaces the global logger with a no-op logger
func Silence() {
	Logger = zap.NewNop()
}

// PlanID tags a log entry with a plan ID
func PlanID(id string) zap.Field {
	return zap.String("plan_id", id)
}

// Location tags a log entry with the requested location
func Location(location string) zap.Field {
	return zap.String("location", location)
}

// RequestID tags a log entry with an HTTP request ID
func RequestID(id string) zap.Field {
	return zap.String("request_id", id)
}

// Debug logs at debug level
func Debug(msg string, fields ...zap.Field) {
	Logger.Debug(msg, fields...)
}

// Info logs at info level
func Info(msg string, fields ...zap.Field) {
	Logger.Info(msg, fields...)
}

// Warn logs at warn level
func Warn(msg string, fields ...zap.Field) {
	Logger.Warn(msg, fields...)
}

// Error logs at error level
func Error(msg string, fields ...zap.Field) {
	Logger.Error(msg, fields...)
}

// Fatal logs at fatal level and exits
func Fatal(msg string, fields ...zap.Field) {
	Logger.Fatal(msg, fields...)
}

func init() {
	InitializeDefault()
}
