// Package logging is the slog setup shared by the client and the commands.
// Records go to stderr, and also to a dated file when BOARDCTL_LOG_FILE is set.
package logging

import (
	"io"
	"log/slog"
	"os"
	"strings"
)

// LogLevel is a LOG_LEVEL value.
type LogLevel string

const (
	// LevelDebug for request/response tracing.
	LevelDebug LogLevel = "debug"
	// LevelInfo for general operational information.
	LevelInfo LogLevel = "info"
	// LevelWarn for degraded results such as empty fallbacks.
	LevelWarn LogLevel = "warn"
	// LevelError for failed calls.
	LevelError LogLevel = "error"
)

var defaultLogger *slog.Logger

func init() {
	SetupLogger(os.Stderr, LevelFromEnv())
}

// LevelFromEnv reads LOG_LEVEL, defaulting to info.
func LevelFromEnv() LogLevel {
	level := strings.ToLower(os.Getenv("LOG_LEVEL"))
	if level == "" {
		return LevelInfo
	}
	return LogLevel(level)
}

// SetupLogger replaces the package logger and slog's default. Unknown
// levels fall back to info. Command output owns stdout, so w is normally
// stderr.
func SetupLogger(w io.Writer, level LogLevel) {
	var logLevel slog.Level
	switch level {
	case LevelDebug:
		logLevel = slog.LevelDebug
	case LevelInfo:
		logLevel = slog.LevelInfo
	case LevelWarn:
		logLevel = slog.LevelWarn
	case LevelError:
		logLevel = slog.LevelError
	default:
		logLevel = slog.LevelInfo
	}

	opts := &slog.HandlerOptions{
		Level: logLevel,
	}

	handler := slog.NewTextHandler(w, opts)
	defaultLogger = slog.New(handler)
	slog.SetDefault(defaultLogger)
}

func Debug(msg string, args ...any) {
	defaultLogger.Debug(msg, args...)
}

func Info(msg string, args ...any) {
	defaultLogger.Info(msg, args...)
}

func Warn(msg string, args ...any) {
	defaultLogger.Warn(msg, args...)
}

func Error(msg string, args ...any) {
	defaultLogger.Error(msg, args...)
}

// GetLogger returns the logger installed by the last SetupLogger call.
func GetLogger() *slog.Logger {
	return defaultLogger
}

// MaskSensitive keeps the first four characters of a token so log lines can
// tell credentials apart without leaking them.
func MaskSensitive(value string) string {
	if value == "" {
		return "<not set>"
	}
	if len(value) <= 4 {
		return "<set>"
	}
	return value[:4] + "..." + strings.Repeat("*", 3)
}
