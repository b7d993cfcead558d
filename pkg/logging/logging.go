package logging

import (
	"os"
	"strings"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// NewLogger creates a configured zap.Logger with JSON output format.
// The log level is determined by the LOG_LEVEL environment variable
// (default: "info"). Valid levels: debug, info, warn, error, dpanic, panic, fatal.
// If LOG_ENCODING is set to "console", uses console encoding for development.
func NewLogger() (*zap.Logger, error) {
	var config zap.Config

	// Determine encoding from environment
	if strings.EqualFold(os.Getenv("LOG_ENCODING"), "console") {
		config = zap.NewDevelopmentConfig()
		config.EncoderConfig.EncodeLevel = zapcore.CapitalColorLevelEncoder
	} else {
		config = zap.NewProductionConfig()
		config.EncoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder
	}

	config.Level = zap.NewAtomicLevelAt(parseLevel(os.Getenv("LOG_LEVEL")))

	return config.Build()
}

// MustNewLogger creates a logger and panics if initialization fails.
// Useful for application startup where logging is critical.
func MustNewLogger() *zap.Logger {
	logger, err := NewLogger()
	if err != nil {
		panic(err)
	}
	return logger
}

// parseLevel maps a LOG_LEVEL value to a zap level, defaulting to info
// for empty or unrecognized values.
func parseLevel(level string) zapcore.Level {
	if level == "" {
		return zapcore.InfoLevel
	}
	var zapLevel zapcore.Level
	if err := zapLevel.Set(strings.ToLower(level)); err != nil {
		return zapcore.InfoLevel
	}
	return zapLevel
}
