package logging

import (
	"os"
	"testing"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

func TestNewLogger(t *testing.T) {
	os.Unsetenv("LOG_LEVEL")
	os.Unsetenv("LOG_ENCODING")

	// Default logger (production, info level)
	logger, err := NewLogger()
	if err != nil {
		t.Fatalf("Failed to create default logger: %v", err)
	}
	defer logger.Sync()
	if logger == nil {
		t.Fatal("Logger is nil")
	}

	// Console encoding
	t.Setenv("LOG_ENCODING", "console")
	consoleLogger, err := NewLogger()
	if err != nil {
		t.Fatalf("Failed to create console logger: %v", err)
	}
	defer consoleLogger.Sync()

	// Each supported level builds a usable logger
	for _, level := range []string{"debug", "info", "warn", "error"} {
		t.Run("level_"+level, func(t *testing.T) {
			t.Setenv("LOG_LEVEL", level)
			logger, err := NewLogger()
			if err != nil {
				t.Errorf("Failed to create logger with level %s: %v", level, err)
				return
			}
			defer logger.Sync()
			logger.Info("test message", zap.String("level", level))
		})
	}
}

func TestParseLevel(t *testing.T) {
	if got := parseLevel(""); got != zapcore.InfoLevel {
		t.Errorf("Empty level should default to info, got %v", got)
	}
	if got := parseLevel("DEBUG"); got != zapcore.DebugLevel {
		t.Errorf("DEBUG should parse to debug, got %v", got)
	}
	if got := parseLevel("not-a-level"); got != zapcore.InfoLevel {
		t.Errorf("Invalid level should fall back to info, got %v", got)
	}
}

func TestMustNewLogger(t *testing.T) {
	os.Unsetenv("LOG_LEVEL")
	os.Unsetenv("LOG_ENCODING")
	logger := MustNewLogger()
	if logger == nil {
		t.Fatal("MustNewLogger returned nil")
	}
	logger.Sync()
}
