package logger

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/rs/zerolog"
)

func TestDefaultConfig(t *testing.T) {
	config := DefaultConfig()

	if config.Level != "info" {
		t.Errorf("Expected default level 'info', got %s", config.Level)
	}
	if config.Format != "console" {
		t.Errorf("Expected default format 'console', got %s", config.Format)
	}
	if config.Output != "stderr" {
		t.Errorf("Expected default output 'stderr', got %s", config.Output)
	}
}

func TestInit(t *testing.T) {
	t.Run("ValidConfig", func(t *testing.T) {
		config := &Config{
			Level:      "debug",
			Format:     "json",
			TimeFormat: time.RFC3339,
			Output:     "stdout",
		}
		if err := Init(config); err != nil {
			t.Fatalf("Expected no error, got %v", err)
		}
		if zerolog.GlobalLevel() != zerolog.DebugLevel {
			t.Errorf("Expected global level to be debug, got %s", zerolog.GlobalLevel())
		}
	})

	t.Run("InvalidLevel", func(t *testing.T) {
		config := DefaultConfig()
		config.Level = "loud"
		if err := Init(config); err == nil {
			t.Error("Expected error for invalid log level")
		}
	})

	t.Run("FileOutput", func(t *testing.T) {
		logFile := filepath.Join(t.TempDir(), "cleandb.log")
		config := &Config{
			Level:      "info",
			Format:     "json",
			TimeFormat: time.RFC3339,
			Output:     logFile,
		}
		if err := Init(config); err != nil {
			t.Fatalf("Expected no error, got %v", err)
		}

		GetLogger().Info().Str("table", "tasks").Msg("table dropped")

		content, err := os.ReadFile(logFile)
		if err != nil {
			t.Fatalf("Failed to read log file: %v", err)
		}
		if !strings.Contains(string(content), "table dropped") {
			t.Errorf("Expected log file to contain message, got %q", content)
		}
	})

	t.Run("InvalidFileOutput", func(t *testing.T) {
		config := DefaultConfig()
		config.Output = "/invalid/path/that/does/not/exist/cleandb.log"
		if err := Init(config); err == nil {
			t.Error("Expected error for invalid file path")
		}
	})
}

func TestSetLevel(t *testing.T) {
	if err := Init(DefaultConfig()); err != nil {
		t.Fatalf("Failed to initialize logger: %v", err)
	}
	SetLevel(zerolog.DebugLevel)
	if zerolog.GlobalLevel() != zerolog.DebugLevel {
		t.Errorf("Expected debug level, got %s", zerolog.GlobalLevel())
	}
}

func TestWithComponent(t *testing.T) {
	if err := Init(DefaultConfig()); err != nil {
		t.Fatalf("Failed to initialize logger: %v", err)
	}

	var buf bytes.Buffer
	logger := WithComponent("schema").Output(&buf)
	logger.Info().Msg("dropping tables")

	output := buf.String()
	if !strings.Contains(output, `"component":"schema"`) {
		t.Errorf("Expected component field, got %s", output)
	}
}

func TestWithFields(t *testing.T) {
	config := DefaultConfig()
	config.Format = "json"
	if err := Init(config); err != nil {
		t.Fatalf("Failed to initialize logger: %v", err)
	}

	var buf bytes.Buffer
	logger := WithFields(map[string]any{"driver": "sqlite", "tables": 10}).Output(&buf)
	logger.Info().Msg("reset")

	var entry map[string]any
	if err := json.Unmarshal(buf.Bytes(), &entry); err != nil {
		t.Fatalf("Failed to parse log output as JSON: %v", err)
	}
	if entry["driver"] != "sqlite" {
		t.Errorf("Expected driver field sqlite, got %v", entry["driver"])
	}
	if entry["tables"] != float64(10) {
		t.Errorf("Expected tables field 10, got %v", entry["tables"])
	}
}

func TestLogLevels(t *testing.T) {
	testCases := []struct {
		configLevel string
		logLevel    zerolog.Level
		shouldLog   bool
	}{
		{"debug", zerolog.DebugLevel, true},
		{"info", zerolog.DebugLevel, false},
		{"info", zerolog.InfoLevel, true},
		{"warn", zerolog.InfoLevel, false},
		{"error", zerolog.WarnLevel, false},
		{"error", zerolog.ErrorLevel, true},
	}

	for _, tc := range testCases {
		t.Run(tc.configLevel+"_"+tc.logLevel.String(), func(t *testing.T) {
			config := DefaultConfig()
			config.Level = tc.configLevel
			config.Format = "json"
			if err := Init(config); err != nil {
				t.Fatalf("Failed to initialize logger: %v", err)
			}

			var buf bytes.Buffer
			l := GetLogger().Output(&buf)
			l.WithLevel(tc.logLevel).Msg("test message")

			hasOutput := strings.TrimSpace(buf.String()) != ""
			if hasOutput != tc.shouldLog {
				t.Errorf("level %s logging at %s: expected output=%v, got %q", tc.configLevel, tc.logLevel, tc.shouldLog, buf.String())
			}
		})
	}
}
