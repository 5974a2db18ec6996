package common

import (
	"fmt"

	"kanbanboard/pkg/common/config"
	"kanbanboard/pkg/common/logger"

	"github.com/rs/zerolog"
)

// Init loads configuration from configPath and configures the global logger from it.
func Init(configPath string) (*config.Config, error) {
	cfg, err := config.Load(configPath)
	if err != nil {
		return nil, err
	}
	if err := logger.Init(&cfg.Log); err != nil {
		return nil, fmt.Errorf("logger init failed: %w", err)
	}
	if cfg.Debug {
		logger.SetLevel(zerolog.DebugLevel)
	}
	return cfg, nil
}

// InitLogger initializes the logger with default configuration
func InitLogger() error {
	return logger.Init(logger.DefaultConfig())
}

// GetLogger returns the global logger instance
func GetLogger() *zerolog.Logger {
	return logger.GetLogger()
}

// IsDebug reports whether the loaded configuration enables debug mode.
func IsDebug() bool {
	return config.IsDebug()
}
