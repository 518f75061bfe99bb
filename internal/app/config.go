package app

import (
	"hadesctl/internal/config"
)

// Config holds the application configuration derived from global flags
type Config struct {
	// ConfigPath is an explicit config file; empty uses the layered files
	ConfigPath string

	// EnvFile overrides credentials.envFile from the config files
	EnvFile string

	// Debug settings
	Debug   bool
	LogFile string

	// Loaded during bootstrap
	HadesConfig *config.HadesConfig
	Connection  config.ConnectionConfig
}

// NewConfig creates a new application configuration
func NewConfig(configPath, envFile string, debug bool, logFile string) *Config {
	return &Config{
		ConfigPath: configPath,
		EnvFile:    envFile,
		Debug:      debug,
		LogFile:    logFile,
	}
}
