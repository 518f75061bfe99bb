package config

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"

	"hadesctl/pkg/logging"
)

// For mocking in tests
var osUserHomeDir = os.UserHomeDir
var osGetwd = os.Getwd

const (
	userConfigDir    = ".config/hadesctl"
	projectConfigDir = ".hadesctl"
	configFileName   = "config.yaml"
)

// LoadConfig loads the hadesctl configuration by layering default, user, and project settings.
func LoadConfig() (HadesConfig, error) {
	config := GetDefaultConfig()

	userConfigPath, err := getUserConfigPath()
	if err != nil {
		// User config is optional
		logging.Warn("Config", "Could not determine user config path: %v", err)
	} else if fileExists(userConfigPath) {
		userConfig, err := loadConfigFromFile(userConfigPath)
		if err != nil {
			return HadesConfig{}, fmt.Errorf("error loading user config from %s: %w", userConfigPath, err)
		}
		config = mergeConfigs(config, userConfig)
		logging.Debug("Config", "Merged user config %s", userConfigPath)
	}

	projectConfigPath, err := getProjectConfigPath()
	if err != nil {
		logging.Warn("Config", "Could not determine project config path: %v", err)
	} else if fileExists(projectConfigPath) {
		projectConfig, err := loadConfigFromFile(projectConfigPath)
		if err != nil {
			return HadesConfig{}, fmt.Errorf("error loading project config from %s: %w", projectConfigPath, err)
		}
		config = mergeConfigs(config, projectConfig)
		logging.Debug("Config", "Merged project config %s", projectConfigPath)
	}

	return config, nil
}

// LoadConfigFromPath merges a single explicit file over the defaults. Unlike
// the layered files, an explicit path must exist.
func LoadConfigFromPath(path string) (HadesConfig, error) {
	overlay, err := loadConfigFromFile(path)
	if err != nil {
		return HadesConfig{}, fmt.Errorf("error loading config from %s: %w", path, err)
	}
	return mergeConfigs(GetDefaultConfig(), overlay), nil
}

var getUserConfigPath = func() (string, error) {
	homeDir, err := osUserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(homeDir, userConfigDir, configFileName), nil
}

var getProjectConfigPath = func() (string, error) {
	wd, err := osGetwd()
	if err != nil {
		return "", err
	}
	return filepath.Join(wd, projectConfigDir, configFileName), nil
}

func fileExists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}

// loadConfigFromFile loads a HadesConfig from a YAML file.
func loadConfigFromFile(filePath string) (HadesConfig, error) {
	var config HadesConfig
	data, err := os.ReadFile(filePath)
	if err != nil {
		return HadesConfig{}, err
	}
	if err := yaml.Unmarshal(data, &config); err != nil {
		return HadesConfig{}, err
	}
	return config, nil
}

// mergeConfigs merges 'overlay' config into 'base' config. Zero values in the
// overlay leave the base untouched.
func mergeConfigs(base, overlay HadesConfig) HadesConfig {
	merged := base

	if overlay.Compose.File != "" {
		merged.Compose.File = overlay.Compose.File
	}
	if overlay.Compose.Service != "" {
		merged.Compose.Service = overlay.Compose.Service
	}
	if overlay.Compose.Command != "" {
		merged.Compose.Command = overlay.Compose.Command
	}

	if overlay.Credentials.EnvFile != "" {
		merged.Credentials.EnvFile = overlay.Credentials.EnvFile
	}

	if overlay.Health.Attempts > 0 {
		merged.Health.Attempts = overlay.Health.Attempts
	}
	if overlay.Health.Interval > 0 {
		merged.Health.Interval = overlay.Health.Interval
	}
	if overlay.Health.SettleDelay > 0 {
		merged.Health.SettleDelay = overlay.Health.SettleDelay
	}

	if overlay.Probe.Timeout > 0 {
		merged.Probe.Timeout = overlay.Probe.Timeout
	}

	if overlay.Runtime.Name != "" {
		merged.Runtime.Name = overlay.Runtime.Name
	}
	if overlay.Runtime.Command != "" {
		merged.Runtime.Command = overlay.Runtime.Command
	}
	if overlay.Runtime.Version != "" {
		merged.Runtime.Version = overlay.Runtime.Version
	}
	if len(overlay.Runtime.VersionArg) > 0 {
		merged.Runtime.VersionArg = overlay.Runtime.VersionArg
	}
	if overlay.Runtime.VirtualEnv != "" {
		merged.Runtime.VirtualEnv = overlay.Runtime.VirtualEnv
	}

	if overlay.Rebuild.ConfirmToken != "" {
		merged.Rebuild.ConfirmToken = overlay.Rebuild.ConfirmToken
	}

	return merged
}

// GetUserConfigDir returns the user configuration directory path
func GetUserConfigDir() (string, error) {
	homeDir, err := osUserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(homeDir, userConfigDir), nil
}
