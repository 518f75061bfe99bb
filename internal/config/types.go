package config

import (
	"time"
)

// HadesConfig is the top-level configuration structure for hadesctl.
type HadesConfig struct {
	Compose     ComposeConfig     `yaml:"compose"`
	Credentials CredentialsConfig `yaml:"credentials"`
	Health      HealthConfig      `yaml:"health"`
	Probe       ProbeConfig       `yaml:"probe"`
	Runtime     RuntimeConfig     `yaml:"runtime"`
	Rebuild     RebuildConfig     `yaml:"rebuild"`
}

// ComposeConfig locates the managed service inside a compose project.
type ComposeConfig struct {
	File    string `yaml:"file,omitempty"`    // Path to the compose file, e.g. "docker-compose.yml"
	Service string `yaml:"service,omitempty"` // Service name inside the compose file, e.g. "db"
	// Command overrides compose auto-detection, e.g. "docker compose" or "docker-compose".
	Command string `yaml:"command,omitempty"`
}

// CredentialsConfig points at the optional KEY=VALUE credentials file.
type CredentialsConfig struct {
	EnvFile string `yaml:"envFile,omitempty"`
}

// HealthConfig bounds health polling after a start transition.
type HealthConfig struct {
	Attempts    int           `yaml:"attempts,omitempty"`
	Interval    time.Duration `yaml:"interval,omitempty"`
	SettleDelay time.Duration `yaml:"settleDelay,omitempty"` // Wait between a healthy report and the connectivity probe
}

// Budget is the worst-case time spent polling.
func (h HealthConfig) Budget() time.Duration {
	return time.Duration(h.Attempts) * h.Interval
}

// ProbeConfig tunes the connectivity probe.
type ProbeConfig struct {
	Timeout time.Duration `yaml:"timeout,omitempty"`
}

// RuntimeConfig describes the companion language runtime.
type RuntimeConfig struct {
	Name       string   `yaml:"name,omitempty"`       // Display name, e.g. "Python"
	Command    string   `yaml:"command,omitempty"`    // Executable looked up on PATH, e.g. "python3.12"
	Version    string   `yaml:"version,omitempty"`    // Expected major.minor, e.g. "3.12"
	VersionArg []string `yaml:"versionArg,omitempty"` // Arguments printing the version, e.g. ["--version"]
	VirtualEnv string   `yaml:"virtualEnv,omitempty"` // Optional virtual environment directory
}

// RebuildConfig guards the destructive-looking rebuild command.
type RebuildConfig struct {
	ConfirmToken string `yaml:"confirmToken,omitempty"`
}
