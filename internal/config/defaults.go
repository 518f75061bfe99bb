package config

import "time"

const (
	DefaultComposeFile    = "docker-compose.yml"
	DefaultServiceName    = "db"
	DefaultEnvFile        = ".env"
	DefaultHealthAttempts = 15
	DefaultHealthInterval = 2 * time.Second
	DefaultSettleDelay    = 2 * time.Second
	DefaultProbeTimeout   = 5 * time.Second
	DefaultConfirmToken   = "REBUILD"

	DefaultHost     = "localhost"
	DefaultPort     = 5432
	DefaultUser     = "postgres"
	DefaultDatabase = "postgres"
)

// GetDefaultConfig returns the configuration used when no file overrides it.
func GetDefaultConfig() HadesConfig {
	return HadesConfig{
		Compose: ComposeConfig{
			File:    DefaultComposeFile,
			Service: DefaultServiceName,
		},
		Credentials: CredentialsConfig{
			EnvFile: DefaultEnvFile,
		},
		Health: HealthConfig{
			Attempts:    DefaultHealthAttempts,
			Interval:    DefaultHealthInterval,
			SettleDelay: DefaultSettleDelay,
		},
		Probe: ProbeConfig{
			Timeout: DefaultProbeTimeout,
		},
		Runtime: RuntimeConfig{
			Name:       "Python",
			Command:    "python3.12",
			Version:    "3.12",
			VersionArg: []string{"--version"},
			VirtualEnv: ".venv",
		},
		Rebuild: RebuildConfig{
			ConfirmToken: DefaultConfirmToken,
		},
	}
}

// DefaultConnection returns the connection parameters used when neither the
// credentials file nor the environment sets them.
func DefaultConnection() ConnectionConfig {
	return ConnectionConfig{
		Host:     DefaultHost,
		Port:     DefaultPort,
		User:     DefaultUser,
		Database: DefaultDatabase,
	}
}
