package config

import (
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"

	"hadesctl/pkg/logging"
)

// Credential keys read from the credentials file and the environment.
const (
	EnvHost     = "POSTGRES_HOST"
	EnvPort     = "POSTGRES_PORT"
	EnvUser     = "POSTGRES_USER"
	EnvPassword = "POSTGRES_PASSWORD"
	EnvDatabase = "POSTGRES_DB"
)

// ConnectionConfig holds the parameters needed to reach the managed database.
type ConnectionConfig struct {
	Host     string
	Port     int
	User     string
	Password string
	Database string
}

// HasPassword reports whether a non-empty password is configured.
func (c ConnectionConfig) HasPassword() bool {
	return StripQuotes(c.Password) != ""
}

// PasswordState renders the password as a presence flag only.
func (c ConnectionConfig) PasswordState() string {
	if c.HasPassword() {
		return "set"
	}
	return "not set"
}

// Target renders user@host:port/database.
func (c ConnectionConfig) Target() string {
	return fmt.Sprintf("%s@%s:%d/%s", c.User, c.Host, c.Port, c.Database)
}

// String never includes the password.
func (c ConnectionConfig) String() string {
	return fmt.Sprintf("%s (password %s)", c.Target(), c.PasswordState())
}

// Redacted returns a copy whose Password holds only the set/not set flag.
func (c ConnectionConfig) Redacted() ConnectionConfig {
	c.Password = c.PasswordState()
	return c
}

// LogValue keeps the password out of structured logs.
func (c ConnectionConfig) LogValue() slog.Value {
	return slog.GroupValue(
		slog.String("host", c.Host),
		slog.Int("port", c.Port),
		slog.String("user", c.User),
		slog.String("database", c.Database),
		slog.String("password", c.PasswordState()),
	)
}

// StripQuotes removes one pair of matching surrounding double or single quotes.
func StripQuotes(s string) string {
	if len(s) >= 2 {
		first, last := s[0], s[len(s)-1]
		if (first == '"' && last == '"') || (first == '\'' && last == '\'') {
			return s[1 : len(s)-1]
		}
	}
	return s
}

// LookupEnvFunc matches os.LookupEnv.
type LookupEnvFunc func(key string) (string, bool)

// LoadConnection builds a ConnectionConfig from defaults, then the optional
// credentials file at envFile, then the process environment (via lookup).
// A missing file is not an error.
func LoadConnection(envFile string, lookup LookupEnvFunc) (ConnectionConfig, error) {
	if lookup == nil {
		lookup = os.LookupEnv
	}

	values := map[string]string{}
	if envFile != "" {
		fileValues, err := godotenv.Read(envFile)
		switch {
		case err == nil:
			values = fileValues
			logging.Debug("Config", "Loaded credentials file %s", envFile)
		case errors.Is(err, fs.ErrNotExist):
			logging.Debug("Config", "No credentials file at %s; using environment and defaults", envFile)
		default:
			return ConnectionConfig{}, fmt.Errorf("failed to read credentials file %s: %w", envFile, err)
		}
	}

	get := func(key string) (string, bool) {
		if v, ok := lookup(key); ok {
			return v, true
		}
		v, ok := values[key]
		return v, ok
	}

	conn := DefaultConnection()
	if v, ok := get(EnvHost); ok && strings.TrimSpace(v) != "" {
		conn.Host = strings.TrimSpace(v)
	}
	if v, ok := get(EnvPort); ok && strings.TrimSpace(v) != "" {
		port, err := strconv.Atoi(strings.TrimSpace(StripQuotes(v)))
		if err != nil || port <= 0 || port > 65535 {
			return ConnectionConfig{}, fmt.Errorf("invalid %s value %q", EnvPort, v)
		}
		conn.Port = port
	}
	if v, ok := get(EnvUser); ok && strings.TrimSpace(v) != "" {
		conn.User = strings.TrimSpace(v)
	}
	if v, ok := get(EnvPassword); ok {
		conn.Password = v
	}
	if v, ok := get(EnvDatabase); ok && strings.TrimSpace(v) != "" {
		conn.Database = strings.TrimSpace(v)
	}

	return conn, nil
}
