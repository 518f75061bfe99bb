package app

import (
	"fmt"
	"io"
	"os"

	"hadesctl/internal/config"
	"hadesctl/pkg/logging"
)

// Application bootstraps configuration and the service graph for one command
type Application struct {
	config   *Config
	services *Services
}

// Options carries the process-level collaborators used during bootstrap.
type Options struct {
	// LogOutput receives console log records; defaults to os.Stderr.
	LogOutput io.Writer
	// LookupEnv defaults to os.LookupEnv.
	LookupEnv config.LookupEnvFunc
	// Services, if set, replaces service construction (tests).
	Services func(cfg *Config) (*Services, error)
}

// NewApplication creates and initializes a new application instance
func NewApplication(cfg *Config, opts Options) (*Application, error) {
	initLogging(cfg, opts.LogOutput)

	hadesCfg, err := loadConfig(cfg.ConfigPath)
	if err != nil {
		return nil, err
	}
	if cfg.EnvFile != "" {
		hadesCfg.Credentials.EnvFile = cfg.EnvFile
	}
	cfg.HadesConfig = &hadesCfg

	conn, err := config.LoadConnection(hadesCfg.Credentials.EnvFile, opts.LookupEnv)
	if err != nil {
		logging.Error("Bootstrap", err, "Failed to load connection settings")
		return nil, fmt.Errorf("failed to load connection settings: %w", err)
	}
	cfg.Connection = conn
	logging.Debug("Bootstrap", "Connection target %s", conn)

	build := opts.Services
	if build == nil {
		build = InitializeServices
	}
	services, err := build(cfg)
	if err != nil {
		logging.Error("Bootstrap", err, "Failed to initialize services")
		return nil, fmt.Errorf("failed to initialize services: %w", err)
	}

	return &Application{
		config:   cfg,
		services: services,
	}, nil
}

// Config returns the bootstrapped configuration
func (a *Application) Config() *Config {
	return a.config
}

// Services returns the initialized service graph
func (a *Application) Services() *Services {
	return a.services
}

// Close releases resources held by the application
func (a *Application) Close() {
	logging.Close()
}

func initLogging(cfg *Config, output io.Writer) {
	if output == nil {
		output = os.Stderr
	}
	level := logging.LevelWarn
	if cfg.Debug {
		level = logging.LevelDebug
	}
	if cfg.LogFile != "" {
		logging.InitWithFile(level, output, logging.FileOptions{Path: cfg.LogFile})
		return
	}
	logging.InitForCLI(level, output)
}

func loadConfig(path string) (config.HadesConfig, error) {
	if path != "" {
		hadesCfg, err := config.LoadConfigFromPath(path)
		if err != nil {
			logging.Error("Bootstrap", err, "Failed to load hadesctl configuration from path: %s", path)
			return config.HadesConfig{}, fmt.Errorf("failed to load hadesctl configuration from path %s: %w", path, err)
		}
		logging.Debug("Bootstrap", "Loaded configuration from custom path: %s", path)
		return hadesCfg, nil
	}

	hadesCfg, err := config.LoadConfig()
	if err != nil {
		logging.Error("Bootstrap", err, "Failed to load hadesctl configuration")
		return config.HadesConfig{}, fmt.Errorf("failed to load hadesctl configuration: %w", err)
	}
	logging.Debug("Bootstrap", "Loaded configuration using layered approach")
	return hadesCfg, nil
}
