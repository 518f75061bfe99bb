package app

import (
	"context"
	"os/exec"

	"hadesctl/internal/dockerutil"
	"hadesctl/internal/harness"
	"hadesctl/internal/orchestrator"
	"hadesctl/internal/preflight"
	"hadesctl/internal/probe"
	"hadesctl/internal/prompt"
	"hadesctl/internal/services"
	"hadesctl/internal/services/compose"
	"hadesctl/internal/toolchain"
	"hadesctl/pkg/logging"
)

// RuntimeChecker verifies and reports the companion language runtime.
type RuntimeChecker interface {
	preflight.RuntimeVerifier
	harness.RuntimeDetector
}

// Services holds the collaborators shared by every command
type Services struct {
	Controller services.Controller
	Compose    preflight.ComposeResolver
	Engine     preflight.Pinger
	EngineErr  error
	Runtime    RuntimeChecker
	Prober     orchestrator.Prober

	// LookPath defaults to exec.LookPath.
	LookPath func(string) (string, error)

	Config *Config
}

// InitializeServices wires the compose controller, the docker engine client,
// the runtime checker and the probe from the loaded configuration.
func InitializeServices(cfg *Config) (*Services, error) {
	hc := cfg.HadesConfig
	runner := compose.ExecRunner{}

	svc := &Services{
		Runtime:  toolchain.NewChecker(hc.Runtime, exec.LookPath, runner),
		Prober:   probe.New(hc.Probe.Timeout),
		LookPath: exec.LookPath,
		Config:   cfg,
	}

	var inspector compose.HealthInspector
	engine, err := dockerutil.NewEngine()
	if err != nil {
		// Not fatal here: preflight reports it for the commands that need docker.
		logging.Warn("Bootstrap", "Docker client unavailable: %v", err)
		svc.EngineErr = err
	} else {
		svc.Engine = engine
		inspector = engine
	}

	ctrl := compose.NewController(hc.Compose, runner, inspector)
	svc.Controller = ctrl
	svc.Compose = ctrl
	return svc, nil
}

// Preflight runs the host prerequisite checks.
func (s *Services) Preflight(ctx context.Context) preflight.Summary {
	hc := s.Config.HadesConfig
	lookPath := s.LookPath
	if lookPath == nil {
		lookPath = exec.LookPath
	}
	return preflight.Run(ctx, preflight.Deps{
		Runtime:     s.Runtime,
		RuntimeName: hc.Runtime.Name,
		VirtualEnv:  hc.Runtime.VirtualEnv,
		LookPath:    lookPath,
		Compose:     s.Compose,
		Daemon:      s.Engine,
		DaemonErr:   s.EngineErr,
		ComposeFile: hc.Compose.File,
	})
}

// NewOrchestrator builds the lifecycle orchestrator. prompter may be nil for
// commands that never ask for confirmation.
func (s *Services) NewOrchestrator(prompter prompt.Prompter, onChange services.StateChangeCallback) *orchestrator.Orchestrator {
	hc := s.Config.HadesConfig
	return orchestrator.New(orchestrator.Config{
		Controller:    s.Controller,
		Preflight:     s.Preflight,
		Prober:        s.Prober,
		Prompter:      prompter,
		Monitor:       orchestrator.NewHealthMonitor(hc.Health),
		Connection:    s.Config.Connection,
		ConfirmToken:  hc.Rebuild.ConfirmToken,
		SettleDelay:   hc.Health.SettleDelay,
		OnStateChange: onChange,
	})
}

// HarnessEnv builds the environment the built-in test units run against.
func (s *Services) HarnessEnv() *harness.Env {
	hc := s.Config.HadesConfig
	return &harness.Env{
		Controller:     s.Controller,
		Prober:         s.Prober,
		Connection:     s.Config.Connection,
		Runtime:        s.Runtime,
		RuntimeName:    hc.Runtime.Name,
		RuntimeVersion: hc.Runtime.Version,
		Sleep:          harness.SleepContext,
	}
}
