package orchestrator

import (
	"context"
	"time"

	"hadesctl/internal/config"
	"hadesctl/internal/preflight"
	"hadesctl/internal/probe"
	"hadesctl/internal/prompt"
	"hadesctl/internal/services"
	"hadesctl/pkg/logging"
)

// Prober runs a single connectivity check.
type Prober interface {
	Probe(ctx context.Context, conn config.ConnectionConfig) probe.Result
}

// PreflightFunc runs the host prerequisite checks.
type PreflightFunc func(ctx context.Context) preflight.Summary

// Config holds the collaborators and settings of an Orchestrator.
type Config struct {
	Controller   services.Controller
	Preflight    PreflightFunc
	Prober       Prober
	Prompter     prompt.Prompter
	Monitor      *HealthMonitor
	Connection   config.ConnectionConfig
	ConfirmToken string
	SettleDelay  time.Duration

	// Sleep is used for the settle delay; defaults to a context-aware timer.
	Sleep SleepFunc

	// OnStateChange, if set, is called for every state edge the orchestrator drives.
	OnStateChange services.StateChangeCallback
}

// Orchestrator sequences prerequisite checks, service transitions and
// health/connectivity verification for one managed service.
type Orchestrator struct {
	ctrl         services.Controller
	preflight    PreflightFunc
	prober       Prober
	prompter     prompt.Prompter
	monitor      *HealthMonitor
	conn         config.ConnectionConfig
	confirmToken string
	settleDelay  time.Duration
	sleep        SleepFunc
	onChange     services.StateChangeCallback
}

// New creates an orchestrator. It performs no I/O.
func New(cfg Config) *Orchestrator {
	o := &Orchestrator{
		ctrl:         cfg.Controller,
		preflight:    cfg.Preflight,
		prober:       cfg.Prober,
		prompter:     cfg.Prompter,
		monitor:      cfg.Monitor,
		conn:         cfg.Connection,
		confirmToken: cfg.ConfirmToken,
		settleDelay:  cfg.SettleDelay,
		sleep:        cfg.Sleep,
		onChange:     cfg.OnStateChange,
	}
	if o.monitor == nil {
		o.monitor = NewHealthMonitor(config.HealthConfig{})
	}
	if o.sleep == nil {
		o.sleep = sleepContext
	}
	if o.confirmToken == "" {
		o.confirmToken = config.DefaultConfirmToken
	}
	if o.preflight == nil {
		o.preflight = func(context.Context) preflight.Summary { return preflight.Summary{} }
	}
	return o
}

// ServiceName is the managed service identifier.
func (o *Orchestrator) ServiceName() string {
	return o.ctrl.Name()
}

// Connection returns the active connection parameters.
func (o *Orchestrator) Connection() config.ConnectionConfig {
	return o.conn
}

func (o *Orchestrator) transition(from, to services.ServiceState) {
	logging.Debug("Orchestrator", "%s: %s -> %s", o.ctrl.Name(), from, to)
	if o.onChange != nil {
		o.onChange(o.ctrl.Name(), from, to)
	}
}

// checkPrerequisites runs preflight and converts failures into a
// PreconditionError. Advisory warnings are returned for the caller to report.
func (o *Orchestrator) checkPrerequisites(ctx context.Context, command string) ([]string, error) {
	summary := o.preflight(ctx)
	var warnings []string
	for _, w := range summary.Warnings() {
		warnings = append(warnings, w.String())
	}
	if failed := summary.Failed(); len(failed) > 0 {
		return warnings, &PreconditionError{Command: command, Failed: failed}
	}
	return warnings, nil
}

// currentState asks the controller, falling back to Unknown.
func (o *Orchestrator) currentState(ctx context.Context) (services.ServiceState, error) {
	state, err := o.ctrl.State(ctx)
	if err != nil {
		logging.Warn("Orchestrator", "Could not determine state of %s: %v", o.ctrl.Name(), err)
		return services.StateUnknown, err
	}
	return state, nil
}
