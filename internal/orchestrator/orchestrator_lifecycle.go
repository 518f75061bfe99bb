package orchestrator

import (
	"context"
	"fmt"
	"time"

	"hadesctl/internal/probe"
	"hadesctl/internal/services"
	"hadesctl/pkg/logging"
)

// VerifyResult is the health and connectivity outcome after bringing the
// service up.
type VerifyResult struct {
	Health HealthCheckResult
	// Probe is nil when the connectivity check was skipped.
	Probe *probe.Result
}

// StartResult describes what Start did.
type StartResult struct {
	Service        string
	AlreadyRunning bool
	Verify         VerifyResult
	Warnings       []string
}

// StopResult describes what Stop did.
type StopResult struct {
	Service        string
	AlreadyStopped bool
}

// RebuildResult describes what Rebuild did.
type RebuildResult struct {
	Service  string
	Aborted  bool
	Verify   VerifyResult
	Warnings []string
}

// Start brings the service up if it is not already running, waits for it to
// become healthy and checks connectivity.
func (o *Orchestrator) Start(ctx context.Context) (StartResult, error) {
	res := StartResult{Service: o.ctrl.Name()}

	warnings, err := o.checkPrerequisites(ctx, "start")
	res.Warnings = append(res.Warnings, warnings...)
	if err != nil {
		return res, err
	}

	state, _ := o.currentState(ctx)
	if state == services.StateRunning {
		logging.Info("Orchestrator", "%s is already running", res.Service)
		res.AlreadyRunning = true
		return res, nil
	}

	o.transition(state, services.StateStarting)
	if err := o.ctrl.Start(ctx); err != nil {
		o.transition(services.StateStarting, services.StateStopped)
		return res, fmt.Errorf("failed to start %s: %w", res.Service, err)
	}

	verify, warnings, err := o.verify(ctx)
	res.Verify = verify
	res.Warnings = append(res.Warnings, warnings...)
	return res, err
}

// verify waits for health and, if healthy, runs the connectivity probe after
// the settle delay. Unhealthy or timed-out services produce a warning, not an
// error.
func (o *Orchestrator) verify(ctx context.Context) (VerifyResult, []string, error) {
	var warnings []string

	health, err := o.monitor.Wait(ctx, o.ctrl)
	if err != nil {
		return VerifyResult{Health: health}, warnings, fmt.Errorf("waiting for %s: %w", o.ctrl.Name(), err)
	}
	if health.Status != HealthOutcomeProbeError {
		o.transition(services.StateStarting, services.StateRunning)
	}

	res := VerifyResult{Health: health}
	if health.Status != HealthOutcomeHealthy {
		warnings = append(warnings, fmt.Sprintf("%s; skipping connectivity check (the service may still become usable)", health.Message))
		return res, warnings, nil
	}

	if err := o.sleep(ctx, o.settleDelay); err != nil {
		return res, warnings, fmt.Errorf("waiting for %s to settle: %w", o.ctrl.Name(), err)
	}

	if o.prober != nil {
		result := o.prober.Probe(ctx, o.conn)
		res.Probe = &result
		if !result.OK {
			warnings = append(warnings, result.Message)
		}
	}
	return res, warnings, nil
}

// Stop stops the service if it is running. Data is never removed.
func (o *Orchestrator) Stop(ctx context.Context) (StopResult, error) {
	res := StopResult{Service: o.ctrl.Name()}

	state, err := o.currentState(ctx)
	if err != nil {
		return res, fmt.Errorf("cannot stop %s: %w", res.Service, err)
	}
	if state != services.StateRunning {
		logging.Info("Orchestrator", "%s is already stopped", res.Service)
		res.AlreadyStopped = true
		return res, nil
	}

	o.transition(services.StateRunning, services.StateStopping)
	if err := o.ctrl.Stop(ctx); err != nil {
		return res, fmt.Errorf("failed to stop %s: %w", res.Service, err)
	}
	o.transition(services.StateStopping, services.StateStopped)
	return res, nil
}

const cleanupTimeout = 30 * time.Second

// RebuildWarning is shown before asking for the confirmation token.
const RebuildWarning = "This removes the %s containers and images, pulls the image again and recreates the service.\nThe data volume is preserved."

// Rebuild tears the service down (keeping its data volume), pulls its image
// and recreates it, after an exact typed confirmation.
func (o *Orchestrator) Rebuild(ctx context.Context) (RebuildResult, error) {
	res := RebuildResult{Service: o.ctrl.Name()}

	warnings, err := o.checkPrerequisites(ctx, "rebuild")
	res.Warnings = append(res.Warnings, warnings...)
	if err != nil {
		return res, err
	}

	if o.prompter == nil {
		res.Aborted = true
		return res, nil
	}
	ok, err := o.prompter.ConfirmToken(ctx, fmt.Sprintf(RebuildWarning, res.Service), o.confirmToken)
	if err != nil {
		return res, fmt.Errorf("confirmation: %w", err)
	}
	if !ok {
		logging.Info("Orchestrator", "Rebuild of %s aborted by operator", res.Service)
		res.Aborted = true
		return res, nil
	}

	state, _ := o.currentState(ctx)
	o.transition(state, services.StateRebuilding)

	steps := []struct {
		stage string
		run   func(context.Context) error
	}{
		{"teardown", func(ctx context.Context) error { return o.ctrl.Teardown(ctx, true) }},
		{"pull", o.ctrl.Pull},
		{"recreate", o.ctrl.Recreate},
	}
	for _, step := range steps {
		logging.Info("Orchestrator", "Rebuild %s: %s", res.Service, step.stage)
		if err := step.run(ctx); err != nil {
			return res, o.abandonRebuild(ctx, step.stage, err)
		}
	}

	o.transition(services.StateRebuilding, services.StateStarting)
	verify, warnings, err := o.verify(ctx)
	res.Verify = verify
	res.Warnings = append(res.Warnings, warnings...)
	return res, err
}

// abandonRebuild stops whatever is left so the service ends Stopped.
func (o *Orchestrator) abandonRebuild(ctx context.Context, stage string, cause error) error {
	logging.Error("Orchestrator", cause, "Rebuild of %s failed during %s", o.ctrl.Name(), stage)

	// Runs even when ctx was cancelled by an interrupt.
	stopCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), cleanupTimeout)
	defer cancel()
	if err := o.ctrl.Stop(stopCtx); err != nil {
		logging.Warn("Orchestrator", "Best-effort stop of %s after failed rebuild: %v", o.ctrl.Name(), err)
	}
	o.transition(services.StateRebuilding, services.StateStopped)
	return &RebuildError{Stage: stage, Err: cause}
}
