package orchestrator

import (
	"context"
	"errors"
	"fmt"
	"time"

	"hadesctl/internal/config"
	"hadesctl/internal/services"
	"hadesctl/pkg/logging"
)

// HealthOutcome is the terminal result of a health wait.
type HealthOutcome string

const (
	HealthOutcomeHealthy    HealthOutcome = "healthy"
	HealthOutcomeUnhealthy  HealthOutcome = "unhealthy"
	HealthOutcomeTimedOut   HealthOutcome = "timed-out"
	HealthOutcomeProbeError HealthOutcome = "probe-error"
)

// HealthCheckResult is produced once per wait and never persisted.
type HealthCheckResult struct {
	Status   HealthOutcome
	Attempts int
	Elapsed  time.Duration
	Message  string
}

// HealthSource is the part of services.Controller the monitor needs.
type HealthSource interface {
	Name() string
	Health(ctx context.Context) (services.HealthStatus, error)
}

// SleepFunc blocks for d or until ctx is done.
type SleepFunc func(ctx context.Context, d time.Duration) error

// HealthMonitor polls a service's health with a fixed attempt budget.
type HealthMonitor struct {
	attempts int
	interval time.Duration
	sleep    SleepFunc
	now      func() time.Time
}

// NewHealthMonitor builds a monitor from cfg. Non-positive values fall back
// to the defaults.
func NewHealthMonitor(cfg config.HealthConfig) *HealthMonitor {
	attempts, interval := cfg.Attempts, cfg.Interval
	if attempts <= 0 {
		attempts = config.DefaultHealthAttempts
	}
	if interval <= 0 {
		interval = config.DefaultHealthInterval
	}
	return &HealthMonitor{
		attempts: attempts,
		interval: interval,
		sleep:    sleepContext,
		now:      time.Now,
	}
}

// Budget is the total time a wait can take.
func (m *HealthMonitor) Budget() time.Duration {
	return time.Duration(m.attempts) * m.interval
}

// Wait polls src until it reports healthy or unhealthy, or the budget runs
// out. A missing container ends the wait immediately as a probe error. The
// returned error is non-nil only when ctx ended the wait.
func (m *HealthMonitor) Wait(ctx context.Context, src HealthSource) (HealthCheckResult, error) {
	start := m.now()
	name := src.Name()

	for attempt := 1; attempt <= m.attempts; attempt++ {
		status, err := src.Health(ctx)
		switch {
		case errors.Is(err, services.ErrNoHandle):
			return HealthCheckResult{
				Status:   HealthOutcomeProbeError,
				Attempts: attempt - 1,
				Elapsed:  m.now().Sub(start),
				Message:  fmt.Sprintf("no container found for %s", name),
			}, nil
		case err != nil:
			if ctx.Err() != nil {
				return m.interrupted(start, attempt), ctx.Err()
			}
			logging.Debug("HealthMonitor", "Attempt %d/%d for %s failed: %v", attempt, m.attempts, name, err)
		case status == services.HealthHealthy:
			return HealthCheckResult{
				Status:   HealthOutcomeHealthy,
				Attempts: attempt,
				Elapsed:  m.now().Sub(start),
				Message:  fmt.Sprintf("%s is healthy", name),
			}, nil
		case status == services.HealthUnhealthy:
			return HealthCheckResult{
				Status:   HealthOutcomeUnhealthy,
				Attempts: attempt,
				Elapsed:  m.now().Sub(start),
				Message:  fmt.Sprintf("%s reported unhealthy", name),
			}, nil
		default:
			logging.Debug("HealthMonitor", "Attempt %d/%d: %s is %s", attempt, m.attempts, name, status)
		}

		if err := m.sleep(ctx, m.interval); err != nil {
			return m.interrupted(start, attempt), err
		}
	}

	return HealthCheckResult{
		Status:   HealthOutcomeTimedOut,
		Attempts: m.attempts,
		Elapsed:  m.now().Sub(start),
		Message:  fmt.Sprintf("health check timed out after %d seconds (%d attempts)", int(m.Budget().Seconds()), m.attempts),
	}, nil
}

func (m *HealthMonitor) interrupted(start time.Time, attempts int) HealthCheckResult {
	return HealthCheckResult{
		Status:   HealthOutcomeProbeError,
		Attempts: attempts,
		Elapsed:  m.now().Sub(start),
		Message:  "health check interrupted",
	}
}

func sleepContext(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return ctx.Err()
	}
	timer := time.NewTimer(d)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}
