package orchestrator

import (
	"context"
	"fmt"
	"time"

	"hadesctl/internal/config"
	"hadesctl/internal/preflight"
	"hadesctl/internal/probe"
	"hadesctl/internal/services"
)

// fakeController is an in-memory services.Controller that records calls.
type fakeController struct {
	name     string
	state    services.ServiceState
	stateErr error

	// healthSeq is consumed one entry per Health call; the last entry repeats.
	healthSeq   []services.HealthStatus
	healthErrs  []error
	healthCalls int

	startErr    error
	stopErr     error
	teardownErr error
	pullErr     error
	recreateErr error

	calls          []string
	teardownCalled []bool
}

func newFakeController(state services.ServiceState) *fakeController {
	return &fakeController{name: "db", state: state}
}

func (f *fakeController) Name() string { return f.name }

func (f *fakeController) State(context.Context) (services.ServiceState, error) {
	f.calls = append(f.calls, "state")
	if f.stateErr != nil {
		return services.StateUnknown, f.stateErr
	}
	return f.state, nil
}

func (f *fakeController) Start(context.Context) error {
	f.calls = append(f.calls, "start")
	if f.startErr != nil {
		return f.startErr
	}
	f.state = services.StateRunning
	return nil
}

func (f *fakeController) Stop(context.Context) error {
	f.calls = append(f.calls, "stop")
	if f.stopErr != nil {
		return f.stopErr
	}
	f.state = services.StateStopped
	return nil
}

func (f *fakeController) Health(context.Context) (services.HealthStatus, error) {
	i := f.healthCalls
	f.healthCalls++
	if i < len(f.healthErrs) && f.healthErrs[i] != nil {
		return services.HealthPending, f.healthErrs[i]
	}
	if len(f.healthSeq) == 0 {
		return services.HealthHealthy, nil
	}
	if i >= len(f.healthSeq) {
		i = len(f.healthSeq) - 1
	}
	return f.healthSeq[i], nil
}

func (f *fakeController) Teardown(_ context.Context, preserveData bool) error {
	f.calls = append(f.calls, fmt.Sprintf("teardown(preserveData=%v)", preserveData))
	f.teardownCalled = append(f.teardownCalled, preserveData)
	if f.teardownErr != nil {
		return f.teardownErr
	}
	f.state = services.StateStopped
	return nil
}

func (f *fakeController) Pull(context.Context) error {
	f.calls = append(f.calls, "pull")
	return f.pullErr
}

func (f *fakeController) Recreate(context.Context) error {
	f.calls = append(f.calls, "recreate")
	if f.recreateErr != nil {
		return f.recreateErr
	}
	f.state = services.StateRunning
	return nil
}

// mutatingCalls filters out read-only state queries.
func (f *fakeController) mutatingCalls() []string {
	var out []string
	for _, c := range f.calls {
		if c != "state" {
			out = append(out, c)
		}
	}
	return out
}

type fakeProber struct {
	result probe.Result
	calls  int
	gotCfg config.ConnectionConfig
}

func (f *fakeProber) Probe(_ context.Context, conn config.ConnectionConfig) probe.Result {
	f.calls++
	f.gotCfg = conn
	return f.result
}

type fakePrompter struct {
	answer   string
	err      error
	messages []string
}

func (f *fakePrompter) ConfirmToken(_ context.Context, message, token string) (bool, error) {
	f.messages = append(f.messages, message)
	if f.err != nil {
		return false, f.err
	}
	return f.answer == token, nil
}

// fakeClock drives HealthMonitor and the settle delay without real waiting.
type fakeClock struct {
	now    time.Time
	sleeps []time.Duration
}

func newFakeClock() *fakeClock {
	return &fakeClock{now: time.Date(2025, 1, 1, 12, 0, 0, 0, time.UTC)}
}

func (c *fakeClock) Now() time.Time { return c.now }

func (c *fakeClock) Sleep(ctx context.Context, d time.Duration) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	c.sleeps = append(c.sleeps, d)
	c.now = c.now.Add(d)
	return nil
}

func newTestMonitor(clock *fakeClock) *HealthMonitor {
	m := NewHealthMonitor(config.HealthConfig{Attempts: 15, Interval: 2 * time.Second})
	m.sleep = clock.Sleep
	m.now = clock.Now
	return m
}

func passingPreflight(context.Context) preflight.Summary {
	return preflight.Summary{Checks: []preflight.Check{{Name: "docker", OK: true, Detail: "docker found"}}}
}

type harnessOpts struct {
	ctrl      *fakeController
	prober    *fakeProber
	prompter  *fakePrompter
	clock     *fakeClock
	preflight PreflightFunc
	edges     *[]string
}

func newTestOrchestrator(o harnessOpts) *Orchestrator {
	if o.clock == nil {
		o.clock = newFakeClock()
	}
	if o.prober == nil {
		o.prober = &fakeProber{result: probe.Result{OK: true, Message: "Connection successful to postgres@localhost:5432/postgres"}}
	}
	if o.preflight == nil {
		o.preflight = passingPreflight
	}
	cfg := Config{
		Controller:   o.ctrl,
		Preflight:    o.preflight,
		Prober:       o.prober,
		Monitor:      newTestMonitor(o.clock),
		Connection:   config.DefaultConnection(),
		ConfirmToken: "REBUILD",
		SettleDelay:  2 * time.Second,
		Sleep:        o.clock.Sleep,
	}
	if o.prompter != nil {
		cfg.Prompter = o.prompter
	}
	if o.edges != nil {
		edges := o.edges
		cfg.OnStateChange = func(_ string, from, to services.ServiceState) {
			*edges = append(*edges, string(from)+"->"+string(to))
		}
	}
	return New(cfg)
}
