package harness

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"hadesctl/internal/config"
	"hadesctl/internal/probe"
	"hadesctl/internal/services"
	"hadesctl/internal/toolchain"
)

// fakeController simulates the managed service with function hooks.
type fakeController struct {
	state    services.ServiceState
	startFn  func() error
	stopFn   func() error
	stateErr error
	calls    []string
}

func (f *fakeController) Name() string { return "db" }

func (f *fakeController) State(context.Context) (services.ServiceState, error) {
	f.calls = append(f.calls, "state")
	return f.state, f.stateErr
}

func (f *fakeController) Start(context.Context) error {
	f.calls = append(f.calls, "start")
	if f.startFn != nil {
		return f.startFn()
	}
	f.state = services.StateRunning
	return nil
}

func (f *fakeController) Stop(context.Context) error {
	f.calls = append(f.calls, "stop")
	if f.stopFn != nil {
		return f.stopFn()
	}
	f.state = services.StateStopped
	return nil
}

func (f *fakeController) Health(context.Context) (services.HealthStatus, error) {
	return services.HealthHealthy, nil
}
func (f *fakeController) Teardown(context.Context, bool) error { return nil }
func (f *fakeController) Pull(context.Context) error           { return nil }
func (f *fakeController) Recreate(context.Context) error       { return nil }

type fakeProber struct {
	result probe.Result
	calls  int
}

func (f *fakeProber) Probe(context.Context, config.ConnectionConfig) probe.Result {
	f.calls++
	return f.result
}

type fakeRuntime struct {
	rt  toolchain.Runtime
	err error
}

func (f fakeRuntime) Detect(context.Context) (toolchain.Runtime, error) { return f.rt, f.err }

type recordedSleeps struct{ d []time.Duration }

func (r *recordedSleeps) Sleep(ctx context.Context, d time.Duration) error {
	r.d = append(r.d, d)
	return ctx.Err()
}

func newTestEnv(ctrl *fakeController) (*Env, *recordedSleeps, *fakeProber) {
	sleeps := &recordedSleeps{}
	prober := &fakeProber{result: probe.Result{OK: true, Message: "Connection successful to hades@localhost:5432/hades_db"}}
	conn := config.DefaultConnection()
	conn.User = "hades"
	conn.Password = "secret"
	return &Env{
		Controller:     ctrl,
		Prober:         prober,
		Connection:     conn,
		Runtime:        fakeRuntime{rt: toolchain.Runtime{Version: "3.12.3"}},
		RuntimeName:    "Python",
		RuntimeVersion: "3.12",
		Sleep:          sleeps.Sleep,
	}, sleeps, prober
}

func TestContainerDown(t *testing.T) {
	ctrl := &fakeController{state: services.StateStopped}
	env, sleeps, _ := newTestEnv(ctrl)

	ok, msg := containerDown(context.Background(), env)
	assert.True(t, ok)
	assert.Equal(t, "Container successfully brought down", msg)
	assert.Equal(t, []string{"start", "stop", "state"}, ctrl.calls)
	assert.Equal(t, []time.Duration{3 * time.Second, 2 * time.Second}, sleeps.d)
}

func TestContainerDown_StillRunning(t *testing.T) {
	ctrl := &fakeController{}
	ctrl.stopFn = func() error { return nil }
	env, _, _ := newTestEnv(ctrl)

	ok, msg := containerDown(context.Background(), env)
	assert.False(t, ok)
	assert.Equal(t, "Container is still running after stop command", msg)
}

func TestContainerDown_StopFails(t *testing.T) {
	ctrl := &fakeController{stopFn: func() error { return errors.New("exit status 1") }}
	env, _, _ := newTestEnv(ctrl)

	ok, msg := containerDown(context.Background(), env)
	assert.False(t, ok)
	assert.Equal(t, "Failed to stop container: exit status 1", msg)
}

func TestContainerUp(t *testing.T) {
	ctrl := &fakeController{state: services.StateRunning}
	env, sleeps, _ := newTestEnv(ctrl)

	ok, msg := containerUp(context.Background(), env)
	assert.True(t, ok)
	assert.Equal(t, "Container successfully brought up and is running", msg)
	assert.Equal(t, []string{"stop", "start", "state"}, ctrl.calls)
	assert.Equal(t, []time.Duration{2 * time.Second, 3 * time.Second}, sleeps.d)
}

func TestContainerUp_NotRunningAfterStart(t *testing.T) {
	ctrl := &fakeController{startFn: func() error { return nil }}
	env, _, _ := newTestEnv(ctrl)

	ok, msg := containerUp(context.Background(), env)
	assert.False(t, ok)
	assert.Equal(t, "Container started but not running", msg)
}

func TestDatabaseConnection(t *testing.T) {
	t.Run("already running", func(t *testing.T) {
		ctrl := &fakeController{state: services.StateRunning}
		env, sleeps, prober := newTestEnv(ctrl)

		ok, msg := databaseConnection(context.Background(), env)
		assert.True(t, ok)
		assert.Equal(t, "Connection successful to hades@localhost:5432/hades_db", msg)
		assert.Equal(t, []string{"state"}, ctrl.calls)
		assert.Empty(t, sleeps.d)
		assert.Equal(t, 1, prober.calls)
	})

	t.Run("starts stopped service first", func(t *testing.T) {
		ctrl := &fakeController{state: services.StateStopped}
		env, sleeps, _ := newTestEnv(ctrl)

		ok, _ := databaseConnection(context.Background(), env)
		assert.True(t, ok)
		assert.Equal(t, []string{"state", "start"}, ctrl.calls)
		assert.Equal(t, []time.Duration{5 * time.Second}, sleeps.d)
	})

	t.Run("requires password", func(t *testing.T) {
		ctrl := &fakeController{state: services.StateRunning}
		env, _, prober := newTestEnv(ctrl)
		env.Connection.Password = `""`

		ok, msg := databaseConnection(context.Background(), env)
		assert.False(t, ok)
		assert.Equal(t, "POSTGRES_PASSWORD environment variable is not set or is empty", msg)
		assert.Equal(t, 0, prober.calls)
	})

	t.Run("start failure", func(t *testing.T) {
		ctrl := &fakeController{state: services.StateStopped, startFn: func() error { return errors.New("no such service") }}
		env, _, _ := newTestEnv(ctrl)

		ok, msg := databaseConnection(context.Background(), env)
		assert.False(t, ok)
		assert.Equal(t, "Cannot test connection: Failed to start container: no such service", msg)
	})

	t.Run("probe failure", func(t *testing.T) {
		ctrl := &fakeController{state: services.StateRunning}
		env, _, prober := newTestEnv(ctrl)
		prober.result = probe.Result{OK: false, Message: "Connection failed: refused"}

		ok, msg := databaseConnection(context.Background(), env)
		assert.False(t, ok)
		assert.Equal(t, "Connection failed: refused", msg)
	})
}

func TestRuntimeVersion(t *testing.T) {
	env, _, _ := newTestEnv(&fakeController{})

	ok, msg := runtimeVersion(context.Background(), env)
	assert.True(t, ok)
	assert.Equal(t, "Python version is correct: 3.12.3", msg)

	env.Runtime = fakeRuntime{rt: toolchain.Runtime{Version: "3.11.9"}}
	ok, msg = runtimeVersion(context.Background(), env)
	assert.False(t, ok)
	assert.Equal(t, "Python version is 3.11.9, expected 3.12", msg)

	env.Runtime = fakeRuntime{err: errors.New("Python not found on PATH (python3.12)")}
	ok, msg = runtimeVersion(context.Background(), env)
	assert.False(t, ok)
	assert.Equal(t, "Python not found on PATH (python3.12)", msg)
}

func TestUnits_Interrupted(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	env, _, _ := newTestEnv(&fakeController{})

	ok, msg := containerUp(ctx, env)
	assert.False(t, ok)
	assert.Contains(t, msg, "Interrupted")
}
