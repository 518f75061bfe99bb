package compose

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"hadesctl/internal/config"
	"hadesctl/internal/services"
)

// fakeRunner answers commands by their full joined command line.
type fakeRunner struct {
	responses map[string]string
	failures  map[string]error
	calls     []string
}

func newFakeRunner() *fakeRunner {
	return &fakeRunner{responses: map[string]string{}, failures: map[string]error{}}
}

func (f *fakeRunner) Run(_ context.Context, name string, args ...string) ([]byte, error) {
	line := strings.Join(append([]string{name}, args...), " ")
	f.calls = append(f.calls, line)
	if err, ok := f.failures[line]; ok {
		return nil, err
	}
	return []byte(f.responses[line]), nil
}

type fakeInspector struct {
	status services.HealthStatus
	err    error
	gotID  string
}

func (f *fakeInspector) ContainerHealth(_ context.Context, id string) (services.HealthStatus, error) {
	f.gotID = id
	return f.status, f.err
}

func testComposeConfig() config.ComposeConfig {
	return config.ComposeConfig{File: "docker-compose.yml", Service: "db", Command: "docker compose"}
}

func TestDetectCommand(t *testing.T) {
	t.Run("prefers docker compose plugin", func(t *testing.T) {
		r := newFakeRunner()
		got, err := DetectCommand(context.Background(), r, "")
		require.NoError(t, err)
		assert.Equal(t, []string{"docker", "compose"}, got)
		assert.Equal(t, []string{"docker compose version"}, r.calls)
	})

	t.Run("falls back to legacy binary", func(t *testing.T) {
		r := newFakeRunner()
		r.failures["docker compose version"] = errors.New("unknown command")
		got, err := DetectCommand(context.Background(), r, "")
		require.NoError(t, err)
		assert.Equal(t, []string{"docker-compose"}, got)
	})

	t.Run("nothing available", func(t *testing.T) {
		r := newFakeRunner()
		r.failures["docker compose version"] = errors.New("unknown command")
		r.failures["docker-compose version"] = errors.New("not found")
		_, err := DetectCommand(context.Background(), r, "")
		assert.ErrorIs(t, err, ErrComposeUnavailable)
	})

	t.Run("override skips probing", func(t *testing.T) {
		r := newFakeRunner()
		got, err := DetectCommand(context.Background(), r, "podman compose")
		require.NoError(t, err)
		assert.Equal(t, []string{"podman", "compose"}, got)
		assert.Empty(t, r.calls)
	})
}

func TestParsePS(t *testing.T) {
	array := `[{"ID":"abc","Service":"db","State":"running","Health":"healthy"}]`
	entries, err := parsePS([]byte(array))
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, "running", entries[0].State)

	ndjson := "{\"ID\":\"abc\",\"Service\":\"db\",\"State\":\"exited\"}\n{\"ID\":\"def\",\"Service\":\"db\",\"State\":\"running\"}\n"
	entries, err = parsePS([]byte(ndjson))
	require.NoError(t, err)
	require.Len(t, entries, 2)
	assert.Equal(t, "def", entries[1].ID)

	entries, err = parsePS([]byte("  \n"))
	require.NoError(t, err)
	assert.Empty(t, entries)

	_, err = parsePS([]byte("not json"))
	assert.Error(t, err)
}

func TestController_State(t *testing.T) {
	const psCmd = "docker compose -f docker-compose.yml ps --all --format json db"

	tests := []struct {
		name   string
		output string
		want   services.ServiceState
	}{
		{"running", `{"ID":"abc","Service":"db","State":"running"}`, services.StateRunning},
		{"exited", `{"ID":"abc","Service":"db","State":"exited"}`, services.StateStopped},
		{"never created", "", services.StateStopped},
		{"other service only", `[{"ID":"x","Service":"cache","State":"running"}]`, services.StateStopped},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := newFakeRunner()
			r.responses[psCmd] = tt.output
			c := NewController(testComposeConfig(), r, nil)

			got, err := c.State(context.Background())
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestController_StateError(t *testing.T) {
	r := newFakeRunner()
	r.failures["docker compose -f docker-compose.yml ps --all --format json db"] = errors.New("daemon down")
	c := NewController(testComposeConfig(), r, nil)

	got, err := c.State(context.Background())
	require.Error(t, err)
	assert.Equal(t, services.StateUnknown, got)
}

func TestController_Commands(t *testing.T) {
	tests := []struct {
		name string
		run  func(c *Controller) error
		want string
	}{
		{"start", func(c *Controller) error { return c.Start(context.Background()) }, "docker compose -f docker-compose.yml up -d db"},
		{"stop", func(c *Controller) error { return c.Stop(context.Background()) }, "docker compose -f docker-compose.yml stop db"},
		{"pull", func(c *Controller) error { return c.Pull(context.Background()) }, "docker compose -f docker-compose.yml pull db"},
		{"recreate", func(c *Controller) error { return c.Recreate(context.Background()) }, "docker compose -f docker-compose.yml up -d --force-recreate db"},
		{"teardown keeping data", func(c *Controller) error { return c.Teardown(context.Background(), true) }, "docker compose -f docker-compose.yml down --rmi all --remove-orphans"},
		{"teardown with volumes", func(c *Controller) error { return c.Teardown(context.Background(), false) }, "docker compose -f docker-compose.yml down --rmi all --remove-orphans --volumes"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := newFakeRunner()
			c := NewController(testComposeConfig(), r, nil)
			require.NoError(t, tt.run(c))
			assert.Equal(t, []string{tt.want}, r.calls)
		})
	}
}

func TestController_LegacyComposeArgs(t *testing.T) {
	r := newFakeRunner()
	r.failures["docker compose version"] = errors.New("unknown command")
	cfg := testComposeConfig()
	cfg.Command = ""
	c := NewController(cfg, r, nil)

	require.NoError(t, c.Start(context.Background()))
	require.NoError(t, c.Stop(context.Background()))
	assert.Equal(t, []string{
		"docker compose version",
		"docker-compose version",
		"docker-compose -f docker-compose.yml up -d db",
		"docker-compose -f docker-compose.yml stop db",
	}, r.calls)
}

func TestController_StartFailureWrapsStderr(t *testing.T) {
	r := newFakeRunner()
	r.failures["docker compose -f docker-compose.yml up -d db"] = &CommandError{
		Command: "docker compose -f docker-compose.yml up -d db",
		Stderr:  "port is already allocated",
		Err:     errors.New("exit status 1"),
	}
	c := NewController(testComposeConfig(), r, nil)

	err := c.Start(context.Background())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "port is already allocated")
	var cmdErr *CommandError
	assert.ErrorAs(t, err, &cmdErr)
}

func TestController_Health(t *testing.T) {
	const idCmd = "docker compose -f docker-compose.yml ps -q db"

	t.Run("no container", func(t *testing.T) {
		r := newFakeRunner()
		c := NewController(testComposeConfig(), r, &fakeInspector{})
		_, err := c.Health(context.Background())
		assert.ErrorIs(t, err, services.ErrNoHandle)
	})

	t.Run("inspects first container id", func(t *testing.T) {
		r := newFakeRunner()
		r.responses[idCmd] = "3f2a9c\n"
		insp := &fakeInspector{status: services.HealthHealthy}
		c := NewController(testComposeConfig(), r, insp)

		got, err := c.Health(context.Background())
		require.NoError(t, err)
		assert.Equal(t, services.HealthHealthy, got)
		assert.Equal(t, "3f2a9c", insp.gotID)
	})

	t.Run("inspector error passes through", func(t *testing.T) {
		r := newFakeRunner()
		r.responses[idCmd] = "3f2a9c"
		insp := &fakeInspector{err: errors.New("timeout")}
		c := NewController(testComposeConfig(), r, insp)

		_, err := c.Health(context.Background())
		assert.EqualError(t, err, "timeout")
	})
}

func TestCommandError(t *testing.T) {
	inner := errors.New("exit status 1")
	err := &CommandError{Command: "docker compose up", Stderr: "boom", Err: inner}
	assert.Equal(t, "docker compose up: exit status 1: boom", err.Error())
	assert.ErrorIs(t, err, inner)

	err = &CommandError{Command: "docker compose up", Err: inner}
	assert.Equal(t, "docker compose up: exit status 1", err.Error())
}
