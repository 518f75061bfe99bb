package compose

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"sync"

	"hadesctl/internal/config"
	"hadesctl/internal/services"
	"hadesctl/pkg/logging"
)

// HealthInspector reports the health of a single container.
type HealthInspector interface {
	ContainerHealth(ctx context.Context, containerID string) (services.HealthStatus, error)
}

// Controller drives one compose service through the compose CLI, and asks the
// Docker daemon for container health. It holds no state of its own besides the
// resolved compose command.
type Controller struct {
	cfg       config.ComposeConfig
	runner    CommandRunner
	inspector HealthInspector

	mu   sync.Mutex
	base []string
}

var _ services.Controller = (*Controller)(nil)

// NewController creates a Controller for cfg.Service in cfg.File.
func NewController(cfg config.ComposeConfig, runner CommandRunner, inspector HealthInspector) *Controller {
	if runner == nil {
		runner = ExecRunner{}
	}
	return &Controller{cfg: cfg, runner: runner, inspector: inspector}
}

// Name implements services.Controller.
func (c *Controller) Name() string { return c.cfg.Service }

// ComposeFile is the compose file the controller passes with -f.
func (c *Controller) ComposeFile() string { return c.cfg.File }

// ComposeCommand resolves (once) and returns the compose invocation.
func (c *Controller) ComposeCommand(ctx context.Context) ([]string, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.base != nil {
		return c.base, nil
	}
	base, err := DetectCommand(ctx, c.runner, c.cfg.Command)
	if err != nil {
		return nil, err
	}
	logging.Debug("Compose", "Using compose command %q", strings.Join(base, " "))
	c.base = base
	return base, nil
}

func (c *Controller) compose(ctx context.Context, args ...string) ([]byte, error) {
	base, err := c.ComposeCommand(ctx)
	if err != nil {
		return nil, err
	}
	full := append(append([]string{}, base[1:]...), "-f", c.cfg.File)
	full = append(full, args...)
	return c.runner.Run(ctx, base[0], full...)
}

// psEntry is the subset of `compose ps --format json` output we read.
type psEntry struct {
	ID      string `json:"ID"`
	Service string `json:"Service"`
	State   string `json:"State"`
	Health  string `json:"Health"`
}

// parsePS accepts both the JSON array emitted by older compose v2 releases and
// the newline-delimited objects emitted by newer ones.
func parsePS(out []byte) ([]psEntry, error) {
	trimmed := bytes.TrimSpace(out)
	if len(trimmed) == 0 {
		return nil, nil
	}
	if trimmed[0] == '[' {
		var entries []psEntry
		if err := json.Unmarshal(trimmed, &entries); err != nil {
			return nil, fmt.Errorf("parse compose ps output: %w", err)
		}
		return entries, nil
	}

	var entries []psEntry
	for _, line := range bytes.Split(trimmed, []byte("\n")) {
		line = bytes.TrimSpace(line)
		if len(line) == 0 {
			continue
		}
		var e psEntry
		if err := json.Unmarshal(line, &e); err != nil {
			return nil, fmt.Errorf("parse compose ps output: %w", err)
		}
		entries = append(entries, e)
	}
	return entries, nil
}

// State implements services.Controller.
func (c *Controller) State(ctx context.Context) (services.ServiceState, error) {
	out, err := c.compose(ctx, "ps", "--all", "--format", "json", c.cfg.Service)
	if err != nil {
		return services.StateUnknown, fmt.Errorf("query state of %s: %w", c.cfg.Service, err)
	}
	entries, err := parsePS(out)
	if err != nil {
		return services.StateUnknown, err
	}
	for _, e := range entries {
		if e.Service != "" && e.Service != c.cfg.Service {
			continue
		}
		if strings.EqualFold(e.State, "running") {
			return services.StateRunning, nil
		}
	}
	return services.StateStopped, nil
}

// Start implements services.Controller.
func (c *Controller) Start(ctx context.Context) error {
	if _, err := c.compose(ctx, "up", "-d", c.cfg.Service); err != nil {
		return fmt.Errorf("start %s: %w", c.cfg.Service, err)
	}
	return nil
}

// Stop implements services.Controller.
func (c *Controller) Stop(ctx context.Context) error {
	if _, err := c.compose(ctx, "stop", c.cfg.Service); err != nil {
		return fmt.Errorf("stop %s: %w", c.cfg.Service, err)
	}
	return nil
}

// Health implements services.Controller.
func (c *Controller) Health(ctx context.Context) (services.HealthStatus, error) {
	out, err := c.compose(ctx, "ps", "-q", c.cfg.Service)
	if err != nil {
		return services.HealthPending, fmt.Errorf("resolve container for %s: %w", c.cfg.Service, err)
	}
	id := firstLine(out)
	if id == "" {
		return services.HealthPending, services.ErrNoHandle
	}
	if c.inspector == nil {
		return services.HealthPending, fmt.Errorf("no health inspector configured")
	}
	return c.inspector.ContainerHealth(ctx, id)
}

// Teardown implements services.Controller.
func (c *Controller) Teardown(ctx context.Context, preserveData bool) error {
	args := []string{"down", "--rmi", "all", "--remove-orphans"}
	if !preserveData {
		args = append(args, "--volumes")
	}
	if _, err := c.compose(ctx, args...); err != nil {
		return fmt.Errorf("tear down %s: %w", c.cfg.Service, err)
	}
	return nil
}

// Pull implements services.Controller.
func (c *Controller) Pull(ctx context.Context) error {
	if _, err := c.compose(ctx, "pull", c.cfg.Service); err != nil {
		return fmt.Errorf("pull image for %s: %w", c.cfg.Service, err)
	}
	return nil
}

// Recreate implements services.Controller.
func (c *Controller) Recreate(ctx context.Context) error {
	if _, err := c.compose(ctx, "up", "-d", "--force-recreate", c.cfg.Service); err != nil {
		return fmt.Errorf("recreate %s: %w", c.cfg.Service, err)
	}
	return nil
}

func firstLine(out []byte) string {
	for _, line := range strings.Split(string(out), "\n") {
		if s := strings.TrimSpace(line); s != "" {
			return s
		}
	}
	return ""
}
