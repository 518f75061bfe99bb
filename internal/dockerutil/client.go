// Package dockerutil provides a shared Docker Engine client with automatic
// socket discovery for common Docker Desktop installations.
package dockerutil

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"github.com/docker/docker/client"
	"github.com/docker/docker/errdefs"

	"hadesctl/internal/services"
)

var (
	sharedClient *client.Client
	clientOnce   sync.Once
	clientErr    error
)

// Client returns a process-wide shared Docker client. Callers must NOT call
// Close on the returned client.
func Client() (*client.Client, error) {
	clientOnce.Do(func() {
		sharedClient, clientErr = newClient()
	})
	return sharedClient, clientErr
}

// newClient creates a Docker client. If DOCKER_HOST is not set, it probes
// common socket paths so the SDK finds Docker Desktop and Colima without
// extra configuration.
func newClient() (*client.Client, error) {
	opts := []client.Opt{client.FromEnv, client.WithAPIVersionNegotiation()}

	if os.Getenv("DOCKER_HOST") == "" {
		if sock := findSocket(); sock != "" {
			opts = append(opts, client.WithHost("unix://"+sock))
		}
	}

	return client.NewClientWithOpts(opts...)
}

// findSocket returns the first existing Docker socket path, or "".
func findSocket() string {
	home, err := os.UserHomeDir()
	if err != nil {
		home = ""
	}

	candidates := []string{
		"/var/run/docker.sock",
	}
	if home != "" {
		candidates = append(candidates,
			filepath.Join(home, ".docker", "run", "docker.sock"),
			filepath.Join(home, ".colima", "default", "docker.sock"),
		)
	}

	for _, p := range candidates {
		if _, err := os.Stat(p); err == nil {
			return p
		}
	}
	return ""
}

// Engine answers the two questions hadesctl asks the Docker daemon directly:
// is it reachable, and how healthy is a given container.
type Engine struct {
	api engineAPI
}

func newEngine(api engineAPI) *Engine {
	return &Engine{api: api}
}

// engineAPI is the subset of *client.Client used by Engine.
type engineAPI interface {
	Ping(ctx context.Context) error
	ContainerHealth(ctx context.Context, containerID string) (running bool, health string, err error)
}

// NewEngine wraps the shared client.
func NewEngine() (*Engine, error) {
	cli, err := Client()
	if err != nil {
		return nil, fmt.Errorf("docker client: %w", err)
	}
	return newEngine(sdkAPI{cli: cli}), nil
}

// Ping reports whether the daemon answers.
func (e *Engine) Ping(ctx context.Context) error {
	if err := e.api.Ping(ctx); err != nil {
		return fmt.Errorf("docker daemon not reachable: %w", err)
	}
	return nil
}

// ContainerHealth maps the container's health check state onto
// services.HealthStatus. A running container without a health check counts as
// healthy; a container that no longer exists yields services.ErrNoHandle.
func (e *Engine) ContainerHealth(ctx context.Context, containerID string) (services.HealthStatus, error) {
	running, health, err := e.api.ContainerHealth(ctx, containerID)
	if err != nil {
		if errdefs.IsNotFound(err) {
			return services.HealthPending, services.ErrNoHandle
		}
		return services.HealthPending, fmt.Errorf("inspect container %s: %w", containerID, err)
	}
	return mapHealth(running, health), nil
}

func mapHealth(running bool, health string) services.HealthStatus {
	switch health {
	case "healthy":
		return services.HealthHealthy
	case "unhealthy":
		return services.HealthUnhealthy
	case "", "none":
		if running {
			return services.HealthHealthy
		}
		return services.HealthPending
	default:
		// "starting"
		return services.HealthPending
	}
}
