package services

import (
	"context"
	"errors"
)

// ServiceState represents the current run state of the managed service
type ServiceState string

const (
	StateUnknown    ServiceState = "Unknown"
	StateStopped    ServiceState = "Stopped"
	StateStarting   ServiceState = "Starting"
	StateRunning    ServiceState = "Running"
	StateStopping   ServiceState = "Stopping"
	StateRebuilding ServiceState = "Rebuilding"
)

// HealthStatus is the point-in-time health reported by the container runtime
type HealthStatus string

const (
	HealthPending   HealthStatus = "pending"
	HealthHealthy   HealthStatus = "healthy"
	HealthUnhealthy HealthStatus = "unhealthy"
)

// IsTerminal reports whether polling can stop on this status.
func (h HealthStatus) IsTerminal() bool {
	return h == HealthHealthy || h == HealthUnhealthy
}

// ErrNoHandle is returned by Controller.Health when no running container can
// be resolved for the service (it was never started or has been removed).
var ErrNoHandle = errors.New("no running container for service")

// Controller is the narrow surface the orchestrator and the test harness use
// to drive the managed service. Implementations ask the container runtime on
// every call; nothing is cached.
type Controller interface {
	// Name is the fixed service identifier, e.g. "db".
	Name() string

	// State reports whether the service is currently running.
	State(ctx context.Context) (ServiceState, error)

	// Start brings the service up in the background.
	Start(ctx context.Context) error

	// Stop stops the service's containers. Data is never removed.
	Stop(ctx context.Context) error

	// Health inspects the running container once. Returns ErrNoHandle when
	// there is no container to inspect.
	Health(ctx context.Context) (HealthStatus, error)

	// Teardown removes the service's containers and images. Persistent
	// volumes are removed only when preserveData is false.
	Teardown(ctx context.Context, preserveData bool) error

	// Pull fetches the service's image again.
	Pull(ctx context.Context) error

	// Recreate force-recreates the service's containers and starts them.
	Recreate(ctx context.Context) error
}

// StateChangeCallback is called when the orchestrator moves the service between states
type StateChangeCallback func(service string, oldState, newState ServiceState)
