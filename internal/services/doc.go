// Package services defines the service abstraction hadesctl drives.
//
// The managed service is a single database container addressed by a fixed
// name (the compose service, "db" by default). Everything above this package
// talks to it through the Controller interface:
//
//	type Controller interface {
//	    Name() string
//	    State(ctx) (ServiceState, error)
//	    Start(ctx) error
//	    Stop(ctx) error
//	    Health(ctx) (HealthStatus, error)
//	    Teardown(ctx, preserveData bool) error
//	    Pull(ctx) error
//	    Recreate(ctx) error
//	}
//
// The concrete binding lives in the compose subpackage, which shells out to
// the compose CLI for transitions and asks the Docker Engine API for
// container health. Tests substitute their own Controller.
//
// # States
//
// ServiceState is what the orchestrator reasons about: Unknown, Stopped,
// Starting, Running, Stopping and Rebuilding. Only Stopped and Running are
// ever reported by a Controller; the others are transitional and exist so the
// orchestrator can announce its edges through a StateChangeCallback.
//
// HealthStatus is the raw runtime signal (pending, healthy, unhealthy), which
// is distinct from whether the container is merely running.
package services
