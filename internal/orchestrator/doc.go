// Package orchestrator implements the command-level lifecycle of the managed
// database service: start, stop, status and rebuild.
//
// Every decision asks the services.Controller what the container runtime
// reports right now; nothing is cached between calls. Commands return a
// result value describing what happened, and an error only for fatal
// conditions (failed prerequisites, a failed transition, an interrupted wait).
// Recoverable problems such as a health check timeout or a failed
// connectivity probe are reported as warnings on the result.
//
// # State Machine
//
//	start:   {Stopped, Unknown} -> Starting -> Running (healthy, unhealthy or timed out)
//	stop:    Running -> Stopping -> Stopped
//	rebuild: any -> Rebuilding -> Starting -> Running
//
// A rebuild that fails after teardown has begun stops whatever is left and
// ends in Stopped, so a subsequent start begins from a known state.
//
// # Health Monitoring
//
// HealthMonitor polls the controller's point-in-time health at a fixed
// interval for a fixed number of attempts (15 x 2s by default) and returns
// as soon as the container reports healthy or unhealthy.
//
// # Concurrency
//
// All operations run synchronously on the caller's goroutine. Two hadesctl
// processes acting on the same service are not coordinated.
package orchestrator
