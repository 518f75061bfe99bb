package harness

import (
	"context"
	"fmt"
	"time"

	"hadesctl/internal/services"
	"hadesctl/internal/toolchain"
)

// Settle delays used by the built-in units.
var (
	upSettle    = 3 * time.Second
	downSettle  = 2 * time.Second
	startSettle = 5 * time.Second
)

// BuiltinUnits returns the units shipped with hadesctl.
func BuiltinUnits() []TestUnit {
	return []TestUnit{
		{Name: "test_container_down", Description: "the service can be brought down", Run: containerDown},
		{Name: "test_container_up", Description: "the service can be brought up", Run: containerUp},
		{Name: "test_database_connection", Description: "the database accepts connections", Run: databaseConnection},
		{Name: "test_python_version", Description: "the runtime reports the expected version", Run: runtimeVersion},
	}
}

func containerDown(ctx context.Context, env *Env) (bool, string) {
	// Bring it up first so there is something to stop.
	if err := env.Controller.Start(ctx); err != nil {
		return false, fmt.Sprintf("Failed to start container: %v", err)
	}
	if err := env.Sleep(ctx, upSettle); err != nil {
		return false, interrupted(err)
	}

	if err := env.Controller.Stop(ctx); err != nil {
		return false, fmt.Sprintf("Failed to stop container: %v", err)
	}
	if err := env.Sleep(ctx, downSettle); err != nil {
		return false, interrupted(err)
	}

	state, err := env.Controller.State(ctx)
	if err != nil {
		return false, fmt.Sprintf("Failed to query container state: %v", err)
	}
	if state == services.StateRunning {
		return false, "Container is still running after stop command"
	}
	return true, "Container successfully brought down"
}

func containerUp(ctx context.Context, env *Env) (bool, string) {
	if err := env.Controller.Stop(ctx); err != nil {
		return false, fmt.Sprintf("Failed to stop container: %v", err)
	}
	if err := env.Sleep(ctx, downSettle); err != nil {
		return false, interrupted(err)
	}

	if err := env.Controller.Start(ctx); err != nil {
		return false, fmt.Sprintf("Failed to start container: %v", err)
	}
	if err := env.Sleep(ctx, upSettle); err != nil {
		return false, interrupted(err)
	}

	state, err := env.Controller.State(ctx)
	if err != nil {
		return false, fmt.Sprintf("Failed to query container state: %v", err)
	}
	if state != services.StateRunning {
		return false, "Container started but not running"
	}
	return true, "Container successfully brought up and is running"
}

func databaseConnection(ctx context.Context, env *Env) (bool, string) {
	state, err := env.Controller.State(ctx)
	if err != nil {
		return false, fmt.Sprintf("Cannot test connection: %v", err)
	}
	if state != services.StateRunning {
		if err := env.Controller.Start(ctx); err != nil {
			return false, fmt.Sprintf("Cannot test connection: Failed to start container: %v", err)
		}
		if err := env.Sleep(ctx, startSettle); err != nil {
			return false, interrupted(err)
		}
	}

	if !env.Connection.HasPassword() {
		return false, "POSTGRES_PASSWORD environment variable is not set or is empty"
	}
	if env.Connection.User == "" {
		return false, "POSTGRES_USER environment variable is not set"
	}

	res := env.Prober.Probe(ctx, env.Connection)
	return res.OK, res.Message
}

func runtimeVersion(ctx context.Context, env *Env) (bool, string) {
	rt, err := env.Runtime.Detect(ctx)
	if err != nil {
		return false, err.Error()
	}
	if !toolchain.MatchesMajorMinor(rt.Version, env.RuntimeVersion) {
		return false, fmt.Sprintf("%s version is %s, expected %s", env.RuntimeName, rt.Version, env.RuntimeVersion)
	}
	return true, fmt.Sprintf("%s version is correct: %s", env.RuntimeName, rt.Version)
}

func interrupted(err error) string {
	return fmt.Sprintf("Interrupted: %v", err)
}
