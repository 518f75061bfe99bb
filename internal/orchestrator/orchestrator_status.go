package orchestrator

import (
	"context"

	"hadesctl/internal/config"
	"hadesctl/internal/probe"
	"hadesctl/internal/services"
)

// StatusResult is a read-only snapshot of the managed service.
type StatusResult struct {
	Service    string
	State      services.ServiceState
	Health     services.HealthStatus // empty unless Running
	Connection config.ConnectionConfig
	Probe      *probe.Result // nil unless Running
	Warnings   []string
}

// Status reports the run state, the connection parameters and, when the
// service is running, a one-shot connectivity check. It never fails.
func (o *Orchestrator) Status(ctx context.Context) StatusResult {
	res := StatusResult{Service: o.ctrl.Name(), Connection: o.conn}

	state, err := o.currentState(ctx)
	res.State = state
	if err != nil {
		res.Warnings = append(res.Warnings, "could not query service state: "+err.Error())
		return res
	}
	if state != services.StateRunning {
		return res
	}

	if health, err := o.ctrl.Health(ctx); err == nil {
		res.Health = health
	}

	if o.prober != nil {
		result := o.prober.Probe(ctx, o.conn)
		res.Probe = &result
		if !result.OK {
			res.Warnings = append(res.Warnings, result.Message)
		}
	}
	return res
}
