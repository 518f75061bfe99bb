package orchestrator

import (
	"fmt"
	"strings"

	"hadesctl/internal/preflight"
)

// PreconditionError is returned when host prerequisites are missing. Nothing
// has been changed when it is returned.
type PreconditionError struct {
	Command string
	Failed  []preflight.Check
}

func (e *PreconditionError) Error() string {
	parts := make([]string, 0, len(e.Failed))
	for _, c := range e.Failed {
		parts = append(parts, c.String())
	}
	return fmt.Sprintf("cannot %s: %d prerequisite check(s) failed: %s", e.Command, len(e.Failed), strings.Join(parts, "; "))
}

// RebuildError reports a rebuild that failed after teardown started. The
// service has been left stopped.
type RebuildError struct {
	Stage string
	Err   error
}

func (e *RebuildError) Error() string {
	return fmt.Sprintf("rebuild failed during %s: %v; the service has been left stopped, run `hadesctl start` to bring it back", e.Stage, e.Err)
}

func (e *RebuildError) Unwrap() error { return e.Err }
