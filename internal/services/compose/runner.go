package compose

import (
	"bytes"
	"context"
	"fmt"
	"os/exec"
	"strings"

	"hadesctl/pkg/logging"
)

// CommandRunner executes an external command and returns its standard output.
type CommandRunner interface {
	Run(ctx context.Context, name string, args ...string) ([]byte, error)
}

// ExecRunner runs commands with os/exec in Dir.
type ExecRunner struct {
	Dir string
}

// CommandError carries the failed command line and whatever it wrote to stderr.
type CommandError struct {
	Command string
	Stderr  string
	Err     error
}

func (e *CommandError) Error() string {
	if e.Stderr != "" {
		return fmt.Sprintf("%s: %v: %s", e.Command, e.Err, e.Stderr)
	}
	return fmt.Sprintf("%s: %v", e.Command, e.Err)
}

func (e *CommandError) Unwrap() error { return e.Err }

// Run implements CommandRunner.
func (r ExecRunner) Run(ctx context.Context, name string, args ...string) ([]byte, error) {
	cmd := exec.CommandContext(ctx, name, args...)
	cmd.Dir = r.Dir

	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	line := strings.Join(append([]string{name}, args...), " ")
	logging.Debug("Compose", "exec: %s", line)

	if err := cmd.Run(); err != nil {
		return stdout.Bytes(), &CommandError{
			Command: line,
			Stderr:  strings.TrimSpace(stderr.String()),
			Err:     err,
		}
	}
	return stdout.Bytes(), nil
}
