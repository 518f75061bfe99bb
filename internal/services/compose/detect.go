package compose

import (
	"context"
	"errors"
	"strings"
)

// ErrComposeUnavailable is returned when neither "docker compose" nor
// "docker-compose" answers a version query.
var ErrComposeUnavailable = errors.New("docker compose is not available (tried \"docker compose\" and \"docker-compose\")")

var composeCandidates = [][]string{
	{"docker", "compose"},
	{"docker-compose"},
}

// DetectCommand returns the compose invocation to use. A non-empty override
// (for example "docker-compose") is split on whitespace and used as is.
func DetectCommand(ctx context.Context, runner CommandRunner, override string) ([]string, error) {
	if fields := strings.Fields(override); len(fields) > 0 {
		return fields, nil
	}

	for _, candidate := range composeCandidates {
		args := append(append([]string{}, candidate[1:]...), "version")
		if _, err := runner.Run(ctx, candidate[0], args...); err == nil {
			return candidate, nil
		}
	}
	return nil, ErrComposeUnavailable
}
