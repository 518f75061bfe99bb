package dockerutil

import (
	"context"

	"github.com/docker/docker/client"
)

// sdkAPI adapts *client.Client to engineAPI.
type sdkAPI struct {
	cli *client.Client
}

func (s sdkAPI) Ping(ctx context.Context) error {
	_, err := s.cli.Ping(ctx)
	return err
}

func (s sdkAPI) ContainerHealth(ctx context.Context, containerID string) (bool, string, error) {
	inspect, err := s.cli.ContainerInspect(ctx, containerID)
	if err != nil {
		return false, "", err
	}
	if inspect.ContainerJSONBase == nil || inspect.State == nil {
		return false, "", nil
	}
	health := ""
	if inspect.State.Health != nil {
		health = inspect.State.Health.Status
	}
	return inspect.State.Running, health, nil
}
