package docker

import (
	"context"
	"errors"
	"fmt"

	"github.com/docker/docker/api/types"
	"github.com/docker/docker/api/types/container"
	"github.com/docker/docker/api/types/system"
	"github.com/docker/docker/client"
	"github.com/samber/do"
	"github.com/samber/lo"
	"github.com/sirupsen/logrus"
	"github.com/zhulik/fleetscaler/internal/core"
)

// API is the subset of the docker client the provider uses.
type API interface {
	ContainerList(ctx context.Context, options container.ListOptions) ([]types.Container, error)
	ContainerStart(ctx context.Context, containerID string, options container.StartOptions) error
	ContainerStop(ctx context.Context, containerID string, options container.StopOptions) error
	Info(ctx context.Context) (system.Info, error)
	Close() error
}

// Provider treats containers as instances and their labels as tags: a container labelled
// Name=Worker-3 is worker 3.
type Provider struct {
	docker API
	logger logrus.FieldLogger
}

func NewProvider(injector *do.Injector) (*Provider, error) {
	config := do.MustInvoke[core.Config](injector)

	docker, err := NewClient(config.DockerURL())
	if err != nil {
		return nil, err
	}

	return New(docker, do.MustInvoke[logrus.FieldLogger](injector)), nil
}

// NewClient creates a docker client configured from the environment. A non-empty host
// overrides DOCKER_HOST.
func NewClient(host string) (*client.Client, error) {
	opts := []client.Opt{client.FromEnv, client.WithAPIVersionNegotiation()}
	if host != "" {
		opts = append(opts, client.WithHost(host))
	}

	docker, err := client.NewClientWithOpts(opts...)
	if err != nil {
		return nil, fmt.Errorf("failed to create docker client: %w", err)
	}

	return docker, nil
}

func New(docker API, logger logrus.FieldLogger) *Provider {
	return &Provider{
		docker: docker,
		logger: logger.WithField("component", "providers.docker.Provider"),
	}
}

func (p *Provider) Name() string {
	return core.ProviderNameDocker
}

func (p *Provider) Info(ctx context.Context) (map[string]any, error) {
	info, err := p.docker.Info(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to docker info: %w", err)
	}

	return map[string]any{
		"provider":      "Docker",
		"serverVersion": info.ServerVersion,
		"containers":    info.Containers,
	}, nil
}

func (p *Provider) ListInstances(ctx context.Context) ([]core.Instance, error) {
	p.logger.Debug("Listing containers")

	containers, err := p.docker.ContainerList(ctx, container.ListOptions{All: true})
	if err != nil {
		return nil, fmt.Errorf("failed to list containers: %w", err)
	}

	return lo.Map(containers, func(c types.Container, _ int) core.Instance {
		return core.Instance{
			ID:    c.ID,
			Tags:  c.Labels,
			State: c.State,
		}
	}), nil
}

// StartInstances starts every container of the batch, even after a failure. Starting a running
// container is a no-op on the daemon side.
func (p *Provider) StartInstances(ctx context.Context, instanceIDs []string) error {
	return p.each(instanceIDs, func(id string) error {
		return p.docker.ContainerStart(ctx, id, container.StartOptions{})
	})
}

// StopInstances stops every container of the batch, even after a failure. Stopping a stopped
// container is a no-op on the daemon side.
func (p *Provider) StopInstances(ctx context.Context, instanceIDs []string) error {
	return p.each(instanceIDs, func(id string) error {
		return p.docker.ContainerStop(ctx, id, container.StopOptions{})
	})
}

func (p *Provider) HealthCheck() error {
	p.logger.Debug("Provider health check.")

	_, err := p.docker.Info(context.Background())
	if err != nil {
		return fmt.Errorf("docker provider health check failed: %w", err)
	}

	return nil
}

func (p *Provider) Shutdown() error {
	p.logger.Debug("Provider shutting down...")
	defer p.logger.Debug("Provider shot down.")

	err := p.docker.Close()
	if err != nil {
		return fmt.Errorf("failed to close docker client: %w", err)
	}

	return nil
}

func (p *Provider) each(instanceIDs []string, fun func(id string) error) error {
	errs := lo.FilterMap(instanceIDs, func(id string, _ int) (error, bool) {
		err := fun(id)
		if err != nil {
			return fmt.Errorf("container %s: %w", id, err), true
		}

		return nil, false
	})

	return errors.Join(errs...)
}
