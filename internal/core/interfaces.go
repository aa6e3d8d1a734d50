package core

import (
	"context"
	"time"

	"github.com/samber/do"
)

type ServiceDependency interface {
	do.Healthcheckable
	do.Shutdownable
}

type Config interface {
	Provider() string
	LogLevel() string

	HTTPPort() int // For serve

	NatsURL() string
	EventsSubject() string

	AWSRegion() string
	DockerURL() string

	RunTimeout() time.Duration
	LeaseTTL() time.Duration
}

// InstanceInventory returns every instance visible to the caller, as a single snapshot.
type InstanceInventory interface {
	ListInstances(ctx context.Context) ([]Instance, error)
}

// InstanceLifecycle issues batch lifecycle commands. Both calls are idempotent per provider contract.
type InstanceLifecycle interface {
	StartInstances(ctx context.Context, instanceIDs []string) error
	StopInstances(ctx context.Context, instanceIDs []string) error
}

type Provider interface {
	ServiceDependency
	InstanceInventory
	InstanceLifecycle

	Name() string
	Info(ctx context.Context) (map[string]any, error)
}

type EventPublisher interface {
	ServiceDependency

	PublishScalingEvent(ctx context.Context, result ScalingResult) error
}

// RunLease keeps two scaling runs, possibly in different processes, from emitting at the same time.
// Acquire fails with ErrRunInProgress while another holder has the lease.
type RunLease interface {
	Acquire(ctx context.Context, holder string) (release func(), err error)
}

type Recorder interface {
	ObserveRun(result ScalingResult, err error)
}
