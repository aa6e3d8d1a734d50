package events

import (
	"context"

	"github.com/zhulik/fleetscaler/internal/core"
)

// NoopPublisher is used when no NATS URL is configured.
type NoopPublisher struct{}

func (NoopPublisher) PublishScalingEvent(context.Context, core.ScalingResult) error {
	return nil
}

func (NoopPublisher) HealthCheck() error {
	return nil
}

func (NoopPublisher) Shutdown() error {
	return nil
}
