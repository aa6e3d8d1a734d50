package nats

import (
	"context"
	"fmt"

	libNats "github.com/nats-io/nats.go"
	"github.com/nats-io/nats.go/jetstream"
	"github.com/samber/do"
	"github.com/sirupsen/logrus"
	"github.com/zhulik/fleetscaler/internal/core"
)

const clientName = "fleetscaler"

// Client is the NATS connection shared by the event publisher and the run lease.
type Client struct {
	Nats      *libNats.Conn
	JetStream jetstream.JetStream

	logger logrus.FieldLogger
}

func NewClient(injector *do.Injector) (*Client, error) {
	config := do.MustInvoke[core.Config](injector)
	logger := do.MustInvoke[logrus.FieldLogger](injector).WithField("component", "pubsub.nats.Client")

	natsClient, err := libNats.Connect(config.NatsURL(), libNats.Name(clientName))
	if err != nil {
		return nil, fmt.Errorf("failed to connect to NATS client: %w", err)
	}

	jetStream, err := jetstream.New(natsClient)
	if err != nil {
		natsClient.Close()

		return nil, fmt.Errorf("failed to build JetStream client: %w", err)
	}

	logger.WithField("url", natsClient.ConnectedUrlRedacted()).Debug("Connected to NATS")

	return &Client{
		Nats:      natsClient,
		JetStream: jetStream,
		logger:    logger,
	}, nil
}

func (c Client) HealthCheck() error {
	_, err := c.Nats.GetClientID()
	if err != nil {
		return fmt.Errorf("healthcheck failed: %w", err)
	}

	_, err = c.JetStream.AccountInfo(context.Background())
	if err != nil {
		return fmt.Errorf("healthcheck failed: %w", err)
	}

	return nil
}

func (c Client) Shutdown() error {
	c.logger.Debug("Draining NATS connection...")

	err := c.Nats.Drain()
	if err != nil {
		c.Nats.Close()

		return fmt.Errorf("failed to drain NATS connection: %w", err)
	}

	return nil
}
