package events

import (
	"context"
	"fmt"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/zhulik/fleetscaler/internal/core"
	"github.com/zhulik/fleetscaler/pkg/json"
)

// Conn is the subset of a NATS connection the publisher uses.
type Conn interface {
	Publish(subject string, data []byte) error
	FlushWithContext(ctx context.Context) error
	GetClientID() (uint64, error)
}

const shutdownFlushTimeout = 5 * time.Second

// NatsPublisher publishes one JSON document per scaling run on a core NATS subject.
type NatsPublisher struct {
	conn    Conn
	subject string
	logger  logrus.FieldLogger
}

func NewNatsPublisher(conn Conn, subject string, logger logrus.FieldLogger) *NatsPublisher {
	return &NatsPublisher{
		conn:    conn,
		subject: subject,
		logger: logger.WithFields(logrus.Fields{
			"component": "events.NatsPublisher",
			"subject":   subject,
		}),
	}
}

func (p *NatsPublisher) PublishScalingEvent(ctx context.Context, result core.ScalingResult) error {
	payload, err := json.Marshal(result)
	if err != nil {
		return fmt.Errorf("failed to marshal scaling event: %w", err)
	}

	err = p.conn.Publish(p.subject, payload)
	if err != nil {
		return fmt.Errorf("failed to publish scaling event: %w", err)
	}

	err = p.conn.FlushWithContext(ctx)
	if err != nil {
		return fmt.Errorf("failed to flush scaling event: %w", err)
	}

	p.logger.WithField("runID", result.RunID).Debug("Scaling event published")

	return nil
}

func (p *NatsPublisher) HealthCheck() error {
	_, err := p.conn.GetClientID()
	if err != nil {
		return fmt.Errorf("healthcheck failed: %w", err)
	}

	return nil
}

// Shutdown flushes pending events. The connection itself belongs to the shared client.
func (p *NatsPublisher) Shutdown() error {
	ctx, cancel := context.WithTimeout(context.Background(), shutdownFlushTimeout)
	defer cancel()

	err := p.conn.FlushWithContext(ctx)
	if err != nil {
		return fmt.Errorf("failed to flush NATS connection: %w", err)
	}

	return nil
}
