package events

import (
	"github.com/samber/do"
	"github.com/sirupsen/logrus"
	"github.com/zhulik/fleetscaler/internal/core"
	"github.com/zhulik/fleetscaler/internal/pubsub/nats"
)

func Register(injector *do.Injector) {
	do.Provide(injector, func(injector *do.Injector) (core.EventPublisher, error) {
		config := do.MustInvoke[core.Config](injector)
		logger := do.MustInvoke[logrus.FieldLogger](injector)

		if config.NatsURL() == "" {
			logger.Debug("NATS URL is not set, scaling events are not published")

			return NoopPublisher{}, nil
		}

		client, err := do.Invoke[*nats.Client](injector)
		if err != nil {
			return nil, err
		}

		return NewNatsPublisher(client.Nats, config.EventsSubject(), logger), nil
	})
}
