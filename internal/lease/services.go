package lease

import (
	"github.com/samber/do"
	"github.com/sirupsen/logrus"
	"github.com/zhulik/fleetscaler/internal/core"
)

func Register(injector *do.Injector) {
	do.Provide(injector, func(injector *do.Injector) (core.RunLease, error) {
		if do.MustInvoke[core.Config](injector).NatsURL() == "" {
			do.MustInvoke[logrus.FieldLogger](injector).Debug("NATS URL is not set, runs are serialized per process only")

			return LocalLease{}, nil
		}

		return NewNatsLease(injector)
	})
}
