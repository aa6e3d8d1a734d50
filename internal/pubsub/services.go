package pubsub

import (
	"github.com/samber/do"
	"github.com/zhulik/fleetscaler/internal/pubsub/nats"
)

// Register provides the shared NATS client. It is only built when NATS_URL is set.
func Register(injector *do.Injector) {
	do.Provide(injector, nats.NewClient)
}
