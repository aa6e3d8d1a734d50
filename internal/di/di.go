package di

import (
	"github.com/samber/do"
	"github.com/zhulik/fleetscaler/internal/config"
	"github.com/zhulik/fleetscaler/internal/events"
	"github.com/zhulik/fleetscaler/internal/fleet"
	"github.com/zhulik/fleetscaler/internal/infoserver"
	"github.com/zhulik/fleetscaler/internal/lease"
	"github.com/zhulik/fleetscaler/internal/logging"
	"github.com/zhulik/fleetscaler/internal/metrics"
	"github.com/zhulik/fleetscaler/internal/providers"
	"github.com/zhulik/fleetscaler/internal/pubsub"
)

func New(cfg *config.Config) *do.Injector {
	injector := do.New()

	config.Register(injector, cfg)
	logging.Register(injector)
	metrics.Register(injector)
	pubsub.Register(injector)
	events.Register(injector)
	lease.Register(injector)
	providers.Register(injector)
	fleet.Register(injector)
	infoserver.Register(injector)

	return injector
}
