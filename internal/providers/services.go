package providers

import (
	"fmt"

	"github.com/samber/do"
	"github.com/zhulik/fleetscaler/internal/core"
	"github.com/zhulik/fleetscaler/internal/providers/docker"
	"github.com/zhulik/fleetscaler/internal/providers/ec2"
)

func Register(injector *do.Injector) {
	do.Provide(injector, func(injector *do.Injector) (core.Provider, error) {
		config := do.MustInvoke[core.Config](injector)

		switch config.Provider() {
		case core.ProviderNameEC2:
			return ec2.NewProvider(injector)
		case core.ProviderNameDocker:
			return docker.NewProvider(injector)
		default:
			return nil, fmt.Errorf("%w: %s", core.ErrUnknownProvider, config.Provider())
		}
	})
}
