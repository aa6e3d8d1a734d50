package config

import (
	"github.com/samber/do"
	"github.com/zhulik/fleetscaler/internal/core"
)

func Register(injector *do.Injector, cfg *Config) {
	do.ProvideValue[core.Config](injector, cfg)
}
