package testhelpers

import (
	"os"

	"github.com/samber/do"
	"github.com/sirupsen/logrus"
	"github.com/zhulik/fleetscaler/internal/config"
	"github.com/zhulik/fleetscaler/internal/core"
)

func NewLogger() logrus.FieldLogger {
	logger := logrus.New()
	logger.SetOutput(os.Stdout)
	logger.SetLevel(logrus.WarnLevel)

	return logger
}

// NewInjector returns an injector with a quiet logger and a default config.
func NewInjector() *do.Injector {
	injector := do.New()

	do.ProvideValue(injector, NewLogger())
	do.ProvideValue[core.Config](injector, &config.Config{
		ProviderName: core.ProviderNameDocker,
		Loglevel:     "warn",
		HttpPort:     core.DefaultHTTPPort,
		Subject:      core.DefaultEventsSubject,
		Timeout:      core.DefaultTimeout,
	})

	return injector
}

// Instance builds an instance snapshot tagged with the given Name.
func Instance(id, name string) core.Instance {
	return core.Instance{
		ID:   id,
		Tags: map[string]string{core.TagKeyName: name},
	}
}
