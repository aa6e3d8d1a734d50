package logging

import (
	"fmt"
	"os"

	"github.com/samber/do"
	"github.com/sirupsen/logrus"
	"github.com/zhulik/fleetscaler/internal/core"
)

func Register(injector *do.Injector) {
	do.Provide(injector, func(injector *do.Injector) (logrus.FieldLogger, error) {
		config, err := do.Invoke[core.Config](injector)
		if err != nil {
			return nil, err
		}

		logLevel, err := logrus.ParseLevel(config.LogLevel())
		if err != nil {
			return nil, fmt.Errorf("failed parse loglevel: %w", err)
		}

		logger := logrus.New()
		logger.SetOutput(os.Stderr)
		logger.SetLevel(logLevel)

		return logger, nil
	})
}
