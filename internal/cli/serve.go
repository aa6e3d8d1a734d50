package cli

import (
	"context"
	"errors"
	"net/http"
	"syscall"

	"github.com/samber/do"
	"github.com/sirupsen/logrus"
	"github.com/urfave/cli/v3"
	"github.com/zhulik/fleetscaler/internal/cli/flags"
	"github.com/zhulik/fleetscaler/internal/core"
	"github.com/zhulik/fleetscaler/internal/infoserver"
)

var serveCMD = &cli.Command{
	Name:     core.ComponentNameServe,
	Usage:    "Run the HTTP API: inspect the fleet, preview plans and trigger scaling runs.",
	Category: "Service",
	Flags:    append(append([]cli.Flag{}, flags.Common...), flags.ServerPort),

	Action: func(_ context.Context, cmd *cli.Command) error {
		injector, err := initDI(cmd)
		if err != nil {
			return cli.Exit(err.Error(), exitCodeUsage)
		}

		logger := do.MustInvoke[logrus.FieldLogger](injector).WithField("component", "cli.serve")

		logger.Info("Starting...")

		server, err := do.Invoke[*infoserver.Server](injector)
		if err != nil {
			return cli.Exit(err.Error(), exitCodeUsage)
		}

		for service, err := range injector.HealthCheck() {
			if err != nil {
				logger.WithField("service", service).WithError(err).Warn("Health check failed")
			}
		}

		go func() {
			err := server.Run()

			if errors.Is(err, http.ErrServerClosed) {
				return
			}

			logger.WithError(err).Fatal("Failed to run server")
		}()

		logger.Info("Running...")

		return injector.ShutdownOnSignals(syscall.SIGINT, syscall.SIGTERM) //nolint:wrapcheck
	},
}
