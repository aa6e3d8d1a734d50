package cli

import (
	"context"

	"github.com/samber/do"
	"github.com/urfave/cli/v3"
	"github.com/zhulik/fleetscaler/internal/cli/flags"
	"github.com/zhulik/fleetscaler/internal/core"
	"github.com/zhulik/fleetscaler/internal/fleet"
)

var fleetCMD = &cli.Command{
	Name:     core.ComponentNameFleet,
	Aliases:  []string{"ls"},
	Usage:    "Print the worker slots of the current inventory.",
	Category: "Fleet",
	Flags:    flags.Common,

	Action: func(ctx context.Context, cmd *cli.Command) error {
		injector, err := initDI(cmd)
		if err != nil {
			return cli.Exit(err.Error(), exitCodeUsage)
		}
		defer injector.Shutdown() //nolint:errcheck

		scaler, err := do.Invoke[*fleet.Scaler](injector)
		if err != nil {
			return cli.Exit(err.Error(), exitCodeUsage)
		}

		ctx, cancel := context.WithTimeout(ctx, do.MustInvoke[core.Config](injector).RunTimeout())
		defer cancel()

		classification, err := scaler.Fleet(ctx)
		if err != nil {
			return exitError(err)
		}

		return printJSON(cmd, classification.Slots)
	},
}
