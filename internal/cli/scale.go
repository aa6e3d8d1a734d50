package cli

import (
	"context"

	"github.com/samber/do"
	"github.com/sirupsen/logrus"
	"github.com/urfave/cli/v3"
	"github.com/zhulik/fleetscaler/internal/cli/flags"
	"github.com/zhulik/fleetscaler/internal/core"
	"github.com/zhulik/fleetscaler/internal/fleet"
)

var scaleCMD = &cli.Command{
	Name:     core.ComponentNameScale,
	Aliases:  []string{"s"},
	Usage:    "Converge the fleet to --num-workers running workers.",
	Category: "Fleet",
	Flags:    append(append(append([]cli.Flag{}, flags.Common...), flags.ForScaling...), flags.DryRun),

	Action: func(ctx context.Context, cmd *cli.Command) error {
		return runScaling(ctx, cmd, cmd.Bool(flags.FlagNameDryRun))
	},
}

var planCMD = &cli.Command{
	Name:     core.ComponentNamePlan,
	Usage:    "Print what scale would start and stop, without doing it.",
	Category: "Fleet",
	Flags:    append(append([]cli.Flag{}, flags.Common...), flags.ForScaling...),

	Action: func(ctx context.Context, cmd *cli.Command) error {
		return runScaling(ctx, cmd, true)
	},
}

func runScaling(ctx context.Context, cmd *cli.Command, dryRun bool) error {
	injector, err := initDI(cmd)
	if err != nil {
		return cli.Exit(err.Error(), exitCodeUsage)
	}
	defer injector.Shutdown() //nolint:errcheck

	logger := do.MustInvoke[logrus.FieldLogger](injector).WithField("component", "cli.scale")

	scaler, err := do.Invoke[*fleet.Scaler](injector)
	if err != nil {
		return cli.Exit(err.Error(), exitCodeUsage)
	}

	req := core.ScalingRequest{
		DesiredCount:     int(cmd.Int(flags.FlagNameNumWorkers)),
		InstanceType:     cmd.String(flags.FlagNameInstanceType),
		SubnetID:         cmd.String(flags.FlagNameSubnetID),
		PlacementGroupID: cmd.String(flags.FlagNamePlacementGroupID),
		DryRun:           dryRun,
	}

	ctx, cancel := context.WithTimeout(ctx, do.MustInvoke[core.Config](injector).RunTimeout())
	defer cancel()

	result, err := scaler.Scale(ctx, req)
	if err != nil && !core.IsCommandFailure(err) {
		logger.WithError(err).Error("Scaling failed")

		return exitError(err)
	}

	printErr := printJSON(cmd, outputFor(result, dryRun))

	if err != nil {
		logger.WithError(err).Error("Scaling partially failed")

		return exitError(err)
	}

	logger.WithFields(logrus.Fields{
		"started": len(result.Plan.ToStart),
		"stopped": len(result.Plan.ToStop),
	}).Infof("Number running: %d", len(result.Plan.ToStart))

	return printErr
}

func outputFor(result core.ScalingResult, dryRun bool) any {
	if dryRun {
		return result.Plan
	}

	return result
}
