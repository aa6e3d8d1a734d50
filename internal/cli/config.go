package cli

import (
	"fmt"

	"github.com/samber/do"
	"github.com/urfave/cli/v3"
	"github.com/zhulik/fleetscaler/internal/cli/flags"
	"github.com/zhulik/fleetscaler/internal/config"
	"github.com/zhulik/fleetscaler/internal/di"
)

func initDI(cmd *cli.Command) (*do.Injector, error) {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return nil, err
	}

	return di.New(cfg), nil
}

// loadConfig reads the environment and applies the flags given explicitly on the command line.
func loadConfig(cmd *cli.Command) (*config.Config, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, err //nolint:wrapcheck
	}

	applyFlags(cmd, cfg)

	err = cfg.Validate()
	if err != nil {
		return nil, err //nolint:wrapcheck
	}

	return cfg, nil
}

func applyFlags(cmd *cli.Command, cfg *config.Config) {
	if cmd.IsSet(flags.FlagNameProvider) {
		cfg.ProviderName = fmt.Sprint(cmd.Value(flags.FlagNameProvider))
	}

	if cmd.IsSet(flags.FlagNameLogLevel) {
		cfg.Loglevel = cmd.String(flags.FlagNameLogLevel)
	}

	if cmd.IsSet(flags.FlagNameNATSURL) {
		cfg.NATSURL = cmd.String(flags.FlagNameNATSURL)
	}

	if cmd.IsSet(flags.FlagNameEventsSubject) {
		cfg.Subject = cmd.String(flags.FlagNameEventsSubject)
	}

	if cmd.IsSet(flags.FlagNameRegion) {
		cfg.Region = cmd.String(flags.FlagNameRegion)
	}

	if cmd.IsSet(flags.FlagNameDockerURL) {
		cfg.DockerHost = cmd.String(flags.FlagNameDockerURL)
	}

	if cmd.IsSet(flags.FlagNameTimeout) {
		cfg.Timeout = cmd.Duration(flags.FlagNameTimeout)
	}

	if cmd.IsSet(flags.FlagNameServerPort) {
		cfg.HttpPort = int(cmd.Int(flags.FlagNameServerPort))
	}
}
