package flags

import (
	"fmt"

	"github.com/urfave/cli/v3"
	"github.com/zhulik/fleetscaler/internal/core"
)

const (
	FlagNameProvider         = "provider"
	FlagNameLogLevel         = "log-level"
	FlagNameNATSURL          = "nats-url"
	FlagNameEventsSubject    = "events-subject"
	FlagNameRegion           = "region"
	FlagNameDockerURL        = "docker-url"
	FlagNameTimeout          = "timeout"
	FlagNameServerPort       = "port"
	FlagNameNumWorkers       = "num-workers"
	FlagNameInstanceType     = "instance-type"
	FlagNameSubnetID         = "subnet-id"
	FlagNamePlacementGroupID = "placement-group-id"
	FlagNameDryRun           = "dry-run"
)

var supportedProviders = []string{core.ProviderNameEC2, core.ProviderNameDocker} //nolint:gochecknoglobals

// Flags below override the environment only when given explicitly, defaults come from the env config.
var (
	Provider = &cli.GenericFlag{
		Name:    FlagNameProvider,
		Aliases: []string{"p"},
		Usage: fmt.Sprintf("Use `PROVIDER`. Supported providers: %v (env: %s, default: %s)",
			supportedProviders, core.EnvNameProvider, core.ProviderNameEC2),
		Value: &EnumFlag{
			defaultValue: core.ProviderNameEC2,
			possible:     supportedProviders,
		},
	}

	LogLevel = &cli.StringFlag{
		Name:    FlagNameLogLevel,
		Aliases: []string{"l"},
		Usage:   "Set log level to `LEVEL`. (env: " + core.EnvNameLogLevel + ", default: info)",
	}

	NatsURL = &cli.StringFlag{
		Name:    FlagNameNATSURL,
		Aliases: []string{"n"},
		Usage:   "Publish scaling events to NATS at `URL`, eg nats://127.0.0.1:4222 (env: " + core.EnvNameNatsURL + ")",
	}

	EventsSubject = &cli.StringFlag{
		Name:  FlagNameEventsSubject,
		Usage: "Publish scaling events on `SUBJECT`. (env: " + core.EnvNameEventsSubject + ", default: " + core.DefaultEventsSubject + ")", //nolint:lll
	}

	Region = &cli.StringFlag{
		Name:    FlagNameRegion,
		Aliases: []string{"r"},
		Usage:   "AWS `REGION`. For ec2 provider only. (env: " + core.EnvNameAWSRegion + ")",
	}

	DockerURL = &cli.StringFlag{
		Name:    FlagNameDockerURL,
		Aliases: []string{"du"},
		Usage:   "Set docker url `URL`. For docker provider only. Can be a TCP socket or a Unix socket. (env: " + core.EnvNameDockerURL + ")", //nolint:lll
	}

	Timeout = &cli.DurationFlag{
		Name:    FlagNameTimeout,
		Aliases: []string{"t"},
		Usage:   "Abort a run after `DURATION`. (env: " + core.EnvNameTimeout + ", default: 60s)",
	}

	ServerPort = &cli.IntFlag{
		Name:  FlagNameServerPort,
		Usage: "Set server port to `PORT`. (env: " + core.EnvNameHTTPPort + ", default: 8080)",
	}

	NumWorkers = &cli.IntFlag{
		Name:     FlagNameNumWorkers,
		Aliases:  []string{"w"},
		Usage:    "Keep workers 1..`N` running, stop the rest.",
		Required: true,
	}

	InstanceType = &cli.StringFlag{
		Name:  FlagNameInstanceType,
		Usage: "Instance `TYPE` for future provisioning. Accepted, currently unused.",
	}

	SubnetID = &cli.StringFlag{
		Name:  FlagNameSubnetID,
		Usage: "Subnet `ID` for future provisioning. Accepted, currently unused.",
	}

	PlacementGroupID = &cli.StringFlag{
		Name:  FlagNamePlacementGroupID,
		Usage: "Placement group `ID` for future provisioning. Accepted, currently unused.",
	}

	DryRun = &cli.BoolFlag{
		Name:  FlagNameDryRun,
		Usage: "Compute and print the plan without starting or stopping anything.",
	}

	Common = []cli.Flag{
		Provider,
		LogLevel,
		NatsURL,
		EventsSubject,
		Region,
		DockerURL,
		Timeout,
	}

	ForScaling = []cli.Flag{
		NumWorkers,
		InstanceType,
		SubnetID,
		PlacementGroupID,
	}
)
