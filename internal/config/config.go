package config

import (
	"fmt"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/go-playground/validator/v10"
	"github.com/zhulik/fleetscaler/internal/core"
)

var validate = validator.New() //nolint:gochecknoglobals

type Config struct {
	ProviderName string `env:"FLEET_PROVIDER" envDefault:"ec2"  validate:"oneof=ec2 docker"`
	Loglevel     string `env:"LOG_LEVEL"      envDefault:"info" validate:"required"`
	HttpPort     int    `env:"HTTP_PORT"      envDefault:"8080" validate:"gte=0,lte=65535"` //nolint:stylecheck

	NATSURL    string `env:"NATS_URL"`
	Subject    string `env:"FLEET_EVENTS_SUBJECT" envDefault:"fleet.scaled"`
	Region     string `env:"AWS_REGION"`
	DockerHost string `env:"DOCKER_URL"`

	Timeout       time.Duration `env:"FLEET_TIMEOUT"   envDefault:"60s" validate:"gt=0"`
	LeaseDuration time.Duration `env:"FLEET_LEASE_TTL" envDefault:"5m"  validate:"gtfield=Timeout"`
}

// Load reads the configuration from the environment.
func Load() (*Config, error) {
	cfg := &Config{}

	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config from env: %w", err)
	}

	return cfg, nil
}

func (c Config) Validate() error {
	err := validate.Struct(c)
	if err != nil {
		return fmt.Errorf("invalid config: %w", err)
	}

	return nil
}

func (c Config) Provider() string {
	return c.ProviderName
}

func (c Config) LogLevel() string {
	return c.Loglevel
}

func (c Config) HTTPPort() int {
	return c.HttpPort
}

// NatsURL is empty when event publishing is disabled.
func (c Config) NatsURL() string {
	return c.NATSURL
}

func (c Config) EventsSubject() string {
	if c.Subject == "" {
		return core.DefaultEventsSubject
	}

	return c.Subject
}

func (c Config) AWSRegion() string {
	return c.Region
}

// DockerURL is empty unless set explicitly, leaving the daemon address to DOCKER_HOST.
func (c Config) DockerURL() string {
	return c.DockerHost
}

func (c Config) RunTimeout() time.Duration {
	if c.Timeout <= 0 {
		return core.DefaultTimeout
	}

	return c.Timeout
}

// LeaseTTL bounds how long a crashed run can block the others.
func (c Config) LeaseTTL() time.Duration {
	if c.LeaseDuration <= 0 {
		return core.DefaultLeaseTTL
	}

	return c.LeaseDuration
}
