package core

import (
	"time"
)

const (
	TagKeyName       = "Name"
	WorkerNamePrefix = "Worker"
	OrdinalSeparator = "-"

	ProviderNameEC2    = "ec2"
	ProviderNameDocker = "docker"

	ComponentNameScale = "scale"
	ComponentNamePlan  = "plan"
	ComponentNameFleet = "fleet"
	ComponentNameServe = "serve"

	EnvNameProvider      = "FLEET_PROVIDER"
	EnvNameLogLevel      = "LOG_LEVEL"
	EnvNameNatsURL       = "NATS_URL"
	EnvNameEventsSubject = "FLEET_EVENTS_SUBJECT"
	EnvNameAWSRegion     = "AWS_REGION"
	EnvNameDockerURL     = "DOCKER_URL"
	EnvNameHTTPPort      = "HTTP_PORT"
	EnvNameTimeout       = "FLEET_TIMEOUT"
	EnvNameLeaseTTL      = "FLEET_LEASE_TTL"

	DefaultEventsSubject = "fleet.scaled"
	DefaultTimeout       = 60 * time.Second
	DefaultHTTPPort      = 8080
	DefaultLeaseTTL      = 5 * time.Minute

	LeaseBucketName = "fleetscaler_leases"
	LeaseKeyScale   = "scale"
)
