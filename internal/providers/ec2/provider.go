package ec2

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsConfig "github.com/aws/aws-sdk-go-v2/config"
	libEC2 "github.com/aws/aws-sdk-go-v2/service/ec2"
	"github.com/aws/aws-sdk-go-v2/service/ec2/types"
	"github.com/aws/smithy-go"
	"github.com/samber/do"
	"github.com/samber/lo"
	"github.com/sirupsen/logrus"
	"github.com/zhulik/fleetscaler/internal/core"
)

const configLoadTimeout = 10 * time.Second

// API is the subset of the EC2 client the provider uses.
type API interface {
	DescribeInstances(ctx context.Context, params *libEC2.DescribeInstancesInput, optFns ...func(*libEC2.Options)) (*libEC2.DescribeInstancesOutput, error) //nolint:lll
	StartInstances(ctx context.Context, params *libEC2.StartInstancesInput, optFns ...func(*libEC2.Options)) (*libEC2.StartInstancesOutput, error) //nolint:lll
	StopInstances(ctx context.Context, params *libEC2.StopInstancesInput, optFns ...func(*libEC2.Options)) (*libEC2.StopInstancesOutput, error) //nolint:lll
}

type Provider struct {
	api         API
	region      string
	credentials aws.CredentialsProvider
	logger      logrus.FieldLogger
}

func NewProvider(injector *do.Injector) (*Provider, error) {
	config := do.MustInvoke[core.Config](injector)

	ctx, cancel := context.WithTimeout(context.Background(), configLoadTimeout)
	defer cancel()

	var opts []func(*awsConfig.LoadOptions) error
	if config.AWSRegion() != "" {
		opts = append(opts, awsConfig.WithRegion(config.AWSRegion()))
	}

	awsCfg, err := awsConfig.LoadDefaultConfig(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("failed to load AWS config: %w", err)
	}

	provider := New(libEC2.NewFromConfig(awsCfg), awsCfg.Region, do.MustInvoke[logrus.FieldLogger](injector))
	provider.credentials = awsCfg.Credentials

	return provider, nil
}

func New(api API, region string, logger logrus.FieldLogger) *Provider {
	return &Provider{
		api:    api,
		region: region,
		logger: logger.WithFields(logrus.Fields{
			"component": "providers.ec2.Provider",
			"region":    region,
		}),
	}
}

func (p *Provider) Name() string {
	return core.ProviderNameEC2
}

func (p *Provider) Info(_ context.Context) (map[string]any, error) {
	return map[string]any{
		"provider": "AWS EC2",
		"region":   p.region,
	}, nil
}

// ListInstances issues a single DescribeInstances call and flattens every reservation of that page.
// Terminated instances are skipped: they cannot be started and linger in the listing for a while.
func (p *Provider) ListInstances(ctx context.Context) ([]core.Instance, error) {
	p.logger.Debug("Describing instances")

	out, err := p.api.DescribeInstances(ctx, &libEC2.DescribeInstancesInput{})
	if err != nil {
		return nil, wrapAPIError("DescribeInstances", err)
	}

	var instances []core.Instance

	for _, reservation := range out.Reservations {
		for _, instance := range reservation.Instances {
			state := instanceState(instance)
			if state == types.InstanceStateNameTerminated {
				continue
			}

			instances = append(instances, core.Instance{
				ID:    aws.ToString(instance.InstanceId),
				Tags:  tagMap(instance.Tags),
				State: string(state),
			})
		}
	}

	if out.NextToken != nil {
		p.logger.Warn("Inventory has more than one page, only the first one is considered")
	}

	return instances, nil
}

func (p *Provider) StartInstances(ctx context.Context, instanceIDs []string) error {
	out, err := p.api.StartInstances(ctx, &libEC2.StartInstancesInput{InstanceIds: instanceIDs})
	if err != nil {
		return wrapAPIError("StartInstances", err)
	}

	p.logStateChanges("Start", out.StartingInstances)

	return nil
}

func (p *Provider) StopInstances(ctx context.Context, instanceIDs []string) error {
	out, err := p.api.StopInstances(ctx, &libEC2.StopInstancesInput{InstanceIds: instanceIDs})
	if err != nil {
		return wrapAPIError("StopInstances", err)
	}

	p.logStateChanges("Stop", out.StoppingInstances)

	return nil
}

func (p *Provider) HealthCheck() error {
	if p.credentials == nil {
		return nil
	}

	ctx, cancel := context.WithTimeout(context.Background(), configLoadTimeout)
	defer cancel()

	_, err := p.credentials.Retrieve(ctx)
	if err != nil {
		return fmt.Errorf("ec2 provider health check failed: %w", err)
	}

	return nil
}

func (p *Provider) Shutdown() error {
	return nil
}

func (p *Provider) logStateChanges(operation string, changes []types.InstanceStateChange) {
	for _, change := range changes {
		p.logger.WithFields(logrus.Fields{
			"instanceID": aws.ToString(change.InstanceId),
			"previous":   stateName(change.PreviousState),
			"current":    stateName(change.CurrentState),
		}).Debugf("%s state change", operation)
	}
}

func wrapAPIError(operation string, err error) error {
	var apiErr smithy.APIError
	if errors.As(err, &apiErr) {
		return fmt.Errorf("ec2 %s failed with %s (%s): %w", operation, apiErr.ErrorCode(), apiErr.ErrorMessage(), err)
	}

	return fmt.Errorf("ec2 %s failed: %w", operation, err)
}

func tagMap(tags []types.Tag) map[string]string {
	return lo.SliceToMap(tags, func(tag types.Tag) (string, string) {
		return aws.ToString(tag.Key), aws.ToString(tag.Value)
	})
}

func instanceState(instance types.Instance) types.InstanceStateName {
	if instance.State == nil {
		return ""
	}

	return instance.State.Name
}

func stateName(state *types.InstanceState) string {
	if state == nil {
		return ""
	}

	return string(state.Name)
}
