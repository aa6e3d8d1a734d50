package ec2_test

import (
	"context"
	"errors"

	"github.com/aws/aws-sdk-go-v2/aws"
	libEC2 "github.com/aws/aws-sdk-go-v2/service/ec2"
	"github.com/aws/aws-sdk-go-v2/service/ec2/types"
	"github.com/aws/smithy-go"
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
	"github.com/zhulik/fleetscaler/internal/core"
	"github.com/zhulik/fleetscaler/internal/providers/ec2"
	"github.com/zhulik/fleetscaler/testhelpers"
)

type fakeAPI struct {
	describeOut *libEC2.DescribeInstancesOutput
	err         error

	started []string
	stopped []string
}

func (f *fakeAPI) DescribeInstances(
	_ context.Context, _ *libEC2.DescribeInstancesInput, _ ...func(*libEC2.Options),
) (*libEC2.DescribeInstancesOutput, error) {
	if f.err != nil {
		return nil, f.err
	}

	return f.describeOut, nil
}

func (f *fakeAPI) StartInstances(
	_ context.Context, params *libEC2.StartInstancesInput, _ ...func(*libEC2.Options),
) (*libEC2.StartInstancesOutput, error) {
	if f.err != nil {
		return nil, f.err
	}

	f.started = append(f.started, params.InstanceIds...)

	return &libEC2.StartInstancesOutput{
		StartingInstances: []types.InstanceStateChange{{
			InstanceId:    aws.String(params.InstanceIds[0]),
			PreviousState: &types.InstanceState{Name: types.InstanceStateNameStopped},
			CurrentState:  &types.InstanceState{Name: types.InstanceStateNamePending},
		}},
	}, nil
}

func (f *fakeAPI) StopInstances(
	_ context.Context, params *libEC2.StopInstancesInput, _ ...func(*libEC2.Options),
) (*libEC2.StopInstancesOutput, error) {
	if f.err != nil {
		return nil, f.err
	}

	f.stopped = append(f.stopped, params.InstanceIds...)

	return &libEC2.StopInstancesOutput{}, nil
}

func ec2Instance(id, name string, state types.InstanceStateName) types.Instance {
	return types.Instance{
		InstanceId: aws.String(id),
		State:      &types.InstanceState{Name: state},
		Tags: []types.Tag{
			{Key: aws.String("Name"), Value: aws.String(name)},
			{Key: aws.String("team"), Value: aws.String("data")},
		},
	}
}

var _ = Describe("Provider", func() {
	var api *fakeAPI
	var provider *ec2.Provider

	BeforeEach(func() {
		api = &fakeAPI{}
		provider = ec2.New(api, "eu-central-1", testhelpers.NewLogger())
	})

	It("is named ec2", func() {
		Expect(provider.Name()).To(Equal(core.ProviderNameEC2))
	})

	Describe("ListInstances", func() {
		It("flattens every reservation of the page and skips terminated instances", func(ctx SpecContext) {
			api.describeOut = &libEC2.DescribeInstancesOutput{
				Reservations: []types.Reservation{
					{Instances: []types.Instance{
						ec2Instance("i-1", "Worker-1", types.InstanceStateNameRunning),
						ec2Instance("i-2", "Worker-2", types.InstanceStateNameTerminated),
					}},
					{Instances: []types.Instance{
						ec2Instance("i-3", "Worker-3", types.InstanceStateNameStopped),
					}},
				},
				NextToken: aws.String("next"),
			}

			instances, err := provider.ListInstances(ctx)

			Expect(err).ToNot(HaveOccurred())
			Expect(instances).To(Equal([]core.Instance{
				{ID: "i-1", Tags: map[string]string{"Name": "Worker-1", "team": "data"}, State: "running"},
				{ID: "i-3", Tags: map[string]string{"Name": "Worker-3", "team": "data"}, State: "stopped"},
			}))
		})

		It("returns an empty inventory when there are no reservations", func(ctx SpecContext) {
			api.describeOut = &libEC2.DescribeInstancesOutput{}

			instances, err := provider.ListInstances(ctx)

			Expect(err).ToNot(HaveOccurred())
			Expect(instances).To(BeEmpty())
		})

		It("wraps API errors with their code", func(ctx SpecContext) {
			api.err = &smithy.GenericAPIError{Code: "UnauthorizedOperation", Message: "denied"}

			_, err := provider.ListInstances(ctx)

			Expect(err).To(MatchError(ContainSubstring("UnauthorizedOperation")))

			var apiErr smithy.APIError
			Expect(errors.As(err, &apiErr)).To(BeTrue())
			Expect(apiErr.ErrorMessage()).To(Equal("denied"))
		})
	})

	Describe("StartInstances", func() {
		It("starts the whole batch in one call", func(ctx SpecContext) {
			Expect(provider.StartInstances(ctx, []string{"i-1", "i-2"})).To(Succeed())
			Expect(api.started).To(Equal([]string{"i-1", "i-2"}))
		})
	})

	Describe("StopInstances", func() {
		It("stops the whole batch in one call", func(ctx SpecContext) {
			Expect(provider.StopInstances(ctx, []string{"i-3"})).To(Succeed())
			Expect(api.stopped).To(Equal([]string{"i-3"}))
		})

		It("returns API errors", func(ctx SpecContext) {
			api.err = context.DeadlineExceeded

			Expect(provider.StopInstances(ctx, []string{"i-3"})).To(MatchError(context.DeadlineExceeded))
		})
	})

	Describe("Info", func() {
		It("reports the region", func(ctx SpecContext) {
			info, err := provider.Info(ctx)

			Expect(err).ToNot(HaveOccurred())
			Expect(info).To(HaveKeyWithValue("region", "eu-central-1"))
		})
	})

	It("is healthy without a credentials provider", func() {
		Expect(provider.HealthCheck()).To(Succeed())
	})
})
