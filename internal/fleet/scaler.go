package fleet

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/samber/do"
	"github.com/sirupsen/logrus"
	"github.com/zhulik/fleetscaler/internal/core"
)

// Scaler converges the fleet to a desired worker count: query, classify, partition, emit.
// It keeps no state between runs, the ordinal tags are the only memory.
type Scaler struct {
	provider  core.Provider
	publisher core.EventPublisher
	recorder  core.Recorder
	lease     core.RunLease
	logger    logrus.FieldLogger

	emitter Emitter

	// Serializes runs so that concurrent requests never interleave their batches.
	lock *sync.Mutex
}

func NewScaler(injector *do.Injector) (*Scaler, error) {
	provider, err := do.Invoke[core.Provider](injector)
	if err != nil {
		return nil, fmt.Errorf("failed to get provider: %w", err)
	}

	return New(
		provider,
		do.MustInvoke[core.EventPublisher](injector),
		do.MustInvoke[core.Recorder](injector),
		do.MustInvoke[core.RunLease](injector),
		do.MustInvoke[logrus.FieldLogger](injector),
	), nil
}

func New(
	provider core.Provider,
	publisher core.EventPublisher,
	recorder core.Recorder,
	lease core.RunLease,
	logger logrus.FieldLogger,
) *Scaler {
	logger = logger.WithFields(logrus.Fields{
		"component": "fleet.Scaler",
		"provider":  provider.Name(),
	})

	return &Scaler{
		provider:  provider,
		publisher: publisher,
		recorder:  recorder,
		lease:     lease,
		logger:    logger,
		emitter:   NewEmitter(provider, logger),
		lock:      &sync.Mutex{},
	}
}

// Fleet returns the classified worker slots of the current snapshot.
func (s *Scaler) Fleet(ctx context.Context) (Classification, error) {
	instances, err := s.listInstances(ctx)
	if err != nil {
		return Classification{}, err
	}

	return Classify(instances), nil
}

// Plan computes what Scale would do for desiredCount without issuing any command.
func (s *Scaler) Plan(ctx context.Context, desiredCount int) (core.Plan, error) {
	result, err := s.Scale(ctx, core.ScalingRequest{DesiredCount: desiredCount, DryRun: true})
	if err != nil {
		return core.Plan{}, err
	}

	return result.Plan, nil
}

// Scale runs one convergence. A *core.QueryFailure means nothing was emitted. A *core.CommandFailure
// (possibly two, joined) means one batch failed and the returned result still describes the plan.
// core.ErrRunInProgress means another process holds the run lease and nothing was queried.
func (s *Scaler) Scale(ctx context.Context, req core.ScalingRequest) (core.ScalingResult, error) {
	if req.DesiredCount < 0 {
		return core.ScalingResult{}, fmt.Errorf("%w: %d", core.ErrInvalidDesiredCount, req.DesiredCount)
	}

	s.lock.Lock()
	defer s.lock.Unlock()

	result := core.ScalingResult{
		RunID:     uuid.NewString(),
		Provider:  s.provider.Name(),
		Request:   req,
		StartedAt: time.Now(),
	}

	logger := s.logger.WithFields(logrus.Fields{
		"runID":        result.RunID,
		"desiredCount": req.DesiredCount,
		"dryRun":       req.DryRun,
	})

	logProvisioningParams(logger, req)

	if !req.DryRun {
		release, err := s.lease.Acquire(ctx, result.RunID)
		if err != nil {
			logger.WithError(err).Warn("Scaling run refused")

			return result, err
		}
		defer release()
	}

	instances, err := s.listInstances(ctx)
	if err != nil {
		result.FinishedAt = time.Now()
		s.recorder.ObserveRun(result, err)

		return result, err
	}

	classification := Classify(instances)
	result.Plan = Partition(classification, req.DesiredCount)

	logPlan(logger, len(instances), result.Plan)

	if req.DryRun {
		result.FinishedAt = time.Now()

		return result, nil
	}

	err = s.emitter.Emit(ctx, result.Plan)
	if failure := core.BatchFailure(err, core.BatchStart); failure != nil {
		result.StartError = failure.Cause.Error()
	}

	if failure := core.BatchFailure(err, core.BatchStop); failure != nil {
		result.StopError = failure.Cause.Error()
	}

	result.FinishedAt = time.Now()

	s.recorder.ObserveRun(result, err)
	s.publish(ctx, logger, result)

	if err != nil {
		return result, err
	}

	logger.Info("Fleet converged")

	return result, nil
}

func (s *Scaler) listInstances(ctx context.Context) ([]core.Instance, error) {
	instances, err := s.provider.ListInstances(ctx)
	if err != nil {
		s.logger.WithError(err).Error("Failed to query inventory")

		return nil, &core.QueryFailure{Provider: s.provider.Name(), Cause: err}
	}

	return instances, nil
}

func (s *Scaler) publish(ctx context.Context, logger logrus.FieldLogger, result core.ScalingResult) {
	// Published even when ctx was cancelled mid-run.
	err := s.publisher.PublishScalingEvent(context.WithoutCancel(ctx), result)
	if err != nil {
		logger.WithError(err).Warn("Failed to publish scaling event")
	}
}

func logProvisioningParams(logger logrus.FieldLogger, req core.ScalingRequest) {
	if req.InstanceType == "" && req.SubnetID == "" && req.PlacementGroupID == "" {
		return
	}

	logger.WithFields(logrus.Fields{
		"instanceType":     req.InstanceType,
		"subnetID":         req.SubnetID,
		"placementGroupID": req.PlacementGroupID,
	}).Info("Provisioning parameters accepted but not used: new instances are never created")
}

func logPlan(logger logrus.FieldLogger, inventorySize int, plan core.Plan) {
	logger.WithFields(logrus.Fields{
		"inventory": inventorySize,
		"toStart":   len(plan.ToStart),
		"toStop":    len(plan.ToStop),
	}).Info("Plan computed")

	if len(plan.Unranked) > 0 {
		logger.WithField("instances", plan.Unranked).Warn("Workers with a non-numeric ordinal are left untouched")
	}

	if len(plan.Shadowed) > 0 {
		logger.WithField("instances", plan.Shadowed).Warn("Workers shadowed by a later instance with the same ordinal")
	}
}
