package fleet

import (
	"context"
	"errors"

	"github.com/sirupsen/logrus"
	"github.com/zhulik/fleetscaler/internal/core"
	"github.com/zhulik/fleetscaler/pkg/utils"
)

type batchFunc func(ctx context.Context, instanceIDs []string) error

// Emitter issues one lifecycle call per non-empty batch. It does not look at the current power
// state of the instances, does not retry and does not roll back: a failed batch leaves the
// other batch's effect in place.
type Emitter struct {
	lifecycle core.InstanceLifecycle
	logger    logrus.FieldLogger
}

func NewEmitter(lifecycle core.InstanceLifecycle, logger logrus.FieldLogger) Emitter {
	return Emitter{
		lifecycle: lifecycle,
		logger:    logger.WithField("component", "fleet.Emitter"),
	}
}

// Emit returns nil, a *core.CommandFailure, or both batches' failures joined.
func (e Emitter) Emit(ctx context.Context, plan core.Plan) error {
	stopErr := e.emit(ctx, core.BatchStop, plan.ToStop, e.lifecycle.StopInstances)
	startErr := e.emit(ctx, core.BatchStart, plan.ToStart, e.lifecycle.StartInstances)

	return errors.Join(startErr, stopErr)
}

func (e Emitter) emit(ctx context.Context, batch core.Batch, instanceIDs []string, call batchFunc) error {
	logger := e.logger.WithFields(logrus.Fields{
		"batch": batch.String(),
		"count": len(instanceIDs),
	})

	if len(instanceIDs) == 0 {
		logger.Debug("Nothing to do, skipping batch")

		return nil
	}

	logger.Infof("Issuing %s for %v", batch, instanceIDs)

	err := utils.Try(func() error { return call(ctx, instanceIDs) })
	if err != nil {
		logger.WithError(err).Error("Batch failed")

		return &core.CommandFailure{
			Batch:       batch,
			InstanceIDs: instanceIDs,
			Cause:       err,
		}
	}

	return nil
}
