package lease

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/nats-io/nats.go/jetstream"
	"github.com/samber/do"
	"github.com/sirupsen/logrus"
	"github.com/zhulik/fleetscaler/internal/core"
	"github.com/zhulik/fleetscaler/internal/pubsub/nats"
)

const (
	bucketSetupTimeout = 10 * time.Second
	releaseTimeout     = 5 * time.Second
)

// NatsLease is a single key in a TTL'd JetStream bucket. Whoever creates the key holds the lease
// until it deletes the key or the TTL expires.
type NatsLease struct {
	kv     KV
	key    string
	logger logrus.FieldLogger
}

func NewNatsLease(injector *do.Injector) (*NatsLease, error) {
	config := do.MustInvoke[core.Config](injector)

	client, err := do.Invoke[*nats.Client](injector)
	if err != nil {
		return nil, err
	}

	ctx, cancel := context.WithTimeout(context.Background(), bucketSetupTimeout)
	defer cancel()

	bucket, err := client.JetStream.CreateOrUpdateKeyValue(ctx, jetstream.KeyValueConfig{
		Bucket:      core.LeaseBucketName,
		Description: "fleetscaler run leases",
		TTL:         config.LeaseTTL(),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create lease bucket: %w", err)
	}

	return New(JetStreamKV{KV: bucket}, core.LeaseKeyScale, do.MustInvoke[logrus.FieldLogger](injector)), nil
}

func New(kv KV, key string, logger logrus.FieldLogger) *NatsLease {
	return &NatsLease{
		kv:  kv,
		key: key,
		logger: logger.WithFields(logrus.Fields{
			"component": "lease.NatsLease",
			"key":       key,
		}),
	}
}

func (l *NatsLease) Acquire(ctx context.Context, holder string) (func(), error) {
	revision, err := l.kv.Create(ctx, l.key, []byte(holder))
	if err != nil {
		if errors.Is(err, ErrKeyExists) {
			return nil, fmt.Errorf("%w: held by %s", core.ErrRunInProgress, l.holder(ctx))
		}

		return nil, fmt.Errorf("failed to acquire lease: %w", err)
	}

	logger := l.logger.WithField("holder", holder)
	logger.Debug("Lease acquired")

	return func() {
		ctx, cancel := context.WithTimeout(context.WithoutCancel(ctx), releaseTimeout)
		defer cancel()

		err := l.kv.Delete(ctx, l.key, revision)
		if err != nil {
			logger.WithError(err).Warn("Failed to release lease, it expires with the bucket TTL")

			return
		}

		logger.Debug("Lease released")
	}, nil
}

func (l *NatsLease) holder(ctx context.Context) string {
	value, err := l.kv.Get(ctx, l.key)
	if err != nil {
		return "unknown"
	}

	return string(value)
}
