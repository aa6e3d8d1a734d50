package lease

import (
	"context"
	"errors"
	"fmt"

	"github.com/nats-io/nats.go/jetstream"
)

// JetStreamKV adapts a JetStream key-value bucket. Keys expire with the bucket TTL, so a lease
// left behind by a crashed process is reclaimed automatically.
type JetStreamKV struct {
	KV jetstream.KeyValue
}

func (j JetStreamKV) Get(ctx context.Context, key string) ([]byte, error) {
	entry, err := j.KV.Get(ctx, key)
	if err != nil {
		return nil, fmt.Errorf("failed to get key %s: %w", key, err)
	}

	return entry.Value(), nil
}

func (j JetStreamKV) Create(ctx context.Context, key string, value []byte) (uint64, error) {
	seq, err := j.KV.Create(ctx, key, value)
	if err != nil {
		if errors.Is(err, jetstream.ErrKeyExists) {
			return 0, ErrKeyExists
		}

		return 0, fmt.Errorf("failed to create key %s: %w", key, err)
	}

	return seq, nil
}

func (j JetStreamKV) Delete(ctx context.Context, key string, revision uint64) error {
	err := j.KV.Purge(ctx, key, jetstream.LastRevision(revision))
	if err != nil {
		var apiErr *jetstream.APIError
		if errors.As(err, &apiErr) && apiErr.ErrorCode == jetstream.JSErrCodeStreamWrongLastSequence {
			return fmt.Errorf("%w: %w", ErrRevisionDiffer, err)
		}

		return fmt.Errorf("failed to delete key %s: %w", key, err)
	}

	return nil
}
