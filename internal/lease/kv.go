package lease

import (
	"context"
	"errors"
)

var (
	ErrKeyExists      = errors.New("key already exists")
	ErrRevisionDiffer = errors.New("revision does not match")
)

// KV is the compare-and-set subset of a key-value bucket the lease relies on.
type KV interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Create(ctx context.Context, key string, value []byte) (uint64, error)
	Delete(ctx context.Context, key string, revision uint64) error
}
