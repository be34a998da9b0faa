package repositories

import (
	"context"
	"time"
)

// SessionRepository persists sealed session blobs. It satisfies the session
// store's Storage, Pinger and Purger contracts.
type SessionRepository interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Set(ctx context.Context, key string, value []byte, expiresAt time.Time) error
	Clear(ctx context.Context, key string) error
	Purge(ctx context.Context, now time.Time) (int64, error)
	Ping(ctx context.Context) error
}
