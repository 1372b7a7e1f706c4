package repository

import (
	"context"
	"time"
)

// CacheRepository stores computed reports keyed by share token hash.
// A ttl of 0 keeps the entry until evicted.
type CacheRepository interface {
	Get(ctx context.Context, key string) (string, bool)
	Set(ctx context.Context, key string, value string, ttl time.Duration) error
}
