package repository

import (
	"context"
	"time"
)

// CacheRepository stores serialized calculation results. Misses and backend
// errors both report ok=false; callers treat the cache as best effort.
type CacheRepository interface {
	Get(ctx context.Context, key string) (string, bool)
	Set(ctx context.Context, key string, value string, ttl time.Duration) error
}
