package repository

import (
	"context"
	"time"
)

// CacheRepository stores short-lived values such as the last analysis
// result shown to a user. A missing key is reported with ok=false.
type CacheRepository interface {
	Get(ctx context.Context, key string) (string, bool, error)
	Set(ctx context.Context, key string, value string, ttl time.Duration) error
}
