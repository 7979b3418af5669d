package cache

import (
	"context"
	"time"
)

// Cache is the read-through cache in front of the job store. Published
// listings live under a versioned "jobs:published:" namespace and job
// details under "jobs:detail:<id>"; both degrade to the database when the
// cache is down, so errors here are advisory.
type Cache interface {
	GetJSON(ctx context.Context, key string, dst any) (hit bool, err error)
	SetJSON(ctx context.Context, key string, val any, ttl time.Duration) error
	Del(ctx context.Context, keys ...string) error
}
