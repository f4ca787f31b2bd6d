package cache

import (
	"context"
	"time"
)

// Cache interface định nghĩa contract cho cache layer
// Có thể swap implementation (Redis, in-memory) mà không ảnh hưởng caller
type Cache interface {
	// Get reads key and unmarshals it into dest.
	// found=false nghĩa là cache miss, dest không bị thay đổi
	Get(ctx context.Context, key string, dest interface{}) (bool, error)

	// Set stores value as JSON with the given TTL.
	Set(ctx context.Context, key string, value interface{}, ttl time.Duration) error

	Delete(ctx context.Context, keys ...string) error

	Ping(ctx context.Context) error

	DeletePattern(ctx context.Context, pattern string) error
	Increment(ctx context.Context, key string) (int64, error)
	Exists(ctx context.Context, key string) (bool, error)
	Expire(ctx context.Context, key string, ttl time.Duration) error
	TTL(ctx context.Context, key string) (time.Duration, error)
}

// Locker hands out named advisory locks shared between processes.
type Locker interface {
	// TryLock sets key when it is free and returns a token identifying the holder.
	// ok=false nghĩa là lock đang được giữ bởi process khác
	TryLock(ctx context.Context, key string, ttl time.Duration) (token string, ok bool, err error)

	// Unlock releases key only if it is still held with token.
	Unlock(ctx context.Context, key, token string) error
}
