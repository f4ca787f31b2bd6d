package cache

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog/log"

	"cinetrip-backend/internal/config"
)

const pingTimeout = 2 * time.Second

// RedisClient owns the single go-redis client shared by the metadata cache and the scene lock.
// The client is created even when the server is down; callers degrade on command errors.
type RedisClient struct {
	Client *redis.Client
}

func NewRedisClient(cfg config.RedisConfig) *RedisClient {
	opts := &redis.Options{
		Addr:         cfg.Host,
		Password:     cfg.Password,
		DB:           cfg.DB,
		PoolSize:     10,
		MinIdleConns: 2,
		MaxRetries:   1,
		DialTimeout:  3 * time.Second,
		ReadTimeout:  time.Second,
		WriteTimeout: time.Second,
	}
	return &RedisClient{Client: redis.NewClient(opts)}
}

// Connect pings once so startup can log whether Redis is usable.
func (r *RedisClient) Connect(ctx context.Context) error {
	addr := r.Client.Options().Addr
	if err := r.ping(ctx); err != nil {
		return fmt.Errorf("redis at %s unreachable: %w", addr, err)
	}
	log.Info().Str("addr", addr).Msg("[REDIS] connected")
	return nil
}

func (r *RedisClient) HealthCheck(ctx context.Context) error {
	return r.ping(ctx)
}

func (r *RedisClient) ping(ctx context.Context) error {
	if r == nil || r.Client == nil {
		return errors.New("redis client is not initialized")
	}
	ctx, cancel := context.WithTimeout(ctx, pingTimeout)
	defer cancel()
	return r.Client.Ping(ctx).Err()
}

func (r *RedisClient) Close() error {
	if r == nil || r.Client == nil {
		return nil
	}
	return r.Client.Close()
}
