package service

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"github.com/rs/zerolog/log"

	"cinetrip-backend/pkg/cache"
	"cinetrip-backend/pkg/keylock"
)

const (
	lockKeyPrefix   = "scene:lock:"
	lockTTL         = 30 * time.Second
	lockPollEvery   = 100 * time.Millisecond
	lockReleaseWait = 3 * time.Second
)

// movieLock serializes the write phase of a movie: in process always, across instances when Redis answers.
type movieLock struct {
	local  *keylock.KeyLock
	remote cache.Locker // optional
	ttl    time.Duration
	poll   time.Duration
}

func newMovieLock(remote cache.Locker) *movieLock {
	return &movieLock{
		local:  keylock.New(),
		remote: remote,
		ttl:    lockTTL,
		poll:   lockPollEvery,
	}
}

// acquire blocks until the movie is free or ctx is done. The release func must be called once.
func (l *movieLock) acquire(ctx context.Context, tmdbID int) (func(), error) {
	key := lockKeyPrefix + strconv.Itoa(tmdbID)

	unlockLocal, err := l.local.Lock(ctx, key)
	if err != nil {
		return nil, fmt.Errorf("acquire lock %s: %w", key, err)
	}
	if l.remote == nil {
		return unlockLocal, nil
	}

	token, err := l.waitRemote(ctx, key)
	if err != nil {
		unlockLocal()
		return nil, err
	}
	if token == "" {
		return unlockLocal, nil
	}

	return func() {
		// the request context may already be cancelled here
		releaseCtx, cancel := context.WithTimeout(context.Background(), lockReleaseWait)
		defer cancel()
		if err := l.remote.Unlock(releaseCtx, key, token); err != nil {
			log.Warn().Err(err).Str("key", key).Msg("[LOCK] redis unlock failed, key will expire")
		}
		unlockLocal()
	}, nil
}

// waitRemote polls the shared lock. An empty token means Redis is unreachable and only the local lock applies.
func (l *movieLock) waitRemote(ctx context.Context, key string) (string, error) {
	ticker := time.NewTicker(l.poll)
	defer ticker.Stop()

	for {
		token, ok, err := l.remote.TryLock(ctx, key, l.ttl)
		if err != nil {
			if ctx.Err() != nil {
				return "", fmt.Errorf("acquire lock %s: %w", key, ctx.Err())
			}
			log.Warn().Err(err).Str("key", key).Msg("[LOCK] redis lock unavailable, continuing with local lock")
			return "", nil
		}
		if ok {
			return token, nil
		}

		select {
		case <-ctx.Done():
			return "", fmt.Errorf("acquire lock %s: %w", key, ctx.Err())
		case <-ticker.C:
		}
	}
}
