package lock

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/bsm/redislock"
	"github.com/redis/go-redis/v9"
)

// RedisLocker implements Locker on top of redislock, giving mutual exclusion
// across service instances.
type RedisLocker struct {
	client *redislock.Client
}

// NewRedisLocker creates a RedisLocker from an existing redis client.
func NewRedisLocker(redisClient redis.UniversalClient) *RedisLocker {
	return &RedisLocker{client: redislock.New(redisClient)}
}

var _ Locker = (*RedisLocker)(nil)

// Obtain implements Locker. It does not retry: a busy lock means another
// processing step is in flight and the caller should fail fast.
func (l *RedisLocker) Obtain(ctx context.Context, key string, ttl time.Duration) (Handle, error) {
	lk, err := l.client.Obtain(ctx, key, ttl, nil)
	if err != nil {
		if errors.Is(err, redislock.ErrNotObtained) {
			return nil, ErrNotObtained
		}
		return nil, fmt.Errorf("failed to obtain lock %s: %w", key, err)
	}
	return redisHandle{lock: lk}, nil
}

type redisHandle struct {
	lock *redislock.Lock
}

func (h redisHandle) Release(ctx context.Context) error {
	if err := h.lock.Release(ctx); err != nil && !errors.Is(err, redislock.ErrLockNotHeld) {
		return err
	}
	return nil
}
