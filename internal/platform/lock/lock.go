// Package lock provides per-application processing locks so that two
// concurrent orchestrator calls for the same application cannot both reach
// the commodity venue.
package lock

import (
	"context"
	"errors"
	"time"
)

// ErrNotObtained is returned when the lock is currently held elsewhere.
var ErrNotObtained = errors.New("lock not obtained")

// Handle is a held lock.
type Handle interface {
	// Release frees the lock before its TTL expires.
	Release(ctx context.Context) error
}

// Locker obtains named locks with a TTL. The TTL bounds how long a crashed
// holder can keep an application wedged.
type Locker interface {
	Obtain(ctx context.Context, key string, ttl time.Duration) (Handle, error)
}

// NoopLocker performs no locking. Suitable for tests and strictly
// single-instance deployments where the database CAS guards are enough.
type NoopLocker struct{}

// Obtain implements Locker.
func (NoopLocker) Obtain(ctx context.Context, key string, ttl time.Duration) (Handle, error) {
	return noopHandle{}, nil
}

type noopHandle struct{}

func (noopHandle) Release(ctx context.Context) error { return nil }
