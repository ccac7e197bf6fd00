// Package lock serializes critical sections by key, in process or across
// instances through Redis.
package lock

import (
	"context"
	"errors"
	"time"
)

// ErrNotAcquired is returned when the context ends before the lock is free.
var ErrNotAcquired = errors.New("lock: not acquired")

// Locker hands out exclusive, keyed locks. The returned release func is safe
// to call more than once.
type Locker interface {
	Acquire(ctx context.Context, key string, ttl time.Duration) (release func(), err error)
}
