package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/billingfox/ozonator/internal/domain"
	"github.com/bsm/redislock"
	"github.com/redis/go-redis/v9"
)

const updateLockKey = "ozonator:update:lock"

// Locker serializes full update runs across processes. The cooldown
// timestamp alone is advisory and cannot do that.
type Locker interface {
	// Acquire returns a release func, or domain.ErrUpdateInProgress
	// when another runner holds the lease.
	Acquire(ctx context.Context) (func(), error)
}

type noopLocker struct{}

// NewNoopLocker performs no locking: concurrent triggers race past the
// cooldown check exactly as the advisory design allows.
func NewNoopLocker() Locker {
	return &noopLocker{}
}

func (n *noopLocker) Acquire(ctx context.Context) (func(), error) {
	return func() {}, nil
}

type redisLocker struct {
	client *redislock.Client
	ttl    time.Duration
}

// NewRedisLocker backs the update lock with a redis lease. The lease is
// not refreshed: TTL must exceed the longest expected run.
func NewRedisLocker(rdb *redis.Client, ttl time.Duration) Locker {
	if ttl <= 0 {
		ttl = 5 * time.Minute
	}
	return &redisLocker{client: redislock.New(rdb), ttl: ttl}
}

func (l *redisLocker) Acquire(ctx context.Context) (func(), error) {
	lock, err := l.client.Obtain(ctx, updateLockKey, l.ttl, nil)
	if errors.Is(err, redislock.ErrNotObtained) {
		return nil, domain.ErrUpdateInProgress
	}
	if err != nil {
		return nil, fmt.Errorf("could not obtain update lock: %w", err)
	}
	return func() {
		_ = lock.Release(context.WithoutCancel(ctx))
	}, nil
}
