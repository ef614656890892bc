package rediscache

import (
	"context"
	"time"

	"github.com/BearBump/SalesTrack/internal/apperr"
	"github.com/bsm/redislock"
	"github.com/pkg/errors"
	"github.com/redis/go-redis/v9"
)

// ErrLocked is returned by Obtain when another holder owns the key.
var ErrLocked = errors.Wrap(apperr.ErrConflict, "lock is held by another process")

// Locker hands out short-lived exclusive locks on business keys.
type Locker struct {
	client *redislock.Client
}

func NewLocker(c *redis.Client) *Locker {
	return &Locker{client: redislock.New(c)}
}

// Obtain takes key for ttl without waiting. The returned func releases it;
// releasing an expired lock is not an error.
func (l *Locker) Obtain(ctx context.Context, key string, ttl time.Duration) (func(context.Context) error, error) {
	lock, err := l.client.Obtain(ctx, key, ttl, nil)
	if errors.Is(err, redislock.ErrNotObtained) {
		return nil, ErrLocked
	}
	if err != nil {
		return nil, errors.Wrap(err, "redis lock")
	}
	return func(ctx context.Context) error {
		if err := lock.Release(ctx); err != nil && !errors.Is(err, redislock.ErrLockNotHeld) {
			return errors.Wrap(err, "redis unlock")
		}
		return nil
	}, nil
}
