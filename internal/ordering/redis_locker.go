package ordering

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

var releaseScript = redis.NewScript(`
	if redis.call("get", KEYS[1]) == ARGV[1] then
		return redis.call("del", KEYS[1])
	else
		return 0
	end
`)

// RedisLocker serialises reorders across processes with SET NX locks.
type RedisLocker struct {
	client  redis.UniversalClient
	prefix  string
	ttl     time.Duration
	timeout time.Duration
}

func NewRedisLocker(client redis.UniversalClient, prefix string, ttl, timeout time.Duration) *RedisLocker {
	if prefix == "" {
		prefix = "sections:lock:"
	}
	if ttl <= 0 {
		ttl = 10 * time.Second
	}
	if timeout <= 0 {
		timeout = 2 * time.Second
	}
	return &RedisLocker{client: client, prefix: prefix, ttl: ttl, timeout: timeout}
}

// Lock retries with exponential backoff until the lock is taken, the
// timeout elapses, or ctx is done.
func (l *RedisLocker) Lock(ctx context.Context, key string) (func(), error) {
	lockKey := l.prefix + key
	value := uuid.NewString()
	deadline := time.Now().Add(l.timeout)
	backoff := 10 * time.Millisecond

	for {
		ok, err := l.client.SetNX(ctx, lockKey, value, l.ttl).Result()
		if err != nil {
			return nil, err
		}
		if ok {
			break
		}
		if !time.Now().Before(deadline) {
			return nil, ErrLockNotAcquired
		}
		select {
		case <-ctx.Done():
			return nil, errors.Join(ErrLockNotAcquired, ctx.Err())
		case <-time.After(backoff):
			backoff *= 2
			if backoff > 500*time.Millisecond {
				backoff = 500 * time.Millisecond
			}
		}
	}

	return func() {
		// the lock expires on its own if release fails
		_ = releaseScript.Run(context.WithoutCancel(ctx), l.client, []string{lockKey}, value).Err()
	}, nil
}
