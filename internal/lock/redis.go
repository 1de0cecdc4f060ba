package lock

import (
	"context"
	"fmt"
	"time"

	"github.com/go-redis/redis/v7"
	"github.com/google/uuid"
)

var _ Locker = (*RedisLocker)(nil)

// releaseScript deletes the key only while it still holds our token, so a lock
// that expired and was re-acquired elsewhere is left alone.
var releaseScript = redis.NewScript(`
if redis.call("get", KEYS[1]) == ARGV[1] then
	return redis.call("del", KEYS[1])
end
return 0
`)

// RedisLocker shares locks between server instances with SET NX PX.
type RedisLocker struct {
	client   *redis.Client
	ttl      time.Duration
	retryGap time.Duration
}

func NewRedisLocker(client *redis.Client, ttl time.Duration) *RedisLocker {
	if ttl <= 0 {
		ttl = 5 * time.Second
	}
	return &RedisLocker{client: client, ttl: ttl, retryGap: 25 * time.Millisecond}
}

func (l *RedisLocker) Acquire(ctx context.Context, key string) (func(), error) {
	owner := uuid.NewString()
	client := l.client.WithContext(ctx)

	for {
		ok, err := client.SetNX(key, owner, l.ttl).Result()
		if err != nil {
			return nil, fmt.Errorf("acquire lock %s: %w", key, err)
		}
		if ok {
			break
		}

		timer := time.NewTimer(l.retryGap)
		select {
		case <-ctx.Done():
			timer.Stop()
			return nil, ctx.Err()
		case <-timer.C:
		}
	}

	return func() {
		// Release must run even when the request context is already cancelled.
		_ = releaseScript.Run(l.client, []string{key}, owner).Err()
	}, nil
}

// Ping verifies connectivity at startup.
func Ping(client *redis.Client) error {
	if _, err := client.Ping().Result(); err != nil {
		return fmt.Errorf("ping redis: %w", err)
	}
	return nil
}
