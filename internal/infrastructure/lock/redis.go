package lock

import (
	"context"
	"errors"
	"time"

	"credit-approval/pkg/id"

	"github.com/redis/go-redis/v9"
)

// ErrHeld is returned when another owner holds the key.
var ErrHeld = errors.New("lock is held by another owner")

// releaseScript deletes the key only if it still carries our token, so a
// lock that expired and was re-acquired elsewhere is left alone.
var releaseScript = redis.NewScript(`
if redis.call("GET", KEYS[1]) == ARGV[1] then
	return redis.call("DEL", KEYS[1])
end
return 0
`)

type RedisLocker struct {
	rdb    *redis.Client
	ttl    time.Duration
	prefix string
}

func NewRedisLocker(rdb *redis.Client, ttl time.Duration) *RedisLocker {
	return &RedisLocker{rdb: rdb, ttl: ttl, prefix: "lock:"}
}

// Acquire takes key without waiting. The lock expires after the locker's
// TTL even if release is never called.
func (l *RedisLocker) Acquire(ctx context.Context, key string) (release func(), err error) {
	token := id.New()
	full := l.prefix + key
	ok, err := l.rdb.SetNX(ctx, full, token, l.ttl).Result()
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, ErrHeld
	}
	return func() {
		ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
		defer cancel()
		_ = releaseScript.Run(ctx, l.rdb, []string{full}, token).Err()
	}, nil
}
