package ratelimit

import (
	"context"
	"time"

	"github.com/go-redis/redis/v8"
)

// FixedWindow allows Limit hits per key per Window. Counters live in Redis
// at prefix+key so every instance shares them; the prefix carries its own
// separator.
type FixedWindow struct {
	rdb    *redis.Client
	prefix string
	limit  int
	window time.Duration
}

func NewFixedWindow(rdb *redis.Client, prefix string, limit int, window time.Duration) *FixedWindow {
	return &FixedWindow{rdb: rdb, prefix: prefix, limit: limit, window: window}
}

func (l *FixedWindow) Allow(ctx context.Context, key string) (bool, error) {
	k := l.prefix + key

	n, err := l.rdb.Incr(ctx, k).Result()
	if err != nil {
		return false, err
	}
	if n == 1 {
		if err := l.rdb.Expire(ctx, k, l.window).Err(); err != nil {
			return false, err
		}
	}
	return n <= int64(l.limit), nil
}
