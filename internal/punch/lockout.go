package punch

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

const (
	lockoutMaxFailures = 5
	lockoutWindow      = 60 * time.Second
)

//go:generate mockgen -source=lockout.go -destination=mock/lockout_mock.go -package=mock

// Lockout throttles PIN guessing per client IP. Four-digit PINs have a
// tiny keyspace, so the window is deliberately aggressive.
type Lockout interface {
	IsLocked(ctx context.Context, ip string) (bool, error)
	RecordFailure(ctx context.Context, ip string) error
	Clear(ctx context.Context, ip string) error
}

type redisLockout struct {
	rdb *redis.Client
}

func NewRedisLockout(rdb *redis.Client) Lockout {
	return &redisLockout{rdb: rdb}
}

func lockoutKey(ip string) string {
	return fmt.Sprintf("pin:failures:%s", ip)
}

func (l *redisLockout) IsLocked(ctx context.Context, ip string) (bool, error) {
	n, err := l.rdb.Get(ctx, lockoutKey(ip)).Int()
	if err == redis.Nil {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return n >= lockoutMaxFailures, nil
}

func (l *redisLockout) RecordFailure(ctx context.Context, ip string) error {
	key := lockoutKey(ip)
	n, err := l.rdb.Incr(ctx, key).Result()
	if err != nil {
		return err
	}
	if n == 1 {
		return l.rdb.Expire(ctx, key, lockoutWindow).Err()
	}
	return nil
}

func (l *redisLockout) Clear(ctx context.Context, ip string) error {
	return l.rdb.Del(ctx, lockoutKey(ip)).Err()
}
