package session

import (
	"context"
	"time"

	"github.com/redis/go-redis/v9"
)

const consumedKeyPrefix = "session:consumed:"

//go:generate mockgen -source=consumer.go -destination=mock/consumer_mock.go -package=mock

// Consumer enforces the one-punch-per-session rule server-side.
// Clearing the worker cookie on the kiosk is not enough: a captured
// token would otherwise stay valid for its remaining lifetime.
type Consumer interface {
	Consume(ctx context.Context, jti string, ttl time.Duration) error
	IsConsumed(ctx context.Context, jti string) (bool, error)
}

type redisConsumer struct {
	rdb *redis.Client
}

func NewRedisConsumer(rdb *redis.Client) Consumer {
	return &redisConsumer{rdb: rdb}
}

// Consume marks the session used. The key only needs to outlive the
// token, so it expires with the worker TTL.
func (c *redisConsumer) Consume(ctx context.Context, jti string, ttl time.Duration) error {
	if ttl <= 0 {
		ttl = WorkerTTL
	}
	return c.rdb.SetNX(ctx, consumedKeyPrefix+jti, "1", ttl).Err()
}

func (c *redisConsumer) IsConsumed(ctx context.Context, jti string) (bool, error) {
	n, err := c.rdb.Exists(ctx, consumedKeyPrefix+jti).Result()
	if err != nil {
		return false, err
	}
	return n > 0, nil
}
