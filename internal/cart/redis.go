package cart

import (
	"context"
	"errors"
	"time"

	pkgredis "github.com/marianalima/joalheria-backend/pkg/redis"
)

type redisStore interface {
	Get(ctx context.Context, key string) (string, error)
	Set(ctx context.Context, key string, value any, ttl time.Duration) error
	Del(ctx context.Context, keys ...string) error
}

type redisKeyer interface {
	CartKey(token string) string
}

// RedisKV is the production cart adapter: one Redis value per cart token
// with a sliding TTL.
type RedisKV struct {
	store redisStore
	keyer redisKeyer
	ttl   time.Duration
}

// NewRedisKV builds the Redis cart adapter.
func NewRedisKV(client *pkgredis.Client, ttl time.Duration) *RedisKV {
	return &RedisKV{store: client, keyer: client, ttl: ttl}
}

func (r *RedisKV) Get(ctx context.Context, token string) ([]byte, error) {
	raw, err := r.store.Get(ctx, r.keyer.CartKey(token))
	if err != nil {
		if errors.Is(err, pkgredis.Nil) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return []byte(raw), nil
}

func (r *RedisKV) Set(ctx context.Context, token string, payload []byte) error {
	return r.store.Set(ctx, r.keyer.CartKey(token), payload, r.ttl)
}

func (r *RedisKV) Del(ctx context.Context, token string) error {
	return r.store.Del(ctx, r.keyer.CartKey(token))
}
