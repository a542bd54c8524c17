package statistik

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/ariefcatur/djikoe/internal/redisx"
	"github.com/redis/go-redis/v9"
)

type Cache interface {
	Get(ctx context.Context) (Dashboard, bool, error)
	Set(ctx context.Context, d Dashboard, ttl time.Duration) error
	Invalidate(ctx context.Context) error
}

type RedisCache struct{ RDB *redis.Client }

func (c *RedisCache) Get(ctx context.Context) (Dashboard, bool, error) {
	raw, err := c.RDB.Get(ctx, redisx.KeyStatistik).Bytes()
	if errors.Is(err, redis.Nil) {
		return Dashboard{}, false, nil
	}
	if err != nil {
		return Dashboard{}, false, err
	}
	var d Dashboard
	if err := json.Unmarshal(raw, &d); err != nil {
		return Dashboard{}, false, err
	}
	return d, true, nil
}

func (c *RedisCache) Set(ctx context.Context, d Dashboard, ttl time.Duration) error {
	b, err := json.Marshal(d)
	if err != nil {
		return err
	}
	return c.RDB.Set(ctx, redisx.KeyStatistik, b, ttl).Err()
}

func (c *RedisCache) Invalidate(ctx context.Context) error {
	return c.RDB.Del(ctx, redisx.KeyStatistik).Err()
}
