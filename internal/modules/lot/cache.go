// README: Rendered map cache backed by Redis.
package lot

import (
	"context"
	"encoding/json"
	"time"

	"github.com/redis/go-redis/v9"
)

const mapCacheKey = "lot:map"

// MapCache keeps the rendered grid in Redis so repeated map reads skip the
// join against slots and sessions. Every grid or occupancy mutation must
// invalidate it.
type MapCache struct {
	redis *redis.Client
	ttl   time.Duration
}

func NewMapCache(redis *redis.Client, ttl time.Duration) *MapCache {
	return &MapCache{redis: redis, ttl: ttl}
}

func (c *MapCache) Get(ctx context.Context) (*Map, bool, error) {
	val, err := c.redis.Get(ctx, mapCacheKey).Bytes()
	if err == redis.Nil {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, err
	}
	var m Map
	if err := json.Unmarshal(val, &m); err != nil {
		return nil, false, err
	}
	return &m, true, nil
}

func (c *MapCache) Set(ctx context.Context, m *Map) error {
	val, err := json.Marshal(m)
	if err != nil {
		return err
	}
	return c.redis.Set(ctx, mapCacheKey, val, c.ttl).Err()
}

func (c *MapCache) Invalidate(ctx context.Context) error {
	return c.redis.Del(ctx, mapCacheKey).Err()
}
