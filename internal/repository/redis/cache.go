package redisrepo

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	redisx "github.com/kirinyoku/ttgo/internal/redis"
	"github.com/redis/go-redis/v9"
	"golang.org/x/sync/singleflight"
)

// Cache is a JSON read-through cache for rendered timetables. Concurrent
// misses on one key share a single load. An entry that no longer decodes is
// dropped and treated as a miss.
type Cache struct {
	rdb *redis.Client
	sf  singleflight.Group
}

func New(client *redis.Client) *Cache {
	return &Cache{rdb: client}
}

func GetJSON[T any](ctx context.Context, c *Cache, key string) (T, bool, error) {
	var out T

	raw, err := c.rdb.Get(ctx, key).Bytes()
	if errors.Is(err, redis.Nil) {
		return out, false, nil
	}
	if err != nil {
		return out, false, err
	}

	if err := json.Unmarshal(raw, &out); err != nil {
		_ = c.rdb.Del(ctx, key).Err()
		var zero T
		return zero, false, nil
	}

	return out, true, nil
}

func SetJSON(
	ctx context.Context,
	c *Cache,
	key string,
	val any,
	ttl time.Duration,
) error {
	b, err := json.Marshal(val)
	if err != nil {
		return err
	}

	return c.rdb.Set(ctx, key, b, ttl).Err()
}

// GetOrSetJSON returns the cached value under key or loads, stores and
// returns it. Loader errors are returned and never cached. A failed store
// still returns the loaded value.
func GetOrSetJSON[T any](
	ctx context.Context,
	c *Cache,
	key string,
	ttl time.Duration,
	loader func(ctx context.Context) (T, error),
) (T, error) {
	if v, ok, err := GetJSON[T](ctx, c, key); err != nil || ok {
		return v, err
	}

	shared, err, _ := c.sf.Do(key, func() (any, error) {
		if v, ok, err := GetJSON[T](ctx, c, key); err != nil || ok {
			return v, err
		}
		v, err := loader(ctx)
		if err != nil {
			return nil, err
		}
		_ = SetJSON(ctx, c, key, v, ttl)
		return v, nil
	})
	if err != nil {
		var zero T
		return zero, err
	}

	v, ok := shared.(T)
	if !ok {
		var zero T
		return zero, fmt.Errorf("cache %s: unexpected type %T", key, shared)
	}

	return v, nil
}

// InvalidateTimetable drops the cached viewer timetable of an event.
func (c *Cache) InvalidateTimetable(ctx context.Context, eventID uuid.UUID) error {
	return c.rdb.Del(ctx, redisx.KeyTimetableView(eventID)).Err()
}
