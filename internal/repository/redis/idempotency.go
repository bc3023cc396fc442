package redisrepo

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

const idemLock = "LOCK"

// StoredResponse is the first answer given under an Idempotency-Key.
type StoredResponse struct {
	Status int             `json:"status"`
	Body   json.RawMessage `json:"body"`
}

// IdempotencyStore remembers the response of a request made under an
// Idempotency-Key. A key is either locked while the first request runs or
// holds the stored response until ttl expires.
type IdempotencyStore struct {
	rdb *redis.Client
	ttl time.Duration
}

func NewIdempotencyStore(rdb *redis.Client, ttl time.Duration) *IdempotencyStore {
	return &IdempotencyStore{rdb: rdb, ttl: ttl}
}

// AcquireLock claims key for lockTTL. It reports false when another request
// holds the lock or a response is already stored.
func (s *IdempotencyStore) AcquireLock(ctx context.Context, key string, lockTTL time.Duration) (bool, error) {
	return s.rdb.SetNX(ctx, key, idemLock, lockTTL).Result()
}

// SaveResult replaces the lock with the response.
func (s *IdempotencyStore) SaveResult(ctx context.Context, key string, status int, body []byte) error {
	b, err := json.Marshal(StoredResponse{Status: status, Body: body})
	if err != nil {
		return fmt.Errorf("redisrepo.IdempotencyStore.SaveResult: %w", err)
	}
	return s.rdb.Set(ctx, key, b, s.ttl).Err()
}

// GetResult returns the stored response. A held lock or a missing key both
// report false.
func (s *IdempotencyStore) GetResult(ctx context.Context, key string) (*StoredResponse, bool, error) {
	v, err := s.rdb.Get(ctx, key).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, err
	}
	if string(v) == idemLock {
		return nil, false, nil
	}

	var res StoredResponse
	if err := json.Unmarshal(v, &res); err != nil {
		return nil, false, nil
	}
	return &res, true, nil
}

// Release drops the key so a failed request can be retried under it.
func (s *IdempotencyStore) Release(ctx context.Context, key string) error {
	return s.rdb.Del(ctx, key).Err()
}
