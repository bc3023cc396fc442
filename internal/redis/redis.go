// Package redisx builds the Redis client and owns the key namespace and the
// timetable-changed channel shared by every instance.
package redisx

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

type Config struct {
	Addr     string
	Password string
	DB       int
	// PoolSize of zero keeps the go-redis default.
	PoolSize int
}

const (
	pingTimeout = 3 * time.Second
	// Cache and limiter calls sit on the public read path; a slow Redis
	// must not hold requests for long.
	opTimeout = 500 * time.Millisecond
)

// New connects and pings. The client is closed again if the ping fails.
func New(ctx context.Context, cfg Config) (*redis.Client, error) {
	const op = "redisx.New"

	client := redis.NewClient(&redis.Options{
		Addr:         cfg.Addr,
		Password:     cfg.Password,
		DB:           cfg.DB,
		PoolSize:     cfg.PoolSize,
		DialTimeout:  pingTimeout,
		ReadTimeout:  opTimeout,
		WriteTimeout: opTimeout,
	})

	ctxPing, cancel := context.WithTimeout(ctx, pingTimeout)
	defer cancel()

	if err := client.Ping(ctxPing).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("%s: ping %s: %w", op, cfg.Addr, err)
	}

	return client, nil
}
