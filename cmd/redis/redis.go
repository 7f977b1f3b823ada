// Package redisclient builds the Redis connection backing the session
// registry.
package redisclient

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/muhammadheryan/car-traders/cmd/config"
	"github.com/redis/go-redis/v9"
)

const (
	clientName  = "car-traders"
	pingTimeout = 5 * time.Second
)

// ErrNotInitialized is returned when a repository was built without a client.
var ErrNotInitialized = errors.New("redis client not initialized")

// Options maps the Redis section of the config onto client options.
func Options(cfg *config.Config) *redis.Options {
	return &redis.Options{
		Addr:         fmt.Sprintf("%s:%d", cfg.Redis.Host, cfg.Redis.Port),
		Password:     cfg.Redis.Password,
		DB:           cfg.Redis.DB,
		ClientName:   clientName,
		DialTimeout:  pingTimeout,
		ReadTimeout:  3 * time.Second,
		WriteTimeout: 3 * time.Second,
	}
}

// New connects to Redis and verifies connectivity.
func New(cfg *config.Config) (*redis.Client, error) {
	if cfg == nil {
		return nil, fmt.Errorf("nil config provided")
	}

	opt := Options(cfg)
	c := redis.NewClient(opt)

	ctx, cancel := context.WithTimeout(context.Background(), pingTimeout)
	defer cancel()

	if err := c.Ping(ctx).Err(); err != nil {
		_ = c.Close()
		return nil, fmt.Errorf("unable to ping redis at %s: %w", opt.Addr, err)
	}
	return c, nil
}
