package redis

import (
	"context"
	"time"

	redisclient "github.com/muhammadheryan/car-traders/cmd/redis"
	goredis "github.com/redis/go-redis/v9"
)

const sessionPrefix = "session:"

// Repository defines the session registry kept in Redis
type Repository interface {
	SetSession(ctx context.Context, sessionID string, userID uint64, ttl time.Duration) error
	GetSession(ctx context.Context, sessionID string) (uint64, error)
	DeleteSession(ctx context.Context, sessionID string) error
}

type redis struct {
	client *goredis.Client
}

// NewRepository returns a Redis Repository implementation
func NewRepository(client *goredis.Client) Repository {
	return &redis{client: client}
}

// SetSession stores a session with userID and TTL
func (r *redis) SetSession(ctx context.Context, sessionID string, userID uint64, ttl time.Duration) error {
	if r.client == nil {
		return redisclient.ErrNotInitialized
	}
	return r.client.Set(ctx, sessionPrefix+sessionID, userID, ttl).Err()
}

// GetSession retrieves userID from session
func (r *redis) GetSession(ctx context.Context, sessionID string) (uint64, error) {
	if r.client == nil {
		return 0, redisclient.ErrNotInitialized
	}
	return r.client.Get(ctx, sessionPrefix+sessionID).Uint64()
}

// DeleteSession removes a session from Redis
func (r *redis) DeleteSession(ctx context.Context, sessionID string) error {
	if r.client == nil {
		return redisclient.ErrNotInitialized
	}
	return r.client.Del(ctx, sessionPrefix+sessionID).Err()
}
