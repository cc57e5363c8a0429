package redis

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	redislib "github.com/redis/go-redis/v9"

	"github.com/fastygo/homeplanner/domain"
)

// ListCache stores serialized per-owner collection listings with a TTL.
type ListCache struct {
	client *redislib.Client
	prefix string
	ttl    time.Duration
}

// NewListCache creates a Redis-backed list cache.
func NewListCache(client *redislib.Client, prefix string, ttl time.Duration) *ListCache {
	if ttl <= 0 {
		ttl = 5 * time.Minute
	}
	if prefix == "" {
		prefix = "homeplanner:list:"
	}
	return &ListCache{
		client: client,
		prefix: prefix,
		ttl:    ttl,
	}
}

// Get decodes the cached listing into dest. It reports false on a miss.
func (c *ListCache) Get(ctx context.Context, collection string, owner domain.UserID, dest any) (bool, error) {
	raw, err := c.client.Get(ctx, c.key(collection, owner)).Bytes()
	if err != nil {
		if errors.Is(err, redislib.Nil) {
			return false, nil
		}
		return false, err
	}
	if err := json.Unmarshal(raw, dest); err != nil {
		return false, err
	}
	return true, nil
}

func (c *ListCache) Set(ctx context.Context, collection string, owner domain.UserID, value any) error {
	payload, err := json.Marshal(value)
	if err != nil {
		return err
	}
	return c.client.Set(ctx, c.key(collection, owner), payload, c.ttl).Err()
}

func (c *ListCache) Invalidate(ctx context.Context, collection string, owner domain.UserID) error {
	return c.client.Del(ctx, c.key(collection, owner)).Err()
}

func (c *ListCache) key(collection string, owner domain.UserID) string {
	return c.prefix + collection + ":" + string(owner)
}
