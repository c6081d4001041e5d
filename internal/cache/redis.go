// Package cache stores successful step results between suite runs so that
// unchanged samples are not re-probed on every invocation of the suite.
package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/jo-hoe/imgsuite/internal/scenario"
)

const keyPrefix = "imgsuite:result:"

// RedisCache implements scenario.ResultCache on top of a redis instance.
type RedisCache struct {
	client *redis.Client
	ttl    time.Duration
}

var _ scenario.ResultCache = (*RedisCache)(nil)

// NewRedisCache connects to the redis instance at address. Entries expire
// after ttl; a zero ttl keeps them until redis evicts them.
func NewRedisCache(address string, ttl time.Duration) *RedisCache {
	client := redis.NewClient(&redis.Options{
		Addr: address,
	})
	return &RedisCache{
		client: client,
		ttl:    ttl,
	}
}

// Get returns the cached result for key, reporting a miss for absent keys.
func (c *RedisCache) Get(key string) (*scenario.StepResult, bool, error) {
	data, err := c.client.Get(context.Background(), keyPrefix+key).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("failed to read cached result: %w", err)
	}

	var result scenario.StepResult
	if err := json.Unmarshal(data, &result); err != nil {
		return nil, false, fmt.Errorf("failed to decode cached result: %w", err)
	}
	return &result, true, nil
}

// Set stores the result under key with the configured TTL.
func (c *RedisCache) Set(key string, result *scenario.StepResult) error {
	data, err := json.Marshal(result)
	if err != nil {
		return fmt.Errorf("failed to encode result for caching: %w", err)
	}
	if err := c.client.Set(context.Background(), keyPrefix+key, data, c.ttl).Err(); err != nil {
		return fmt.Errorf("failed to store cached result: %w", err)
	}
	return nil
}

// Close releases the underlying redis connection.
func (c *RedisCache) Close() error {
	return c.client.Close()
}
