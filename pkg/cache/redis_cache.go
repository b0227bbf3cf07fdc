package cache

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"fleetops-backend/internal/models"

	"github.com/redis/go-redis/v9"
)

// RedisManager implements Manager on Redis. Every stored key is added to a
// per-organisation tag set so a single ledger mutation can drop all of the
// organisation's cached reads at once.
type RedisManager struct {
	client *redis.Client
	config Config
	ctx    context.Context
}

// NewRedisManager creates a Redis-backed cache manager.
func NewRedisManager(client *redis.Client, config Config) *RedisManager {
	return &RedisManager{
		client: client,
		config: config,
		ctx:    context.Background(),
	}
}

// GetFloatList retrieves a cached float list. A miss returns (nil, nil).
func (r *RedisManager) GetFloatList(key string) ([]*models.Float, error) {
	data, err := r.client.Get(r.ctx, r.buildKey(key)).Result()
	if err != nil {
		if err == redis.Nil {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get float list from cache: %w", err)
	}

	var floats []*models.Float
	if err := json.Unmarshal([]byte(data), &floats); err != nil {
		return nil, fmt.Errorf("failed to unmarshal float list: %w", err)
	}

	return floats, nil
}

// SetFloatList stores a float list and tags it to its organisation.
func (r *RedisManager) SetFloatList(organisationID, key string, floats []*models.Float, ttl time.Duration) error {
	return r.Set(organisationID, key, floats, ttl)
}

// Get retrieves an arbitrary JSON value. A miss leaves dest untouched and
// returns nil.
func (r *RedisManager) Get(key string, dest interface{}) error {
	data, err := r.client.Get(r.ctx, r.buildKey(key)).Result()
	if err != nil {
		if err == redis.Nil {
			return nil
		}
		return fmt.Errorf("failed to get %s from cache: %w", key, err)
	}

	if err := json.Unmarshal([]byte(data), dest); err != nil {
		return fmt.Errorf("failed to unmarshal cached %s: %w", key, err)
	}

	return nil
}

// Set stores an arbitrary JSON value with TTL and tags it to its
// organisation.
func (r *RedisManager) Set(organisationID, key string, value interface{}, ttl time.Duration) error {
	data, err := json.Marshal(value)
	if err != nil {
		return fmt.Errorf("failed to marshal %s: %w", key, err)
	}

	fullKey := r.buildKey(key)
	if err := r.client.Set(r.ctx, fullKey, data, ttl).Err(); err != nil {
		return fmt.Errorf("failed to set %s in cache: %w", key, err)
	}

	tagKey := r.tagKey(organisationID)
	if err := r.client.SAdd(r.ctx, tagKey, fullKey).Err(); err != nil {
		return fmt.Errorf("failed to tag cache key %s: %w", key, err)
	}
	// Tag sets outlive their members slightly so invalidation stays cheap.
	return r.client.Expire(r.ctx, tagKey, ttl+time.Minute).Err()
}

func (r *RedisManager) Delete(key string) error {
	return r.client.Del(r.ctx, r.buildKey(key)).Err()
}

// InvalidateOrganisation drops every key tagged to the organisation.
func (r *RedisManager) InvalidateOrganisation(organisationID string) error {
	tagKey := r.tagKey(organisationID)

	keys, err := r.client.SMembers(r.ctx, tagKey).Result()
	if err != nil {
		return fmt.Errorf("failed to read cache tag set for %s: %w", organisationID, err)
	}

	if len(keys) > 0 {
		if err := r.client.Del(r.ctx, keys...).Err(); err != nil {
			return fmt.Errorf("failed to invalidate cached keys for %s: %w", organisationID, err)
		}
	}

	return r.client.Del(r.ctx, tagKey).Err()
}

func (r *RedisManager) HealthCheck() error {
	return r.client.Ping(r.ctx).Err()
}

func (r *RedisManager) Close() error {
	return r.client.Close()
}

func (r *RedisManager) buildKey(key string) string {
	return r.config.KeyPrefix + key
}

func (r *RedisManager) tagKey(organisationID string) string {
	return r.config.KeyPrefix + "org_keys:" + organisationID
}
