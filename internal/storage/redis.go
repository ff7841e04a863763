package storage

import (
	"context"

	redis "github.com/redis/go-redis/v9"

	"github.com/questforge/questforge/internal/errors"
	redisclient "github.com/questforge/questforge/internal/redis"
)

// Config holds the configuration for the Redis store
type Config struct {
	Client redisclient.Client

	// KeyPrefix namespaces every key, so several installations can share
	// one Redis instance. Optional.
	KeyPrefix string
}

// Validate ensures all required dependencies are provided
func (c *Config) Validate() error {
	if c == nil {
		return errors.InvalidArgument("config cannot be nil")
	}
	if c.Client == nil {
		return errors.InvalidArgument("redis client is required")
	}
	return nil
}

type redisStore struct {
	client redisclient.Client
	prefix string
}

// NewRedis creates a Redis-backed Store
func NewRedis(cfg *Config) (Store, error) {
	if err := cfg.Validate(); err != nil {
		return nil, errors.Wrap(err, "invalid config")
	}

	return &redisStore{
		client: cfg.Client,
		prefix: cfg.KeyPrefix,
	}, nil
}

var _ Store = (*redisStore)(nil)

func (s *redisStore) key(key string) string {
	if s.prefix == "" {
		return key
	}
	return s.prefix + ":" + key
}

// Get retrieves the value stored under key, reporting absence via ok
func (s *redisStore) Get(ctx context.Context, key string) (string, bool, error) {
	if key == "" {
		return "", false, errors.InvalidArgument("key cannot be empty")
	}

	value, err := s.client.Get(ctx, s.key(key)).Result()
	if err != nil {
		if err == redis.Nil {
			return "", false, nil
		}
		return "", false, errors.Wrapf(err, "failed to get key %q", key)
	}

	return value, true, nil
}

// Set stores value under key with no expiry
func (s *redisStore) Set(ctx context.Context, key, value string) error {
	if key == "" {
		return errors.InvalidArgument("key cannot be empty")
	}

	if err := s.client.Set(ctx, s.key(key), value, 0).Err(); err != nil {
		return errors.Wrapf(err, "failed to set key %q", key)
	}
	return nil
}

// Delete removes key. Deleting an absent key is not an error.
func (s *redisStore) Delete(ctx context.Context, key string) error {
	if key == "" {
		return errors.InvalidArgument("key cannot be empty")
	}

	if err := s.client.Del(ctx, s.key(key)).Err(); err != nil {
		return errors.Wrapf(err, "failed to delete key %q", key)
	}
	return nil
}
