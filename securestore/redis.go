package securestore

import (
	"context"
	"errors"

	"github.com/redis/go-redis/v9"
)

const defaultPrefix = "authcore:store:"

// Redis is a Store backed by a Redis client. Each logical device gets its
// own prefix so a shared test cluster can host many isolated sessions.
type Redis struct {
	client *redis.Client
	prefix string
}

// NewRedis wraps client with the default key prefix.
func NewRedis(client *redis.Client) *Redis {
	return NewRedisWithPrefix(client, defaultPrefix)
}

// NewRedisWithPrefix wraps client with an explicit key prefix.
func NewRedisWithPrefix(client *redis.Client, prefix string) *Redis {
	if prefix == "" {
		prefix = defaultPrefix
	}
	return &Redis{
		client: client,
		prefix: prefix,
	}
}

func (r *Redis) key(k string) string {
	return r.prefix + k
}

// Get describes the get operation and its observable behavior.
func (r *Redis) Get(ctx context.Context, key string) (string, error) {
	v, err := r.client.Get(ctx, r.key(key)).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return "", ErrNotFound
		}
		return "", err
	}
	return v, nil
}

// Set describes the set operation and its observable behavior.
func (r *Redis) Set(ctx context.Context, key, value string) error {
	return r.client.Set(ctx, r.key(key), value, 0).Err()
}

// Delete describes the delete operation and its observable behavior.
func (r *Redis) Delete(ctx context.Context, key string) error {
	return r.client.Del(ctx, r.key(key)).Err()
}
