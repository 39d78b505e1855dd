package store

import (
	"context"
	"errors"
	"fmt"

	"github.com/redis/go-redis/v9"

	"quickchat/internal/domain"
)

const redisKeyPrefix = "quickchat:"

// RedisKV stores values as fields of one Redis hash per namespace, so Clear
// is a single DEL.
type RedisKV struct {
	client *redis.Client
	key    string
}

// NewRedisKV uses client and stores under the hash quickchat:<namespace>.
func NewRedisKV(client *redis.Client, namespace string) *RedisKV {
	if namespace == "" {
		namespace = "default"
	}
	return &RedisKV{client: client, key: redisKeyPrefix + namespace}
}

// DialRedis parses url, connects and verifies connectivity.
func DialRedis(ctx context.Context, url string) (*redis.Client, error) {
	if url == "" {
		return nil, fmt.Errorf("redis url is required")
	}
	opt, err := redis.ParseURL(url)
	if err != nil {
		return nil, fmt.Errorf("parse redis url: %w", err)
	}
	client := redis.NewClient(opt)
	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("ping redis: %w", err)
	}
	return client, nil
}

func (s *RedisKV) Get(ctx context.Context, key string) (string, bool, error) {
	v, err := s.client.HGet(ctx, s.key, key).Result()
	if errors.Is(err, redis.Nil) {
		return "", false, nil
	}
	if err != nil {
		return "", false, err
	}
	return v, true, nil
}

func (s *RedisKV) Set(ctx context.Context, key, value string) error {
	return s.client.HSet(ctx, s.key, key, value).Err()
}

func (s *RedisKV) Clear(ctx context.Context) error {
	return s.client.Del(ctx, s.key).Err()
}

var _ domain.KeyValueStore = (*RedisKV)(nil)
