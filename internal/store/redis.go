package store

import (
	"context"
	"time"
)

// RedisClient 由 cache 包提供的字符串读写能力
type RedisClient interface {
	GetString(ctx context.Context, key string) (string, bool, error)
	SetString(ctx context.Context, key, value string, ttl time.Duration) error
}

// RedisStore Redis 驱动，键由 cache 统一加前缀
type RedisStore struct {
	client RedisClient
}

// NewRedisStore 创建 Redis 存储
func NewRedisStore(client RedisClient) *RedisStore {
	return &RedisStore{client: client}
}

func (s *RedisStore) Store(ctx context.Context, key, value string) error {
	return s.client.SetString(ctx, key, value, 0)
}

func (s *RedisStore) Load(ctx context.Context, key string) (string, bool, error) {
	return s.client.GetString(ctx, key)
}

// CacheClient 适配 cache 包的全局函数
type CacheClient struct {
	Get func(ctx context.Context, key string) (string, bool, error)
	Set func(ctx context.Context, key, value string, ttl time.Duration) error
}

func (c CacheClient) GetString(ctx context.Context, key string) (string, bool, error) {
	return c.Get(ctx, key)
}

func (c CacheClient) SetString(ctx context.Context, key, value string, ttl time.Duration) error {
	return c.Set(ctx, key, value, ttl)
}
