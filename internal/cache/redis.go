// Package cache 封装全局 Redis 连接，供购物车存储与结账限流共用
package cache

import (
	"context"
	"errors"
	"fmt"
	"net"
	"strconv"
	"strings"
	"time"

	"github.com/coffee-bar/internal/config"

	"github.com/redis/go-redis/v9"
)

const (
	defaultPrefix = "cb"
	pingTimeout   = 3 * time.Second
)

var (
	redisClient *redis.Client
	redisPrefix = defaultPrefix
)

// InitRedis 建立连接并探活；未启用或探活失败时保持禁用
func InitRedis(cfg *config.RedisConfig) error {
	if cfg == nil || !cfg.Enabled {
		redisClient = nil
		return nil
	}
	redisPrefix = strings.TrimSpace(cfg.Prefix)
	if redisPrefix == "" {
		redisPrefix = defaultPrefix
	}

	client := redis.NewClient(&redis.Options{
		Addr:     redisAddr(cfg),
		Password: cfg.Password,
		DB:       cfg.DB,
	})
	ctx, cancel := context.WithTimeout(context.Background(), pingTimeout)
	defer cancel()
	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return fmt.Errorf("redis ping %s: %w", client.Options().Addr, err)
	}
	redisClient = client
	return nil
}

func redisAddr(cfg *config.RedisConfig) string {
	host := strings.TrimSpace(cfg.Host)
	if host == "" {
		host = "127.0.0.1"
	}
	port := cfg.Port
	if port <= 0 {
		port = 6379
	}
	return net.JoinHostPort(host, strconv.Itoa(port))
}

func Enabled() bool {
	return redisClient != nil
}

// Client 未启用时返回 nil，调用方据此降级
func Client() *redis.Client {
	return redisClient
}

func Close() error {
	if redisClient == nil {
		return nil
	}
	err := redisClient.Close()
	redisClient = nil
	return err
}

// GetString 键不存在时 found=false
func GetString(ctx context.Context, key string) (string, bool, error) {
	if !Enabled() {
		return "", false, nil
	}
	val, err := redisClient.Get(ctx, BuildKey(key)).Result()
	switch {
	case errors.Is(err, redis.Nil):
		return "", false, nil
	case err != nil:
		return "", false, err
	}
	return val, true, nil
}

// SetString ttl<=0 表示不过期
func SetString(ctx context.Context, key, value string, ttl time.Duration) error {
	if !Enabled() {
		return nil
	}
	return redisClient.Set(ctx, BuildKey(key), value, max(ttl, 0)).Err()
}

// BuildKey 拼接全局前缀
func BuildKey(key string) string {
	trimmed := strings.TrimSpace(key)
	if trimmed == "" {
		return redisPrefix
	}
	return redisPrefix + ":" + trimmed
}
