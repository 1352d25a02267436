// Package store 提供购物车快照的键值存储驱动
package store

import (
	"context"
	"fmt"
	"strings"

	"github.com/coffee-bar/internal/constants"
	"github.com/coffee-bar/internal/repository"
)

// KV 不透明键值存储
type KV interface {
	Store(ctx context.Context, key, value string) error
	Load(ctx context.Context, key string) (string, bool, error)
}

// Options 驱动依赖
type Options struct {
	Driver    string
	Snapshots repository.CartSnapshotRepository
	Redis     RedisClient
}

// New 按驱动名创建存储
func New(opts Options) (KV, error) {
	switch strings.ToLower(strings.TrimSpace(opts.Driver)) {
	case constants.CartStorageMemory:
		return NewMemoryStore(), nil
	case constants.CartStorageRedis:
		if opts.Redis == nil {
			return nil, fmt.Errorf("cart storage %q requires redis.enabled", opts.Driver)
		}
		return NewRedisStore(opts.Redis), nil
	case "", constants.CartStorageDatabase:
		if opts.Snapshots == nil {
			return nil, fmt.Errorf("cart storage %q requires a database", opts.Driver)
		}
		return NewDBStore(opts.Snapshots), nil
	default:
		return nil, fmt.Errorf("unsupported cart storage: %s", opts.Driver)
	}
}
