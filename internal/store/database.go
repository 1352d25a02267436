package store

import (
	"context"
	"strings"

	"github.com/coffee-bar/internal/repository"
)

// emptyPayload 空购物车的序列化结果
const emptyPayload = "[]"

// DBStore 数据库驱动（cart_snapshots 表）
type DBStore struct {
	repo repository.CartSnapshotRepository
}

// NewDBStore 创建数据库存储
func NewDBStore(repo repository.CartSnapshotRepository) *DBStore {
	return &DBStore{repo: repo}
}

// Store 空购物车直接删除快照行，读取时按未命中处理
func (s *DBStore) Store(ctx context.Context, key, value string) error {
	if strings.TrimSpace(value) == emptyPayload {
		return s.repo.Delete(ctx, key)
	}
	return s.repo.Put(ctx, key, value)
}

func (s *DBStore) Load(ctx context.Context, key string) (string, bool, error) {
	snapshot, err := s.repo.Get(ctx, key)
	if err != nil {
		return "", false, err
	}
	if snapshot == nil {
		return "", false, nil
	}
	return snapshot.Payload, true, nil
}
