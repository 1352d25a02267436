package repository

import (
	"context"
	"errors"

	"github.com/coffee-bar/internal/models"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// CartSnapshotRepository 购物车快照数据访问接口
type CartSnapshotRepository interface {
	Get(ctx context.Context, key string) (*models.CartSnapshot, error)
	Put(ctx context.Context, key, payload string) error
	Delete(ctx context.Context, key string) error
}

// GormCartSnapshotRepository GORM 实现
type GormCartSnapshotRepository struct {
	db *gorm.DB
}

// NewCartSnapshotRepository 创建购物车快照仓库
func NewCartSnapshotRepository(db *gorm.DB) *GormCartSnapshotRepository {
	return &GormCartSnapshotRepository{db: db}
}

// Get 按键读取快照，不存在时返回 nil
func (r *GormCartSnapshotRepository) Get(ctx context.Context, key string) (*models.CartSnapshot, error) {
	var snapshot models.CartSnapshot
	if err := r.db.WithContext(ctx).Where("cart_key = ?", key).First(&snapshot).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &snapshot, nil
}

// Put 写入或覆盖快照
func (r *GormCartSnapshotRepository) Put(ctx context.Context, key, payload string) error {
	snapshot := models.CartSnapshot{Key: key, Payload: payload}
	return r.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "cart_key"}},
		DoUpdates: clause.AssignmentColumns([]string{"payload", "updated_at"}),
	}).Create(&snapshot).Error
}

// Delete 删除快照
func (r *GormCartSnapshotRepository) Delete(ctx context.Context, key string) error {
	return r.db.WithContext(ctx).Where("cart_key = ?", key).Delete(&models.CartSnapshot{}).Error
}
