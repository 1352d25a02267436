package repository

import (
	"context"
	"errors"

	"github.com/coffee-bar/internal/models"

	"gorm.io/gorm"
)

// MenuRepository 菜单数据访问接口
type MenuRepository interface {
	List(ctx context.Context) ([]models.MenuEntry, error)
	Upsert(ctx context.Context, entry *models.MenuEntry) (bool, error)
}

// GormMenuRepository GORM 实现
type GormMenuRepository struct {
	db *gorm.DB
}

// NewMenuRepository 创建菜单仓库
func NewMenuRepository(db *gorm.DB) *GormMenuRepository {
	return &GormMenuRepository{db: db}
}

// List 按展示顺序返回菜单
func (r *GormMenuRepository) List(ctx context.Context) ([]models.MenuEntry, error) {
	var entries []models.MenuEntry
	if err := r.db.WithContext(ctx).Order("sort_order asc, id asc").Find(&entries).Error; err != nil {
		return nil, err
	}
	return entries, nil
}

// Upsert 按名称新增或更新，返回是否新建
func (r *GormMenuRepository) Upsert(ctx context.Context, entry *models.MenuEntry) (bool, error) {
	if entry == nil {
		return false, nil
	}
	db := r.db.WithContext(ctx)
	var existing models.MenuEntry
	err := db.Where("name = ?", entry.Name).First(&existing).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return true, db.Create(entry).Error
	}
	if err != nil {
		return false, err
	}
	updates := map[string]interface{}{
		"unit_price":  entry.UnitPrice,
		"total_stock": entry.TotalStock,
		"sort_order":  entry.SortOrder,
	}
	if err := db.Model(&existing).Updates(updates).Error; err != nil {
		return false, err
	}
	entry.ID = existing.ID
	return false, nil
}
