package repository

import (
	"context"
	"errors"
	"time"

	"github.com/coffee-bar/internal/constants"
	"github.com/coffee-bar/internal/models"

	"gorm.io/gorm"
)

// OrderRepository 订单数据访问接口
type OrderRepository interface {
	Create(ctx context.Context, order *models.Order, items []models.OrderItem) error
	GetByOrderNo(ctx context.Context, orderNo string) (*models.Order, error)
	ListBySession(ctx context.Context, sessionID string, page, pageSize int) ([]models.Order, error)
	MarkNotified(ctx context.Context, orderNo string, at time.Time) error
	MarkCancelled(ctx context.Context, orderNo string) error
	WithTx(tx *gorm.DB) *GormOrderRepository
}

// GormOrderRepository GORM 实现
type GormOrderRepository struct {
	db *gorm.DB
}

// NewOrderRepository 创建订单仓库
func NewOrderRepository(db *gorm.DB) *GormOrderRepository {
	return &GormOrderRepository{db: db}
}

// WithTx 绑定事务
func (r *GormOrderRepository) WithTx(tx *gorm.DB) *GormOrderRepository {
	if tx == nil {
		return r
	}
	return &GormOrderRepository{db: tx}
}

// Create 在事务中创建订单与订单项
func (r *GormOrderRepository) Create(ctx context.Context, order *models.Order, items []models.OrderItem) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Omit("Items").Create(order).Error; err != nil {
			return err
		}
		for i := range items {
			items[i].OrderID = order.ID
		}
		if len(items) > 0 {
			if err := tx.Create(&items).Error; err != nil {
				return err
			}
		}
		order.Items = items
		return nil
	})
}

// GetByOrderNo 按订单号获取订单
func (r *GormOrderRepository) GetByOrderNo(ctx context.Context, orderNo string) (*models.Order, error) {
	var order models.Order
	if err := r.db.WithContext(ctx).Preload("Items").Where("order_no = ?", orderNo).First(&order).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &order, nil
}

// ListBySession 分页获取会话订单，新订单在前
func (r *GormOrderRepository) ListBySession(ctx context.Context, sessionID string, page, pageSize int) ([]models.Order, error) {
	if pageSize <= 0 {
		pageSize = 20
	}
	query := r.db.WithContext(ctx).
		Preload("Items").
		Where("session_id = ?", sessionID).
		Order("id desc")
	var orders []models.Order
	err := applyPagination(query, page, pageSize).Find(&orders).Error
	if err != nil {
		return nil, err
	}
	return orders, nil
}

// MarkNotified 标记订单已通知
func (r *GormOrderRepository) MarkNotified(ctx context.Context, orderNo string, at time.Time) error {
	result := r.db.WithContext(ctx).Model(&models.Order{}).
		Where("order_no = ?", orderNo).
		Updates(map[string]interface{}{
			"status":      constants.OrderStatusNotified,
			"notified_at": at,
		})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

// MarkCancelled 撤销仍处于 confirmed 的订单
func (r *GormOrderRepository) MarkCancelled(ctx context.Context, orderNo string) error {
	result := r.db.WithContext(ctx).Model(&models.Order{}).
		Where("order_no = ? AND status = ?", orderNo, constants.OrderStatusConfirmed).
		Update("status", constants.OrderStatusCancelled)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}
