package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/coffee-bar/internal/cart"
	"github.com/coffee-bar/internal/constants"
	"github.com/coffee-bar/internal/logger"
	"github.com/coffee-bar/internal/models"
	"github.com/coffee-bar/internal/repository"

	"github.com/google/uuid"
)

// OrderService 订单记录服务
type OrderService struct {
	orderRepo repository.OrderRepository
	now       func() time.Time
}

// NewOrderService 创建订单服务
func NewOrderService(orderRepo repository.OrderRepository) *OrderService {
	return &OrderService{orderRepo: orderRepo, now: time.Now}
}

// Record 以购物车中记录的单价生成订单
func (s *OrderService) Record(ctx context.Context, sessionID string, snapshot cart.Cart) (*models.Order, error) {
	if snapshot.IsEmpty() {
		return nil, fmt.Errorf("record order: cart is empty")
	}
	lines := snapshot.Lines()
	items := make([]models.OrderItem, 0, len(lines))
	subtotals := make([]models.Money, 0, len(lines))
	for _, line := range lines {
		unit := models.NewMoneyFromInt(line.UnitPrice)
		subtotal := unit.Mul(line.Quantity)
		subtotals = append(subtotals, subtotal)
		items = append(items, models.OrderItem{
			Name:       line.Name,
			UnitPrice:  unit,
			Quantity:   line.Quantity,
			TotalPrice: subtotal,
		})
	}
	order := &models.Order{
		OrderNo:     s.newOrderNo(),
		SessionID:   sessionID,
		Status:      constants.OrderStatusConfirmed,
		ItemCount:   snapshot.Count(),
		TotalAmount: models.SumMoney(subtotals...),
	}
	if err := s.orderRepo.Create(ctx, order, items); err != nil {
		return nil, fmt.Errorf("record order: %w", err)
	}
	return order, nil
}

// ListBySession 会话订单分页
func (s *OrderService) ListBySession(ctx context.Context, sessionID string, page, pageSize int) ([]models.Order, error) {
	if strings.TrimSpace(sessionID) == "" {
		return nil, ErrSessionRequired
	}
	return s.orderRepo.ListBySession(ctx, sessionID, page, pageSize)
}

// MarkNotified 异步通知完成后更新订单
func (s *OrderService) MarkNotified(ctx context.Context, orderNo string) error {
	if err := s.orderRepo.MarkNotified(ctx, orderNo, s.now()); err != nil {
		return err
	}
	logger.Infow("order_notified", "order_no", orderNo)
	return nil
}

// Cancel 购物车未能清空时撤销刚记录的订单
func (s *OrderService) Cancel(ctx context.Context, orderNo string) error {
	if err := s.orderRepo.MarkCancelled(ctx, orderNo); err != nil {
		return fmt.Errorf("cancel order %s: %w", orderNo, err)
	}
	logger.Warnw("order_cancelled", "order_no", orderNo)
	return nil
}

// newOrderNo 例如 CB20261018153000A1B2C3D4
func (s *OrderService) newOrderNo() string {
	suffix := strings.ToUpper(strings.ReplaceAll(uuid.NewString(), "-", "")[:8])
	return "CB" + s.now().Format("20060102150405") + suffix
}
