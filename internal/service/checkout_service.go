package service

import (
	"context"

	"github.com/coffee-bar/internal/cart"
	"github.com/coffee-bar/internal/checkout"
	"github.com/coffee-bar/internal/logger"
	"github.com/coffee-bar/internal/models"
	"github.com/coffee-bar/internal/queue"
)

// CheckoutOutcome 结账结果
type CheckoutOutcome struct {
	checkout.Result
	Order *models.Order
	Cart  cart.Cart
}

// CheckoutService 结账服务
type CheckoutService struct {
	carts       *CartService
	orders      *OrderService
	queueClient *queue.Client
}

// NewCheckoutService 创建结账服务
func NewCheckoutService(carts *CartService, orders *OrderService, queueClient *queue.Client) *CheckoutService {
	return &CheckoutService{
		carts:       carts,
		orders:      orders,
		queueClient: queueClient,
	}
}

// Checkout 空购物车只提示；非空时先记录订单再清空。
// 记录失败则购物车保持不变；清空失败则撤销已记录的订单，重试不会产生重复订单
func (s *CheckoutService) Checkout(ctx context.Context, sessionID string) (CheckoutOutcome, error) {
	var outcome CheckoutOutcome
	snapshot, err := s.carts.withManager(ctx, sessionID, func(m *cart.Manager) error {
		flow := checkout.NewFlow()
		outcome.Result = flow.Checkout(m.Cart().IsEmpty())
		if !outcome.ClearCart {
			return nil
		}
		if s.orders != nil {
			order, err := s.orders.Record(ctx, sessionID, m.Cart())
			if err != nil {
				return err
			}
			outcome.Order = order
		}
		if err := m.EmptyCart(ctx); err != nil {
			s.cancelOrder(ctx, outcome.Order)
			outcome.Order = nil
			return err
		}
		return nil
	})
	outcome.Cart = snapshot
	if err != nil {
		return outcome, err
	}

	log := logger.FromContext(ctx)
	if !outcome.ClearCart {
		log.Infow("checkout_on_empty_cart", "session_id", sessionID)
		return outcome, nil
	}
	if outcome.Order == nil {
		return outcome, nil
	}
	log.Infow("checkout_confirmed",
		"order_no", outcome.Order.OrderNo,
		"items", outcome.Order.ItemCount,
		"total", outcome.Order.TotalAmount.String(),
	)
	if err := s.queueClient.EnqueueOrderConfirmed(queue.OrderConfirmedPayload{
		OrderNo:   outcome.Order.OrderNo,
		SessionID: sessionID,
		ItemCount: outcome.Order.ItemCount,
		Total:     outcome.Order.TotalAmount.String(),
	}); err != nil {
		log.Warnw("checkout_enqueue_failed", "order_no", outcome.Order.OrderNo, "error", err)
	}
	return outcome, nil
}

func (s *CheckoutService) cancelOrder(ctx context.Context, order *models.Order) {
	if order == nil {
		return
	}
	if err := s.orders.Cancel(context.WithoutCancel(ctx), order.OrderNo); err != nil {
		logger.FromContext(ctx).Errorw("checkout_cancel_failed", "order_no", order.OrderNo, "error", err)
	}
}

// Dismiss 关闭弹窗，不影响购物车
func (s *CheckoutService) Dismiss() checkout.State {
	flow := checkout.NewFlow()
	flow.Dismiss()
	return flow.State()
}
