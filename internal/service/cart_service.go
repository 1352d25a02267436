package service

import (
	"context"
	"fmt"
	"strings"

	"github.com/coffee-bar/internal/cart"
	"github.com/coffee-bar/internal/catalog"
	"github.com/coffee-bar/internal/logger"
)

// CartServiceOptions 购物车服务配置
type CartServiceOptions struct {
	KeyPrefix       string
	MalformedPolicy cart.MalformedPolicy
}

// CartService 购物车服务：每次请求从存储恢复，按会话串行执行
type CartService struct {
	menu      *catalog.Catalog
	store     cart.Store
	keyPrefix string
	policy    cart.MalformedPolicy
	locks     *sessionLocks
}

// NewCartService 创建购物车服务
func NewCartService(menu *catalog.Catalog, store cart.Store, opts CartServiceOptions) *CartService {
	prefix := strings.TrimSpace(opts.KeyPrefix)
	if prefix == "" {
		prefix = "coffeeBarCart"
	}
	policy := opts.MalformedPolicy
	if policy == "" {
		policy = cart.PolicyReset
	}
	return &CartService{
		menu:      menu,
		store:     store,
		keyPrefix: prefix,
		policy:    policy,
		locks:     newSessionLocks(),
	}
}

// Catalog 当前菜单
func (s *CartService) Catalog() *catalog.Catalog {
	return s.menu
}

// Key 访客购物车的存储键
func (s *CartService) Key(sessionID string) string {
	return fmt.Sprintf("%s:%s", s.keyPrefix, sessionID)
}

// Get 读取购物车
func (s *CartService) Get(ctx context.Context, sessionID string) (cart.Cart, error) {
	return s.withManager(ctx, sessionID, func(*cart.Manager) error { return nil })
}

// Add 按菜单下标加购
func (s *CartService) Add(ctx context.Context, sessionID string, index, qty int) (cart.AddResult, cart.Cart, error) {
	var result cart.AddResult
	snapshot, err := s.withManager(ctx, sessionID, func(m *cart.Manager) error {
		var err error
		result, err = m.AddToCart(ctx, index, qty)
		return err
	})
	return result, snapshot, err
}

// AddRaw 输入框原始文本加购，非正整数直接忽略
func (s *CartService) AddRaw(ctx context.Context, sessionID string, index int, raw string) (cart.AddResult, cart.Cart, error) {
	qty, ok := cart.ParseQuantity(raw)
	if !ok {
		snapshot, err := s.Get(ctx, sessionID)
		return cart.AddResult{Outcome: cart.AddOutcomeIgnored, Index: index}, snapshot, err
	}
	return s.Add(ctx, sessionID, index, qty)
}

// Adjust 调整数量
func (s *CartService) Adjust(ctx context.Context, sessionID, name string, delta int) (cart.Cart, error) {
	return s.withManager(ctx, sessionID, func(m *cart.Manager) error {
		return m.UpdateQty(ctx, name, delta)
	})
}

// Remove 删除行
func (s *CartService) Remove(ctx context.Context, sessionID, name string) (cart.Cart, error) {
	return s.withManager(ctx, sessionID, func(m *cart.Manager) error {
		return m.RemoveItem(ctx, name)
	})
}

// Empty 清空购物车
func (s *CartService) Empty(ctx context.Context, sessionID string) (cart.Cart, error) {
	return s.withManager(ctx, sessionID, func(m *cart.Manager) error {
		return m.EmptyCart(ctx)
	})
}

// withManager 在会话锁内恢复购物车并执行操作
func (s *CartService) withManager(ctx context.Context, sessionID string, fn func(m *cart.Manager) error) (cart.Cart, error) {
	sessionID = strings.TrimSpace(sessionID)
	if sessionID == "" {
		return cart.Cart{}, ErrSessionRequired
	}
	key := s.Key(sessionID)
	unlock := s.locks.lock(key)
	defer unlock()

	m, err := cart.Restore(ctx, s.menu, s.store, key, s.policy, s.observe)
	if err != nil {
		return cart.Cart{}, err
	}
	if err := fn(m); err != nil {
		return m.Cart(), err
	}
	return m.Cart(), nil
}

func (s *CartService) observe(ctx context.Context, key string, snapshot cart.Cart) {
	logger.FromContext(ctx).Debugw("cart_changed",
		"key", key,
		"lines", snapshot.Len(),
		"count", snapshot.Count(),
		"total", snapshot.Total(),
	)
}
