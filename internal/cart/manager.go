package cart

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/coffee-bar/internal/catalog"
	"github.com/coffee-bar/internal/logger"
)

// Store 购物车持久化依赖（外部键值存储）
type Store interface {
	Store(ctx context.Context, key, value string) error
	Load(ctx context.Context, key string) (string, bool, error)
}

// Observer 购物车变更后的回调（重新渲染购物车与菜单视图）
type Observer func(ctx context.Context, key string, snapshot Cart)

// MalformedPolicy 持久化数据损坏时的处理策略
type MalformedPolicy string

const (
	// PolicyReset 视为空购物车并记录告警
	PolicyReset MalformedPolicy = "reset"
	// PolicyFail 返回 ErrMalformedCart
	PolicyFail MalformedPolicy = "fail"
)

// ParseMalformedPolicy 解析策略，未知值回退为 reset
func ParseMalformedPolicy(raw string) MalformedPolicy {
	if MalformedPolicy(strings.ToLower(strings.TrimSpace(raw))) == PolicyFail {
		return PolicyFail
	}
	return PolicyReset
}

// Manager 持有单个购物车，所有变更都会写回存储并通知观察者
type Manager struct {
	menu     *catalog.Catalog
	store    Store
	key      string
	cart     Cart
	observer Observer
}

// NewManager 创建空购物车管理器
func NewManager(menu *catalog.Catalog, store Store, key string, observer Observer) *Manager {
	return &Manager{
		menu:     menu,
		store:    store,
		key:      key,
		observer: observer,
	}
}

// Restore 从存储恢复购物车
func Restore(ctx context.Context, menu *catalog.Catalog, store Store, key string, policy MalformedPolicy, observer Observer) (*Manager, error) {
	if store == nil {
		return nil, errors.New("cart store is nil")
	}
	m := NewManager(menu, store, key, observer)
	raw, found, err := store.Load(ctx, key)
	if err != nil {
		return nil, fmt.Errorf("load cart %s: %w", key, err)
	}
	if !found {
		return m, nil
	}
	restored, err := Decode(raw)
	if err != nil {
		if policy == PolicyFail {
			return nil, err
		}
		logger.Warnw("cart_snapshot_malformed", "key", key, "error", err, "policy", string(policy))
		return m, nil
	}
	reconciled, err := reconcile(menu, restored)
	if err != nil {
		if policy == PolicyFail {
			return nil, err
		}
		logger.Warnw("cart_snapshot_malformed", "key", key, "error", err, "policy", string(policy))
	}
	m.cart = reconciled
	return m, nil
}

// reconcile 按当前菜单校验恢复的行：丢弃菜单外或无库存的行，数量截断到总库存。
// 有任何调整时返回 ErrMalformedCart 以及调整后的购物车
func reconcile(menu *catalog.Catalog, restored Cart) (Cart, error) {
	lines := restored.Lines()
	kept := make([]Line, 0, len(lines))
	var problems []string
	for _, line := range lines {
		entry, ok := menu.ByName(line.Name)
		if !ok {
			problems = append(problems, fmt.Sprintf("%s not on menu", line.Name))
			continue
		}
		if line.Quantity > entry.TotalStock {
			problems = append(problems, fmt.Sprintf("%s qty %d exceeds stock %d", line.Name, line.Quantity, entry.TotalStock))
			line.Quantity = entry.TotalStock
		}
		if line.Quantity < 1 {
			continue
		}
		kept = append(kept, line)
	}
	if len(problems) > 0 {
		return FromLines(kept), fmt.Errorf("%w: %s", ErrMalformedCart, strings.Join(problems, "; "))
	}
	return restored, nil
}

// Cart 当前购物车
func (m *Manager) Cart() Cart {
	return m.cart
}

// Key 存储键
func (m *Manager) Key() string {
	return m.key
}

// AddToCart 按菜单下标加购；忽略与拒绝均不写存储
func (m *Manager) AddToCart(ctx context.Context, index, qty int) (AddResult, error) {
	next, result := m.cart.Add(m.menu, index, qty)
	if result.Outcome != AddOutcomeAdded {
		return result, nil
	}
	if err := m.commit(ctx, next); err != nil {
		return result, err
	}
	return result, nil
}

// UpdateQty 调整数量，名称不存在时为空操作
func (m *Manager) UpdateQty(ctx context.Context, name string, delta int) error {
	next, changed := m.cart.Adjust(m.menu, name, delta)
	if !changed {
		return nil
	}
	return m.commit(ctx, next)
}

// RemoveItem 删除行
func (m *Manager) RemoveItem(ctx context.Context, name string) error {
	return m.commit(ctx, m.cart.Remove(name))
}

// EmptyCart 清空购物车
func (m *Manager) EmptyCart(ctx context.Context) error {
	return m.commit(ctx, m.cart.Empty())
}

// commit 先写存储，成功后才替换内存中的购物车并通知观察者
func (m *Manager) commit(ctx context.Context, next Cart) error {
	payload, err := Encode(next)
	if err != nil {
		return fmt.Errorf("encode cart %s: %w", m.key, err)
	}
	if err := m.store.Store(ctx, m.key, payload); err != nil {
		return fmt.Errorf("store cart %s: %w", m.key, err)
	}
	m.cart = next
	if m.observer != nil {
		m.observer(ctx, m.key, next)
	}
	return nil
}
