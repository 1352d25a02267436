package catalog

import (
	"errors"
	"fmt"
	"strings"
)

var (
	// ErrInvalidEntry 菜单项字段非法
	ErrInvalidEntry = errors.New("invalid menu entry")
	// ErrDuplicateEntry 菜单项名称重复
	ErrDuplicateEntry = errors.New("duplicate menu entry")
)

// MenuEntry 菜单项（进程生命周期内不可变）
type MenuEntry struct {
	Name       string `json:"name"`
	UnitPrice  int    `json:"price"`
	TotalStock int    `json:"stock"`
}

// Reservations 提供某个菜单项已被占用的数量（购物车实现该接口）
type Reservations interface {
	QuantityOf(name string) int
}

// Catalog 只读菜单表
type Catalog struct {
	entries []MenuEntry
	index   map[string]int
}

// New 校验并创建菜单
func New(entries []MenuEntry) (*Catalog, error) {
	c := &Catalog{
		entries: make([]MenuEntry, 0, len(entries)),
		index:   make(map[string]int, len(entries)),
	}
	for i, entry := range entries {
		entry.Name = strings.TrimSpace(entry.Name)
		if entry.Name == "" || entry.UnitPrice < 0 || entry.TotalStock < 0 {
			return nil, fmt.Errorf("%w: position %d", ErrInvalidEntry, i)
		}
		if _, exists := c.index[entry.Name]; exists {
			return nil, fmt.Errorf("%w: %s", ErrDuplicateEntry, entry.Name)
		}
		c.index[entry.Name] = len(c.entries)
		c.entries = append(c.entries, entry)
	}
	return c, nil
}

// DefaultEntries 内置菜单
func DefaultEntries() []MenuEntry {
	return []MenuEntry{
		{Name: "Espresso", UnitPrice: 120, TotalStock: 10},
		{Name: "Cappuccino", UnitPrice: 150, TotalStock: 5},
		{Name: "Latte", UnitPrice: 140, TotalStock: 8},
		{Name: "Mocha", UnitPrice: 160, TotalStock: 6},
		{Name: "Americano", UnitPrice: 130, TotalStock: 9},
	}
}

// Default 返回内置菜单
func Default() *Catalog {
	c, err := New(DefaultEntries())
	if err != nil {
		panic(err)
	}
	return c
}

// Len 菜单项数量
func (c *Catalog) Len() int {
	if c == nil {
		return 0
	}
	return len(c.entries)
}

// Entries 返回菜单副本
func (c *Catalog) Entries() []MenuEntry {
	if c == nil {
		return nil
	}
	out := make([]MenuEntry, len(c.entries))
	copy(out, c.entries)
	return out
}

// ByIndex 按展示顺序查找
func (c *Catalog) ByIndex(i int) (MenuEntry, bool) {
	if c == nil || i < 0 || i >= len(c.entries) {
		return MenuEntry{}, false
	}
	return c.entries[i], true
}

// ByName 按名称查找
func (c *Catalog) ByName(name string) (MenuEntry, bool) {
	if c == nil {
		return MenuEntry{}, false
	}
	i, ok := c.index[name]
	if !ok {
		return MenuEntry{}, false
	}
	return c.entries[i], true
}

// StockLeft 总库存减去已占用数量；未知名称返回 0
func (c *Catalog) StockLeft(name string, reserved Reservations) int {
	entry, ok := c.ByName(name)
	if !ok {
		return 0
	}
	inCart := 0
	if reserved != nil {
		inCart = reserved.QuantityOf(name)
	}
	return entry.TotalStock - inCart
}
