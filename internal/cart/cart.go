package cart

import (
	"strconv"
	"strings"

	"github.com/coffee-bar/internal/catalog"
)

// Line 购物车行
type Line struct {
	Name      string `json:"name"`
	UnitPrice int    `json:"unit_price"`
	Quantity  int    `json:"quantity"`
}

// Subtotal 行小计
func (l Line) Subtotal() int {
	return l.UnitPrice * l.Quantity
}

// Cart 购物车状态（值类型，所有变更都返回新值）
type Cart struct {
	lines []Line
}

// AddOutcome 加购结果
type AddOutcome string

const (
	// AddOutcomeAdded 已加入购物车
	AddOutcomeAdded AddOutcome = "added"
	// AddOutcomeIgnored 输入非法或菜单项不存在，静默忽略
	AddOutcomeIgnored AddOutcome = "ignored"
	// AddOutcomeRejected 超出剩余库存，购物车不变，仅回填输入框
	AddOutcomeRejected AddOutcome = "rejected"
)

// AddResult 加购结果详情
type AddResult struct {
	Outcome AddOutcome `json:"outcome"`
	Index   int        `json:"index"`
	// SuggestedInput 拒绝时建议回填到输入框的数量
	SuggestedInput int `json:"suggested_input,omitempty"`
}

// FromLines 由行列表构建购物车（复制输入）
func FromLines(lines []Line) Cart {
	if len(lines) == 0 {
		return Cart{}
	}
	out := make([]Line, len(lines))
	copy(out, lines)
	return Cart{lines: out}
}

// Lines 按插入顺序返回行副本
func (c Cart) Lines() []Line {
	out := make([]Line, len(c.lines))
	copy(out, c.lines)
	return out
}

// Len 行数
func (c Cart) Len() int {
	return len(c.lines)
}

// IsEmpty 是否为空
func (c Cart) IsEmpty() bool {
	return len(c.lines) == 0
}

// Find 按名称查找行
func (c Cart) Find(name string) (Line, bool) {
	if i := c.indexOf(name); i >= 0 {
		return c.lines[i], true
	}
	return Line{}, false
}

// QuantityOf 某菜单项在购物车中的数量，不存在为 0
func (c Cart) QuantityOf(name string) int {
	if line, ok := c.Find(name); ok {
		return line.Quantity
	}
	return 0
}

// Total 合计金额
func (c Cart) Total() int {
	total := 0
	for _, line := range c.lines {
		total += line.Subtotal()
	}
	return total
}

// Count 商品总件数
func (c Cart) Count() int {
	count := 0
	for _, line := range c.lines {
		count += line.Quantity
	}
	return count
}

// Add 按菜单下标加购
func (c Cart) Add(menu *catalog.Catalog, index, qty int) (Cart, AddResult) {
	result := AddResult{Outcome: AddOutcomeIgnored, Index: index}
	if qty < 1 {
		return c, result
	}
	entry, ok := menu.ByIndex(index)
	if !ok {
		return c, result
	}
	left := menu.StockLeft(entry.Name, c)
	if qty > left {
		result.Outcome = AddOutcomeRejected
		result.SuggestedInput = left
		if left <= 0 {
			result.SuggestedInput = 1
		}
		return c, result
	}

	next := c.Lines()
	if i := c.indexOf(entry.Name); i >= 0 {
		next[i].Quantity += qty
	} else {
		next = append(next, Line{Name: entry.Name, UnitPrice: entry.UnitPrice, Quantity: qty})
	}
	result.Outcome = AddOutcomeAdded
	return Cart{lines: next}, result
}

// Adjust 调整数量；名称不在购物车或菜单中时返回 false
func (c Cart) Adjust(menu *catalog.Catalog, name string, delta int) (Cart, bool) {
	i := c.indexOf(name)
	if i < 0 {
		return c, false
	}
	entry, ok := menu.ByName(name)
	if !ok {
		return c, false
	}
	qty := c.lines[i].Quantity + delta
	if qty <= 0 {
		return c.Remove(name), true
	}
	// 本行已占用自身库存，因此以总库存为上限
	if qty > entry.TotalStock {
		qty = entry.TotalStock
	}
	next := c.Lines()
	next[i].Quantity = qty
	return Cart{lines: next}, true
}

// Remove 删除指定名称的行
func (c Cart) Remove(name string) Cart {
	next := make([]Line, 0, len(c.lines))
	for _, line := range c.lines {
		if line.Name != name {
			next = append(next, line)
		}
	}
	return Cart{lines: next}
}

// Empty 清空
func (c Cart) Empty() Cart {
	return Cart{}
}

func (c Cart) indexOf(name string) int {
	for i := range c.lines {
		if c.lines[i].Name == name {
			return i
		}
	}
	return -1
}

// ParseQuantity 解析数量输入，仅接受正整数
func ParseQuantity(raw string) (int, bool) {
	qty, err := strconv.Atoi(strings.TrimSpace(raw))
	if err != nil || qty < 1 {
		return 0, false
	}
	return qty, true
}
