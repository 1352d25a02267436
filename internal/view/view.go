// Package view 将目录、购物车和瞬时输入转换为页面模型，不做任何 I/O
package view

import (
	"fmt"

	"github.com/coffee-bar/internal/cart"
	"github.com/coffee-bar/internal/catalog"
	"github.com/coffee-bar/internal/checkout"
	"github.com/coffee-bar/internal/constants"
)

// InputHint 被拒绝加购后回填到输入框的值
type InputHint struct {
	Index int
	Value int
}

// Options 页面渲染参数
type Options struct {
	Title    string
	Currency string
	Theme    string
	Hint     *InputHint
	Flow     *checkout.Flow
}

// MenuCard 菜单卡片
type MenuCard struct {
	Index      int    `json:"index"`
	Name       string `json:"name"`
	Price      int    `json:"price"`
	PriceLabel string `json:"price_label"`
	TotalStock int    `json:"total_stock"`
	StockLeft  int    `json:"stock_left"`
	InputValue int    `json:"-"`
	Disabled   bool   `json:"sold_out"`
}

// CartRow 购物车行
type CartRow struct {
	Name          string `json:"name"`
	UnitPrice     int    `json:"price"`
	Quantity      int    `json:"qty"`
	Subtotal      int    `json:"subtotal"`
	SubtotalLabel string `json:"subtotal_label"`
}

// CartView 购物车汇总
type CartView struct {
	Lines      []CartRow `json:"lines"`
	Count      int       `json:"count"`
	Total      int       `json:"total"`
	CountLabel string    `json:"count_label"`
	TotalLabel string    `json:"total_label"`
}

// Modal 结账弹窗
type Modal struct {
	Visible bool
	Message string
}

// Page 首页模型
type Page struct {
	Title    string
	Theme    string
	DarkMode bool
	Menu     []MenuCard
	Cart     CartView
	Modal    Modal
}

// BuildMenu 计算每个菜单项的剩余库存
func BuildMenu(menu *catalog.Catalog, c cart.Cart, currency string, hint *InputHint) []MenuCard {
	entries := menu.Entries()
	cards := make([]MenuCard, 0, len(entries))
	for i, entry := range entries {
		left := menu.StockLeft(entry.Name, c)
		card := MenuCard{
			Index:      i,
			Name:       entry.Name,
			Price:      entry.UnitPrice,
			PriceLabel: Amount(currency, entry.UnitPrice),
			TotalStock: entry.TotalStock,
			StockLeft:  left,
			InputValue: 1,
			Disabled:   left <= 0,
		}
		if hint != nil && hint.Index == i && hint.Value > 0 {
			card.InputValue = hint.Value
		}
		cards = append(cards, card)
	}
	return cards
}

// BuildCart 汇总购物车；空购物车不显示合计
func BuildCart(c cart.Cart, currency string) CartView {
	lines := c.Lines()
	rows := make([]CartRow, 0, len(lines))
	for _, line := range lines {
		rows = append(rows, CartRow{
			Name:          line.Name,
			UnitPrice:     line.UnitPrice,
			Quantity:      line.Quantity,
			Subtotal:      line.Subtotal(),
			SubtotalLabel: Amount(currency, line.Subtotal()),
		})
	}
	out := CartView{
		Lines:      rows,
		Count:      c.Count(),
		Total:      c.Total(),
		CountLabel: fmt.Sprintf("Cart: %d", c.Count()),
	}
	if !c.IsEmpty() {
		out.TotalLabel = "Total: " + Amount(currency, c.Total())
	}
	return out
}

// BuildPage 组装首页
func BuildPage(menu *catalog.Catalog, c cart.Cart, opts Options) Page {
	page := Page{
		Title:    opts.Title,
		Theme:    opts.Theme,
		DarkMode: opts.Theme == constants.ThemeDark,
		Menu:     BuildMenu(menu, c, opts.Currency, opts.Hint),
		Cart:     BuildCart(c, opts.Currency),
	}
	if opts.Flow != nil && opts.Flow.Visible() {
		page.Modal = Modal{Visible: true, Message: opts.Flow.Message()}
	}
	return page
}

// Amount 金额展示，例如 ₹120
func Amount(currency string, value int) string {
	return fmt.Sprintf("%s%d", currency, value)
}
