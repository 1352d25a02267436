package models

import (
	"database/sql/driver"
	"encoding/json"
	"strings"

	"github.com/shopspring/decimal"
)

const moneyScale = 2

// Money 订单金额，固定两位小数；菜单价格为整数，入账时转换
type Money struct {
	decimal.Decimal
}

func NewMoneyFromDecimal(amount decimal.Decimal) Money {
	return Money{Decimal: amount.Round(moneyScale)}
}

func NewMoneyFromInt(amount int) Money {
	return Money{Decimal: decimal.NewFromInt(int64(amount))}
}

// Mul 单价乘数量
func (m Money) Mul(qty int) Money {
	return NewMoneyFromDecimal(m.Decimal.Mul(decimal.NewFromInt(int64(qty))))
}

func (m Money) Add(other Money) Money {
	return NewMoneyFromDecimal(m.Decimal.Add(other.Decimal))
}

// SumMoney 累加金额，空参数返回 0
func SumMoney(amounts ...Money) Money {
	total := decimal.Zero
	for _, amount := range amounts {
		total = total.Add(amount.Decimal)
	}
	return NewMoneyFromDecimal(total)
}

// MarshalJSON 以字符串输出，避免前端浮点误差
func (m Money) MarshalJSON() ([]byte, error) {
	return json.Marshal(m.String())
}

// UnmarshalJSON 接受 "12.30" 与 12.3 两种写法
func (m *Money) UnmarshalJSON(b []byte) error {
	raw := strings.TrimSpace(string(b))
	if raw == "" || raw == "null" {
		return nil
	}
	raw = strings.Trim(raw, `"`)
	d, err := decimal.NewFromString(raw)
	if err != nil {
		return err
	}
	*m = NewMoneyFromDecimal(d)
	return nil
}

func (m Money) Value() (driver.Value, error) {
	return m.Decimal.Round(moneyScale).Value()
}

func (m *Money) Scan(value interface{}) error {
	var d decimal.Decimal
	if err := d.Scan(value); err != nil {
		return err
	}
	*m = NewMoneyFromDecimal(d)
	return nil
}

func (m Money) String() string {
	return m.Decimal.StringFixed(moneyScale)
}
