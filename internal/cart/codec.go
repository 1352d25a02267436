package cart

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"
)

// ErrMalformedCart 持久化的购物车数据无法解析或违反约束
var ErrMalformedCart = errors.New("malformed cart snapshot")

// persistedLine 持久化格式：{name, price, qty}
type persistedLine struct {
	Name  string `json:"name"`
	Price int    `json:"price"`
	Qty   int    `json:"qty"`
}

// Encode 序列化整个购物车
func Encode(c Cart) (string, error) {
	lines := make([]persistedLine, 0, len(c.lines))
	for _, line := range c.lines {
		lines = append(lines, persistedLine{Name: line.Name, Price: line.UnitPrice, Qty: line.Quantity})
	}
	payload, err := json.Marshal(lines)
	if err != nil {
		return "", err
	}
	return string(payload), nil
}

// Decode 反序列化并校验购物车
func Decode(raw string) (Cart, error) {
	if strings.TrimSpace(raw) == "" {
		return Cart{}, fmt.Errorf("%w: empty payload", ErrMalformedCart)
	}
	var lines []persistedLine
	if err := json.Unmarshal([]byte(raw), &lines); err != nil {
		return Cart{}, fmt.Errorf("%w: %v", ErrMalformedCart, err)
	}
	seen := make(map[string]struct{}, len(lines))
	out := make([]Line, 0, len(lines))
	for i, line := range lines {
		if line.Name == "" || line.Qty < 1 || line.Price < 0 {
			return Cart{}, fmt.Errorf("%w: line %d", ErrMalformedCart, i)
		}
		if _, dup := seen[line.Name]; dup {
			return Cart{}, fmt.Errorf("%w: duplicate line %s", ErrMalformedCart, line.Name)
		}
		seen[line.Name] = struct{}{}
		out = append(out, Line{Name: line.Name, UnitPrice: line.Price, Quantity: line.Qty})
	}
	return Cart{lines: out}, nil
}
