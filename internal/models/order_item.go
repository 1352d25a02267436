package models

import "time"

// OrderItem 订单行，单价取自购物车中记录的价格
type OrderItem struct {
	ID         uint      `gorm:"primarykey" json:"id"`
	OrderID    uint      `gorm:"index;not null" json:"order_id"`
	Name       string    `gorm:"type:varchar(120);not null" json:"name"`
	UnitPrice  Money     `gorm:"type:decimal(20,2);not null;default:0" json:"unit_price"`
	Quantity   int       `gorm:"not null" json:"quantity"`
	TotalPrice Money     `gorm:"type:decimal(20,2);not null;default:0" json:"total_price"`
	CreatedAt  time.Time `json:"created_at"`
}

// TableName 指定表名
func (OrderItem) TableName() string {
	return "order_items"
}
