package models

import "time"

// Order 结账确认后记录的订单
type Order struct {
	ID          uint       `gorm:"primarykey" json:"id"`                                      // 主键
	OrderNo     string     `gorm:"type:varchar(64);uniqueIndex;not null" json:"order_no"`     // 订单编号
	SessionID   string     `gorm:"type:varchar(64);index;not null" json:"-"`                  // 访客会话
	Status      string     `gorm:"type:varchar(20);index;not null" json:"status"`             // confirmed / notified / cancelled
	ItemCount   int        `gorm:"not null;default:0" json:"item_count"`                      // 杯数
	TotalAmount Money      `gorm:"type:decimal(20,2);not null;default:0" json:"total_amount"` // 合计
	NotifiedAt  *time.Time `json:"notified_at,omitempty"`                                     // 异步通知完成时间
	CreatedAt   time.Time  `gorm:"index" json:"created_at"`
	UpdatedAt   time.Time  `json:"updated_at"`

	Items []OrderItem `gorm:"foreignKey:OrderID" json:"items,omitempty"`
}

// TableName 指定表名
func (Order) TableName() string {
	return "orders"
}
