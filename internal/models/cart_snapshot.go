package models

import "time"

// CartSnapshot 购物车持久化快照，一个键一行
type CartSnapshot struct {
	ID        uint      `gorm:"primarykey" json:"id"`
	Key       string    `gorm:"column:cart_key;type:varchar(191);uniqueIndex;not null" json:"key"`
	Payload   string    `gorm:"type:text;not null" json:"payload"` // JSON 数组 [{name,price,qty}]
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `gorm:"index" json:"updated_at"`
}

// TableName 指定表名
func (CartSnapshot) TableName() string {
	return "cart_snapshots"
}
