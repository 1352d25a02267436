package models

import "time"

// MenuEntry 菜单表（catalog.source=database 时使用）
type MenuEntry struct {
	ID         uint      `gorm:"primarykey" json:"id"`
	Name       string    `gorm:"type:varchar(120);uniqueIndex;not null" json:"name"`
	UnitPrice  int       `gorm:"not null;default:0" json:"price"`
	TotalStock int       `gorm:"not null;default:0" json:"stock"`
	SortOrder  int       `gorm:"index;not null;default:0" json:"sort_order"`
	CreatedAt  time.Time `json:"created_at"`
	UpdatedAt  time.Time `json:"updated_at"`
}

// TableName 指定表名
func (MenuEntry) TableName() string {
	return "menu_entries"
}
