package models

import (
	"time"

	"gorm.io/gorm"
)

// OrderItem 订单项表（下单时的快照，不可变）
type OrderItem struct {
	ID           string    `gorm:"primaryKey;type:varchar(36)" json:"id"`               // 主键
	OrderID      string    `gorm:"type:varchar(36);not null;index" json:"order_id"`    // 订单ID
	ProductID    string    `gorm:"type:varchar(36);not null;index" json:"product_id"`  // 商品ID
	ProductName  string    `gorm:"type:varchar(255)" json:"product_name"`              // 商品名称快照
	ProductImage string    `gorm:"type:varchar(500)" json:"product_image"`             // 商品图片快照
	Quantity     int       `gorm:"not null" json:"quantity"`                           // 数量
	Price        Money     `gorm:"type:decimal(20,2);not null;default:0" json:"price"` // 单价快照
	CreatedAt    time.Time `gorm:"index" json:"created_at"`                            // 创建时间
}

// TableName 指定表名
func (OrderItem) TableName() string {
	return "order_items"
}

// BeforeCreate 生成主键
func (i *OrderItem) BeforeCreate(_ *gorm.DB) error {
	ensureID(&i.ID)
	return nil
}

// LineTotal 行小计
func (i OrderItem) LineTotal() Money {
	return i.Price.Mul(i.Quantity)
}
