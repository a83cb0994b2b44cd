package models

import (
	"time"

	"gorm.io/gorm"
)

// CartItem 购物车项
type CartItem struct {
	ID         string    `gorm:"primaryKey;type:varchar(36)" json:"id"`                                        // 主键
	CustomerID string    `gorm:"type:varchar(36);not null;uniqueIndex:idx_cart_customer_product" json:"customer_id"` // 顾客ID
	ProductID  string    `gorm:"type:varchar(36);not null;uniqueIndex:idx_cart_customer_product" json:"product_id"`  // 商品ID
	Quantity   int       `gorm:"not null" json:"quantity"`                                                     // 数量
	CreatedAt  time.Time `gorm:"index" json:"created_at"`                                                      // 创建时间
	UpdatedAt  time.Time `json:"updated_at"`                                                                   // 更新时间

	Product *Product `gorm:"foreignKey:ProductID" json:"product,omitempty"` // 关联商品
}

// TableName 指定表名
func (CartItem) TableName() string {
	return "cart_items"
}

// BeforeCreate 生成主键
func (c *CartItem) BeforeCreate(_ *gorm.DB) error {
	ensureID(&c.ID)
	return nil
}
