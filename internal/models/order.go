package models

import (
	"time"

	"gorm.io/gorm"
)

// Order 订单表
type Order struct {
	ID              string    `gorm:"primaryKey;type:varchar(36)" json:"id"`                // 主键
	CustomerID      string    `gorm:"type:varchar(36);not null;index" json:"customer_id"`  // 顾客ID
	OrderDate       time.Time `gorm:"not null;index" json:"order_date"`                    // 下单时间
	Status          string    `gorm:"type:varchar(20);not null;index" json:"status"`       // 订单状态
	Total           Money     `gorm:"type:decimal(20,2);not null;default:0" json:"total"`  // 订单总额（下单时冻结）
	ShippingAddress JSONText  `gorm:"type:text" json:"shipping_address"`                   // 收货地址 JSON
	PaymentMethod   string    `gorm:"type:varchar(50)" json:"payment_method"`              // 支付方式
	CreatedAt       time.Time `json:"created_at"`                                          // 创建时间
	UpdatedAt       time.Time `json:"updated_at"`                                          // 更新时间

	Items []OrderItem `gorm:"foreignKey:OrderID" json:"items"` // 订单项
}

// TableName 指定表名
func (Order) TableName() string {
	return "orders"
}

// BeforeCreate 生成主键
func (o *Order) BeforeCreate(_ *gorm.DB) error {
	ensureID(&o.ID)
	return nil
}
