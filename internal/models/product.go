package models

import (
	"time"

	"gorm.io/gorm"
)

// Product 商品表
type Product struct {
	ID          string    `gorm:"primaryKey;type:varchar(36)" json:"id"`                       // 主键
	Name        string    `gorm:"type:varchar(255);not null;index" json:"name"`                // 名称
	Description string    `gorm:"type:text" json:"description"`                                // 描述
	Price       Money     `gorm:"type:decimal(20,2);not null;default:0" json:"price"`          // 单价
	Image       string    `gorm:"type:varchar(500)" json:"image"`                              // 图片地址
	Category    string    `gorm:"type:varchar(100);index" json:"category"`                     // 分类
	Stock       int       `gorm:"not null;default:0" json:"stock"`                             // 可售库存
	CreatedAt   time.Time `gorm:"index" json:"created_at"`                                     // 创建时间
	UpdatedAt   time.Time `json:"updated_at"`                                                  // 更新时间
}

// TableName 指定表名
func (Product) TableName() string {
	return "products"
}

// BeforeCreate 生成主键
func (p *Product) BeforeCreate(_ *gorm.DB) error {
	ensureID(&p.ID)
	return nil
}
