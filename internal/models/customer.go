package models

import (
	"time"

	"gorm.io/gorm"
)

// Customer 顾客表
type Customer struct {
	ID           string    `gorm:"primaryKey;type:varchar(36)" json:"id"`                   // 主键
	Username     string    `gorm:"type:varchar(100);uniqueIndex;not null" json:"username"` // 用户名
	Email        string    `gorm:"type:varchar(255);uniqueIndex;not null" json:"email"`    // 邮箱
	PasswordHash string    `gorm:"column:password;not null" json:"-"`                      // 密码哈希（不返回给前端）
	FullName     string    `gorm:"type:varchar(255);not null" json:"full_name"`            // 姓名
	Phone        string    `gorm:"type:varchar(50)" json:"phone"`                          // 电话
	Address      string    `gorm:"type:text" json:"address"`                               // 地址
	Image        string    `gorm:"type:varchar(500)" json:"image"`                         // 头像
	Region       string    `gorm:"type:varchar(100)" json:"region"`                        // 地区
	CreatedAt    time.Time `json:"created_at"`                                             // 创建时间
	UpdatedAt    time.Time `json:"updated_at"`                                             // 更新时间
}

// TableName 指定表名
func (Customer) TableName() string {
	return "customers"
}

// BeforeCreate 生成主键
func (c *Customer) BeforeCreate(_ *gorm.DB) error {
	ensureID(&c.ID)
	return nil
}
