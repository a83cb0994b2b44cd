package repository

import (
	"context"
	"errors"
	"time"

	"github.com/shanture-next/internal/models"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// CartRepository 购物车数据访问接口
type CartRepository interface {
	ListByCustomer(ctx context.Context, customerID string) ([]models.CartItem, error)
	GetByCustomerAndProduct(ctx context.Context, customerID, productID string) (*models.CartItem, error)
	GetByIDAndCustomer(ctx context.Context, id, customerID string) (*models.CartItem, error)
	AddQuantity(ctx context.Context, item *models.CartItem) error
	UpdateQuantity(ctx context.Context, id string, quantity int) error
	Delete(ctx context.Context, id string) error
	ClearByCustomer(ctx context.Context, customerID string) (int64, error)
	WithTx(tx *gorm.DB) CartRepository
}

// GormCartRepository GORM 实现
type GormCartRepository struct {
	db *gorm.DB
}

// NewCartRepository 创建购物车仓库
func NewCartRepository(db *gorm.DB) *GormCartRepository {
	return &GormCartRepository{db: db}
}

// WithTx 绑定事务
func (r *GormCartRepository) WithTx(tx *gorm.DB) CartRepository {
	if tx == nil {
		return r
	}
	return &GormCartRepository{db: tx}
}

// ListByCustomer 获取顾客购物车项（含商品信息）
func (r *GormCartRepository) ListByCustomer(ctx context.Context, customerID string) ([]models.CartItem, error) {
	var items []models.CartItem
	if err := r.db.WithContext(ctx).Preload("Product").
		Where("customer_id = ?", customerID).
		Order("created_at asc").Order("id asc").
		Find(&items).Error; err != nil {
		return nil, err
	}
	return items, nil
}

// GetByCustomerAndProduct 获取顾客某商品的购物车项
func (r *GormCartRepository) GetByCustomerAndProduct(ctx context.Context, customerID, productID string) (*models.CartItem, error) {
	var item models.CartItem
	err := r.db.WithContext(ctx).Where("customer_id = ? AND product_id = ?", customerID, productID).First(&item).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &item, nil
}

// GetByIDAndCustomer 获取属于顾客的购物车项
func (r *GormCartRepository) GetByIDAndCustomer(ctx context.Context, id, customerID string) (*models.CartItem, error) {
	var item models.CartItem
	err := r.db.WithContext(ctx).Preload("Product").Where("id = ? AND customer_id = ?", id, customerID).First(&item).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &item, nil
}

// AddQuantity 新增购物车项，(customer_id, product_id) 已存在时累加数量
// 冲突时 item.ID 不代表已有行的主键
func (r *GormCartRepository) AddQuantity(ctx context.Context, item *models.CartItem) error {
	if item == nil {
		return nil
	}
	return r.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns: []clause.Column{{Name: "customer_id"}, {Name: "product_id"}},
		DoUpdates: clause.Assignments(map[string]interface{}{
			"quantity":   gorm.Expr("cart_items.quantity + excluded.quantity"),
			"updated_at": time.Now(),
		}),
	}).Create(item).Error
}

// UpdateQuantity 设置购物车项数量
func (r *GormCartRepository) UpdateQuantity(ctx context.Context, id string, quantity int) error {
	return r.db.WithContext(ctx).Model(&models.CartItem{}).Where("id = ?", id).
		Updates(map[string]interface{}{
			"quantity":   quantity,
			"updated_at": time.Now(),
		}).Error
}

// Delete 删除购物车项
func (r *GormCartRepository) Delete(ctx context.Context, id string) error {
	return r.db.WithContext(ctx).Where("id = ?", id).Delete(&models.CartItem{}).Error
}

// ClearByCustomer 清空购物车
func (r *GormCartRepository) ClearByCustomer(ctx context.Context, customerID string) (int64, error) {
	result := r.db.WithContext(ctx).Where("customer_id = ?", customerID).Delete(&models.CartItem{})
	return result.RowsAffected, result.Error
}
