package repository

import (
	"context"
	"errors"

	"github.com/shanture-next/internal/models"

	"gorm.io/gorm"
)

// OrderRepository 订单数据访问接口
type OrderRepository interface {
	Create(ctx context.Context, order *models.Order, items []models.OrderItem) error
	GetByIDAndCustomer(ctx context.Context, id, customerID string) (*models.Order, error)
	ListByCustomer(ctx context.Context, filter OrderListFilter) ([]models.Order, error)
	Delete(ctx context.Context, id string) error
	WithTx(tx *gorm.DB) OrderRepository
}

// GormOrderRepository GORM 实现
type GormOrderRepository struct {
	db *gorm.DB
}

// NewOrderRepository 创建订单仓库
func NewOrderRepository(db *gorm.DB) *GormOrderRepository {
	return &GormOrderRepository{db: db}
}

// WithTx 绑定事务
func (r *GormOrderRepository) WithTx(tx *gorm.DB) OrderRepository {
	if tx == nil {
		return r
	}
	return &GormOrderRepository{db: tx}
}

func (r *GormOrderRepository) withItems(query *gorm.DB) *gorm.DB {
	return query.Preload("Items", func(db *gorm.DB) *gorm.DB {
		return db.Order("created_at asc").Order("id asc")
	})
}

// Create 创建订单与订单项
func (r *GormOrderRepository) Create(ctx context.Context, order *models.Order, items []models.OrderItem) error {
	db := r.db.WithContext(ctx)
	if err := db.Omit("Items").Create(order).Error; err != nil {
		return err
	}
	for i := range items {
		items[i].OrderID = order.ID
	}
	if len(items) > 0 {
		if err := db.Create(&items).Error; err != nil {
			return err
		}
	}
	order.Items = items
	return nil
}

// GetByIDAndCustomer 获取属于顾客的订单，不存在时返回 nil
func (r *GormOrderRepository) GetByIDAndCustomer(ctx context.Context, id, customerID string) (*models.Order, error) {
	var order models.Order
	err := r.withItems(r.db.WithContext(ctx)).Where("id = ? AND customer_id = ?", id, customerID).First(&order).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &order, nil
}

// ListByCustomer 顾客订单列表，按下单时间倒序
func (r *GormOrderRepository) ListByCustomer(ctx context.Context, filter OrderListFilter) ([]models.Order, error) {
	query := r.withItems(r.db.WithContext(ctx)).
		Where("customer_id = ?", filter.CustomerID).
		Order("order_date desc").Order("id desc")
	query = applyPagination(query, filter.Page, filter.PageSize)

	var orders []models.Order
	if err := query.Find(&orders).Error; err != nil {
		return nil, err
	}
	return orders, nil
}

// Delete 删除订单及其订单项
func (r *GormOrderRepository) Delete(ctx context.Context, id string) error {
	db := r.db.WithContext(ctx)
	if err := db.Where("order_id = ?", id).Delete(&models.OrderItem{}).Error; err != nil {
		return err
	}
	result := db.Where("id = ?", id).Delete(&models.Order{})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}
