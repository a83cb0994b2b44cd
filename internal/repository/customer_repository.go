package repository

import (
	"context"
	"errors"
	"strings"

	"github.com/shanture-next/internal/models"

	"gorm.io/gorm"
)

// CustomerRepository 顾客数据访问接口
type CustomerRepository interface {
	GetByID(ctx context.Context, id string) (*models.Customer, error)
	GetByUsername(ctx context.Context, username string) (*models.Customer, error)
	GetByEmail(ctx context.Context, email string) (*models.Customer, error)
	ExistsByID(ctx context.Context, id string) (bool, error)
	Create(ctx context.Context, customer *models.Customer) error
	Update(ctx context.Context, customer *models.Customer) error
	WithTx(tx *gorm.DB) CustomerRepository
}

// GormCustomerRepository GORM 实现
type GormCustomerRepository struct {
	db *gorm.DB
}

// NewCustomerRepository 创建顾客仓库
func NewCustomerRepository(db *gorm.DB) *GormCustomerRepository {
	return &GormCustomerRepository{db: db}
}

// WithTx 绑定事务
func (r *GormCustomerRepository) WithTx(tx *gorm.DB) CustomerRepository {
	if tx == nil {
		return r
	}
	return &GormCustomerRepository{db: tx}
}

func (r *GormCustomerRepository) first(ctx context.Context, column, value string) (*models.Customer, error) {
	var customer models.Customer
	if err := r.db.WithContext(ctx).Where(column+" = ?", value).First(&customer).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &customer, nil
}

// GetByID 根据 ID 获取顾客
func (r *GormCustomerRepository) GetByID(ctx context.Context, id string) (*models.Customer, error) {
	return r.first(ctx, "id", id)
}

// GetByUsername 根据用户名获取顾客
func (r *GormCustomerRepository) GetByUsername(ctx context.Context, username string) (*models.Customer, error) {
	return r.first(ctx, "username", strings.TrimSpace(username))
}

// GetByEmail 根据邮箱获取顾客（不区分大小写）
func (r *GormCustomerRepository) GetByEmail(ctx context.Context, email string) (*models.Customer, error) {
	return r.first(ctx, "email", strings.ToLower(strings.TrimSpace(email)))
}

// ExistsByID 顾客是否存在
func (r *GormCustomerRepository) ExistsByID(ctx context.Context, id string) (bool, error) {
	var count int64
	if err := r.db.WithContext(ctx).Model(&models.Customer{}).Where("id = ?", id).Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

// Create 创建顾客
func (r *GormCustomerRepository) Create(ctx context.Context, customer *models.Customer) error {
	return r.db.WithContext(ctx).Create(customer).Error
}

// Update 更新顾客资料
func (r *GormCustomerRepository) Update(ctx context.Context, customer *models.Customer) error {
	return r.db.WithContext(ctx).Save(customer).Error
}
