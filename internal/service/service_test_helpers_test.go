package service

import (
	"context"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/shanture-next/internal/config"
	"github.com/shanture-next/internal/constants"
	"github.com/shanture-next/internal/models"
	"github.com/shanture-next/internal/queue"
	"github.com/shanture-next/internal/repository"

	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

type testEnv struct {
	db        *gorm.DB
	cart      *CartService
	orders    *OrderService
	products  *ProductService
	customers *CustomerService
	publisher *recordingPublisher
}

type recordingPublisher struct {
	mu      sync.Mutex
	enabled bool
	created []queue.OrderCreatedPayload
	deleted []queue.OrderDeletedPayload
}

func (p *recordingPublisher) Enabled() bool { return p.enabled }

func (p *recordingPublisher) PublishOrderCreated(_ context.Context, payload queue.OrderCreatedPayload) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.created = append(p.created, payload)
	return nil
}

func (p *recordingPublisher) PublishOrderDeleted(_ context.Context, payload queue.OrderDeletedPayload) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.deleted = append(p.deleted, payload)
	return nil
}

func newTestConfig() *config.Config {
	return &config.Config{
		UserJWT: config.JWTConfig{SecretKey: "test-secret", ExpireHours: 720},
		Security: config.SecurityConfig{
			PasswordPolicy: config.PasswordPolicyConfig{MinLength: 6},
		},
		Order: config.OrderConfig{PriceSource: constants.PriceSourceClient},
	}
}

func setupServiceTest(t *testing.T, priceSource string) *testEnv {
	t.Helper()
	dsn := fmt.Sprintf("file:service_test_%d?mode=memory&cache=shared", time.Now().UnixNano())
	db, err := models.OpenDB(models.DBOptions{
		Driver:   "sqlite",
		DSN:      dsn,
		LogLevel: "silent",
		Pool:     models.DBPoolConfig{MaxOpenConns: 1, MaxIdleConns: 1},
	})
	require.NoError(t, err)
	require.NoError(t, models.AutoMigrate(db))
	t.Cleanup(func() { _ = models.CloseDB(db) })

	cartRepo := repository.NewCartRepository(db)
	productRepo := repository.NewProductRepository(db)
	orderRepo := repository.NewOrderRepository(db)
	customerRepo := repository.NewCustomerRepository(db)
	publisher := &recordingPublisher{enabled: true}

	return &testEnv{
		db:        db,
		cart:      NewCartService(db, cartRepo, productRepo),
		orders:    NewOrderService(db, orderRepo, productRepo, cartRepo, publisher, priceSource),
		products:  NewProductService(productRepo, time.Minute),
		customers: NewCustomerService(db, newTestConfig(), customerRepo),
		publisher: publisher,
	}
}

func (e *testEnv) createProduct(t *testing.T, name string, price float64, stock int) *models.Product {
	t.Helper()
	product := &models.Product{
		Name:     name,
		Price:    models.NewMoneyFromFloat(price),
		Image:    "https://example.com/" + name + ".png",
		Category: "electronics",
		Stock:    stock,
	}
	require.NoError(t, e.db.Create(product).Error)
	return product
}

func (e *testEnv) stockOf(t *testing.T, productID string) int {
	t.Helper()
	var product models.Product
	require.NoError(t, e.db.Where("id = ?", productID).First(&product).Error)
	return product.Stock
}

func (e *testEnv) count(t *testing.T, model interface{}, query string, args ...interface{}) int64 {
	t.Helper()
	var n int64
	q := e.db.Model(model)
	if query != "" {
		q = q.Where(query, args...)
	}
	require.NoError(t, q.Count(&n).Error)
	return n
}

func money(t *testing.T, raw string) *models.Money {
	t.Helper()
	m, err := models.ParseMoney(raw)
	require.NoError(t, err)
	return &m
}
