//go:build integration
// +build integration

package repository

import (
	"context"
	"os"
	"strings"
	"testing"
	"time"

	"github.com/shanture-next/internal/constants"
	"github.com/shanture-next/internal/models"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

// setupPostgresIntegrationDB 初始化 PostgreSQL 集成测试数据库。
func setupPostgresIntegrationDB(t *testing.T) *gorm.DB {
	t.Helper()

	dsn := strings.TrimSpace(os.Getenv("TEST_POSTGRES_DSN"))
	if dsn == "" {
		t.Skip("skip postgres integration test: TEST_POSTGRES_DSN is empty")
	}

	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{})
	if err != nil {
		t.Fatalf("open postgres failed: %v", err)
	}

	cleanupModels := []interface{}{
		&models.OrderItem{},
		&models.Order{},
		&models.CartItem{},
		&models.Product{},
		&models.Customer{},
	}
	_ = db.Migrator().DropTable(cleanupModels...)

	if err := models.AutoMigrate(db); err != nil {
		t.Fatalf("migrate postgres models failed: %v", err)
	}

	t.Cleanup(func() {
		_ = db.Migrator().DropTable(cleanupModels...)
		_ = models.CloseDB(db)
	})

	return db
}

func TestPostgresCartUpsertAndStockDecrement(t *testing.T) {
	db := setupPostgresIntegrationDB(t)
	ctx := context.Background()

	productRepo := NewProductRepository(db)
	product := &models.Product{
		Name:  "Portable Speaker",
		Price: models.NewMoneyFromFloat(59.99),
		Stock: 5,
	}
	if err := productRepo.Create(ctx, product); err != nil {
		t.Fatalf("create product failed: %v", err)
	}

	searched, err := productRepo.List(ctx, ProductListFilter{Search: "speaker"})
	if err != nil {
		t.Fatalf("search products failed: %v", err)
	}
	if len(searched) != 1 {
		t.Fatalf("ILIKE search want 1 got %d", len(searched))
	}

	cartRepo := NewCartRepository(db)
	for _, qty := range []int{1, 2} {
		if err := cartRepo.AddQuantity(ctx, &models.CartItem{CustomerID: "pg-customer", ProductID: product.ID, Quantity: qty}); err != nil {
			t.Fatalf("add cart item failed: %v", err)
		}
	}
	items, err := cartRepo.ListByCustomer(ctx, "pg-customer")
	if err != nil || len(items) != 1 || items[0].Quantity != 3 {
		t.Fatalf("cart upsert mismatch: %+v %v", items, err)
	}

	err = db.Transaction(func(tx *gorm.DB) error {
		orderRepo := NewOrderRepository(db).WithTx(tx)
		order := &models.Order{
			CustomerID: "pg-customer",
			OrderDate:  time.Now(),
			Status:     constants.OrderStatusPending,
			Total:      models.NewMoneyFromFloat(179.97),
		}
		if err := orderRepo.Create(ctx, order, []models.OrderItem{{ProductID: product.ID, Quantity: 3, Price: product.Price}}); err != nil {
			return err
		}
		affected, err := productRepo.WithTx(tx).DecrementStock(ctx, product.ID, 3)
		if err != nil {
			return err
		}
		if affected != 1 {
			t.Fatalf("decrement affected want 1 got %d", affected)
		}
		_, err = cartRepo.WithTx(tx).ClearByCustomer(ctx, "pg-customer")
		return err
	})
	if err != nil {
		t.Fatalf("checkout transaction failed: %v", err)
	}

	reloaded, err := productRepo.GetByID(ctx, product.ID)
	if err != nil || reloaded == nil || reloaded.Stock != 2 {
		t.Fatalf("stock after checkout mismatch: %+v %v", reloaded, err)
	}
}
