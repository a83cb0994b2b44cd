package repository

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/shanture-next/internal/models"

	"github.com/glebarez/sqlite"
	"gorm.io/gorm"
)

func setupRepositoryTestDB(t *testing.T, name string) *gorm.DB {
	t.Helper()
	dsn := fmt.Sprintf("file:%s_%d?mode=memory&cache=shared", name, time.Now().UnixNano())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	if err != nil {
		t.Fatalf("open sqlite failed: %v", err)
	}
	if err := models.AutoMigrate(db); err != nil {
		t.Fatalf("auto migrate failed: %v", err)
	}
	t.Cleanup(func() {
		_ = models.CloseDB(db)
	})
	return db
}

func createTestProduct(t *testing.T, db *gorm.DB, name, category string, price float64, stock int) *models.Product {
	t.Helper()
	product := &models.Product{
		Name:     name,
		Category: category,
		Price:    models.NewMoneyFromFloat(price),
		Stock:    stock,
	}
	if err := NewProductRepository(db).Create(context.Background(), product); err != nil {
		t.Fatalf("create product failed: %v", err)
	}
	return product
}
