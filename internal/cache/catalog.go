package cache

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/shanture-next/internal/models"
)

// 商品列表缓存键带版本号，失效时只需递增版本
const catalogVersionKey = "catalog:version"

// ProductListKey 生成商品列表缓存键
func ProductListKey(version int64, category, search string, page, pageSize int) string {
	return fmt.Sprintf("catalog:products:v%d:c=%s:q=%s:p=%d:s=%d",
		version,
		strings.ToLower(strings.TrimSpace(category)),
		strings.ToLower(strings.TrimSpace(search)),
		page,
		pageSize,
	)
}

// CatalogVersion 当前商品缓存版本
func CatalogVersion(ctx context.Context) (int64, error) {
	return GetInt64(ctx, catalogVersionKey)
}

// GetProductList 读取商品列表缓存
func GetProductList(ctx context.Context, key string) ([]models.Product, bool, error) {
	var products []models.Product
	hit, err := GetJSON(ctx, key, &products)
	if err != nil || !hit {
		return nil, hit, err
	}
	return products, true, nil
}

// SetProductList 写入商品列表缓存
func SetProductList(ctx context.Context, key string, products []models.Product, ttl time.Duration) error {
	if ttl <= 0 {
		return nil
	}
	return SetJSON(ctx, key, products, ttl)
}

// InvalidateCatalog 使全部商品列表缓存失效
func InvalidateCatalog(ctx context.Context) error {
	_, err := Incr(ctx, catalogVersionKey)
	return err
}
