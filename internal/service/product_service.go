package service

import (
	"context"
	"time"

	"github.com/shanture-next/internal/cache"
	"github.com/shanture-next/internal/logger"
	"github.com/shanture-next/internal/models"
	"github.com/shanture-next/internal/repository"
)

// ProductService 商品业务服务
type ProductService struct {
	repo     repository.ProductRepository
	cacheTTL time.Duration
}

// NewProductService 创建商品服务
func NewProductService(repo repository.ProductRepository, cacheTTL time.Duration) *ProductService {
	return &ProductService{repo: repo, cacheTTL: cacheTTL}
}

// List 商品列表（按名称排序），启用 Redis 时走缓存
func (s *ProductService) List(ctx context.Context, filter repository.ProductListFilter) ([]models.Product, error) {
	key := ""
	if cache.Enabled() && s.cacheTTL > 0 {
		version, err := cache.CatalogVersion(ctx)
		if err != nil {
			logger.FromContext(ctx).Warnw("catalog_cache_version_failed", "error", err)
		} else {
			key = cache.ProductListKey(version, filter.Category, filter.Search, filter.Page, filter.PageSize)
			products, hit, err := cache.GetProductList(ctx, key)
			if err != nil {
				logger.FromContext(ctx).Warnw("catalog_cache_get_failed", "key", key, "error", err)
			} else if hit {
				return products, nil
			}
		}
	}

	products, err := s.repo.List(ctx, filter)
	if err != nil {
		return nil, err
	}
	if products == nil {
		products = []models.Product{}
	}
	if key != "" {
		if err := cache.SetProductList(ctx, key, products, s.cacheTTL); err != nil {
			logger.FromContext(ctx).Warnw("catalog_cache_set_failed", "key", key, "error", err)
		}
	}
	return products, nil
}

// GetByID 商品详情
func (s *ProductService) GetByID(ctx context.Context, id string) (*models.Product, error) {
	product, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, ErrProductNotFound
	}
	return product, nil
}

// InvalidateCache 使商品列表缓存失效
func (s *ProductService) InvalidateCache(ctx context.Context) error {
	return cache.InvalidateCatalog(ctx)
}
