package service

import (
	"context"
	"math"

	"github.com/shanture-next/internal/logger"
	"github.com/shanture-next/internal/models"
	"github.com/shanture-next/internal/repository"

	"github.com/shopspring/decimal"
	"go.opentelemetry.io/otel/attribute"
	"gorm.io/gorm"
)

// CartLine 购物车项详情（含商品信息）
type CartLine struct {
	ID        string       `json:"id"`
	ProductID string       `json:"product_id"`
	Name      string       `json:"name"`
	Price     models.Money `json:"price"`
	Image     string       `json:"image"`
	Category  string       `json:"category"`
	Stock     int          `json:"stock"`
	Quantity  int          `json:"quantity"`
	ItemTotal models.Money `json:"item_total"`
}

// CartSummary 购物车汇总
type CartSummary struct {
	Items     []CartLine   `json:"items"`
	Total     models.Money `json:"total"`
	ItemCount int          `json:"itemCount"`
}

// CartService 购物车服务
type CartService struct {
	db          *gorm.DB
	cartRepo    repository.CartRepository
	productRepo repository.ProductRepository
}

// NewCartService 创建购物车服务
func NewCartService(db *gorm.DB, cartRepo repository.CartRepository, productRepo repository.ProductRepository) *CartService {
	return &CartService{
		db:          db,
		cartRepo:    cartRepo,
		productRepo: productRepo,
	}
}

// Add 加入购物车，已有同商品时累加数量
// 累加后的数量不能超过当前库存，库存本身不变
func (s *CartService) Add(ctx context.Context, customerID, productID string, quantity int) (summary *CartSummary, err error) {
	ctx, span := startSpan(ctx, "CartService.Add",
		attribute.String("customer.id", customerID),
		attribute.String("product.id", productID),
		attribute.Int("cart.quantity", quantity),
	)
	defer func() { endSpan(span, err) }()

	if quantity <= 0 {
		return nil, ErrInvalidQuantity
	}

	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		cartRepo := s.cartRepo.WithTx(tx)
		product, err := s.productRepo.WithTx(tx).GetByID(ctx, productID)
		if err != nil {
			return err
		}
		if product == nil {
			return ErrProductNotFound
		}

		existing, err := cartRepo.GetByCustomerAndProduct(ctx, customerID, productID)
		if err != nil {
			return err
		}
		current := 0
		if existing != nil {
			current = existing.Quantity
		}
		// 以差值比较，避免 current+quantity 溢出
		if quantity > product.Stock-current {
			return &StockError{
				ProductID:   product.ID,
				ProductName: product.Name,
				Requested:   addQuantity(current, quantity),
				Available:   product.Stock,
			}
		}

		if err := cartRepo.AddQuantity(ctx, &models.CartItem{
			CustomerID: customerID,
			ProductID:  productID,
			Quantity:   quantity,
		}); err != nil {
			return err
		}

		items, err := cartRepo.ListByCustomer(ctx, customerID)
		if err != nil {
			return err
		}
		summary = buildCartSummary(items)
		return nil
	})
	if err != nil {
		return nil, err
	}

	logger.FromContext(ctx).Infow("cart_item_added",
		"customer_id", customerID,
		"product_id", productID,
		"quantity", quantity,
		"item_count", summary.ItemCount,
	)
	return summary, nil
}

// Get 获取购物车
func (s *CartService) Get(ctx context.Context, customerID string) (*CartSummary, error) {
	items, err := s.cartRepo.ListByCustomer(ctx, customerID)
	if err != nil {
		return nil, err
	}
	return buildCartSummary(items), nil
}

// Update 设置购物车项数量（不重新校验库存）
func (s *CartService) Update(ctx context.Context, customerID, cartItemID string, quantity int) (line *CartLine, err error) {
	ctx, span := startSpan(ctx, "CartService.Update",
		attribute.String("customer.id", customerID),
		attribute.String("cart_item.id", cartItemID),
	)
	defer func() { endSpan(span, err) }()

	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		cartRepo := s.cartRepo.WithTx(tx)
		item, err := cartRepo.GetByIDAndCustomer(ctx, cartItemID, customerID)
		if err != nil {
			return err
		}
		if item == nil {
			return ErrCartItemNotFound
		}
		if quantity <= 0 {
			return ErrInvalidQuantity
		}
		if err := cartRepo.UpdateQuantity(ctx, item.ID, quantity); err != nil {
			return err
		}
		item.Quantity = quantity
		built := buildCartLine(*item)
		line = &built
		return nil
	})
	if err != nil {
		return nil, err
	}
	logger.FromContext(ctx).Infow("cart_item_updated", "customer_id", customerID, "cart_item_id", cartItemID, "quantity", quantity)
	return line, nil
}

// Remove 删除购物车项
func (s *CartService) Remove(ctx context.Context, customerID, cartItemID string) (err error) {
	ctx, span := startSpan(ctx, "CartService.Remove",
		attribute.String("customer.id", customerID),
		attribute.String("cart_item.id", cartItemID),
	)
	defer func() { endSpan(span, err) }()

	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		cartRepo := s.cartRepo.WithTx(tx)
		item, err := cartRepo.GetByIDAndCustomer(ctx, cartItemID, customerID)
		if err != nil {
			return err
		}
		if item == nil {
			return ErrCartItemNotFound
		}
		return cartRepo.Delete(ctx, item.ID)
	})
	if err != nil {
		return err
	}
	logger.FromContext(ctx).Infow("cart_item_removed", "customer_id", customerID, "cart_item_id", cartItemID)
	return nil
}

func buildCartSummary(items []models.CartItem) *CartSummary {
	summary := &CartSummary{Items: make([]CartLine, 0, len(items))}
	total := decimal.Zero
	for _, item := range items {
		if item.Product == nil {
			continue
		}
		line := buildCartLine(item)
		summary.Items = append(summary.Items, line)
		total = total.Add(line.ItemTotal.Decimal)
		summary.ItemCount += line.Quantity
	}
	summary.Total = models.NewMoneyFromDecimal(total)
	return summary
}

func buildCartLine(item models.CartItem) CartLine {
	line := CartLine{
		ID:        item.ID,
		ProductID: item.ProductID,
		Quantity:  item.Quantity,
	}
	if item.Product != nil {
		line.Name = item.Product.Name
		line.Price = item.Product.Price
		line.Image = item.Product.Image
		line.Category = item.Product.Category
		line.Stock = item.Product.Stock
	}
	line.ItemTotal = line.Price.Mul(item.Quantity)
	return line
}

// addQuantity 累加数量，溢出时取 math.MaxInt
func addQuantity(a, b int) int {
	if b > math.MaxInt-a {
		return math.MaxInt
	}
	return a + b
}
