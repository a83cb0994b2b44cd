package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/shanture-next/internal/cache"
	"github.com/shanture-next/internal/constants"
	"github.com/shanture-next/internal/logger"
	"github.com/shanture-next/internal/models"
	"github.com/shanture-next/internal/queue"
	"github.com/shanture-next/internal/repository"

	"github.com/shopspring/decimal"
	"go.opentelemetry.io/otel/attribute"
	"gorm.io/gorm"
)

// OrderEventPublisher 订单事件投递
type OrderEventPublisher interface {
	Enabled() bool
	PublishOrderCreated(ctx context.Context, payload queue.OrderCreatedPayload) error
	PublishOrderDeleted(ctx context.Context, payload queue.OrderDeletedPayload) error
}

// OrderService 订单服务
type OrderService struct {
	db          *gorm.DB
	orderRepo   repository.OrderRepository
	productRepo repository.ProductRepository
	cartRepo    repository.CartRepository
	publisher   OrderEventPublisher
	priceSource string
	now         func() time.Time
}

// NewOrderService 创建订单服务
func NewOrderService(db *gorm.DB, orderRepo repository.OrderRepository, productRepo repository.ProductRepository, cartRepo repository.CartRepository, publisher OrderEventPublisher, priceSource string) *OrderService {
	source := strings.ToLower(strings.TrimSpace(priceSource))
	if source != constants.PriceSourceCatalog {
		source = constants.PriceSourceClient
	}
	return &OrderService{
		db:          db,
		orderRepo:   orderRepo,
		productRepo: productRepo,
		cartRepo:    cartRepo,
		publisher:   publisher,
		priceSource: source,
		now:         time.Now,
	}
}

// CreateOrderInput 创建订单输入
type CreateOrderInput struct {
	CustomerID      string
	Items           []CreateOrderItem
	ShippingAddress models.JSONText
	PaymentMethod   string
	RequestID       string
}

// CreateOrderItem 创建订单项输入
// Quantity <= 0 与 Price == nil 视为不合法，PriceMalformed 表示提交了无法解析的价格
type CreateOrderItem struct {
	ProductID      string
	Quantity       int
	Price          *models.Money
	PriceMalformed bool
	Name           string
}

// orderLine 合并后的订单行
type orderLine struct {
	ProductID string
	Quantity  int
	Price     *models.Money
}

// CreateOrder 将下单请求转换为订单
// 订单、订单项、库存扣减、清空购物车在同一事务内完成
func (s *OrderService) CreateOrder(ctx context.Context, input CreateOrderInput) (view *OrderView, err error) {
	ctx, span := startSpan(ctx, "OrderService.CreateOrder",
		attribute.String("customer.id", input.CustomerID),
		attribute.Int("order.item_count", len(input.Items)),
		attribute.String("order.price_source", s.priceSource),
	)
	defer func() { endSpan(span, err) }()

	lines, err := s.normalizeOrderItems(input.Items)
	if err != nil {
		return nil, err
	}

	now := s.now()
	order := &models.Order{
		CustomerID:      input.CustomerID,
		OrderDate:       now,
		Status:          constants.OrderStatusPending,
		ShippingAddress: input.ShippingAddress,
		PaymentMethod:   strings.TrimSpace(input.PaymentMethod),
		CreatedAt:       now,
		UpdatedAt:       now,
	}

	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		productRepo := s.productRepo.WithTx(tx)
		products, err := s.loadOrderProducts(ctx, productRepo, lines)
		if err != nil {
			return err
		}
		items := make([]models.OrderItem, 0, len(lines))
		total := decimal.Zero

		for _, line := range lines {
			product, ok := products[line.ProductID]
			if !ok {
				return fmt.Errorf("%w: %s", ErrOrderProductNotFound, line.ProductID)
			}

			affected, err := productRepo.DecrementStock(ctx, product.ID, line.Quantity)
			if err != nil {
				return err
			}
			if affected == 0 {
				return &StockError{
					ProductID:   product.ID,
					ProductName: product.Name,
					Requested:   line.Quantity,
					Available:   product.Stock,
				}
			}

			price := product.Price
			if s.priceSource == constants.PriceSourceClient && line.Price != nil {
				price = *line.Price
			}
			items = append(items, models.OrderItem{
				ProductID:    product.ID,
				ProductName:  product.Name,
				ProductImage: product.Image,
				Quantity:     line.Quantity,
				Price:        price,
				CreatedAt:    now,
			})
			total = total.Add(price.Mul(line.Quantity).Decimal)
		}

		order.Total = models.NewMoneyFromDecimal(total)
		if err := s.orderRepo.WithTx(tx).Create(ctx, order, items); err != nil {
			return err
		}
		_, err = s.cartRepo.WithTx(tx).ClearByCustomer(ctx, input.CustomerID)
		return err
	})
	if err != nil {
		logger.FromContext(ctx).Warnw("order_create_failed",
			"customer_id", input.CustomerID,
			"item_count", len(lines),
			"error", err,
		)
		return nil, err
	}

	logger.FromContext(ctx).Infow("order_created",
		"order_id", order.ID,
		"customer_id", order.CustomerID,
		"total", order.Total.String(),
		"item_count", len(order.Items),
	)
	s.publishOrderCreated(ctx, order, input.RequestID)

	built := buildOrderView(*order)
	return &built, nil
}

// DeleteOrder 删除顾客自己的订单（不回补库存）
func (s *OrderService) DeleteOrder(ctx context.Context, customerID, orderID string) (err error) {
	ctx, span := startSpan(ctx, "OrderService.DeleteOrder",
		attribute.String("customer.id", customerID),
		attribute.String("order.id", orderID),
	)
	defer func() { endSpan(span, err) }()

	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		orderRepo := s.orderRepo.WithTx(tx)
		order, err := orderRepo.GetByIDAndCustomer(ctx, orderID, customerID)
		if err != nil {
			return err
		}
		if order == nil {
			return ErrOrderNotFound
		}
		return orderRepo.Delete(ctx, order.ID)
	})
	if err != nil {
		return err
	}

	logger.FromContext(ctx).Infow("order_deleted", "order_id", orderID, "customer_id", customerID)
	s.publishOrderDeleted(ctx, customerID, orderID)
	return nil
}

// normalizeOrderItems 校验并合并下单项，任一项不合法时整单拒绝
func (s *OrderService) normalizeOrderItems(items []CreateOrderItem) ([]orderLine, error) {
	if len(items) == 0 {
		return nil, ErrOrderEmpty
	}

	requirePrice := s.priceSource == constants.PriceSourceClient
	invalid := make([]InvalidOrderItem, 0)
	lines := make([]orderLine, 0, len(items))
	indexMap := make(map[string]int, len(items))

	for idx, item := range items {
		productID := strings.TrimSpace(item.ProductID)
		reasons := make([]string, 0, 3)
		if productID == "" {
			reasons = append(reasons, "product_id is required")
		}
		if item.Quantity <= 0 {
			reasons = append(reasons, "quantity must be a positive integer")
		}
		switch {
		case item.PriceMalformed:
			reasons = append(reasons, "price must be a number")
		case item.Price == nil && requirePrice:
			reasons = append(reasons, "price is required")
		}
		if item.Price != nil && item.Price.IsNegative() {
			reasons = append(reasons, "price must not be negative")
		}
		if len(reasons) > 0 {
			invalid = append(invalid, InvalidOrderItem{Index: idx, ProductID: productID, Reason: strings.Join(reasons, ", ")})
			continue
		}

		if pos, ok := indexMap[productID]; ok {
			if requirePrice && !lines[pos].Price.Equal(item.Price.Decimal) {
				invalid = append(invalid, InvalidOrderItem{Index: idx, ProductID: productID, Reason: "conflicting prices for the same product"})
				continue
			}
			lines[pos].Quantity = addQuantity(lines[pos].Quantity, item.Quantity)
			continue
		}
		indexMap[productID] = len(lines)
		lines = append(lines, orderLine{ProductID: productID, Quantity: item.Quantity, Price: item.Price})
	}

	if len(invalid) > 0 {
		return nil, &InvalidItemsError{Items: invalid, RequiredFields: requiredOrderItemFields(requirePrice)}
	}
	return lines, nil
}

// loadOrderProducts 批量读取下单商品，按 ID 索引
func (s *OrderService) loadOrderProducts(ctx context.Context, productRepo repository.ProductRepository, lines []orderLine) (map[string]*models.Product, error) {
	ids := make([]string, 0, len(lines))
	for _, line := range lines {
		ids = append(ids, line.ProductID)
	}
	products, err := productRepo.ListByIDs(ctx, ids)
	if err != nil {
		return nil, err
	}
	byID := make(map[string]*models.Product, len(products))
	for i := range products {
		byID[products[i].ID] = &products[i]
	}
	return byID, nil
}

func requiredOrderItemFields(requirePrice bool) []string {
	if requirePrice {
		return append([]string(nil), orderItemRequiredFields...)
	}
	return []string{"product_id", "quantity"}
}

func (s *OrderService) publishOrderCreated(ctx context.Context, order *models.Order, requestID string) {
	productIDs := make([]string, 0, len(order.Items))
	for _, item := range order.Items {
		productIDs = append(productIDs, item.ProductID)
	}
	payload := queue.OrderCreatedPayload{
		OrderID:    order.ID,
		CustomerID: order.CustomerID,
		Total:      order.Total.String(),
		ItemCount:  len(order.Items),
		ProductIDs: productIDs,
		RequestID:  requestID,
	}
	if s.publisher == nil || !s.publisher.Enabled() {
		s.invalidateCatalog(ctx, order.ID)
		return
	}
	if err := s.publisher.PublishOrderCreated(ctx, payload); err != nil {
		logger.FromContext(ctx).Errorw("order_enqueue_created_failed", "order_id", order.ID, "error", err)
		s.invalidateCatalog(ctx, order.ID)
	}
}

func (s *OrderService) publishOrderDeleted(ctx context.Context, customerID, orderID string) {
	if s.publisher == nil || !s.publisher.Enabled() {
		s.invalidateCatalog(ctx, orderID)
		return
	}
	payload := queue.OrderDeletedPayload{
		OrderID:    orderID,
		CustomerID: customerID,
		RequestID:  logger.RequestIDFromContext(ctx),
	}
	if err := s.publisher.PublishOrderDeleted(ctx, payload); err != nil {
		logger.FromContext(ctx).Errorw("order_enqueue_deleted_failed", "order_id", orderID, "error", err)
		s.invalidateCatalog(ctx, orderID)
	}
}

// 队列不可用时就地失效商品缓存
func (s *OrderService) invalidateCatalog(ctx context.Context, orderID string) {
	if err := cache.InvalidateCatalog(ctx); err != nil {
		logger.FromContext(ctx).Warnw("catalog_cache_invalidate_failed", "order_id", orderID, "error", err)
	}
}
