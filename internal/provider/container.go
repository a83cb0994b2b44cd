package provider

import (
	"time"

	"github.com/shanture-next/internal/cache"
	"github.com/shanture-next/internal/config"
	"github.com/shanture-next/internal/logger"
	"github.com/shanture-next/internal/queue"
	"github.com/shanture-next/internal/repository"
	"github.com/shanture-next/internal/service"

	"gorm.io/gorm"
)

// Container 依赖注入容器
type Container struct {
	Config      *config.Config
	DB          *gorm.DB
	QueueClient *queue.Client

	// Repositories
	CustomerRepo repository.CustomerRepository
	ProductRepo  repository.ProductRepository
	CartRepo     repository.CartRepository
	OrderRepo    repository.OrderRepository

	// Services
	CustomerService *service.CustomerService
	ProductService  *service.ProductService
	CartService     *service.CartService
	OrderService    *service.OrderService
}

// NewContainer 初始化容器
func NewContainer(cfg *config.Config, db *gorm.DB) *Container {
	// 初始化缓存
	if err := cache.InitRedis(&cfg.Redis); err != nil {
		logger.Warnw("provider_init_redis_failed", "error", err)
	}

	// 初始化队列客户端
	var queueClient *queue.Client
	if cfg.Queue.Enabled {
		qc, err := queue.NewClient(&cfg.Queue)
		if err != nil {
			logger.Errorw("provider_init_queue_client_failed", "error", err)
		} else {
			queueClient = qc
		}
	}

	c := &Container{
		Config:      cfg,
		DB:          db,
		QueueClient: queueClient,
	}

	// 1. 初始化 Repositories
	c.initRepositories()

	// 2. 初始化 Services
	c.initServices()

	return c
}

func (c *Container) initRepositories() {
	c.CustomerRepo = repository.NewCustomerRepository(c.DB)
	c.ProductRepo = repository.NewProductRepository(c.DB)
	c.CartRepo = repository.NewCartRepository(c.DB)
	c.OrderRepo = repository.NewOrderRepository(c.DB)
}

func (c *Container) initServices() {
	var publisher service.OrderEventPublisher
	if c.QueueClient != nil {
		publisher = c.QueueClient
	}
	cacheTTL := time.Duration(c.Config.Catalog.CacheTTLSeconds) * time.Second

	c.CustomerService = service.NewCustomerService(c.DB, c.Config, c.CustomerRepo)
	c.ProductService = service.NewProductService(c.ProductRepo, cacheTTL)
	c.CartService = service.NewCartService(c.DB, c.CartRepo, c.ProductRepo)
	c.OrderService = service.NewOrderService(c.DB, c.OrderRepo, c.ProductRepo, c.CartRepo, publisher, c.Config.Order.PriceSource)
}

// Close 释放容器持有的外部连接
func (c *Container) Close() {
	if c.QueueClient != nil {
		if err := c.QueueClient.Close(); err != nil {
			logger.Warnw("provider_close_queue_client_failed", "error", err)
		}
	}
	if err := cache.Close(); err != nil {
		logger.Warnw("provider_close_redis_failed", "error", err)
	}
}
