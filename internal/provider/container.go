package provider

import (
	"context"
	"fmt"

	"github.com/coffee-bar/internal/cache"
	"github.com/coffee-bar/internal/cart"
	"github.com/coffee-bar/internal/config"
	"github.com/coffee-bar/internal/constants"
	"github.com/coffee-bar/internal/logger"
	"github.com/coffee-bar/internal/models"
	"github.com/coffee-bar/internal/queue"
	"github.com/coffee-bar/internal/repository"
	"github.com/coffee-bar/internal/service"
	"github.com/coffee-bar/internal/store"

	"gorm.io/gorm"
)

// Container 依赖注入容器
type Container struct {
	Config      *config.Config
	DB          *gorm.DB
	QueueClient *queue.Client
	CartStore   store.KV

	// Repositories
	CartSnapshotRepo repository.CartSnapshotRepository
	MenuRepo         repository.MenuRepository
	OrderRepo        repository.OrderRepository

	// Services
	MenuService     *service.MenuService
	CartService     *service.CartService
	OrderService    *service.OrderService
	CheckoutService *service.CheckoutService
}

// NewContainer 使用全局数据库初始化容器
func NewContainer(cfg *config.Config) (*Container, error) {
	if err := cache.InitRedis(&cfg.Redis); err != nil {
		logger.Warnw("provider_init_redis_failed", "error", err)
	}
	queueClient, err := queue.NewClient(&cfg.Queue)
	if err != nil {
		logger.Errorw("provider_init_queue_client_failed", "error", err)
		queueClient, _ = queue.NewClient(nil)
	}
	return Build(cfg, models.DB, queueClient)
}

// Build 组装仓库与服务
func Build(cfg *config.Config, db *gorm.DB, queueClient *queue.Client) (*Container, error) {
	if cfg == nil {
		return nil, fmt.Errorf("config is nil")
	}
	c := &Container{
		Config:      cfg,
		DB:          db,
		QueueClient: queueClient,
	}

	// 1. 初始化 Repositories
	c.initRepositories()

	// 2. 初始化购物车存储
	if err := c.initCartStore(); err != nil {
		return nil, err
	}

	// 3. 初始化 Services
	if err := c.initServices(); err != nil {
		return nil, err
	}
	return c, nil
}

func (c *Container) initRepositories() {
	if c.DB == nil {
		return
	}
	c.CartSnapshotRepo = repository.NewCartSnapshotRepository(c.DB)
	c.MenuRepo = repository.NewMenuRepository(c.DB)
	c.OrderRepo = repository.NewOrderRepository(c.DB)
}

func (c *Container) initCartStore() error {
	opts := store.Options{
		Driver:    c.Config.Cart.Storage,
		Snapshots: c.CartSnapshotRepo,
	}
	if cache.Enabled() {
		opts.Redis = store.CacheClient{Get: cache.GetString, Set: cache.SetString}
	}
	kv, err := store.New(opts)
	if err != nil {
		return fmt.Errorf("init cart store: %w", err)
	}
	c.CartStore = kv
	logger.Infow("provider_cart_store_ready", "driver", c.Config.Cart.Storage)
	return nil
}

func (c *Container) initServices() error {
	var menuRepo repository.MenuRepository
	if c.Config.Catalog.Source == constants.CatalogSourceDatabase {
		menuRepo = c.MenuRepo
	}
	menu, err := service.LoadCatalog(context.Background(), c.Config.Catalog.Source, c.Config.MenuEntries(), menuRepo)
	if err != nil {
		return fmt.Errorf("init catalog: %w", err)
	}

	c.MenuService = service.NewMenuService(menu)
	c.CartService = service.NewCartService(menu, c.CartStore, service.CartServiceOptions{
		KeyPrefix:       c.Config.Cart.KeyPrefix,
		MalformedPolicy: cart.ParseMalformedPolicy(c.Config.Cart.MalformedPolicy),
	})
	if c.OrderRepo != nil {
		c.OrderService = service.NewOrderService(c.OrderRepo)
	}
	c.CheckoutService = service.NewCheckoutService(c.CartService, c.OrderService, c.QueueClient)
	return nil
}

// Close 释放外部连接
func (c *Container) Close() {
	if err := c.QueueClient.Close(); err != nil {
		logger.Warnw("provider_close_queue_failed", "error", err)
	}
	if err := cache.Close(); err != nil {
		logger.Warnw("provider_close_redis_failed", "error", err)
	}
}
