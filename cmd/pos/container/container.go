package container

import (
	"context"
	"fmt"

	"github.com/redis/go-redis/v9"
	"github.com/storeline/pos/cmd/pos/repository"
	"github.com/storeline/pos/cmd/pos/service"
	"github.com/storeline/pos/common/bootstrap"
	"github.com/storeline/pos/common/clients"
	"github.com/storeline/pos/common/ratelimit"
	rediscommon "github.com/storeline/pos/common/redis"
)

// Container holds all initialized services and repositories (singleton pattern)
type Container struct {
	// Components
	Components  *bootstrap.Components
	Redis       *rediscommon.Client
	RateLimiter *ratelimit.RateLimiter

	// Repositories
	ProductRepo   *repository.ProductRepository
	InventoryRepo *repository.InventoryRepository
	CustomerRepo  *repository.CustomerRepository
	SupplierRepo  *repository.SupplierRepository
	SaleRepo      *repository.SaleRepository
	ExpenseRepo   *repository.ExpenseRepository
	PromotionRepo *repository.PromotionRepository
	UserRepo      *repository.UserRepository
	AuditRepo     *repository.AuditRepository

	// Services
	AuditService     *service.AuditService
	CatalogService   *service.CatalogService
	CartService      *service.CartService
	PromotionService *service.PromotionService
	CheckoutService  *service.CheckoutService
	InventoryService *service.InventoryService
	CustomerService  *service.CustomerService
	SupplierService  *service.SupplierService
	ExpenseService   *service.ExpenseService
	UserService      *service.UserService
	InsightService   *service.InsightService
}

// NewContainer initializes all services and repositories once
func NewContainer(ctx context.Context, components *bootstrap.Components) (*Container, error) {
	cfg := components.Config

	// Redis backs carts and rate limiting
	redisRaw := redis.NewClient(&redis.Options{
		Addr:     cfg.RedisAddr(),
		Password: cfg.Redis.Password,
		DB:       cfg.Redis.DB,
	})
	redisClient := rediscommon.NewClient(redisRaw, components.Logger)
	if err := redisClient.Ping(ctx); err != nil {
		return nil, fmt.Errorf("failed to connect to redis: %w", err)
	}

	rateLimiter := ratelimit.NewRateLimiter(redisRaw, components.Logger)

	// Repositories
	productRepo := repository.NewProductRepository(components.DB)
	inventoryRepo := repository.NewInventoryRepository(components.DB)
	customerRepo := repository.NewCustomerRepository(components.DB)
	supplierRepo := repository.NewSupplierRepository(components.DB)
	saleRepo := repository.NewSaleRepository(components.DB)
	expenseRepo := repository.NewExpenseRepository(components.DB)
	promotionRepo := repository.NewPromotionRepository(components.DB)
	userRepo := repository.NewUserRepository(components.DB)
	auditRepo := repository.NewAuditRepository(components.DB)

	// Services (bottom-up: dependencies first)
	auditService := service.NewAuditService(components.Queue, auditRepo, components.Logger)
	if err := auditService.StartRecorder(ctx); err != nil {
		return nil, fmt.Errorf("failed to start audit recorder: %w", err)
	}

	catalogService := service.NewCatalogService(
		productRepo,
		components.Cache,
		cfg.Cache.DefaultTTL,
		auditService,
		components.Logger,
	)
	cartService := service.NewCartService(redisClient, cfg.Redis.CartTTL, components.Logger)
	promotionService, err := service.NewPromotionService(promotionRepo, auditService, components.Logger)
	if err != nil {
		return nil, fmt.Errorf("failed to create promotion service: %w", err)
	}
	checkoutService := service.NewCheckoutService(
		cartService,
		catalogService,
		promotionService,
		saleRepo,
		auditService,
		components.Logger,
	)
	inventoryService := service.NewInventoryService(inventoryRepo, auditService, components.Logger)
	customerService := service.NewCustomerService(customerRepo, auditService, components.Logger)
	supplierService := service.NewSupplierService(supplierRepo, auditService, components.Logger)
	expenseService := service.NewExpenseService(expenseRepo, auditService, components.Logger)
	userService := service.NewUserService(userRepo, auditService, components.Logger)

	var advisor *clients.AdvisorClient
	if cfg.Insights.Enabled {
		advisor = clients.NewAdvisorClient(cfg.Insights.EndpointURL, cfg.Insights.Timeout, components.Logger)
	}
	insightService := service.NewInsightService(
		inventoryRepo,
		saleRepo,
		expenseRepo,
		advisor,
		components.Cache,
		cfg.Insights.ReportTTL,
		components.Logger,
	)

	return &Container{
		Components:       components,
		Redis:            redisClient,
		RateLimiter:      rateLimiter,
		ProductRepo:      productRepo,
		InventoryRepo:    inventoryRepo,
		CustomerRepo:     customerRepo,
		SupplierRepo:     supplierRepo,
		SaleRepo:         saleRepo,
		ExpenseRepo:      expenseRepo,
		PromotionRepo:    promotionRepo,
		UserRepo:         userRepo,
		AuditRepo:        auditRepo,
		AuditService:     auditService,
		CatalogService:   catalogService,
		CartService:      cartService,
		PromotionService: promotionService,
		CheckoutService:  checkoutService,
		InventoryService: inventoryService,
		CustomerService:  customerService,
		SupplierService:  supplierService,
		ExpenseService:   expenseService,
		UserService:      userService,
		InsightService:   insightService,
	}, nil
}
