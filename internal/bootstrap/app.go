// Package bootstrap wires repositories, services, event handlers and HTTP
// handlers into a ready-to-serve gin engine.
package bootstrap

import (
	"errors"

	companyapp "github.com/erpsuite/backend/internal/application/company"
	financeapp "github.com/erpsuite/backend/internal/application/finance"
	hrapp "github.com/erpsuite/backend/internal/application/hr"
	identityapp "github.com/erpsuite/backend/internal/application/identity"
	inventoryapp "github.com/erpsuite/backend/internal/application/inventory"
	purchasingapp "github.com/erpsuite/backend/internal/application/purchasing"
	salesapp "github.com/erpsuite/backend/internal/application/sales"
	"github.com/erpsuite/backend/internal/infrastructure/auth"
	"github.com/erpsuite/backend/internal/infrastructure/config"
	"github.com/erpsuite/backend/internal/infrastructure/event"
	"github.com/erpsuite/backend/internal/infrastructure/persistence"
	"github.com/erpsuite/backend/internal/infrastructure/telemetry"
	"github.com/erpsuite/backend/internal/interfaces/http/handler"
	"github.com/erpsuite/backend/internal/interfaces/http/middleware"
	"github.com/erpsuite/backend/internal/interfaces/http/router"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// Version is reported by the health endpoint; overridden at link time
var Version = "dev"

// Options are the external resources the application is built from
type Options struct {
	Config    *config.Config
	DB        *gorm.DB
	Blacklist auth.TokenBlacklist
	// Registry receives HTTP and domain event metrics; nil disables both
	Registry *prometheus.Registry
	// AuthLimiter throttles the public auth routes; nil disables it
	AuthLimiter *middleware.RateLimiter
	Logger      *zap.Logger
}

// App is the assembled application
type App struct {
	Engine    *gin.Engine
	Companies *companyapp.Service
	Auth      *identityapp.AuthService
	Events    *event.InMemoryEventBus
}

// New builds the application graph
func New(opts Options) (*App, error) {
	if opts.Config == nil || opts.DB == nil {
		return nil, errors.New("bootstrap: config and database are required")
	}
	cfg := opts.Config
	db := opts.DB
	log := opts.Logger
	if log == nil {
		log = zap.NewNop()
	}
	blacklist := opts.Blacklist
	if blacklist == nil {
		blacklist = auth.NewInMemoryTokenBlacklist()
	}

	// repositories
	companyRepo := persistence.NewGormCompanyRepository(db)
	userRepo := persistence.NewGormUserRepository(db)
	categoryRepo := persistence.NewGormCategoryRepository(db)
	brandRepo := persistence.NewGormBrandRepository(db)
	productRepo := persistence.NewGormProductRepository(db)
	warehouseRepo := persistence.NewGormWarehouseRepository(db)
	locationRepo := persistence.NewGormLocationRepository(db)
	stockRepo := persistence.NewGormStockRepository(db)
	transactionRepo := persistence.NewGormInventoryTransactionRepository(db)
	supplierCategoryRepo := persistence.NewGormSupplierCategoryRepository(db)
	supplierRepo := persistence.NewGormSupplierRepository(db)
	purchaseOrderRepo := persistence.NewGormPurchaseOrderRepository(db)
	receiptRepo := persistence.NewGormGoodsReceiptRepository(db)
	customerGroupRepo := persistence.NewGormCustomerGroupRepository(db)
	customerRepo := persistence.NewGormCustomerRepository(db)
	salesOrderRepo := persistence.NewGormSalesOrderRepository(db)
	invoiceRepo := persistence.NewGormInvoiceRepository(db)
	departmentRepo := persistence.NewGormDepartmentRepository(db)
	employeeRepo := persistence.NewGormEmployeeRepository(db)

	// domain events
	bus := event.NewInMemoryEventBus(log)
	bus.Subscribe(inventoryapp.NewStockBelowThresholdHandler(log))
	bus.Subscribe(purchasingapp.NewGoodsReceiptCompletedHandler(log))
	if opts.Registry != nil {
		bus.Subscribe(telemetry.NewDomainEventMetrics(opts.Registry))
	}

	// services
	companyService := companyapp.NewService(companyRepo, cfg.Company, log)
	authService := identityapp.NewAuthService(
		userRepo,
		companyService,
		auth.NewJWTService(cfg.JWT),
		blacklist,
		identityapp.AuthServiceConfigFrom(cfg.Auth),
		log,
	)
	catalogService := inventoryapp.NewCatalogService(categoryRepo, brandRepo)
	productService := inventoryapp.NewProductService(productRepo, categoryRepo, brandRepo)
	warehouseService := inventoryapp.NewWarehouseService(warehouseRepo, locationRepo)
	stockService := inventoryapp.NewStockService(inventoryapp.StockServiceDeps{
		Products:     productRepo,
		Warehouses:   warehouseRepo,
		Locations:    locationRepo,
		Stocks:       stockRepo,
		Transactions: transactionRepo,
		Scope:        persistence.NewGormInventoryScope(db),
		Events:       bus,
		Logger:       log,
	})
	supplierService := purchasingapp.NewSupplierService(supplierCategoryRepo, supplierRepo)
	purchaseOrderService := purchasingapp.NewPurchaseOrderService(purchaseOrderRepo, supplierRepo, productRepo, warehouseRepo)
	receiptService := purchasingapp.NewGoodsReceiptService(
		receiptRepo,
		purchaseOrderRepo,
		warehouseRepo,
		persistence.NewGormPurchasingScope(db),
		bus,
		log,
	)
	customerService := salesapp.NewCustomerService(customerGroupRepo, customerRepo)
	salesOrderService := salesapp.NewSalesOrderService(salesOrderRepo, customerRepo, customerGroupRepo, productRepo, warehouseRepo)
	invoiceService := financeapp.NewInvoiceService(financeapp.InvoiceServiceDeps{
		Invoices:  invoiceRepo,
		Orders:    salesOrderRepo,
		Customers: customerRepo,
		Groups:    customerGroupRepo,
		Companies: companyRepo,
		Config:    cfg.Documents,
		Logger:    log,
	})
	hrService := hrapp.NewService(departmentRepo, employeeRepo, userRepo)

	// HTTP
	var health handler.HealthChecker
	if sqlDB, err := db.DB(); err == nil {
		health = sqlDB
	}
	handlers := router.Handlers{
		System:        handler.NewSystemHandler(cfg.App.Name, Version, health),
		Auth:          handler.NewAuthHandler(authService),
		Company:       handler.NewCompanyHandler(companyService),
		Catalog:       handler.NewCatalogHandler(catalogService),
		Product:       handler.NewProductHandler(productService),
		Warehouse:     handler.NewWarehouseHandler(warehouseService),
		Stock:         handler.NewStockHandler(stockService),
		Supplier:      handler.NewSupplierHandler(supplierService),
		PurchaseOrder: handler.NewPurchaseOrderHandler(purchaseOrderService),
		GoodsReceipt:  handler.NewGoodsReceiptHandler(receiptService),
		Customer:      handler.NewCustomerHandler(customerService),
		SalesOrder:    handler.NewSalesOrderHandler(salesOrderService),
		Invoice:       handler.NewInvoiceHandler(invoiceService),
		HR:            handler.NewHRHandler(hrService),
	}
	guards := router.Guards{
		Authenticated: []gin.HandlerFunc{
			middleware.JWTAuth(authService, log),
			middleware.SpanAttributes(),
		},
	}
	if opts.AuthLimiter != nil {
		guards.Public = append(guards.Public, middleware.RateLimit(opts.AuthLimiter))
	}

	engine, err := router.NewEngine(cfg, handlers, guards, opts.Registry, log)
	if err != nil {
		return nil, err
	}

	return &App{
		Engine:    engine,
		Companies: companyService,
		Auth:      authService,
		Events:    bus,
	}, nil
}
