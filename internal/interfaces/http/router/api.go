package router

import (
	"github.com/erpsuite/backend/internal/interfaces/http/handler"
	"github.com/gin-gonic/gin"
)

// Handlers bundles the HTTP handlers of every module
type Handlers struct {
	System        *handler.SystemHandler
	Auth          *handler.AuthHandler
	Company       *handler.CompanyHandler
	Catalog       *handler.CatalogHandler
	Product       *handler.ProductHandler
	Warehouse     *handler.WarehouseHandler
	Stock         *handler.StockHandler
	Supplier      *handler.SupplierHandler
	PurchaseOrder *handler.PurchaseOrderHandler
	GoodsReceipt  *handler.GoodsReceiptHandler
	Customer      *handler.CustomerHandler
	SalesOrder    *handler.SalesOrderHandler
	Invoice       *handler.InvoiceHandler
	HR            *handler.HRHandler
}

// Guards are the middleware chains protecting route groups
type Guards struct {
	// Authenticated runs before every route except the public auth ones
	Authenticated []gin.HandlerFunc
	// Public runs before register, login and token refresh
	Public []gin.HandlerFunc
}

// RegisterAPI registers every module under r
func RegisterAPI(r *Router, h Handlers, g Guards) {
	r.Register(NewDomainGroup("system", "").
		GET("/ping", h.System.Ping))

	auth := NewDomainGroup("auth", "/auth")
	auth.Group("auth-public", "").Use(g.Public...).
		POST("/register", h.Auth.Register).
		POST("/login", h.Auth.Login).
		POST("/token/refresh", h.Auth.RefreshToken)
	auth.Group("auth-session", "").Use(g.Authenticated...).
		GET("/profile", h.Auth.GetProfile).
		PATCH("/profile", h.Auth.UpdateProfile).
		PUT("/profile", h.Auth.UpdateProfile).
		POST("/change-password", h.Auth.ChangePassword).
		POST("/logout", h.Auth.Logout)
	r.Register(auth)

	core := NewDomainGroup("core", "/core").Use(g.Authenticated...)
	core.Group("companies", "/companies").
		GET("", h.Company.List).
		POST("", h.Company.Create).
		GET("/:id", h.Company.GetByID).
		PUT("/:id", h.Company.Update).
		PATCH("/:id", h.Company.Update)
	r.Register(core)

	inventory := NewDomainGroup("inventory", "/inventory").Use(g.Authenticated...)
	crud(inventory.Group("categories", "/categories"),
		h.Catalog.ListCategories, h.Catalog.CreateCategory, h.Catalog.GetCategory, h.Catalog.UpdateCategory)
	crud(inventory.Group("brands", "/brands"),
		h.Catalog.ListBrands, h.Catalog.CreateBrand, h.Catalog.GetBrand, h.Catalog.UpdateBrand)
	crud(inventory.Group("products", "/products"),
		h.Product.List, h.Product.Create, h.Product.GetByID, h.Product.Update)
	crud(inventory.Group("warehouses", "/warehouses"),
		h.Warehouse.List, h.Warehouse.Create, h.Warehouse.GetByID, h.Warehouse.Update).
		GET("/:id/locations", h.Warehouse.ListLocations).
		POST("/:id/locations", h.Warehouse.CreateLocation).
		GET("/:id/locations/:location_id", h.Warehouse.GetLocation).
		PUT("/:id/locations/:location_id", h.Warehouse.UpdateLocation).
		PATCH("/:id/locations/:location_id", h.Warehouse.UpdateLocation)
	crud(inventory.Group("stocks", "/stocks"),
		h.Stock.ListStocks, h.Stock.CreateStock, h.Stock.GetStock, h.Stock.UpdateStock)
	inventory.Group("transactions", "/transactions").
		GET("", h.Stock.ListTransactions).
		POST("", h.Stock.CreateTransaction).
		GET("/:id", h.Stock.GetTransaction)
	r.Register(inventory)

	purchasing := NewDomainGroup("purchasing", "/purchasing").Use(g.Authenticated...)
	crud(purchasing.Group("supplier-categories", "/supplier-categories"),
		h.Supplier.ListCategories, h.Supplier.CreateCategory, h.Supplier.GetCategory, h.Supplier.UpdateCategory)
	crud(purchasing.Group("suppliers", "/suppliers"),
		h.Supplier.List, h.Supplier.Create, h.Supplier.GetByID, h.Supplier.Update)
	crud(purchasing.Group("orders", "/orders"),
		h.PurchaseOrder.List, h.PurchaseOrder.Create, h.PurchaseOrder.GetByID, h.PurchaseOrder.Update).
		POST("/:id/status", h.PurchaseOrder.SetStatus).
		PATCH("/:id/status", h.PurchaseOrder.SetStatus)
	purchasing.Group("receipts", "/receipts").
		GET("", h.GoodsReceipt.List).
		POST("", h.GoodsReceipt.Create).
		GET("/:id", h.GoodsReceipt.GetByID).
		POST("/:id/complete", h.GoodsReceipt.Complete)
	r.Register(purchasing)

	sales := NewDomainGroup("sales", "/sales").Use(g.Authenticated...)
	crud(sales.Group("customer-groups", "/customer-groups"),
		h.Customer.ListGroups, h.Customer.CreateGroup, h.Customer.GetGroup, h.Customer.UpdateGroup)
	crud(sales.Group("customers", "/customers"),
		h.Customer.List, h.Customer.Create, h.Customer.GetByID, h.Customer.Update)
	crud(sales.Group("orders", "/orders"),
		h.SalesOrder.List, h.SalesOrder.Create, h.SalesOrder.GetByID, h.SalesOrder.Update).
		POST("/:id/status", h.SalesOrder.SetStatus).
		PATCH("/:id/status", h.SalesOrder.SetStatus)
	r.Register(sales)

	finance := NewDomainGroup("finance", "/finance").Use(g.Authenticated...)
	finance.Group("invoices", "/invoices").
		GET("", h.Invoice.List).
		POST("", h.Invoice.CreateFromSalesOrder).
		GET("/:id", h.Invoice.GetByID).
		POST("/:id/status", h.Invoice.SetStatus).
		PATCH("/:id/status", h.Invoice.SetStatus)
	r.Register(finance)

	hr := NewDomainGroup("hr", "/hr").Use(g.Authenticated...)
	crud(hr.Group("departments", "/departments"),
		h.HR.ListDepartments, h.HR.CreateDepartment, h.HR.GetDepartment, h.HR.UpdateDepartment)
	crud(hr.Group("employees", "/employees"),
		h.HR.ListEmployees, h.HR.CreateEmployee, h.HR.GetEmployee, h.HR.UpdateEmployee)
	r.Register(hr)
}

// crud registers the list/create/get/update quartet shared by most resources
func crud(g *DomainGroup, list, create, get, update gin.HandlerFunc) *DomainGroup {
	return g.
		GET("", list).
		POST("", create).
		GET("/:id", get).
		PUT("/:id", update).
		PATCH("/:id", update)
}
