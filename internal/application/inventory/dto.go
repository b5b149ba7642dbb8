package inventory

import (
	"time"

	"github.com/erpsuite/backend/internal/application/common"
	"github.com/erpsuite/backend/internal/domain/inventory"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// =============================================================================
// Category and brand DTOs
// =============================================================================

// CreateCategoryRequest is the payload for creating a category
type CreateCategoryRequest struct {
	Code        string     `json:"code" binding:"required,min=1,max=50"`
	Name        string     `json:"name" binding:"required,min=1,max=200"`
	Description string     `json:"description" binding:"max=1000"`
	ParentID    *uuid.UUID `json:"parent_id"`
}

// UpdateCategoryRequest changes a category; a nil uuid parent_id makes it a root
type UpdateCategoryRequest struct {
	Name        *string    `json:"name" binding:"omitempty,min=1,max=200"`
	Description *string    `json:"description" binding:"omitempty,max=1000"`
	ParentID    *uuid.UUID `json:"parent_id"`
	IsActive    *bool      `json:"is_active"`
}

// CategoryResponse is the API representation of a category
type CategoryResponse struct {
	ID          uuid.UUID  `json:"id"`
	Code        string     `json:"code"`
	Name        string     `json:"name"`
	Description string     `json:"description"`
	ParentID    *uuid.UUID `json:"parent_id,omitempty"`
	IsActive    bool       `json:"is_active"`
	CreatedAt   time.Time  `json:"created_at"`
	UpdatedAt   time.Time  `json:"updated_at"`
}

// CreateBrandRequest is the payload for creating a brand
type CreateBrandRequest struct {
	Code        string `json:"code" binding:"required,min=1,max=50"`
	Name        string `json:"name" binding:"required,min=1,max=200"`
	Description string `json:"description" binding:"max=1000"`
}

// UpdateBrandRequest changes a brand
type UpdateBrandRequest struct {
	Name        *string `json:"name" binding:"omitempty,min=1,max=200"`
	Description *string `json:"description" binding:"omitempty,max=1000"`
	IsActive    *bool   `json:"is_active"`
}

// BrandResponse is the API representation of a brand
type BrandResponse struct {
	ID          uuid.UUID `json:"id"`
	Code        string    `json:"code"`
	Name        string    `json:"name"`
	Description string    `json:"description"`
	IsActive    bool      `json:"is_active"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// CatalogListFilter lists categories or brands
type CatalogListFilter struct {
	common.PageQuery
	IsActive *bool      `form:"is_active"`
	ParentID *uuid.UUID `form:"-" query:"parent_id"`
}

// =============================================================================
// Product DTOs
// =============================================================================

// CreateProductRequest is the payload for creating a product
type CreateProductRequest struct {
	SKU         string           `json:"sku" binding:"required,min=1,max=50"`
	Name        string           `json:"name" binding:"required,min=1,max=200"`
	Description string           `json:"description" binding:"max=2000"`
	CategoryID  *uuid.UUID       `json:"category_id"`
	BrandID     *uuid.UUID       `json:"brand_id"`
	Unit        string           `json:"unit" binding:"max=20"`
	Barcode     string           `json:"barcode" binding:"max=50"`
	SalePrice   decimal.Decimal  `json:"sale_price"`
	CostPrice   decimal.Decimal  `json:"cost_price"`
	MinStock    *decimal.Decimal `json:"min_stock"`
}

// UpdateProductRequest changes a product. A nil uuid clears category or brand.
type UpdateProductRequest struct {
	Name        *string          `json:"name" binding:"omitempty,min=1,max=200"`
	Description *string          `json:"description" binding:"omitempty,max=2000"`
	CategoryID  *uuid.UUID       `json:"category_id"`
	BrandID     *uuid.UUID       `json:"brand_id"`
	Unit        *string          `json:"unit" binding:"omitempty,max=20"`
	Barcode     *string          `json:"barcode" binding:"omitempty,max=50"`
	SalePrice   *decimal.Decimal `json:"sale_price"`
	CostPrice   *decimal.Decimal `json:"cost_price"`
	MinStock    *decimal.Decimal `json:"min_stock"`
	IsActive    *bool            `json:"is_active"`
}

// ProductListFilter lists products
type ProductListFilter struct {
	common.PageQuery
	CategoryID *uuid.UUID `form:"-" query:"category_id"`
	BrandID    *uuid.UUID `form:"-" query:"brand_id"`
	IsActive   *bool      `form:"is_active"`
}

// ProductResponse is the API representation of a product. ProfitMargin is
// absent when the cost price is zero.
type ProductResponse struct {
	ID           uuid.UUID        `json:"id"`
	SKU          string           `json:"sku"`
	Name         string           `json:"name"`
	Description  string           `json:"description"`
	CategoryID   *uuid.UUID       `json:"category_id,omitempty"`
	BrandID      *uuid.UUID       `json:"brand_id,omitempty"`
	Unit         string           `json:"unit"`
	Barcode      string           `json:"barcode"`
	SalePrice    decimal.Decimal  `json:"sale_price"`
	CostPrice    decimal.Decimal  `json:"cost_price"`
	MinStock     decimal.Decimal  `json:"min_stock"`
	ProfitMargin *decimal.Decimal `json:"profit_margin,omitempty"`
	IsActive     bool             `json:"is_active"`
	CreatedAt    time.Time        `json:"created_at"`
	UpdatedAt    time.Time        `json:"updated_at"`
}

// =============================================================================
// Warehouse DTOs
// =============================================================================

// CreateWarehouseRequest is the payload for creating a warehouse
type CreateWarehouseRequest struct {
	Code    string `json:"code" binding:"required,min=1,max=50"`
	Name    string `json:"name" binding:"required,min=1,max=200"`
	Address string `json:"address" binding:"max=500"`
}

// UpdateWarehouseRequest changes a warehouse
type UpdateWarehouseRequest struct {
	Name     *string `json:"name" binding:"omitempty,min=1,max=200"`
	Address  *string `json:"address" binding:"omitempty,max=500"`
	IsActive *bool   `json:"is_active"`
}

// WarehouseListFilter lists warehouses or the locations of one warehouse
type WarehouseListFilter struct {
	common.PageQuery
	IsActive *bool `form:"is_active"`
}

// WarehouseResponse is the API representation of a warehouse
type WarehouseResponse struct {
	ID        uuid.UUID `json:"id"`
	Code      string    `json:"code"`
	Name      string    `json:"name"`
	Address   string    `json:"address"`
	IsActive  bool      `json:"is_active"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// CreateLocationRequest is the payload for adding a location to a warehouse
type CreateLocationRequest struct {
	Code string `json:"code" binding:"required,min=1,max=50"`
	Name string `json:"name" binding:"required,min=1,max=200"`
}

// UpdateLocationRequest changes a location
type UpdateLocationRequest struct {
	Name     *string `json:"name" binding:"omitempty,min=1,max=200"`
	IsActive *bool   `json:"is_active"`
}

// LocationResponse is the API representation of a warehouse location
type LocationResponse struct {
	ID          uuid.UUID `json:"id"`
	WarehouseID uuid.UUID `json:"warehouse_id"`
	Code        string    `json:"code"`
	Name        string    `json:"name"`
	IsActive    bool      `json:"is_active"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// =============================================================================
// Stock and transaction DTOs
// =============================================================================

// CreateStockRequest opens a stock row, typically for an opening balance
type CreateStockRequest struct {
	ProductID        uuid.UUID        `json:"product_id" binding:"required"`
	WarehouseID      uuid.UUID        `json:"warehouse_id" binding:"required"`
	LocationID       *uuid.UUID       `json:"location_id"`
	Quantity         decimal.Decimal  `json:"quantity"`
	ReservedQuantity *decimal.Decimal `json:"reserved_quantity"`
}

// UpdateStockRequest overwrites the quantities of a stock row
type UpdateStockRequest struct {
	Quantity         *decimal.Decimal `json:"quantity"`
	ReservedQuantity *decimal.Decimal `json:"reserved_quantity"`
}

// StockListFilter lists stock rows
type StockListFilter struct {
	common.PageQuery
	ProductID   *uuid.UUID `form:"-" query:"product_id"`
	WarehouseID *uuid.UUID `form:"-" query:"warehouse_id"`
	LocationID  *uuid.UUID `form:"-" query:"location_id"`
	LowStock    *bool      `form:"low_stock"`
}

// StockResponse is the API representation of a stock row with its derived
// quantities
type StockResponse struct {
	ID                uuid.UUID       `json:"id"`
	ProductID         uuid.UUID       `json:"product_id"`
	ProductSKU        string          `json:"product_sku"`
	ProductName       string          `json:"product_name"`
	WarehouseID       uuid.UUID       `json:"warehouse_id"`
	LocationID        *uuid.UUID      `json:"location_id,omitempty"`
	Quantity          decimal.Decimal `json:"quantity"`
	ReservedQuantity  decimal.Decimal `json:"reserved_quantity"`
	AvailableQuantity decimal.Decimal `json:"available_quantity"`
	MinStock          decimal.Decimal `json:"min_stock"`
	IsLowStock        bool            `json:"is_low_stock"`
	CreatedAt         time.Time       `json:"created_at"`
	UpdatedAt         time.Time       `json:"updated_at"`
}

// CreateTransactionRequest records a stock movement
type CreateTransactionRequest struct {
	ProductID   uuid.UUID       `json:"product_id" binding:"required"`
	WarehouseID uuid.UUID       `json:"warehouse_id" binding:"required"`
	LocationID  *uuid.UUID      `json:"location_id"`
	Type        string          `json:"type" binding:"required,oneof=IN OUT in out"`
	Quantity    decimal.Decimal `json:"quantity"`
	Reference   string          `json:"reference" binding:"max=100"`
	Notes       string          `json:"notes" binding:"max=1000"`
}

// TransactionListFilter lists stock movements
type TransactionListFilter struct {
	common.PageQuery
	ProductID   *uuid.UUID `form:"-" query:"product_id"`
	WarehouseID *uuid.UUID `form:"-" query:"warehouse_id"`
	Type        string     `form:"type" binding:"omitempty,oneof=IN OUT in out"`
	Reference   string     `form:"reference"`
}

// TransactionResponse is the API representation of a stock movement
type TransactionResponse struct {
	ID          uuid.UUID       `json:"id"`
	ProductID   uuid.UUID       `json:"product_id"`
	WarehouseID uuid.UUID       `json:"warehouse_id"`
	LocationID  *uuid.UUID      `json:"location_id,omitempty"`
	Type        string          `json:"type"`
	Quantity    decimal.Decimal `json:"quantity"`
	Reference   string          `json:"reference"`
	Notes       string          `json:"notes"`
	CreatedBy   *uuid.UUID      `json:"created_by,omitempty"`
	CreatedAt   time.Time       `json:"created_at"`
}

// =============================================================================
// Mappers
// =============================================================================

// ToCategoryResponse maps a domain category
func ToCategoryResponse(c *inventory.Category) CategoryResponse {
	return CategoryResponse{
		ID:          c.ID,
		Code:        c.Code,
		Name:        c.Name,
		Description: c.Description,
		ParentID:    c.ParentID,
		IsActive:    c.IsActive,
		CreatedAt:   c.CreatedAt,
		UpdatedAt:   c.UpdatedAt,
	}
}

// ToBrandResponse maps a domain brand
func ToBrandResponse(b *inventory.Brand) BrandResponse {
	return BrandResponse{
		ID:          b.ID,
		Code:        b.Code,
		Name:        b.Name,
		Description: b.Description,
		IsActive:    b.IsActive,
		CreatedAt:   b.CreatedAt,
		UpdatedAt:   b.UpdatedAt,
	}
}

// ToProductResponse maps a domain product
func ToProductResponse(p *inventory.Product) ProductResponse {
	resp := ProductResponse{
		ID:          p.ID,
		SKU:         p.SKU,
		Name:        p.Name,
		Description: p.Description,
		CategoryID:  p.CategoryID,
		BrandID:     p.BrandID,
		Unit:        p.Unit,
		Barcode:     p.Barcode,
		SalePrice:   p.SalePrice,
		CostPrice:   p.CostPrice,
		MinStock:    p.MinStock,
		IsActive:    p.IsActive,
		CreatedAt:   p.CreatedAt,
		UpdatedAt:   p.UpdatedAt,
	}
	if margin, ok := p.ProfitMargin(); ok {
		resp.ProfitMargin = &margin
	}
	return resp
}

// ToWarehouseResponse maps a domain warehouse
func ToWarehouseResponse(w *inventory.Warehouse) WarehouseResponse {
	return WarehouseResponse{
		ID:        w.ID,
		Code:      w.Code,
		Name:      w.Name,
		Address:   w.Address,
		IsActive:  w.IsActive,
		CreatedAt: w.CreatedAt,
		UpdatedAt: w.UpdatedAt,
	}
}

// ToLocationResponse maps a domain warehouse location
func ToLocationResponse(l *inventory.WarehouseLocation) LocationResponse {
	return LocationResponse{
		ID:          l.ID,
		WarehouseID: l.WarehouseID,
		Code:        l.Code,
		Name:        l.Name,
		IsActive:    l.IsActive,
		CreatedAt:   l.CreatedAt,
		UpdatedAt:   l.UpdatedAt,
	}
}

// ToStockResponse maps a stock row; product supplies SKU, name and the
// low-stock threshold and may be nil
func ToStockResponse(s *inventory.Stock, product *inventory.Product) StockResponse {
	resp := StockResponse{
		ID:                s.ID,
		ProductID:         s.ProductID,
		WarehouseID:       s.WarehouseID,
		LocationID:        s.LocationID,
		Quantity:          s.Quantity,
		ReservedQuantity:  s.ReservedQuantity,
		AvailableQuantity: s.AvailableQuantity(),
		MinStock:          decimal.Zero,
		CreatedAt:         s.CreatedAt,
		UpdatedAt:         s.UpdatedAt,
	}
	if product != nil {
		resp.ProductSKU = product.SKU
		resp.ProductName = product.Name
		resp.MinStock = product.MinStock
	}
	resp.IsLowStock = s.IsLowStock(resp.MinStock)
	return resp
}

// ToTransactionResponse maps a stock movement
func ToTransactionResponse(t *inventory.InventoryTransaction) TransactionResponse {
	return TransactionResponse{
		ID:          t.ID,
		ProductID:   t.ProductID,
		WarehouseID: t.WarehouseID,
		LocationID:  t.LocationID,
		Type:        string(t.Type),
		Quantity:    t.Quantity,
		Reference:   t.Reference,
		Notes:       t.Notes,
		CreatedBy:   t.CreatedBy,
		CreatedAt:   t.CreatedAt,
	}
}
