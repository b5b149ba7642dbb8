package models

import (
	"github.com/erpsuite/backend/internal/domain/inventory"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// CategoryModel is the persistence model for product categories
type CategoryModel struct {
	TenantAggregateModel
	Code        string     `gorm:"type:varchar(50);not null;index"`
	Name        string     `gorm:"type:varchar(200);not null"`
	Description string     `gorm:"type:text"`
	ParentID    *uuid.UUID `gorm:"type:uuid;index"`
	IsActive    bool       `gorm:"not null;default:true"`
}

// TableName returns the table name for GORM
func (CategoryModel) TableName() string {
	return "categories"
}

// ToDomain converts the persistence model to a domain Category
func (m *CategoryModel) ToDomain() *inventory.Category {
	return &inventory.Category{
		TenantAggregateRoot: m.ToTenantAggregateRoot(),
		Code:                m.Code,
		Name:                m.Name,
		Description:         m.Description,
		ParentID:            m.ParentID,
		IsActive:            m.IsActive,
	}
}

// CategoryModelFromDomain creates a persistence model from a domain Category
func CategoryModelFromDomain(c *inventory.Category) *CategoryModel {
	m := &CategoryModel{
		Code:        c.Code,
		Name:        c.Name,
		Description: c.Description,
		ParentID:    c.ParentID,
		IsActive:    c.IsActive,
	}
	m.FromDomainTenantAggregateRoot(c.TenantAggregateRoot)
	return m
}

// BrandModel is the persistence model for product brands
type BrandModel struct {
	TenantAggregateModel
	Code        string `gorm:"type:varchar(50);not null;index"`
	Name        string `gorm:"type:varchar(200);not null"`
	Description string `gorm:"type:text"`
	IsActive    bool   `gorm:"not null;default:true"`
}

// TableName returns the table name for GORM
func (BrandModel) TableName() string {
	return "brands"
}

// ToDomain converts the persistence model to a domain Brand
func (m *BrandModel) ToDomain() *inventory.Brand {
	return &inventory.Brand{
		TenantAggregateRoot: m.ToTenantAggregateRoot(),
		Code:                m.Code,
		Name:                m.Name,
		Description:         m.Description,
		IsActive:            m.IsActive,
	}
}

// BrandModelFromDomain creates a persistence model from a domain Brand
func BrandModelFromDomain(b *inventory.Brand) *BrandModel {
	m := &BrandModel{
		Code:        b.Code,
		Name:        b.Name,
		Description: b.Description,
		IsActive:    b.IsActive,
	}
	m.FromDomainTenantAggregateRoot(b.TenantAggregateRoot)
	return m
}

// ProductModel is the persistence model for the Product aggregate
type ProductModel struct {
	TenantAggregateModel
	SKU         string          `gorm:"column:sku;type:varchar(50);not null;index"`
	Name        string          `gorm:"type:varchar(200);not null"`
	Description string          `gorm:"type:text"`
	CategoryID  *uuid.UUID      `gorm:"type:uuid;index"`
	BrandID     *uuid.UUID      `gorm:"type:uuid;index"`
	Unit        string          `gorm:"type:varchar(20);not null"`
	Barcode     string          `gorm:"type:varchar(100)"`
	SalePrice   decimal.Decimal `gorm:"type:decimal(18,4);not null;default:0"`
	CostPrice   decimal.Decimal `gorm:"type:decimal(18,4);not null;default:0"`
	MinStock    decimal.Decimal `gorm:"type:decimal(18,4);not null;default:0"`
	IsActive    bool            `gorm:"not null;default:true"`
}

// TableName returns the table name for GORM
func (ProductModel) TableName() string {
	return "products"
}

// ToDomain converts the persistence model to a domain Product
func (m *ProductModel) ToDomain() *inventory.Product {
	return &inventory.Product{
		TenantAggregateRoot: m.ToTenantAggregateRoot(),
		SKU:                 m.SKU,
		Name:                m.Name,
		Description:         m.Description,
		CategoryID:          m.CategoryID,
		BrandID:             m.BrandID,
		Unit:                m.Unit,
		Barcode:             m.Barcode,
		SalePrice:           m.SalePrice,
		CostPrice:           m.CostPrice,
		MinStock:            m.MinStock,
		IsActive:            m.IsActive,
	}
}

// ProductModelFromDomain creates a persistence model from a domain Product
func ProductModelFromDomain(p *inventory.Product) *ProductModel {
	m := &ProductModel{
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
	}
	m.FromDomainTenantAggregateRoot(p.TenantAggregateRoot)
	return m
}

// WarehouseModel is the persistence model for warehouses
type WarehouseModel struct {
	TenantAggregateModel
	Code     string `gorm:"type:varchar(50);not null;index"`
	Name     string `gorm:"type:varchar(200);not null"`
	Address  string `gorm:"type:text"`
	IsActive bool   `gorm:"not null;default:true"`
}

// TableName returns the table name for GORM
func (WarehouseModel) TableName() string {
	return "warehouses"
}

// ToDomain converts the persistence model to a domain Warehouse
func (m *WarehouseModel) ToDomain() *inventory.Warehouse {
	return &inventory.Warehouse{
		TenantAggregateRoot: m.ToTenantAggregateRoot(),
		Code:                m.Code,
		Name:                m.Name,
		Address:             m.Address,
		IsActive:            m.IsActive,
	}
}

// WarehouseModelFromDomain creates a persistence model from a domain Warehouse
func WarehouseModelFromDomain(w *inventory.Warehouse) *WarehouseModel {
	m := &WarehouseModel{
		Code:     w.Code,
		Name:     w.Name,
		Address:  w.Address,
		IsActive: w.IsActive,
	}
	m.FromDomainTenantAggregateRoot(w.TenantAggregateRoot)
	return m
}

// WarehouseLocationModel is the persistence model for locations inside a warehouse
type WarehouseLocationModel struct {
	TenantAggregateModel
	WarehouseID uuid.UUID `gorm:"type:uuid;not null;index"`
	Code        string    `gorm:"type:varchar(50);not null"`
	Name        string    `gorm:"type:varchar(200);not null"`
	IsActive    bool      `gorm:"not null;default:true"`
}

// TableName returns the table name for GORM
func (WarehouseLocationModel) TableName() string {
	return "warehouse_locations"
}

// ToDomain converts the persistence model to a domain WarehouseLocation
func (m *WarehouseLocationModel) ToDomain() *inventory.WarehouseLocation {
	return &inventory.WarehouseLocation{
		TenantAggregateRoot: m.ToTenantAggregateRoot(),
		WarehouseID:         m.WarehouseID,
		Code:                m.Code,
		Name:                m.Name,
		IsActive:            m.IsActive,
	}
}

// WarehouseLocationModelFromDomain creates a persistence model from a domain WarehouseLocation
func WarehouseLocationModelFromDomain(l *inventory.WarehouseLocation) *WarehouseLocationModel {
	m := &WarehouseLocationModel{
		WarehouseID: l.WarehouseID,
		Code:        l.Code,
		Name:        l.Name,
		IsActive:    l.IsActive,
	}
	m.FromDomainTenantAggregateRoot(l.TenantAggregateRoot)
	return m
}

// StockModel is the persistence model for stock rows. Derived quantities
// are not stored.
type StockModel struct {
	TenantAggregateModel
	ProductID        uuid.UUID       `gorm:"type:uuid;not null;index"`
	WarehouseID      uuid.UUID       `gorm:"type:uuid;not null;index"`
	LocationID       *uuid.UUID      `gorm:"type:uuid;index"`
	Quantity         decimal.Decimal `gorm:"type:decimal(18,4);not null;default:0"`
	ReservedQuantity decimal.Decimal `gorm:"type:decimal(18,4);not null;default:0"`
}

// TableName returns the table name for GORM
func (StockModel) TableName() string {
	return "stocks"
}

// ToDomain converts the persistence model to a domain Stock
func (m *StockModel) ToDomain() *inventory.Stock {
	return &inventory.Stock{
		TenantAggregateRoot: m.ToTenantAggregateRoot(),
		ProductID:           m.ProductID,
		WarehouseID:         m.WarehouseID,
		LocationID:          m.LocationID,
		Quantity:            m.Quantity,
		ReservedQuantity:    m.ReservedQuantity,
	}
}

// StockModelFromDomain creates a persistence model from a domain Stock
func StockModelFromDomain(s *inventory.Stock) *StockModel {
	m := &StockModel{
		ProductID:        s.ProductID,
		WarehouseID:      s.WarehouseID,
		LocationID:       s.LocationID,
		Quantity:         s.Quantity,
		ReservedQuantity: s.ReservedQuantity,
	}
	m.FromDomainTenantAggregateRoot(s.TenantAggregateRoot)
	return m
}

// InventoryTransactionModel is the persistence model for stock movements
type InventoryTransactionModel struct {
	TenantAggregateModel
	ProductID   uuid.UUID                 `gorm:"type:uuid;not null;index"`
	WarehouseID uuid.UUID                 `gorm:"type:uuid;not null;index"`
	LocationID  *uuid.UUID                `gorm:"type:uuid"`
	Type        inventory.TransactionType `gorm:"type:varchar(10);not null;index"`
	Quantity    decimal.Decimal           `gorm:"type:decimal(18,4);not null"`
	Reference   string                    `gorm:"type:varchar(100);index"`
	Notes       string                    `gorm:"type:text"`
}

// TableName returns the table name for GORM
func (InventoryTransactionModel) TableName() string {
	return "inventory_transactions"
}

// ToDomain converts the persistence model to a domain InventoryTransaction
func (m *InventoryTransactionModel) ToDomain() *inventory.InventoryTransaction {
	return &inventory.InventoryTransaction{
		TenantAggregateRoot: m.ToTenantAggregateRoot(),
		ProductID:           m.ProductID,
		WarehouseID:         m.WarehouseID,
		LocationID:          m.LocationID,
		Type:                m.Type,
		Quantity:            m.Quantity,
		Reference:           m.Reference,
		Notes:               m.Notes,
	}
}

// InventoryTransactionModelFromDomain creates a persistence model from a domain InventoryTransaction
func InventoryTransactionModelFromDomain(t *inventory.InventoryTransaction) *InventoryTransactionModel {
	m := &InventoryTransactionModel{
		ProductID:   t.ProductID,
		WarehouseID: t.WarehouseID,
		LocationID:  t.LocationID,
		Type:        t.Type,
		Quantity:    t.Quantity,
		Reference:   t.Reference,
		Notes:       t.Notes,
	}
	m.FromDomainTenantAggregateRoot(t.TenantAggregateRoot)
	return m
}
